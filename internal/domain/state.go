package domain

import "fmt"

// Стартовая экономика одного игрока
const (
	StartingGold  = 500
	StartingLives = 20

	// Процент вложенного золота, возвращаемый при продаже башни.
	// Целочисленный, чтобы возврат считался без плавающей точки.
	SellRefundPercent = 70
)

// GameState - полное состояние симуляции одного игрока.
// Единица симуляции: у каждого подключенного игрока ровно одно.
// Доступ строго однопоточный - пишет только тик комнаты-владельца.
type GameState struct {
	Phase Phase

	Gold  int
	Lives int
	Score int

	// Номер текущей волны (1-based, 0 - еще не начинали)
	WaveNumber int

	Map         *GameMap
	Towers      []*Tower
	Enemies     []*Enemy
	Projectiles []*Projectile

	// Трекер активной волны. Создается StartWave, обнуляется при завершении.
	Tracker *WaveTracker

	// Волны, настроенные для этой партии
	Waves []Wave

	// Фаза, в которую вернемся из паузы
	prevPhase Phase

	// Счетчик для локальных ID сущностей (башни, враги, снаряды)
	seq int
}

// NewGameState создает свежее состояние в строительной фазе
func NewGameState(m *GameMap, waves []Wave) *GameState {
	return &GameState{
		Phase: PhaseBuild,
		Gold:  StartingGold,
		Lives: StartingLives,
		Map:   m.Clone(),
		Waves: waves,
	}
}

// NextID выдает следующий локальный ID с префиксом ("t", "e", "p")
func (s *GameState) NextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s%d", prefix, s.seq)
}

// Terminal возвращает true для конечных фаз (тики больше не обрабатываются)
func (s *GameState) Terminal() bool {
	return s.Phase == PhaseWon || s.Phase == PhaseLost
}

// TowerByID находит башню по ID (nil, если нет)
func (s *GameState) TowerByID(id string) *Tower {
	for _, t := range s.Towers {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// EnemyByID находит живого врага по ID (nil, если нет или мертв)
func (s *GameState) EnemyByID(id string) *Enemy {
	for _, e := range s.Enemies {
		if e.ID == id && e.Alive() {
			return e
		}
	}
	return nil
}

// Pause ставит симуляцию на паузу (из build или wave)
func (s *GameState) Pause() bool {
	if s.Phase != PhaseBuild && s.Phase != PhaseWave {
		return false
	}
	s.prevPhase = s.Phase
	s.Phase = PhasePaused
	return true
}

// Resume снимает паузу, возвращая прежнюю фазу
func (s *GameState) Resume() bool {
	if s.Phase != PhasePaused {
		return false
	}
	s.Phase = s.prevPhase
	return true
}
