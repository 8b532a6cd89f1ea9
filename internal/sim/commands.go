// Package sim реализует движок симуляции одного игрового поля:
// дискретные команды игрока и пошаговое продвижение Advance.
// Движок ничего не знает о комнатах и сети - только состояние игрока.
package sim

import (
	"errors"

	"bastion-server/internal/domain"
)

// Команды никогда не паникуют через границу вызова: нарушенное
// предусловие - это явная ошибка-значение, состояние не меняется.
var (
	ErrGamePaused     = errors.New("game is paused")
	ErrGameOver       = errors.New("game is over")
	ErrUnknownTower   = errors.New("unknown tower type")
	ErrNotEnoughGold  = errors.New("not enough gold")
	ErrCellOccupied   = errors.New("cell is not buildable")
	ErrTowerNotFound  = errors.New("tower not found")
	ErrMaxLevel       = errors.New("tower is already at max level")
	ErrWaveInProgress = errors.New("wave is already in progress")
	ErrNoWavesLeft    = errors.New("no waves left")
)

// commandAllowed проверяет общие предусловия всех команд
func commandAllowed(st *domain.GameState) error {
	switch st.Phase {
	case domain.PhasePaused:
		return ErrGamePaused
	case domain.PhaseWon, domain.PhaseLost:
		return ErrGameOver
	}
	return nil
}

// PlaceTower ставит башню на клетку, списывая золото.
// Разрешено и в строительную фазу, и во время волны.
func PlaceTower(st *domain.GameState, tt domain.TowerType, x, z int) (*domain.Tower, error) {
	if err := commandAllowed(st); err != nil {
		return nil, err
	}

	def, ok := domain.TowerDefs[tt]
	if !ok {
		return nil, ErrUnknownTower
	}
	if !st.Map.IsBuildable(x, z) {
		return nil, ErrCellOccupied
	}
	if st.Gold < def.Cost[0] {
		return nil, ErrNotEnoughGold
	}

	tower := &domain.Tower{
		ID:    st.NextID("t"),
		Type:  tt,
		X:     x,
		Z:     z,
		Level: 1,
	}

	st.Gold -= def.Cost[0]
	st.Towers = append(st.Towers, tower)
	st.Map.CellAt(x, z).TowerID = tower.ID

	return tower, nil
}

// SellTower продает башню, возвращая долю вложенного золота.
// Возвращает сумму возврата.
func SellTower(st *domain.GameState, towerID string) (int, error) {
	if err := commandAllowed(st); err != nil {
		return 0, err
	}

	tower := st.TowerByID(towerID)
	if tower == nil {
		return 0, ErrTowerNotFound
	}

	refund := tower.TotalSpent() * domain.SellRefundPercent / 100
	st.Gold += refund

	// Освобождаем клетку
	if cell := st.Map.CellAt(tower.X, tower.Z); cell != nil && cell.TowerID == towerID {
		cell.TowerID = ""
	}

	for i, t := range st.Towers {
		if t.ID == towerID {
			st.Towers = append(st.Towers[:i], st.Towers[i+1:]...)
			break
		}
	}

	return refund, nil
}

// UpgradeTower повышает уровень башни за золото
func UpgradeTower(st *domain.GameState, towerID string) (*domain.Tower, error) {
	if err := commandAllowed(st); err != nil {
		return nil, err
	}

	tower := st.TowerByID(towerID)
	if tower == nil {
		return nil, ErrTowerNotFound
	}

	def := tower.Def()
	if tower.Level >= def.MaxLevel {
		return nil, ErrMaxLevel
	}

	cost := def.Cost[tower.Level] // Стоимость следующего уровня
	if st.Gold < cost {
		return nil, ErrNotEnoughGold
	}

	st.Gold -= cost
	tower.Level++

	return tower, nil
}

// StartWave запускает следующую волну. Возвращает её номер (1-based).
func StartWave(st *domain.GameState) (int, error) {
	if err := commandAllowed(st); err != nil {
		return 0, err
	}
	if st.Phase == domain.PhaseWave {
		return 0, ErrWaveInProgress
	}
	if st.WaveNumber >= len(st.Waves) {
		return 0, ErrNoWavesLeft
	}

	st.WaveNumber++
	st.Tracker = domain.NewWaveTracker(st.WaveNumber, st.Waves[st.WaveNumber-1])
	st.Phase = domain.PhaseWave

	return st.WaveNumber, nil
}

// InjectEnemy материализует врага прямо на точке спавна, минуя трекер волны.
// Так на поле попадают враги, присланные другими игроками: после появления
// они неотличимы от волновых. Если поле уже в строительной фазе, оно
// возвращается в фазу волны, чтобы враг начал двигаться.
func InjectEnemy(st *domain.GameState, et domain.EnemyType, hpMult float64) *domain.Enemy {
	if st.Terminal() || st.Phase == domain.PhasePaused {
		return nil
	}

	enemy := spawnEnemy(st, et, hpMult, 1.0)
	if st.Phase == domain.PhaseBuild {
		st.Phase = domain.PhaseWave
	}
	return enemy
}

// spawnEnemy создает врага на точке спавна карты
func spawnEnemy(st *domain.GameState, et domain.EnemyType, hpMult, speedMult float64) *domain.Enemy {
	def := domain.EnemyDefs[et]
	if hpMult <= 0 {
		hpMult = 1.0
	}
	if speedMult <= 0 {
		speedMult = 1.0
	}

	pos := st.Map.SpawnPoint()
	if def.Flying {
		pos.Y = flyingHeight
	}

	enemy := &domain.Enemy{
		ID:     st.NextID("e"),
		Type:   et,
		HP:     def.MaxHP * hpMult,
		MaxHP:  def.MaxHP * hpMult,
		Armor:  def.Armor,
		Speed:  def.Speed * speedMult,
		Pos:    pos,
		Flying: def.Flying,
	}
	st.Enemies = append(st.Enemies, enemy)
	return enemy
}
