package arena

import "bastion-server/internal/domain"

// Player - один участник комнаты: обертка над состоянием симуляции
// плюс мультиплеерные поля (очки отправки, выбывание, цель по умолчанию).
type Player struct {
	ID   string
	Name string

	Ready     bool
	Connected bool
	joinSeq   int // Порядок входа (для передачи хоста)

	// Состояние собственной симуляции. nil до начала партии.
	State *domain.GameState

	// Экономика атак между игроками
	SendPoints    int
	TotalSent     int
	TotalReceived int

	// Цель атак по умолчанию (пусто - нужно указывать явно)
	TargetID string

	Eliminated     bool
	EliminationSeq int // 1 - выбыл первым
	Rank           int // Финальное место (0 - партия не окончена)
}

// Alive возвращает true, если игрок еще участвует в партии
func (p *Player) Alive() bool {
	return !p.Eliminated
}

// releaseState освобождает тяжелые коллекции симуляции выбывшего,
// сохраняя счет для финальной таблицы
func (p *Player) releaseState() {
	if p.State == nil {
		return
	}
	p.State.Towers = nil
	p.State.Enemies = nil
	p.State.Projectiles = nil
	p.State.Tracker = nil
}
