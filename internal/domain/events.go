package domain

// EventType - внутренний числовой идентификатор события симуляции
type EventType uint8

const (
	EventUnknown EventType = iota
	EventEnemyKilled
	EventLifeLost
	EventWaveComplete
	EventGameWon
	EventGameLost
)

// Маппинг для логов Domain -> String
var eventToString = map[EventType]string{
	EventEnemyKilled:  "ENEMY_KILLED",
	EventLifeLost:     "LIFE_LOST",
	EventWaveComplete: "WAVE_COMPLETE",
	EventGameWon:      "GAME_WON",
	EventGameLost:     "GAME_LOST",
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (t EventType) String() string {
	if s, ok := eventToString[t]; ok {
		return s
	}
	return "UNKNOWN"
}

// Event - дискретное событие, возвращаемое движком вместе с новым состоянием.
// Менеджеру комнат не нужно диффать счетчики до/после: экономика
// (очки отправки, награды) считается прямо по ленте событий.
type Event struct {
	Type EventType

	// EventEnemyKilled
	EnemyID   string
	EnemyType EnemyType
	TowerID   string // Кто добил (и для выстрела, и для DoT)
	Gold      int    // Начисленное золото
	Points    int    // Начисленные очки

	// EventLifeLost
	LivesLeft int

	// EventWaveComplete
	Wave       int
	WaveReward int
}
