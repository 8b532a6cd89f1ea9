package arena

import (
	"time"

	"bastion-server/internal/domain"
)

// SendOption - один тариф отправки врагов: фиксированная цена в очках
// за Count врагов с множителем здоровья.
type SendOption struct {
	Cost   int
	Count  int
	HPMult float64
}

// Config хранит внешние настройки менеджера комнат.
// Все константы из этого блока - крутилки балансировки, движок
// симуляции про них не знает.
type Config struct {
	TickRate      int // Шагов симуляции в секунду
	SnapshotEvery int // Слепок состояния уходит каждый N-й тик

	MinPlayers int
	MaxPlayers int

	CountdownSeconds int           // Отсчет перед стартом партии
	PrepDuration     float64       // Строительная пауза перед авто-стартом волны, сек
	RoomIdleTimeout  time.Duration // Пустые и завершенные комнаты живут не дольше
	SweepInterval    time.Duration // Период фоновой чистки комнат

	// Очки отправки за одно убийство. Плоская ставка, а не таблица
	// наград по типам врагов - осознанная крутилка, не хардкод.
	PointsPerKill int

	// Тарифы отправки по типам врагов
	SendTable map[domain.EnemyType]SendOption
}

// NewConfig создает конфиг по умолчанию
func NewConfig() Config {
	return Config{
		TickRate:      20,
		SnapshotEvery: 4, // 5 слепков в секунду при 20 тиках

		MinPlayers: 2,
		MaxPlayers: 4,

		CountdownSeconds: 3,
		PrepDuration:     15,
		RoomIdleTimeout:  5 * time.Minute,
		SweepInterval:    30 * time.Second,

		PointsPerKill: 2,

		SendTable: map[domain.EnemyType]SendOption{
			domain.EnemyBasic:   {Cost: 6, Count: 1, HPMult: 1.2},
			domain.EnemyFast:    {Cost: 10, Count: 1, HPMult: 1.2},
			domain.EnemySwarm:   {Cost: 15, Count: 6, HPMult: 1.0},
			domain.EnemyFlying:  {Cost: 18, Count: 2, HPMult: 1.1},
			domain.EnemyArmored: {Cost: 25, Count: 1, HPMult: 1.3},
			domain.EnemyHealer:  {Cost: 30, Count: 1, HPMult: 1.2},
			domain.EnemyTank:    {Cost: 40, Count: 1, HPMult: 1.5},
		},
	}
}
