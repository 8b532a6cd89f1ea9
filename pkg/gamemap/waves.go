package gamemap

import "bastion-server/internal/domain"

// Waves возвращает конфигурацию волн партии.
// Таблица неизменяема: трекеры прогресса живут в состоянии игрока.
func Waves() []domain.Wave {
	return []domain.Wave{
		// Волна 1: разминка
		{
			Groups: []domain.SpawnGroup{
				{Enemy: domain.EnemyBasic, Count: 8, SpawnDelay: 1.2},
			},
			GoldReward: 100, ScoreReward: 50,
		},
		// Волна 2: больше пехоты + первые бегуны
		{
			Groups: []domain.SpawnGroup{
				{Enemy: domain.EnemyBasic, Count: 10, SpawnDelay: 1.0},
				{Enemy: domain.EnemyFast, Count: 4, SpawnDelay: 0.8, StartOffset: 5},
			},
			GoldReward: 120, ScoreReward: 70,
		},
		// Волна 3: рой
		{
			Groups: []domain.SpawnGroup{
				{Enemy: domain.EnemySwarm, Count: 20, SpawnDelay: 0.4},
				{Enemy: domain.EnemyBasic, Count: 6, SpawnDelay: 1.0, StartOffset: 4},
			},
			GoldReward: 140, ScoreReward: 90,
		},
		// Волна 4: первые латники
		{
			Groups: []domain.SpawnGroup{
				{Enemy: domain.EnemyArmored, Count: 6, SpawnDelay: 1.5},
				{Enemy: domain.EnemyFast, Count: 8, SpawnDelay: 0.6, StartOffset: 3},
			},
			GoldReward: 160, ScoreReward: 110,
		},
		// Волна 5: воздух
		{
			Groups: []domain.SpawnGroup{
				{Enemy: domain.EnemyFlying, Count: 10, SpawnDelay: 0.9},
				{Enemy: domain.EnemyBasic, Count: 8, SpawnDelay: 1.0, HPMult: 1.5},
			},
			GoldReward: 180, ScoreReward: 140,
		},
		// Волна 6: таран под прикрытием шамана
		{
			Groups: []domain.SpawnGroup{
				{Enemy: domain.EnemyTank, Count: 4, SpawnDelay: 2.5},
				{Enemy: domain.EnemyHealer, Count: 2, SpawnDelay: 3.0, StartOffset: 2},
			},
			GoldReward: 210, ScoreReward: 170,
		},
		// Волна 7: смешанный штурм
		{
			Groups: []domain.SpawnGroup{
				{Enemy: domain.EnemyArmored, Count: 8, SpawnDelay: 1.2},
				{Enemy: domain.EnemyFlying, Count: 8, SpawnDelay: 0.8, StartOffset: 4},
				{Enemy: domain.EnemySwarm, Count: 15, SpawnDelay: 0.3, StartOffset: 8},
			},
			GoldReward: 240, ScoreReward: 210,
		},
		// Волна 8: бегуны на скорости
		{
			Groups: []domain.SpawnGroup{
				{Enemy: domain.EnemyFast, Count: 16, SpawnDelay: 0.5, SpeedMult: 1.3},
				{Enemy: domain.EnemyHealer, Count: 3, SpawnDelay: 2.0, StartOffset: 3},
			},
			GoldReward: 270, ScoreReward: 250,
		},
		// Волна 9: тяжелая пехота
		{
			Groups: []domain.SpawnGroup{
				{Enemy: domain.EnemyTank, Count: 6, SpawnDelay: 2.0, HPMult: 1.4},
				{Enemy: domain.EnemyArmored, Count: 10, SpawnDelay: 1.0, StartOffset: 5},
			},
			GoldReward: 320, ScoreReward: 300,
		},
		// Волна 10: вождь со свитой
		{
			Groups: []domain.SpawnGroup{
				{Enemy: domain.EnemyBoss, Count: 1, SpawnDelay: 1.0},
				{Enemy: domain.EnemyHealer, Count: 4, SpawnDelay: 2.0, StartOffset: 2},
				{Enemy: domain.EnemySwarm, Count: 20, SpawnDelay: 0.4, StartOffset: 6},
			},
			GoldReward: 500, ScoreReward: 600,
		},
	}
}
