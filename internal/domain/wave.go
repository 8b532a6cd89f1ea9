package domain

// SpawnGroup - одна группа спавна внутри волны.
type SpawnGroup struct {
	Enemy       EnemyType
	Count       int
	SpawnDelay  float64 // Секунды между врагами группы
	StartOffset float64 // Задержка старта группы от начала волны
	HPMult      float64 // 0 трактуется как 1.0
	SpeedMult   float64 // 0 трактуется как 1.0
}

// Wave - неизменяемая конфигурация одной волны.
type Wave struct {
	Groups      []SpawnGroup
	GoldReward  int
	ScoreReward int
}

// groupTracker - изменяемый прогресс одной группы спавна.
type groupTracker struct {
	Group   SpawnGroup
	Spawned int
	StartIn float64 // Оставшееся смещение до первого спавна
	NextIn  float64 // Секунды до следующего врага (после старта группы)
	started bool
}

// WaveTracker - изменяемая бухгалтерия активной волны.
// Принадлежит состоянию конкретного игрока: несколько параллельных
// симуляций никогда не разделяют один трекер.
type WaveTracker struct {
	WaveNumber int // 1-based
	groups     []*groupTracker
}

// NewWaveTracker создает трекер для волны
func NewWaveTracker(number int, w Wave) *WaveTracker {
	t := &WaveTracker{WaveNumber: number}
	for _, g := range w.Groups {
		t.groups = append(t.groups, &groupTracker{
			Group:   g,
			StartIn: g.StartOffset,
		})
	}
	return t
}

// Exhausted возвращает true, когда все группы выпустили всех врагов
func (t *WaveTracker) Exhausted() bool {
	for _, g := range t.groups {
		if g.Spawned < g.Group.Count {
			return false
		}
	}
	return true
}

// Tick продвигает таймеры спавна на dt и возвращает группы,
// которым пора выпустить по одному врагу (группа может встретиться
// несколько раз, если dt перекрыл несколько интервалов).
func (t *WaveTracker) Tick(dt float64) []SpawnGroup {
	var due []SpawnGroup
	for _, g := range t.groups {
		if g.Spawned >= g.Group.Count {
			continue
		}

		remaining := dt
		if !g.started {
			g.StartIn -= remaining
			if g.StartIn > 0 {
				continue
			}
			// Группа стартует: первый враг выходит сразу
			remaining = -g.StartIn
			g.started = true
			g.Spawned++
			g.NextIn = g.Group.SpawnDelay
			due = append(due, g.Group)
		}

		g.NextIn -= remaining
		for g.NextIn <= 0 && g.Spawned < g.Group.Count {
			g.Spawned++
			g.NextIn += g.Group.SpawnDelay
			due = append(due, g.Group)
		}
	}
	return due
}
