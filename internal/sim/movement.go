package sim

import "bastion-server/internal/domain"

// moveEnemies продвигает всех живых врагов вдоль пути.
// Прогресс считается через длину сегмента, так что скорость в клетках
// в секунду не зависит от того, как путь нарезан на вейпоинты.
func moveEnemies(st *domain.GameState, dt float64, events *[]domain.Event) {
	lastSegment := len(st.Map.Waypoints) - 1

	for _, e := range st.Enemies {
		if !e.Alive() {
			continue
		}

		dist := e.EffectiveSpeed() * dt

		for dist > 0 && e.WaypointIdx < lastSegment {
			segLen := st.Map.SegmentLength(e.WaypointIdx)
			if segLen <= 0 {
				e.WaypointIdx++
				e.Progress = 0
				continue
			}

			remaining := (1 - e.Progress) * segLen
			if dist < remaining {
				e.Progress += dist / segLen
				dist = 0
			} else {
				dist -= remaining
				e.WaypointIdx++
				e.Progress = 0
			}
		}

		// Обновляем мировую позицию
		if e.WaypointIdx < lastSegment {
			from := st.Map.Waypoints[e.WaypointIdx]
			to := st.Map.Waypoints[e.WaypointIdx+1]
			e.Pos = from.Lerp(to, e.Progress)
		} else {
			e.Pos = st.Map.BasePoint()
		}
		if e.Flying {
			e.Pos.Y = flyingHeight
		}

		// Дошел до базы: минус жизнь. HP не обнуляем - это другая
		// причина смерти, но для чистки поля учитывается так же.
		if e.WaypointIdx >= lastSegment {
			e.Dead = true
			st.Lives--
			if st.Lives < 0 {
				st.Lives = 0
			}
			*events = append(*events, domain.Event{
				Type:      domain.EventLifeLost,
				EnemyID:   e.ID,
				EnemyType: e.Type,
				LivesLeft: st.Lives,
			})
		}
	}
}
