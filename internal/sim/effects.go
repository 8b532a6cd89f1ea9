package sim

import "bastion-server/internal/domain"

// tickEffects тикает статусные эффекты на всех живых врагах:
// урон во времени (поджог, яд) снимает здоровье, длительности убывают,
// истекшие эффекты снимаются. Смерть от DoT награждается так же,
// как смерть от выстрела, - убийство уходит башне-источнику.
func tickEffects(st *domain.GameState, dt float64, events *[]domain.Event) {
	for _, e := range st.Enemies {
		if !e.Alive() {
			continue
		}

		kept := e.Effects[:0]
		for _, eff := range e.Effects {
			switch eff.Type {
			case domain.EffectBurn, domain.EffectPoison:
				if e.TakeDamage(eff.Power * dt) {
					killEnemy(st, e, eff.SourceTowerID, events)
				}
			}

			eff.Duration -= dt
			if eff.Duration > 0 && e.Alive() {
				kept = append(kept, eff)
			}
		}
		e.Effects = kept
	}
}

// tickHealers дает шаманам восстанавливать здоровье соседей.
// Лекарь лечит только чужих (не себя и не других лекарей), долей
// от их максимума в секунду.
func tickHealers(st *domain.GameState, dt float64) {
	for _, healer := range st.Enemies {
		if !healer.Alive() {
			continue
		}
		def := healer.Def()
		if !def.Healer {
			continue
		}

		for _, e := range st.Enemies {
			if e == healer || !e.Alive() || e.Def().Healer {
				continue
			}
			if healer.Pos.DistanceTo(e.Pos) > def.HealRadius {
				continue
			}
			e.Heal(e.MaxHP * def.HealPercent * dt)
		}
	}
}
