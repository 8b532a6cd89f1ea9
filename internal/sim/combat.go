package sim

import "bastion-server/internal/domain"

// moveProjectiles ведет снаряды к текущей позиции их целей и
// разрешает попадания. Снаряд без живой цели помечается отработавшим.
func moveProjectiles(st *domain.GameState, dt float64, events *[]domain.Event) {
	for _, p := range st.Projectiles {
		if p.Done {
			continue
		}

		target := st.EnemyByID(p.TargetID)
		if target == nil {
			p.Done = true
			continue
		}

		step := p.Speed * dt
		dist := p.Pos.DistanceTo(target.Pos)

		if dist <= step+hitEpsilon {
			p.Pos = target.Pos
			resolveHit(st, p, target, events)
			p.Done = true
			continue
		}

		t := step / dist
		p.Pos = p.Pos.Lerp(target.Pos, t)
	}
}

// resolveHit применяет урон и эффекты снаряда при попадании
func resolveHit(st *domain.GameState, p *domain.Projectile, target *domain.Enemy, events *[]domain.Event) {
	impact := target.Pos

	// Прямое попадание
	dealDamage(st, p, target, 1.0, events)

	// Эффект вешается на основную цель (если она пережила удар)
	if p.Effect != "" && target.Alive() {
		target.ApplyEffect(domain.StatusEffect{
			Type:          p.Effect,
			Power:         p.EffectPower,
			Duration:      p.EffectDuration,
			SourceTowerID: p.TowerID,
		})
	}

	// Площадной урон: полный во внутреннем радиусе, сниженный дальше
	if p.AoERadius > 0 {
		for _, e := range st.Enemies {
			if e == target || !e.Alive() {
				continue
			}
			if e.Flying && !p.CanHitFlying {
				continue
			}
			d := impact.DistanceTo(e.Pos)
			if d > p.AoERadius {
				continue
			}
			factor := aoeOuterFactor
			if d <= aoeInnerRadius {
				factor = 1.0
			}
			dealDamage(st, p, e, factor, events)
		}
	}

	// Цепная молния: до ChainJumps прыжков по ближайшим непораженным
	if p.ChainJumps > 0 {
		hit := map[string]bool{target.ID: true}
		from := target
		factor := chainFalloff

		for jump := 0; jump < p.ChainJumps; jump++ {
			next := nearestUnhit(st, from.Pos, hit)
			if next == nil {
				break
			}
			hit[next.ID] = true
			dealDamage(st, p, next, factor, events)
			from = next
			factor *= chainFalloff
		}
	}
}

// dealDamage наносит урон от снаряда с учетом брони и усиления.
// Броня вычитается до множителей, минимальный урон - 1: бой не может
// зависнуть навсегда ни против какой башни.
func dealDamage(st *domain.GameState, p *domain.Projectile, e *domain.Enemy, factor float64, events *[]domain.Event) {
	if !e.Alive() {
		return
	}

	dmg := float64(p.Damage) * factor
	if !p.IgnoresArmor {
		dmg -= float64(e.Armor)
	}
	if dmg < 1 {
		dmg = 1
	}

	// Усиление умножает финальный урон
	if amp := e.EffectOf(domain.EffectAmplify); amp != nil {
		dmg *= 1 + amp.Power
	}

	if tower := st.TowerByID(p.TowerID); tower != nil {
		tower.DamageDealt += int(dmg)
	}

	if e.TakeDamage(dmg) {
		killEnemy(st, e, p.TowerID, events)
	}
}

// nearestUnhit ищет ближайшего живого врага вне множества hit
func nearestUnhit(st *domain.GameState, from domain.Vec3, hit map[string]bool) *domain.Enemy {
	var best *domain.Enemy
	bestDist := chainRange

	for _, e := range st.Enemies {
		if !e.Alive() || hit[e.ID] {
			continue
		}
		d := from.DistanceTo(e.Pos)
		if d <= bestDist {
			best = e
			bestDist = d
		}
	}
	return best
}
