package sim

import "bastion-server/internal/domain"

// retargetTowers независимо для каждой башни выбирает цель:
// ближайший враг в радиусе, с поправкой на приоритет типа
// (босс > таран > остальные). Приоритет вычитается из дистанции
// до сравнения - выигрывает меньшее значение.
func retargetTowers(st *domain.GameState) {
	for _, tower := range st.Towers {
		def := tower.Def()
		towerPos := tower.Pos()
		rng := tower.Range()

		best := ""
		bestScore := 0.0

		for _, e := range st.Enemies {
			if !e.Alive() {
				continue
			}
			if e.Flying && !def.CanHitFlying {
				continue
			}

			dist := towerPos.DistanceTo(e.Pos)
			if dist > rng {
				continue
			}

			score := dist - e.Def().Priority
			if best == "" || score < bestScore {
				best = e.ID
				bestScore = score
			}
		}

		tower.TargetID = best
	}
}

// fireTowers тикает кулдауны и выпускает снаряды из готовых башен.
// Если цель умерла или вышла из радиуса, выстрел не тратится -
// башня остается готовой к следующему тику.
func fireTowers(st *domain.GameState, dt float64) {
	for _, tower := range st.Towers {
		tower.Cooldown -= dt
		if tower.Cooldown > 0 {
			continue
		}
		tower.Cooldown = 0

		target := st.EnemyByID(tower.TargetID)
		if target == nil {
			continue
		}

		def := tower.Def()
		towerPos := tower.Pos()
		if towerPos.DistanceTo(target.Pos) > tower.Range() {
			continue
		}

		origin := towerPos
		origin.Y = towerHeight

		p := &domain.Projectile{
			ID:       st.NextID("p"),
			TowerID:  tower.ID,
			TargetID: target.ID,
			Pos:      origin,
			Speed:    def.ProjectileSpeed,
			Damage:   tower.Damage(),

			AoERadius:    def.AoERadius,
			ChainJumps:   def.ChainJumps,
			IgnoresArmor: def.IgnoresArmor,
			CanHitFlying: def.CanHitFlying,
		}
		if def.Effect != "" {
			p.Effect = def.Effect
			p.EffectPower = def.EffectPower
			p.EffectDuration = def.EffectDuration
		}

		st.Projectiles = append(st.Projectiles, p)
		tower.Cooldown = 1.0 / tower.FireRate()
	}
}
