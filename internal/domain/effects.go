package domain

// StatusEffect - временный модификатор на враге.
// Повторное наложение того же типа обновляет длительность,
// сила берется максимальная из старой и новой.
type StatusEffect struct {
	Type     EffectType `json:"type"`
	Power    float64    `json:"power"`    // Семантика зависит от типа (множитель, урон/сек, доля)
	Duration float64    `json:"duration"` // Оставшиеся секунды

	SourceTowerID string `json:"-"` // Кому засчитывать убийства от DoT
}

// ApplyEffect навешивает эффект на врага (с обновлением, если уже есть)
func (e *Enemy) ApplyEffect(effect StatusEffect) {
	existing := e.EffectOf(effect.Type)
	if existing == nil {
		copied := effect
		e.Effects = append(e.Effects, &copied)
		return
	}

	// Обновление: длительность сбрасывается, сила не ослабевает
	existing.Duration = effect.Duration
	existing.SourceTowerID = effect.SourceTowerID
	switch effect.Type {
	case EffectSlow:
		// Для замедления "сильнее" = меньший множитель
		if effect.Power < existing.Power {
			existing.Power = effect.Power
		}
	default:
		if effect.Power > existing.Power {
			existing.Power = effect.Power
		}
	}
}
