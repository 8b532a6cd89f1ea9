package domain

// Projectile - снаряд в полете от башни к врагу.
type Projectile struct {
	ID       string `json:"id"`
	TowerID  string `json:"-"` // Кто выстрелил (для статистики убийств)
	TargetID string `json:"-"`

	Pos    Vec3    `json:"pos"`
	Speed  float64 `json:"-"`
	Damage int     `json:"-"`

	AoERadius    float64 `json:"-"` // 0 - одиночная цель
	ChainJumps   int     `json:"-"`
	IgnoresArmor bool    `json:"-"`
	CanHitFlying bool    `json:"-"` // Площадь не задевает летающих, если башня их не достает

	// Эффект, применяемый при попадании (Effect == "" - без эффекта)
	Effect         EffectType `json:"-"`
	EffectPower    float64    `json:"-"`
	EffectDuration float64    `json:"-"`

	Done bool `json:"-"` // Попал или потерял цель - убрать на чистке
}
