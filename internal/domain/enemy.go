package domain

// Enemy - вражеская сущность, идущая по пути к базе.
type Enemy struct {
	ID    string    `json:"id"`
	Type  EnemyType `json:"type"`
	HP    float64   `json:"hp"` // float: урон во времени тикает дробно
	MaxHP float64   `json:"maxHp"`
	Armor int       `json:"-"`
	Speed float64   `json:"-"` // Базовая скорость, клеток в секунду

	Pos Vec3 `json:"pos"`

	// Прогресс по пути: индекс сегмента и доля пройденного сегмента (0..1)
	WaypointIdx int     `json:"-"`
	Progress    float64 `json:"-"`

	Effects []*StatusEffect `json:"effects,omitempty"`

	Flying bool `json:"flying,omitempty"`
	Dead   bool `json:"-"`
}

// EnemyDef - статическое описание типа врага.
type EnemyDef struct {
	Name   string
	MaxHP  float64
	Speed  float64 // Клеток в секунду
	Armor  int
	Flying bool

	// Хилер восстанавливает соседям HealPercent от их MaxHP в секунду
	Healer      bool
	HealPercent float64
	HealRadius  float64

	Bounty int // Золото за убийство
	Points int // Очки за убийство

	// Приоритет для башен: вычитается из дистанции при выборе цели,
	// чем больше - тем раньше башни переключаются на этого врага.
	Priority float64
}

// EnemyDefs - библиотека всех типов врагов.
var EnemyDefs = map[EnemyType]EnemyDef{
	EnemyBasic: {
		Name: "Пехотинец", MaxHP: 50, Speed: 1.0, Armor: 0,
		Bounty: 8, Points: 10,
	},
	EnemyFast: {
		Name: "Бегун", MaxHP: 35, Speed: 2.0, Armor: 0,
		Bounty: 10, Points: 12,
	},
	EnemyTank: {
		Name: "Таран", MaxHP: 220, Speed: 0.6, Armor: 5,
		Bounty: 25, Points: 30,
		Priority: 2.0,
	},
	EnemyFlying: {
		Name: "Гарпия", MaxHP: 45, Speed: 1.4, Armor: 0, Flying: true,
		Bounty: 12, Points: 15,
	},
	EnemyHealer: {
		Name: "Шаман", MaxHP: 70, Speed: 0.9, Armor: 1,
		Healer: true, HealPercent: 0.04, HealRadius: 2.0,
		Bounty: 20, Points: 25,
	},
	EnemyArmored: {
		Name: "Латник", MaxHP: 120, Speed: 0.8, Armor: 10,
		Bounty: 18, Points: 22,
	},
	EnemySwarm: {
		Name: "Саранча", MaxHP: 15, Speed: 1.6, Armor: 0,
		Bounty: 3, Points: 4,
	},
	EnemyBoss: {
		Name: "Вождь", MaxHP: 2500, Speed: 0.5, Armor: 8,
		Bounty: 200, Points: 300,
		Priority: 5.0,
	},
}

// Def возвращает статическое описание врага
func (e *Enemy) Def() EnemyDef {
	return EnemyDefs[e.Type]
}

// Alive возвращает true, если враг еще участвует в симуляции
func (e *Enemy) Alive() bool {
	return !e.Dead
}

// TakeDamage наносит урон. Возвращает true, если враг погиб от этого урона.
func (e *Enemy) TakeDamage(amount float64) bool {
	if e.Dead {
		return false
	}
	e.HP -= amount
	if e.HP <= 0 {
		e.HP = 0
		e.Dead = true
		return true
	}
	return false
}

// Heal восстанавливает здоровье (не поднимает мертвых)
func (e *Enemy) Heal(amount float64) {
	if e.Dead {
		return
	}
	e.HP += amount
	if e.HP > e.MaxHP {
		e.HP = e.MaxHP
	}
}

// EffectOf возвращает активный эффект указанного типа (или nil)
func (e *Enemy) EffectOf(t EffectType) *StatusEffect {
	for _, eff := range e.Effects {
		if eff.Type == t {
			return eff
		}
	}
	return nil
}

// EffectiveSpeed возвращает скорость с учетом замедлений и оглушения
func (e *Enemy) EffectiveSpeed() float64 {
	speed := e.Speed
	for _, eff := range e.Effects {
		switch eff.Type {
		case EffectStun:
			return 0
		case EffectSlow:
			speed *= eff.Power
		}
	}
	return speed
}
