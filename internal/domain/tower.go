package domain

// Tower - поставленная на поле башня.
type Tower struct {
	ID       string    `json:"id"`
	Type     TowerType `json:"type"`
	X        int       `json:"x"` // Координаты клетки
	Z        int       `json:"z"`
	Level    int       `json:"level"` // 1..MaxLevel
	TargetID string    `json:"-"`     // Текущая цель (пусто, если цели нет)
	Cooldown float64   `json:"-"`     // Секунды до следующего выстрела

	// Накопительная статистика (для UI и очков отправки)
	Kills       int `json:"kills"`
	DamageDealt int `json:"damageDealt"`
}

// TowerDef - статическое описание типа башни.
// Слайсы индексируются уровнем-1.
type TowerDef struct {
	Name     string
	MaxLevel int
	Cost     []int     // Стоимость покупки (уровень 1) и каждого апгрейда
	Damage   []int     // Урон за выстрел по уровням
	Range    []float64 // Радиус в клетках по уровням
	FireRate []float64 // Выстрелов в секунду по уровням

	ProjectileSpeed float64
	AoERadius       float64 // 0 - одиночная цель
	ChainJumps      int     // Tesla: дополнительные цели
	IgnoresArmor    bool
	CanHitFlying    bool

	// Эффект, навешиваемый при попадании (пусто - без эффекта)
	Effect         EffectType
	EffectPower    float64
	EffectDuration float64
}

// TowerDefs - библиотека всех типов башен.
var TowerDefs = map[TowerType]TowerDef{
	TowerArcher: {
		Name: "Лучник", MaxLevel: 3,
		Cost:     []int{100, 80, 120},
		Damage:   []int{12, 18, 28},
		Range:    []float64{3.5, 4.0, 4.5},
		FireRate: []float64{1.5, 1.8, 2.2},

		ProjectileSpeed: 12,
		CanHitFlying:    true,
	},
	TowerCannon: {
		Name: "Пушка", MaxLevel: 3,
		Cost:     []int{150, 120, 180},
		Damage:   []int{30, 45, 70},
		Range:    []float64{3.0, 3.3, 3.6},
		FireRate: []float64{0.6, 0.7, 0.8},

		ProjectileSpeed: 8,
		AoERadius:       1.5,
		CanHitFlying:    false, // Ядро летит по навесной - летающих не достает
	},
	TowerFrost: {
		Name: "Мороз", MaxLevel: 3,
		Cost:     []int{120, 100, 140},
		Damage:   []int{6, 9, 14},
		Range:    []float64{3.0, 3.4, 3.8},
		FireRate: []float64{1.0, 1.2, 1.4},

		ProjectileSpeed: 10,
		CanHitFlying:    true,

		Effect:         EffectSlow,
		EffectPower:    0.5, // Множитель скорости цели
		EffectDuration: 2.0,
	},
	TowerFire: {
		Name: "Огонь", MaxLevel: 3,
		Cost:     []int{180, 140, 200},
		Damage:   []int{10, 16, 24},
		Range:    []float64{2.8, 3.1, 3.4},
		FireRate: []float64{1.1, 1.3, 1.5},

		ProjectileSpeed: 10,
		CanHitFlying:    true,

		Effect:         EffectBurn,
		EffectPower:    8, // Урон в секунду
		EffectDuration: 3.0,
	},
	TowerSniper: {
		Name: "Снайпер", MaxLevel: 3,
		Cost:     []int{250, 200, 300},
		Damage:   []int{60, 95, 150},
		Range:    []float64{6.0, 7.0, 8.0},
		FireRate: []float64{0.4, 0.45, 0.5},

		ProjectileSpeed: 20,
		IgnoresArmor:    true,
		CanHitFlying:    true,
	},
	TowerTesla: {
		Name: "Тесла", MaxLevel: 3,
		Cost:     []int{220, 170, 260},
		Damage:   []int{20, 32, 50},
		Range:    []float64{3.2, 3.5, 3.8},
		FireRate: []float64{0.9, 1.0, 1.2},

		ProjectileSpeed: 16,
		ChainJumps:      2,
		CanHitFlying:    true,
	},
	TowerAmplifier: {
		Name: "Усилитель", MaxLevel: 3,
		Cost:     []int{200, 160, 240},
		Damage:   []int{5, 8, 12},
		Range:    []float64{3.5, 3.9, 4.3},
		FireRate: []float64{0.8, 0.9, 1.0},

		ProjectileSpeed: 11,
		CanHitFlying:    true,

		Effect:         EffectAmplify,
		EffectPower:    0.3, // +30% к получаемому урону
		EffectDuration: 4.0,
	},
}

// Def возвращает статическое описание башни
func (t *Tower) Def() TowerDef {
	return TowerDefs[t.Type]
}

// Damage возвращает урон башни на её текущем уровне
func (t *Tower) Damage() int {
	return t.Def().Damage[t.Level-1]
}

// Range возвращает радиус действия на текущем уровне
func (t *Tower) Range() float64 {
	return t.Def().Range[t.Level-1]
}

// FireRate возвращает скорострельность на текущем уровне
func (t *Tower) FireRate() float64 {
	return t.Def().FireRate[t.Level-1]
}

// Pos возвращает мировую позицию башни (центр клетки)
func (t *Tower) Pos() Vec3 {
	return Vec3{X: float64(t.X) + 0.5, Y: 0, Z: float64(t.Z) + 0.5}
}

// TotalSpent возвращает суммарно вложенное в башню золото (покупка + апгрейды)
func (t *Tower) TotalSpent() int {
	total := 0
	for lvl := 0; lvl < t.Level; lvl++ {
		total += t.Def().Cost[lvl]
	}
	return total
}
