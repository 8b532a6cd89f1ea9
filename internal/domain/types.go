package domain

// Phase - фаза симуляции одного игрока.
type Phase uint8

const (
	PhaseBuild Phase = iota // Строительная пауза между волнами
	PhaseWave               // Волна активна, враги двигаются
	PhasePaused
	PhaseWon  // Терминальная: все волны зачищены
	PhaseLost // Терминальная: жизни кончились
)

var phaseToString = map[Phase]string{
	PhaseBuild:  "BUILD",
	PhaseWave:   "WAVE",
	PhasePaused: "PAUSED",
	PhaseWon:    "WON",
	PhaseLost:   "LOST",
}

// String реализует интерфейс Stringer (для fmt.Printf и DTO)
func (p Phase) String() string {
	if s, ok := phaseToString[p]; ok {
		return s
	}
	return "UNKNOWN"
}

// TowerType - тип башни
type TowerType string

const (
	TowerArcher    TowerType = "ARCHER"    // Быстрая одиночная цель
	TowerCannon    TowerType = "CANNON"    // Площадной урон, не достает летающих
	TowerFrost     TowerType = "FROST"     // Замедление
	TowerFire      TowerType = "FIRE"      // Поджог (урон во времени)
	TowerSniper    TowerType = "SNIPER"    // Дальнобойная, игнорирует броню
	TowerTesla     TowerType = "TESLA"     // Цепная молния
	TowerAmplifier TowerType = "AMPLIFIER" // Метка, усиливающая получаемый урон
)

// EnemyType - тип врага
type EnemyType string

const (
	EnemyBasic   EnemyType = "BASIC"
	EnemyFast    EnemyType = "FAST"
	EnemyTank    EnemyType = "TANK"
	EnemyFlying  EnemyType = "FLYING"
	EnemyHealer  EnemyType = "HEALER"
	EnemyArmored EnemyType = "ARMORED"
	EnemySwarm   EnemyType = "SWARM"
	EnemyBoss    EnemyType = "BOSS"
)

// EffectType - тип статусного эффекта
type EffectType string

const (
	EffectSlow    EffectType = "SLOW"
	EffectBurn    EffectType = "BURN"
	EffectStun    EffectType = "STUN"
	EffectPoison  EffectType = "POISON"
	EffectAmplify EffectType = "AMPLIFY"
)

// Terrain - классификация клетки поля
type Terrain uint8

const (
	TerrainGround   Terrain = iota // Можно строить
	TerrainPath                    // Дорога врагов
	TerrainSpawn                   // Точка появления врагов
	TerrainBase                    // База игрока (конец пути)
	TerrainWater                   // Декорация, строить нельзя
	TerrainMountain                // Декорация, строить нельзя
)
