package sim

import "bastion-server/internal/domain"

// Геометрические константы симуляции (в клетках)
const (
	flyingHeight = 1.5 // Высота полета летающих врагов

	hitEpsilon     = 0.1 // Дистанция, на которой снаряд считается попавшим
	aoeInnerRadius = 0.5 // Внутри - полный урон площади
	aoeOuterFactor = 0.5 // Снаружи внутреннего радиуса - половинный
	chainRange     = 2.5 // Радиус прыжка цепной молнии
	chainFalloff   = 0.6 // Множитель урона на каждый прыжок
	towerHeight    = 1.0 // Откуда вылетает снаряд
)

// Advance продвигает симуляцию одного игрока на dt секунд и возвращает
// ленту дискретных событий этого шага (убийства, потери жизней, конец волны).
//
// Порядок шагов фиксирован и значим: спавн -> движение -> выбор целей ->
// стрельба -> снаряды -> эффекты -> лекари -> чистка -> проверка фазы.
// Например, враг, умирающий от поджога на этом шаге, все еще участвует
// в выборе целей - башни не стреляют "в пустоту".
//
// Вне фазы волны тик пустой: в строительную фазу никто не двигается,
// терминальные фазы не обрабатываются вовсе.
func Advance(st *domain.GameState, dt float64) []domain.Event {
	if st.Phase != domain.PhaseWave {
		return nil
	}

	var events []domain.Event

	tickSpawns(st, dt)
	moveEnemies(st, dt, &events)
	retargetTowers(st)
	fireTowers(st, dt)
	moveProjectiles(st, dt, &events)
	tickEffects(st, dt, &events)
	tickHealers(st, dt)
	cleanup(st)
	checkPhase(st, &events)

	return events
}

// tickSpawns выпускает врагов по расписанию активной волны
func tickSpawns(st *domain.GameState, dt float64) {
	if st.Tracker == nil {
		return
	}
	for _, group := range st.Tracker.Tick(dt) {
		spawnEnemy(st, group.Enemy, group.HPMult, group.SpeedMult)
	}
}

// cleanup убирает мертвых врагов и отработавшие снаряды
func cleanup(st *domain.GameState) {
	enemies := st.Enemies[:0]
	for _, e := range st.Enemies {
		if e.Alive() {
			enemies = append(enemies, e)
		}
	}
	st.Enemies = enemies

	projectiles := st.Projectiles[:0]
	for _, p := range st.Projectiles {
		if !p.Done && st.EnemyByID(p.TargetID) != nil {
			projectiles = append(projectiles, p)
		}
	}
	st.Projectiles = projectiles
}

// checkPhase проверяет проигрыш и завершение волны.
// Волна завершена тогда и только тогда, когда трекер спавна исчерпан
// И живых врагов не осталось (присланные врагами других игроков тоже
// удерживают фазу волны).
func checkPhase(st *domain.GameState, events *[]domain.Event) {
	if st.Lives <= 0 {
		st.Phase = domain.PhaseLost
		st.Tracker = nil
		*events = append(*events, domain.Event{Type: domain.EventGameLost})
		return
	}

	if st.Tracker != nil && !st.Tracker.Exhausted() {
		return
	}
	if len(st.Enemies) > 0 {
		return
	}

	// Награду платим только за "настоящую" волну: если трекера нет,
	// поле чистили от присланных врагов вне волны.
	if st.Tracker != nil {
		wave := st.Waves[st.Tracker.WaveNumber-1]
		st.Gold += wave.GoldReward
		st.Score += wave.ScoreReward
		*events = append(*events, domain.Event{
			Type:       domain.EventWaveComplete,
			Wave:       st.Tracker.WaveNumber,
			WaveReward: wave.GoldReward,
		})
		st.Tracker = nil
	}

	if st.WaveNumber >= len(st.Waves) {
		st.Phase = domain.PhaseWon
		*events = append(*events, domain.Event{Type: domain.EventGameWon})
		return
	}
	st.Phase = domain.PhaseBuild
}

// killEnemy помечает врага мертвым и начисляет награду за убийство
func killEnemy(st *domain.GameState, e *domain.Enemy, towerID string, events *[]domain.Event) {
	def := e.Def()
	st.Gold += def.Bounty
	st.Score += def.Points

	if tower := st.TowerByID(towerID); tower != nil {
		tower.Kills++
	}

	*events = append(*events, domain.Event{
		Type:      domain.EventEnemyKilled,
		EnemyID:   e.ID,
		EnemyType: e.Type,
		TowerID:   towerID,
		Gold:      def.Bounty,
		Points:    def.Points,
	})
}
