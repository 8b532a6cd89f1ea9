package arena

import (
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"bastion-server/internal/domain"
	"bastion-server/internal/network"
	"bastion-server/internal/sim"
	"bastion-server/pkg/api"
	"bastion-server/pkg/gamemap"
	"bastion-server/pkg/logger"
)

// RoomStatus - статус мультиплеерной сессии
type RoomStatus string

const (
	StatusWaiting   RoomStatus = "WAITING"
	StatusCountdown RoomStatus = "COUNTDOWN"
	StatusPlaying   RoomStatus = "PLAYING"
	StatusEnded     RoomStatus = "ENDED"
)

// Room - одна мультиплеерная сессия со своим независимым тиком.
// Все поля под mu: пишет либо горутина тика, либо обработчик команды,
// но никогда параллельно. Комнаты не разделяют изменяемое состояние
// между собой.
type Room struct {
	Code     string
	MapIndex int

	mu sync.Mutex

	HostID  string
	Status  RoomStatus
	players map[string]*Player
	joinSeq int

	// Общая волновая бухгалтерия комнаты: один номер волны на всех,
	// хотя исходы на каждом поле независимы.
	Wave       int
	WaveActive bool
	prepLeft   float64 // Секунды строительной паузы до авто-старта волны

	tickCount     int
	eliminatedSeq int

	cfg Config
	hub *network.Broadcaster

	stop     chan struct{}
	stopOnce sync.Once

	createdAt  time.Time
	endedAt    time.Time
	emptySince time.Time // Нулевое время = есть подключенные
}

func newRoom(code string, mapIndex int, cfg Config, hub *network.Broadcaster) *Room {
	if mapIndex < 0 || mapIndex >= gamemap.MapCount {
		mapIndex = 0
	}
	return &Room{
		Code:      code,
		MapIndex:  mapIndex,
		Status:    StatusWaiting,
		players:   make(map[string]*Player),
		cfg:       cfg,
		hub:       hub,
		stop:      make(chan struct{}),
		createdAt: time.Now(),
	}
}

// Stop останавливает тик комнаты. Идемпотентен: безопасно звать
// и из ухода последнего игрока, и из фоновой чистки.
func (r *Room) Stop() {
	r.stopOnce.Do(func() {
		close(r.stop)
	})
}

// run - цикл тика комнаты с фиксированной частотой.
// Запускается одной горутиной на комнату при старте партии.
func (r *Room) run() {
	interval := time.Second / time.Duration(r.cfg.TickRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Log.WithField("room", r.Code).Info("Room tick loop started")

	last := time.Now()
	for {
		select {
		case <-r.stop:
			logger.Log.WithField("room", r.Code).Info("Room tick loop stopped")
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			if dt <= 0 || dt > 1 {
				// Защита от скачков планировщика
				dt = interval.Seconds()
			}
			last = now
			r.tick(dt)
		}
	}
}

// tick - один синхронный шаг комнаты: все поля живых игроков
// продвигаются по очереди, без параллелизма внутри комнаты.
func (r *Room) tick(dt float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Status != StatusPlaying {
		return
	}

	// 1. Продвигаем симуляцию каждого живого игрока и разбираем события
	for _, p := range r.players {
		if !p.Alive() || p.State == nil || p.State.Terminal() {
			continue
		}
		for _, ev := range sim.Advance(p.State, dt) {
			r.handleSimEvent(p, ev)
		}
	}

	// 2. Выбывание: чья симуляция дошла до проигрыша
	for _, p := range r.players {
		if p.Alive() && p.State != nil && p.State.Phase == domain.PhaseLost {
			r.eliminateLocked(p)
		}
	}

	// 3. Волна комнаты закончена, когда все живые вернулись в стройку
	if r.WaveActive && r.allLiveBoardsSettled() {
		r.WaveActive = false
		waves := gamemap.Waves()
		reward := 0
		if r.Wave >= 1 && r.Wave <= len(waves) {
			reward = waves[r.Wave-1].GoldReward
		}
		r.broadcast(api.ServerEvent{
			Type:       "WAVE_COMPLETE",
			Wave:       r.Wave,
			WaveReward: reward,
		})
		if r.Wave < len(waves) {
			r.prepLeft = r.cfg.PrepDuration
		}
	}

	// 4. Авто-старт следующей волны после строительной паузы
	if !r.WaveActive && r.prepLeft > 0 {
		r.prepLeft -= dt
		if r.prepLeft <= 0 {
			r.startWaveLocked()
		}
	}

	// 5. Конец партии: остался максимум один живой, либо все доиграли
	if r.shouldEndLocked() {
		r.endGameLocked()
		return
	}

	// 6. Слепок состояния уходит с прореженной частотой,
	// чтобы не заливать сеть на каждом тике
	r.tickCount++
	if r.tickCount%r.cfg.SnapshotEvery == 0 {
		r.broadcast(api.ServerEvent{
			Type:     "STATE_UPDATE",
			RoomCode: r.Code,
			Players:  r.snapshotLocked(true),
		})
	}
}

// handleSimEvent конвертирует событие движка в мультиплеерную механику
func (r *Room) handleSimEvent(p *Player, ev domain.Event) {
	switch ev.Type {
	case domain.EventEnemyKilled:
		// Убийства конвертируются в очки отправки
		p.SendPoints += r.cfg.PointsPerKill

	case domain.EventWaveComplete:
		logger.Log.WithFields(logrus.Fields{
			"room":   r.Code,
			"player": p.ID,
			"wave":   ev.Wave,
		}).Debug("Player cleared wave")

	case domain.EventGameWon:
		r.broadcast(api.ServerEvent{
			Type:     "PLAYER_WON",
			PlayerID: p.ID,
		})
	}
}

// allLiveBoardsSettled: у всех живых игроков поле вернулось в стройку
// (или дошло до победы). Пока хоть у кого-то волна активна или поле
// замерло на паузе - ждём.
func (r *Room) allLiveBoardsSettled() bool {
	for _, p := range r.players {
		if !p.Alive() || p.State == nil {
			continue
		}
		if p.State.Phase == domain.PhaseWave || p.State.Phase == domain.PhasePaused {
			return false
		}
	}
	return true
}

// startWaveLocked запускает следующую волну у всех живых игроков
// одновременно: номера волн на всех полях идут в ногу, но исход
// каждого поля дальше независим.
func (r *Room) startWaveLocked() {
	r.prepLeft = 0
	started := 0
	for _, p := range r.players {
		if !p.Alive() || p.State == nil {
			continue
		}
		if wave, err := sim.StartWave(p.State); err == nil {
			r.Wave = wave
			started++
		}
	}
	if started == 0 {
		return
	}

	r.WaveActive = true
	r.broadcast(api.ServerEvent{Type: "WAVE_STARTED", Wave: r.Wave})

	logger.Log.WithFields(logrus.Fields{
		"room": r.Code,
		"wave": r.Wave,
	}).Info("Wave started")
}

// eliminateLocked выбивает игрока из партии.
// Место выбывшему достается сразу: чем позже выбыл, тем выше место.
func (r *Room) eliminateLocked(p *Player) {
	r.eliminatedSeq++
	p.Eliminated = true
	p.EliminationSeq = r.eliminatedSeq
	p.Rank = len(r.players) - r.eliminatedSeq + 1
	p.releaseState()

	r.broadcast(api.ServerEvent{
		Type:       "PLAYER_ELIMINATED",
		PlayerID:   p.ID,
		PlayerName: p.Name,
		Rank:       p.Rank,
	})

	logger.Log.WithFields(logrus.Fields{
		"room":   r.Code,
		"player": p.ID,
		"rank":   p.Rank,
	}).Info("Player eliminated")
}

// shouldEndLocked: партия кончается, когда живых не больше одного
// (при соблюденном минимуме игроков), либо все живые доиграли до конца
func (r *Room) shouldEndLocked() bool {
	if len(r.players) < r.cfg.MinPlayers {
		return false
	}

	alive := 0
	undecided := 0
	for _, p := range r.players {
		if !p.Alive() {
			continue
		}
		alive++
		if p.State != nil && !p.State.Terminal() {
			undecided++
		}
	}
	return alive <= 1 || undecided == 0
}

// endGameLocked подводит итоги и останавливает тик
func (r *Room) endGameLocked() {
	r.Status = StatusEnded
	r.endedAt = time.Now()

	// Живые ранжируются по счету, выбывшие уже получили места
	// в порядке выбывания
	var survivors []*Player
	for _, p := range r.players {
		if p.Alive() {
			survivors = append(survivors, p)
		}
	}
	sort.Slice(survivors, func(i, j int) bool {
		si, sj := 0, 0
		if survivors[i].State != nil {
			si = survivors[i].State.Score
		}
		if survivors[j].State != nil {
			sj = survivors[j].State.Score
		}
		return si > sj
	})
	for i, p := range survivors {
		p.Rank = i + 1
	}

	r.broadcast(api.ServerEvent{
		Type:     "GAME_OVER",
		RoomCode: r.Code,
		Rankings: r.rankingsLocked(),
	})

	logger.Log.WithField("room", r.Code).Info("Game over")
	r.Stop()
}

// rankingsLocked собирает финальную таблицу по местам
func (r *Room) rankingsLocked() []api.RankView {
	rankings := make([]api.RankView, 0, len(r.players))
	for _, p := range r.players {
		score := 0
		if p.State != nil {
			score = p.State.Score
		}
		rankings = append(rankings, api.RankView{
			Rank:     p.Rank,
			PlayerID: p.ID,
			Name:     p.Name,
			Score:    score,
		})
	}
	sort.Slice(rankings, func(i, j int) bool {
		return rankings[i].Rank < rankings[j].Rank
	})
	return rankings
}

// snapshotLocked собирает DTO всех игроков комнаты.
// full=false - только лобби-поля (для списков), без сущностей поля.
func (r *Room) snapshotLocked(full bool) []api.PlayerView {
	views := make([]api.PlayerView, 0, len(r.players))
	for _, p := range r.players {
		view := api.PlayerView{
			ID:         p.ID,
			Name:       p.Name,
			SendPoints: p.SendPoints,
			Eliminated: p.Eliminated,
			Ready:      p.Ready,
			IsHost:     p.ID == r.HostID,
		}
		if p.State != nil {
			view.Phase = p.State.Phase.String()
			view.Gold = p.State.Gold
			view.Lives = p.State.Lives
			view.Score = p.State.Score

			if full {
				view.Towers = towerViews(p.State.Towers)
				view.Enemies = enemyViews(p.State.Enemies)
				view.Projectiles = projectileViews(p.State.Projectiles)
			}
		}
		views = append(views, view)
	}
	sort.Slice(views, func(i, j int) bool { return views[i].ID < views[j].ID })
	return views
}

// broadcast шлет событие всем подключенным к комнате.
// Отправка неблокирующая - тик никогда не ждет сеть.
func (r *Room) broadcast(ev api.ServerEvent) {
	r.hub.Broadcast(r.Code, ev)
}

// --- DTO конвертеры ---

func towerViews(towers []*domain.Tower) []api.TowerView {
	views := make([]api.TowerView, 0, len(towers))
	for _, t := range towers {
		views = append(views, api.TowerView{
			ID: t.ID, Type: string(t.Type),
			X: t.X, Z: t.Z, Level: t.Level, Kills: t.Kills,
		})
	}
	return views
}

func enemyViews(enemies []*domain.Enemy) []api.EnemyView {
	views := make([]api.EnemyView, 0, len(enemies))
	for _, e := range enemies {
		views = append(views, api.EnemyView{
			ID: e.ID, Type: string(e.Type),
			HP: e.HP, MaxHP: e.MaxHP,
			Pos:    api.Position{X: e.Pos.X, Y: e.Pos.Y, Z: e.Pos.Z},
			Flying: e.Flying,
		})
	}
	return views
}

func projectileViews(projectiles []*domain.Projectile) []api.ProjectileView {
	views := make([]api.ProjectileView, 0, len(projectiles))
	for _, p := range projectiles {
		views = append(views, api.ProjectileView{
			ID:  p.ID,
			Pos: api.Position{X: p.Pos.X, Y: p.Pos.Y, Z: p.Pos.Z},
		})
	}
	return views
}
