// Package arena владеет жизненным циклом всех активных комнат:
// создание/вход/выход, командный слой поверх движка симуляции,
// межигровая экономика отправки врагов и фоновая чистка.
package arena

import (
	"errors"
	"math/rand"
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

// Ошибки командного слоя. Через сетевую границу никогда не летят паники:
// каждая команда отвечает либо результатом, либо ошибкой-значением.
var (
	ErrRoomNotFound     = errors.New("room not found")
	ErrRoomFull         = errors.New("room is full")
	ErrRoomStarted      = errors.New("game already started")
	ErrNotInRoom        = errors.New("player is not in a room")
	ErrAlreadyInRoom    = errors.New("player is already in a room")
	ErrNotHost          = errors.New("only the host can do this")
	ErrNotPlaying       = errors.New("room is not playing")
	ErrEliminated       = errors.New("player is eliminated")
	ErrNotEnoughPlayers = errors.New("not enough players")
	ErrNotAllReady      = errors.New("not all players are ready")
	ErrNoTarget         = errors.New("no target selected")
	ErrBadTarget        = errors.New("invalid target")
	ErrSelfTarget       = errors.New("cannot target yourself")
	ErrUnknownEnemy     = errors.New("unknown enemy type")
	ErrNotEnoughPoints  = errors.New("not enough send points")
	ErrBadPhase         = errors.New("not allowed in the current phase")
)

// Service владеет коллекцией комнат. Мапа комнат и аллокатор кодов -
// единственные структуры, которые трогают пути управления разных комнат,
// поэтому доступ к ним строго под одним мьютексом.
type Service struct {
	mu       sync.Mutex
	rooms    map[string]*Room // Код комнаты -> комната
	byPlayer map[string]*Room // ID игрока -> его комната
	rng      *rand.Rand

	cfg Config
	Hub *network.Broadcaster

	stop     chan struct{}
	stopOnce sync.Once
}

func NewService(cfg Config) *Service {
	return &Service{
		rooms:    make(map[string]*Room),
		byPlayer: make(map[string]*Room),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		cfg:      cfg,
		Hub:      network.NewBroadcaster(),
		stop:     make(chan struct{}),
	}
}

// Start запускает фоновую чистку устаревших комнат
func (s *Service) Start() {
	go s.runSweep()
}

// Stop останавливает сервис и тики всех комнат
func (s *Service) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.rooms {
		r.Stop()
	}
}

// --- ЖИЗНЕННЫЙ ЦИКЛ КОМНАТ ---

// CreateRoom создает комнату и делает создателя хостом
func (s *Service) CreateRoom(hostID, hostName string, mapIndex int) (*Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byPlayer[hostID]; ok {
		return nil, ErrAlreadyInRoom
	}

	code := s.allocateCode()
	room := newRoom(code, mapIndex, s.cfg, s.Hub)

	room.mu.Lock()
	room.HostID = hostID
	room.addPlayerLocked(hostID, hostName)
	room.mu.Unlock()

	s.rooms[code] = room
	s.byPlayer[hostID] = room

	logger.Log.WithFields(logrus.Fields{
		"room": code,
		"host": hostID,
		"map":  room.MapIndex,
	}).Info("Room created")

	return room, nil
}

// JoinRoom впускает игрока в комнату: переподключает существующего
// на его место либо добавляет нового (если есть место и партия не идет)
func (s *Service) JoinRoom(code, playerID, name string) (*Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[code]
	if !ok {
		return nil, ErrRoomNotFound
	}
	if existing, inRoom := s.byPlayer[playerID]; inRoom && existing != room {
		return nil, ErrAlreadyInRoom
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	// Переподключение: игрок уже числится в комнате
	if p, known := room.players[playerID]; known {
		p.Connected = true
		room.emptySince = time.Time{}
		s.byPlayer[playerID] = room
		logger.Log.WithFields(logrus.Fields{"room": code, "player": playerID}).Info("Player reconnected")
		return room, nil
	}

	if room.Status != StatusWaiting {
		return nil, ErrRoomStarted
	}
	if len(room.players) >= s.cfg.MaxPlayers {
		return nil, ErrRoomFull
	}

	room.addPlayerLocked(playerID, name)
	s.byPlayer[playerID] = room

	room.broadcast(api.ServerEvent{
		Type:       "PLAYER_JOINED",
		RoomCode:   code,
		PlayerID:   playerID,
		PlayerName: name,
		Players:    room.snapshotLocked(false),
	})

	logger.Log.WithFields(logrus.Fields{"room": code, "player": playerID}).Info("Player joined")
	return room, nil
}

// addPlayerLocked добавляет запись игрока (зовется под room.mu)
func (r *Room) addPlayerLocked(playerID, name string) {
	r.joinSeq++
	r.players[playerID] = &Player{
		ID:        playerID,
		Name:      name,
		Connected: true,
		joinSeq:   r.joinSeq,
	}
	r.emptySince = time.Time{}
}

// LeaveRoom выводит игрока из комнаты. Уход посреди партии - это
// немедленное выбывание, не пауза: комната продолжает играть без него.
func (s *Service) LeaveRoom(playerID string) error {
	s.mu.Lock()
	room, ok := s.byPlayer[playerID]
	if !ok {
		s.mu.Unlock()
		return ErrNotInRoom
	}
	delete(s.byPlayer, playerID)
	s.mu.Unlock()

	room.mu.Lock()
	p := room.players[playerID]
	if p == nil {
		room.mu.Unlock()
		return ErrNotInRoom
	}
	p.Connected = false

	switch room.Status {
	case StatusPlaying:
		if p.Alive() {
			room.eliminateLocked(p)
		}
	case StatusWaiting, StatusCountdown:
		delete(room.players, playerID)
		// Хост ушел - передаем права самому раннему из оставшихся
		if room.HostID == playerID {
			room.HostID = room.earliestPlayerLocked()
		}
	}

	room.broadcast(api.ServerEvent{
		Type:       "PLAYER_LEFT",
		RoomCode:   room.Code,
		PlayerID:   playerID,
		PlayerName: p.Name,
		Players:    room.snapshotLocked(false),
	})

	empty := room.connectedCountLocked() == 0
	if empty {
		room.emptySince = time.Now()
	}
	noPlayers := len(room.players) == 0
	room.mu.Unlock()

	logger.Log.WithFields(logrus.Fields{"room": room.Code, "player": playerID}).Info("Player left")

	// Последний игрок ушел - комната сносится сразу, не дожидаясь чистки
	if noPlayers {
		s.removeRoom(room)
	}
	return nil
}

func (r *Room) earliestPlayerLocked() string {
	best := ""
	bestSeq := 0
	for id, p := range r.players {
		if best == "" || p.joinSeq < bestSeq {
			best = id
			bestSeq = p.joinSeq
		}
	}
	return best
}

func (r *Room) connectedCountLocked() int {
	count := 0
	for _, p := range r.players {
		if p.Connected {
			count++
		}
	}
	return count
}

// removeRoom снимает комнату с учета и останавливает её тик
func (s *Service) removeRoom(room *Room) {
	room.Stop()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rooms[room.Code] == room {
		delete(s.rooms, room.Code)
	}
	for id, r := range s.byPlayer {
		if r == room {
			delete(s.byPlayer, id)
		}
	}
	logger.Log.WithField("room", room.Code).Info("Room removed")
}

// --- ЛОББИ ---

// SetReady отмечает готовность игрока в лобби
func (s *Service) SetReady(playerID string, ready bool) error {
	room, p, err := s.playerRoom(playerID)
	if err != nil {
		return err
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	if room.Status != StatusWaiting {
		return ErrRoomStarted
	}
	p.Ready = ready

	room.broadcast(api.ServerEvent{
		Type:     "PLAYER_READY",
		PlayerID: playerID,
		Ready:    ready,
		Players:  room.snapshotLocked(false),
	})
	return nil
}

// StartGame запускает партию: отсчет, затем свежие симуляции и тик.
// Стартовать может только хост, когда игроков достаточно и все
// (кроме самого хоста) готовы.
func (s *Service) StartGame(playerID string) error {
	room, _, err := s.playerRoom(playerID)
	if err != nil {
		return err
	}

	room.mu.Lock()
	if room.Status != StatusWaiting {
		room.mu.Unlock()
		return ErrRoomStarted
	}
	if room.HostID != playerID {
		room.mu.Unlock()
		return ErrNotHost
	}
	if len(room.players) < s.cfg.MinPlayers {
		room.mu.Unlock()
		return ErrNotEnoughPlayers
	}
	for id, p := range room.players {
		if id != room.HostID && !p.Ready {
			room.mu.Unlock()
			return ErrNotAllReady
		}
	}
	room.Status = StatusCountdown
	room.mu.Unlock()

	go s.runCountdown(room)
	return nil
}

// runCountdown ведет предстартовый отсчет и запускает партию
func (s *Service) runCountdown(room *Room) {
	for i := s.cfg.CountdownSeconds; i > 0; i-- {
		room.broadcast(api.ServerEvent{Type: "COUNTDOWN", Countdown: i})
		time.Sleep(time.Second)
	}
	room.beginPlaying()
}

// beginPlaying сбрасывает каждому игроку свежую симуляцию
// и запускает тик комнаты
func (r *Room) beginPlaying() {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Комната могла умереть во время отсчета: все вышли и её уже
	// сняли с учета. Пустую или остановленную комнату не запускаем.
	if r.Status != StatusCountdown || len(r.players) == 0 {
		return
	}
	select {
	case <-r.stop:
		return
	default:
	}

	m := gamemap.ByIndex(r.MapIndex)
	waves := gamemap.Waves()
	for _, p := range r.players {
		p.State = domain.NewGameState(m, waves)
		p.SendPoints = 0
		p.TotalSent = 0
		p.TotalReceived = 0
		p.Eliminated = false
		p.EliminationSeq = 0
		p.Rank = 0
	}

	r.Status = StatusPlaying
	r.Wave = 0
	r.WaveActive = false
	r.prepLeft = r.cfg.PrepDuration
	r.tickCount = 0
	r.eliminatedSeq = 0

	r.broadcast(api.ServerEvent{
		Type:     "GAME_STARTED",
		RoomCode: r.Code,
		MapIndex: r.MapIndex,
		Players:  r.snapshotLocked(true),
	})

	go r.run()

	logger.Log.WithFields(logrus.Fields{
		"room":    r.Code,
		"players": len(r.players),
	}).Info("Game started")
}

// --- ИГРОВЫЕ КОМАНДЫ ---

// withLivePlayer выполняет fn под мьютексом комнаты, если игроку
// разрешены игровые команды (партия идет, игрок не выбыл).
// Один захват мьютекса на команду: проверка предусловий и мутация
// состояния атомарны относительно тика.
func (s *Service) withLivePlayer(playerID string, fn func(room *Room, p *Player) error) error {
	room, p, err := s.playerRoom(playerID)
	if err != nil {
		return err
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	if room.Status != StatusPlaying {
		return ErrNotPlaying
	}
	if !p.Alive() {
		return ErrEliminated
	}
	return fn(room, p)
}

// PlaceTower ставит башню на поле игрока
func (s *Service) PlaceTower(playerID string, towerType domain.TowerType, x, z int) error {
	return s.withLivePlayer(playerID, func(room *Room, p *Player) error {
		tower, err := sim.PlaceTower(p.State, towerType, x, z)
		if err != nil {
			return err
		}

		room.broadcast(api.ServerEvent{
			Type:     "TOWER_PLACED",
			PlayerID: playerID,
			Tower: &api.TowerView{
				ID: tower.ID, Type: string(tower.Type),
				X: tower.X, Z: tower.Z, Level: tower.Level,
			},
		})
		return nil
	})
}

// SellTower продает башню игрока
func (s *Service) SellTower(playerID, towerID string) error {
	return s.withLivePlayer(playerID, func(room *Room, p *Player) error {
		refund, err := sim.SellTower(p.State, towerID)
		if err != nil {
			return err
		}

		room.broadcast(api.ServerEvent{
			Type:     "TOWER_SOLD",
			PlayerID: playerID,
			TowerID:  towerID,
			Refund:   refund,
		})
		return nil
	})
}

// UpgradeTower повышает уровень башни игрока
func (s *Service) UpgradeTower(playerID, towerID string) error {
	return s.withLivePlayer(playerID, func(room *Room, p *Player) error {
		tower, err := sim.UpgradeTower(p.State, towerID)
		if err != nil {
			return err
		}

		room.broadcast(api.ServerEvent{
			Type:     "TOWER_UPGRADED",
			PlayerID: playerID,
			Tower: &api.TowerView{
				ID: tower.ID, Type: string(tower.Type),
				X: tower.X, Z: tower.Z, Level: tower.Level, Kills: tower.Kills,
			},
		})
		return nil
	})
}

// StartWave - ручной запуск волны хостом (раньше авто-таймера)
func (s *Service) StartWave(playerID string) error {
	return s.withLivePlayer(playerID, func(room *Room, p *Player) error {
		if room.HostID != playerID {
			return ErrNotHost
		}
		if room.WaveActive {
			return sim.ErrWaveInProgress
		}
		room.startWaveLocked()
		return nil
	})
}

// SetPaused ставит поле игрока на паузу или снимает её.
// Пауза локальная: тик комнаты продолжается, замирает только это поле.
func (s *Service) SetPaused(playerID string, paused bool) error {
	return s.withLivePlayer(playerID, func(room *Room, p *Player) error {
		var ok bool
		if paused {
			ok = p.State.Pause()
		} else {
			ok = p.State.Resume()
		}
		if !ok {
			return ErrBadPhase
		}

		room.broadcast(api.ServerEvent{
			Type:     "PLAYER_PAUSED",
			PlayerID: playerID,
			Paused:   paused,
		})
		return nil
	})
}

// SelectTarget запоминает цель атак по умолчанию
func (s *Service) SelectTarget(playerID, targetID string) error {
	return s.withLivePlayer(playerID, func(room *Room, p *Player) error {
		if targetID == playerID {
			return ErrSelfTarget
		}
		target := room.players[targetID]
		if target == nil || !target.Alive() {
			return ErrBadTarget
		}
		p.TargetID = targetID
		return nil
	})
}

// SendEnemy тратит очки отправки на врагов для чужого поля.
// Присланные враги появляются прямо на спавне цели, минуя её
// трекер волны, - дальше они неотличимы от волновых.
func (s *Service) SendEnemy(playerID, targetID string, enemyType domain.EnemyType) error {
	return s.withLivePlayer(playerID, func(room *Room, p *Player) error {
		return s.sendEnemyLocked(room, p, targetID, enemyType)
	})
}

func (s *Service) sendEnemyLocked(room *Room, p *Player, targetID string, enemyType domain.EnemyType) error {
	playerID := p.ID
	if targetID == "" {
		targetID = p.TargetID
	}
	if targetID == "" {
		return ErrNoTarget
	}
	if targetID == playerID {
		return ErrSelfTarget
	}
	target := room.players[targetID]
	if target == nil || !target.Alive() || target.State == nil {
		return ErrBadTarget
	}
	// Замершее или доигравшее поле врагов не принимает:
	// очки не списываем, отправитель получает отказ
	if target.State.Terminal() || target.State.Phase == domain.PhasePaused {
		return ErrBadPhase
	}

	opt, ok := s.cfg.SendTable[enemyType]
	if !ok {
		return ErrUnknownEnemy
	}
	if p.SendPoints < opt.Cost {
		return ErrNotEnoughPoints
	}

	p.SendPoints -= opt.Cost
	for i := 0; i < opt.Count; i++ {
		sim.InjectEnemy(target.State, enemyType, opt.HPMult)
	}
	p.TotalSent += opt.Count
	target.TotalReceived += opt.Count

	room.broadcast(api.ServerEvent{
		Type:      "ENEMY_SENT",
		FromID:    playerID,
		TargetID:  targetID,
		EnemyType: string(enemyType),
		Count:     opt.Count,
	})
	// Личное предупреждение жертве
	s.Hub.SendTo(targetID, api.ServerEvent{
		Type:      "INCOMING_ATTACK",
		FromID:    playerID,
		EnemyType: string(enemyType),
		Count:     opt.Count,
	})

	logger.Log.WithFields(logrus.Fields{
		"room":  room.Code,
		"from":  playerID,
		"to":    targetID,
		"enemy": enemyType,
		"count": opt.Count,
	}).Debug("Enemies sent")
	return nil
}

// --- СЛУЖЕБНОЕ ---

// playerRoom находит комнату игрока
func (s *Service) playerRoom(playerID string) (*Room, *Player, error) {
	s.mu.Lock()
	room, ok := s.byPlayer[playerID]
	s.mu.Unlock()
	if !ok {
		return nil, nil, ErrNotInRoom
	}

	room.mu.Lock()
	p := room.players[playerID]
	room.mu.Unlock()
	if p == nil {
		return nil, nil, ErrNotInRoom
	}
	return room, p, nil
}

// RoomByCode возвращает комнату по коду (для отладочных ручек)
func (s *Service) RoomByCode(code string) *Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rooms[code]
}

// RoomCount возвращает число живых комнат
func (s *Service) RoomCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rooms)
}

// runSweep - медленный фоновый обход: сносит комнаты без подключенных
// игроков и завершенные комнаты, пересидевшие таймаут
func (s *Service) runSweep() {
	ticker := time.NewTicker(s.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case now := <-ticker.C:
			s.sweepOnce(now)
		}
	}
}

func (s *Service) sweepOnce(now time.Time) {
	s.mu.Lock()
	candidates := make([]*Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		candidates = append(candidates, r)
	}
	s.mu.Unlock()

	for _, r := range candidates {
		r.mu.Lock()
		stale := false
		if r.Status == StatusEnded && now.Sub(r.endedAt) > s.cfg.RoomIdleTimeout {
			stale = true
		}
		if !r.emptySince.IsZero() && now.Sub(r.emptySince) > s.cfg.RoomIdleTimeout {
			stale = true
		}
		r.mu.Unlock()

		if stale {
			logger.Log.WithField("room", r.Code).Info("Sweeping stale room")
			s.removeRoom(r)
		}
	}
}
