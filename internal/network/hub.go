package network

import (
	"sync"

	"bastion-server/pkg/api"
)

// subscriber - один подключенный игрок и комната, на которую он подписан
type subscriber struct {
	roomCode string
	ch       chan api.ServerEvent
}

// Broadcaster занимается только рассылкой сообщений подписчикам.
// Подписчики группируются по коду комнаты: Broadcast идет всей комнате,
// SendTo - лично. Отправка неблокирующая: медленный клиент теряет
// сообщения, но не тормозит тик симуляции.
type Broadcaster struct {
	mu sync.RWMutex
	// Мапа: PlayerID -> подписка
	subscribers map[string]*subscriber
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[string]*subscriber),
	}
}

// Register создает личный канал для игрока в комнате
func (b *Broadcaster) Register(roomCode, playerID string) chan api.ServerEvent {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Если канал был, закрываем
	if old, ok := b.subscribers[playerID]; ok {
		close(old.ch)
	}

	ch := make(chan api.ServerEvent, 100)
	b.subscribers[playerID] = &subscriber{roomCode: roomCode, ch: ch}
	return ch
}

// Unregister удаляет подписчика
func (b *Broadcaster) Unregister(playerID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if sub, ok := b.subscribers[playerID]; ok {
		close(sub.ch)
		delete(b.subscribers, playerID)
	}
}

// SendTo отправляет сообщение конкретному игроку (Unicast)
func (b *Broadcaster) SendTo(playerID string, msg api.ServerEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if sub, ok := b.subscribers[playerID]; ok {
		select {
		case sub.ch <- msg:
		default:
		}
	}
}

// Broadcast отправляет сообщение всем подписчикам комнаты
func (b *Broadcaster) Broadcast(roomCode string, msg api.ServerEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, sub := range b.subscribers {
		if sub.roomCode != roomCode {
			continue
		}
		select {
		case sub.ch <- msg:
		default:
		}
	}
}

// HasSubscriber проверяет, подключен ли игрок
func (b *Broadcaster) HasSubscriber(playerID string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.subscribers[playerID]
	return ok
}

// RoomSubscriberCount возвращает число подключенных к комнате игроков
func (b *Broadcaster) RoomSubscriberCount(roomCode string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	count := 0
	for _, sub := range b.subscribers {
		if sub.roomCode == roomCode {
			count++
		}
	}
	return count
}
