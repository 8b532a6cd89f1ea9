package arena

import (
	"time"

	"bastion-server/pkg/api"
)

// RoomSummary - строка списка комнат для отладочных ручек
type RoomSummary struct {
	Code      string    `json:"code"`
	Status    string    `json:"status"`
	MapIndex  int       `json:"map_index"`
	Players   int       `json:"players"`
	Connected int       `json:"connected"`
	Wave      int       `json:"wave"`
	CreatedAt time.Time `json:"created_at"`
}

// RoomDump - полный слепок комнаты, включая поля всех игроков
type RoomDump struct {
	Code       string           `json:"code"`
	Status     string           `json:"status"`
	MapIndex   int              `json:"map_index"`
	HostID     string           `json:"host_id"`
	Wave       int              `json:"wave"`
	WaveActive bool             `json:"wave_active"`
	Players    []api.PlayerView `json:"players"`
}

// DebugRooms возвращает сводку по всем живым комнатам
func (s *Service) DebugRooms() []RoomSummary {
	s.mu.Lock()
	rooms := make([]*Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		rooms = append(rooms, r)
	}
	s.mu.Unlock()

	summary := make([]RoomSummary, 0, len(rooms))
	for _, r := range rooms {
		r.mu.Lock()
		summary = append(summary, RoomSummary{
			Code:      r.Code,
			Status:    string(r.Status),
			MapIndex:  r.MapIndex,
			Players:   len(r.players),
			Connected: r.connectedCountLocked(),
			Wave:      r.Wave,
			CreatedAt: r.createdAt,
		})
		r.mu.Unlock()
	}
	return summary
}

// DebugSnapshot - полный дамп одной комнаты
func (r *Room) DebugSnapshot() RoomDump {
	r.mu.Lock()
	defer r.mu.Unlock()

	return RoomDump{
		Code:       r.Code,
		Status:     string(r.Status),
		MapIndex:   r.MapIndex,
		HostID:     r.HostID,
		Wave:       r.Wave,
		WaveActive: r.WaveActive,
		Players:    r.snapshotLocked(true),
	}
}
