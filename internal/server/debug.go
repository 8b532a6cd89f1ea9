package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"bastion-server/internal/arena"
)

// DebugHandler предоставляет доступ к внутреннему состоянию комнат
type DebugHandler struct {
	Service *arena.Service
}

func NewDebugHandler(s *arena.Service) *DebugHandler {
	return &DebugHandler{Service: s}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/rooms", h.handleListRooms)
	mux.HandleFunc("/debug/room", h.handleDumpRoom)
}

// /debug/rooms - список активных комнат
func (h *DebugHandler) handleListRooms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Service.DebugRooms())
}

// /debug/room?code=TDXXXX - слепок одной комнаты со всеми полями игроков
func (h *DebugHandler) handleDumpRoom(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(r.URL.Query().Get("code"))
	room := h.Service.RoomByCode(code)
	if room == nil {
		http.Error(w, "Room not found", http.StatusNotFound)
		return
	}

	writeJSON(w, room.DebugSnapshot())
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Content-Type", "application/json")

	// Пустой результат отдаем как [], а не null
	if data == nil {
		if _, err := w.Write([]byte("[]")); err != nil {
			return
		}
		return
	}

	_ = json.NewEncoder(w).Encode(data)
}
