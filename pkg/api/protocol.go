package api

import "encoding/json"

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это корневой объект для всех сообщений от клиента к серверу.
type ClientCommand struct {
	// Token ID игрока, от имени которого выполняется действие.
	// Проставляется сервером после рукопожатия - клиенту подделать нельзя.
	Token string `json:"token,omitempty"`

	// Action название команды (CREATE_ROOM, PLACE_TOWER, ...).
	Action string `json:"action"`

	// Payload JSON-объект с данными. Структура зависит от Action.
	Payload json.RawMessage `json:"payload"`
}

// --- Payloads ---

// CreateRoomPayload - создание комнаты (создатель становится хостом)
type CreateRoomPayload struct {
	Name     string `json:"name"`
	MapIndex int    `json:"mapIndex"`
}

// JoinRoomPayload - вход в комнату по коду
type JoinRoomPayload struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// ReadyPayload - отметка готовности в лобби
type ReadyPayload struct {
	Ready bool `json:"ready"`
}

// PausePayload - пауза/снятие паузы собственного поля
type PausePayload struct {
	Paused bool `json:"paused"`
}

// PlaceTowerPayload - постройка башни на клетке (x, z)
type PlaceTowerPayload struct {
	Type string `json:"type"`
	X    int    `json:"x"`
	Z    int    `json:"z"`
}

// TowerPayload - действия с существующей башней (SELL_TOWER, UPGRADE_TOWER)
type TowerPayload struct {
	TowerID string `json:"towerId"`
}

// SendEnemyPayload - отправка врага на поле другого игрока
type SendEnemyPayload struct {
	TargetID  string `json:"targetId,omitempty"` // Пусто - цель по умолчанию
	EnemyType string `json:"enemyType"`
}

// SelectTargetPayload - выбор цели атак по умолчанию
type SelectTargetPayload struct {
	TargetID string `json:"targetId"`
}

// --- СЕРВЕР -> КЛИЕНТ ---

// ServerEvent это корневой объект всех сообщений сервера.
// Заполняются только поля, относящиеся к конкретному Type.
type ServerEvent struct {
	Type string `json:"type"`

	RoomCode string `json:"roomCode,omitempty"`
	MapIndex int    `json:"mapIndex,omitempty"`

	// PLAYER_JOINED / PLAYER_LEFT / PLAYER_READY / PLAYER_PAUSED / PLAYER_ELIMINATED
	PlayerID   string `json:"playerId,omitempty"`
	PlayerName string `json:"playerName,omitempty"`
	Ready      bool   `json:"ready,omitempty"`
	Paused     bool   `json:"paused,omitempty"`
	Rank       int    `json:"rank,omitempty"`

	// COUNTDOWN
	Countdown int `json:"countdown,omitempty"`

	// TOWER_PLACED / TOWER_UPGRADED / TOWER_SOLD
	Tower   *TowerView `json:"tower,omitempty"`
	TowerID string     `json:"towerId,omitempty"`
	Refund  int        `json:"refund,omitempty"`

	// WAVE_STARTED / WAVE_COMPLETE
	Wave       int `json:"wave,omitempty"`
	WaveReward int `json:"waveReward,omitempty"`

	// ENEMY_SENT / INCOMING_ATTACK
	FromID    string `json:"fromId,omitempty"`
	TargetID  string `json:"targetId,omitempty"`
	EnemyType string `json:"enemyType,omitempty"`
	Count     int    `json:"count,omitempty"`

	// STATE_UPDATE / GAME_OVER
	Players  []PlayerView `json:"players,omitempty"`
	Rankings []RankView   `json:"rankings,omitempty"`

	// ERROR - причина отказа команды
	Reason string `json:"reason,omitempty"`
}

// PlayerView - слепок состояния одного игрока для рассылки.
// Это подмножество симуляции: полная внутренняя структура
// (трекеры спавна, кулдауны) клиенту не уходит.
type PlayerView struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Phase      string `json:"phase"`
	Gold       int    `json:"gold"`
	Lives      int    `json:"lives"`
	Score      int    `json:"score"`
	SendPoints int    `json:"sendPoints"`
	Eliminated bool   `json:"eliminated,omitempty"`
	Ready      bool   `json:"ready,omitempty"`
	IsHost     bool   `json:"isHost,omitempty"`

	Towers      []TowerView      `json:"towers,omitempty"`
	Enemies     []EnemyView      `json:"enemies,omitempty"`
	Projectiles []ProjectileView `json:"projectiles,omitempty"`
}

// TowerView - DTO башни
type TowerView struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	X     int    `json:"x"`
	Z     int    `json:"z"`
	Level int    `json:"level"`
	Kills int    `json:"kills"`
}

// EnemyView - DTO врага
type EnemyView struct {
	ID     string   `json:"id"`
	Type   string   `json:"type"`
	HP     float64  `json:"hp"`
	MaxHP  float64  `json:"maxHp"`
	Pos    Position `json:"pos"`
	Flying bool     `json:"flying,omitempty"`
}

// ProjectileView - DTO снаряда
type ProjectileView struct {
	ID  string   `json:"id"`
	Pos Position `json:"pos"`
}

// Position - точка в мировых координатах
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// RankView - строка финальной таблицы
type RankView struct {
	Rank     int    `json:"rank"`
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Score    int    `json:"score"`
}
