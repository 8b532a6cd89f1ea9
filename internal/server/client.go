package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"bastion-server/internal/arena"
	"bastion-server/pkg/api"
	"bastion-server/pkg/logger"
	"bastion-server/pkg/utils"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client - посредник между Websocket и менеджером комнат
type Client struct {
	Arena    *arena.Service
	Conn     *websocket.Conn
	Send     chan api.ServerEvent
	PlayerID string
}

func NewClient(service *arena.Service, conn *websocket.Conn) *Client {
	return &Client{
		Arena: service,
		Conn:  conn,
		Send:  make(chan api.ServerEvent, 256),
	}
}

// readPump читает команды от клиента
func (c *Client) readPump() {
	defer func() {
		c.Arena.Hub.Unregister(c.PlayerID)
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Debug("failed to close websocket connection")
		}
		// Отключение посреди партии = немедленное выбывание
		if c.PlayerID != "" {
			if err := c.Arena.LeaveRoom(c.PlayerID); err == nil {
				logger.Log.WithField("player", c.PlayerID).Info("Client disconnected, left room")
			}
		}
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logger.Log.WithError(err).Warn("failed to set read deadline")
	}
	c.Conn.SetPongHandler(func(string) error {
		if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			logger.Log.WithError(err).Warn("failed to set pong read deadline")
		}
		return nil
	})

	// 1. HANDSHAKE: клиент представляется, сервер выдает/подтверждает ID
	var hello api.ClientCommand
	if err := c.Conn.ReadJSON(&hello); err != nil {
		logger.Log.Warn("Handshake failed")
		return
	}

	c.PlayerID = hello.Token
	if c.PlayerID == "" {
		c.PlayerID = utils.GenerateID()
	}

	logger.Log.WithFields(logrus.Fields{
		"player": c.PlayerID,
	}).Info("Client logged in")

	c.Send <- api.ServerEvent{Type: "WELCOME", PlayerID: c.PlayerID}

	// 2. ЦИКЛ ЧТЕНИЯ КОМАНД
	for {
		var cmd api.ClientCommand
		if err := c.Conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Log.Errorf("WS Error: %v", err)
			}
			break
		}
		// Token проставляем сами - клиенту подделать чужой ID нельзя
		cmd.Token = c.PlayerID
		c.dispatch(cmd)
	}
}

// writePump отправляет данные клиенту + Ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Debug("failed to close websocket connection in writePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.Send:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					logger.Log.WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := c.Conn.WriteJSON(message); err != nil {
				logger.Log.WithError(err).Debug("write json message failed")
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logger.Log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}

// subscribe подключает личный канал игрока к writePump.
// Зовется после входа в комнату - до этого слать нечего.
func (c *Client) subscribe(roomCode string) {
	updates := c.Arena.Hub.Register(roomCode, c.PlayerID)
	go func() {
		for msg := range updates {
			select {
			case c.Send <- msg:
			default:
				// Медленный клиент: сообщение теряется, тик не ждет
			}
		}
	}()
}
