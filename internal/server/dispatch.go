package server

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"bastion-server/internal/domain"
	"bastion-server/pkg/api"
	"bastion-server/pkg/logger"
)

var errBadPayload = errors.New("invalid payload")

// decode разбирает и валидирует payload команды
func decode[T any](raw json.RawMessage, dst *T) error {
	if err := json.Unmarshal(raw, dst); err != nil {
		return errBadPayload
	}
	if v, ok := any(*dst).(api.Validator); ok {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// dispatch маршрутизирует команду клиента в менеджер комнат.
// Любой отказ уходит обратно клиенту событием ERROR - сюда
// никогда не долетают паники движка.
func (c *Client) dispatch(cmd api.ClientCommand) {
	err := c.route(cmd)
	if err != nil {
		logger.Log.WithFields(logrus.Fields{
			"player": c.PlayerID,
			"action": cmd.Action,
		}).WithError(err).Debug("Command rejected")

		c.Send <- api.ServerEvent{Type: "ERROR", Reason: err.Error()}
	}
}

func (c *Client) route(cmd api.ClientCommand) error {
	switch cmd.Action {
	case "CREATE_ROOM":
		var p api.CreateRoomPayload
		if err := decode(cmd.Payload, &p); err != nil {
			return err
		}
		room, err := c.Arena.CreateRoom(c.PlayerID, p.Name, p.MapIndex)
		if err != nil {
			return err
		}
		c.subscribe(room.Code)
		c.Send <- api.ServerEvent{
			Type:     "ROOM_CREATED",
			RoomCode: room.Code,
			MapIndex: room.MapIndex,
			PlayerID: c.PlayerID,
		}
		return nil

	case "JOIN_ROOM":
		var p api.JoinRoomPayload
		if err := decode(cmd.Payload, &p); err != nil {
			return err
		}
		room, err := c.Arena.JoinRoom(strings.ToUpper(p.Code), c.PlayerID, p.Name)
		if err != nil {
			return err
		}
		c.subscribe(room.Code)
		c.Send <- api.ServerEvent{
			Type:     "ROOM_JOINED",
			RoomCode: room.Code,
			MapIndex: room.MapIndex,
			PlayerID: c.PlayerID,
		}
		return nil

	case "LEAVE_ROOM":
		c.Arena.Hub.Unregister(c.PlayerID)
		return c.Arena.LeaveRoom(c.PlayerID)

	case "SET_READY":
		var p api.ReadyPayload
		if err := decode(cmd.Payload, &p); err != nil {
			return err
		}
		return c.Arena.SetReady(c.PlayerID, p.Ready)

	case "START_GAME":
		return c.Arena.StartGame(c.PlayerID)

	case "PLACE_TOWER":
		var p api.PlaceTowerPayload
		if err := decode(cmd.Payload, &p); err != nil {
			return err
		}
		return c.Arena.PlaceTower(c.PlayerID, domain.TowerType(p.Type), p.X, p.Z)

	case "SELL_TOWER":
		var p api.TowerPayload
		if err := decode(cmd.Payload, &p); err != nil {
			return err
		}
		return c.Arena.SellTower(c.PlayerID, p.TowerID)

	case "UPGRADE_TOWER":
		var p api.TowerPayload
		if err := decode(cmd.Payload, &p); err != nil {
			return err
		}
		return c.Arena.UpgradeTower(c.PlayerID, p.TowerID)

	case "START_WAVE":
		return c.Arena.StartWave(c.PlayerID)

	case "SET_PAUSED":
		var p api.PausePayload
		if err := decode(cmd.Payload, &p); err != nil {
			return err
		}
		return c.Arena.SetPaused(c.PlayerID, p.Paused)

	case "SEND_ENEMY":
		var p api.SendEnemyPayload
		if err := decode(cmd.Payload, &p); err != nil {
			return err
		}
		return c.Arena.SendEnemy(c.PlayerID, p.TargetID, domain.EnemyType(p.EnemyType))

	case "SELECT_TARGET":
		var p api.SelectTargetPayload
		if err := decode(cmd.Payload, &p); err != nil {
			return err
		}
		return c.Arena.SelectTarget(c.PlayerID, p.TargetID)

	default:
		return errors.New("unknown action: " + cmd.Action)
	}
}
