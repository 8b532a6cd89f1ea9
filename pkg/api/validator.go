package api

import "errors"

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

func (p CreateRoomPayload) Validate() error {
	if p.Name == "" {
		return errors.New("name is required")
	}
	if p.MapIndex < 0 {
		return errors.New("mapIndex cannot be negative")
	}
	return nil
}

func (p JoinRoomPayload) Validate() error {
	if p.Code == "" {
		return errors.New("room code is required")
	}
	if p.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

func (p PlaceTowerPayload) Validate() error {
	if p.Type == "" {
		return errors.New("tower type is required")
	}
	if p.X < 0 || p.Z < 0 {
		return errors.New("cell coordinates cannot be negative")
	}
	return nil
}

func (p TowerPayload) Validate() error {
	if p.TowerID == "" {
		return errors.New("towerId is required")
	}
	return nil
}

func (p SendEnemyPayload) Validate() error {
	if p.EnemyType == "" {
		return errors.New("enemyType is required")
	}
	return nil
}
