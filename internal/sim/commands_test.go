package sim

import (
	"errors"
	"testing"

	"bastion-server/internal/domain"
)

func TestPlaceTowerSpendsGold(t *testing.T) {
	st := newTestState()

	tower, err := PlaceTower(st, domain.TowerArcher, 2, 0)
	if err != nil {
		t.Fatalf("PlaceTower failed: %v", err)
	}

	if st.Gold != 400 {
		t.Errorf("Expected gold 400 after placing archer, got %d", st.Gold)
	}
	if tower.Level != 1 {
		t.Errorf("New tower must start at level 1, got %d", tower.Level)
	}
	if cell := st.Map.CellAt(2, 0); cell.TowerID != tower.ID {
		t.Errorf("Cell (2,0) must hold the tower, got %q", cell.TowerID)
	}
	if st.Map.IsBuildable(2, 0) {
		t.Error("Occupied cell must not stay buildable")
	}
}

func TestPlaceTowerRejectsBadCells(t *testing.T) {
	st := newTestState()

	// Path cell
	if _, err := PlaceTower(st, domain.TowerArcher, 3, 1); !errors.Is(err, ErrCellOccupied) {
		t.Errorf("Expected ErrCellOccupied on path cell, got %v", err)
	}
	// Out of bounds
	if _, err := PlaceTower(st, domain.TowerArcher, -1, 0); !errors.Is(err, ErrCellOccupied) {
		t.Errorf("Expected ErrCellOccupied out of bounds, got %v", err)
	}
	// Occupied cell
	if _, err := PlaceTower(st, domain.TowerArcher, 2, 0); err != nil {
		t.Fatalf("First placement failed: %v", err)
	}
	if _, err := PlaceTower(st, domain.TowerCannon, 2, 0); !errors.Is(err, ErrCellOccupied) {
		t.Errorf("Expected ErrCellOccupied on occupied cell, got %v", err)
	}
	// Unknown type
	if _, err := PlaceTower(st, domain.TowerType("CATAPULT"), 3, 0); !errors.Is(err, ErrUnknownTower) {
		t.Errorf("Expected ErrUnknownTower, got %v", err)
	}

	// Rejections must not touch the treasury
	if st.Gold != 400 {
		t.Errorf("Gold must only change on success, got %d", st.Gold)
	}
}

func TestPlaceTowerNotEnoughGold(t *testing.T) {
	st := newTestState()
	st.Gold = 50

	if _, err := PlaceTower(st, domain.TowerArcher, 2, 0); !errors.Is(err, ErrNotEnoughGold) {
		t.Errorf("Expected ErrNotEnoughGold, got %v", err)
	}
	if st.Gold != 50 || len(st.Towers) != 0 {
		t.Errorf("Failed placement must not change state: gold=%d towers=%d", st.Gold, len(st.Towers))
	}
}

func TestPlaceTowerAllowedDuringWave(t *testing.T) {
	st := newTestState()
	st.Phase = domain.PhaseWave

	if _, err := PlaceTower(st, domain.TowerArcher, 2, 0); err != nil {
		t.Errorf("Placement during a wave must be allowed, got %v", err)
	}
}

func TestSellTowerRefund(t *testing.T) {
	st := newTestState()
	tower, err := PlaceTower(st, domain.TowerArcher, 2, 0)
	if err != nil {
		t.Fatalf("PlaceTower failed: %v", err)
	}

	refund, err := SellTower(st, tower.ID)
	if err != nil {
		t.Fatalf("SellTower failed: %v", err)
	}
	// 70% of the 100 invested
	if refund != 70 {
		t.Errorf("Expected refund 70, got %d", refund)
	}
	if st.Gold != 470 {
		t.Errorf("Expected gold 470 after sale, got %d", st.Gold)
	}
	if len(st.Towers) != 0 {
		t.Errorf("Sold tower must be removed, %d towers left", len(st.Towers))
	}
	if !st.Map.IsBuildable(2, 0) {
		t.Error("Cell must become buildable again after the sale")
	}
}

func TestSellRefundIncludesUpgrades(t *testing.T) {
	st := newTestState()
	tower, _ := PlaceTower(st, domain.TowerArcher, 2, 0)
	if _, err := UpgradeTower(st, tower.ID); err != nil {
		t.Fatalf("UpgradeTower failed: %v", err)
	}

	refund, err := SellTower(st, tower.ID)
	if err != nil {
		t.Fatalf("SellTower failed: %v", err)
	}
	// Invested 100 + 80, refund is exactly 70% of 180
	if refund != 126 {
		t.Errorf("Expected refund 126, got %d", refund)
	}
}

func TestUpgradeTowerCostsAndCaps(t *testing.T) {
	st := newTestState()
	tower, _ := PlaceTower(st, domain.TowerArcher, 2, 0) // 500 -> 400

	if _, err := UpgradeTower(st, tower.ID); err != nil {
		t.Fatalf("Upgrade to level 2 failed: %v", err)
	}
	if st.Gold != 320 || tower.Level != 2 {
		t.Errorf("After first upgrade: gold=%d level=%d", st.Gold, tower.Level)
	}

	if _, err := UpgradeTower(st, tower.ID); err != nil {
		t.Fatalf("Upgrade to level 3 failed: %v", err)
	}
	if st.Gold != 200 || tower.Level != 3 {
		t.Errorf("After second upgrade: gold=%d level=%d", st.Gold, tower.Level)
	}

	if _, err := UpgradeTower(st, tower.ID); !errors.Is(err, ErrMaxLevel) {
		t.Errorf("Expected ErrMaxLevel at level cap, got %v", err)
	}
	if st.Gold != 200 {
		t.Errorf("Rejected upgrade must not spend gold, got %d", st.Gold)
	}
}

func TestUpgradeUnknownTower(t *testing.T) {
	st := newTestState()
	if _, err := UpgradeTower(st, "t404"); !errors.Is(err, ErrTowerNotFound) {
		t.Errorf("Expected ErrTowerNotFound, got %v", err)
	}
	if _, err := SellTower(st, "t404"); !errors.Is(err, ErrTowerNotFound) {
		t.Errorf("Expected ErrTowerNotFound on sale, got %v", err)
	}
}

func TestStartWave(t *testing.T) {
	st := newTestState()

	wave, err := StartWave(st)
	if err != nil {
		t.Fatalf("StartWave failed: %v", err)
	}
	if wave != 1 {
		t.Errorf("First wave must be 1, got %d", wave)
	}
	if st.Phase != domain.PhaseWave {
		t.Errorf("Expected wave phase, got %v", st.Phase)
	}
	if st.Tracker == nil {
		t.Fatal("StartWave must create a spawn tracker")
	}

	if _, err := StartWave(st); !errors.Is(err, ErrWaveInProgress) {
		t.Errorf("Expected ErrWaveInProgress, got %v", err)
	}
}

func TestStartWaveExhaustedTable(t *testing.T) {
	st := newTestState(domain.Wave{
		Groups: []domain.SpawnGroup{{Enemy: domain.EnemyBasic, Count: 1, SpawnDelay: 1}},
	})
	st.WaveNumber = 1

	if _, err := StartWave(st); !errors.Is(err, ErrNoWavesLeft) {
		t.Errorf("Expected ErrNoWavesLeft, got %v", err)
	}
}

func TestCommandsRejectedInTerminalPhases(t *testing.T) {
	st := newTestState()
	st.Phase = domain.PhaseLost

	if _, err := PlaceTower(st, domain.TowerArcher, 2, 0); !errors.Is(err, ErrGameOver) {
		t.Errorf("Expected ErrGameOver for placement, got %v", err)
	}
	if _, err := StartWave(st); !errors.Is(err, ErrGameOver) {
		t.Errorf("Expected ErrGameOver for wave start, got %v", err)
	}

	st.Phase = domain.PhasePaused
	if _, err := PlaceTower(st, domain.TowerArcher, 2, 0); !errors.Is(err, ErrGamePaused) {
		t.Errorf("Expected ErrGamePaused, got %v", err)
	}
}

func TestInjectEnemy(t *testing.T) {
	st := newTestState()

	e := InjectEnemy(st, domain.EnemyFast, 1.2)
	if e == nil {
		t.Fatal("InjectEnemy returned nil on a live board")
	}

	// 35 base HP, 1.2 multiplier
	if e.HP != 42 || e.MaxHP != 42 {
		t.Errorf("Expected boosted HP 42, got %.1f/%.1f", e.HP, e.MaxHP)
	}
	if e.Pos != st.Map.SpawnPoint() {
		t.Errorf("Injected enemy must appear at spawn, got %+v", e.Pos)
	}
	// Build phase flips to wave so the enemy starts moving
	if st.Phase != domain.PhaseWave {
		t.Errorf("Expected wave phase after injection, got %v", st.Phase)
	}

	st.Phase = domain.PhaseLost
	if got := InjectEnemy(st, domain.EnemyFast, 1.0); got != nil {
		t.Error("InjectEnemy must be a no-op on a finished board")
	}
}
