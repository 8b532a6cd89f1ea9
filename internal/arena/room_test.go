package arena

import (
	"testing"

	"bastion-server/internal/domain"
)

func TestStopIsIdempotent(t *testing.T) {
	svc := NewService(testConfig())
	room := newPlayingRoom(t, svc, "p1", "p2")

	room.Stop()
	room.Stop() // second call must not panic
}

func TestKillsEarnSendPoints(t *testing.T) {
	svc := NewService(testConfig())
	room := newPlayingRoom(t, svc, "p1", "p2")
	p1 := playerOf(t, room, "p1")

	if err := svc.PlaceTower("p1", domain.TowerArcher, 2, 8); err != nil {
		t.Fatalf("PlaceTower failed: %v", err)
	}

	// A nearly dead enemy pinned in front of the tower
	room.mu.Lock()
	st := p1.State
	st.Phase = domain.PhaseWave
	st.Enemies = append(st.Enemies, &domain.Enemy{
		ID: st.NextID("e"), Type: domain.EnemyBasic,
		HP: 1, MaxHP: 50,
		Pos: domain.Vec3{X: 2.5, Y: 0, Z: 7.5},
	})
	room.mu.Unlock()

	for i := 0; i < 100; i++ {
		room.tick(0.05)
	}

	if p1.SendPoints != svc.cfg.PointsPerKill {
		t.Errorf("Expected %d send points for the kill, got %d", svc.cfg.PointsPerKill, p1.SendPoints)
	}
	p2 := playerOf(t, room, "p2")
	if p2.SendPoints != 0 {
		t.Errorf("Rival must not be credited, got %d", p2.SendPoints)
	}
}

func TestRoomWaveLifecycle(t *testing.T) {
	svc := NewService(testConfig())
	room := newPlayingRoom(t, svc, "p1", "p2")
	ch := svc.Hub.Register(room.Code, "p1")

	room.mu.Lock()
	room.startWaveLocked()
	room.mu.Unlock()

	room.mu.Lock()
	if room.Wave != 1 || !room.WaveActive {
		t.Errorf("Expected active wave 1, got wave=%d active=%v", room.Wave, room.WaveActive)
	}
	for id, p := range room.players {
		if p.State.Phase != domain.PhaseWave {
			t.Errorf("Player %s board must enter the wave, got %v", id, p.State.Phase)
		}
	}

	// Both boards settle: the room's wave wraps up and the prep timer arms
	for _, p := range room.players {
		p.State.Tracker = nil
		p.State.Enemies = nil
		p.State.Phase = domain.PhaseBuild
	}
	room.mu.Unlock()

	room.tick(0.05)

	room.mu.Lock()
	if room.WaveActive {
		t.Error("Room wave must complete once every live board settles")
	}
	if room.prepLeft <= 0 {
		t.Error("Prep timer must arm after wave completion")
	}

	// The completion announce carries the wave's gold reward
	sawComplete := false
	for len(ch) > 0 {
		msg := <-ch
		if msg.Type != "WAVE_COMPLETE" {
			continue
		}
		sawComplete = true
		if msg.Wave != 1 || msg.WaveReward != 100 {
			t.Errorf("Wave 1 completion: wave=%d reward=%d", msg.Wave, msg.WaveReward)
		}
	}
	if !sawComplete {
		t.Error("Expected a wave completion announce")
	}

	// Prep timer expires: the next wave auto-starts for everyone
	room.prepLeft = 0.01
	room.mu.Unlock()

	room.tick(0.05)

	room.mu.Lock()
	defer room.mu.Unlock()
	if room.Wave != 2 || !room.WaveActive {
		t.Errorf("Expected auto-started wave 2, got wave=%d active=%v", room.Wave, room.WaveActive)
	}
}

func TestWaveWaitsForEveryBoard(t *testing.T) {
	svc := NewService(testConfig())
	room := newPlayingRoom(t, svc, "p1", "p2")

	room.mu.Lock()
	room.startWaveLocked()

	// Only one board settles; the other still has enemies in play
	p1 := room.players["p1"]
	p1.State.Tracker = nil
	p1.State.Enemies = nil
	p1.State.Phase = domain.PhaseBuild
	room.mu.Unlock()

	room.tick(0.05)

	room.mu.Lock()
	defer room.mu.Unlock()
	if !room.WaveActive {
		t.Error("Room wave must stay open while any live board is fighting")
	}
}

func TestEliminationOrderSetsRanks(t *testing.T) {
	svc := NewService(testConfig())
	room := newPlayingRoom(t, svc, "p1", "p2", "p3")

	// p3 collapses first
	room.mu.Lock()
	room.players["p3"].State.Phase = domain.PhaseLost
	room.mu.Unlock()
	room.tick(0.05)

	p3 := playerOf(t, room, "p3")
	if !p3.Eliminated || p3.Rank != 3 {
		t.Errorf("First out of three takes rank 3, got eliminated=%v rank=%d", p3.Eliminated, p3.Rank)
	}
	if p3.State.Towers != nil || p3.State.Enemies != nil {
		t.Error("Eliminated board must release its entities")
	}

	room.mu.Lock()
	if room.Status != StatusPlaying {
		t.Errorf("Two players remain: the game continues, got %s", room.Status)
	}

	// p2 collapses next: one player left, the game ends
	room.players["p2"].State.Phase = domain.PhaseLost
	room.players["p1"].State.Score = 750
	room.mu.Unlock()
	room.tick(0.05)

	room.mu.Lock()
	defer room.mu.Unlock()
	if room.Status != StatusEnded {
		t.Fatalf("Expected the game to end, got %s", room.Status)
	}
	if got := room.players["p2"].Rank; got != 2 {
		t.Errorf("Second out takes rank 2, got %d", got)
	}
	if got := room.players["p1"].Rank; got != 1 {
		t.Errorf("The survivor takes rank 1, got %d", got)
	}

	rankings := room.rankingsLocked()
	if len(rankings) != 3 {
		t.Fatalf("Expected 3 ranking rows, got %d", len(rankings))
	}
	for i, row := range rankings {
		if row.Rank != i+1 {
			t.Errorf("Rankings must be sorted by place, row %d has rank %d", i, row.Rank)
		}
	}
	if rankings[0].PlayerID != "p1" || rankings[0].Score != 750 {
		t.Errorf("Winner row: %+v", rankings[0])
	}
}

func TestTickIgnoresNonPlayingRoom(t *testing.T) {
	svc := NewService(testConfig())
	room, _ := svc.CreateRoom("p1", "Alice", 0)

	// Must be a no-op, not a panic, before the game starts
	room.tick(0.05)

	room.mu.Lock()
	defer room.mu.Unlock()
	if room.Status != StatusWaiting {
		t.Errorf("Tick must not touch a waiting room, got %s", room.Status)
	}
}

func TestSnapshotDepth(t *testing.T) {
	svc := NewService(testConfig())
	room := newPlayingRoom(t, svc, "p1", "p2")

	if err := svc.PlaceTower("p1", domain.TowerArcher, 2, 0); err != nil {
		t.Fatalf("PlaceTower failed: %v", err)
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	full := room.snapshotLocked(true)
	if len(full) != 2 {
		t.Fatalf("Expected 2 player views, got %d", len(full))
	}
	p1Towers := -1
	for _, v := range full {
		if v.ID == "p1" {
			p1Towers = len(v.Towers)
		}
		if v.Phase == "" {
			t.Errorf("Player %s view missing phase", v.ID)
		}
	}
	if p1Towers != 1 {
		t.Errorf("Full snapshot must carry board entities, towers=%d", p1Towers)
	}

	lobby := room.snapshotLocked(false)
	for _, v := range lobby {
		if len(v.Towers) != 0 {
			t.Error("Lobby snapshot must omit board entities")
		}
	}
}
