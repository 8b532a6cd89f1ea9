package domain

import "testing"

func trackerFor(groups ...SpawnGroup) *WaveTracker {
	return NewWaveTracker(1, Wave{Groups: groups})
}

func TestTrackerFirstSpawnIsImmediate(t *testing.T) {
	tr := trackerFor(SpawnGroup{Enemy: EnemyBasic, Count: 3, SpawnDelay: 1.0})

	if due := tr.Tick(0.05); len(due) != 1 {
		t.Fatalf("Expected the first enemy on the first tick, got %d", len(due))
	}
	if due := tr.Tick(0.5); len(due) != 0 {
		t.Errorf("Expected no spawn before the delay elapses, got %d", len(due))
	}
	if due := tr.Tick(0.5); len(due) != 1 {
		t.Errorf("Expected the second enemy after 1.0s, got %d", len(due))
	}
}

func TestTrackerStartOffset(t *testing.T) {
	tr := trackerFor(SpawnGroup{Enemy: EnemyFast, Count: 2, SpawnDelay: 1.0, StartOffset: 2.0})

	if due := tr.Tick(1.0); len(due) != 0 {
		t.Errorf("Group must not start before its offset, got %d", len(due))
	}
	// Overshoot past the offset still releases exactly one enemy
	if due := tr.Tick(1.5); len(due) != 1 {
		t.Errorf("Expected the group to start, got %d", len(due))
	}
}

func TestTrackerLargeStepSpawnsMultiple(t *testing.T) {
	tr := trackerFor(SpawnGroup{Enemy: EnemySwarm, Count: 5, SpawnDelay: 0.5})

	tr.Tick(0.05) // first out
	due := tr.Tick(2.5)
	if len(due) != 4 {
		t.Errorf("A large step must release every overdue enemy, got %d", len(due))
	}
	if !tr.Exhausted() {
		t.Error("Tracker must be exhausted after the full count")
	}
	if due := tr.Tick(1.0); len(due) != 0 {
		t.Errorf("Exhausted tracker must stay silent, got %d", len(due))
	}
}

func TestTrackerParallelGroups(t *testing.T) {
	tr := trackerFor(
		SpawnGroup{Enemy: EnemyBasic, Count: 1, SpawnDelay: 1.0},
		SpawnGroup{Enemy: EnemyFast, Count: 1, SpawnDelay: 1.0, StartOffset: 1.0},
	)

	due := tr.Tick(0.05)
	if len(due) != 1 || due[0].Enemy != EnemyBasic {
		t.Fatalf("Expected only the immediate group, got %+v", due)
	}
	due = tr.Tick(1.0)
	if len(due) != 1 || due[0].Enemy != EnemyFast {
		t.Fatalf("Expected the delayed group, got %+v", due)
	}
	if !tr.Exhausted() {
		t.Error("Both groups done: tracker must be exhausted")
	}
}
