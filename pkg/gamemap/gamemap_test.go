package gamemap

import (
	"math"
	"testing"

	"bastion-server/internal/domain"
)

func TestEveryMapIsWellFormed(t *testing.T) {
	for index := 0; index < MapCount; index++ {
		m := ByIndex(index)

		if m.Index != index {
			t.Errorf("Map %d reports index %d", index, m.Index)
		}
		if m.Name == "" {
			t.Errorf("Map %d has no name", index)
		}
		if len(m.Cells) != m.Width*m.Height {
			t.Errorf("Map %d: %d cells for %dx%d grid", index, len(m.Cells), m.Width, m.Height)
		}
		if len(m.Waypoints) < 2 {
			t.Fatalf("Map %d: path needs at least spawn and base", index)
		}

		// Path endpoints are marked on the grid
		spawn := m.SpawnPoint()
		if c := m.CellAt(int(spawn.X), int(spawn.Z)); c == nil || c.Terrain != domain.TerrainSpawn {
			t.Errorf("Map %d: spawn cell not marked", index)
		}
		base := m.BasePoint()
		if c := m.CellAt(int(base.X), int(base.Z)); c == nil || c.Terrain != domain.TerrainBase {
			t.Errorf("Map %d: base cell not marked", index)
		}

		// Segments are axis-aligned and non-degenerate
		for i := 0; i < len(m.Waypoints)-1; i++ {
			a, b := m.Waypoints[i], m.Waypoints[i+1]
			if a.X != b.X && a.Z != b.Z {
				t.Errorf("Map %d: segment %d is diagonal", index, i)
			}
			if m.SegmentLength(i) <= 0 {
				t.Errorf("Map %d: segment %d has zero length", index, i)
			}
		}

		// Path cells are never buildable, ground always is
		foundGround := false
		for _, c := range m.Cells {
			switch c.Terrain {
			case domain.TerrainPath, domain.TerrainSpawn, domain.TerrainBase,
				domain.TerrainWater, domain.TerrainMountain:
				if m.IsBuildable(c.X, c.Z) {
					t.Errorf("Map %d: cell (%d,%d) terrain %d must not be buildable", index, c.X, c.Z, c.Terrain)
				}
			case domain.TerrainGround:
				foundGround = true
			}
		}
		if !foundGround {
			t.Errorf("Map %d has nowhere to build", index)
		}
	}
}

func TestByIndexOutOfRangeFallsBack(t *testing.T) {
	m := ByIndex(42)
	if m.Index != 0 {
		t.Errorf("Out-of-range index must fall back to map 0, got %d", m.Index)
	}
	m = ByIndex(-1)
	if m.Index != 0 {
		t.Errorf("Negative index must fall back to map 0, got %d", m.Index)
	}
}

func TestByIndexReturnsFreshInstances(t *testing.T) {
	a := ByIndex(0)
	b := ByIndex(0)

	a.Cells[0].TowerID = "t1"
	if b.Cells[0].TowerID != "" {
		t.Error("Maps must not share cell state between calls")
	}
}

func TestWaypointsAtCellCenters(t *testing.T) {
	m := ByIndex(0)
	for i, wp := range m.Waypoints {
		if math.Mod(wp.X, 1) != 0.5 || math.Mod(wp.Z, 1) != 0.5 {
			t.Errorf("Waypoint %d not at a cell center: %+v", i, wp)
		}
	}
}

func TestWaveTableIsPlayable(t *testing.T) {
	waves := Waves()
	if len(waves) != 10 {
		t.Fatalf("Expected 10 waves, got %d", len(waves))
	}

	for i, w := range waves {
		if len(w.Groups) == 0 {
			t.Errorf("Wave %d has no spawn groups", i+1)
		}
		if w.GoldReward <= 0 {
			t.Errorf("Wave %d has no gold reward", i+1)
		}
		for _, g := range w.Groups {
			if _, ok := domain.EnemyDefs[g.Enemy]; !ok {
				t.Errorf("Wave %d references unknown enemy %q", i+1, g.Enemy)
			}
			if g.Count <= 0 || g.SpawnDelay <= 0 {
				t.Errorf("Wave %d: bad group %+v", i+1, g)
			}
		}
	}

	// The opener: 8 basic enemies at 1.2s apart
	first := waves[0].Groups[0]
	if first.Enemy != domain.EnemyBasic || first.Count != 8 || first.SpawnDelay != 1.2 {
		t.Errorf("Unexpected opening wave: %+v", first)
	}

	// The finale brings the boss
	lastWave := waves[len(waves)-1]
	hasBoss := false
	for _, g := range lastWave.Groups {
		if g.Enemy == domain.EnemyBoss {
			hasBoss = true
		}
	}
	if !hasBoss {
		t.Error("The final wave must include the boss")
	}
}
