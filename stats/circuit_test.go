package stats

import "testing"

func TestComputeCircuitStats(t *testing.T) {
	c := ComputeCircuitStats(fixture(), 1)

	if !c.Available || c.TotalRaces != 4 {
		t.Fatalf("available=%v races=%d, want true 4", c.Available, c.TotalRaces)
	}
	if c.FirstYear != 2007 || c.LastYear != 2022 {
		t.Errorf("years %d-%d, want 2007-2022", c.FirstYear, c.LastYear)
	}
	if len(c.Winners) == 0 || c.Winners[0].ID != 1 || c.Winners[0].Count != 2 {
		t.Errorf("winners = %+v, want Hamilton first with 2", c.Winners)
	}
	if len(c.ConstructorWins) == 0 || c.ConstructorWins[0].Name != "Mercedes" {
		t.Errorf("constructor wins = %+v", c.ConstructorWins)
	}

	poles := map[int]int{}
	for _, p := range c.Poles {
		poles[p.ID] = p.Count
	}
	// 2022 round 1 uses qualifying, the rest use the grid.
	want := map[int]int{1: 2, 2: 1, 3: 1}
	for id, n := range want {
		if poles[id] != n {
			t.Errorf("poles[%d] = %d, want %d (all %v)", id, poles[id], n, poles)
		}
	}

	if c.FastestLap == nil {
		t.Fatal("no fastest lap")
	}
	if c.FastestLap.Time != "1:26.900" || c.FastestLap.DriverID != 2 || c.FastestLap.Year != 2020 {
		t.Errorf("fastest lap = %+v", *c.FastestLap)
	}

	if len(c.RecentRaces) != 4 || c.RecentRaces[0].RaceID != 301 {
		t.Fatalf("recent races = %+v", c.RecentRaces)
	}
	if r := c.RecentRaces[1]; r.RaceID != 103 || r.Winner != "Lewis Hamilton" || r.FastestLapBy != "Max Verstappen" {
		t.Errorf("recent race = %+v", r)
	}
}

func TestComputeCircuitStatsNoLaps(t *testing.T) {
	c := ComputeCircuitStats(fixture(), 2)
	if !c.Available {
		t.Fatal("monza unavailable")
	}
	if c.FastestLap != nil {
		t.Errorf("fastest lap = %+v, want none", *c.FastestLap)
	}
}

func TestComputeCircuitStatsUnknown(t *testing.T) {
	c := ComputeCircuitStats(fixture(), 99)
	if c.Available || c.Circuit.Name != "Unknown" || c.RecentRaces == nil {
		t.Errorf("got %+v", c)
	}
}
