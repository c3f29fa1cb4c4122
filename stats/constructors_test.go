package stats

import "testing"

func TestConstructorStandingsOfficial(t *testing.T) {
	s := ComputeConstructorStandings(fixture(), 2020)

	if s.Source != StandingsOfficial || len(s.Standings) != 3 {
		t.Fatalf("got %+v", s)
	}
	top := s.Standings[0]
	if top.Name != "Mercedes" || top.Points != 75 || top.Wins != 3 || top.Position != 1 {
		t.Errorf("leader = %+v", top)
	}
	if len(s.Notes) != 0 {
		t.Errorf("notes = %v", s.Notes)
	}
}

func TestConstructorStandingsAdjusted(t *testing.T) {
	s := ComputeConstructorStandings(fixture(), 2007)

	if s.Source != StandingsResults {
		t.Errorf("source = %q, want results", s.Source)
	}
	if len(s.Standings) != 1 {
		t.Fatalf("standings = %+v, want Ferrari only", s.Standings)
	}
	if f := s.Standings[0]; f.Ref != "ferrari" || f.Points != 18 || f.Wins != 1 || f.Position != 1 {
		t.Errorf("standing = %+v", f)
	}
	if len(s.Notes) != 1 {
		t.Errorf("notes = %v, want the exclusion note", s.Notes)
	}

	plain := ComputeConstructorStandingsWith(fixture(), 2007, nil)
	if plain.Source != StandingsOfficial || plain.Standings[0].Ref != "mclaren" {
		t.Errorf("without adjustments = %+v", plain)
	}
}

func TestConstructorStandingsFromResults(t *testing.T) {
	s := ComputeConstructorStandings(fixture(), 2021)

	if s.Source != StandingsResults || len(s.Standings) != 2 {
		t.Fatalf("got %+v", s)
	}
	for i, st := range s.Standings {
		if st.Points != 43 || st.Wins != 1 || st.Position != i+1 {
			t.Errorf("standing %d = %+v", i, st)
		}
	}
}

func TestConstructorStandingsNoData(t *testing.T) {
	s := ComputeConstructorStandings(fixture(), 1950)
	if s.Available || s.Standings == nil {
		t.Errorf("got %+v", s)
	}
}

func TestConstructorProgression(t *testing.T) {
	s := ComputeConstructorStandings(fixture(), 2020)

	if s.TotalTeams != 3 || s.Champion == nil || s.Champion.Ref != "mercedes" {
		t.Fatalf("teams=%d champion=%+v", s.TotalTeams, s.Champion)
	}
	if len(s.Progression) != 3 {
		t.Fatalf("progression has %d races, want 3", len(s.Progression))
	}
	for i, p := range s.Progression {
		if p.Round != i+1 || len(p.Standings) != 3 {
			t.Errorf("entry %d = %+v", i, p)
		}
	}

	first := s.Progression[0].Standings
	if first[0].ConstructorID != 1 || !first[0].Present || first[0].Points != 25 || first[0].Wins != 1 || first[0].Position != 1 {
		t.Errorf("Mercedes after round 1 = %+v", first[0])
	}
	if first[1].ConstructorID != 3 || first[1].Present || first[1].Points != 0 {
		t.Errorf("Ferrari after round 1 = %+v, want absent", first[1])
	}
	for _, p := range s.Progression[1].Standings {
		if p.Present {
			t.Errorf("round 2 has no snapshot but got %+v", p)
		}
	}
	if last := s.Progression[2].Standings[0]; last.Points != 75 || last.Wins != 3 {
		t.Errorf("Mercedes after round 3 = %+v", last)
	}
}

func TestConstructorProgressionSkipsExcluded(t *testing.T) {
	s := ComputeConstructorStandings(fixture(), 2007)
	if len(s.Progression) != 2 {
		t.Fatalf("progression = %+v", s.Progression)
	}
	for _, p := range s.Progression {
		for _, c := range p.Standings {
			if c.ConstructorID == 4 {
				t.Errorf("excluded team in round %d", p.Round)
			}
		}
	}
	if last := s.Progression[1].Standings[0]; !last.Present || last.Points != 18 {
		t.Errorf("Ferrari after round 2 = %+v", last)
	}
}
