package stats

import "testing"

func TestComputeDriverCareer(t *testing.T) {
	c := ComputeDriverCareer(fixture(), 1)

	if !c.Available || c.FirstYear != 2020 || c.LastYear != 2022 {
		t.Fatalf("available=%v years %d-%d", c.Available, c.FirstYear, c.LastYear)
	}
	want := CareerTotals{
		Championships: 3,
		Races:         7,
		Wins:          5,
		Podiums:       7,
		Poles:         4,
		Points:        75 + 43 + 43,
		Seasons:       3,
		Teams:         1,
	}
	if c.Totals != want {
		t.Errorf("totals = %+v, want %+v", c.Totals, want)
	}
	if len(c.Teams) != 1 || c.Teams[0].YearRanges != "2020-2022" {
		t.Errorf("teams = %+v", c.Teams)
	}
	first := c.Seasons[0]
	if first.Year != 2020 || first.Position == nil || *first.Position != 1 || first.Points != 75 {
		t.Errorf("2020 season = %+v", first)
	}
}

func TestComputeDriverCareerTeams(t *testing.T) {
	c := ComputeDriverCareer(fixture(), 2)

	if len(c.Teams) != 2 {
		t.Fatalf("teams = %+v, want Red Bull and Ferrari", c.Teams)
	}
	if c.Teams[0].Name != "Red Bull" || c.Teams[0].Races != 6 || c.Teams[1].Name != "Ferrari" || c.Teams[1].Races != 1 {
		t.Errorf("teams = %+v", c.Teams)
	}
	s := c.Seasons[0]
	if len(s.Teams) != 2 || s.Podiums != 3 || s.Poles != 1 || s.Points != 42 {
		t.Errorf("2020 season = %+v", s)
	}
	if c.Totals.Championships != 0 {
		t.Errorf("championships = %d, want 0", c.Totals.Championships)
	}
}

func TestComputeDriverCareerDNF(t *testing.T) {
	c := ComputeDriverCareer(fixture(), 3)
	if c.Totals.DNFs != 1 {
		t.Errorf("dnfs = %d, want 1", c.Totals.DNFs)
	}
}

func TestComputeDriverCareerUnknown(t *testing.T) {
	c := ComputeDriverCareer(fixture(), 42)
	if c.Available || c.Driver.Surname != "Unknown" || c.Seasons == nil {
		t.Errorf("got %+v", c)
	}
}
