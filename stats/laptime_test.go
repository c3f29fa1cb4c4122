package stats

import (
	"math"
	"testing"

	"github.com/padraicbc/f1history/models"
)

func TestParseLapTime(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"1:23.456", 83.456, true},
		{"0:59.999", 59.999, true},
		{"2:00.000", 120, true},
		{"", 0, false},
		{`\N`, 0, false},
		{"83.456", 0, false},
		{"1:61.000", 0, false},
		{"a:23.456", 0, false},
		{"1:NaN", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseLapTime(tt.in)
		if ok != tt.ok {
			t.Errorf("ParseLapTime(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("ParseLapTime(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormatGap(t *testing.T) {
	if got := FormatGap(0.1234); got != "+0.123" {
		t.Errorf("FormatGap(0.1234) = %q", got)
	}
	if got := FormatGap(-1.5); got != "-1.500" {
		t.Errorf("FormatGap(-1.5) = %q", got)
	}
}

func TestYearRanges(t *testing.T) {
	tests := []struct {
		in   []int
		want string
	}{
		{nil, ""},
		{[]int{2010}, "2010"},
		{[]int{2009, 2007, 2008, 2012}, "2007-2009, 2012"},
		{[]int{2001, 2001, 2003}, "2001, 2003"},
	}
	for _, tt := range tests {
		if got := YearRanges(tt.in); got != tt.want {
			t.Errorf("YearRanges(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsDNF(t *testing.T) {
	tests := []struct {
		name   string
		pos    *int
		status int
		want   bool
	}{
		{"finished", ip(4), 1, false},
		{"engine failure", nil, 5, true},
		{"collision", nil, 4, true},
		{"lapped but classified", ip(12), 11, false},
		{"lapped status without position", nil, 12, false},
		{"did not qualify", nil, 81, true},
		{"withdrew", nil, 130, false},
		{"retired but classified", ip(15), 20, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDNF(models.Result{Position: tt.pos, StatusID: tt.status}); got != tt.want {
				t.Errorf("IsDNF = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolvePole(t *testing.T) {
	d := fixture()

	if p, ok := ResolvePole(d, 301, PoleFromQualifying); !ok || p.DriverID != 2 {
		t.Errorf("qualifying pole = %+v %v", p, ok)
	}
	if p, ok := ResolvePole(d, 302, PoleFromGrid); !ok || p.DriverID != 1 || p.Source != PoleFromGrid {
		t.Errorf("grid pole = %+v %v", p, ok)
	}
	if _, ok := ResolvePole(d, 302, PoleFromQualifying); ok {
		t.Error("race without qualifying reported a qualifying pole")
	}
	if got := RacePoleSource(d, 301); got != PoleFromQualifying {
		t.Errorf("RacePoleSource(301) = %q", got)
	}
}
