package stats

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// ParseLapTime converts "M:SS.mmm" into seconds. Empty strings, the `\N`
// marker and anything malformed are reported as unavailable.
func ParseLapTime(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == `\N` {
		return 0, false
	}
	mins, secs, ok := strings.Cut(s, ":")
	if !ok {
		return 0, false
	}
	m, err := strconv.Atoi(mins)
	if err != nil || m < 0 {
		return 0, false
	}
	sec, err := strconv.ParseFloat(secs, 64)
	if err != nil || math.IsNaN(sec) || sec < 0 || sec >= 60 {
		return 0, false
	}
	return float64(m)*60 + sec, true
}

func parseLapPtr(s *string) (float64, bool) {
	if s == nil {
		return 0, false
	}
	return ParseLapTime(*s)
}

// FormatGap renders a time delta in seconds as "+0.123".
func FormatGap(d float64) string {
	if d < 0 {
		return fmt.Sprintf("-%.3f", -d)
	}
	return fmt.Sprintf("+%.3f", d)
}

// YearRanges collapses years into runs, e.g. [2007 2008 2009 2012] -> "2007-2009, 2012".
func YearRanges(years []int) string {
	if len(years) == 0 {
		return ""
	}
	ys := append([]int(nil), years...)
	sort.Ints(ys)

	var parts []string
	start, end := ys[0], ys[0]
	flush := func() {
		if start == end {
			parts = append(parts, strconv.Itoa(start))
		} else {
			parts = append(parts, fmt.Sprintf("%d-%d", start, end))
		}
	}
	for _, y := range ys[1:] {
		switch {
		case y == end:
			continue
		case y == end+1:
			end = y
		default:
			flush()
			start, end = y, y
		}
	}
	flush()
	return strings.Join(parts, ", ")
}
