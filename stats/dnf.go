package stats

import "github.com/padraicbc/f1history/models"

// IsRetirementStatus reports whether a status id denotes a retirement.
// 1 is "Finished", 11-19 are "+N Laps" and 130+ are non-starters.
func IsRetirementStatus(statusID int) bool {
	return (statusID >= 2 && statusID <= 10) || (statusID >= 20 && statusID <= 129)
}

// IsDNF reports whether r is a retirement: no classified position and a
// retirement status.
func IsDNF(r models.Result) bool {
	if _, ok := r.Classified(); ok {
		return false
	}
	return IsRetirementStatus(r.StatusID)
}

func isWin(r models.Result) bool {
	p, ok := r.Classified()
	return ok && p == 1
}

func isPodium(r models.Result) bool {
	p, ok := r.Classified()
	return ok && p <= 3
}
