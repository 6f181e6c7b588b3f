// Package standings turns archer scoring entries into ranked standings.
//
// The package is pure: every function takes the population it works on and
// returns a fresh result, so the display table and the spreadsheet export can
// compute the same standings concurrently without coordination.
package standings

// ZoneCount is the number of scoring zones on the target face.
const ZoneCount = 10

// Unscored is the total reported for an archer with no zone recorded.
const Unscored = -1

var weights = [ZoneCount]int{20, 18, 16, 14, 12, 10, 8, 6, 4, 0}

// Weights returns the point value of each zone, most valuable first.
func Weights() [ZoneCount]int {
	return weights
}

// Weight returns the point value of zone i.
func Weight(i int) int {
	return weights[i]
}

// Entry is one archer as seen by the standings engine.
type Entry struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Club      string `json:"club"`
	Category  string `json:"category"`
	Gender    string `json:"gender"`
	AgeGroup  string `json:"age_group"`

	// Zones holds the hit count per zone in Weights() order. Nil means the
	// zone was never entered.
	Zones [ZoneCount]*int `json:"zones"`
}

// FullName returns first and last name separated by a single space.
func (e Entry) FullName() string {
	return e.FirstName + " " + e.LastName
}

// Scored reports whether at least one zone has been entered.
func (e Entry) Scored() bool {
	for _, z := range e.Zones {
		if z != nil {
			return true
		}
	}
	return false
}

// ZoneCounts resolves the zones to plain counts, treating unset zones as 0.
func ZoneCounts(e Entry) [ZoneCount]int {
	var counts [ZoneCount]int
	for i, z := range e.Zones {
		if z != nil {
			counts[i] = *z
		}
	}
	return counts
}

// Aggregate returns the weighted total of e, or Unscored when no zone is set.
func Aggregate(e Entry) int {
	if !e.Scored() {
		return Unscored
	}
	total := 0
	for i, count := range ZoneCounts(e) {
		total += count * weights[i]
	}
	return total
}
