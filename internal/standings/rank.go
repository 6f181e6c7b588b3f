package standings

// Ranked is an Entry with its computed standing.
type Ranked struct {
	Entry

	Total      int            `json:"total"`
	ZoneCounts [ZoneCount]int `json:"zone_counts"`
	// Rank is nil for archers without a score.
	Rank *int `json:"rank"`
}

// rankCarry is the state folded across a sorted sequence by AssignRanks.
type rankCarry struct {
	lastTotal int
	lastRank  int
	tieRun    int
	lastZones [ZoneCount]int
}

func newRankCarry() rankCarry {
	// -2 is below every total including Unscored, so the first scored entry
	// never ties with the initial state.
	return rankCarry{lastTotal: -2}
}

// step ranks one entry and returns the carry for the next one.
func (c rankCarry) step(e Entry) (Ranked, rankCarry) {
	r := Ranked{
		Entry:      e,
		Total:      Aggregate(e),
		ZoneCounts: ZoneCounts(e),
	}

	if r.Total == Unscored {
		return r, c
	}

	if r.Total == c.lastTotal && r.ZoneCounts == c.lastZones {
		rank := c.lastRank
		r.Rank = &rank
		c.tieRun++
		return r, c
	}

	rank := c.lastRank + c.tieRun + 1
	r.Rank = &rank
	return r, rankCarry{
		lastTotal: r.Total,
		lastRank:  rank,
		tieRun:    0,
		lastZones: r.ZoneCounts,
	}
}

// AssignRanks ranks entries that are already in standings order (see Sort).
// Equal totals with equal zone counts share a rank and the following rank
// skips accordingly, so 50,50,50,40 ranks as 1,1,1,4.
func AssignRanks(sorted []Entry) []Ranked {
	out := make([]Ranked, 0, len(sorted))
	carry := newRankCarry()
	for _, e := range sorted {
		var r Ranked
		r, carry = carry.step(e)
		out = append(out, r)
	}
	return out
}
