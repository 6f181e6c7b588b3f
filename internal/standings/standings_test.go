package standings_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abrezinsky/archeryscore/internal/standings"
)

func intp(v int) *int { return &v }

// zones builds a zone array from weight -> count pairs.
func zones(byWeight map[int]int) [standings.ZoneCount]*int {
	var z [standings.ZoneCount]*int
	for i, w := range standings.Weights() {
		if c, ok := byWeight[w]; ok {
			z[i] = intp(c)
		}
	}
	return z
}

func entry(id int64, first string, byWeight map[int]int) standings.Entry {
	e := standings.Entry{ID: id, FirstName: first, LastName: "Archer", Club: "LK Test"}
	if byWeight != nil {
		e.Zones = zones(byWeight)
	}
	return e
}

func ranks(ranked []standings.Ranked) []any {
	out := make([]any, len(ranked))
	for i, r := range ranked {
		if r.Rank == nil {
			out[i] = nil
		} else {
			out[i] = *r.Rank
		}
	}
	return out
}

func ids(ranked []standings.Ranked) []int64 {
	out := make([]int64, len(ranked))
	for i, r := range ranked {
		out[i] = r.ID
	}
	return out
}

func TestAggregate(t *testing.T) {
	t.Run("unscored returns sentinel", func(t *testing.T) {
		assert.Equal(t, standings.Unscored, standings.Aggregate(entry(1, "A", nil)))
	})

	t.Run("unset zones count as zero", func(t *testing.T) {
		e := entry(1, "A", map[int]int{20: 1, 18: 0, 0: 1})
		assert.Equal(t, 20, standings.Aggregate(e))
	})

	t.Run("all zero is a real score", func(t *testing.T) {
		e := entry(1, "A", map[int]int{0: 28})
		assert.Equal(t, 0, standings.Aggregate(e))
		assert.True(t, e.Scored())
	})

	t.Run("weights every zone", func(t *testing.T) {
		e := entry(1, "A", map[int]int{20: 1, 18: 1, 16: 1, 14: 1, 12: 1, 10: 1, 8: 1, 6: 1, 4: 1, 0: 1})
		assert.Equal(t, 108, standings.Aggregate(e))
	})
}

func TestZoneCounts(t *testing.T) {
	e := entry(1, "A", map[int]int{18: 2, 4: 3})
	assert.Equal(t, [standings.ZoneCount]int{0, 2, 0, 0, 0, 0, 0, 0, 3, 0}, standings.ZoneCounts(e))
}

func TestCompare_TotalFirst(t *testing.T) {
	high := entry(1, "Zala", map[int]int{20: 2})
	low := entry(2, "Ana", map[int]int{20: 1})

	assert.Negative(t, standings.NewComparator().Compare(high, low))
	assert.Positive(t, standings.NewComparator().Compare(low, high))
}

func TestCompare_ZoneTiebreak(t *testing.T) {
	// Both total 36; more 20s wins.
	more20 := entry(1, "Zala", map[int]int{20: 1, 16: 1})
	more18 := entry(2, "Ana", map[int]int{18: 2})
	require.Equal(t, standings.Aggregate(more20), standings.Aggregate(more18))

	assert.Negative(t, standings.NewComparator().Compare(more20, more18))

	sorted := standings.Sort([]standings.Entry{more18, more20})
	assert.Equal(t, int64(1), sorted[0].ID)
}

func TestCompare_NameTiebreak(t *testing.T) {
	a := entry(1, "Čedomir", map[int]int{20: 1})
	b := entry(2, "Cene", map[int]int{20: 1})
	c := entry(3, "Darko", map[int]int{20: 1})

	sorted := standings.Sort([]standings.Entry{c, a, b})
	// Slovenian collation puts Č after C and before D.
	assert.Equal(t, []int64{2, 1, 3}, []int64{sorted[0].ID, sorted[1].ID, sorted[2].ID})
}

func TestCompare_Equal(t *testing.T) {
	a := entry(1, "Ana", map[int]int{20: 1})
	b := entry(2, "Ana", map[int]int{20: 1})
	assert.Zero(t, standings.NewComparator().Compare(a, b))

	sorted := standings.Sort([]standings.Entry{b, a})
	assert.Equal(t, int64(2), sorted[0].ID, "equal entries keep input order")
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	in := []standings.Entry{
		entry(1, "A", map[int]int{20: 1}),
		entry(2, "B", map[int]int{20: 2}),
	}
	_ = standings.Sort(in)
	assert.Equal(t, int64(1), in[0].ID)
}

func TestSort_UnscoredLast(t *testing.T) {
	pop := []standings.Entry{
		entry(1, "A", nil),
		entry(2, "B", map[int]int{0: 28}),
		entry(3, "C", nil),
		entry(4, "D", map[int]int{4: 1}),
	}

	ranked := standings.Standings(pop, standings.Criteria{})

	assert.Equal(t, []int64{4, 2, 1, 3}, ids(ranked))
	assert.Equal(t, []any{1, 2, nil, nil}, ranks(ranked))
	for _, r := range ranked[2:] {
		assert.Equal(t, standings.Unscored, r.Total)
	}
}

func TestAssignRanks_Ties(t *testing.T) {
	tests := []struct {
		name   string
		counts []map[int]int
		want   []any
	}{
		{
			name:   "three way tie then skip",
			counts: []map[int]int{{10: 5}, {10: 5}, {10: 5}, {10: 4}},
			want:   []any{1, 1, 1, 4},
		},
		{
			name:   "tie in the middle",
			counts: []map[int]int{{10: 5}, {12: 4}, {12: 4}, {10: 4}},
			want:   []any{1, 2, 2, 4},
		},
		{
			name:   "72 72 72 64 60",
			counts: []map[int]int{{18: 4}, {18: 4}, {18: 4}, {16: 4}, {20: 3}},
			want:   []any{1, 1, 1, 4, 5},
		},
		{
			name:   "equal total different zones is not a tie",
			counts: []map[int]int{{20: 1, 16: 1}, {18: 2}},
			want:   []any{1, 2},
		},
		{
			name:   "unscored in between keeps the run",
			counts: []map[int]int{{10: 5}, {10: 5}, nil, {10: 1}},
			want:   []any{1, 1, nil, 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pop := make([]standings.Entry, len(tt.counts))
			for i, c := range tt.counts {
				pop[i] = entry(int64(i+1), "Same", c)
			}
			assert.Equal(t, tt.want, ranks(standings.AssignRanks(pop)))
		})
	}
}

func TestAssignRanks_Empty(t *testing.T) {
	out := standings.AssignRanks(nil)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestAssignRanks_PopulatesTotals(t *testing.T) {
	out := standings.AssignRanks([]standings.Entry{entry(1, "A", map[int]int{20: 1, 6: 2})})
	require.Len(t, out, 1)
	assert.Equal(t, 32, out[0].Total)
	assert.Equal(t, 2, out[0].ZoneCounts[7])
}

func TestFilter(t *testing.T) {
	pop := []standings.Entry{
		{ID: 1, FirstName: "Ana", LastName: "Novak", Club: "LK Kamnik", Category: "barebow", Gender: "female", AgeGroup: "adults"},
		{ID: 2, FirstName: "Borut", LastName: "Kos", Club: "LK Kamnik", Category: "long bow", Gender: "male", AgeGroup: "adults"},
		{ID: 3, FirstName: "Ana Marija", LastName: "Zupan", Club: "LK Bled", Category: "barebow", Gender: "female", AgeGroup: "U15"},
	}

	tests := []struct {
		name string
		c    standings.Criteria
		want []int64
	}{
		{"no criteria", standings.Criteria{}, []int64{1, 2, 3}},
		{"club", standings.Criteria{Club: "LK Kamnik"}, []int64{1, 2}},
		{"club is exact", standings.Criteria{Club: "lk kamnik"}, []int64{}},
		{"category and gender", standings.Criteria{Category: "barebow", Gender: "female"}, []int64{1, 3}},
		{"age group", standings.Criteria{AgeGroup: "U15"}, []int64{3}},
		{"name search case insensitive", standings.Criteria{NameSearch: "NOVAK"}, []int64{1}},
		{"name search spans first and last", standings.Criteria{NameSearch: "marija zup"}, []int64{3}},
		{"name search no match", standings.Criteria{NameSearch: "xyz"}, []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := standings.Filter(pop, tt.c)
			gotIDs := make([]int64, 0, len(got))
			for _, e := range got {
				gotIDs = append(gotIDs, e.ID)
			}
			assert.Equal(t, tt.want, gotIDs)
		})
	}
}

func TestCriteria_IsZero(t *testing.T) {
	assert.True(t, standings.Criteria{}.IsZero())
	assert.False(t, standings.Criteria{Gender: "male"}.IsZero())
}

func TestCompute_RanksWithinGroup(t *testing.T) {
	pop := []standings.Entry{
		{ID: 1, FirstName: "A", Club: "X", Zones: zones(map[int]int{20: 3})},
		{ID: 2, FirstName: "B", Club: "Y", Zones: zones(map[int]int{20: 2})},
		{ID: 3, FirstName: "C", Club: "X", Zones: zones(map[int]int{20: 1})},
	}

	all := standings.Standings(pop, standings.Criteria{})
	clubX := standings.Standings(pop, standings.Criteria{Club: "X"})

	assert.Equal(t, []any{1, 2, 3}, ranks(all))
	assert.Equal(t, []int64{1, 3}, ids(clubX))
	assert.Equal(t, []any{1, 2}, ranks(clubX), "archer 3 moves from 3rd to 2nd inside the club")
}

func TestCompute_EndToEnd(t *testing.T) {
	pop := []standings.Entry{
		entry(1, "A", map[int]int{20: 1}),
		entry(2, "B", nil),
		entry(3, "C", map[int]int{18: 1, 0: 1}),
	}

	ranked := standings.Standings(pop, standings.Criteria{})

	assert.Equal(t, []int64{1, 3, 2}, ids(ranked))
	assert.Equal(t, []any{1, 2, nil}, ranks(ranked))
	assert.Equal(t, []int{20, 18, standings.Unscored}, []int{ranked[0].Total, ranked[1].Total, ranked[2].Total})
}

func TestCompute_Idempotent(t *testing.T) {
	pop := []standings.Entry{
		entry(1, "Eva", map[int]int{20: 1, 4: 2}),
		entry(2, "Ana", map[int]int{20: 1, 4: 2}),
		entry(3, "Bor", nil),
		entry(4, "Cvet", map[int]int{16: 3}),
	}
	c := standings.Criteria{NameSearch: "archer"}

	first := standings.Standings(pop, c)
	second := standings.Standings(pop, c)

	assert.Equal(t, first, second)
}

func TestWeights_ReturnsCopy(t *testing.T) {
	e := entry(1, "Ana", map[int]int{20: 1, 18: 1})

	w := standings.Weights()
	w[0] = 1000

	assert.Equal(t, 20, standings.Weight(0))
	assert.Equal(t, 20, standings.Weights()[0])
	assert.Equal(t, 38, standings.Aggregate(e))
}
