package models

import "github.com/abrezinsky/archeryscore/internal/standings"

// Category is a bow category
type Category string

const (
	CategoryBarebow     Category = "barebow"
	CategoryLongBow     Category = "long bow"
	CategoryTraditional Category = "traditional bow"
	CategoryPrimitive   Category = "primitive bow"
	CategoryGuest       Category = "guest"
)

// Categories lists every bow category in display order
var Categories = []Category{CategoryBarebow, CategoryLongBow, CategoryTraditional, CategoryPrimitive, CategoryGuest}

func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// Gender is the gender class an archer competes in
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderMixed  Gender = "mixed"
)

var Genders = []Gender{GenderMale, GenderFemale, GenderMixed}

func (g Gender) Valid() bool {
	for _, v := range Genders {
		if g == v {
			return true
		}
	}
	return false
}

// AgeGroup is the age class an archer competes in
type AgeGroup string

const (
	AgeGroupU10    AgeGroup = "U10"
	AgeGroupU15    AgeGroup = "U15"
	AgeGroupAdults AgeGroup = "adults"
)

var AgeGroups = []AgeGroup{AgeGroupU10, AgeGroupU15, AgeGroupAdults}

func (a AgeGroup) Valid() bool {
	for _, v := range AgeGroups {
		if a == v {
			return true
		}
	}
	return false
}

// Language selects the label set for imports and exports
type Language string

const (
	LanguageEN Language = "en"
	LanguageSL Language = "sl"
)

func (l Language) Valid() bool {
	return l == LanguageEN || l == LanguageSL
}

// Competition represents a single archery event
type Competition struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Date     string  `json:"date"`
	Location string  `json:"location"`
	LogoURL  *string `json:"logo_url"`
}

// Scores holds the hit count per target zone. Nil means not entered.
type Scores struct {
	Score20 *int `json:"score20"`
	Score18 *int `json:"score18"`
	Score16 *int `json:"score16"`
	Score14 *int `json:"score14"`
	Score12 *int `json:"score12"`
	Score10 *int `json:"score10"`
	Score8  *int `json:"score8"`
	Score6  *int `json:"score6"`
	Score4  *int `json:"score4"`
	Score0  *int `json:"score0"`
}

// Zones returns the scores in standings zone order (20 down to 0)
func (s Scores) Zones() [standings.ZoneCount]*int {
	return [standings.ZoneCount]*int{
		s.Score20, s.Score18, s.Score16, s.Score14, s.Score12,
		s.Score10, s.Score8, s.Score6, s.Score4, s.Score0,
	}
}

// ScoresFromZones is the inverse of Scores.Zones
func ScoresFromZones(z [standings.ZoneCount]*int) Scores {
	return Scores{
		Score20: z[0], Score18: z[1], Score16: z[2], Score14: z[3], Score12: z[4],
		Score10: z[5], Score8: z[6], Score6: z[7], Score4: z[8], Score0: z[9],
	}
}

// Archer represents a registered competitor
type Archer struct {
	ID            int      `json:"id"`
	FirstName     string   `json:"first_name"`
	LastName      string   `json:"last_name"`
	Email         string   `json:"email"`
	Club          string   `json:"club"`
	CompetitionID int      `json:"competition_id"`
	Category      Category `json:"category"`
	Gender        Gender   `json:"gender"`
	AgeGroup      AgeGroup `json:"age_group"`
	Scores
}

// Entry converts the archer to the standings engine representation
func (a Archer) Entry() standings.Entry {
	return standings.Entry{
		ID:        int64(a.ID),
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Club:      a.Club,
		Category:  string(a.Category),
		Gender:    string(a.Gender),
		AgeGroup:  string(a.AgeGroup),
		Zones:     a.Zones(),
	}
}

// Entries converts a population for the standings engine
func Entries(archers []Archer) []standings.Entry {
	out := make([]standings.Entry, len(archers))
	for i, a := range archers {
		out[i] = a.Entry()
	}
	return out
}

// Progress counts how many archers of a competition have a score
type Progress struct {
	Scored int `json:"scored"`
	Total  int `json:"total"`
}

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}
