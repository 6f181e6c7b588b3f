package standings

// Languages understood by Label.
const (
	LangEN = "en"
	LangSL = "sl"
)

var labels = map[string]map[string]string{
	LangEN: {
		"barebow":         "barebow",
		"long bow":        "long bow",
		"traditional bow": "traditional bow",
		"primitive bow":   "primitive bow",
		"guest":           "guest",
		"male":            "male",
		"female":          "female",
		"mixed":           "mixed",
		"U10":             "U10",
		"U15":             "U15",
		"adults":          "adults",
	},
	LangSL: {
		"barebow":         "goli lok",
		"long bow":        "dolgi lok",
		"traditional bow": "tradicionalni lok",
		"primitive bow":   "primitivni lok",
		"guest":           "gosti",
		"male":            "moški",
		"female":          "ženske",
		"mixed":           "mešano",
		"U10":             "U10",
		"U15":             "U15",
		"adults":          "odrasli",
	},
}

// Label translates a category, gender or age group value. Unknown languages
// and values are returned unchanged.
func Label(lang, value string) string {
	if table, ok := labels[lang]; ok {
		if l, ok := table[value]; ok {
			return l
		}
	}
	return value
}
