package services

import (
	"strings"

	"github.com/abrezinsky/archeryscore/internal/models"
)

// ParseCategory derives category, gender and age group from a registration
// form's free-text class such as "Goli lok - ženske U15". Matching is by
// substring on the lower-cased value, later rules overriding earlier ones.
// Unknown text yields guest, mixed, adults.
func ParseCategory(value string) (models.Category, models.Gender, models.AgeGroup) {
	value = strings.ToLower(strings.TrimSpace(value))

	category := models.CategoryGuest
	gender := models.GenderMixed
	ageGroup := models.AgeGroupAdults

	has := func(words ...string) bool {
		for _, w := range words {
			if strings.Contains(value, w) {
				return true
			}
		}
		return false
	}

	if has("goli") {
		category = models.CategoryBarebow
	}
	if has("dolgi") {
		category = models.CategoryLongBow
	}
	if has("tradicionalni") {
		category = models.CategoryTraditional
	}
	if has("primitivni") {
		category = models.CategoryPrimitive
		gender = models.GenderMixed
	}
	if has("gosti") {
		category = models.CategoryGuest
		gender = models.GenderMixed
	}

	if has("ženske", "zenske", "punce") {
		gender = models.GenderFemale
	}
	if has("moški", "moski", "fantje") {
		gender = models.GenderMale
	}

	// U10 always competes mixed
	if has("u10") {
		ageGroup = models.AgeGroupU10
		gender = models.GenderMixed
	}
	if has("u15") {
		ageGroup = models.AgeGroupU15
	}

	return category, gender, ageGroup
}
