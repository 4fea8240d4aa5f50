// services/choice_classifier.go
package services

import "strings"

// ChoiceTag is the coarse canyon-choice category used to keep same-choice
// passengers on the same tour.
type ChoiceTag string

const (
	ChoiceLower ChoiceTag = "L"
	ChoiceX     ChoiceTag = "X"
	ChoiceOther ChoiceTag = "other"
)

// ChoiceCategories returns the categories in their tour-assignment order.
func ChoiceCategories() []ChoiceTag {
	return []ChoiceTag{ChoiceLower, ChoiceX, ChoiceOther}
}

var lowerKeywords = []string{
	"lower",
	"로어",
	"로워",
}

var xKeywords = []string{
	"antelope x",
	"x canyon",
	"x 캐년",
	"x캐년",
	"엑스",
}

// ClassifyChoice maps a product option's key and display names onto a
// ChoiceTag. Precedence is fixed: Lower-Antelope keywords first, then
// Antelope-X keywords; everything else (including Upper) is "other".
// Matching is case-insensitive over the option key and both names, with
// underscores and hyphens treated as spaces.
func ClassifyChoice(optionKey, nameKo, nameEn string) ChoiceTag {
	s := strings.ToLower(optionKey + " " + nameKo + " " + nameEn)
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)

	for _, kw := range lowerKeywords {
		if strings.Contains(s, kw) {
			return ChoiceLower
		}
	}
	for _, kw := range xKeywords {
		if strings.Contains(s, kw) {
			return ChoiceX
		}
	}
	return ChoiceOther
}
