package normalizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Tokens that describe how much or in what form, not what the
// ingredient is. They are stripped before any vocabulary lookup.
var noiseTokens = map[string]struct{}{
	// units
	"cup": {}, "cups": {}, "tbsp": {}, "tablespoon": {}, "tablespoons": {},
	"tsp": {}, "teaspoon": {}, "teaspoons": {}, "oz": {}, "ounce": {}, "ounces": {},
	"lb": {}, "lbs": {}, "pound": {}, "pounds": {}, "g": {}, "gram": {}, "grams": {},
	"kg": {}, "ml": {}, "l": {}, "liter": {}, "liters": {}, "litre": {}, "litres": {},
	"pinch": {}, "dash": {}, "clove": {}, "cloves": {}, "slice": {}, "slices": {},
	"piece": {}, "pieces": {}, "can": {}, "cans": {}, "jar": {}, "package": {},
	"packages": {}, "bunch": {}, "stick": {}, "sticks": {}, "head": {},
	// preparation and quality words
	"fresh": {}, "freshly": {}, "dried": {}, "chopped": {}, "minced": {},
	"diced": {}, "sliced": {}, "grated": {}, "shredded": {}, "crushed": {},
	"ground": {}, "peeled": {}, "melted": {}, "softened": {}, "beaten": {},
	"large": {}, "medium": {}, "small": {}, "extra": {}, "finely": {},
	"coarsely": {}, "thinly": {}, "roughly": {}, "optional": {}, "to": {},
	"taste": {}, "of": {}, "a": {}, "an": {}, "the": {}, "for": {},
	"boneless": {}, "skinless": {}, "organic": {}, "raw": {}, "cooked": {},
}

var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Clean reduces a raw ingredient string to its lookup form: lowercase,
// accent-folded, stripped of quantities, units, and preparation noise,
// singularized. The caller's original string is never touched.
func Clean(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return ""
	}

	if folded, _, err := transform.String(accentStripper, s); err == nil {
		s = folded
	}

	// Keep only letters, digits, and spaces. Fractions and punctuation
	// become separators.
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}

	fields := strings.Fields(b.String())
	kept := fields[:0]
	for _, f := range fields {
		if isNumeric(f) {
			continue
		}
		if _, noise := noiseTokens[f]; noise {
			continue
		}
		kept = append(kept, singularize(f))
	}

	return strings.Join(kept, " ")
}

// isNumeric matches bare numbers and glued quantity tokens like
// "500g" or "1l": digits optionally followed by letters.
func isNumeric(s string) bool {
	if s == "" || !unicode.IsDigit(rune(s[0])) {
		return false
	}
	inSuffix := false
	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			if inSuffix {
				return false
			}
		case unicode.IsLetter(r):
			inSuffix = true
		default:
			return false
		}
	}
	return true
}

// singularize applies the handful of plural rules English ingredient
// names actually use. It is intentionally not a full stemmer.
func singularize(w string) string {
	switch {
	case len(w) <= 3:
		return w
	case strings.HasSuffix(w, "oes"): // tomatoes, potatoes
		return w[:len(w)-2]
	case strings.HasSuffix(w, "ies"): // berries, anchovies
		return w[:len(w)-3] + "y"
	case strings.HasSuffix(w, "ves"): // leaves, halves
		return w[:len(w)-3] + "f"
	case strings.HasSuffix(w, "sses"), strings.HasSuffix(w, "ss"),
		strings.HasSuffix(w, "us"), strings.HasSuffix(w, "is"):
		return w // molasses, asparagus, couscous
	case strings.HasSuffix(w, "ches"), strings.HasSuffix(w, "shes"), strings.HasSuffix(w, "xes"):
		return w[:len(w)-2]
	case strings.HasSuffix(w, "s"):
		return w[:len(w)-1]
	default:
		return w
	}
}
