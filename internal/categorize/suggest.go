package categorize

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// MaxSuggestDistance is the largest edit distance still offered as a hint.
const MaxSuggestDistance = 2

// Suggest returns the entry of known closest to name when it is within
// MaxSuggestDistance edits, ignoring case. An exact match yields no
// suggestion. Ties go to the earlier entry in known.
func Suggest(name string, known []string) (string, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false
	}
	lower := strings.ToLower(name)
	best, bestDist := "", MaxSuggestDistance+1
	for _, k := range known {
		if k == name {
			return "", false
		}
		d := levenshtein.ComputeDistance(lower, strings.ToLower(k))
		if d < bestDist {
			best, bestDist = k, d
		}
	}
	if best == "" {
		return "", false
	}
	return best, true
}
