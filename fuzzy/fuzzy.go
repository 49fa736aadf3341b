// Package fuzzy provides bounded edit-distance string matching, used to
// absorb OCR misreads when comparing tokens against labels and gazetteer
// entries. All comparisons are case-insensitive.
package fuzzy

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Maximum edit distances per lookup kind. The thresholds are part of the
// extraction behavior: loosening them admits more OCR noise, tightening
// them drops legitimate misreads.
const (
	StateMaxDistance  = 1
	SuburbMaxDistance = 2
	StreetMaxDistance = 2
	LabelMaxDistance  = 2
)

// Distance returns the Levenshtein edit distance between a and b,
// ignoring case.
func Distance(a, b string) int {
	return levenshtein.ComputeDistance(strings.ToLower(a), strings.ToLower(b))
}

// WithinDistance reports whether a and b are within max edits of each
// other, ignoring case.
func WithinDistance(a, b string, max int) bool {
	return Distance(a, b) <= max
}

// ClosestMatch returns the dictionary entry with the smallest edit distance
// to candidate, provided that distance is at most max. Ties keep the first
// entry. The second return value is false when nothing qualifies.
func ClosestMatch(candidate string, dictionary []string, max int) (string, bool) {
	best := max + 1
	var match string
	found := false

	for _, entry := range dictionary {
		d := Distance(candidate, entry)
		if d < best {
			best = d
			match = entry
			found = true
		}
	}

	return match, found
}
