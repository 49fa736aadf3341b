package extract

import (
	"strings"

	"github.com/planningalerts-scrapers/murraybridge/fuzzy"
	"github.com/planningalerts-scrapers/murraybridge/model"
)

// stateAbbreviation is the state every report address belongs to.
const stateAbbreviation = "SA"

// postcodeArtifacts are single-character tokens OCR leaves behind where a
// postcode was; they are stripped like a real postcode since the derived
// postcode comes from the suburb table.
var postcodeArtifacts = map[string]bool{"O": true, "0": true, "D": true}

// NormalizeAddress matches a raw joined address string against the
// gazetteer and reconstructs a canonical "Street, STATE Postcode" string.
// When no suburb can be recognized the raw text is returned unmodified
// with HasSuburb false, which callers must treat as a rejection signal.
func (x *Extractor) NormalizeAddress(raw string) model.FormattedAddress {
	tokens := strings.Fields(raw)
	if len(tokens) == 0 {
		return model.FormattedAddress{Text: raw}
	}

	// Trailing postcode (or what is left of one) carries no information
	// the suburb table does not; drop it.
	last := tokens[len(tokens)-1]
	if isPostcode(last) || postcodeArtifacts[last] {
		tokens = tokens[:len(tokens)-1]
	}

	if len(tokens) > 0 &&
		fuzzy.WithinDistance(tokens[len(tokens)-1], stateAbbreviation, fuzzy.StateMaxDistance) {
		tokens = tokens[:len(tokens)-1]
	}

	// The suburb may span several words; try growing windows from the
	// end, shortest first.
	suburb := ""
	for n := 1; n <= 4 && n <= len(tokens); n++ {
		candidate := strings.Join(tokens[len(tokens)-n:], " ")
		if matched, ok := x.gaz.MatchSuburb(candidate); ok {
			suburb = matched
			tokens = tokens[:len(tokens)-n]
			break
		}
	}
	if suburb == "" {
		return model.FormattedAddress{Text: raw}
	}

	statePost, _ := x.gaz.SuburbState(suburb)

	street := ""
	if len(tokens) > 0 {
		suffix := x.gaz.ExpandSuffix(tokens[len(tokens)-1])
		parts := make([]string, 0, len(tokens))
		parts = append(parts, tokens[:len(tokens)-1]...)
		parts = append(parts, suffix)
		street = strings.Join(parts, " ")

		if canonical, ok := x.gaz.MatchStreet(street); ok {
			street = canonical
		}
	}

	text := statePost
	if street != "" {
		text = street + ", " + statePost
	}
	return model.FormattedAddress{
		Text:      text,
		HasSuburb: true,
		HasStreet: street != "",
	}
}

// isPostcode reports whether the token is a 4-digit postcode.
func isPostcode(token string) bool {
	if len(token) != 4 {
		return false
	}
	for _, r := range token {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
