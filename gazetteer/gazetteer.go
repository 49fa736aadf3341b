// Package gazetteer loads the reference tables used to correct OCR-damaged
// addresses: street names with their suburbs, street-suffix abbreviation
// expansions, and suburb names with their state and postcode.
//
// The tables come from three flat files, one comma-separated record per
// line. They are loaded once at startup and never mutated, so a single
// Gazetteer can be shared read-only by every extraction operation.
package gazetteer

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/planningalerts-scrapers/murraybridge/fuzzy"
)

// File names expected inside the gazetteer directory.
const (
	StreetNamesFile    = "streetnames.txt"
	StreetSuffixesFile = "streetsuffixes.txt"
	SuburbNamesFile    = "suburbnames.txt"
)

// Gazetteer holds the reference tables, immutable after Load.
type Gazetteer struct {
	// streetSuburbs maps a lowercased street name to the suburbs it spans.
	streetSuburbs map[string][]string
	// streets holds the canonical street name spellings for fuzzy matching.
	streets []string
	// suffixes maps a lowercased abbreviation to its full word.
	suffixes map[string]string
	// suburbState maps a lowercased suburb name to "STATE Postcode".
	suburbState map[string]string
	// suburbs holds the canonical suburb name spellings for fuzzy matching.
	suburbs []string
}

// Load reads the three gazetteer files from dir. A missing file or a line
// without exactly two comma-separated fields is an error; the caller is
// expected to treat it as fatal for the run.
func Load(dir string) (*Gazetteer, error) {
	g := &Gazetteer{
		streetSuburbs: make(map[string][]string),
		suffixes:      make(map[string]string),
		suburbState:   make(map[string]string),
	}

	err := readLines(filepath.Join(dir, StreetNamesFile), func(street, suburb string) {
		key := strings.ToLower(street)
		if _, seen := g.streetSuburbs[key]; !seen {
			g.streets = append(g.streets, street)
		}
		g.streetSuburbs[key] = append(g.streetSuburbs[key], suburb)
	})
	if err != nil {
		return nil, err
	}

	err = readLines(filepath.Join(dir, StreetSuffixesFile), func(abbrev, full string) {
		g.suffixes[strings.ToLower(abbrev)] = full
	})
	if err != nil {
		return nil, err
	}

	err = readLines(filepath.Join(dir, SuburbNamesFile), func(suburb, statePost string) {
		key := strings.ToLower(suburb)
		if _, seen := g.suburbState[key]; !seen {
			g.suburbs = append(g.suburbs, suburb)
		}
		g.suburbState[key] = statePost
	})
	if err != nil {
		return nil, err
	}

	return g, nil
}

// readLines parses a two-field comma-separated file, trimming both fields
// and skipping blank lines.
func readLines(path string, record func(first, second string)) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening gazetteer file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNr := 0
	for scanner.Scan() {
		lineNr++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		first, second, found := strings.Cut(line, ",")
		if !found {
			return fmt.Errorf("%s:%d: expected two comma-separated fields", filepath.Base(path), lineNr)
		}
		record(strings.TrimSpace(first), strings.TrimSpace(second))
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	return nil
}

// MatchSuburb fuzzy-matches candidate against the suburb table and returns
// the canonical suburb name on success.
func (g *Gazetteer) MatchSuburb(candidate string) (string, bool) {
	return fuzzy.ClosestMatch(candidate, g.suburbs, fuzzy.SuburbMaxDistance)
}

// SuburbState returns the "STATE Postcode" line for a suburb name.
func (g *Gazetteer) SuburbState(suburb string) (string, bool) {
	statePost, ok := g.suburbState[strings.ToLower(suburb)]
	return statePost, ok
}

// ExpandSuffix expands a street-suffix abbreviation ("RD" -> "Road"),
// returning the token unchanged when it is not a known abbreviation.
func (g *Gazetteer) ExpandSuffix(token string) string {
	if full, ok := g.suffixes[strings.ToLower(token)]; ok {
		return full
	}
	return token
}

// MatchStreet fuzzy-matches candidate against the street-name table and
// returns the canonical street name on success.
func (g *Gazetteer) MatchStreet(candidate string) (string, bool) {
	return fuzzy.ClosestMatch(candidate, g.streets, fuzzy.StreetMaxDistance)
}

// StreetSuburbs returns the suburbs a street name spans, or nil when the
// street is unknown.
func (g *Gazetteer) StreetSuburbs(street string) []string {
	return g.streetSuburbs[strings.ToLower(street)]
}
