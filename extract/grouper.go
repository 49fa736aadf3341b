package extract

import (
	"math"
	"sort"
	"strings"

	"github.com/planningalerts-scrapers/murraybridge/fuzzy"
	"github.com/planningalerts-scrapers/murraybridge/model"
)

// condense lowercases text and strips spaces and punctuation, so that OCR
// variations in spacing and stray dots or quotes collapse before matching.
func condense(text string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		switch r {
		case ' ', '\t', '.', ',', ':', ';', '!', '(', ')',
			'\'', '"', '‘', '’', '“', '”':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FindLabels returns one element per occurrence of the label phrase,
// spanning all its tokens, sorted ascending by Y. OCR may split the phrase
// across up to MaxLabelSpan word elements or corrupt characters; matching is
// progressive: elements fuzzy-matching the whole label or its first word
// are extended rightward one geometric neighbor at a time. The walk always
// runs to MaxLabelSpan and keeps the accumulation with the smallest edit
// distance to a variant: a shorter prefix can sit inside the fuzzy
// threshold too, and stopping there would leave the phrase's tail for the
// field bands.
func (x *Extractor) FindLabels(elements []model.Element) []model.Element {
	condLabel := condense(x.cfg.Label)
	condFirst := condense(strings.Fields(x.cfg.Label)[0])

	variants := make([]string, 0, len(x.cfg.LabelVariants)+1)
	variants = append(variants, condLabel)
	for _, v := range x.cfg.LabelVariants {
		variants = append(variants, condense(v))
	}

	var labels []model.Element
	for _, e := range elements {
		c := condense(e.Text)
		if !strings.HasPrefix(c, condFirst) {
			continue
		}

		if !matchesAny(c, variants) && !fuzzy.WithinDistance(c, condFirst, 1) {
			continue
		}

		accumulated := c
		current := e
		matched := []model.Element{e}
		bestDistance := fuzzy.LabelMaxDistance + 1
		var best []model.Element
		if d := closestVariant(c, variants); d < bestDistance {
			bestDistance = d
			best = matched[:1:1]
		}
		for span := 1; span < x.cfg.MaxLabelSpan; span++ {
			next, ok := model.RightNeighbor(elements, current)
			if !ok {
				break
			}
			accumulated += condense(next.Text)
			current = next
			matched = append(matched, next)
			if d := closestVariant(accumulated, variants); d < bestDistance {
				bestDistance = d
				best = append([]model.Element(nil), matched...)
			}
		}
		if best != nil {
			labels = append(labels, mergeElements(best))
		}
	}

	sort.Slice(labels, func(i, j int) bool { return labels[i].Y < labels[j].Y })
	return labels
}

// mergeElements collapses the word elements a label was split across into
// a single element spanning the whole phrase, so downstream bounds start
// after its last token. Confidence is the weakest of the parts.
func mergeElements(parts []model.Element) model.Element {
	merged := parts[0]
	for _, p := range parts[1:] {
		merged.Rect = merged.Rect.Union(p.Rect)
		merged.Text += " " + p.Text
		if p.Confidence < merged.Confidence {
			merged.Confidence = p.Confidence
		}
		if p.ChoiceCount > merged.ChoiceCount {
			merged.ChoiceCount = p.ChoiceCount
		}
	}
	return merged
}

// matchesAny reports whether the condensed text fuzzy-matches any accepted
// label spelling.
func matchesAny(condensed string, variants []string) bool {
	for _, v := range variants {
		if fuzzy.WithinDistance(condensed, v, fuzzy.LabelMaxDistance) {
			return true
		}
	}
	return false
}

// closestVariant returns the smallest edit distance between the condensed
// text and any accepted label spelling.
func closestVariant(condensed string, variants []string) int {
	best := fuzzy.LabelMaxDistance + 1
	for _, v := range variants {
		if d := fuzzy.Distance(condensed, v); d < best {
			best = d
		}
	}
	return best
}

// Group partitions a page's elements into per-application groups bounded
// by successive label rows. The lower bound of each group is the row top
// of a copy of its label raised by RaisedRows label heights, so a received
// date sitting above the label still belongs to the group; the upper bound
// is the next label's row top, or +Inf for the last group. Zero label
// occurrences yield zero groups.
func (x *Extractor) Group(elements []model.Element) []model.ApplicationGroup {
	labels := x.FindLabels(elements)

	// Each group's lower bound doubles as the previous group's upper
	// bound, so every element lands in exactly one group.
	lows := make([]float64, len(labels))
	for i, label := range labels {
		raised := label
		raised.Y -= x.cfg.RaisedRows * label.Height
		lows[i] = model.RowTop(elements, raised)
	}

	groups := make([]model.ApplicationGroup, 0, len(labels))
	for i, label := range labels {
		high := math.Inf(1)
		if i+1 < len(labels) {
			high = lows[i+1]
		}

		var members []model.Element
		for _, e := range elements {
			if e.Y >= lows[i] && e.Y < high {
				members = append(members, e)
			}
		}
		groups = append(groups, model.ApplicationGroup{Start: label, Elements: members, Page: elements})
	}
	return groups
}
