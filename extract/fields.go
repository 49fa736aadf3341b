package extract

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/planningalerts-scrapers/murraybridge/fuzzy"
	"github.com/planningalerts-scrapers/murraybridge/model"
)

// receivedDatePattern matches D/MM/YYYY with no mandatory leading zero on
// the day.
var receivedDatePattern = regexp.MustCompile(`^\d{1,2}/\d{2}/\d{4}$`)

// ligatures expands the ligature glyphs OCR emits for fi and fl.
var ligatures = strings.NewReplacer("ﬁ", "fi", "ﬂ", "fl")

// slashRepairs maps the characters OCR commonly misreads a slash as.
// Application numbers are of the form NN/NNNN, so within the number band
// these characters can only be corrupted slashes.
var slashRepairs = strings.NewReplacer(
	"I", "/", "l", "/", "L", "/",
	"[", "/", "]", "/", "|", "/",
	"‘", "/", "’", "/", ",", "/", "!", "/",
)

// findAnchor locates the "Applicant" label to the right of the group's
// label, falling back to "Builder". Without either anchor the row has no
// right boundary and the group cannot be extracted. Candidates are ranked
// by edit distance before proximity: a description word like "Applicants"
// can sit nearer the label than the real anchor, and an exact spelling
// must always beat a fuzzy one.
func (x *Extractor) findAnchor(g model.ApplicationGroup) (model.Element, bool) {
	start := g.Start.Center()
	for _, name := range x.cfg.AnchorLabels {
		cond := condense(name)
		bestEdits := fuzzy.LabelMaxDistance + 1
		best := math.Inf(1)
		var anchor model.Element
		found := false

		for _, e := range g.Elements {
			if e.X < g.Start.X {
				continue
			}
			edits := fuzzy.Distance(condense(e.Text), cond)
			if edits > fuzzy.LabelMaxDistance {
				continue
			}
			d := start.Distance(e.Center())
			if edits < bestEdits || (edits == bestEdits && d < best) {
				bestEdits = edits
				best = d
				anchor = e
				found = true
			}
		}
		if found {
			return anchor, true
		}
	}
	return model.Element{}, false
}

// applicationNumber concatenates the text strictly between the label and
// the anchor on the label's row, then repairs OCR slash corruptions.
// An empty result rejects the group upstream.
func (x *Extractor) applicationNumber(g model.ApplicationGroup, anchor model.Element) string {
	var band []model.Element
	for _, e := range g.Elements {
		if e.X < g.Start.Right() || e.X >= anchor.X {
			continue
		}
		if model.VerticalOverlapPercent(g.Start.Rect, e.Rect) <= x.cfg.NumberBandOverlapPercent {
			continue
		}
		band = append(band, e)
	}
	sort.Slice(band, func(i, j int) bool { return band[i].X < band[j].X })

	var b strings.Builder
	for _, e := range band {
		b.WriteString(e.Text)
	}
	number := strings.Join(strings.Fields(b.String()), "")
	return slashRepairs.Replace(number)
}

// receivedDate finds the leftmost element strictly matching the date
// pattern in a vertical band from one row-height above to two row-heights
// below the label. The lodged date sits left of any decision-date column,
// hence leftmost. Absence is not fatal.
func (x *Extractor) receivedDate(g model.ApplicationGroup) (model.Element, bool) {
	top := g.Start.Y - g.Start.Height
	bottom := g.Start.Y + 2*g.Start.Height

	var best model.Element
	found := false
	for _, e := range g.Elements {
		if e.Y < top || e.Y > bottom {
			continue
		}
		if !receivedDatePattern.MatchString(strings.TrimSpace(e.Text)) {
			continue
		}
		if !found || e.X < best.X {
			best = e
			found = true
		}
	}
	return best, found
}

// description joins the elements vertically between the received-date row
// (or the label row when no date was found) and the anchor row, at or
// after the anchor's left margin, in reading order. Words on the same
// visual line are kept together across small vertical jitter. An empty
// result yields the configured placeholder rather than a rejection.
func (x *Extractor) description(g model.ApplicationGroup, anchor model.Element, date model.Element, hasDate bool) string {
	from := g.Start.Bottom()
	if hasDate {
		from = date.Bottom()
	}
	minX := anchor.X - x.cfg.AnchorMarginFactor*anchor.Width

	var items []model.Element
	for _, e := range g.Elements {
		if e.Y < from || e.Y >= anchor.Y {
			continue
		}
		if e.X < minX {
			continue
		}
		items = append(items, e)
	}

	x.sortReadingOrder(items)
	text := ligatures.Replace(joinTexts(items))
	if strings.TrimSpace(text) == "" {
		return x.cfg.NoDescription
	}
	return text
}

// sortReadingOrder orders elements by (Y, X) with a per-pair vertical
// tolerance of LineToleranceFactor times the larger height, so a line
// broken across a hyphen or baseline jitter still reads left to right.
func (x *Extractor) sortReadingOrder(items []model.Element) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		tolerance := math.Max(a.Height, b.Height) * x.cfg.LineToleranceFactor
		if math.Abs(a.Y-b.Y) <= tolerance {
			return a.X < b.X
		}
		return a.Y < b.Y
	})
}

// lineAbove reconstructs the visual text row immediately above ref's row.
// Candidates must sit at least one row-height above ref and strictly left
// of the anchor's margin; the lowest candidate starting left of half the
// anchor's x seeds the row, excluding stray right-aligned fragments. The
// seed's visual row is then collected with per-pair height banding,
// cleaned of OCR noise glyphs contained inside larger words, and truncated
// at the first confident wide gap separating it from drifted description
// text.
func (x *Extractor) lineAbove(elements []model.Element, ref, anchor model.Element) []model.Element {
	margin := anchor.X - x.cfg.AnchorMarginFactor*anchor.Width

	var candidates []model.Element
	for _, e := range elements {
		if e.Y > ref.Y-ref.Height {
			continue
		}
		if e.X >= margin {
			continue
		}
		candidates = append(candidates, e)
	}

	var seed model.Element
	found := false
	for _, e := range candidates {
		if e.X >= anchor.X/2 {
			continue
		}
		if !found || e.Y > seed.Y {
			seed = e
			found = true
		}
	}
	if !found {
		return nil
	}

	var row []model.Element
	for _, e := range candidates {
		tolerance := math.Max(e.Height, seed.Height)
		if math.Abs(e.Y-seed.Y) < tolerance {
			row = append(row, e)
		}
	}
	sort.Slice(row, func(i, j int) bool { return row[i].X < row[j].X })

	return x.truncateAtGap(x.dropContainedNoise(row))
}

// dropContainedNoise removes elements at least ContainmentPercent
// geometrically contained within another element of at least
// ContainmentAreaRatio times their area. These are OCR noise glyphs
// overlapping larger characters.
func (x *Extractor) dropContainedNoise(row []model.Element) []model.Element {
	out := row[:0:0]
	for i, e := range row {
		noise := false
		for j, other := range row {
			if i == j || e.Area() <= 0 {
				continue
			}
			if other.Area() < x.cfg.ContainmentAreaRatio*e.Area() {
				continue
			}
			overlap := e.Rect.Intersect(other.Rect).Area() * 100 / e.Area()
			if overlap >= x.cfg.ContainmentPercent {
				noise = true
				break
			}
		}
		if !noise {
			out = append(out, e)
		}
	}
	return out
}

// truncateAtGap cuts the row at the first horizontal gap wider than
// GapPixels where both flanking elements are confidently recognized.
func (x *Extractor) truncateAtGap(row []model.Element) []model.Element {
	for i := 0; i+1 < len(row); i++ {
		gap := row[i+1].X - row[i].Right()
		if gap > x.cfg.GapPixels &&
			row[i].Confidence >= x.cfg.GapMinConfidence &&
			row[i+1].Confidence >= x.cfg.GapMinConfidence {
			return row[:i+1]
		}
	}
	return row
}

// joinTexts joins element texts with single spaces.
func joinTexts(elements []model.Element) string {
	parts := make([]string, 0, len(elements))
	for _, e := range elements {
		parts = append(parts, e.Text)
	}
	return strings.Join(parts, " ")
}

// cleanAddressText expands ligatures and repairs the \/ glyph pair OCR
// produces for the letter V in street names.
func cleanAddressText(text string) string {
	return strings.ReplaceAll(ligatures.Replace(text), `\/`, "V")
}
