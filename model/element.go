package model

import "math"

// Element is a single OCR word token: a rectangle in page-image space plus
// the recognized text, the engine's confidence (0-100) and the number of
// alternative readings the engine considered. Elements are immutable once
// created and live for one page's processing pass.
type Element struct {
	Rect
	Text        string
	Confidence  float64
	ChoiceCount int
}

// RightNeighbor returns the element geometrically nearest to the right of e
// among all elements that vertically overlap it. The second return value is
// false when no element qualifies.
func RightNeighbor(elements []Element, e Element) (Element, bool) {
	best := math.Inf(1)
	var nearest Element

	for _, candidate := range elements {
		if !VerticalOverlap(e.Rect, candidate.Rect) {
			continue
		}
		d := DistanceSquared(e.Rect, candidate.Rect)
		if d < best {
			best = d
			nearest = candidate
		}
	}

	if math.IsInf(best, 1) {
		return Element{}, false
	}
	return nearest, true
}

// RowTop returns the minimum Y among elements that vertically overlap
// start's row span. It tolerates small vertical jitter between words on
// the same visual row. When nothing overlaps, start's own Y is returned.
func RowTop(elements []Element, start Element) float64 {
	top := start.Y
	for _, candidate := range elements {
		if VerticalOverlap(start.Rect, candidate.Rect) && candidate.Y < top {
			top = candidate.Y
		}
	}
	return top
}

// ApplicationGroup is the set of elements geometrically between one label
// row and the next, covering a single development application record. Page
// holds every element on the page: a street line can continue above the
// group's raised lower bound, so searches that step outside the group's
// vertical span need the page, not just the members.
type ApplicationGroup struct {
	Start    Element
	Elements []Element
	Page     []Element
}
