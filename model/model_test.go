package model

import (
	"math"
	"testing"
)

// ============================================================================
// Rect Tests
// ============================================================================

func TestRectEdges(t *testing.T) {
	r := NewRect(10, 20, 100, 50)
	if r.Left() != 10 {
		t.Errorf("Left() = %v, want 10", r.Left())
	}
	if r.Right() != 110 {
		t.Errorf("Right() = %v, want 110", r.Right())
	}
	if r.Top() != 20 {
		t.Errorf("Top() = %v, want 20", r.Top())
	}
	if r.Bottom() != 70 {
		t.Errorf("Bottom() = %v, want 70", r.Bottom())
	}
	if c := r.Center(); c.X != 60 || c.Y != 45 {
		t.Errorf("Center() = %+v, want {60, 45}", c)
	}
}

func TestRectIntersect(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want Rect
	}{
		{"full overlap", NewRect(0, 0, 10, 10), NewRect(0, 0, 10, 10), NewRect(0, 0, 10, 10)},
		{"partial overlap", NewRect(0, 0, 10, 10), NewRect(5, 5, 10, 10), NewRect(5, 5, 5, 5)},
		{"contained", NewRect(0, 0, 10, 10), NewRect(2, 2, 4, 4), NewRect(2, 2, 4, 4)},
		{"disjoint horizontal", NewRect(0, 0, 10, 10), NewRect(20, 0, 10, 10), Rect{}},
		{"disjoint vertical", NewRect(0, 0, 10, 10), NewRect(0, 20, 10, 10), Rect{}},
		{"touching edges", NewRect(0, 0, 10, 10), NewRect(10, 0, 10, 10), Rect{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.Intersect(tt.b)
			if got != tt.want {
				t.Errorf("Intersect() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRectIntersectSymmetry(t *testing.T) {
	rects := []Rect{
		NewRect(0, 0, 10, 10),
		NewRect(5, 5, 20, 3),
		NewRect(-4, 2, 8, 30),
		NewRect(100, 100, 1, 1),
		{},
	}

	for _, a := range rects {
		for _, b := range rects {
			ab := a.Intersect(b)
			ba := b.Intersect(a)
			if ab != ba {
				t.Errorf("Intersect not symmetric: %+v vs %+v for a=%+v b=%+v", ab, ba, a, b)
			}
			if ab.Area() > math.Min(a.Area(), b.Area())+1e-9 {
				t.Errorf("intersection area %v exceeds min input area for a=%+v b=%+v", ab.Area(), a, b)
			}
		}
	}
}

func TestRectUnion(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	b := NewRect(20, 5, 10, 10)
	got := a.Union(b)
	want := NewRect(0, 0, 30, 15)
	if got != want {
		t.Errorf("Union() = %+v, want %+v", got, want)
	}
}

func TestVerticalOverlapPercent(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want float64
	}{
		{"identical", NewRect(0, 0, 10, 10), NewRect(50, 0, 10, 10), 100},
		{"half of b", NewRect(0, 0, 10, 10), NewRect(50, 5, 10, 10), 50},
		{"no overlap", NewRect(0, 0, 10, 10), NewRect(50, 20, 10, 10), 0},
		{"b taller", NewRect(0, 0, 10, 10), NewRect(50, 0, 10, 20), 50},
		{"zero height b", NewRect(0, 0, 10, 10), NewRect(50, 0, 10, 0), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VerticalOverlapPercent(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("VerticalOverlapPercent() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVerticalOverlapPercentBounds(t *testing.T) {
	rects := []Rect{
		NewRect(0, 0, 10, 10),
		NewRect(0, -5, 10, 30),
		NewRect(0, 8, 10, 1),
		NewRect(0, 100, 10, 10),
	}

	for _, a := range rects {
		for _, b := range rects {
			pct := VerticalOverlapPercent(a, b)
			if pct < 0 || pct > 100 {
				t.Errorf("VerticalOverlapPercent(%+v, %+v) = %v, outside [0, 100]", a, b, pct)
			}
		}
	}
}

func TestDistanceSquared(t *testing.T) {
	a := NewRect(0, 0, 10, 10)

	t.Run("aligned to the right", func(t *testing.T) {
		b := NewRect(13, 0, 10, 10)
		if got := DistanceSquared(a, b); got != 9 {
			t.Errorf("DistanceSquared() = %v, want 9", got)
		}
	})

	t.Run("diagonal", func(t *testing.T) {
		b := NewRect(14, 3, 10, 10)
		if got := DistanceSquared(a, b); got != 16+9 {
			t.Errorf("DistanceSquared() = %v, want 25", got)
		}
	})

	t.Run("left of the reference", func(t *testing.T) {
		b := NewRect(0, 0, 4, 10)
		if got := DistanceSquared(a, b); !math.IsInf(got, 1) {
			t.Errorf("DistanceSquared() = %v, want +Inf", got)
		}
	})

	t.Run("small overhang tolerated", func(t *testing.T) {
		// 20% of width 10 = 2, so a start at x=8 still counts as right.
		b := NewRect(8, 0, 10, 10)
		if got := DistanceSquared(a, b); math.IsInf(got, 1) {
			t.Error("DistanceSquared() = +Inf, want finite for overhang within 20%")
		}
	})
}

// ============================================================================
// Element Tests
// ============================================================================

func TestRightNeighbor(t *testing.T) {
	ref := Element{Rect: NewRect(0, 0, 20, 10), Text: "Dev"}
	near := Element{Rect: NewRect(25, 1, 20, 10), Text: "App"}
	far := Element{Rect: NewRect(80, 0, 20, 10), Text: "No."}
	below := Element{Rect: NewRect(25, 40, 20, 10), Text: "other"}
	elements := []Element{ref, far, below, near}

	got, ok := RightNeighbor(elements, ref)
	if !ok {
		t.Fatal("RightNeighbor() found nothing")
	}
	if got.Text != "App" {
		t.Errorf("RightNeighbor() = %q, want %q", got.Text, "App")
	}
}

func TestRightNeighborNone(t *testing.T) {
	ref := Element{Rect: NewRect(100, 0, 20, 10)}
	left := Element{Rect: NewRect(0, 0, 20, 10)}
	below := Element{Rect: NewRect(150, 40, 20, 10)}

	if _, ok := RightNeighbor([]Element{ref, left, below}, ref); ok {
		t.Error("RightNeighbor() found a neighbor, want none")
	}
}

func TestRowTop(t *testing.T) {
	start := Element{Rect: NewRect(0, 50, 20, 10)}
	jitterUp := Element{Rect: NewRect(30, 47, 20, 10)}
	jitterDown := Element{Rect: NewRect(60, 53, 20, 10)}
	otherRow := Element{Rect: NewRect(0, 100, 20, 10)}
	elements := []Element{start, jitterUp, jitterDown, otherRow}

	if got := RowTop(elements, start); got != 47 {
		t.Errorf("RowTop() = %v, want 47", got)
	}
}

func TestRowTopNoOverlap(t *testing.T) {
	start := Element{Rect: NewRect(0, 50, 20, 10)}
	other := Element{Rect: NewRect(0, 200, 20, 10)}

	if got := RowTop([]Element{other}, start); got != 50 {
		t.Errorf("RowTop() = %v, want start's own Y 50", got)
	}
}
