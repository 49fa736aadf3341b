// Package segment splits large page images into smaller sub-images along
// contiguous bands of near-white pixels. Scanned report pages are mostly
// blank; OCRing them whole is expensive, and splitting on whitespace bands
// bounds the memory and time cost of each OCR call.
package segment

import (
	"image"

	"github.com/planningalerts-scrapers/murraybridge/model"
)

// Config holds the segmentation thresholds. The defaults are tuned against
// the council's report layout; see DefaultConfig.
type Config struct {
	// MinArea is the pixel area below which an image is passed through
	// unsegmented as a single identity segment.
	MinArea int

	// WhiteThreshold is the minimum 8-bit channel value for a pixel to
	// count as near-white.
	WhiteThreshold uint8

	// MaxDarkPerLine is the number of non-white pixels a scan line may
	// contain and still be classified white.
	MaxDarkPerLine int

	// MinBandLines is the minimum run of consecutive white lines that
	// forms a band safe to split on.
	MinBandLines int
}

// DefaultConfig returns the tuned segmentation thresholds.
func DefaultConfig() Config {
	return Config{
		MinArea:        500 * 500,
		WhiteThreshold: 240,
		MaxDarkPerLine: 2,
		MinBandLines:   25,
	}
}

// PageSegment is one sub-image of a page together with its offset in the
// original image, so OCR word positions can be mapped back to page space.
type PageSegment struct {
	Image  image.Image
	Bounds model.Rect
}

// Segmenter splits page images along whitespace bands.
type Segmenter struct {
	cfg Config
}

// New creates a segmenter with the given configuration.
func New(cfg Config) *Segmenter {
	return &Segmenter{cfg: cfg}
}

// Segment splits img into sub-images. Images at or below the area gate pass
// through as a single segment covering the full image. The returned segment
// bounds tile the original exactly: splits happen at the midpoints of
// qualifying white bands, so no pixel is lost or duplicated.
//
// The algorithm scans horizontal lines first, classifying a line as white
// when at most MaxDarkPerLine pixels fail the near-white test, collapsing
// runs of at least MinBandLines white lines into split bands. The same scan
// is then repeated column-wise within each vertical span.
func (s *Segmenter) Segment(img image.Image) []PageSegment {
	bounds := img.Bounds()

	if bounds.Dx()*bounds.Dy() <= s.cfg.MinArea {
		return []PageSegment{s.crop(img, bounds)}
	}

	var segments []PageSegment
	for _, band := range s.splitRows(img, bounds) {
		for _, cell := range s.splitColumns(img, band) {
			segments = append(segments, s.crop(img, cell))
		}
	}
	return segments
}

// crop extracts the sub-image for r, recording its offset relative to the
// original image origin.
func (s *Segmenter) crop(img image.Image, r image.Rectangle) PageSegment {
	origin := img.Bounds().Min
	seg := PageSegment{
		Bounds: model.NewRect(
			float64(r.Min.X-origin.X),
			float64(r.Min.Y-origin.Y),
			float64(r.Dx()),
			float64(r.Dy()),
		),
	}

	if sub, ok := img.(interface {
		SubImage(image.Rectangle) image.Image
	}); ok {
		seg.Image = sub.SubImage(r)
		return seg
	}

	// Fallback for image types without SubImage support.
	out := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			out.Set(x-r.Min.X, y-r.Min.Y, img.At(x, y))
		}
	}
	seg.Image = out
	return seg
}

// splitRows divides r into vertical spans, cutting at the midpoint of each
// qualifying horizontal white band.
func (s *Segmenter) splitRows(img image.Image, r image.Rectangle) []image.Rectangle {
	white := make([]bool, r.Dy())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		white[y-r.Min.Y] = s.whiteRow(img, y, r.Min.X, r.Max.X)
	}

	var spans []image.Rectangle
	start := r.Min.Y
	for _, cut := range s.bandMidpoints(white, r.Min.Y) {
		spans = append(spans, image.Rect(r.Min.X, start, r.Max.X, cut))
		start = cut
	}
	spans = append(spans, image.Rect(r.Min.X, start, r.Max.X, r.Max.Y))
	return spans
}

// splitColumns divides r into horizontal spans, cutting at the midpoint of
// each qualifying vertical white band.
func (s *Segmenter) splitColumns(img image.Image, r image.Rectangle) []image.Rectangle {
	white := make([]bool, r.Dx())
	for x := r.Min.X; x < r.Max.X; x++ {
		white[x-r.Min.X] = s.whiteColumn(img, x, r.Min.Y, r.Max.Y)
	}

	var spans []image.Rectangle
	start := r.Min.X
	for _, cut := range s.bandMidpoints(white, r.Min.X) {
		spans = append(spans, image.Rect(start, r.Min.Y, cut, r.Max.Y))
		start = cut
	}
	spans = append(spans, image.Rect(start, r.Min.Y, r.Max.X, r.Max.Y))
	return spans
}

// bandMidpoints collapses runs of white lines into bands and returns the
// midpoint coordinate of each band of at least MinBandLines lines. Bands
// touching either edge are skipped: there is nothing on the other side to
// separate.
func (s *Segmenter) bandMidpoints(white []bool, offset int) []int {
	var cuts []int
	run := 0
	for i := 0; i <= len(white); i++ {
		if i < len(white) && white[i] {
			run++
			continue
		}
		if run >= s.cfg.MinBandLines {
			bandStart := i - run
			if bandStart > 0 && i < len(white) {
				cuts = append(cuts, offset+bandStart+run/2)
			}
		}
		run = 0
	}
	return cuts
}

// whiteRow reports whether scan line y is white between x0 and x1.
func (s *Segmenter) whiteRow(img image.Image, y, x0, x1 int) bool {
	dark := 0
	for x := x0; x < x1; x++ {
		if !s.whitePixel(img, x, y) {
			dark++
			if dark > s.cfg.MaxDarkPerLine {
				return false
			}
		}
	}
	return true
}

// whiteColumn reports whether column x is white between y0 and y1.
func (s *Segmenter) whiteColumn(img image.Image, x, y0, y1 int) bool {
	dark := 0
	for y := y0; y < y1; y++ {
		if !s.whitePixel(img, x, y) {
			dark++
			if dark > s.cfg.MaxDarkPerLine {
				return false
			}
		}
	}
	return true
}

// whitePixel classifies a pixel as near-white: pure white, or every RGB
// channel above the threshold.
func (s *Segmenter) whitePixel(img image.Image, x, y int) bool {
	r, g, b, _ := img.At(x, y).RGBA()
	if r == 0xffff && g == 0xffff && b == 0xffff {
		return true
	}
	threshold := uint32(s.cfg.WhiteThreshold)
	return uint32(r>>8) > threshold && uint32(g>>8) > threshold && uint32(b>>8) > threshold
}
