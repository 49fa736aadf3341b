package extract

// Config holds the label text and spatial tolerances driving extraction.
// The defaults are tuned against the council's report layout and font;
// changing them requires recalibration against sample PDFs.
type Config struct {
	// Label is the anchor phrase that starts every application row.
	Label string

	// LabelVariants are literal spellings accepted for the label in
	// addition to fuzzy matches, covering common OCR corruptions of the
	// final "No." token (zero for letter O, degree sign, stray quotes).
	LabelVariants []string

	// AnchorLabels are the field labels that bound an application row to
	// the right of the label, in preference order.
	AnchorLabels []string

	// MaxLabelSpan is the maximum number of word elements the label may
	// be split across by OCR.
	MaxLabelSpan int

	// RaisedRows is how many label heights the group's lower bound is
	// raised above the label, so a received date sitting above it still
	// lands in the group.
	RaisedRows float64

	// GapPixels is the horizontal gap beyond which a reconstructed row is
	// truncated, provided both flanking words are confidently recognized.
	GapPixels float64

	// GapMinConfidence is the minimum confidence both words flanking a
	// gap need before the gap truncates the row.
	GapMinConfidence float64

	// ContainmentPercent is the minimum share of a word's area that must
	// lie inside a larger word before it is dropped as OCR noise.
	ContainmentPercent float64

	// ContainmentAreaRatio is how many times larger the containing word
	// must be for the containment test to apply.
	ContainmentAreaRatio float64

	// LineToleranceFactor scales the larger of two word heights into the
	// vertical tolerance for treating them as the same visual line.
	LineToleranceFactor float64

	// AnchorMarginFactor widens the anchor's horizontal bound to the left
	// by this fraction of its width.
	AnchorMarginFactor float64

	// NumberBandOverlapPercent is the minimum vertical overlap with the
	// label for a word to join the application-number band.
	NumberBandOverlapPercent float64

	// NoDescription is the placeholder used when no description text is
	// found; missing descriptions do not reject the record.
	NoDescription string

	// ExcludedAddressPrefixes mark text that is cost, lot or hundred
	// metadata rather than a street address; such groups are rejected.
	ExcludedAddressPrefixes []string

	// CommentURL is the fixed comment address attached to every record.
	CommentURL string
}

// DefaultConfig returns the tuned extraction configuration for the Rural
// City of Murray Bridge register reports.
func DefaultConfig() Config {
	return Config{
		Label: "Dev App No.",
		LabelVariants: []string{
			"Dev App No",
			"Dev App N0",
			"Dev App N°",
			"Dev App “o",
			"Dev App ”o",
		},
		AnchorLabels:             []string{"Applicant", "Builder"},
		MaxLabelSpan:             3,
		RaisedRows:               2,
		GapPixels:                50,
		GapMinConfidence:         60,
		ContainmentPercent:       90,
		ContainmentAreaRatio:     2,
		LineToleranceFactor:      2.0 / 3.0,
		AnchorMarginFactor:       0.2,
		NumberBandOverlapPercent: 50,
		NoDescription:            "No description provided",
		ExcludedAddressPrefixes:  []string{"Dev Cost", "LOT:", "LOT ", "HD:", "HD "},
		CommentURL:               "mailto:council@murraybridge.sa.gov.au",
	}
}
