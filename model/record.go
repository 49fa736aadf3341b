package model

// FormattedAddress is the intermediate result of address normalization.
// HasSuburb false means the gazetteer lookup failed and Text carries the
// raw input unmodified; callers must treat that as a rejection signal.
type FormattedAddress struct {
	Text      string
	HasSuburb bool
	HasStreet bool
}

// DevelopmentApplication is a finished record ready for storage.
// ApplicationNumber is the natural key; uniqueness is enforced by the
// store, not here. Dates are formatted YYYY-MM-DD, or empty when unparsed.
type DevelopmentApplication struct {
	ApplicationNumber string
	Address           string
	Description       string
	InformationURL    string
	CommentURL        string
	ScrapeDate        string
	ReceivedDate      string
}
