// Package extract reconstructs development-application records from
// positioned OCR words. It finds the label phrase that starts every
// application row, partitions a page's elements into per-application
// groups, and extracts the typed fields from each group using spatial
// heuristics and gazetteer-backed fuzzy matching.
package extract

import (
	"errors"
	"strings"
	"time"

	"github.com/planningalerts-scrapers/murraybridge/gazetteer"
	"github.com/planningalerts-scrapers/murraybridge/model"
)

// Rejection reasons for a single application group. A rejected group is
// skipped; processing continues with the next group.
var (
	ErrNoAnchor            = errors.New("no applicant or builder anchor in group")
	ErrNoApplicationNumber = errors.New("no application number between label and anchor")
	ErrNotAnAddress        = errors.New("text above the application row is not a street address")
	ErrNoSuburb            = errors.New("no gazetteer suburb recognized in address")
)

// Extractor turns application element groups into records. It is safe for
// reuse across pages; the gazetteer is read-only and the configuration is
// never mutated.
type Extractor struct {
	gaz *gazetteer.Gazetteer
	cfg Config
}

// New creates an extractor with the given gazetteer and configuration.
func New(gaz *gazetteer.Gazetteer, cfg Config) *Extractor {
	return &Extractor{gaz: gaz, cfg: cfg}
}

// Extract locates the fields of one application group and assembles the
// finished record. infoURL is the source PDF address recorded on the
// record. A nil record with one of the Err* rejection reasons means the
// group is skipped.
func (x *Extractor) Extract(g model.ApplicationGroup, infoURL string) (*model.DevelopmentApplication, error) {
	anchor, ok := x.findAnchor(g)
	if !ok {
		return nil, ErrNoAnchor
	}

	number := x.applicationNumber(g, anchor)
	if number == "" {
		return nil, ErrNoApplicationNumber
	}

	dateElement, hasDate := x.receivedDate(g)
	description := x.description(g, anchor, dateElement, hasDate)

	addressRow := x.lineAbove(g.Elements, g.Start, anchor)
	addressText := cleanAddressText(joinTexts(addressRow))
	for _, prefix := range x.cfg.ExcludedAddressPrefixes {
		if strings.HasPrefix(addressText, prefix) {
			return nil, ErrNotAnAddress
		}
	}

	address := x.NormalizeAddress(addressText)
	if !address.HasStreet && len(addressRow) > 0 {
		// The street may continue on a supplementary line above the
		// address block; retry the full normalization once with it.
		// The supplement can sit above the group's lower bound, so the
		// search runs over the whole page.
		page := g.Page
		if page == nil {
			page = g.Elements
		}
		supplement := x.lineAbove(page, addressRow[0], anchor)
		if len(supplement) > 0 {
			retried := x.NormalizeAddress(cleanAddressText(joinTexts(supplement)) + " " + addressText)
			if retried.HasSuburb {
				address = retried
			}
		}
	}
	if !address.HasSuburb || strings.TrimSpace(address.Text) == "" {
		return nil, ErrNoSuburb
	}

	received := ""
	if hasDate {
		received = formatReceived(dateElement.Text)
	}

	return &model.DevelopmentApplication{
		ApplicationNumber: number,
		Address:           address.Text,
		Description:       description,
		InformationURL:    infoURL,
		CommentURL:        x.cfg.CommentURL,
		ScrapeDate:        time.Now().UTC().Format("2006-01-02"),
		ReceivedDate:      received,
	}, nil
}

// formatReceived converts a D/MM/YYYY date to YYYY-MM-DD, or empty when it
// does not parse.
func formatReceived(text string) string {
	t, err := time.Parse("2/01/2006", strings.TrimSpace(text))
	if err != nil {
		return ""
	}
	return t.Format("2006-01-02")
}
