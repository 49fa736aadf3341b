// Package scraper drives the register pipeline: it discovers and downloads
// the council's register PDFs, rasterizes each page, runs OCR over the page
// segments and stores every extracted development application.
package scraper

import (
	"bytes"
	"context"
	"fmt"
	"image/png"

	"github.com/apex/log"

	"github.com/planningalerts-scrapers/murraybridge/config"
	"github.com/planningalerts-scrapers/murraybridge/extract"
	"github.com/planningalerts-scrapers/murraybridge/fetch"
	"github.com/planningalerts-scrapers/murraybridge/gazetteer"
	"github.com/planningalerts-scrapers/murraybridge/model"
	"github.com/planningalerts-scrapers/murraybridge/pdfreport"
	"github.com/planningalerts-scrapers/murraybridge/segment"
)

// Recognizer produces positioned words from an encoded image. The offset is
// added to every word's bounding box so words from different page segments
// share one page coordinate space.
type Recognizer interface {
	Words(imageData []byte, offset model.Rect) ([]model.Element, error)
}

// Storage persists extracted applications keyed by council reference.
type Storage interface {
	Upsert(ctx context.Context, app *model.DevelopmentApplication) (inserted bool, err error)
}

// Fetcher retrieves the register listing page and its PDF documents.
type Fetcher interface {
	ListingPDFs(ctx context.Context, url string) ([]fetch.Link, error)
	Download(ctx context.Context, url, dir string) (string, error)
}

// Document is an opened register PDF.
type Document interface {
	PageCount() int
	PageImages(pageNr int) ([]pdfreport.PageImage, error)
}

// Summary reports what a run did.
type Summary struct {
	Documents int
	Pages     int
	Inserted  int
	Skipped   int
	Rejected  int
}

// Scraper wires the pipeline together.
type Scraper struct {
	cfg        *config.Config
	fetcher    Fetcher
	recognizer Recognizer
	storage    Storage
	extractor  *extract.Extractor
	segmenter  *segment.Segmenter

	openDocument func(path string) (Document, error)
}

// New builds a Scraper from its collaborators. The gazetteer must already be
// loaded; the extractor's comment URL is taken from cfg.
func New(cfg *config.Config, gaz *gazetteer.Gazetteer, fetcher Fetcher, recognizer Recognizer, storage Storage) *Scraper {
	ecfg := extract.DefaultConfig()
	ecfg.CommentURL = cfg.CommentURL

	return &Scraper{
		cfg:        cfg,
		fetcher:    fetcher,
		recognizer: recognizer,
		storage:    storage,
		extractor:  extract.New(gaz, ecfg),
		segmenter:  segment.New(segment.DefaultConfig()),
		openDocument: func(path string) (Document, error) {
			return pdfreport.Open(path)
		},
	}
}

// Run scrapes every register PDF linked from the listing page. Rejected
// application groups are logged and counted but never abort the run;
// download, PDF, OCR and storage failures do.
func (s *Scraper) Run(ctx context.Context) (*Summary, error) {
	sum := &Summary{}

	links, err := s.fetcher.ListingPDFs(ctx, s.cfg.RegisterURL)
	if err != nil {
		return sum, fmt.Errorf("list register documents: %w", err)
	}
	if len(links) == 0 {
		log.WithField("url", s.cfg.RegisterURL).Warn("no register documents linked from listing page")
	}

	for _, link := range links {
		if err := s.processLink(ctx, link, sum); err != nil {
			return sum, err
		}
	}

	log.WithFields(log.Fields{
		"documents": sum.Documents,
		"pages":     sum.Pages,
		"inserted":  sum.Inserted,
		"skipped":   sum.Skipped,
		"rejected":  sum.Rejected,
	}).Info("run complete")
	return sum, nil
}

func (s *Scraper) processLink(ctx context.Context, link fetch.Link, sum *Summary) error {
	logger := log.WithField("document", link.Name)
	logger.Info("downloading register")

	path, err := s.fetcher.Download(ctx, link.URL, s.cfg.DownloadDir)
	if err != nil {
		return fmt.Errorf("download %s: %w", link.URL, err)
	}

	doc, err := s.openDocument(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	sum.Documents++

	for page := 1; page <= doc.PageCount(); page++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		elements, err := s.recognizePage(doc, page)
		if err != nil {
			return fmt.Errorf("recognize %s page %d: %w", link.Name, page, err)
		}
		sum.Pages++
		if err := s.processPage(ctx, page, elements, sum); err != nil {
			return err
		}
	}
	return nil
}

// recognizePage rasterizes one page and OCRs each of its segments. Pages can
// carry several scan images; they are stacked vertically in object order so
// every word lands in a single page coordinate space.
func (s *Scraper) recognizePage(doc Document, pageNr int) ([]model.Element, error) {
	images, err := doc.PageImages(pageNr)
	if err != nil {
		return nil, err
	}

	var elements []model.Element
	yOffset := 0.0
	for _, img := range images {
		for _, seg := range s.segmenter.Segment(img.Image) {
			var buf bytes.Buffer
			if err := png.Encode(&buf, seg.Image); err != nil {
				return nil, fmt.Errorf("encode segment: %w", err)
			}

			offset := model.NewRect(seg.Bounds.X, yOffset+seg.Bounds.Y, seg.Bounds.Width, seg.Bounds.Height)
			words, err := s.recognizer.Words(buf.Bytes(), offset)
			if err != nil {
				return nil, err
			}
			elements = append(elements, words...)
		}
		yOffset += float64(img.Image.Bounds().Dy())
	}
	return elements, nil
}

// processPage groups one page's words into applications and stores each one.
// Extraction failures reject the group; storage failures abort the run.
func (s *Scraper) processPage(ctx context.Context, pageNr int, elements []model.Element, sum *Summary) error {
	groups := s.extractor.Group(elements)
	if len(groups) == 0 {
		log.WithField("page", pageNr).Debug("no application rows on page")
		return nil
	}

	for i, group := range groups {
		logger := log.WithFields(log.Fields{"page": pageNr, "group": i})

		app, err := s.extractor.Extract(group, s.cfg.InfoURL)
		if err != nil {
			sum.Rejected++
			logger.WithField("reason", err.Error()).Warn("application rejected")
			continue
		}

		inserted, err := s.storage.Upsert(ctx, app)
		if err != nil {
			return fmt.Errorf("store application %s: %w", app.ApplicationNumber, err)
		}
		if inserted {
			sum.Inserted++
			logger.WithField("reference", app.ApplicationNumber).Info("application stored")
		} else {
			sum.Skipped++
			logger.WithField("reference", app.ApplicationNumber).Debug("application already stored")
		}
	}
	return nil
}
