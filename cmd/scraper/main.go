// Command scraper downloads the Rural City of Murray Bridge development
// register PDFs, OCRs them and stores every application it can read.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/apex/log"
	"github.com/apex/log/handlers/text"

	"github.com/planningalerts-scrapers/murraybridge/config"
	"github.com/planningalerts-scrapers/murraybridge/fetch"
	"github.com/planningalerts-scrapers/murraybridge/gazetteer"
	"github.com/planningalerts-scrapers/murraybridge/ocr"
	"github.com/planningalerts-scrapers/murraybridge/scraper"
	"github.com/planningalerts-scrapers/murraybridge/store"
)

func main() {
	if err := run(); err != nil {
		log.WithError(err).Error("scrape failed")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadFromFlags()
	if err != nil {
		return err
	}

	log.SetHandler(text.New(os.Stderr))
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gaz, err := gazetteer.Load(cfg.GazetteerDir)
	if err != nil {
		return err
	}

	recognizer, err := ocr.New()
	if err != nil {
		if errors.Is(err, ocr.ErrOCRNotEnabled) {
			log.Error("this binary was built without OCR support; rebuild with -tags ocr")
		}
		return err
	}
	defer recognizer.Close()
	if err := recognizer.SetLanguage(cfg.OCRLanguage); err != nil {
		return err
	}

	db, err := store.Open(cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.EnsureSchema(ctx); err != nil {
		return err
	}

	s := scraper.New(cfg, gaz, fetch.New(), recognizer, db)
	_, err = s.Run(ctx)
	return err
}
