//go:build ocr

// Package ocr converts page-segment images into positioned word elements.
//
// This package wraps the Tesseract OCR engine via gosseract. It requires
// Tesseract to be installed on the system. On macOS, install via:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
package ocr

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/planningalerts-scrapers/murraybridge/model"
)

// Client wraps Tesseract for word-level OCR.
type Client struct {
	client *gosseract.Client
}

// New creates a new OCR client.
// The client should be closed when no longer needed to release resources.
func New() (*Client, error) {
	client := gosseract.NewClient()
	return &Client{client: client}, nil
}

// Close releases OCR resources.
func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// Words performs OCR on image data (PNG, TIFF, JPEG, etc.) and returns the
// recognized words with their bounding boxes translated by offset into
// page space. Empty tokens are dropped.
func (c *Client) Words(imageData []byte, offset model.Rect) ([]model.Element, error) {
	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := c.client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	elements := make([]model.Element, 0, len(boxes))
	for _, box := range boxes {
		word := strings.TrimSpace(box.Word)
		if word == "" {
			continue
		}
		elements = append(elements, model.Element{
			Rect: model.NewRect(
				offset.X+float64(box.Box.Min.X),
				offset.Y+float64(box.Box.Min.Y),
				float64(box.Box.Dx()),
				float64(box.Box.Dy()),
			),
			Text:       word,
			Confidence: box.Confidence,
			// Tesseract's word iterator does not expose alternative
			// readings; every word carries a single choice.
			ChoiceCount: 1,
		})
	}

	return elements, nil
}

// SetLanguage sets the language(s) for OCR recognition.
// Multiple languages can be specified as a "+" separated string (e.g., "eng+fra").
// Default is "eng" (English).
func (c *Client) SetLanguage(lang string) error {
	return c.client.SetLanguage(lang)
}

// SetPageSegMode sets the page segmentation mode.
// This affects how Tesseract analyzes the page layout.
// See gosseract.PageSegMode constants for available modes.
func (c *Client) SetPageSegMode(mode gosseract.PageSegMode) error {
	return c.client.SetPageSegMode(mode)
}
