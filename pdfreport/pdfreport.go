// Package pdfreport reads development-register PDF documents and hands
// back the scanned page images embedded in them. The registers are
// produced by scanning paper, so each page is typically a single large
// raster image with no usable text layer.
package pdfreport

import (
	"fmt"
	"image"
	"os"
	"sort"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	// Register decoders for the raster formats councils embed.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// PageImage is one decoded raster image from a PDF page, tagged with the
// object number it was stored under so callers can keep a stable order.
type PageImage struct {
	Image    image.Image
	ObjectNr int
	Name     string
	FileType string
}

// Document is an opened PDF register.
type Document struct {
	ctx  *pdfmodel.Context
	path string
}

// Open reads, validates and optimizes the PDF at path. Optimization is
// required before image extraction so the cross reference table carries
// per-page image object numbers.
func Open(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	ctx, err := api.ReadValidateAndOptimize(f, pdfmodel.NewDefaultConfiguration())
	if err != nil {
		return nil, fmt.Errorf("read pdf %s: %w", path, err)
	}
	return &Document{ctx: ctx, path: path}, nil
}

// PageCount reports the number of pages in the document.
func (d *Document) PageCount() int {
	return d.ctx.PageCount
}

// PageImages extracts and decodes every image on the given 1-based page,
// ordered by object number. Pages without images return an empty slice;
// an image stream that cannot be decoded is an error, since a register
// page we cannot rasterize is a page we cannot read at all.
func (d *Document) PageImages(pageNr int) ([]PageImage, error) {
	if pageNr < 1 || pageNr > d.ctx.PageCount {
		return nil, fmt.Errorf("page %d out of range 1..%d", pageNr, d.ctx.PageCount)
	}

	extracted, err := pdfcpu.ExtractPageImages(d.ctx, pageNr, false)
	if err != nil {
		return nil, fmt.Errorf("extract images page %d: %w", pageNr, err)
	}

	objNrs := make([]int, 0, len(extracted))
	for objNr := range extracted {
		objNrs = append(objNrs, objNr)
	}
	sort.Ints(objNrs)

	images := make([]PageImage, 0, len(objNrs))
	for _, objNr := range objNrs {
		img := extracted[objNr]
		decoded, _, err := image.Decode(img)
		if err != nil {
			return nil, fmt.Errorf("decode image obj %d page %d: %w", objNr, pageNr, err)
		}
		images = append(images, PageImage{
			Image:    decoded,
			ObjectNr: objNr,
			Name:     img.Name,
			FileType: img.FileType,
		})
	}
	return images, nil
}
