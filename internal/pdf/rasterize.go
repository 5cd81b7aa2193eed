package pdf

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image/jpeg"

	"github.com/gen2brain/go-fitz"

	"github.com/Epistemic-Technology/ocr-eval/internal/logger"
)

// JPEGQuality is the encoder quality used for rendered pages.
const JPEGQuality = 90

// ErrNoPages is returned when a document opens but has no pages.
var ErrNoPages = errors.New("document has no pages")

// Rasterizer renders PDF pages to base64-encoded JPEG images.
type Rasterizer interface {
	// Rasterize returns up to maxPages images in page order. It never fails:
	// an unreadable document yields an empty slice.
	Rasterize(path string, dpi, maxPages int) []string
}

// FitzRasterizer renders pages with MuPDF.
type FitzRasterizer struct {
	log logger.Logger
}

func NewFitzRasterizer(log logger.Logger) *FitzRasterizer {
	return &FitzRasterizer{log: log}
}

func (r *FitzRasterizer) Rasterize(path string, dpi, maxPages int) []string {
	images, err := RenderPages(path, dpi, maxPages)
	if err != nil {
		r.log.Error("Error converting PDF %s: %v", path, err)
		return []string{}
	}
	r.log.Debug("Rendered %d pages of %s at %d DPI", len(images), path, dpi)
	return images
}

// RenderPages opens path and renders the first PageLimit(count, maxPages)
// pages at dpi. Rendering scales the 72-unit page space by dpi/72.
func RenderPages(path string, dpi, maxPages int) ([]string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	numPages := PageLimit(doc.NumPage(), maxPages)
	if numPages == 0 {
		return nil, ErrNoPages
	}

	images := make([]string, 0, numPages)
	var buf bytes.Buffer
	for pageNum := 0; pageNum < numPages; pageNum++ {
		img, err := doc.ImageDPI(pageNum, float64(dpi))
		if err != nil {
			return nil, fmt.Errorf("failed to render page %d: %w", pageNum+1, err)
		}
		buf.Reset()
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
			return nil, fmt.Errorf("failed to encode page %d: %w", pageNum+1, err)
		}
		images = append(images, base64.StdEncoding.EncodeToString(buf.Bytes()))
	}
	return images, nil
}

// PageLimit caps total at maxPages. A maxPages of zero or less means no cap.
func PageLimit(total, maxPages int) int {
	if total < 0 {
		return 0
	}
	if maxPages > 0 && maxPages < total {
		return maxPages
	}
	return total
}
