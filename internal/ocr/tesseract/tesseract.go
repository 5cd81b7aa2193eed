// Package tesseract provides a local OCR baseline using the gosseract client.
// It produces the same structured payload keys as the remote model so both
// engines can be scored by the same evaluator.
package tesseract

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/Epistemic-Technology/ocr-eval/internal/logger"
	"github.com/Epistemic-Technology/ocr-eval/models"
)

// Engine implements ocr.PageExtractor on top of Tesseract.
type Engine struct {
	clientFactory func() *gosseract.Client
	dpi           int
	languages     []string
	log           logger.Logger
}

// New constructs a Tesseract-backed extractor. dpi is forwarded to Tesseract
// as user_defined_dpi; languages defaults to Tesseract's own default.
func New(dpi int, languages []string, log logger.Logger) *Engine {
	return &Engine{
		clientFactory: gosseract.NewClient,
		dpi:           dpi,
		languages:     languages,
		log:           log,
	}
}

func (e *Engine) Name() string { return "tesseract" }

func (e *Engine) ExtractPage(ctx context.Context, imageB64 string, pageNumber int) models.PageResult {
	if err := ctx.Err(); err != nil {
		return models.ErrorPage(err.Error(), pageNumber)
	}
	payload, err := e.recognize(imageB64)
	if err != nil {
		e.log.Warn("Tesseract failed on page %d: %v", pageNumber, err)
		return models.ErrorPage(err.Error(), pageNumber)
	}
	return models.StructuredPage(payload)
}

func (e *Engine) recognize(imageB64 string) (map[string]any, error) {
	img, err := base64.StdEncoding.DecodeString(imageB64)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	c := e.clientFactory()
	defer c.Close()

	if err := c.SetImageFromBytes(img); err != nil {
		return nil, fmt.Errorf("set image: %w", err)
	}
	if len(e.languages) > 0 {
		if err := c.SetLanguage(e.languages...); err != nil {
			return nil, fmt.Errorf("set languages: %w", err)
		}
	}
	if e.dpi > 0 {
		if err := c.SetVariable(gosseract.SettableVariable("user_defined_dpi"), fmt.Sprint(e.dpi)); err != nil {
			return nil, fmt.Errorf("set dpi: %w", err)
		}
	}

	boxes, err := c.GetBoundingBoxes(gosseract.RIL_PARA)
	if err != nil {
		return nil, fmt.Errorf("bounding boxes: %w", err)
	}
	return blocksPayload(boxes), nil
}

// blocksPayload maps paragraph boxes to the "text" and "layout" keys.
func blocksPayload(boxes []gosseract.BoundingBox) map[string]any {
	text := make([]any, 0, len(boxes))
	layout := make([]any, 0, len(boxes))
	for _, b := range boxes {
		word := strings.TrimSpace(b.Word)
		if word == "" {
			continue
		}
		text = append(text, word)
		layout = append(layout, map[string]any{
			"category":   "Text",
			"bbox":       []any{b.Box.Min.X, b.Box.Min.Y, b.Box.Max.X, b.Box.Max.Y},
			"confidence": b.Confidence,
		})
	}
	return map[string]any{
		"text":   text,
		"layout": layout,
	}
}
