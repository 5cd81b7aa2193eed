// Package ocr submits rendered page images to an OCR engine and turns the
// reply into a models.PageResult.
package ocr

import (
	"context"
	"encoding/json"

	"github.com/Epistemic-Technology/ocr-eval/models"
)

// Prompt is the instruction sent with every page image.
const Prompt = "Extract all layout information and text content from this document. Return as JSON with layout elements, text, tables, and formulas."

// PageExtractor extracts one page. Failures are returned as error page
// results, never as Go errors, so a bad page cannot abort a document.
type PageExtractor interface {
	Name() string
	ExtractPage(ctx context.Context, imageB64 string, pageNumber int) models.PageResult
}

// ParseContent decodes model output. A JSON object becomes a structured
// result; anything else is kept verbatim as raw text.
func ParseContent(content string) models.PageResult {
	var payload map[string]any
	if err := json.Unmarshal([]byte(content), &payload); err != nil || payload == nil {
		return models.RawTextPage(content)
	}
	return models.StructuredPage(payload)
}

// DataURL wraps a base64 JPEG for an image_url content part.
func DataURL(imageB64 string) string {
	return "data:image/jpeg;base64," + imageB64
}
