// Package evaluation scores page extraction results.
package evaluation

import (
	"math"

	"github.com/Epistemic-Technology/ocr-eval/models"
)

// Round2 rounds v to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Evaluate computes quality metrics over pages. Only structured pages
// contribute element counts; missing or wrong-typed fields count as zero.
func Evaluate(pages []models.PageResult) models.EvaluationSummary {
	summary := models.EvaluationSummary{TotalPages: len(pages)}
	if len(pages) == 0 {
		return summary
	}

	for _, page := range pages {
		if page.Failed() {
			continue
		}
		summary.SuccessfulPages++
		if page.Kind != models.PageStructured {
			continue
		}
		counts := &summary.ElementsDetected
		counts.TextBlocks += textBlocks(page.Content["text"])
		counts.Tables += listLen(page.Content["tables"])
		counts.Formulas += listLen(page.Content["formulas"])
		counts.LayoutElements += listLen(page.Content["layout"])
	}

	summary.SuccessRate = Round2(float64(summary.SuccessfulPages) / float64(summary.TotalPages) * 100)
	return summary
}

// textBlocks counts a list of blocks by length and a single string as one.
func textBlocks(v any) int {
	if _, ok := v.(string); ok {
		return 1
	}
	return listLen(v)
}

func listLen(v any) int {
	switch list := v.(type) {
	case []any:
		return len(list)
	case []string:
		return len(list)
	case []map[string]any:
		return len(list)
	default:
		return 0
	}
}
