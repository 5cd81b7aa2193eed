package evaluation

import (
	"encoding/json"
	"testing"

	"github.com/Epistemic-Technology/ocr-eval/models"
)

func TestEvaluate_Empty(t *testing.T) {
	got := Evaluate(nil)
	want := models.EvaluationSummary{}
	if got != want {
		t.Errorf("Evaluate(nil) = %+v, want all zeros", got)
	}
}

func TestEvaluate_SuccessRate(t *testing.T) {
	tests := []struct {
		name  string
		pages []models.PageResult
		want  float64
	}{
		{
			name:  "all structured",
			pages: []models.PageResult{models.StructuredPage(nil), models.StructuredPage(nil)},
			want:  100,
		},
		{
			name:  "raw text counts as success",
			pages: []models.PageResult{models.RawTextPage("x"), models.StructuredPage(nil)},
			want:  100,
		},
		{
			name:  "one of three failed",
			pages: []models.PageResult{models.StructuredPage(nil), models.ErrorPage("boom", 2), models.RawTextPage("y")},
			want:  66.67,
		},
		{
			name:  "all failed",
			pages: []models.PageResult{models.ErrorPage("a", 1), models.ErrorPage("b", 2)},
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.pages)
			if got.SuccessRate != tt.want {
				t.Errorf("SuccessRate = %v, want %v", got.SuccessRate, tt.want)
			}
			if got.SuccessRate < 0 || got.SuccessRate > 100 {
				t.Errorf("SuccessRate %v out of range", got.SuccessRate)
			}
			if got.TotalPages != len(tt.pages) {
				t.Errorf("TotalPages = %d, want %d", got.TotalPages, len(tt.pages))
			}
		})
	}
}

func TestEvaluate_ElementCounts(t *testing.T) {
	pages := []models.PageResult{
		models.StructuredPage(map[string]any{
			"text":     []any{"a", "b", "c"},
			"tables":   []any{map[string]any{}, map[string]any{}},
			"formulas": []any{"x^2"},
			"layout":   []any{1, 2, 3, 4},
		}),
		models.StructuredPage(map[string]any{
			"text":     "single block",
			"tables":   "not-a-list",
			"formulas": 3,
		}),
		models.RawTextPage(`{"tables": [1, 2]}`),
		models.ErrorPage("failed", 4),
	}

	got := Evaluate(pages).ElementsDetected
	want := models.ElementCounts{TextBlocks: 4, Tables: 2, Formulas: 1, LayoutElements: 4}
	if got != want {
		t.Errorf("ElementsDetected = %+v, want %+v", got, want)
	}
}

func TestEvaluate_PayloadWithErrorKeyIsFailed(t *testing.T) {
	pages := []models.PageResult{
		models.StructuredPage(map[string]any{"error": "page unreadable", "page": float64(1)}),
		models.StructuredPage(map[string]any{"error": "partial", "text": []any{"a", "b"}}),
		models.StructuredPage(map[string]any{"text": "ok"}),
	}
	before := Evaluate(pages)
	if before.SuccessfulPages != 1 || before.ElementsDetected.TextBlocks != 1 {
		t.Errorf("Evaluate() = %+v, want 1 successful page and 1 text block", before)
	}

	data, err := json.Marshal(pages)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var decoded []models.PageResult
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if after := Evaluate(decoded); after != before {
		t.Errorf("Evaluate() after round trip = %+v, want %+v", after, before)
	}
}

func TestEvaluate_AppendingPagesIsMonotonic(t *testing.T) {
	base := []models.PageResult{
		models.StructuredPage(map[string]any{"tables": []any{"t1"}}),
	}
	before := Evaluate(base).ElementsDetected.Tables

	withList := append(append([]models.PageResult{}, base...),
		models.StructuredPage(map[string]any{"tables": []any{"a", "b"}}))
	if got := Evaluate(withList).ElementsDetected.Tables; got != before+2 {
		t.Errorf("tables after appending a 2-element list = %d, want %d", got, before+2)
	}

	withScalar := append(append([]models.PageResult{}, base...),
		models.StructuredPage(map[string]any{"tables": "not-a-list"}))
	if got := Evaluate(withScalar).ElementsDetected.Tables; got != before {
		t.Errorf("tables after appending a scalar = %d, want %d", got, before)
	}
}

func TestEvaluate_FullSuccessIffNoErrors(t *testing.T) {
	ok := []models.PageResult{models.StructuredPage(nil), models.RawTextPage("r")}
	if Evaluate(ok).SuccessRate != 100 {
		t.Error("expected 100 without error pages")
	}
	withErr := append(ok, models.ErrorPage("e", 3))
	if Evaluate(withErr).SuccessRate == 100 {
		t.Error("expected below 100 with an error page")
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{1.234, 1.23},
		{2.5051, 2.51},
		{66.6666, 66.67},
		{0, 0},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
