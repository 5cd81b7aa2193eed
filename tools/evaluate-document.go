package tools

import (
	"context"
	"errors"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Epistemic-Technology/ocr-eval/internal/app"
	"github.com/Epistemic-Technology/ocr-eval/internal/config"
	"github.com/Epistemic-Technology/ocr-eval/internal/logger"
	"github.com/Epistemic-Technology/ocr-eval/internal/pipeline"
	"github.com/Epistemic-Technology/ocr-eval/models"
)

// EvaluateDocumentQuery overrides the configured DPI and page cap. A nil
// MaxPages keeps the configured cap; 0 processes every page.
type EvaluateDocumentQuery struct {
	Path     string `json:"path" jsonschema:"path to a local PDF file"`
	DPI      int    `json:"dpi,omitempty" jsonschema:"render resolution, defaults to PDF_DPI"`
	MaxPages *int   `json:"max_pages,omitempty" jsonschema:"maximum pages to process, 0 for all pages, defaults to MAX_PAGES_PER_PDF"`
}

// DocumentOutcome is the per-document part of a tool response. Page payloads
// stay in the JSON file at OutputPath.
type DocumentOutcome struct {
	Filename         string               `json:"filename"`
	OutputPath       string               `json:"output_path,omitempty"`
	Error            string               `json:"error,omitempty"`
	PagesProcessed   int                  `json:"pages_processed"`
	TotalTimeSeconds float64              `json:"total_time_seconds"`
	SuccessRate      float64              `json:"success_rate"`
	ElementsDetected models.ElementCounts `json:"elements_detected"`
}

func EvaluateDocumentTool() *mcp.Tool {
	inputschema, err := jsonschema.For[EvaluateDocumentQuery](nil)
	if err != nil {
		panic(err)
	}
	return &mcp.Tool{
		Name:        "ocr-evaluate-document",
		Description: "Render a local PDF to page images, run every page through the configured OCR engine, and report the extraction success rate and detected text blocks, tables, formulas, and layout elements. The full per-page results are written to <output_dir>/<name>_extraction.json.",
		InputSchema: inputschema,
	}
}

func EvaluateDocumentToolHandler(ctx context.Context, req *mcp.CallToolRequest, query EvaluateDocumentQuery, cfg config.Config, log logger.Logger) (*mcp.CallToolResult, *DocumentOutcome, error) {
	log.Info("ocr-evaluate-document tool called for %s", query.Path)
	if query.Path == "" {
		return nil, nil, errors.New("path is required")
	}

	runner, err := app.NewRunner(applyOverrides(cfg, query.DPI, query.MaxPages), log)
	if err != nil {
		log.Error("ocr-evaluate-document tool failed: %v", err)
		return nil, nil, err
	}
	if err := pipeline.PrepareOutputDir(cfg.OutputDir); err != nil {
		return nil, nil, err
	}

	result := runner.ProcessDocument(ctx, query.Path)
	outcome := documentOutcome(result)
	return nil, &outcome, nil
}

func applyOverrides(cfg config.Config, dpi int, maxPages *int) config.Config {
	if dpi > 0 {
		cfg.DPI = dpi
	}
	if maxPages != nil {
		cfg.MaxPages = *maxPages
	}
	return cfg
}

func documentOutcome(r models.DocumentResult) DocumentOutcome {
	out := DocumentOutcome{
		Filename:   r.Metadata.Filename,
		OutputPath: r.OutputPath,
		Error:      r.Error,
	}
	if r.Processing != nil {
		out.PagesProcessed = r.Processing.PagesProcessed
		out.TotalTimeSeconds = r.Processing.TotalTimeSeconds
	}
	if r.Evaluation != nil {
		out.SuccessRate = r.Evaluation.SuccessRate
		out.ElementsDetected = r.Evaluation.ElementsDetected
	}
	return out
}
