package tools

import (
	"context"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Epistemic-Technology/ocr-eval/internal/app"
	"github.com/Epistemic-Technology/ocr-eval/internal/config"
	"github.com/Epistemic-Technology/ocr-eval/internal/logger"
	"github.com/Epistemic-Technology/ocr-eval/internal/pipeline"
	"github.com/Epistemic-Technology/ocr-eval/models"
)

type EvaluateBatchQuery struct {
	Pattern  string `json:"pattern,omitempty" jsonschema:"glob of PDF files, defaults to PDF_PATTERN"`
	DPI      int    `json:"dpi,omitempty" jsonschema:"render resolution, defaults to PDF_DPI"`
	MaxPages *int   `json:"max_pages,omitempty" jsonschema:"maximum pages per PDF, 0 for all pages, defaults to MAX_PAGES_PER_PDF"`
}

type EvaluateBatchResponse struct {
	ReportPath string            `json:"report_path,omitempty"`
	Summary    models.RunSummary `json:"summary"`
	Documents  []DocumentOutcome `json:"documents"`
}

func EvaluateBatchTool() *mcp.Tool {
	inputschema, err := jsonschema.For[EvaluateBatchQuery](nil)
	if err != nil {
		panic(err)
	}
	return &mcp.Tool{
		Name:        "ocr-evaluate-batch",
		Description: "Evaluate every PDF matching a glob pattern (default from PDF_PATTERN) with the configured OCR engine, one document at a time. Writes one extraction JSON per document and an evaluation_report_<timestamp>.json summary to the output directory.",
		InputSchema: inputschema,
	}
}

func EvaluateBatchToolHandler(ctx context.Context, req *mcp.CallToolRequest, query EvaluateBatchQuery, cfg config.Config, log logger.Logger) (*mcp.CallToolResult, *EvaluateBatchResponse, error) {
	log.Info("ocr-evaluate-batch tool called")
	cfg = applyOverrides(cfg, query.DPI, query.MaxPages)
	if query.Pattern != "" {
		cfg.PDFPattern = query.Pattern
	}

	runner, err := app.NewRunner(cfg, log)
	if err != nil {
		log.Error("ocr-evaluate-batch tool failed: %v", err)
		return nil, nil, err
	}
	files, err := pipeline.FindPDFs(cfg.PDFPattern)
	if err != nil {
		return nil, nil, err
	}

	outcome, err := runner.Run(ctx, files)
	if err != nil {
		return nil, nil, fmt.Errorf("evaluation run failed: %w", err)
	}

	response := &EvaluateBatchResponse{
		ReportPath: outcome.ReportPath,
		Summary:    outcome.Report.Summary,
		Documents:  make([]DocumentOutcome, 0, len(outcome.Report.Documents)),
	}
	for _, doc := range outcome.Report.Documents {
		response.Documents = append(response.Documents, documentOutcome(doc))
	}
	return nil, response, nil
}
