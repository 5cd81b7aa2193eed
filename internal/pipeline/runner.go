package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Epistemic-Technology/ocr-eval/internal/config"
	"github.com/Epistemic-Technology/ocr-eval/internal/logger"
	"github.com/Epistemic-Technology/ocr-eval/internal/report"
	"github.com/Epistemic-Technology/ocr-eval/models"
)

// Runner drives a batch: documents are processed one after another and the
// report is written once at the end.
type Runner struct {
	pipeline   *Pipeline
	aggregator *report.Aggregator
	cfg        config.Config
	log        logger.Logger
}

// Outcome is what a finished run produced.
type Outcome struct {
	Report     models.RunReport
	ReportPath string
}

func NewRunner(p *Pipeline, agg *report.Aggregator, cfg config.Config, log logger.Logger) *Runner {
	return &Runner{pipeline: p, aggregator: agg, cfg: cfg, log: log}
}

// FindPDFs expands pattern into the sorted list of matching files.
func FindPDFs(pattern string) ([]string, error) {
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	return files, nil
}

// PrepareOutputDir creates outputDir if needed.
func PrepareOutputDir(outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// Run processes paths in order. A document that fails before rasterization is
// recorded with its filename and the error; the run always continues.
func (r *Runner) Run(ctx context.Context, paths []string) (*Outcome, error) {
	if err := PrepareOutputDir(r.cfg.OutputDir); err != nil {
		return nil, err
	}

	start := time.Now()
	results := make([]models.DocumentResult, 0, len(paths))
	for _, path := range paths {
		results = append(results, r.ProcessDocument(ctx, path))
	}
	elapsed := time.Since(start)

	rep := r.aggregator.Aggregate(results, elapsed)
	reportPath, err := r.aggregator.Persist(rep, r.cfg.OutputDir)
	if err != nil {
		r.log.Error("Failed to save report: %v", err)
		return &Outcome{Report: rep}, err
	}
	if reportPath == "" {
		r.log.Warn("No documents were successfully processed; report not written")
	} else {
		r.log.Info("Detailed report saved to: %s", reportPath)
	}
	return &Outcome{Report: rep, ReportPath: reportPath}, nil
}

// ProcessDocument runs the pipeline on one file and converts a metadata
// failure into a filename-only error record. The output directory must exist.
func (r *Runner) ProcessDocument(ctx context.Context, path string) models.DocumentResult {
	result, err := r.pipeline.Process(ctx, path, r.cfg.DPI, r.cfg.MaxPages)
	if err != nil {
		r.log.Error("  ✗ Error processing %s: %v", path, err)
		return models.DocumentResult{
			Metadata: models.DocumentMetadata{Filename: filepath.Base(path)},
			Error:    err.Error(),
		}
	}

	if result.Succeeded() {
		counts := result.Evaluation.ElementsDetected
		r.log.Info("  ✓ Completed in %.2fs", result.Processing.TotalTimeSeconds)
		r.log.Info("    Success rate: %.2f%%", result.Evaluation.SuccessRate)
		r.log.Info("    Elements detected: text_blocks=%d tables=%d formulas=%d layout_elements=%d",
			counts.TextBlocks, counts.Tables, counts.Formulas, counts.LayoutElements)
	} else {
		r.log.Warn("  ✗ Failed: %s", result.Error)
	}
	return *result
}
