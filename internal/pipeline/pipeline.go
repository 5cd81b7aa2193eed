// Package pipeline runs the per-document evaluation: metadata, rasterization,
// per-page OCR, evaluation and persistence.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Epistemic-Technology/ocr-eval/internal/evaluation"
	"github.com/Epistemic-Technology/ocr-eval/internal/logger"
	"github.com/Epistemic-Technology/ocr-eval/internal/ocr"
	"github.com/Epistemic-Technology/ocr-eval/internal/pdf"
	"github.com/Epistemic-Technology/ocr-eval/internal/report"
	"github.com/Epistemic-Technology/ocr-eval/models"
)

// ErrRasterize is the error recorded when a document yields no images.
const ErrRasterize = "Failed to convert PDF to images"

// Pipeline processes one document at a time. Pages are extracted strictly in
// order and a page failure never stops the remaining pages.
type Pipeline struct {
	rasterizer pdf.Rasterizer
	extractor  ocr.PageExtractor
	outputDir  string
	log        logger.Logger
	inspect    func(path string) (pdf.Info, error)
}

func New(rasterizer pdf.Rasterizer, extractor ocr.PageExtractor, outputDir string, log logger.Logger) *Pipeline {
	return &Pipeline{
		rasterizer: rasterizer,
		extractor:  extractor,
		outputDir:  outputDir,
		log:        log,
		inspect:    pdf.Inspect,
	}
}

// Process evaluates the PDF at path. The returned error is non-nil only when
// the file metadata cannot be read; every later failure is recorded in the
// result instead.
func (p *Pipeline) Process(ctx context.Context, path string, dpi, maxPages int) (*models.DocumentResult, error) {
	p.log.Info("Processing: %s", filepath.Base(path))

	metadata, err := p.readMetadata(path)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	p.log.Info("  Converting PDF to images (DPI=%d)...", dpi)
	images := p.rasterizer.Rasterize(path, dpi, maxPages)
	if len(images) == 0 {
		empty := evaluation.Evaluate(nil)
		return &models.DocumentResult{
			Metadata: metadata,
			Error:    ErrRasterize,
			Processing: &models.ProcessingStats{
				TotalTimeSeconds: evaluation.Round2(time.Since(start).Seconds()),
				DPI:              dpi,
			},
			Evaluation: &empty,
		}, nil
	}

	pages := make([]models.PageResult, 0, len(images))
	for i, img := range images {
		pageNum := i + 1
		p.log.Info("  Processing page %d/%d...", pageNum, len(images))
		pageStart := time.Now()
		page := p.extractor.ExtractPage(ctx, img, pageNum)
		page.ProcessingTime = evaluation.Round2(time.Since(pageStart).Seconds())
		pages = append(pages, page)
	}

	total := time.Since(start).Seconds()
	summary := evaluation.Evaluate(pages)
	result := &models.DocumentResult{
		Metadata: metadata,
		Processing: &models.ProcessingStats{
			TotalTimeSeconds: evaluation.Round2(total),
			AvgTimePerPage:   evaluation.Round2(total / float64(len(images))),
			PagesProcessed:   len(images),
			DPI:              dpi,
		},
		Evaluation:  &summary,
		PageResults: pages,
	}

	outputPath := OutputPath(p.outputDir, metadata.Filename)
	if err := report.WriteJSON(outputPath, result); err != nil {
		p.log.Error("Failed to save output for %s: %v", metadata.Filename, err)
		return result, nil
	}
	result.OutputPath = outputPath
	p.log.Info("    Output saved to: %s", outputPath)
	return result, nil
}

func (p *Pipeline) readMetadata(path string) (models.DocumentMetadata, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return models.DocumentMetadata{}, fmt.Errorf("failed to read metadata: %w", err)
	}
	metadata := models.DocumentMetadata{
		Filename: filepath.Base(path),
		Path:     path,
		SizeMB:   evaluation.Round2(float64(stat.Size()) / (1024 * 1024)),
		Mimetype: models.PDFMimeType,
		Modified: stat.ModTime().Format(report.TimestampLayout),
	}
	if p.inspect != nil {
		info, err := p.inspect(path)
		if err != nil {
			p.log.Warn("pdfcpu could not inspect %s: %v", metadata.Filename, err)
		} else {
			metadata.PageCount = info.PageCount
			metadata.PDFVersion = info.Version
		}
	}
	return metadata, nil
}

// OutputPath is where the per-document result for filename is written.
func OutputPath(outputDir, filename string) string {
	stem := strings.TrimSuffix(filename, filepath.Ext(filename))
	return filepath.Join(outputDir, stem+"_extraction.json")
}
