// Package app assembles the evaluation runner from a Config.
package app

import (
	"fmt"

	"github.com/Epistemic-Technology/ocr-eval/internal/config"
	"github.com/Epistemic-Technology/ocr-eval/internal/logger"
	"github.com/Epistemic-Technology/ocr-eval/internal/ocr"
	"github.com/Epistemic-Technology/ocr-eval/internal/ocr/tesseract"
	"github.com/Epistemic-Technology/ocr-eval/internal/pdf"
	"github.com/Epistemic-Technology/ocr-eval/internal/pipeline"
	"github.com/Epistemic-Technology/ocr-eval/internal/report"
)

// NewExtractor returns the page extractor selected by cfg.Engine.
func NewExtractor(cfg config.Config, log logger.Logger) (ocr.PageExtractor, error) {
	switch cfg.Engine {
	case config.EngineRemote:
		return ocr.NewRemoteClient(cfg, log), nil
	case config.EngineTesseract:
		return tesseract.New(cfg.DPI, nil, log), nil
	default:
		return nil, fmt.Errorf("unknown OCR engine %q", cfg.Engine)
	}
}

// NewRunner validates cfg and wires rasterizer, extractor, pipeline and
// aggregator together.
func NewRunner(cfg config.Config, log logger.Logger) (*pipeline.Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	extractor, err := NewExtractor(cfg, log)
	if err != nil {
		return nil, err
	}
	log.Info("Using OCR engine %s", extractor.Name())
	p := pipeline.New(pdf.NewFitzRasterizer(log), extractor, cfg.OutputDir, log)
	return pipeline.NewRunner(p, report.NewAggregator(), cfg, log), nil
}
