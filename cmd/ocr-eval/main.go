package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Epistemic-Technology/ocr-eval/internal/app"
	"github.com/Epistemic-Technology/ocr-eval/internal/config"
	"github.com/Epistemic-Technology/ocr-eval/internal/logger"
	"github.com/Epistemic-Technology/ocr-eval/internal/pipeline"
	"github.com/Epistemic-Technology/ocr-eval/internal/report"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	pattern := flag.String("pattern", cfg.PDFPattern, "Glob of PDF files to evaluate")
	outputDir := flag.String("o", cfg.OutputDir, "Output directory for JSON results")
	dpi := flag.Int("dpi", cfg.DPI, "Render resolution for PDF pages")
	maxPages := flag.Int("max-pages", cfg.MaxPages, "Maximum pages per PDF (0 = all)")
	engine := flag.String("engine", cfg.Engine, "OCR engine: remote or tesseract")
	quiet := flag.Bool("q", false, "Quiet mode (only warnings and errors)")
	flag.Parse()

	cfg.PDFPattern = *pattern
	cfg.OutputDir = *outputDir
	cfg.DPI = *dpi
	cfg.MaxPages = *maxPages
	cfg.Engine = *engine

	log, err := logger.NewLogger(logger.LogConfig{DefaultOutput: "stderr", Quiet: *quiet})
	if err != nil {
		return err
	}

	rule := strings.Repeat("=", 60)
	fmt.Println("DOTS OCR Document Evaluation")
	fmt.Println(rule)

	runner, err := app.NewRunner(cfg, log)
	if errors.Is(err, config.ErrMissingAPIKey) {
		fmt.Println("ERROR: BASETEN_API_KEY environment variable not set")
		fmt.Println("Please set it in your .env file or environment")
		return nil
	}
	if err != nil {
		return err
	}

	files, err := pipeline.FindPDFs(cfg.PDFPattern)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Printf("No PDF files found matching pattern: %s\n", cfg.PDFPattern)
		return nil
	}

	fmt.Printf("Found %d PDF files to process\n", len(files))
	fmt.Printf("Output directory: %s\n", cfg.OutputDir)
	fmt.Printf("Settings: DPI=%d, Max pages=%d\n", cfg.DPI, cfg.MaxPages)
	fmt.Println(rule)

	outcome, err := runner.Run(context.Background(), files)
	if outcome != nil {
		report.PrintSummary(os.Stdout, outcome.Report)
		if outcome.ReportPath != "" {
			fmt.Printf("\nDetailed report saved to: %s\n", outcome.ReportPath)
			fmt.Printf("Individual document outputs saved to: %s/\n", cfg.OutputDir)
		}
	}
	if err != nil {
		return err
	}

	fmt.Println("\n" + rule)
	fmt.Println("Evaluation complete!")
	return nil
}
