// Package report folds document results into a run report and writes the
// JSON outputs.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Epistemic-Technology/ocr-eval/internal/evaluation"
	"github.com/Epistemic-Technology/ocr-eval/models"
)

const (
	// TimestampLayout matches the local ISO-8601 form used in report files.
	TimestampLayout = "2006-01-02T15:04:05.000000"
	fileStampLayout = "20060102_150405"
)

// Aggregator builds and persists run reports.
type Aggregator struct {
	now func() time.Time
}

func NewAggregator() *Aggregator {
	return &Aggregator{now: time.Now}
}

// Aggregate summarizes results. Statistics other than TotalDocuments are taken
// over successfully processed documents only; every result, failures included,
// is kept in Documents in input order.
func (a *Aggregator) Aggregate(results []models.DocumentResult, totalElapsed time.Duration) models.RunReport {
	summary := models.RunSummary{
		TotalDocuments:   len(results),
		TotalTimeSeconds: evaluation.Round2(totalElapsed.Seconds()),
		Timestamp:        a.now().Format(TimestampLayout),
	}

	var rateSum float64
	for _, r := range results {
		if !r.Succeeded() {
			continue
		}
		summary.SuccessfulDocuments++
		summary.TotalPages += r.Processing.PagesProcessed
		if r.Evaluation != nil {
			rateSum += r.Evaluation.SuccessRate
		}
	}
	if summary.SuccessfulDocuments > 0 {
		n := float64(summary.SuccessfulDocuments)
		summary.AverageSuccessRate = evaluation.Round2(rateSum / n)
		summary.AverageTimePerDocument = evaluation.Round2(totalElapsed.Seconds() / n)
	}

	documents := results
	if documents == nil {
		documents = []models.DocumentResult{}
	}
	return models.RunReport{Summary: summary, Documents: documents}
}

// Persist writes evaluation_report_<YYYYMMDD_HHMMSS>.json into outputDir and
// returns its path. Nothing is written when no document succeeded; the
// returned path is then empty.
func (a *Aggregator) Persist(rep models.RunReport, outputDir string) (string, error) {
	if rep.Summary.SuccessfulDocuments == 0 {
		return "", nil
	}
	path := filepath.Join(outputDir, fmt.Sprintf("evaluation_report_%s.json", a.now().Format(fileStampLayout)))
	if err := WriteJSON(path, rep); err != nil {
		return "", err
	}
	return path, nil
}

// WriteJSON writes v to path as 2-space indented JSON without HTML escaping.
func WriteJSON(path string, v any) error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// PrintSummary writes the human-readable end-of-run report.
func PrintSummary(w io.Writer, rep models.RunReport) {
	rule := strings.Repeat("=", 60)
	fmt.Fprintf(w, "\n%s\nEVALUATION REPORT\n%s\n", rule, rule)

	s := rep.Summary
	if s.SuccessfulDocuments == 0 {
		fmt.Fprintln(w, "No documents were successfully processed.")
		return
	}

	fmt.Fprintf(w, "\nOverall Statistics:\n")
	fmt.Fprintf(w, "  Total documents: %d\n", s.TotalDocuments)
	fmt.Fprintf(w, "  Successfully processed: %d\n", s.SuccessfulDocuments)
	fmt.Fprintf(w, "  Total pages processed: %d\n", s.TotalPages)
	fmt.Fprintf(w, "  Total processing time: %.2fs\n", s.TotalTimeSeconds)
	fmt.Fprintf(w, "  Average time per document: %.2fs\n", s.AverageTimePerDocument)
	fmt.Fprintf(w, "  Average success rate: %.2f%%\n", s.AverageSuccessRate)

	fmt.Fprintf(w, "\nPer-Document Results:\n")
	fmt.Fprintf(w, "%-40s %-10s %-8s %-10s %-10s\n", "Document", "Size (MB)", "Pages", "Time (s)", "Success %")
	fmt.Fprintln(w, strings.Repeat("-", 80))
	for _, r := range rep.Documents {
		if !r.Succeeded() {
			continue
		}
		var rate float64
		if r.Evaluation != nil {
			rate = r.Evaluation.SuccessRate
		}
		fmt.Fprintf(w, "%-40s %-10.2f %-8d %-10.2f %-10.2f\n",
			truncate(r.Metadata.Filename, 39),
			r.Metadata.SizeMB,
			r.Processing.PagesProcessed,
			r.Processing.TotalTimeSeconds,
			rate)
	}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
