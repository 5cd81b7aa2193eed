package models

import (
	"encoding/json"
	"fmt"
)

// PDFMimeType is the fixed mimetype recorded for every evaluated document.
const PDFMimeType = "application/pdf"

// DocumentMetadata is a snapshot of the input file taken once before processing.
type DocumentMetadata struct {
	Filename   string  `json:"filename"`
	Path       string  `json:"path,omitempty"`
	SizeMB     float64 `json:"size_mb"`
	Mimetype   string  `json:"mimetype,omitempty"`
	Modified   string  `json:"modified,omitempty"`
	PageCount  int     `json:"page_count,omitempty"`
	PDFVersion string  `json:"pdf_version,omitempty"`
}

// PageKind tags which variant of PageResult is populated.
type PageKind string

const (
	PageStructured PageKind = "structured"
	PageRawText    PageKind = "raw_text"
	PageError      PageKind = "error"
)

// PageResult is the outcome of extracting a single page.
//
// Exactly one variant is meaningful, selected by Kind:
//   - PageStructured: Content holds the decoded JSON object returned by the model
//   - PageRawText: RawText holds the model output that was not a JSON object
//   - PageError: Error holds the failure message and Page the 1-based page number
type PageResult struct {
	Kind           PageKind
	Content        map[string]any
	RawText        string
	Error          string
	Page           int
	ProcessingTime float64
}

// StructuredPage builds a successful structured extraction result.
func StructuredPage(content map[string]any) PageResult {
	if content == nil {
		content = map[string]any{}
	}
	return PageResult{Kind: PageStructured, Content: content}
}

// RawTextPage builds the fallback result for unparseable model output.
func RawTextPage(text string) PageResult {
	return PageResult{Kind: PageRawText, RawText: text}
}

// ErrorPage builds a failed page result.
func ErrorPage(message string, page int) PageResult {
	return PageResult{Kind: PageError, Error: message, Page: page}
}

// Failed reports whether the page carries an error. A structured payload with
// its own "error" key counts as failed, matching how the flat form is read back.
func (p PageResult) Failed() bool {
	if p.Kind == PageStructured {
		_, ok := p.Content["error"]
		return ok
	}
	return p.Kind == PageError
}

// MarshalJSON writes the page in the flat report shape: the structured payload
// keys, {"raw_text"} or {"error","page"}, plus "processing_time". The measured
// processing_time replaces any payload key of the same name.
func (p PageResult) MarshalJSON() ([]byte, error) {
	out := make(map[string]any)
	switch p.Kind {
	case PageStructured:
		for k, v := range p.Content {
			out[k] = v
		}
	case PageRawText:
		out["raw_text"] = p.RawText
	case PageError:
		out["error"] = p.Error
		out["page"] = p.Page
	default:
		return nil, fmt.Errorf("unknown page result kind %q", p.Kind)
	}
	out["processing_time"] = p.ProcessingTime
	return json.Marshal(out)
}

// UnmarshalJSON classifies a flat page object back into its variant.
func (p *PageResult) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var processingTime float64
	if v, ok := raw["processing_time"].(float64); ok {
		processingTime = v
		delete(raw, "processing_time")
	}

	if msg, ok := raw["error"].(string); ok {
		if page, ok := raw["page"].(float64); ok && len(raw) == 2 {
			*p = ErrorPage(msg, int(page))
			p.ProcessingTime = processingTime
			return nil
		}
	}
	if text, ok := raw["raw_text"].(string); ok && len(raw) == 1 {
		*p = RawTextPage(text)
		p.ProcessingTime = processingTime
		return nil
	}

	*p = StructuredPage(raw)
	p.ProcessingTime = processingTime
	return nil
}

// ElementCounts tallies detected content elements across pages.
type ElementCounts struct {
	TextBlocks     int `json:"text_blocks"`
	Tables         int `json:"tables"`
	Formulas       int `json:"formulas"`
	LayoutElements int `json:"layout_elements"`
}

// EvaluationSummary holds the quality metrics of one document.
type EvaluationSummary struct {
	TotalPages       int           `json:"total_pages"`
	SuccessfulPages  int           `json:"successful_pages"`
	SuccessRate      float64       `json:"success_rate"`
	ElementsDetected ElementCounts `json:"elements_detected"`
}

// ProcessingStats times a document run.
type ProcessingStats struct {
	TotalTimeSeconds float64 `json:"total_time_seconds"`
	AvgTimePerPage   float64 `json:"avg_time_per_page"`
	PagesProcessed   int     `json:"pages_processed"`
	DPI              int     `json:"dpi"`
}

// DocumentResult is the full record for one evaluated PDF. A result always
// carries either Processing or Error; a rasterization failure carries both.
type DocumentResult struct {
	Metadata    DocumentMetadata   `json:"metadata"`
	Error       string             `json:"error,omitempty"`
	Processing  *ProcessingStats   `json:"processing,omitempty"`
	Evaluation  *EvaluationSummary `json:"evaluation,omitempty"`
	PageResults []PageResult       `json:"page_results,omitempty"`
	OutputPath  string             `json:"output_path,omitempty"`
}

// Succeeded reports whether the document went through the whole pipeline.
func (r DocumentResult) Succeeded() bool {
	return r.Processing != nil && r.Error == ""
}

// RunSummary aggregates every document of a run.
type RunSummary struct {
	TotalDocuments         int     `json:"total_documents"`
	SuccessfulDocuments    int     `json:"successful_documents"`
	TotalPages             int     `json:"total_pages"`
	TotalTimeSeconds       float64 `json:"total_time_seconds"`
	AverageTimePerDocument float64 `json:"average_time_per_document"`
	AverageSuccessRate     float64 `json:"average_success_rate"`
	Timestamp              string  `json:"timestamp"`
}

// RunReport is written once at the end of a run.
type RunReport struct {
	Summary   RunSummary       `json:"summary"`
	Documents []DocumentResult `json:"documents"`
}
