// Package config loads the evaluator settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultModel      = "DotsOCR"
	DefaultDPI        = 200
	DefaultMaxPages   = 10
	DefaultOutputDir  = "large_sample_outputs"
	DefaultPDFPattern = "large_samples/*.pdf"

	EngineRemote    = "remote"
	EngineTesseract = "tesseract"
)

// ErrMissingAPIKey is returned when the remote engine is selected without a key.
var ErrMissingAPIKey = errors.New("BASETEN_API_KEY environment variable not set")

// Config is passed explicitly to every component constructor.
type Config struct {
	APIURL         string
	APIKey         string
	Model          string
	Engine         string
	RequestTimeout time.Duration
	DPI            int
	MaxPages       int
	OutputDir      string
	PDFPattern     string
}

// Default returns the configuration used when no variables are set.
func Default() Config {
	return Config{
		Model:      DefaultModel,
		Engine:     EngineRemote,
		DPI:        DefaultDPI,
		MaxPages:   DefaultMaxPages,
		OutputDir:  DefaultOutputDir,
		PDFPattern: DefaultPDFPattern,
	}
}

// Load reads envFiles (or ".env" when none are given) if present, then the
// process environment. Missing env files are ignored.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return Config{}, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function such as os.Getenv.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Default()
	cfg.APIURL = getenv("MODEL_API_URL")
	cfg.APIKey = getenv("BASETEN_API_KEY")
	if v := getenv("OCR_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := getenv("OCR_ENGINE"); v != "" {
		cfg.Engine = v
	}
	if v := getenv("OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
	if v := getenv("PDF_PATTERN"); v != "" {
		cfg.PDFPattern = v
	}

	var err error
	if cfg.DPI, err = intVar(getenv, "PDF_DPI", cfg.DPI); err != nil {
		return Config{}, err
	}
	if cfg.MaxPages, err = intVar(getenv, "MAX_PAGES_PER_PDF", cfg.MaxPages); err != nil {
		return Config{}, err
	}
	if v := getenv("OCR_REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid OCR_REQUEST_TIMEOUT %q: %w", v, err)
		}
		cfg.RequestTimeout = d
	}
	return cfg, nil
}

// Validate checks the settings required before any document is processed.
func (c Config) Validate() error {
	switch c.Engine {
	case EngineRemote:
		if c.APIKey == "" {
			return ErrMissingAPIKey
		}
	case EngineTesseract:
	default:
		return fmt.Errorf("unknown OCR engine %q (expected %q or %q)", c.Engine, EngineRemote, EngineTesseract)
	}
	if c.DPI <= 0 {
		return fmt.Errorf("dpi must be positive, got %d", c.DPI)
	}
	if c.MaxPages < 0 {
		return fmt.Errorf("max pages must not be negative, got %d", c.MaxPages)
	}
	if c.OutputDir == "" {
		return errors.New("output directory must not be empty")
	}
	return nil
}

func intVar(getenv func(string) string, name string, def int) (int, error) {
	v := getenv(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, v, err)
	}
	return n, nil
}
