package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(envMap(nil))
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}
	if cfg != Default() {
		t.Errorf("FromEnv() = %+v, want %+v", cfg, Default())
	}
	if cfg.DPI != 200 || cfg.MaxPages != 10 || cfg.OutputDir != "large_sample_outputs" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := FromEnv(envMap(map[string]string{
		"MODEL_API_URL":       "https://model.example/v1",
		"BASETEN_API_KEY":     "key",
		"OCR_MODEL":           "other",
		"OCR_ENGINE":          "tesseract",
		"OCR_REQUEST_TIMEOUT": "90s",
		"PDF_DPI":             "150",
		"MAX_PAGES_PER_PDF":   "3",
		"OUTPUT_DIR":          "out",
		"PDF_PATTERN":         "docs/*.pdf",
	}))
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}
	want := Config{
		APIURL:         "https://model.example/v1",
		APIKey:         "key",
		Model:          "other",
		Engine:         EngineTesseract,
		RequestTimeout: 90 * time.Second,
		DPI:            150,
		MaxPages:       3,
		OutputDir:      "out",
		PDFPattern:     "docs/*.pdf",
	}
	if cfg != want {
		t.Errorf("FromEnv() = %+v, want %+v", cfg, want)
	}
}

func TestFromEnv_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad dpi", map[string]string{"PDF_DPI": "high"}},
		{"bad max pages", map[string]string{"MAX_PAGES_PER_PDF": "ten"}},
		{"bad timeout", map[string]string{"OCR_REQUEST_TIMEOUT": "soon"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromEnv(envMap(tt.env)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestValidate(t *testing.T) {
	withKey := Default()
	withKey.APIKey = "key"

	tesseract := Default()
	tesseract.Engine = EngineTesseract

	badDPI := withKey
	badDPI.DPI = 0

	badPages := withKey
	badPages.MaxPages = -1

	badEngine := withKey
	badEngine.Engine = "cloud"

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"remote with key", withKey, false},
		{"tesseract without key", tesseract, false},
		{"zero dpi", badDPI, true},
		{"negative max pages", badPages, true},
		{"unknown engine", badEngine, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_MissingAPIKey(t *testing.T) {
	err := Default().Validate()
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("Validate() = %v, want ErrMissingAPIKey", err)
	}
}

func TestLoad_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("PDF_DPI=144\n"), 0644); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}
	t.Setenv("PDF_DPI", "")
	os.Unsetenv("PDF_DPI")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DPI != 144 {
		t.Errorf("DPI = %d, want 144", cfg.DPI)
	}
}

func TestLoad_MissingEnvFileIgnored(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Errorf("Load with missing file failed: %v", err)
	}
}
