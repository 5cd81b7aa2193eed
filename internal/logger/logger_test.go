package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
	}{
		{"debug", DebugLevel},
		{"INFO", InfoLevel},
		{"warning", WarnLevel},
		{"warn", WarnLevel},
		{"error", ErrorLevel},
		{"fatal", FatalLevel},
		{"", InfoLevel},
		{"verbose", InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLevel(tt.input); got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, WarnLevel)

	log.Debug("debug %d", 1)
	log.Info("info %d", 2)
	log.Warn("warn %d", 3)
	log.Error("error %d", 4)

	out := buf.String()
	if strings.Contains(out, "debug 1") || strings.Contains(out, "info 2") {
		t.Errorf("messages below warn should be filtered, got: %s", out)
	}
	if !strings.Contains(out, "[WARN] warn 3") {
		t.Errorf("expected warn message, got: %s", out)
	}
	if !strings.Contains(out, "[ERROR] error 4") {
		t.Errorf("expected error message, got: %s", out)
	}

	buf.Reset()
	log.SetLevel(DebugLevel)
	log.Debug("now visible")
	if !strings.Contains(buf.String(), "[DEBUG] now visible") {
		t.Errorf("expected debug message after SetLevel, got: %s", buf.String())
	}
}

func TestNewLogger_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "eval.log")

	log, err := NewLogger(LogConfig{Output: "file", FilePath: path, Level: "info"})
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}
	log.Info("hello %s", "file")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "[INFO] hello file") {
		t.Errorf("log file missing message, got: %s", data)
	}
}

func TestNewLogger_InvalidOutput(t *testing.T) {
	_, err := NewLogger(LogConfig{Output: "syslog"})
	if err == nil {
		t.Fatal("expected error for invalid output")
	}
}

func TestNewLogger_QuietRaisesLevel(t *testing.T) {
	log, err := NewLogger(LogConfig{Output: "stderr", Level: "debug", Quiet: true})
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}
	sl, ok := log.(*standardLogger)
	if !ok {
		t.Fatalf("unexpected logger type %T", log)
	}
	if sl.level != WarnLevel {
		t.Errorf("level = %v, want %v", sl.level, WarnLevel)
	}
}
