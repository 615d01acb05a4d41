package main

import (
	"strings"
	"testing"

	"github.com/be-wise-be-kind/thailint/internal/lint"
)

func sampleCmdReport() *lint.Report {
	r := lint.NewReport()
	r.Add(lint.Violation{
		RuleID:   "nesting",
		FilePath: "src/app.py",
		Line:     12,
		Message:  "function 'load' exceeds maximum nesting depth (4 > 3)",
		Severity: lint.SeverityError,
	})
	return r
}

func TestFormatReport_JSON(t *testing.T) {
	result, err := FormatReport(sampleCmdReport(), FormatJSON)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(result, `"total": 1`) {
		t.Error("JSON output missing total")
	}
	if !strings.Contains(result, `"file_path": "src/app.py"`) {
		t.Error("JSON output missing file path")
	}
	if !strings.HasSuffix(result, "\n") {
		t.Error("JSON output should end with a newline")
	}
}

func TestFormatReport_Text(t *testing.T) {
	result, err := FormatReport(sampleCmdReport(), FormatText)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(result, "src/app.py:12") {
		t.Error("text output missing location")
	}
	if !strings.Contains(result, "Found 1 violation.") {
		t.Error("text output missing summary line")
	}
}

func TestFormatReport_UnsupportedFormat(t *testing.T) {
	_, err := FormatReport(sampleCmdReport(), "xml")
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}
	if !strings.Contains(err.Error(), "unsupported format") {
		t.Errorf("error should mention unsupported format, got: %v", err)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1023, "1023 B"},
		{1 << 10, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{1 << 20, "1.0 MiB"},
		{5 << 20, "5.0 MiB"},
		{1 << 30, "1.0 GiB"},
		{1 << 40, "1.0 TiB"},
	}

	for _, tt := range tests {
		if got := formatBytes(tt.size); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.size, got, tt.want)
		}
	}
}
