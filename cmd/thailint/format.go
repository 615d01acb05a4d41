package main

import (
	"fmt"

	"github.com/be-wise-be-kind/thailint/internal/lint"
	"github.com/be-wise-be-kind/thailint/internal/output"
)

// OutputFormat selects how a report is rendered.
type OutputFormat string

const (
	FormatJSON OutputFormat = "json"
	FormatText OutputFormat = "text"
)

// FormatReport renders a report as JSON or human-readable text.
func FormatReport(report *lint.Report, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		data, err := output.RenderJSON(report)
		if err != nil {
			return "", err
		}
		return string(data), nil
	case FormatText:
		return output.RenderText(report), nil
	default:
		return "", fmt.Errorf("unsupported format: %s (use json or text)", format)
	}
}

// formatBytes renders a size like "1.5 MiB" for cache stats output.
func formatBytes(n int64) string {
	const k = 1024
	if n < k {
		return fmt.Sprintf("%d B", n)
	}
	size := float64(n)
	for _, unit := range []string{"KiB", "MiB", "GiB", "TiB", "PiB"} {
		size /= k
		if size < k {
			return fmt.Sprintf("%.1f %s", size, unit)
		}
	}
	return fmt.Sprintf("%.1f EiB", size/k)
}
