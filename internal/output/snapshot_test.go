package output

import (
	"strings"
	"testing"

	"github.com/be-wise-be-kind/thailint/internal/lint"
)

func renderWithStats(t *testing.T, hits, misses int64, rate float64) []byte {
	t.Helper()
	r := sampleReport()
	r.CacheStats = &lint.CacheStats{Hits: hits, Misses: misses, HitRate: rate}
	data, err := RenderJSON(r)
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}
	return data
}

func TestCompareReportsIgnoresCacheStats(t *testing.T) {
	cold := renderWithStats(t, 0, 2, 0)
	warm := renderWithStats(t, 2, 0, 1)

	equal, msg := CompareReports(cold, warm)
	if !equal {
		t.Errorf("reports with identical findings should compare equal: %s", msg)
	}
}

func TestCompareReportsDetectsDifferentFindings(t *testing.T) {
	a := renderWithStats(t, 0, 2, 0)

	other := lint.NewReport()
	b, err := RenderJSON(other)
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}

	equal, msg := CompareReports(a, b)
	if equal {
		t.Error("reports with different findings should not compare equal")
	}
	if msg != "reports differ" {
		t.Errorf("msg = %q, want %q", msg, "reports differ")
	}
}

func TestCompareReportsInvalidJSON(t *testing.T) {
	valid := renderWithStats(t, 0, 1, 0)

	equal, msg := CompareReports([]byte("not json"), valid)
	if equal {
		t.Error("invalid input should not compare equal")
	}
	if !strings.Contains(msg, "first report") {
		t.Errorf("msg = %q, want mention of first report", msg)
	}

	equal, msg = CompareReports(valid, []byte("not json"))
	if equal {
		t.Error("invalid input should not compare equal")
	}
	if !strings.Contains(msg, "second report") {
		t.Errorf("msg = %q, want mention of second report", msg)
	}
}

func TestNormalizeReportStripsCacheStats(t *testing.T) {
	data := renderWithStats(t, 5, 5, 0.5)

	normalized, err := NormalizeReport(data)
	if err != nil {
		t.Fatalf("NormalizeReport: %v", err)
	}
	if strings.Contains(string(normalized), "cache_stats") {
		t.Errorf("normalized report still contains cache_stats: %s", normalized)
	}
	if !strings.Contains(string(normalized), "duplicate_group") {
		t.Errorf("normalized report lost findings: %s", normalized)
	}
}
