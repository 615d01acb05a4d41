package output

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ReportExcludeFields lists top-level fields ignored when comparing two
// runs. Cache statistics vary between cold and cached runs while the
// findings must not.
var ReportExcludeFields = []string{"cache_stats"}

// NormalizeReport strips excluded fields and re-encodes the document.
// encoding/json sorts map keys, so the round-trip is deterministic.
func NormalizeReport(data []byte) ([]byte, error) {
	var parsed map[string]interface{}
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parsing report: %w", err)
	}

	for _, field := range ReportExcludeFields {
		delete(parsed, field)
	}

	return json.Marshal(parsed)
}

// CompareReports returns true when two encoded reports contain the same
// findings, ignoring the time-varying fields.
func CompareReports(a, b []byte) (bool, string) {
	normalizedA, err := NormalizeReport(a)
	if err != nil {
		return false, "failed to normalize first report: " + err.Error()
	}

	normalizedB, err := NormalizeReport(b)
	if err != nil {
		return false, "failed to normalize second report: " + err.Error()
	}

	if !bytes.Equal(normalizedA, normalizedB) {
		return false, "reports differ"
	}

	return true, ""
}
