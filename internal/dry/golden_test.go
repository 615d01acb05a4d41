package dry

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/be-wise-be-kind/thailint/internal/output"
	"github.com/be-wise-be-kind/thailint/internal/testutil"
)

// TestRunGoldenReport pins the rendered JSON contract: field names, field
// order, and indentation. Window hashes are scrubbed before comparison.
func TestRunGoldenReport(t *testing.T) {
	e := NewEngine(testConfig(), fakeFactory(nil), nil, testLogger())

	report, err := e.Run(context.Background(), dupInputs())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	data, err := output.RenderJSON(report)
	if err != nil {
		t.Fatalf("RenderJSON failed: %v", err)
	}

	testutil.CompareGolden(t, filepath.Join("testdata", "report.json"), testutil.ScrubHashes(data))
}
