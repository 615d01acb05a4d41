// Package testutil provides golden-file helpers for report tests.
//
// Golden files pin rendered output byte for byte. Run the owning test with
// -update to rewrite them after an intentional change.
package testutil

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var updateGolden = flag.Bool("update", false, "update golden files")

// CompareGolden compares got against the golden file, failing with a diff on
// mismatch. If -update is set, rewrites the golden file instead.
func CompareGolden(t *testing.T, goldenPath string, got []byte) {
	t.Helper()

	if *updateGolden {
		if err := os.MkdirAll(filepath.Dir(goldenPath), 0o755); err != nil {
			t.Fatalf("Failed to create golden directory: %v", err)
		}
		if err := os.WriteFile(goldenPath, got, 0o644); err != nil {
			t.Fatalf("Failed to write golden file: %v", err)
		}
		t.Logf("Updated golden: %s", goldenPath)
		return
	}

	expected, err := os.ReadFile(goldenPath)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("Golden file missing: %s\n\nGot:\n%s\n\nRun with -update to create it",
				goldenPath, string(got))
		}
		t.Fatalf("Failed to read golden file: %v", err)
	}

	if !bytes.Equal(got, expected) {
		t.Fatalf("Golden mismatch for %s:\n%s\nRun with -update to refresh",
			goldenPath, diffLines(string(expected), string(got)))
	}
}

// diffLines pinpoints the first line where got departs from the golden
// content and shows both sides with two lines of leading context.
func diffLines(want, got string) string {
	wantLines := strings.Split(want, "\n")
	gotLines := strings.Split(got, "\n")

	n := len(wantLines)
	if len(gotLines) < n {
		n = len(gotLines)
	}
	div := n
	for i := 0; i < n; i++ {
		if wantLines[i] != gotLines[i] {
			div = i
			break
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "first divergence at line %d\n", div+1)
	for i := max(0, div-2); i < div; i++ {
		fmt.Fprintf(&b, "  %4d   %s\n", i+1, wantLines[i])
	}
	if div < len(wantLines) {
		fmt.Fprintf(&b, "  %4d - %s\n", div+1, wantLines[div])
	} else {
		fmt.Fprintf(&b, "  %4d - <end of golden>\n", div+1)
	}
	if div < len(gotLines) {
		fmt.Fprintf(&b, "  %4d + %s\n", div+1, gotLines[div])
	} else {
		fmt.Fprintf(&b, "  %4d + <end of output>\n", div+1)
	}
	return b.String()
}
