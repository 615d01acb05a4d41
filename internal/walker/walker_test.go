package walker

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/be-wise-be-kind/thailint/internal/slogutil"
	"github.com/be-wise-be-kind/thailint/internal/token"
)

func testLogger() *slog.Logger {
	return slogutil.NewDiscardLogger()
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
}

func paths(files []File) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Path
	}
	return out
}

func TestWalkDiscoversSupportedFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".gitignore", "generated/\n*.min.js\n")
	writeFile(t, root, "main.py", "print('hi')\n")
	writeFile(t, root, "lib/util.ts", "export const x = 1\n")
	writeFile(t, root, "keep/deep/a.go", "package keep\n")
	writeFile(t, root, "notes.txt", "not source\n")
	writeFile(t, root, "docs/readme.md", "# docs\n")
	writeFile(t, root, "generated/gen.py", "print('generated')\n")
	writeFile(t, root, "skipme.min.js", "var a=1\n")
	writeFile(t, root, "node_modules/pkg/index.js", "module.exports = {}\n")
	writeFile(t, root, "legacy/old.py", "print('old')\n")
	writeFile(t, root, "tool_x.py", "print('tool')\n")

	w, err := New(root, []string{"legacy", "tool_*.py"}, testLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	files, err := w.Walk()
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}

	want := []string{"keep/deep/a.go", "lib/util.ts", "main.py"}
	got := paths(files)
	if len(got) != len(want) {
		t.Fatalf("got files %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got files %v, want %v", got, want)
		}
	}

	byPath := map[string]File{}
	for _, f := range files {
		byPath[f.Path] = f
	}
	if lang := byPath["main.py"].Language; lang != token.LangPython {
		t.Errorf("main.py language = %v, want %v", lang, token.LangPython)
	}
	if lang := byPath["keep/deep/a.go"].Language; lang != token.LangGo {
		t.Errorf("a.go language = %v, want %v", lang, token.LangGo)
	}
	if abs := byPath["main.py"].AbsPath; abs != filepath.Join(root, "main.py") {
		t.Errorf("main.py abs path = %q", abs)
	}
}

func TestWalkSingleFileRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "only.py", "print('hi')\n")

	w, err := New(filepath.Join(root, "only.py"), nil, testLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	files, err := w.Walk()
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if len(files) != 1 || files[0].Path != "only.py" {
		t.Fatalf("got %v, want single only.py", paths(files))
	}
	if files[0].Language != token.LangPython {
		t.Errorf("language = %v, want %v", files[0].Language, token.LangPython)
	}
}

func TestWalkSingleFileUnsupported(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "data.csv", "a,b\n")

	w, err := New(filepath.Join(root, "data.csv"), nil, testLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	files, err := w.Walk()
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if len(files) != 0 {
		t.Fatalf("got %v, want no files", paths(files))
	}
}

func TestWalkMissingRoot(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "nope"), nil, testLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := w.Walk(); err == nil {
		t.Fatal("expected error for missing root")
	}
}

func TestWalkNoGitignore(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.py", "print('a')\n")

	w, err := New(root, nil, testLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	files, err := w.Walk()
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if len(files) != 1 || files[0].Path != "a.py" {
		t.Fatalf("got %v, want [a.py]", paths(files))
	}
}

func TestWalkSkipsOversizedFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "small.py", "print('ok')\n")
	big := make([]byte, maxFileSize+1)
	for i := range big {
		big[i] = 'x'
	}
	writeFile(t, root, "huge.py", string(big))

	w, err := New(root, nil, testLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	files, err := w.Walk()
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if len(files) != 1 || files[0].Path != "small.py" {
		t.Fatalf("got %v, want [small.py]", paths(files))
	}
}

func TestExcluded(t *testing.T) {
	w := &Walker{excludes: []string{"legacy", "gen/*.py", "exact.py"}}

	cases := []struct {
		rel  string
		want bool
	}{
		{"legacy/a.py", true},
		{"legacy", true},
		{"legacyish/a.py", false},
		{"gen/x.py", true},
		{"gen/sub/x.py", false},
		{"exact.py", true},
		{"other.py", false},
	}
	for _, tc := range cases {
		if got := w.excluded(tc.rel); got != tc.want {
			t.Errorf("excluded(%q) = %v, want %v", tc.rel, got, tc.want)
		}
	}
}
