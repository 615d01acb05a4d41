// Package walker discovers lintable source files under a root directory.
package walker

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/be-wise-be-kind/thailint/internal/token"
)

// Files larger than this are skipped; generated bundles and data blobs
// dominate above it and drown the token index.
const maxFileSize = 1 << 20

// Directories never worth walking into.
var skipDirs = map[string]bool{
	".git":            true,
	".thailint-cache": true,
	".idea":           true,
	".tox":            true,
	".mypy_cache":     true,
	"__pycache__":     true,
	".venv":           true,
	"venv":            true,
	"vendor":          true,
	"node_modules":    true,
	"dist":            true,
	"build":           true,
	"target":          true,
}

// File is one discovered source file. Path is root-relative with forward
// slashes; AbsPath points at the file on disk.
type File struct {
	Path     string
	AbsPath  string
	Language token.Language
}

// Walker lists the source files a lint run should analyze, honoring the
// root .gitignore and configured exclude patterns. Discovery order is
// deterministic (lexical walk order).
type Walker struct {
	root     string
	excludes []string
	ignorer  *ignore.GitIgnore
	logger   *slog.Logger
}

// New creates a walker rooted at root. A .gitignore directly under root is
// honored when present; nested ignore files are not consulted.
func New(root string, excludes []string, logger *slog.Logger) (*Walker, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving root %q: %w", root, err)
	}

	w := &Walker{root: abs, excludes: excludes, logger: logger}
	ignorer, err := ignore.CompileIgnoreFile(filepath.Join(abs, ".gitignore"))
	if err == nil {
		w.ignorer = ignorer
	} else if !os.IsNotExist(err) {
		logger.Warn("ignoring unreadable .gitignore", "root", abs, "error", err)
	}
	return w, nil
}

// Walk returns every supported source file under the root. A root that is
// itself a file yields just that file. Unreadable entries are skipped.
func (w *Walker) Walk() ([]File, error) {
	info, err := os.Stat(w.root)
	if err != nil {
		return nil, fmt.Errorf("stat %q: %w", w.root, err)
	}
	if !info.IsDir() {
		if info.Size() > maxFileSize {
			return nil, nil
		}
		base := filepath.Base(w.root)
		if f, ok := w.fileFor(w.root, base); ok {
			return []File{f}, nil
		}
		return nil, nil
	}

	var files []File
	err = filepath.Walk(w.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			w.logger.Debug("skipping unreadable path", "path", path, "error", err)
			return nil
		}

		rel, relErr := filepath.Rel(w.root, path)
		if relErr != nil || rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if info.IsDir() {
			if skipDirs[filepath.Base(path)] || w.excluded(rel) || w.gitignored(rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}

		if info.Size() > maxFileSize {
			w.logger.Debug("skipping oversized file", "path", rel, "size", info.Size())
			return nil
		}

		if f, ok := w.fileFor(path, rel); ok {
			files = append(files, f)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %q: %w", w.root, err)
	}
	return files, nil
}

func (w *Walker) fileFor(absPath, rel string) (File, bool) {
	lang, ok := token.LanguageForPath(rel)
	if !ok {
		return File{}, false
	}
	if w.excluded(rel) || w.gitignored(rel) {
		return File{}, false
	}
	return File{Path: rel, AbsPath: absPath, Language: lang}, true
}

func (w *Walker) gitignored(rel string) bool {
	return w.ignorer != nil && w.ignorer.MatchesPath(rel)
}

// excluded checks a root-relative path against the configured excludes.
// Paths are normalized to forward slashes for consistent matching across OS.
func (w *Walker) excluded(rel string) bool {
	for _, pattern := range w.excludes {
		normalized := filepath.ToSlash(pattern)

		if matched, _ := filepath.Match(normalized, rel); matched {
			return true
		}

		// Directory exclude: pattern "legacy" should match "legacy/foo.py".
		dirPattern := strings.TrimSuffix(normalized, "/") + "/"
		if strings.HasPrefix(rel, dirPattern) {
			return true
		}

		if rel == strings.TrimSuffix(normalized, "/") {
			return true
		}
	}
	return false
}
