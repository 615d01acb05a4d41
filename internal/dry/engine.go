package dry

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"runtime"
	"sync"

	"github.com/klauspost/compress/zstd"
	"golang.org/x/crypto/blake2b"

	"github.com/be-wise-be-kind/thailint/internal/cache"
	"github.com/be-wise-be-kind/thailint/internal/lint"
	"github.com/be-wise-be-kind/thailint/internal/token"
)

// Tokenizer converts raw source bytes into a flat token stream.
type Tokenizer interface {
	Tokenize(ctx context.Context, source []byte, lang token.Language) ([]token.Token, error)
}

// TokenizerFactory builds one Tokenizer per worker. Tree-sitter parsers are
// not safe for concurrent use, so every worker owns its own instance.
type TokenizerFactory func() Tokenizer

// Input is one source file queued for analysis. Content is the raw bytes as
// read from disk; the engine never touches the filesystem itself.
type Input struct {
	Path     string
	Language token.Language
	Content  []byte
}

// Thresholds overrides the window minimums for a single language.
type Thresholds struct {
	MinLines  int
	MinTokens int
}

// Config controls window sizing, group reporting and filtering.
type Config struct {
	// MinLines and MinTokens are the smallest source span that counts as
	// duplication. A candidate window must satisfy both.
	MinLines  int
	MinTokens int

	// MinOccurrences is how many locations a span must appear in before it
	// is reported. Occurrences within one file count.
	MinOccurrences int

	Filters Filters

	// PerLanguage swaps in different window minimums for specific
	// languages, leaving the rest on the defaults above.
	PerLanguage map[token.Language]Thresholds
}

// Validate rejects threshold combinations that cannot produce meaningful
// results. It runs before any per-file work starts.
func (c Config) Validate() error {
	if c.MinLines < 1 {
		return fmt.Errorf("min_duplicate_lines must be at least 1, got %d", c.MinLines)
	}
	if c.MinTokens < 1 {
		return fmt.Errorf("min_duplicate_tokens must be at least 1, got %d", c.MinTokens)
	}
	if c.MinOccurrences < 2 {
		return fmt.Errorf("min_occurrences must be at least 2, got %d", c.MinOccurrences)
	}
	for lang, t := range c.PerLanguage {
		if t.MinLines < 1 || t.MinTokens < 1 {
			return fmt.Errorf("thresholds for language %q must be at least 1", lang)
		}
	}
	return nil
}

func (c Config) thresholdsFor(lang token.Language) Thresholds {
	if t, ok := c.PerLanguage[lang]; ok {
		return t
	}
	return Thresholds{MinLines: c.MinLines, MinTokens: c.MinTokens}
}

// Engine runs duplicate detection over a set of files: parallel per-file
// tokenizing and window hashing, then a single-threaded aggregation that
// resolves maximal duplicate groups and builds violations.
type Engine struct {
	cfg        Config
	tokenizers TokenizerFactory
	store      *cache.Store
	logger     *slog.Logger
	workers    int
}

// NewEngine wires an engine. store may be nil to disable caching; every
// file is then computed fresh and reported as a miss.
func NewEngine(cfg Config, tokenizers TokenizerFactory, store *cache.Store, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		cfg:        cfg,
		tokenizers: tokenizers,
		store:      store,
		logger:     logger,
		workers:    runtime.NumCPU(),
	}
}

// Run analyzes inputs and reports every maximal duplicate group found in at
// least MinOccurrences locations. Inputs that fail to tokenize are skipped
// with a warning. Violation order is deterministic for a given input order.
func (e *Engine) Run(ctx context.Context, inputs []Input) (*lint.Report, error) {
	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}

	var hits0, misses0 int64
	if e.store != nil {
		hits0, misses0 = e.store.Counts()
	}

	// Per-file stage. Workers write to disjoint result slots, so the only
	// coordination is the job channel. On cancellation workers keep
	// draining jobs without doing work; the feeder never blocks.
	results := make([]*FileResult, len(inputs))
	jobs := make(chan int)
	var wg sync.WaitGroup

	workers := e.workers
	if workers > len(inputs) {
		workers = len(inputs)
	}
	if workers < 1 {
		workers = 1
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tok := e.tokenizers()
			for i := range jobs {
				if ctx.Err() != nil {
					continue
				}
				results[i] = e.processFile(ctx, tok, inputs[i])
			}
		}()
	}
	for i := range inputs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Aggregation stage, single-threaded. Files are folded in input order
	// so occurrence ordering is stable across runs.
	analyzed := 0
	index := NewIndex(e.cfg.MinOccurrences)
	for _, fr := range results {
		if fr == nil {
			continue
		}
		analyzed++
		index.Add(*fr)
	}

	files := index.Files()
	var kept []Group
	for _, g := range index.Groups() {
		if e.cfg.Filters.Suppress(g, files) {
			continue
		}
		kept = append(kept, g)
	}

	report := lint.NewReport()
	report.Add(buildViolations(kept, files)...)
	report.CacheStats = e.cacheStats(hits0, misses0, analyzed)
	return report, nil
}

// cacheStats computes this run's hit/miss counts. With no store every
// analyzed file was computed fresh, which reads as a miss.
func (e *Engine) cacheStats(hits0, misses0 int64, analyzed int) *lint.CacheStats {
	stats := &lint.CacheStats{}
	if e.store != nil {
		hits, misses := e.store.Counts()
		stats.Hits = hits - hits0
		stats.Misses = misses - misses0
	} else {
		stats.Misses = int64(analyzed)
	}
	stats.HitRate = hitRate(stats.Hits, stats.Misses)
	return stats
}

// hitRate is hits over total lookups, rounded to two decimals.
func hitRate(hits, misses int64) float64 {
	total := hits + misses
	if total == 0 {
		return 0
	}
	return math.Round(float64(hits)/float64(total)*100) / 100
}

// processFile produces one file's tokens and candidate windows, from the
// cache when the stored content fingerprint still matches, otherwise by
// tokenizing and hashing fresh. Returns nil when the file cannot be
// analyzed; the run continues without it.
func (e *Engine) processFile(ctx context.Context, tok Tokenizer, in Input) *FileResult {
	th := e.cfg.thresholdsFor(in.Language)

	// Thresholds are part of the key: changing the window minimums must
	// invalidate stored windows, which were computed under the old ones.
	sum := blake2b.Sum256(in.Content)
	key := fmt.Sprintf("%s:%d:%d", hex.EncodeToString(sum[:]), th.MinTokens, th.MinLines)

	if e.store != nil {
		if payload, ok := e.store.Get(in.Path, key); ok {
			fr, err := decodePayload(in.Path, payload)
			if err == nil {
				return fr
			}
			e.logger.Warn("discarding corrupt cache entry", "path", in.Path, "error", err)
			e.store.MarkCorrupt(in.Path)
		}
	}

	tokens, err := tok.Tokenize(ctx, in.Content, in.Language)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		e.logger.Warn("skipping file: tokenize failed", "path", in.Path, "language", in.Language, "error", err)
		return nil
	}

	fr := &FileResult{
		Path:    in.Path,
		Tokens:  tokens,
		Windows: NewHasher(th.MinTokens, th.MinLines).Windows(tokens),
	}

	if e.store != nil && ctx.Err() == nil {
		if payload, err := encodePayload(fr); err != nil {
			e.logger.Warn("cache encode failed", "path", in.Path, "error", err)
		} else {
			e.store.Put(in.Path, key, payload)
		}
	}
	return fr
}

// cachePayload is the stored form of one file's computation. Tokens ride
// along with the windows: group extension and collision checks need token
// text even for files that were not re-tokenized this run. The JSON tags
// are part of the cache format.
type cachePayload struct {
	Tokens  []token.Token `json:"tokens"`
	Windows []Window      `json:"windows"`
}

// zstd coders are only used through EncodeAll/DecodeAll, which are safe for
// concurrent use.
var (
	zstdEncoder, _ = zstd.NewWriter(nil)
	zstdDecoder, _ = zstd.NewReader(nil)
)

func encodePayload(fr *FileResult) ([]byte, error) {
	raw, err := json.Marshal(cachePayload{Tokens: fr.Tokens, Windows: fr.Windows})
	if err != nil {
		return nil, err
	}
	return zstdEncoder.EncodeAll(raw, nil), nil
}

// decodePayload restores a cached computation, rejecting payloads whose
// windows do not fit the token stream. Decompression and JSON errors catch
// truncated or garbage blobs; the bounds check catches valid JSON that
// would panic the index later.
func decodePayload(path string, payload []byte) (*FileResult, error) {
	raw, err := zstdDecoder.DecodeAll(payload, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress: %w", err)
	}
	var p cachePayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	for _, w := range p.Windows {
		if w.TokenStart < 0 || w.TokenEnd <= w.TokenStart || w.TokenEnd > len(p.Tokens) {
			return nil, fmt.Errorf("window [%d,%d) out of bounds for %d tokens", w.TokenStart, w.TokenEnd, len(p.Tokens))
		}
	}
	return &FileResult{Path: path, Tokens: p.Tokens, Windows: p.Windows}, nil
}
