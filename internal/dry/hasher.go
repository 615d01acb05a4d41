// Package dry implements cross-file duplicate-code detection: token-window
// hashing, match extension to maximal spans, structural false-positive
// filtering and violation building.
package dry

import (
	"github.com/be-wise-be-kind/thailint/internal/token"
)

const (
	fnvOffset64 uint64 = 14695981039346656037
	fnvPrime64  uint64 = 1099511628211

	// slidingBase weighs token hashes inside a window polynomial.
	slidingBase uint64 = 0x9E3779B97F4A7C15
)

// Window is one fixed-length candidate span of a file's token stream,
// identified by the rolling hash of its token texts. TokenEnd is exclusive.
//
// Windows are serialized into cache entries; the JSON tags are part of the
// cache format.
type Window struct {
	Hash       uint64 `json:"h"`
	TokenStart int    `json:"s"`
	TokenEnd   int    `json:"e"`
}

// Hasher computes candidate windows for a single file's token stream.
// Windows are emitted at the minimum qualifying token length only; emitting
// every longer sliding window would be quadratic, so the index extends
// matches to their maximal span instead.
type Hasher struct {
	minTokens int
	minLines  int
}

// NewHasher returns a hasher for the given window minimums.
func NewHasher(minTokens, minLines int) *Hasher {
	return &Hasher{minTokens: minTokens, minLines: minLines}
}

// Windows returns every window of exactly minTokens tokens whose source
// span covers at least minLines lines, in stream order. Streams shorter
// than the minimum produce no windows. Advancing the window reuses the
// previous hash, so the whole stream costs O(n).
func (h *Hasher) Windows(tokens []token.Token) []Window {
	w := h.minTokens
	if w <= 0 || len(tokens) < w {
		return nil
	}

	hashes := make([]uint64, len(tokens))
	for i := range tokens {
		hashes[i] = tokenHash(tokens[i].Text)
	}

	// Weight of the outgoing token: slidingBase^(w-1).
	pow := uint64(1)
	for i := 1; i < w; i++ {
		pow *= slidingBase
	}

	var rolling uint64
	for i := 0; i < w; i++ {
		rolling = rolling*slidingBase + hashes[i]
	}

	out := make([]Window, 0, len(tokens)-w+1)
	for start := 0; ; start++ {
		end := start + w
		if lineSpan(tokens, start, end) >= h.minLines {
			out = append(out, Window{Hash: rolling, TokenStart: start, TokenEnd: end})
		}
		if end == len(tokens) {
			break
		}
		rolling = (rolling-hashes[start]*pow)*slidingBase + hashes[end]
	}
	return out
}

// lineSpan is the number of source lines covered by tokens[start:end].
func lineSpan(tokens []token.Token, start, end int) int {
	return tokens[end-1].EndLine - tokens[start].StartLine + 1
}

// tokenHash is FNV-64a over the token text.
func tokenHash(s string) uint64 {
	h := fnvOffset64
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= fnvPrime64
	}
	return h
}

// spanHash folds tokens[start:end] into a single fingerprint. For a span of
// exactly the window length it equals the window's rolling hash.
func spanHash(tokens []token.Token, start, end int) uint64 {
	var h uint64
	for i := start; i < end; i++ {
		h = h*slidingBase + tokenHash(tokens[i].Text)
	}
	return h
}
