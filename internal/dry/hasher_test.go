package dry

import (
	"fmt"
	"testing"

	"github.com/be-wise-be-kind/thailint/internal/token"
)

// lineTokens builds a stream with one identifier token per source line.
func lineTokens(texts ...string) []token.Token {
	out := make([]token.Token, len(texts))
	for i, tx := range texts {
		out[i] = token.Token{Kind: token.KindIdentifier, Text: tx, StartLine: i + 1, EndLine: i + 1}
	}
	return out
}

// tokensOnLines places texts[i] on lines[i], several tokens per line.
func tokensOnLines(texts []string, lines []int) []token.Token {
	out := make([]token.Token, len(texts))
	for i, tx := range texts {
		out[i] = token.Token{Kind: token.KindIdentifier, Text: tx, StartLine: lines[i], EndLine: lines[i], StartCol: i}
	}
	return out
}

func TestWindowsEmitsEveryPosition(t *testing.T) {
	tokens := lineTokens("a", "b", "c", "d", "e", "f")
	windows := NewHasher(3, 1).Windows(tokens)

	if len(windows) != 4 {
		t.Fatalf("expected 4 windows, got %d", len(windows))
	}
	for i, w := range windows {
		if w.TokenStart != i || w.TokenEnd != i+3 {
			t.Errorf("window %d: got [%d,%d), want [%d,%d)", i, w.TokenStart, w.TokenEnd, i, i+3)
		}
	}
}

func TestWindowsRollingMatchesRecompute(t *testing.T) {
	texts := make([]string, 40)
	for i := range texts {
		texts[i] = fmt.Sprintf("tok%d", i%7)
	}
	tokens := lineTokens(texts...)

	windows := NewHasher(5, 1).Windows(tokens)
	if len(windows) != len(tokens)-5+1 {
		t.Fatalf("expected %d windows, got %d", len(tokens)-5+1, len(windows))
	}
	for _, w := range windows {
		want := spanHash(tokens, w.TokenStart, w.TokenEnd)
		if w.Hash != want {
			t.Errorf("window [%d,%d): rolling hash %x, recomputed %x", w.TokenStart, w.TokenEnd, w.Hash, want)
		}
	}
}

func TestWindowsLineSpanGate(t *testing.T) {
	// Lines:       1    1    1    2    2    3
	tokens := tokensOnLines(
		[]string{"a", "b", "c", "d", "e", "f"},
		[]int{1, 1, 1, 2, 2, 3},
	)
	windows := NewHasher(3, 2).Windows(tokens)

	var starts []int
	for _, w := range windows {
		starts = append(starts, w.TokenStart)
	}
	// [0,3) covers only line 1 and is gated out.
	want := []int{1, 2, 3}
	if len(starts) != len(want) {
		t.Fatalf("expected starts %v, got %v", want, starts)
	}
	for i := range want {
		if starts[i] != want[i] {
			t.Fatalf("expected starts %v, got %v", want, starts)
		}
	}
}

func TestWindowsShortStream(t *testing.T) {
	tokens := lineTokens("a", "b")
	if windows := NewHasher(3, 1).Windows(tokens); len(windows) != 0 {
		t.Errorf("expected no windows for short stream, got %d", len(windows))
	}
	if windows := NewHasher(3, 1).Windows(nil); len(windows) != 0 {
		t.Errorf("expected no windows for empty stream, got %d", len(windows))
	}
}

func TestWindowHashesTrackContent(t *testing.T) {
	a := NewHasher(3, 1).Windows(lineTokens("x", "y", "z"))
	b := NewHasher(3, 1).Windows(lineTokens("x", "y", "z"))
	c := NewHasher(3, 1).Windows(lineTokens("x", "y", "w"))

	if a[0].Hash != b[0].Hash {
		t.Errorf("identical content hashed differently: %x vs %x", a[0].Hash, b[0].Hash)
	}
	if a[0].Hash == c[0].Hash {
		t.Errorf("different content collided: %x", a[0].Hash)
	}
}

func TestLineSpan(t *testing.T) {
	tokens := tokensOnLines(
		[]string{"a", "b", "c", "d"},
		[]int{3, 3, 5, 9},
	)
	tests := []struct {
		start, end int
		want       int
	}{
		{0, 2, 1},
		{0, 3, 3},
		{0, 4, 7},
		{2, 4, 5},
	}
	for _, tt := range tests {
		if got := lineSpan(tokens, tt.start, tt.end); got != tt.want {
			t.Errorf("lineSpan[%d,%d) = %d, want %d", tt.start, tt.end, got, tt.want)
		}
	}
}

func BenchmarkWindows(b *testing.B) {
	texts := make([]string, 5000)
	for i := range texts {
		texts[i] = fmt.Sprintf("tok%d", i%31)
	}
	tokens := lineTokens(texts...)
	h := NewHasher(30, 4)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h.Windows(tokens)
	}
}
