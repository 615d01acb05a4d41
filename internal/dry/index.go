package dry

import (
	"sort"
	"strconv"
	"strings"

	"github.com/be-wise-be-kind/thailint/internal/token"
)

// FileResult carries one file's token stream and candidate windows into
// aggregation, either freshly computed or restored from the cache.
type FileResult struct {
	Path    string
	Tokens  []token.Token
	Windows []Window
}

// Span is one occurrence of duplicated content: a token range within one
// file of the run. End is exclusive.
type Span struct {
	File  int
	Start int
	End   int
}

// Group is a resolved duplicate: two or more spans with identical token
// content, each maximal. Occurrences are in discovery order (file order,
// then position).
type Group struct {
	Occurrences []Span
}

// Index aggregates window fingerprints across all files of a run and
// resolves them into maximal duplicate groups. It is built single-threaded
// after the per-file stage completes; nothing here is safe for concurrent
// use.
type Index struct {
	minOccurrences int
	files          []FileResult
	buckets        map[uint64][]Span
}

// NewIndex returns an empty index.
func NewIndex(minOccurrences int) *Index {
	return &Index{
		minOccurrences: minOccurrences,
		buckets:        make(map[uint64][]Span),
	}
}

// Add feeds one file's windows into the index. Files must be added in
// analysis order; occurrence ordering derives from it.
func (ix *Index) Add(fr FileResult) {
	fi := len(ix.files)
	ix.files = append(ix.files, fr)
	for _, w := range fr.Windows {
		ix.buckets[w.Hash] = append(ix.buckets[w.Hash], Span{File: fi, Start: w.TokenStart, End: w.TokenEnd})
	}
}

// Files returns the file list in add order. Span.File indexes into it.
func (ix *Index) Files() []FileResult {
	return ix.files
}

// Groups resolves all buckets into maximal, deduplicated duplicate groups,
// sorted by their first occurrence's (file path, start line). Every seed of
// the same underlying duplicate converges to the same maximal spans, so the
// result is independent of bucket iteration order.
func (ix *Index) Groups() []Group {
	type keyed struct {
		key   string
		group Group
	}

	seen := make(map[string]struct{})
	var groups []keyed

	for _, seeds := range ix.buckets {
		if len(seeds) < 2 {
			continue
		}
		for _, members := range ix.partition(seeds) {
			if len(members) < 2 {
				continue
			}
			ix.extend(members)
			members = dropOverlaps(members)
			if len(members) < ix.minOccurrences {
				continue
			}
			key := ix.groupKey(members)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			groups = append(groups, keyed{key: key, group: Group{Occurrences: members}})
		}
	}

	sort.Slice(groups, func(i, j int) bool {
		a, b := groups[i].group.Occurrences[0], groups[j].group.Occurrences[0]
		pa, pb := ix.files[a.File].Path, ix.files[b.File].Path
		if pa != pb {
			return pa < pb
		}
		la, lb := ix.files[a.File].Tokens[a.Start].StartLine, ix.files[b.File].Tokens[b.Start].StartLine
		if la != lb {
			return la < lb
		}
		return groups[i].key < groups[j].key
	})

	out := make([]Group, len(groups))
	for i, g := range groups {
		out[i] = g.group
	}
	return out
}

// partition splits one bucket's spans into sets with identical token
// content. Hash equality is necessary but not sufficient: collisions are
// resolved by comparing the actual token texts.
func (ix *Index) partition(seeds []Span) [][]Span {
	var parts [][]Span
	for _, s := range seeds {
		placed := false
		for pi := range parts {
			if ix.spansEqual(parts[pi][0], s) {
				parts[pi] = append(parts[pi], s)
				placed = true
				break
			}
		}
		if !placed {
			parts = append(parts, []Span{s})
		}
	}
	return parts
}

func (ix *Index) spansEqual(a, b Span) bool {
	if a.End-a.Start != b.End-b.Start {
		return false
	}
	ta := ix.files[a.File].Tokens
	tb := ix.files[b.File].Tokens
	for i := 0; i < a.End-a.Start; i++ {
		if ta[a.Start+i].Text != tb[b.Start+i].Text {
			return false
		}
	}
	return true
}

// extend grows every member span in lockstep, one token at a time in each
// direction, while all members stay inside their file's token stream and
// remain token-equal. Members keep identical lengths throughout, so any
// seed of the same member set converges to the same maximal spans.
func (ix *Index) extend(members []Span) {
	for canExtendLeft(ix.files, members) {
		for i := range members {
			members[i].Start--
		}
	}
	for canExtendRight(ix.files, members) {
		for i := range members {
			members[i].End++
		}
	}
}

func canExtendLeft(files []FileResult, members []Span) bool {
	var text string
	for i, m := range members {
		if m.Start == 0 {
			return false
		}
		t := files[m.File].Tokens[m.Start-1].Text
		if i == 0 {
			text = t
		} else if t != text {
			return false
		}
	}
	return true
}

func canExtendRight(files []FileResult, members []Span) bool {
	var text string
	for i, m := range members {
		toks := files[m.File].Tokens
		if m.End >= len(toks) {
			return false
		}
		t := toks[m.End].Text
		if i == 0 {
			text = t
		} else if t != text {
			return false
		}
	}
	return true
}

// dropOverlaps keeps, per file, only occurrences that start at or after the
// end of the previously kept one. Extension can leave same-file members
// overlapping (self-repeating content); the earliest occurrence wins and
// anything it overlaps is dropped.
func dropOverlaps(members []Span) []Span {
	sort.Slice(members, func(i, j int) bool {
		if members[i].File != members[j].File {
			return members[i].File < members[j].File
		}
		if members[i].Start != members[j].Start {
			return members[i].Start < members[j].Start
		}
		return members[i].End < members[j].End
	})

	kept := members[:0]
	lastEnd := make(map[int]int)
	for _, m := range members {
		if end, ok := lastEnd[m.File]; ok && m.Start < end {
			continue
		}
		kept = append(kept, m)
		lastEnd[m.File] = m.End
	}
	return kept
}

// groupKey is a canonical identity for a group's exact occurrence list.
// Identical duplicates found from different seed windows share a key.
func (ix *Index) groupKey(members []Span) string {
	var b strings.Builder
	for _, m := range members {
		b.WriteString(ix.files[m.File].Path)
		b.WriteByte(0)
		b.WriteString(strconv.Itoa(m.Start))
		b.WriteByte(0)
		b.WriteString(strconv.Itoa(m.End))
		b.WriteByte(0)
	}
	return b.String()
}
