// Package lint defines the violation and report types shared by all rules
// and the output layer.
package lint

// Severity classifies how serious a violation is.
type Severity string

const (
	SeverityWarning Severity = "WARNING"
	SeverityError   Severity = "ERROR"
)

// Occurrence is one concrete source location contributing to a duplicate group.
// Lines are 1-based and inclusive on both ends.
type Occurrence struct {
	FilePath  string `json:"file_path"`
	LineStart int    `json:"line_start"`
	LineEnd   int    `json:"line_end"`
}

// DuplicateGroup describes one block of code found in two or more places.
// Occurrences preserve discovery order: files in analysis order, positions
// within a file in source order.
type DuplicateGroup struct {
	Hash        string       `json:"hash"`
	LineCount   int          `json:"line_count"`
	TokenCount  int          `json:"token_count"`
	Occurrences []Occurrence `json:"occurrences"`
}

// Violation is a single lint finding.
//
// DuplicateGroup is set only for duplicate-code violations, which span
// multiple locations. Single-location rules set RuleID, FilePath and Line
// instead.
type Violation struct {
	RuleID         string          `json:"rule_id,omitempty"`
	FilePath       string          `json:"file_path,omitempty"`
	Line           int             `json:"line,omitempty"`
	DuplicateGroup *DuplicateGroup `json:"duplicate_group,omitempty"`
	Message        string          `json:"message"`
	Severity       Severity        `json:"severity"`
	Suggestion     string          `json:"suggestion,omitempty"`
}

// CacheStats reports how effective the duplicate cache was for one run.
type CacheStats struct {
	Hits    int64   `json:"cache_hits"`
	Misses  int64   `json:"cache_misses"`
	HitRate float64 `json:"hit_rate"`
}

// Report is the aggregate result of a lint run. Violations is never nil so
// an empty run serializes as [] rather than null.
type Report struct {
	Violations []Violation `json:"violations"`
	Total      int         `json:"total"`
	CacheStats *CacheStats `json:"cache_stats,omitempty"`
}

// NewReport returns an empty report ready for appending.
func NewReport() *Report {
	return &Report{Violations: make([]Violation, 0)}
}

// Add appends violations and keeps Total in sync.
func (r *Report) Add(violations ...Violation) {
	r.Violations = append(r.Violations, violations...)
	r.Total = len(r.Violations)
}
