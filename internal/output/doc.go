// Package output renders lint reports for terminals and machine consumers.
//
// JSON rendering must be reproducible: the engines emit violations in a
// deterministic order and RenderJSON preserves struct field order, so
// identical runs produce byte-identical documents. The only block allowed
// to vary between otherwise identical runs is cache_stats (a cached rerun
// reports hits where a cold run reports misses); CompareReports checks two
// encoded reports for equality modulo that block.
package output
