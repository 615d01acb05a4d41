package output

import "strconv"

// FormatRate renders a cache hit rate for terminal output. Rates arrive
// already rounded to two decimals; the shortest decimal form keeps 0.5
// from printing as 0.500000.
func FormatRate(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
