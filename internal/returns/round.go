package returns

import "math"

// Percentages are rounded to 2 decimals at the result boundary; unit counts
// keep 6 decimals so cumulative unit math does not compound rounding error.

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
