package returns

import (
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/aristath/fundscope/internal/nav"
)

// allowedLookbacks are the supported rolling-return windows in whole years.
var allowedLookbacks = map[int]bool{1: true, 3: true, 5: true, 10: true}

// RollingPoint is the annualized return for one window end date.
type RollingPoint struct {
	Date      time.Time
	ReturnPct float64
}

// RollingStats summarizes a rolling-return series. Median is the lower-middle
// element of the ascending returns for an even count.
type RollingStats struct {
	Min    float64
	Max    float64
	Mean   float64
	Median float64
}

// RollingResult is the full rolling-return series plus summary statistics.
type RollingResult struct {
	Years  int
	Points []RollingPoint
	Stats  RollingStats
}

// Rolling computes the sliding-window annualized-return series at a fixed
// lookback of whole years. The window length is years*365 observations, an
// index offset over the daily series rather than a leap-year-exact calendar
// span.
func Rolling(s nav.Series, years int) (*RollingResult, error) {
	if !allowedLookbacks[years] {
		return nil, ErrInvalidLookback
	}

	lookbackDays := years * 365
	if s.Len() <= lookbackDays {
		return nil, ErrInsufficientHistory
	}

	points := make([]RollingPoint, 0, s.Len()-lookbackDays)
	raw := make([]float64, 0, s.Len()-lookbackDays)

	for i := lookbackDays; i < s.Len(); i++ {
		startNAV := s.At(i - lookbackDays).NAV
		endNAV := s.At(i).NAV
		if startNAV <= 0 || endNAV <= 0 {
			continue
		}

		value := (math.Pow(endNAV/startNAV, 1/float64(years)) - 1) * 100
		points = append(points, RollingPoint{
			Date:      s.At(i).Date,
			ReturnPct: round2(value),
		})
		raw = append(raw, value)
	}

	if len(raw) == 0 {
		return nil, ErrInsufficientHistory
	}

	min, max := raw[0], raw[0]
	for _, v := range raw[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	sorted := make([]float64, len(raw))
	copy(sorted, raw)
	sort.Float64s(sorted)
	median := sorted[(len(sorted)-1)/2]

	return &RollingResult{
		Years:  years,
		Points: points,
		Stats: RollingStats{
			Min:    round2(min),
			Max:    round2(max),
			Mean:   round2(stat.Mean(raw, nil)),
			Median: round2(median),
		},
	}, nil
}
