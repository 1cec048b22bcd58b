package returns

import (
	"math"
	"time"

	"github.com/aristath/fundscope/internal/nav"
)

// minAnnualizationDays is the shortest span for which an annualized figure is
// reported. Below this the compounding exponent amplifies noise into
// meaningless triple-digit percentages.
const minAnnualizationDays = 30

// epsilonYears floors the elapsed-years denominator used by the SIP and
// lumpsum annualization so a same-day window cannot divide by zero.
const epsilonYears = 1.0 / 365.0

// PointToPointResult is the outcome of a point-to-point return calculation.
// Dates and NAVs are the resolved observations, not the requested anchors.
type PointToPointResult struct {
	StartDate           time.Time
	EndDate             time.Time
	StartNAV            float64
	EndNAV              float64
	SimpleReturnPct     float64
	AnnualizedReturnPct *float64
	DurationDays        int
}

// PointToPoint computes simple and annualized return between two dates.
// The start anchor resolves to the first observation on or after start, the
// end anchor to the last observation on or before end.
func PointToPoint(s nav.Series, start, end time.Time) (*PointToPointResult, error) {
	start, end = nav.Day(start), nav.Day(end)
	if end.Before(start) {
		return nil, ErrInvalidRange
	}

	startObs, ok := s.FindOnOrAfter(start)
	if !ok {
		return nil, ErrInsufficientData
	}
	endObs, ok := s.FindOnOrBefore(end)
	if !ok {
		return nil, ErrInsufficientData
	}

	duration := nav.DaysBetween(startObs.Date, endObs.Date)
	simple := (endObs.NAV - startObs.NAV) / startObs.NAV * 100

	result := &PointToPointResult{
		StartDate:       startObs.Date,
		EndDate:         endObs.Date,
		StartNAV:        startObs.NAV,
		EndNAV:          endObs.NAV,
		SimpleReturnPct: round2(simple),
		DurationDays:    duration,
	}

	if duration >= minAnnualizationDays {
		annualized := annualize(endObs.NAV/startObs.NAV, float64(duration)/365.0)
		result.AnnualizedReturnPct = &annualized
	}

	return result, nil
}

// trailingPeriods maps the named trailing-period tokens to their calendar
// offsets in months.
var trailingPeriods = map[string]int{
	"1m": 1,
	"3m": 3,
	"6m": 6,
	"1y": 12,
}

// Trailing computes the point-to-point return for a named trailing period
// ending at now.
func Trailing(s nav.Series, period string, now time.Time) (*PointToPointResult, error) {
	months, ok := trailingPeriods[period]
	if !ok {
		return nil, ErrInvalidPeriod
	}

	end := nav.Day(now)
	start := nav.AddMonths(end, -months)
	return PointToPoint(s, start, end)
}

// annualize converts a growth ratio over the given number of years into a
// CAGR percentage, rounded to 2 decimals. Years is floored at epsilonYears.
func annualize(ratio, years float64) float64 {
	if years < epsilonYears {
		years = epsilonYears
	}
	return round2((math.Pow(ratio, 1/years) - 1) * 100)
}
