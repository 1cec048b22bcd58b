// Package returns implements the investment-return calculators: point-to-point
// and trailing returns, lumpsum valuation, SIP and SWP simulation, and rolling
// returns. All calculators are pure functions over a nav.Series; callers map
// the sentinel errors below to transport status codes.
package returns

import "errors"

var (
	// ErrInvalidRange is returned when the end date is before the start date.
	ErrInvalidRange = errors.New("end date is before start date")

	// ErrInvalidFrequency is returned for an unrecognized schedule frequency.
	ErrInvalidFrequency = errors.New("invalid frequency")

	// ErrInvalidPeriod is returned for an unrecognized trailing-period token.
	ErrInvalidPeriod = errors.New("invalid period")

	// ErrInvalidLookback is returned for an unsupported rolling-return lookback.
	ErrInvalidLookback = errors.New("invalid lookback period")

	// ErrInvalidAmount is returned when a monetary input is not positive.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInsufficientData is returned when no NAV observation resolves for a
	// required anchor date.
	ErrInsufficientData = errors.New("insufficient data for the selected date range")

	// ErrNoValidInvestments is returned when every scheduled installment failed
	// NAV resolution.
	ErrNoValidInvestments = errors.New("no valid investment dates found")

	// ErrInsufficientHistory is returned when the series is shorter than the
	// requested rolling-return window.
	ErrInsufficientHistory = errors.New("insufficient history for lookback period")
)
