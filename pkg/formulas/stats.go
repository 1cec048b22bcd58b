package formulas

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// tradingDaysPerYear is the annualization base for daily NAV returns.
// Indian mutual funds publish NAVs on business days only.
const tradingDaysPerYear = 252

// Mean calculates the arithmetic mean of a slice of float64 values
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Mean(data, nil)
}

// StdDev calculates the standard deviation of a slice of float64 values
func StdDev(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.StdDev(data, nil)
}

// DailyReturns converts a NAV history into day-over-day fractional returns.
// Returns[i] = (NAV[i+1] - NAV[i]) / NAV[i]
func DailyReturns(navs []float64) []float64 {
	if len(navs) < 2 {
		return []float64{}
	}

	returns := make([]float64, len(navs)-1)
	for i := 1; i < len(navs); i++ {
		if navs[i-1] != 0 {
			returns[i-1] = (navs[i] - navs[i-1]) / navs[i-1]
		}
	}

	return returns
}

// AnnualizedVolatility calculates annualized volatility from daily returns.
// Formula: Std Dev of Daily Returns × sqrt(252 trading days)
func AnnualizedVolatility(dailyReturns []float64) float64 {
	if len(dailyReturns) == 0 {
		return 0
	}

	return StdDev(dailyReturns) * math.Sqrt(tradingDaysPerYear)
}
