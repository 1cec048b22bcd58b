package formulas

import (
	"math"
)

// CalculateSharpeRatio calculates the annualized Sharpe ratio from daily
// fractional returns.
//
//	Sharpe = (Mean Return - Periodic Risk-free Rate) / Std Dev of Returns
//	Annualized: Sharpe × sqrt(252)
//
// riskFreeRate is annual, as a decimal (0.06 for 6%). Returns nil when the
// series is too short or has zero variance.
func CalculateSharpeRatio(dailyReturns []float64, riskFreeRate float64) *float64 {
	if len(dailyReturns) < 2 {
		return nil
	}

	stdDev := StdDev(dailyReturns)
	if stdDev == 0 {
		return nil
	}

	periodicRiskFree := riskFreeRate / tradingDaysPerYear

	sharpe := (Mean(dailyReturns) - periodicRiskFree) / stdDev
	annualized := sharpe * math.Sqrt(tradingDaysPerYear)

	return &annualized
}

// CalculateSharpeFromNAVs is a convenience wrapper that derives daily
// returns from a NAV history first.
func CalculateSharpeFromNAVs(navs []float64, riskFreeRate float64) *float64 {
	if len(navs) < 2 {
		return nil
	}
	return CalculateSharpeRatio(DailyReturns(navs), riskFreeRate)
}
