package returns

import (
	"time"

	"github.com/aristath/fundscope/internal/nav"
)

// SIPInstallment is one entry in a SIP timeline. A skipped installment had no
// usable NAV on or before its scheduled date; it occupies its schedule slot
// but contributes nothing to the totals.
type SIPInstallment struct {
	ScheduledDate   time.Time
	ResolvedDate    time.Time
	NAV             float64
	Amount          float64
	Units           float64
	CumulativeUnits float64
	Value           float64
	Skipped         bool
}

// SIPResult aggregates a simulated systematic investment plan.
type SIPResult struct {
	TotalInvested       float64
	TotalUnits          float64
	CurrentValue        float64
	AbsoluteReturnPct   float64
	AnnualizedReturnPct float64
	LatestNAV           float64
	LatestNAVDate       time.Time
	SkippedCount        int
	Timeline            []SIPInstallment
}

// SimulateSIP generates the installment schedule from start to end inclusive,
// resolves each installment against the most recent NAV on or before its date,
// and accumulates units. The current value prices all accumulated units at the
// latest NAV in the full series, not bounded by end.
func SimulateSIP(s nav.Series, amount float64, freq Frequency, start, end time.Time) (*SIPResult, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if _, err := ParseFrequency(string(freq)); err != nil {
		return nil, err
	}
	start, end = nav.Day(start), nav.Day(end)
	if end.Before(start) {
		return nil, ErrInvalidRange
	}

	latest, ok := s.Latest()
	if !ok {
		return nil, ErrInsufficientData
	}

	var (
		totalInvested   float64
		cumulativeUnits float64
		skipped         int
		firstValidDate  time.Time
		timeline        []SIPInstallment
	)

	for _, due := range scheduleDates(start, end, freq) {
		obs, ok := s.FindOnOrBefore(due)
		if !ok || obs.NAV <= 0 {
			skipped++
			timeline = append(timeline, SIPInstallment{
				ScheduledDate:   due,
				Amount:          amount,
				CumulativeUnits: round6(cumulativeUnits),
				Value:           round2(cumulativeUnits * latest.NAV),
				Skipped:         true,
			})
			continue
		}

		units := amount / obs.NAV
		cumulativeUnits += units
		totalInvested += amount
		if firstValidDate.IsZero() {
			firstValidDate = obs.Date
		}

		timeline = append(timeline, SIPInstallment{
			ScheduledDate:   due,
			ResolvedDate:    obs.Date,
			NAV:             obs.NAV,
			Amount:          amount,
			Units:           round6(units),
			CumulativeUnits: round6(cumulativeUnits),
			Value:           round2(cumulativeUnits * latest.NAV),
		})
	}

	if totalInvested == 0 {
		return nil, ErrNoValidInvestments
	}

	currentValue := cumulativeUnits * latest.NAV
	absolute := (currentValue - totalInvested) / totalInvested * 100

	years := float64(nav.DaysBetween(firstValidDate, latest.Date)) / 365.0
	annualized := annualize(currentValue/totalInvested, years)

	return &SIPResult{
		TotalInvested:       round2(totalInvested),
		TotalUnits:          round6(cumulativeUnits),
		CurrentValue:        round2(currentValue),
		AbsoluteReturnPct:   round2(absolute),
		AnnualizedReturnPct: annualized,
		LatestNAV:           latest.NAV,
		LatestNAVDate:       latest.Date,
		SkippedCount:        skipped,
		Timeline:            timeline,
	}, nil
}
