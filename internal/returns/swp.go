package returns

import (
	"time"

	"github.com/aristath/fundscope/internal/nav"
)

// SWP entry statuses.
const (
	SWPStatusOK                = "ok"
	SWPStatusInsufficientFunds = "insufficient_funds"
)

// SWPEntry is one executed (or attempted) withdrawal in an SWP history.
type SWPEntry struct {
	Date             time.Time
	NAV              float64
	WithdrawalAmount float64
	UnitsWithdrawn   float64
	RemainingUnits   float64
	RemainingValue   float64
	Status           string
}

// SWPResult aggregates a simulated systematic withdrawal plan.
type SWPResult struct {
	InitialInvestment float64
	InitialUnits      float64
	TotalWithdrawals  float64
	RemainingUnits    float64
	RemainingValue    float64
	IsExhausted       bool
	History           []SWPEntry
}

// SimulateSWP buys units with the initial investment at the NAV resolved on or
// after start, then depletes them along the withdrawal schedule. When a
// withdrawal would need more units than remain, a final insufficient_funds
// entry records the then-remaining position and the simulation stops.
func SimulateSWP(s nav.Series, initial, withdrawal float64, freq Frequency, start, end time.Time) (*SWPResult, error) {
	if initial <= 0 || withdrawal <= 0 {
		return nil, ErrInvalidAmount
	}
	if _, err := ParseFrequency(string(freq)); err != nil {
		return nil, err
	}
	start, end = nav.Day(start), nav.Day(end)
	if end.Before(start) {
		return nil, ErrInvalidRange
	}

	initialObs, ok := s.FindOnOrAfter(start)
	if !ok {
		return nil, ErrInsufficientData
	}

	initialUnits := initial / initialObs.NAV
	remainingUnits := initialUnits

	var (
		history          []SWPEntry
		totalWithdrawals float64
		exhausted        bool
	)

	// The remaining value tracks the NAV of the last resolved schedule date;
	// before any withdrawal it is the position at the purchase NAV.
	remainingValue := remainingUnits * initialObs.NAV

	for _, due := range scheduleDates(start, end, freq) {
		obs, ok := s.FindOnOrAfter(due)
		if !ok {
			// Schedule ran past the available history; nothing to settle
			// against, the slot is silently skipped.
			continue
		}

		unitsToWithdraw := withdrawal / obs.NAV
		if unitsToWithdraw > remainingUnits {
			remainingValue = remainingUnits * obs.NAV
			history = append(history, SWPEntry{
				Date:           obs.Date,
				NAV:            obs.NAV,
				RemainingUnits: round6(remainingUnits),
				RemainingValue: round2(remainingValue),
				Status:         SWPStatusInsufficientFunds,
			})
			exhausted = true
			break
		}

		remainingUnits -= unitsToWithdraw
		totalWithdrawals += withdrawal
		remainingValue = remainingUnits * obs.NAV

		history = append(history, SWPEntry{
			Date:             obs.Date,
			NAV:              obs.NAV,
			WithdrawalAmount: withdrawal,
			UnitsWithdrawn:   round6(unitsToWithdraw),
			RemainingUnits:   round6(remainingUnits),
			RemainingValue:   round2(remainingValue),
			Status:           SWPStatusOK,
		})
	}

	return &SWPResult{
		InitialInvestment: initial,
		InitialUnits:      round6(initialUnits),
		TotalWithdrawals:  round2(totalWithdrawals),
		RemainingUnits:    round6(remainingUnits),
		RemainingValue:    round2(remainingValue),
		IsExhausted:       exhausted,
		History:           history,
	}, nil
}
