package returns

import (
	"time"

	"github.com/aristath/fundscope/internal/nav"
)

// LumpsumResult is the valuation of a one-time investment held to a later date.
type LumpsumResult struct {
	InvestmentAmount    float64
	Units               float64
	CurrentValue        float64
	AbsoluteReturnPct   float64
	AnnualizedReturnPct *float64
	StartDate           time.Time
	EndDate             time.Time
	StartNAV            float64
	EndNAV              float64
	DurationDays        int
}

// Lumpsum values a single purchase made on investmentDate against the NAV
// resolved on or before asOf. Units bought at the purchase NAV are priced at
// the end NAV; the annualized figure follows the point-to-point policy.
func Lumpsum(s nav.Series, amount float64, investmentDate, asOf time.Time) (*LumpsumResult, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	p2p, err := PointToPoint(s, investmentDate, asOf)
	if err != nil {
		return nil, err
	}

	units := amount / p2p.StartNAV
	currentValue := units * p2p.EndNAV

	return &LumpsumResult{
		InvestmentAmount:    amount,
		Units:               round6(units),
		CurrentValue:        round2(currentValue),
		AbsoluteReturnPct:   p2p.SimpleReturnPct,
		AnnualizedReturnPct: p2p.AnnualizedReturnPct,
		StartDate:           p2p.StartDate,
		EndDate:             p2p.EndDate,
		StartNAV:            p2p.StartNAV,
		EndNAV:              p2p.EndNAV,
		DurationDays:        p2p.DurationDays,
	}, nil
}
