package schemes

// SchemeDetail is the normalized scheme payload: provider metadata plus
// the valid NAV history in ascending date order.
type SchemeDetail struct {
	Meta         Meta       `json:"meta"`
	History      []NAVPoint `json:"history"`
	InvalidCount int        `json:"invalidCount"`
}

// Meta mirrors the provider's scheme metadata with normalized field names.
type Meta struct {
	FundHouse      string `json:"fundHouse"`
	SchemeType     string `json:"schemeType"`
	SchemeCategory string `json:"schemeCategory"`
	SchemeCode     int    `json:"schemeCode"`
	SchemeName     string `json:"schemeName"`
}

// NAVPoint is one observation in a scheme's NAV history.
type NAVPoint struct {
	Date string  `json:"date"`
	NAV  float64 `json:"nav"`
}

// ReturnsResponse is the point-to-point calculation result.
type ReturnsResponse struct {
	StartDate           string   `json:"startDate"`
	EndDate             string   `json:"endDate"`
	StartNAV            float64  `json:"startNAV"`
	EndNAV              float64  `json:"endNAV"`
	SimpleReturnPct     float64  `json:"simpleReturnPct"`
	AnnualizedReturnPct *float64 `json:"annualizedReturnPct"`
	DurationDays        int      `json:"durationDays"`
}

// SIPRequest describes a systematic investment plan simulation.
type SIPRequest struct {
	Amount    float64 `json:"amount"`
	Frequency string  `json:"frequency"`
	From      string  `json:"from"`
	To        string  `json:"to"`
}

// SIPInstallmentResponse is one installment in the SIP timeline.
type SIPInstallmentResponse struct {
	ScheduledDate   string  `json:"scheduledDate"`
	ResolvedDate    string  `json:"resolvedDate,omitempty"`
	NAV             float64 `json:"nav"`
	Amount          float64 `json:"amount"`
	Units           float64 `json:"units"`
	CumulativeUnits float64 `json:"cumulativeUnits"`
	Value           float64 `json:"value"`
	Skipped         bool    `json:"skipped"`
}

// SIPResponse aggregates a simulated SIP.
type SIPResponse struct {
	TotalInvested       float64                  `json:"totalInvested"`
	TotalUnits          float64                  `json:"totalUnits"`
	CurrentValue        float64                  `json:"currentValue"`
	AbsoluteReturnPct   float64                  `json:"absoluteReturnPct"`
	AnnualizedReturnPct float64                  `json:"annualizedReturnPct"`
	LatestNAV           float64                  `json:"latestNAV"`
	LatestNAVDate       string                   `json:"latestNAVDate"`
	SkippedCount        int                      `json:"skippedCount"`
	Timeline            []SIPInstallmentResponse `json:"timeline"`
}

// SWPRequest describes a systematic withdrawal plan simulation.
type SWPRequest struct {
	InitialInvestment float64 `json:"initialInvestment"`
	WithdrawalAmount  float64 `json:"withdrawalAmount"`
	Frequency         string  `json:"frequency"`
	From              string  `json:"from"`
	To                string  `json:"to"`
}

// SWPEntryResponse is one withdrawal in the SWP history.
type SWPEntryResponse struct {
	Date             string  `json:"date"`
	NAV              float64 `json:"nav"`
	WithdrawalAmount float64 `json:"withdrawalAmount"`
	UnitsWithdrawn   float64 `json:"unitsWithdrawn"`
	RemainingUnits   float64 `json:"remainingUnits"`
	RemainingValue   float64 `json:"remainingValue"`
	Status           string  `json:"status"`
}

// SWPResponse aggregates a simulated SWP.
type SWPResponse struct {
	InitialInvestment float64            `json:"initialInvestment"`
	InitialUnits      float64            `json:"initialUnits"`
	TotalWithdrawals  float64            `json:"totalWithdrawals"`
	RemainingUnits    float64            `json:"remainingUnits"`
	RemainingValue    float64            `json:"remainingValue"`
	IsExhausted       bool               `json:"isExhausted"`
	History           []SWPEntryResponse `json:"history"`
}

// RollingPointResponse is one window endpoint in a rolling-return series.
type RollingPointResponse struct {
	Date      string  `json:"date"`
	ReturnPct float64 `json:"returnPct"`
}

// RollingResponse is the rolling-return series with summary statistics.
type RollingResponse struct {
	Years  int                    `json:"years"`
	Points []RollingPointResponse `json:"points"`
	Stats  RollingStatsResponse   `json:"stats"`
}

// RollingStatsResponse summarizes a rolling-return series.
type RollingStatsResponse struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
}

// LumpsumRequest describes a one-time investment valuation.
// AsOf is optional and defaults to today.
type LumpsumRequest struct {
	Amount         float64 `json:"amount"`
	InvestmentDate string  `json:"investmentDate"`
	AsOf           string  `json:"asOf,omitempty"`
}

// RiskResponse summarizes the risk profile of a scheme's full NAV history.
// Drawdowns are positive percentages; Sharpe is null when the history is
// too short or flat.
type RiskResponse struct {
	MaxDrawdownPct       float64  `json:"maxDrawdownPct"`
	CurrentDrawdownPct   float64  `json:"currentDrawdownPct"`
	DaysSincePeak        int      `json:"daysSincePeak"`
	PeakNAV              float64  `json:"peakNAV"`
	LatestNAV            float64  `json:"latestNAV"`
	AnnualizedVolatility float64  `json:"annualizedVolatilityPct"`
	SharpeRatio          *float64 `json:"sharpeRatio"`
	RiskFreeRatePct      float64  `json:"riskFreeRatePct"`
	Observations         int      `json:"observations"`
}

// LumpsumResponse is the lumpsum valuation result.
type LumpsumResponse struct {
	InvestmentAmount    float64  `json:"investmentAmount"`
	Units               float64  `json:"units"`
	CurrentValue        float64  `json:"currentValue"`
	AbsoluteReturnPct   float64  `json:"absoluteReturnPct"`
	AnnualizedReturnPct *float64 `json:"annualizedReturnPct"`
	StartDate           string   `json:"startDate"`
	EndDate             string   `json:"endDate"`
	StartNAV            float64  `json:"startNAV"`
	EndNAV              float64  `json:"endNAV"`
	DurationDays        int      `json:"durationDays"`
}
