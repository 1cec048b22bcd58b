package schemes

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/fundscope/internal/clients/mfapi"
	"github.com/aristath/fundscope/internal/nav"
	"github.com/aristath/fundscope/internal/returns"
	"github.com/aristath/fundscope/pkg/formulas"
)

// ErrBadDate reports an unparseable request date.
var ErrBadDate = errors.New("invalid date, expected YYYY-MM-DD")

// Fetcher provides per-scheme data from the upstream provider.
type Fetcher interface {
	Fetch(ctx context.Context, code string) (*mfapi.SchemeData, error)
}

// Service loads scheme NAV histories and runs return calculations on them.
type Service struct {
	provider Fetcher
	log      zerolog.Logger
	now      func() time.Time
}

// NewService creates a new schemes service.
func NewService(provider Fetcher, log zerolog.Logger) *Service {
	return &Service{
		provider: provider,
		log:      log.With().Str("service", "schemes").Logger(),
		now:      time.Now,
	}
}

// load fetches a scheme and normalizes its NAV history.
func (s *Service) load(ctx context.Context, code string) (*mfapi.SchemeData, nav.Series, int, error) {
	data, err := s.provider.Fetch(ctx, code)
	if err != nil {
		return nil, nav.Series{}, 0, fmt.Errorf("failed to load scheme %s: %w", code, err)
	}

	series, invalid := nav.Normalize(data.Records)
	if invalid > 0 {
		s.log.Debug().
			Str("scheme", code).
			Int("invalid_records", invalid).
			Msg("Dropped invalid NAV records")
	}

	return data, series, invalid, nil
}

// GetScheme returns normalized metadata and NAV history for a scheme.
func (s *Service) GetScheme(ctx context.Context, code string) (*SchemeDetail, error) {
	data, series, invalid, err := s.load(ctx, code)
	if err != nil {
		return nil, err
	}

	history := make([]NAVPoint, 0, series.Len())
	for _, obs := range series.Observations() {
		history = append(history, NAVPoint{
			Date: nav.FormatDate(obs.Date),
			NAV:  obs.NAV,
		})
	}

	return &SchemeDetail{
		Meta: Meta{
			FundHouse:      data.Meta.FundHouse,
			SchemeType:     data.Meta.SchemeType,
			SchemeCategory: data.Meta.SchemeCategory,
			SchemeCode:     data.Meta.SchemeCode,
			SchemeName:     data.Meta.SchemeName,
		},
		History:      history,
		InvalidCount: invalid,
	}, nil
}

// Returns computes a point-to-point return either for a named trailing
// period or for an explicit from/to range.
func (s *Service) Returns(ctx context.Context, code, period, from, to string) (*ReturnsResponse, error) {
	_, series, _, err := s.load(ctx, code)
	if err != nil {
		return nil, err
	}

	var result *returns.PointToPointResult
	if period != "" {
		result, err = returns.Trailing(series, period, s.now())
	} else {
		var start, end time.Time
		if start, err = nav.ParseDate(from); err != nil {
			return nil, ErrBadDate
		}
		if end, err = nav.ParseDate(to); err != nil {
			return nil, ErrBadDate
		}
		result, err = returns.PointToPoint(series, start, end)
	}
	if err != nil {
		return nil, err
	}

	return &ReturnsResponse{
		StartDate:           nav.FormatDate(result.StartDate),
		EndDate:             nav.FormatDate(result.EndDate),
		StartNAV:            result.StartNAV,
		EndNAV:              result.EndNAV,
		SimpleReturnPct:     result.SimpleReturnPct,
		AnnualizedReturnPct: result.AnnualizedReturnPct,
		DurationDays:        result.DurationDays,
	}, nil
}

// SimulateSIP runs a systematic investment plan simulation.
func (s *Service) SimulateSIP(ctx context.Context, code string, req SIPRequest) (*SIPResponse, error) {
	_, series, _, err := s.load(ctx, code)
	if err != nil {
		return nil, err
	}

	freq, err := returns.ParseFrequency(req.Frequency)
	if err != nil {
		return nil, err
	}
	start, err := nav.ParseDate(req.From)
	if err != nil {
		return nil, ErrBadDate
	}
	end, err := nav.ParseDate(req.To)
	if err != nil {
		return nil, ErrBadDate
	}

	result, err := returns.SimulateSIP(series, req.Amount, freq, start, end)
	if err != nil {
		return nil, err
	}

	timeline := make([]SIPInstallmentResponse, 0, len(result.Timeline))
	for _, inst := range result.Timeline {
		entry := SIPInstallmentResponse{
			ScheduledDate:   nav.FormatDate(inst.ScheduledDate),
			NAV:             inst.NAV,
			Amount:          inst.Amount,
			Units:           inst.Units,
			CumulativeUnits: inst.CumulativeUnits,
			Value:           inst.Value,
			Skipped:         inst.Skipped,
		}
		if !inst.Skipped {
			entry.ResolvedDate = nav.FormatDate(inst.ResolvedDate)
		}
		timeline = append(timeline, entry)
	}

	return &SIPResponse{
		TotalInvested:       result.TotalInvested,
		TotalUnits:          result.TotalUnits,
		CurrentValue:        result.CurrentValue,
		AbsoluteReturnPct:   result.AbsoluteReturnPct,
		AnnualizedReturnPct: result.AnnualizedReturnPct,
		LatestNAV:           result.LatestNAV,
		LatestNAVDate:       nav.FormatDate(result.LatestNAVDate),
		SkippedCount:        result.SkippedCount,
		Timeline:            timeline,
	}, nil
}

// SimulateSWP runs a systematic withdrawal plan simulation.
func (s *Service) SimulateSWP(ctx context.Context, code string, req SWPRequest) (*SWPResponse, error) {
	_, series, _, err := s.load(ctx, code)
	if err != nil {
		return nil, err
	}

	freq, err := returns.ParseFrequency(req.Frequency)
	if err != nil {
		return nil, err
	}
	start, err := nav.ParseDate(req.From)
	if err != nil {
		return nil, ErrBadDate
	}
	end, err := nav.ParseDate(req.To)
	if err != nil {
		return nil, ErrBadDate
	}

	result, err := returns.SimulateSWP(series, req.InitialInvestment, req.WithdrawalAmount, freq, start, end)
	if err != nil {
		return nil, err
	}

	history := make([]SWPEntryResponse, 0, len(result.History))
	for _, entry := range result.History {
		history = append(history, SWPEntryResponse{
			Date:             nav.FormatDate(entry.Date),
			NAV:              entry.NAV,
			WithdrawalAmount: entry.WithdrawalAmount,
			UnitsWithdrawn:   entry.UnitsWithdrawn,
			RemainingUnits:   entry.RemainingUnits,
			RemainingValue:   entry.RemainingValue,
			Status:           entry.Status,
		})
	}

	return &SWPResponse{
		InitialInvestment: result.InitialInvestment,
		InitialUnits:      result.InitialUnits,
		TotalWithdrawals:  result.TotalWithdrawals,
		RemainingUnits:    result.RemainingUnits,
		RemainingValue:    result.RemainingValue,
		IsExhausted:       result.IsExhausted,
		History:           history,
	}, nil
}

// Rolling computes the rolling-return series for a whole-year lookback.
func (s *Service) Rolling(ctx context.Context, code string, years int) (*RollingResponse, error) {
	_, series, _, err := s.load(ctx, code)
	if err != nil {
		return nil, err
	}

	result, err := returns.Rolling(series, years)
	if err != nil {
		return nil, err
	}

	points := make([]RollingPointResponse, 0, len(result.Points))
	for _, p := range result.Points {
		points = append(points, RollingPointResponse{
			Date:      nav.FormatDate(p.Date),
			ReturnPct: p.ReturnPct,
		})
	}

	return &RollingResponse{
		Years:  result.Years,
		Points: points,
		Stats: RollingStatsResponse{
			Min:    result.Stats.Min,
			Max:    result.Stats.Max,
			Mean:   result.Stats.Mean,
			Median: result.Stats.Median,
		},
	}, nil
}

// DefaultRiskFreeRate approximates the Indian 10-year G-Sec yield.
const DefaultRiskFreeRate = 0.06

// Risk computes drawdown, volatility and Sharpe metrics over the full
// NAV history. riskFreeRate is annual, as a decimal.
func (s *Service) Risk(ctx context.Context, code string, riskFreeRate float64) (*RiskResponse, error) {
	_, series, _, err := s.load(ctx, code)
	if err != nil {
		return nil, err
	}

	navs := make([]float64, 0, series.Len())
	for _, obs := range series.Observations() {
		navs = append(navs, obs.NAV)
	}

	drawdown := formulas.CalculateDrawdown(navs)
	if drawdown == nil {
		return nil, returns.ErrInsufficientData
	}

	dailyReturns := formulas.DailyReturns(navs)

	return &RiskResponse{
		MaxDrawdownPct:       round2(drawdown.MaxDrawdown * 100),
		CurrentDrawdownPct:   round2(drawdown.CurrentDrawdown * 100),
		DaysSincePeak:        drawdown.DaysSincePeak,
		PeakNAV:              drawdown.PeakNAV,
		LatestNAV:            drawdown.LatestNAV,
		AnnualizedVolatility: round2(formulas.AnnualizedVolatility(dailyReturns) * 100),
		SharpeRatio:          roundPtr2(formulas.CalculateSharpeRatio(dailyReturns, riskFreeRate)),
		RiskFreeRatePct:      riskFreeRate * 100,
		Observations:         len(navs),
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func roundPtr2(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := round2(*v)
	return &r
}

// Lumpsum values a one-time investment from its purchase date to asOf
// (today when the request omits it).
func (s *Service) Lumpsum(ctx context.Context, code string, req LumpsumRequest) (*LumpsumResponse, error) {
	_, series, _, err := s.load(ctx, code)
	if err != nil {
		return nil, err
	}

	investmentDate, err := nav.ParseDate(req.InvestmentDate)
	if err != nil {
		return nil, ErrBadDate
	}

	asOf := s.now()
	if req.AsOf != "" {
		if asOf, err = nav.ParseDate(req.AsOf); err != nil {
			return nil, ErrBadDate
		}
	}

	result, err := returns.Lumpsum(series, req.Amount, investmentDate, asOf)
	if err != nil {
		return nil, err
	}

	return &LumpsumResponse{
		InvestmentAmount:    result.InvestmentAmount,
		Units:               result.Units,
		CurrentValue:        result.CurrentValue,
		AbsoluteReturnPct:   result.AbsoluteReturnPct,
		AnnualizedReturnPct: result.AnnualizedReturnPct,
		StartDate:           nav.FormatDate(result.StartDate),
		EndDate:             nav.FormatDate(result.EndDate),
		StartNAV:            result.StartNAV,
		EndNAV:              result.EndNAV,
		DurationDays:        result.DurationDays,
	}, nil
}
