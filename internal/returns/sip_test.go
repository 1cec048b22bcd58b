package returns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/fundscope/internal/nav"
)

func TestSimulateSIPSingleInstallment(t *testing.T) {
	series := nav.NewSeries([]nav.Observation{
		{Date: date("2023-01-01"), NAV: 10},
		{Date: date("2023-01-15"), NAV: 10},
	})

	result, err := SimulateSIP(series, 1000, Monthly, date("2023-01-01"), date("2023-01-01"))
	require.NoError(t, err)

	assert.Equal(t, 1000.0, result.TotalInvested)
	assert.Equal(t, 100.0, result.TotalUnits)
	assert.Equal(t, 1000.0, result.CurrentValue)
	assert.Equal(t, 0.0, result.AbsoluteReturnPct)
	require.Len(t, result.Timeline, 1)
	assert.Equal(t, 100.0, result.Timeline[0].Units)
	assert.False(t, result.Timeline[0].Skipped)
}

func TestSimulateSIPAccumulatesUnits(t *testing.T) {
	series := nav.NewSeries([]nav.Observation{
		{Date: date("2023-01-01"), NAV: 10},
		{Date: date("2023-02-01"), NAV: 20},
		{Date: date("2023-03-01"), NAV: 25},
	})

	result, err := SimulateSIP(series, 100, Monthly, date("2023-01-01"), date("2023-03-01"))
	require.NoError(t, err)

	// 10 + 5 + 4 units across the three installments.
	assert.Equal(t, 300.0, result.TotalInvested)
	assert.Equal(t, 19.0, result.TotalUnits)
	assert.Equal(t, 475.0, result.CurrentValue) // 19 units at latest NAV 25
	assert.InDelta(t, 58.33, result.AbsoluteReturnPct, 0.01)

	require.Len(t, result.Timeline, 3)
	assert.Equal(t, 10.0, result.Timeline[0].CumulativeUnits)
	assert.Equal(t, 15.0, result.Timeline[1].CumulativeUnits)
	assert.Equal(t, 19.0, result.Timeline[2].CumulativeUnits)
	// Timeline valuations price cumulative units at the latest NAV.
	assert.Equal(t, 250.0, result.Timeline[0].Value)
	assert.Equal(t, 475.0, result.Timeline[2].Value)
}

func TestSimulateSIPSkipsUnresolvableInstallments(t *testing.T) {
	// History starts in February, so the January installment has no NAV on or
	// before its date and is recorded as skipped.
	series := nav.NewSeries([]nav.Observation{
		{Date: date("2023-02-01"), NAV: 10},
		{Date: date("2023-03-01"), NAV: 10},
	})

	result, err := SimulateSIP(series, 100, Monthly, date("2023-01-01"), date("2023-03-01"))
	require.NoError(t, err)

	require.Len(t, result.Timeline, 3)
	assert.True(t, result.Timeline[0].Skipped)
	assert.Equal(t, 0.0, result.Timeline[0].Units)
	assert.False(t, result.Timeline[1].Skipped)
	assert.Equal(t, 1, result.SkippedCount)

	// Skipped installments contribute nothing to the totals.
	assert.Equal(t, 200.0, result.TotalInvested)
	assert.Equal(t, 20.0, result.TotalUnits)
}

func TestSimulateSIPAllSkipped(t *testing.T) {
	series := nav.NewSeries([]nav.Observation{
		{Date: date("2024-06-01"), NAV: 10},
	})

	_, err := SimulateSIP(series, 100, Monthly, date("2023-01-01"), date("2023-03-01"))
	assert.ErrorIs(t, err, ErrNoValidInvestments)
}

func TestSimulateSIPValidation(t *testing.T) {
	series := nav.NewSeries([]nav.Observation{{Date: date("2023-01-01"), NAV: 10}})

	_, err := SimulateSIP(series, 0, Monthly, date("2023-01-01"), date("2023-03-01"))
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = SimulateSIP(series, 100, Frequency("weekly"), date("2023-01-01"), date("2023-03-01"))
	assert.ErrorIs(t, err, ErrInvalidFrequency)

	_, err = SimulateSIP(series, 100, Monthly, date("2023-03-01"), date("2023-01-01"))
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = SimulateSIP(nav.NewSeries(nil), 100, Monthly, date("2023-01-01"), date("2023-03-01"))
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestSimulateSIPQuarterlyAndYearlySchedules(t *testing.T) {
	series := nav.NewSeries([]nav.Observation{
		{Date: date("2022-01-01"), NAV: 10},
		{Date: date("2024-12-31"), NAV: 10},
	})

	quarterly, err := SimulateSIP(series, 100, Quarterly, date("2023-01-01"), date("2023-12-31"))
	require.NoError(t, err)
	assert.Len(t, quarterly.Timeline, 4)

	yearly, err := SimulateSIP(series, 100, Yearly, date("2023-01-01"), date("2024-12-31"))
	require.NoError(t, err)
	assert.Len(t, yearly.Timeline, 2)
}

func TestParseFrequency(t *testing.T) {
	tests := []struct {
		input   string
		want    Frequency
		wantErr bool
	}{
		{"monthly", Monthly, false},
		{"Quarterly", Quarterly, false},
		{"YEARLY", Yearly, false},
		{"weekly", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFrequency(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidFrequency)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
