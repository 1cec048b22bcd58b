package returns

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/fundscope/internal/nav"
)

func date(s string) time.Time {
	t, err := nav.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func growthSeries() nav.Series {
	return nav.NewSeries([]nav.Observation{
		{Date: date("2023-01-01"), NAV: 100},
		{Date: date("2023-06-01"), NAV: 110},
		{Date: date("2024-01-01"), NAV: 121},
	})
}

func TestPointToPoint(t *testing.T) {
	result, err := PointToPoint(growthSeries(), date("2023-01-01"), date("2024-01-01"))
	require.NoError(t, err)

	assert.Equal(t, 100.0, result.StartNAV)
	assert.Equal(t, 121.0, result.EndNAV)
	assert.Equal(t, 365, result.DurationDays)
	assert.Equal(t, 21.0, result.SimpleReturnPct)
	require.NotNil(t, result.AnnualizedReturnPct)
	assert.InDelta(t, 21.0, *result.AnnualizedReturnPct, 0.01)
}

func TestPointToPointResolvesAnchors(t *testing.T) {
	// Requested anchors fall between observations: start snaps forward, end
	// snaps back, and the duration covers the resolved dates.
	result, err := PointToPoint(growthSeries(), date("2023-02-01"), date("2023-12-01"))
	require.NoError(t, err)

	assert.Equal(t, date("2023-06-01"), result.StartDate)
	assert.Equal(t, date("2023-06-01"), result.EndDate)
	assert.Equal(t, 110.0, result.StartNAV)
	assert.Equal(t, 110.0, result.EndNAV)
	assert.Equal(t, 0, result.DurationDays)
}

func TestPointToPointShortWindowNotAnnualized(t *testing.T) {
	series := nav.NewSeries([]nav.Observation{
		{Date: date("2023-01-01"), NAV: 100},
		{Date: date("2023-01-15"), NAV: 105},
	})

	result, err := PointToPoint(series, date("2023-01-01"), date("2023-01-15"))
	require.NoError(t, err)

	assert.Equal(t, 5.0, result.SimpleReturnPct)
	assert.Equal(t, 14, result.DurationDays)
	assert.Nil(t, result.AnnualizedReturnPct)
}

func TestPointToPointErrors(t *testing.T) {
	series := growthSeries()

	_, err := PointToPoint(series, date("2024-01-01"), date("2023-01-01"))
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = PointToPoint(series, date("2024-06-01"), date("2024-07-01"))
	assert.ErrorIs(t, err, ErrInsufficientData)

	_, err = PointToPoint(nav.NewSeries(nil), date("2023-01-01"), date("2024-01-01"))
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestTrailing(t *testing.T) {
	now := date("2024-01-01")

	tests := []struct {
		period    string
		wantStart time.Time
		wantErr   error
	}{
		{period: "1m", wantStart: date("2024-01-01")},
		{period: "3m", wantStart: date("2024-01-01")},
		{period: "6m", wantStart: date("2024-01-01")},
		{period: "1y", wantStart: date("2023-01-01")},
		{period: "2w", wantErr: ErrInvalidPeriod},
		{period: "", wantErr: ErrInvalidPeriod},
	}

	for _, tt := range tests {
		t.Run(tt.period, func(t *testing.T) {
			result, err := Trailing(growthSeries(), tt.period, now)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			// Start resolves to the first observation at or after the offset.
			assert.Equal(t, tt.wantStart, result.StartDate)
		})
	}
}

func TestPointToPointIdempotent(t *testing.T) {
	series := growthSeries()

	first, err := PointToPoint(series, date("2023-01-01"), date("2024-01-01"))
	require.NoError(t, err)
	second, err := PointToPoint(series, date("2023-01-01"), date("2024-01-01"))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
