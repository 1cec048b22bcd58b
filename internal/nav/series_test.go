package nav

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return Day(t)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name        string
		records     []RawRecord
		wantLen     int
		wantInvalid int
	}{
		{
			name: "provider-native records",
			records: []RawRecord{
				{Date: "17-11-2023", Values: map[string]string{"nav": "81.1149"}},
				{Date: "16-11-2023", Values: map[string]string{"nav": "80.9978"}},
			},
			wantLen:     2,
			wantInvalid: 0,
		},
		{
			name: "iso dates accepted",
			records: []RawRecord{
				{Date: "2023-11-17", Values: map[string]string{"nav": "81.1149"}},
			},
			wantLen:     1,
			wantInvalid: 0,
		},
		{
			name: "fallback field name",
			records: []RawRecord{
				{Date: "17-11-2023", Values: map[string]string{"netAssetValue": "42.5"}},
			},
			wantLen:     1,
			wantInvalid: 0,
		},
		{
			name: "primary field wins over fallback",
			records: []RawRecord{
				{Date: "17-11-2023", Values: map[string]string{"nav": "10", "netAssetValue": "20"}},
			},
			wantLen:     1,
			wantInvalid: 0,
		},
		{
			name: "unparsable date excluded",
			records: []RawRecord{
				{Date: "not-a-date", Values: map[string]string{"nav": "10"}},
				{Date: "17-11-2023", Values: map[string]string{"nav": "10"}},
			},
			wantLen:     1,
			wantInvalid: 1,
		},
		{
			name: "zero and negative NAV excluded",
			records: []RawRecord{
				{Date: "17-11-2023", Values: map[string]string{"nav": "0"}},
				{Date: "16-11-2023", Values: map[string]string{"nav": "-1.5"}},
				{Date: "15-11-2023", Values: map[string]string{"nav": "garbage"}},
			},
			wantLen:     0,
			wantInvalid: 3,
		},
		{
			name:        "empty input",
			records:     nil,
			wantLen:     0,
			wantInvalid: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			series, invalid := Normalize(tt.records)
			assert.Equal(t, tt.wantLen, series.Len())
			assert.Equal(t, tt.wantInvalid, invalid)
		})
	}
}

func TestNormalizeSortsAscending(t *testing.T) {
	series, invalid := Normalize([]RawRecord{
		{Date: "17-11-2023", Values: map[string]string{"nav": "3"}},
		{Date: "15-11-2023", Values: map[string]string{"nav": "1"}},
		{Date: "16-11-2023", Values: map[string]string{"nav": "2"}},
	})

	require.Equal(t, 0, invalid)
	require.Equal(t, 3, series.Len())
	assert.Equal(t, 1.0, series.At(0).NAV)
	assert.Equal(t, 2.0, series.At(1).NAV)
	assert.Equal(t, 3.0, series.At(2).NAV)
}

func TestNormalizeStableOnDuplicateDates(t *testing.T) {
	series, _ := Normalize([]RawRecord{
		{Date: "16-11-2023", Values: map[string]string{"nav": "1"}},
		{Date: "16-11-2023", Values: map[string]string{"nav": "2"}},
		{Date: "15-11-2023", Values: map[string]string{"nav": "9"}},
	})

	require.Equal(t, 3, series.Len())
	// Duplicates keep relative input order after the stable sort.
	assert.Equal(t, 9.0, series.At(0).NAV)
	assert.Equal(t, 1.0, series.At(1).NAV)
	assert.Equal(t, 2.0, series.At(2).NAV)
}

func TestNormalizeCanonicalRoundTrip(t *testing.T) {
	records := []RawRecord{
		{Date: "2023-01-01", Values: map[string]string{"nav": "100"}},
		{Date: "2023-06-01", Values: map[string]string{"nav": "110"}},
		{Date: "2024-01-01", Values: map[string]string{"nav": "121"}},
	}

	first, invalid := Normalize(records)
	require.Equal(t, 0, invalid)

	// Re-normalizing the canonical output is a no-op.
	var again []RawRecord
	for _, obs := range first.Observations() {
		again = append(again, RawRecord{
			Date:   FormatDate(obs.Date),
			Values: map[string]string{"nav": strconv.FormatFloat(obs.NAV, 'f', -1, 64)},
		})
	}
	second, invalid := Normalize(again)
	require.Equal(t, 0, invalid)
	assert.Equal(t, first.Observations(), second.Observations())
}

func TestNewSeriesCopiesInput(t *testing.T) {
	obs := []Observation{
		{Date: date("2023-01-02"), NAV: 2},
		{Date: date("2023-01-01"), NAV: 1},
	}
	series := NewSeries(obs)

	// Mutating the caller's slice must not affect the series.
	obs[0].NAV = 99
	assert.Equal(t, 1.0, series.At(0).NAV)
	assert.Equal(t, 2.0, series.At(1).NAV)
}

func TestFirstAndLatest(t *testing.T) {
	empty := NewSeries(nil)
	_, ok := empty.First()
	assert.False(t, ok)
	_, ok = empty.Latest()
	assert.False(t, ok)

	series := NewSeries([]Observation{
		{Date: date("2023-01-01"), NAV: 1},
		{Date: date("2023-02-01"), NAV: 2},
	})

	first, ok := series.First()
	require.True(t, ok)
	assert.Equal(t, 1.0, first.NAV)

	latest, ok := series.Latest()
	require.True(t, ok)
	assert.Equal(t, 2.0, latest.NAV)
}
