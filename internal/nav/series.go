// Package nav provides the canonical NAV time-series model: normalization of
// provider-native history records into an ascending series, and date-indexed
// lookups over it. All calculators operate on a Series built here.
package nav

import (
	"math"
	"sort"
	"strconv"
	"time"
)

// navFieldAliases lists accepted source field names for the NAV value, in
// resolution order. Providers are inconsistent about the spelling.
var navFieldAliases = []string{"nav", "netAssetValue"}

// dateLayouts lists accepted date layouts, in resolution order. mfapi.in uses
// DD-MM-YYYY; ISO dates are accepted for callers that pre-normalize.
var dateLayouts = []string{"02-01-2006", "2006-01-02"}

// RawRecord is a provider-native NAV history record prior to normalization.
// Values holds the candidate NAV fields keyed by their source name.
type RawRecord struct {
	Date   string
	Values map[string]string
}

// Observation is a single valid NAV point at day resolution.
type Observation struct {
	Date time.Time
	NAV  float64
}

// Series is an immutable NAV history, ascending by date. Build one with
// Normalize or NewSeries; do not mutate observations obtained from it.
type Series struct {
	obs []Observation
}

// Normalize converts raw provider records into an ascending Series, returning
// the number of records excluded as invalid. A record is invalid when its date
// does not parse or no NAV field resolves to a finite number > 0. The sort is
// stable: duplicate dates keep their relative input order.
func Normalize(records []RawRecord) (Series, int) {
	obs := make([]Observation, 0, len(records))
	invalid := 0

	for _, rec := range records {
		date, ok := parseDate(rec.Date)
		if !ok {
			invalid++
			continue
		}

		value, ok := resolveNAV(rec.Values)
		if !ok {
			invalid++
			continue
		}

		obs = append(obs, Observation{Date: date, NAV: value})
	}

	sort.SliceStable(obs, func(i, j int) bool {
		return obs[i].Date.Before(obs[j].Date)
	})

	return Series{obs: obs}, invalid
}

// NewSeries builds a Series from already-parsed observations. The input is
// copied and stably sorted, so callers keep ownership of their slice.
func NewSeries(obs []Observation) Series {
	cp := make([]Observation, len(obs))
	for i, o := range obs {
		cp[i] = Observation{Date: Day(o.Date), NAV: o.NAV}
	}

	sort.SliceStable(cp, func(i, j int) bool {
		return cp[i].Date.Before(cp[j].Date)
	})

	return Series{obs: cp}
}

// Len returns the number of observations.
func (s Series) Len() int {
	return len(s.obs)
}

// At returns the observation at index i.
func (s Series) At(i int) Observation {
	return s.obs[i]
}

// First returns the earliest observation, or false for an empty series.
func (s Series) First() (Observation, bool) {
	if len(s.obs) == 0 {
		return Observation{}, false
	}
	return s.obs[0], true
}

// Latest returns the most recent observation, or false for an empty series.
func (s Series) Latest() (Observation, bool) {
	if len(s.obs) == 0 {
		return Observation{}, false
	}
	return s.obs[len(s.obs)-1], true
}

// Observations returns a copy of the underlying observations.
func (s Series) Observations() []Observation {
	cp := make([]Observation, len(s.obs))
	copy(cp, s.obs)
	return cp
}

// parseDate tries the accepted layouts and returns the date at UTC midnight.
func parseDate(raw string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return Day(t), true
		}
	}
	return time.Time{}, false
}

// resolveNAV walks the field aliases and returns the first value that parses
// to a finite number greater than zero.
func resolveNAV(values map[string]string) (float64, bool) {
	for _, alias := range navFieldAliases {
		raw, ok := values[alias]
		if !ok || raw == "" {
			continue
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		if value > 0 && !math.IsInf(value, 0) && !math.IsNaN(value) {
			return value, true
		}
	}
	return 0, false
}
