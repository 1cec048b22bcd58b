package nav

import (
	"sort"
	"time"
)

// FindOnOrBefore returns the latest observation dated on or before d, or
// false when the series starts after d. Binary search, O(log n).
func (s Series) FindOnOrBefore(d time.Time) (Observation, bool) {
	day := Day(d)

	// First index with date strictly after day.
	i := sort.Search(len(s.obs), func(i int) bool {
		return s.obs[i].Date.After(day)
	})
	if i == 0 {
		return Observation{}, false
	}
	return s.obs[i-1], true
}

// FindOnOrAfter returns the earliest observation dated on or after d, or
// false when the series ends before d.
func (s Series) FindOnOrAfter(d time.Time) (Observation, bool) {
	day := Day(d)

	// First index with date >= day.
	i := sort.Search(len(s.obs), func(i int) bool {
		return !s.obs[i].Date.Before(day)
	})
	if i == len(s.obs) {
		return Observation{}, false
	}
	return s.obs[i], true
}
