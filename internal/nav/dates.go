package nav

import "time"

// Day truncates a timestamp to UTC midnight. All series dates and query dates
// go through this so comparisons never trip over time-of-day or timezone.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddMonths returns the date n calendar months after t, at day resolution.
// Month-end overflow follows time.AddDate semantics (Jan 31 + 1 month lands in
// early March), matching how the schedule generators advance.
func AddMonths(t time.Time, n int) time.Time {
	return Day(t).AddDate(0, n, 0)
}

// DaysBetween returns the whole number of days from a to b at day resolution.
// Negative when b is before a.
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)) / (24 * time.Hour))
}

// ParseDate parses a YYYY-MM-DD boundary date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	return Day(t), nil
}

// FormatDate renders a date in the YYYY-MM-DD boundary form.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
