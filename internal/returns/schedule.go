package returns

import (
	"strings"
	"time"

	"github.com/aristath/fundscope/internal/nav"
)

// Frequency is a schedule step for SIP installments and SWP withdrawals.
type Frequency string

const (
	Monthly   Frequency = "monthly"
	Quarterly Frequency = "quarterly"
	Yearly    Frequency = "yearly"
)

// ParseFrequency parses a frequency token case-insensitively.
func ParseFrequency(s string) (Frequency, error) {
	switch Frequency(strings.ToLower(s)) {
	case Monthly:
		return Monthly, nil
	case Quarterly:
		return Quarterly, nil
	case Yearly:
		return Yearly, nil
	}
	return "", ErrInvalidFrequency
}

// months returns the calendar-month step for one schedule interval.
func (f Frequency) months() int {
	switch f {
	case Quarterly:
		return 3
	case Yearly:
		return 12
	default:
		return 1
	}
}

// scheduleDates generates the installment/withdrawal dates from start to end
// inclusive, advancing by the frequency step. Each date is derived from the
// start date (start + k*step months) rather than from the previous date, so
// month-end overflow never accumulates across iterations.
func scheduleDates(start, end time.Time, freq Frequency) []time.Time {
	start = nav.Day(start)
	end = nav.Day(end)

	var dates []time.Time
	step := freq.months()
	for k := 0; ; k++ {
		d := nav.AddMonths(start, k*step)
		if d.After(end) {
			break
		}
		dates = append(dates, d)
	}
	return dates
}
