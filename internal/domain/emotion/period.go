package emotion

import (
	"fmt"
	"strings"
	"time"
)

// Period is one of the three fixed daily reporting windows. The three spans
// partition the 24-hour day with no gaps or overlaps.
type Period string

const (
	PeriodMorning   Period = "MORNING"
	PeriodAfternoon Period = "AFTERNOON"
	PeriodEvening   Period = "EVENING"
)

// Periods returns all periods in day order.
func Periods() []Period {
	return []Period{PeriodMorning, PeriodAfternoon, PeriodEvening}
}

// PeriodNames returns a comma-separated list of all period names.
func PeriodNames() string {
	names := make([]string, 0, 3)
	for _, p := range Periods() {
		names = append(names, string(p))
	}
	return strings.Join(names, ", ")
}

// ParsePeriod converts a string into a Period, case-insensitively.
func ParsePeriod(s string) (Period, error) {
	switch Period(strings.ToUpper(s)) {
	case PeriodMorning:
		return PeriodMorning, nil
	case PeriodAfternoon:
		return PeriodAfternoon, nil
	case PeriodEvening:
		return PeriodEvening, nil
	default:
		return "", fmt.Errorf("invalid period %q, valid periods: %s", s, PeriodNames())
	}
}

// ClassifyTime returns the period whose span contains the wall-clock time of t.
// MORNING covers [00:00,12:00), AFTERNOON [12:00,17:00); everything else is
// EVENING, whose span wraps past midnight so it cannot be checked by naive
// range containment.
func ClassifyTime(t time.Time) Period {
	switch h := t.Hour(); {
	case h < 12:
		return PeriodMorning
	case h < 17:
		return PeriodAfternoon
	default:
		return PeriodEvening
	}
}

// StartClock returns the wall-clock hour at which the period begins.
func (p Period) StartClock() int {
	switch p {
	case PeriodAfternoon:
		return 12
	case PeriodEvening:
		return 17
	default:
		return 0
	}
}

// PeriodsAfter counts the periods from p through the end of its day,
// inclusive: MORNING=3, AFTERNOON=2, EVENING=1.
func (p Period) PeriodsAfter() int {
	switch p {
	case PeriodMorning:
		return 3
	case PeriodAfternoon:
		return 2
	default:
		return 1
	}
}

// CountPeriodsBeforeInclusive is the weight used for the end day of a
// multi-day range: the maximum PeriodsAfter among the other two periods
// (MORNING=2, AFTERNOON=3, EVENING=3). Range totals across call sites depend
// on this exact table.
func (p Period) CountPeriodsBeforeInclusive() int {
	max := 0
	for _, q := range Periods() {
		if q == p {
			continue
		}
		if n := q.PeriodsAfter(); n > max {
			max = n
		}
	}
	return max
}

// CountDayPeriodsBetween counts periods from p through q inclusive when both
// fall on the same calendar day.
func (p Period) CountDayPeriodsBetween(q Period) int {
	if p == q {
		return 1
	}
	d := p.PeriodsAfter() - q.PeriodsAfter()
	if d < 0 {
		d = -d
	}
	return d + 1
}
