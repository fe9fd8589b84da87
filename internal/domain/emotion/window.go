package emotion

import "time"

// StartOfDay returns midnight at the start of t's calendar day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the canonical inclusive end-of-day instant: the start of
// the next day minus one nanosecond. Stored timestamps are compared against
// this representation everywhere, so date-range queries stay boundary-correct.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// Window is the effective instant range a patient can be expected to have
// reported in.
type Window struct {
	Start time.Time
	End   time.Time
}

// EligibilityWindow clamps the requested calendar date range to the patient's
// lifecycle: the start never precedes account creation, the end never exceeds
// the disable instant (for disabled patients) or now.
func EligibilityWindow(p *PatientInfo, f Filter, now time.Time) Window {
	start := StartOfDay(f.StartDate)
	if p.CreatedAt.After(start) {
		start = p.CreatedAt
	}

	end := EndOfDay(f.EndDate)
	if p.Disabled && p.UpdatedAt != nil && end.After(*p.UpdatedAt) {
		end = *p.UpdatedAt
	}
	if end.After(now) {
		end = now
	}

	return Window{Start: start, End: end}
}

// ExpectedPeriods counts the reporting periods contained in the window. Full
// days strictly between the boundary dates contribute three periods each; the
// boundary days contribute according to the period weights.
func (w Window) ExpectedPeriods() int {
	if !w.End.After(w.Start) {
		return 0
	}

	startPeriod := ClassifyTime(w.Start)
	endPeriod := ClassifyTime(w.End)

	days := daysBetween(w.Start, w.End)
	if days == 0 {
		return startPeriod.CountDayPeriodsBetween(endPeriod)
	}

	count := (days - 1) * 3
	count += startPeriod.PeriodsAfter()
	count += endPeriod.CountPeriodsBeforeInclusive()
	return count
}

// daysBetween counts calendar days from a's date to b's date. Dates are
// normalized to UTC midnights so the division is DST-safe.
func daysBetween(a, b time.Time) int {
	am := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bm := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bm.Sub(am) / (24 * time.Hour))
}
