package emotion

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestEndOfDay(t *testing.T) {
	end := EndOfDay(time.Date(2024, 5, 15, 10, 30, 0, 0, time.UTC))
	next := date(2024, time.May, 16)
	if !end.Before(next) {
		t.Error("expected end of day to be before the next midnight")
	}
	if next.Sub(end) != time.Nanosecond {
		t.Errorf("expected end of day one nanosecond before midnight, got %v", next.Sub(end))
	}
}

func TestEligibilityWindow_ClampsToCreation(t *testing.T) {
	created := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	p := &PatientInfo{CreatedAt: created}
	now := time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)

	w := EligibilityWindow(p, Filter{
		StartDate: date(2024, time.May, 1),
		EndDate:   date(2024, time.May, 15),
	}, now)

	if !w.Start.Equal(created) {
		t.Errorf("expected start clamped to creation %v, got %v", created, w.Start)
	}
	if !w.End.Equal(EndOfDay(date(2024, time.May, 15))) {
		t.Errorf("expected end of filter day, got %v", w.End)
	}
}

func TestEligibilityWindow_ClampsToDisable(t *testing.T) {
	created := date(2024, time.May, 1)
	disabledAt := time.Date(2024, 5, 12, 15, 0, 0, 0, time.UTC)
	p := &PatientInfo{CreatedAt: created, UpdatedAt: &disabledAt, Disabled: true}
	now := time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)

	w := EligibilityWindow(p, Filter{
		StartDate: date(2024, time.May, 1),
		EndDate:   date(2024, time.May, 18),
	}, now)

	if !w.End.Equal(disabledAt) {
		t.Errorf("expected end clamped to disable instant %v, got %v", disabledAt, w.End)
	}
}

func TestEligibilityWindow_ClampsToNow(t *testing.T) {
	created := date(2024, time.May, 1)
	p := &PatientInfo{CreatedAt: created}
	now := time.Date(2024, 5, 15, 14, 30, 0, 0, time.UTC)

	w := EligibilityWindow(p, Filter{
		StartDate: date(2024, time.May, 1),
		EndDate:   date(2024, time.May, 31),
	}, now)

	if !w.End.Equal(now) {
		t.Errorf("expected end clamped to now %v, got %v", now, w.End)
	}
}

func TestEligibilityWindow_SameDayDisable(t *testing.T) {
	// Disabled mid-afternoon on the only queried day: the window runs
	// midnight to 13:00, so MORNING and AFTERNOON are expected but not
	// EVENING.
	created := date(2024, time.January, 1)
	disabledAt := time.Date(2024, 1, 1, 13, 0, 0, 0, time.UTC)
	p := &PatientInfo{CreatedAt: created, UpdatedAt: &disabledAt, Disabled: true}
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

	w := EligibilityWindow(p, NewFilter(date(2024, time.January, 1)), now)
	if got := w.ExpectedPeriods(); got != 2 {
		t.Errorf("expected 2 periods, got %d", got)
	}
}

func TestExpectedPeriods_SameDay(t *testing.T) {
	// Morning to afternoon of the same day.
	w := Window{
		Start: time.Date(2024, 5, 15, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 5, 15, 14, 0, 0, 0, time.UTC),
	}
	if got := w.ExpectedPeriods(); got != 2 {
		t.Errorf("expected 2 periods, got %d", got)
	}

	// Whole day: morning start to evening end.
	w = Window{
		Start: date(2024, time.May, 15),
		End:   EndOfDay(date(2024, time.May, 15)),
	}
	if got := w.ExpectedPeriods(); got != 3 {
		t.Errorf("expected 3 periods, got %d", got)
	}
}

func TestExpectedPeriods_MultiDay(t *testing.T) {
	// Three full days: 3*3 = 9. The boundary weights cover the first and
	// last day, the single day between contributes 3.
	w := Window{
		Start: date(2024, time.May, 13),
		End:   EndOfDay(date(2024, time.May, 15)),
	}
	// days=2: (2-1)*3 + MORNING.PeriodsAfter()=3 + EVENING.CountPeriodsBeforeInclusive()=3
	if got := w.ExpectedPeriods(); got != 9 {
		t.Errorf("expected 9 periods, got %d", got)
	}

	// Afternoon start, morning-of-next-day end.
	w = Window{
		Start: time.Date(2024, 5, 14, 13, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 5, 15, 8, 0, 0, 0, time.UTC),
	}
	// (1-1)*3 + AFTERNOON.PeriodsAfter()=2 + MORNING.CountPeriodsBeforeInclusive()=2
	if got := w.ExpectedPeriods(); got != 4 {
		t.Errorf("expected 4 periods, got %d", got)
	}
}

func TestExpectedPeriods_EmptyWindow(t *testing.T) {
	at := time.Date(2024, 5, 15, 9, 0, 0, 0, time.UTC)
	w := Window{Start: at, End: at}
	if got := w.ExpectedPeriods(); got != 0 {
		t.Errorf("expected 0 periods for an empty window, got %d", got)
	}

	w = Window{Start: at, End: at.Add(-time.Hour)}
	if got := w.ExpectedPeriods(); got != 0 {
		t.Errorf("expected 0 periods for an inverted window, got %d", got)
	}
}
