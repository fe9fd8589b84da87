package emotion

import "time"

// Grid is the three-level report structure: date → patient name → period →
// record (nil for an empty slot). Renderers consume it as a full table,
// empty cells included.
type Grid map[string]map[string]map[string]*RecordDTO

const gridDateLayout = "2006-01-02"

// BuildGrid pre-populates a cell with three empty period slots for every
// (date, patient) combination where the patient could have reported, then
// overlays the actual records. Dates with no eligible patients are omitted.
func BuildGrid(records []*RecordDTO, f Filter, patients []*PatientInfo, today time.Time) Grid {
	grid := make(Grid)
	for _, date := range datesDesc(f, today) {
		dateMap := make(map[string]map[string]*RecordDTO)
		for _, p := range patients {
			if mayHaveRecordOnDate(p, date) {
				dateMap[p.Name] = map[string]*RecordDTO{
					string(PeriodMorning):   nil,
					string(PeriodAfternoon): nil,
					string(PeriodEvening):   nil,
				}
			}
		}
		if len(dateMap) > 0 {
			grid[date.Format(gridDateLayout)] = dateMap
		}
	}

	for _, r := range records {
		day := r.CreatedAt.Format(gridDateLayout)
		dateMap, ok := grid[day]
		if !ok {
			dateMap = make(map[string]map[string]*RecordDTO)
			grid[day] = dateMap
		}
		periodMap, ok := dateMap[r.PatientName]
		if !ok {
			periodMap = make(map[string]*RecordDTO)
			dateMap[r.PatientName] = periodMap
		}
		periodMap[string(r.Period)] = r
	}
	return grid
}

// datesDesc enumerates the filter's calendar dates newest first, capped at
// today so future dates never produce rows.
func datesDesc(f Filter, today time.Time) []time.Time {
	end := StartOfDay(f.EndDate)
	if t := StartOfDay(today); end.After(t) {
		end = t
	}
	start := StartOfDay(f.StartDate)

	var dates []time.Time
	for d := end; !d.Before(start); d = d.AddDate(0, 0, -1) {
		dates = append(dates, d)
	}
	return dates
}

// mayHaveRecordOnDate reports whether the patient was still active on the
// given date. The disable instant is compared against the -1ns end-of-day
// representation, so a patient disabled exactly at the following midnight
// still counts for that day.
func mayHaveRecordOnDate(p *PatientInfo, date time.Time) bool {
	return !p.Disabled || p.UpdatedAt == nil || p.UpdatedAt.After(EndOfDay(date))
}
