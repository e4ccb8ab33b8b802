package models

// TimetableCell is the rendered content of one occupied grid slot.
type TimetableCell struct {
	Class       Class `json:"class"`
	Unsubmitted int   `json:"unsubmitted"`
	Overdue     bool  `json:"overdue"`
}

// TimetableRow is one period across all weekdays. Cells[i] is nil when Days[i] is free.
type TimetableRow struct {
	Period string           `json:"period"`
	Cells  []*TimetableCell `json:"cells"`
}

// Timetable is the 5×6 weekly grid.
type Timetable struct {
	Days []DayOfWeek    `json:"days"`
	Rows []TimetableRow `json:"rows"`
	// Hidden holds classes missing from the grid: displaced from their slot by
	// a later class, or carrying a day or period the grid does not have.
	Hidden []TimetableCell `json:"hidden,omitempty"`
}

// Cell returns the occupant of (day, period), or nil.
func (t Timetable) Cell(day DayOfWeek, period string) *TimetableCell {
	for _, row := range t.Rows {
		if row.Period != period {
			continue
		}
		for i, d := range t.Days {
			if d == day {
				return row.Cells[i]
			}
		}
	}
	return nil
}
