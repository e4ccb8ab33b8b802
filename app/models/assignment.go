package models

import "time"

// DeadlineLayout is the format of Assignment.Deadline. Month and day may be
// written with or without a leading zero.
const DeadlineLayout = "2006-1-2"

type Assignment struct {
	ID        int64  `json:"id" db:"id"`
	ClassID   int64  `json:"class_id" db:"class_id"`
	Title     string `json:"title" db:"title"`
	Deadline  string `json:"deadline" db:"deadline"`
	Submitted bool   `json:"submitted" db:"submitted"`
	Note      string `json:"note" db:"note"`
}

// Overdue reports whether the assignment is unsubmitted and its deadline is a
// calendar date strictly before today's date in loc. A deadline that does not
// parse is never overdue.
func (a *Assignment) Overdue(now time.Time, loc *time.Location) bool {
	if a.Submitted || a.Deadline == "" {
		return false
	}
	d, err := time.ParseInLocation(DeadlineLayout, a.Deadline, loc)
	if err != nil {
		return false
	}
	y, m, day := now.In(loc).Date()
	today := time.Date(y, m, day, 0, 0, 0, 0, loc)
	return d.Before(today)
}
