package models

// AttendanceStatus defines the recognised attendance labels. Other values may be
// stored but are not counted in a tally.
type AttendanceStatus string

const (
	Present AttendanceStatus = "present"
	Absent  AttendanceStatus = "absent"
	Late    AttendanceStatus = "late"
)

// AttendanceStatuses lists the recognised labels in display order.
var AttendanceStatuses = []AttendanceStatus{Present, Absent, Late}

// DayOfWeek defines the weekday labels of the timetable grid.
type DayOfWeek string

const (
	Monday    DayOfWeek = "Monday"
	Tuesday   DayOfWeek = "Tuesday"
	Wednesday DayOfWeek = "Wednesday"
	Thursday  DayOfWeek = "Thursday"
	Friday    DayOfWeek = "Friday"
)

// Days lists the grid columns in display order.
var Days = []DayOfWeek{Monday, Tuesday, Wednesday, Thursday, Friday}

// Periods lists the grid rows in display order.
var Periods = []string{"1", "2", "3", "4", "5", "6"}

// AssignmentMode selects which assignments an assignment listing shows.
type AssignmentMode string

const (
	ModeUnsubmitted AssignmentMode = "unsubmitted"
	ModeAll         AssignmentMode = "all"
)

// ParseAssignmentMode maps a query value to a mode; anything but "all" is unsubmitted.
func ParseAssignmentMode(s string) AssignmentMode {
	if AssignmentMode(s) == ModeAll {
		return ModeAll
	}
	return ModeUnsubmitted
}

// SortOrder is the direction of an attendance listing.
type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

// ParseSortOrder maps a query value to an order; anything but "asc" is descending.
func ParseSortOrder(s string) SortOrder {
	if SortOrder(s) == Asc {
		return Asc
	}
	return Desc
}

// IsDay reports whether s is one of the grid weekday labels.
func IsDay(s string) bool {
	for _, d := range Days {
		if string(d) == s {
			return true
		}
	}
	return false
}

// IsPeriod reports whether s is one of the grid period labels.
func IsPeriod(s string) bool {
	for _, p := range Periods {
		if p == s {
			return true
		}
	}
	return false
}
