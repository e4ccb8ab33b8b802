package models

// Attendance is a single attendance event for a class. Date and Status are
// stored exactly as submitted.
type Attendance struct {
	ID      int64  `json:"id" db:"id"`
	ClassID int64  `json:"class_id" db:"class_id"`
	Date    string `json:"date" db:"date"`
	Status  string `json:"status" db:"status"`
}

// AttendanceTally counts records per recognised status.
type AttendanceTally struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
	Late    int `json:"late"`
	Records int `json:"records"` // all records, counted or not
}

// Counted is the number of records with a recognised status.
func (t AttendanceTally) Counted() int {
	return t.Present + t.Absent + t.Late
}

// TallyAttendance counts exact matches of the recognised labels.
func TallyAttendance(records []Attendance) AttendanceTally {
	t := AttendanceTally{Records: len(records)}
	for _, r := range records {
		switch AttendanceStatus(r.Status) {
		case Present:
			t.Present++
		case Absent:
			t.Absent++
		case Late:
			t.Late++
		}
	}
	return t
}
