package models

// Class is one timetable entry. OwnerID is zero for classes created in single-tenant mode.
type Class struct {
	ID      int64  `json:"id" db:"id"`
	Name    string `json:"name" db:"name"`
	Day     string `json:"day" db:"day"`
	Period  string `json:"period" db:"period"`
	Room    string `json:"room" db:"room"`
	OwnerID int64  `json:"owner_id,omitempty" db:"user_id"`
}
