package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAssignmentOverdue(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, 4, 15, 9, 30, 0, 0, loc)

	tests := []struct {
		name string
		a    Assignment
		want bool
	}{
		{name: "yesterday", a: Assignment{Deadline: "2026-04-14"}, want: true},
		{name: "today", a: Assignment{Deadline: "2026-04-15"}, want: false},
		{name: "tomorrow", a: Assignment{Deadline: "2026-04-16"}, want: false},
		{name: "submitted", a: Assignment{Deadline: "2026-04-01", Submitted: true}, want: false},
		{name: "empty", a: Assignment{Deadline: ""}, want: false},
		{name: "malformed", a: Assignment{Deadline: "next friday"}, want: false},
		{name: "wrong layout", a: Assignment{Deadline: "14/04/2026"}, want: false},
		{name: "unpadded past", a: Assignment{Deadline: "2026-4-5"}, want: true},
		{name: "unpadded today", a: Assignment{Deadline: "2026-4-15"}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overdue(now, loc))
		})
	}
}

func TestAssignmentOverdueUsesLocalDate(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	// 20:00 UTC on the 14th is already the 15th in Tokyo.
	now := time.Date(2026, 4, 14, 20, 0, 0, 0, time.UTC)
	a := Assignment{Deadline: "2026-04-14"}

	assert.True(t, a.Overdue(now, tokyo))
	assert.False(t, a.Overdue(now, time.UTC))
}

func TestTallyAttendance(t *testing.T) {
	var records []Attendance
	for _, s := range []string{"present", "absent", "present", "late", "bogus"} {
		records = append(records, Attendance{Status: s})
	}

	tally := TallyAttendance(records)
	assert.Equal(t, 2, tally.Present)
	assert.Equal(t, 1, tally.Absent)
	assert.Equal(t, 1, tally.Late)
	assert.Equal(t, 4, tally.Counted())
	assert.Equal(t, 5, tally.Records)
	assert.Less(t, tally.Counted(), tally.Records)
}

func TestTotalPercentage(t *testing.T) {
	evals := []Evaluation{{Percentage: 60}, {Percentage: 30}, {Percentage: 30}}
	assert.Equal(t, 120, TotalPercentage(evals))
	assert.Zero(t, TotalPercentage(nil))
}

func TestParseQueryValues(t *testing.T) {
	assert.Equal(t, Asc, ParseSortOrder("asc"))
	assert.Equal(t, Desc, ParseSortOrder("desc"))
	assert.Equal(t, Desc, ParseSortOrder(""))
	assert.Equal(t, Desc, ParseSortOrder("ASC"))

	assert.Equal(t, ModeAll, ParseAssignmentMode("all"))
	assert.Equal(t, ModeUnsubmitted, ParseAssignmentMode(""))
	assert.Equal(t, ModeUnsubmitted, ParseAssignmentMode("unsubmitted"))
	assert.Equal(t, ModeUnsubmitted, ParseAssignmentMode("anything"))
}

func TestSessionExpired(t *testing.T) {
	now := time.Now()
	s := Session{ExpiresAt: now.Add(time.Minute)}
	assert.False(t, s.Expired(now))
	assert.True(t, s.Expired(now.Add(time.Minute)))
}
