package timetable

import (
	"testing"
	"time"

	"class-tracker/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 4, 15, 10, 0, 0, 0, time.UTC)

func TestBuildTimetableEmpty(t *testing.T) {
	grid := BuildTimetable(nil, nil, now, time.UTC)

	require.Len(t, grid.Days, 5)
	require.Len(t, grid.Rows, 6)
	for _, row := range grid.Rows {
		require.Len(t, row.Cells, 5)
		for _, cell := range row.Cells {
			assert.Nil(t, cell)
		}
	}
	assert.Empty(t, grid.Hidden)
}

func TestBuildTimetableCounts(t *testing.T) {
	classes := []models.Class{
		{ID: 1, Name: "Math", Day: "Monday", Period: "1", Room: "101"},
		{ID: 2, Name: "History", Day: "Wednesday", Period: "4", Room: "202"},
		{ID: 3, Name: "Music", Day: "Friday", Period: "6", Room: "Hall"},
	}
	pending := []models.Assignment{
		{ID: 10, ClassID: 1, Deadline: "2026-04-20"},
		{ID: 11, ClassID: 1, Deadline: "2026-04-14"},
		{ID: 12, ClassID: 2, Deadline: "2026-04-20"},
		{ID: 13, ClassID: 2, Deadline: "not a date"},
		{ID: 14, ClassID: 2, Deadline: "2026-04-15"},
	}

	grid := BuildTimetable(classes, pending, now, time.UTC)

	math := grid.Cell(models.Monday, "1")
	require.NotNil(t, math)
	assert.Equal(t, "Math", math.Class.Name)
	assert.Equal(t, 2, math.Unsubmitted)
	assert.True(t, math.Overdue)

	history := grid.Cell(models.Wednesday, "4")
	require.NotNil(t, history)
	assert.Equal(t, 3, history.Unsubmitted)
	assert.False(t, history.Overdue, "malformed and same-day deadlines are not overdue")

	music := grid.Cell(models.Friday, "6")
	require.NotNil(t, music)
	assert.Zero(t, music.Unsubmitted)
	assert.False(t, music.Overdue)

	assert.Nil(t, grid.Cell(models.Tuesday, "1"))
}

func TestBuildTimetableIgnoresSubmitted(t *testing.T) {
	classes := []models.Class{{ID: 1, Name: "Math", Day: "Monday", Period: "1"}}
	pending := []models.Assignment{{ID: 10, ClassID: 1, Deadline: "2020-01-01", Submitted: true}}

	cell := BuildTimetable(classes, pending, now, time.UTC).Cell(models.Monday, "1")
	require.NotNil(t, cell)
	assert.Zero(t, cell.Unsubmitted)
	assert.False(t, cell.Overdue)
}

func TestBuildTimetableCollisionKeepsLaterClass(t *testing.T) {
	classes := []models.Class{
		{ID: 5, Name: "Later", Day: "Tuesday", Period: "2"},
		{ID: 2, Name: "Earlier", Day: "Tuesday", Period: "2"},
	}

	grid := BuildTimetable(classes, nil, now, time.UTC)

	cell := grid.Cell(models.Tuesday, "2")
	require.NotNil(t, cell)
	assert.Equal(t, "Later", cell.Class.Name)
	require.Len(t, grid.Hidden, 1)
	assert.Equal(t, "Earlier", grid.Hidden[0].Class.Name)
}

func TestBuildTimetableUnknownSlot(t *testing.T) {
	classes := []models.Class{{ID: 1, Name: "Weekend", Day: "Saturday", Period: "1"}}

	grid := BuildTimetable(classes, nil, now, time.UTC)
	require.Len(t, grid.Hidden, 1)
	assert.Equal(t, "Weekend", grid.Hidden[0].Class.Name)
}
