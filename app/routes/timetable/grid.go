package timetable

import (
	"sort"
	"time"

	"class-tracker/app/models"
)

type classStatus struct {
	unsubmitted int
	overdue     bool
}

// BuildTimetable lays classes out on the weekly grid. pending must hold the
// unsubmitted assignments of those classes. Classes are placed in id order, so
// when two share a slot the later-inserted one is shown and the earlier one is
// listed in Hidden.
func BuildTimetable(classes []models.Class, pending []models.Assignment, now time.Time, loc *time.Location) models.Timetable {
	status := make(map[int64]*classStatus, len(classes))
	for i := range pending {
		a := &pending[i]
		if a.Submitted {
			continue
		}
		st, ok := status[a.ClassID]
		if !ok {
			st = &classStatus{}
			status[a.ClassID] = st
		}
		st.unsubmitted++
		if a.Overdue(now, loc) {
			st.overdue = true
		}
	}

	dayIndex := make(map[string]int, len(models.Days))
	for i, d := range models.Days {
		dayIndex[string(d)] = i
	}
	periodIndex := make(map[string]int, len(models.Periods))
	for i, p := range models.Periods {
		periodIndex[p] = i
	}

	grid := models.Timetable{
		Days: models.Days,
		Rows: make([]models.TimetableRow, len(models.Periods)),
	}
	for i, p := range models.Periods {
		grid.Rows[i] = models.TimetableRow{Period: p, Cells: make([]*models.TimetableCell, len(models.Days))}
	}

	ordered := make([]models.Class, len(classes))
	copy(ordered, classes)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	for _, class := range ordered {
		cell := &models.TimetableCell{Class: class}
		if st, ok := status[class.ID]; ok {
			cell.Unsubmitted = st.unsubmitted
			cell.Overdue = st.overdue
		}

		di, dok := dayIndex[class.Day]
		pi, pok := periodIndex[class.Period]
		if !dok || !pok {
			grid.Hidden = append(grid.Hidden, *cell)
			continue
		}
		if prev := grid.Rows[pi].Cells[di]; prev != nil {
			grid.Hidden = append(grid.Hidden, *prev)
		}
		grid.Rows[pi].Cells[di] = cell
	}
	return grid
}
