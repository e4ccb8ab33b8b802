package attendance

import (
	"context"

	"class-tracker/app/models"
	"class-tracker/app/routes/classes"

	"github.com/gofiber/fiber/v2"
)

// Store is what the attendance page reads and writes.
type Store interface {
	classes.Getter
	CreateAttendance(ctx context.Context, record *models.Attendance) error
	ListAttendance(ctx context.Context, classID int64, order models.SortOrder) ([]models.Attendance, error)
}

func SetupAttendanceRoutes(app *fiber.App, store Store, requireAuth fiber.Handler) {
	app.Get("/class/:id/attendance", requireAuth, func(c *fiber.Ctx) error {
		return AttendancePage(c, store)
	})
	app.Post("/class/:id/attendance", requireAuth, func(c *fiber.Ctx) error {
		return RecordAttendance(c, store)
	})
}

// RecordAttendance appends one record as submitted. Date and status are not
// checked; a status outside the recognised labels is stored and listed but
// left out of the tally.
func RecordAttendance(c *fiber.Ctx, store Store) error {
	class, err := classes.LookupClass(c, store)
	if err != nil {
		return err
	}

	record := &models.Attendance{
		ClassID: class.ID,
		Date:    c.FormValue("date"),
		Status:  c.FormValue("status"),
	}
	if err := store.CreateAttendance(c.UserContext(), record); err != nil {
		return err
	}
	return renderAttendance(c, store, class)
}

func AttendancePage(c *fiber.Ctx, store Store) error {
	class, err := classes.LookupClass(c, store)
	if err != nil {
		return err
	}
	return renderAttendance(c, store, class)
}

func renderAttendance(c *fiber.Ctx, store Store, class *models.Class) error {
	order := models.ParseSortOrder(c.Query("order"))
	records, err := store.ListAttendance(c.UserContext(), class.ID, order)
	if err != nil {
		return err
	}

	return c.Render("attendance", fiber.Map{
		"Title":    "Attendance - " + class.Name,
		"class":    class,
		"records":  records,
		"tally":    models.TallyAttendance(records),
		"order":    string(order),
		"statuses": models.AttendanceStatuses,
	})
}
