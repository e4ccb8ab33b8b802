package timetable

import (
	"context"
	"time"

	"class-tracker/app/models"
	"class-tracker/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

// Store is what the timetable page reads.
type Store interface {
	ListClasses(ctx context.Context, ownerID int64) ([]models.Class, error)
	ListUnsubmittedAssignments(ctx context.Context, ownerID int64) ([]models.Assignment, error)
}

func SetupTimetableRoutes(app *fiber.App, store Store, requireAuth fiber.Handler, loc *time.Location) {
	app.Get("/", requireAuth, func(c *fiber.Ctx) error {
		return TimetableIndexPage(c, store, loc)
	})
}

func TimetableIndexPage(c *fiber.Ctx, store Store, loc *time.Location) error {
	ctx := c.UserContext()
	owner := auth.OwnerID(c)

	classes, err := store.ListClasses(ctx, owner)
	if err != nil {
		return err
	}
	pending, err := store.ListUnsubmittedAssignments(ctx, owner)
	if err != nil {
		return err
	}

	grid := BuildTimetable(classes, pending, time.Now(), loc)
	return c.Render("index", fiber.Map{
		"Title":     "Timetable",
		"timetable": grid,
	})
}
