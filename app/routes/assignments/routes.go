package assignments

import (
	"context"
	"fmt"
	"strings"

	"class-tracker/app/database"
	"class-tracker/app/models"
	"class-tracker/app/routes/auth"
	"class-tracker/app/routes/classes"
	"class-tracker/app/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

// Store is what the assignment page reads and writes.
type Store interface {
	classes.Getter
	CreateAssignment(ctx context.Context, a *models.Assignment) error
	ListAssignments(ctx context.Context, classID int64, mode models.AssignmentMode) ([]models.Assignment, error)
	ToggleAssignment(ctx context.Context, classID, assignmentID, ownerID int64) (bool, error)
	DeleteAssignment(ctx context.Context, classID, assignmentID, ownerID int64) error
}

var errAssignmentNotFound = fiber.NewError(fiber.StatusNotFound, "Assignment not found")

type assignmentForm struct {
	Title    string `form:"title" validate:"required"`
	Deadline string `form:"deadline" validate:"required"`
	Note     string `form:"note"`
}

func SetupAssignmentRoutes(app *fiber.App, store Store, requireAuth fiber.Handler) {
	app.Get("/class/:id/assignments", requireAuth, func(c *fiber.Ctx) error {
		return AssignmentsPage(c, store)
	})
	app.Post("/class/:id/assignments", requireAuth, func(c *fiber.Ctx) error {
		return AddAssignment(c, store)
	})
	app.Post("/class/:id/assignments/toggle/:aid", requireAuth, func(c *fiber.Ctx) error {
		return ToggleSubmission(c, store)
	})
	app.Post("/class/:id/assignments/delete/:aid", requireAuth, func(c *fiber.Ctx) error {
		return DeleteAssignment(c, store)
	})
}

func AssignmentsPage(c *fiber.Ctx, store Store) error {
	class, err := classes.LookupClass(c, store)
	if err != nil {
		return err
	}
	return renderAssignments(c, store, class)
}

// AddAssignment creates an unsubmitted assignment. The deadline is kept as
// typed; one that is not YYYY-MM-DD is simply never flagged overdue.
func AddAssignment(c *fiber.Ctx, store Store) error {
	class, err := classes.LookupClass(c, store)
	if err != nil {
		return err
	}

	var form assignmentForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request")
	}
	form.Title = strings.TrimSpace(form.Title)
	form.Deadline = strings.TrimSpace(form.Deadline)
	if err := validation.Struct(form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	a := &models.Assignment{
		ClassID:  class.ID,
		Title:    form.Title,
		Deadline: form.Deadline,
		Note:     form.Note,
	}
	if err := store.CreateAssignment(c.UserContext(), a); err != nil {
		return err
	}
	return renderAssignments(c, store, class)
}

func ToggleSubmission(c *fiber.Ctx, store Store) error {
	classID, assignmentID, err := assignmentParams(c)
	if err != nil {
		return err
	}

	if _, err := store.ToggleAssignment(c.UserContext(), classID, assignmentID, auth.OwnerID(c)); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return errAssignmentNotFound
		}
		return err
	}
	return c.Redirect(listURL(c, classID))
}

func DeleteAssignment(c *fiber.Ctx, store Store) error {
	classID, assignmentID, err := assignmentParams(c)
	if err != nil {
		return err
	}

	if err := store.DeleteAssignment(c.UserContext(), classID, assignmentID, auth.OwnerID(c)); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return errAssignmentNotFound
		}
		return err
	}
	return c.Redirect(listURL(c, classID))
}

func assignmentParams(c *fiber.Ctx) (classID, assignmentID int64, err error) {
	classID, err = classes.ParamID(c, "id")
	if err != nil {
		return 0, 0, classes.ErrClassNotFound
	}
	assignmentID, err = classes.ParamID(c, "aid")
	if err != nil {
		return 0, 0, errAssignmentNotFound
	}
	return classID, assignmentID, nil
}

// listURL returns to the listing, keeping the "all" view if the form asked for it.
func listURL(c *fiber.Ctx, classID int64) string {
	mode := c.Query("mode", c.FormValue("mode"))
	if models.ParseAssignmentMode(mode) == models.ModeAll {
		return fmt.Sprintf("/class/%d/assignments?mode=all", classID)
	}
	return fmt.Sprintf("/class/%d/assignments", classID)
}

func renderAssignments(c *fiber.Ctx, store Store, class *models.Class) error {
	mode := models.ParseAssignmentMode(c.Query("mode"))
	list, err := store.ListAssignments(c.UserContext(), class.ID, mode)
	if err != nil {
		return err
	}
	return c.Render("assignments", fiber.Map{
		"Title":       "Assignments - " + class.Name,
		"class":       class,
		"assignments": list,
		"mode":        string(mode),
	})
}
