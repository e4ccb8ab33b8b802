package evaluations

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"class-tracker/app/database"
	"class-tracker/app/models"
	"class-tracker/app/routes/auth"
	"class-tracker/app/routes/classes"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

// Store is what the evaluation page reads and writes.
type Store interface {
	classes.Getter
	CreateEvaluation(ctx context.Context, eval *models.Evaluation) error
	ListEvaluations(ctx context.Context, classID int64) ([]models.Evaluation, error)
	DeleteEvaluation(ctx context.Context, classID, evalID, ownerID int64) error
}

var errEvaluationNotFound = fiber.NewError(fiber.StatusNotFound, "Evaluation not found")

func SetupEvaluationRoutes(app *fiber.App, store Store, requireAuth fiber.Handler) {
	app.Get("/class/:id/evaluation", requireAuth, func(c *fiber.Ctx) error {
		return EvaluationPage(c, store)
	})
	app.Post("/class/:id/evaluation", requireAuth, func(c *fiber.Ctx) error {
		return AddEvaluation(c, store)
	})
	app.Post("/class/:id/evaluation/delete/:eval_id", requireAuth, func(c *fiber.Ctx) error {
		return DeleteEvaluation(c, store)
	})
}

func EvaluationPage(c *fiber.Ctx, store Store) error {
	class, err := classes.LookupClass(c, store)
	if err != nil {
		return err
	}
	return renderEvaluations(c, store, class)
}

// AddEvaluation stores one weighting. The total across a class is shown but
// not limited.
func AddEvaluation(c *fiber.Ctx, store Store) error {
	class, err := classes.LookupClass(c, store)
	if err != nil {
		return err
	}

	method := strings.TrimSpace(c.FormValue("method"))
	raw := strings.TrimSpace(c.FormValue("percentage"))
	if method == "" || raw == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Method and percentage are required")
	}
	// The column is a 32-bit INTEGER.
	percentage, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Percentage must be a whole number")
	}

	eval := &models.Evaluation{ClassID: class.ID, Method: method, Percentage: int(percentage)}
	if err := store.CreateEvaluation(c.UserContext(), eval); err != nil {
		return err
	}
	return renderEvaluations(c, store, class)
}

func DeleteEvaluation(c *fiber.Ctx, store Store) error {
	classID, err := classes.ParamID(c, "id")
	if err != nil {
		return classes.ErrClassNotFound
	}
	evalID, err := classes.ParamID(c, "eval_id")
	if err != nil {
		return errEvaluationNotFound
	}

	if err := store.DeleteEvaluation(c.UserContext(), classID, evalID, auth.OwnerID(c)); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return errEvaluationNotFound
		}
		return err
	}
	return c.Redirect(fmt.Sprintf("/class/%d/evaluation", classID))
}

func renderEvaluations(c *fiber.Ctx, store Store, class *models.Class) error {
	evals, err := store.ListEvaluations(c.UserContext(), class.ID)
	if err != nil {
		return err
	}
	return c.Render("evaluation", fiber.Map{
		"Title":       "Evaluation - " + class.Name,
		"class":       class,
		"evaluations": evals,
		"total":       models.TotalPercentage(evals),
	})
}
