package classes

import (
	"context"

	"class-tracker/app/database"
	"class-tracker/app/models"
	"class-tracker/app/routes/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

// ErrClassNotFound is the response for a class that is absent or owned by someone else.
var ErrClassNotFound = fiber.NewError(fiber.StatusNotFound, "Class not found")

// Getter loads a class scoped by owner.
type Getter interface {
	GetClass(ctx context.Context, id, ownerID int64) (*models.Class, error)
}

// LookupClass returns the class named by the :id route parameter when the
// acting user can see it.
func LookupClass(c *fiber.Ctx, store Getter) (*models.Class, error) {
	id, err := ParamID(c, "id")
	if err != nil {
		return nil, ErrClassNotFound
	}
	class, err := store.GetClass(c.UserContext(), id, auth.OwnerID(c))
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrClassNotFound
	}
	if err != nil {
		return nil, err
	}
	return class, nil
}

// ParamID parses a positive integer route parameter.
func ParamID(c *fiber.Ctx, name string) (int64, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, errors.Errorf("invalid %s parameter", name)
	}
	return int64(id), nil
}
