package classes

import (
	"strings"

	"class-tracker/app/database"
	"class-tracker/app/models"
	"class-tracker/app/routes/auth"
	"class-tracker/app/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

type classForm struct {
	Name   string `form:"name" validate:"required"`
	Day    string `form:"day" validate:"required,weekday"`
	Period string `form:"period" validate:"required,period"`
	Room   string `form:"room" validate:"required"`
}

func (f *classForm) trim() {
	f.Name = strings.TrimSpace(f.Name)
	f.Day = strings.TrimSpace(f.Day)
	f.Period = strings.TrimSpace(f.Period)
	f.Room = strings.TrimSpace(f.Room)
}

func SetupClassesRoutes(app *fiber.App, store database.Classes, requireAuth fiber.Handler) {
	app.Get("/add_class", requireAuth, AddClassPage)
	app.Post("/add_class", requireAuth, func(c *fiber.Ctx) error {
		return CreateClass(c, store)
	})
	app.Get("/edit_class/:id", requireAuth, func(c *fiber.Ctx) error {
		return EditClassPage(c, store)
	})
	app.Post("/edit_class/:id", requireAuth, func(c *fiber.Ctx) error {
		return UpdateClass(c, store)
	})
	app.Post("/delete_class/:id", requireAuth, func(c *fiber.Ctx) error {
		return DeleteClass(c, store)
	})
}

func renderForm(c *fiber.Ctx, status int, title, action string, form classForm, errMsg string) error {
	deleteAction := ""
	if id := c.Params("id"); id != "" {
		deleteAction = "/delete_class/" + id
	}
	return c.Status(status).Render("classes/form", fiber.Map{
		"Title":        title,
		"Action":       action,
		"DeleteAction": deleteAction,
		"Form":         form,
		"Days":         models.Days,
		"Periods":      models.Periods,
		"Error":        errMsg,
	})
}

func AddClassPage(c *fiber.Ctx) error {
	return renderForm(c, fiber.StatusOK, "Add class", "/add_class", classForm{}, "")
}

func CreateClass(c *fiber.Ctx, store database.Classes) error {
	var form classForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request")
	}
	form.trim()
	if err := validation.Struct(form); err != nil {
		return renderForm(c, fiber.StatusBadRequest, "Add class", "/add_class", form, err.Error())
	}

	class := &models.Class{
		Name:    form.Name,
		Day:     form.Day,
		Period:  form.Period,
		Room:    form.Room,
		OwnerID: auth.OwnerID(c),
	}
	if err := store.CreateClass(c.UserContext(), class); err != nil {
		return err
	}
	return c.Redirect("/")
}

func EditClassPage(c *fiber.Ctx, store database.Classes) error {
	class, err := LookupClass(c, store)
	if err != nil {
		return err
	}
	form := classForm{Name: class.Name, Day: class.Day, Period: class.Period, Room: class.Room}
	return renderForm(c, fiber.StatusOK, "Edit "+class.Name, c.Path(), form, "")
}

func UpdateClass(c *fiber.Ctx, store database.Classes) error {
	id, err := ParamID(c, "id")
	if err != nil {
		return ErrClassNotFound
	}

	var form classForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request")
	}
	form.trim()
	if err := validation.Struct(form); err != nil {
		return renderForm(c, fiber.StatusBadRequest, "Edit class", c.Path(), form, err.Error())
	}

	class := &models.Class{
		ID:      id,
		Name:    form.Name,
		Day:     form.Day,
		Period:  form.Period,
		Room:    form.Room,
		OwnerID: auth.OwnerID(c),
	}
	if err := store.UpdateClass(c.UserContext(), class); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrClassNotFound
		}
		return err
	}
	return c.Redirect("/")
}

func DeleteClass(c *fiber.Ctx, store database.Classes) error {
	id, err := ParamID(c, "id")
	if err != nil {
		return ErrClassNotFound
	}

	if err := store.DeleteClass(c.UserContext(), id, auth.OwnerID(c)); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrClassNotFound
		}
		return err
	}
	return c.Redirect("/")
}
