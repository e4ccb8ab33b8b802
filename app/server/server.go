// Package server assembles the fiber application around a store.
package server

import (
	"log"
	"net/http"
	"time"

	"class-tracker/app/config"
	"class-tracker/app/database"
	"class-tracker/app/routes/assignments"
	"class-tracker/app/routes/attendance"
	"class-tracker/app/routes/auth"
	"class-tracker/app/routes/classes"
	"class-tracker/app/routes/evaluations"
	"class-tracker/app/routes/timetable"
	"class-tracker/app/templates"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
)

// customErrorHandler sends client errors as plain text and renders the
// error page for everything else.
func customErrorHandler(c *fiber.Ctx, err error) error {
	// Status code defaults to 500
	code := fiber.StatusInternalServerError
	message := "We're experiencing technical difficulties. Please try again later."

	// Retrieve the custom status code if it's a *fiber.Error
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	if code >= 400 && code < 500 {
		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.Status(code).SendString(message)
	}

	log.Printf("Request %s %s failed: %v", c.Method(), c.Path(), err)
	renderErr := c.Status(code).Render("error", fiber.Map{
		"Title":        "Error",
		"ErrorCode":    code,
		"ErrorTitle":   http.StatusText(code),
		"ErrorMessage": message,
	})
	if renderErr != nil {
		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.Status(code).SendString(message)
	}
	return nil
}

func newEngine() *html.Engine {
	engine := html.NewFileSystem(http.FS(templates.FS), ".html")
	engine.Debug(false)
	return engine
}

func requestLogger() fiber.Handler {
	return logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${ip} - ${method} ${path} - ${status} - ${latency}\n",
	})
}

// New builds the application around store. The store outlives the app and is
// closed by the caller.
func New(cfg *config.Config, store database.Store) *fiber.App {
	app := fiber.New(fiber.Config{
		Views:             newEngine(),
		ViewsLayout:       "layouts/main",
		PassLocalsToViews: true,
		ErrorHandler:      customErrorHandler,
		// Handlers hand form values to the in-memory store, which keeps them.
		Immutable: true,
	})

	// Middleware
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(requestLogger())
	app.Use(cors.New())

	// Static files
	app.Use("/static", filesystem.New(filesystem.Config{
		Root:       http.FS(templates.FS),
		PathPrefix: "static",
		MaxAge:     3600,
	}))

	identity := auth.NewIdentity(cfg, store, store)
	identity.SetupAuthRoutes(app)
	requireAuth := identity.Middleware

	loc := cfg.Timezone
	if loc == nil {
		loc = time.Local
	}

	timetable.SetupTimetableRoutes(app, store, requireAuth, loc)
	classes.SetupClassesRoutes(app, store, requireAuth)
	attendance.SetupAttendanceRoutes(app, store, requireAuth)
	evaluations.SetupEvaluationRoutes(app, store, requireAuth)
	assignments.SetupAssignmentRoutes(app, store, requireAuth)

	// Catch-all route for 404 errors (must be last)
	app.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Page not found")
	})

	return app
}
