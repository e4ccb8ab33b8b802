package auth

import (
	"context"
	"log"
	"time"

	"class-tracker/app/config"
	"class-tracker/app/database"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// Locals keys set by the identity middleware.
const (
	localUserID   = "user_id"
	localUsername = "username"
)

// Identity gates the protected routes and decides which owner a request acts for.
type Identity interface {
	// SetupAuthRoutes registers the public identity pages, if any.
	SetupAuthRoutes(app *fiber.App)
	// Middleware admits or redirects a request and sets the acting owner.
	Middleware(c *fiber.Ctx) error
}

// NewIdentity returns the login-backed identity, or the single-tenant one when
// logins are disabled in cfg.
func NewIdentity(cfg *config.Config, users database.Users, sessions database.Sessions) Identity {
	if !cfg.LoginEnabled() {
		return SingleTenant{}
	}
	// Unknown usernames are checked against this hash so they cost the same as a wrong password.
	dummy, err := HashPassword(GenerateSessionID().String(), cfg.Auth.BcryptCost)
	if err != nil {
		log.Printf("Warning: failed to prepare dummy password hash: %v", err)
	}
	return &SessionAuth{
		users:     users,
		sessions:  sessions,
		cfg:       cfg.Auth,
		now:       time.Now,
		dummyHash: dummy,
	}
}

// noOwner is what OwnerID reports when no identity middleware ran. No row has it.
const noOwner int64 = -1

// OwnerID returns the user the request acts for, or database.Unscoped in single-tenant mode.
func OwnerID(c *fiber.Ctx) int64 {
	id, ok := c.Locals(localUserID).(int64)
	if !ok {
		return noOwner
	}
	return id
}

// SingleTenant admits every request and scopes nothing.
type SingleTenant struct{}

func (SingleTenant) SetupAuthRoutes(*fiber.App) {}

func (SingleTenant) Middleware(c *fiber.Ctx) error {
	c.Locals(localUserID, database.Unscoped)
	return c.Next()
}

// SessionAuth authenticates with a signed cookie bound to a session row.
type SessionAuth struct {
	users    database.Users
	sessions database.Sessions
	cfg      config.AuthConfig
	now      func() time.Time

	dummyHash string
}

func (a *SessionAuth) SetupAuthRoutes(app *fiber.App) {
	app.Get("/login", a.ShowLoginPage)
	app.Post("/login", LoginRateLimiter(), a.LoginAPI)
	app.Get("/register", a.ShowRegisterPage)
	app.Post("/register", RegisterRateLimiter(), a.RegisterAPI)
	app.Get("/logout", a.LogoutAPI)
	app.Post("/logout", a.LogoutAPI)
}

func (a *SessionAuth) ShowLoginPage(c *fiber.Ctx) error {
	// Check if already logged in
	if _, err := a.authenticate(c); err == nil {
		return c.Redirect("/")
	}
	return renderLogin(c, fiber.StatusOK, "", "")
}

func (a *SessionAuth) ShowRegisterPage(c *fiber.Ctx) error {
	return renderRegister(c, fiber.StatusOK, "", "")
}

// Middleware validates the session cookie and sets the user context.
func (a *SessionAuth) Middleware(c *fiber.Ctx) error {
	claims, err := a.authenticate(c)
	if err != nil {
		return c.Redirect("/login")
	}

	c.Locals(localUserID, claims.UserID)
	c.Locals(localUsername, claims.Username)
	return c.Next()
}

// authenticate accepts a request whose cookie is signed, unexpired, and whose
// session row is still present.
func (a *SessionAuth) authenticate(c *fiber.Ctx) (*JWTClaims, error) {
	tokenString := c.Cookies(cookieName)
	if tokenString == "" {
		return nil, database.ErrNotFound
	}

	claims, err := ValidateJWT(a.cfg.JWTSecret, tokenString)
	if err != nil {
		return nil, err
	}

	session, err := a.sessions.GetSessionByID(c.UserContext(), claims.ID)
	if err != nil {
		return nil, err
	}
	// A zero user id would read as unscoped.
	if claims.UserID == database.Unscoped || session.UserID != claims.UserID || session.Expired(a.now()) {
		return nil, database.ErrNotFound
	}
	return claims, nil
}

func (a *SessionAuth) revoke(ctx context.Context, tokenString string) error {
	claims, err := ValidateJWT(a.cfg.JWTSecret, tokenString)
	if err != nil {
		return nil
	}
	return a.sessions.DeleteSession(ctx, claims.ID)
}

// LoginRateLimiter throttles login attempts per client IP.
func LoginRateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).SendString("Too many login attempts. Please try again later.")
		},
	})
}

// RegisterRateLimiter throttles account creation per client IP.
func RegisterRateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        5,
		Expiration: 5 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).SendString("Too many registrations. Please wait a few minutes.")
		},
	})
}

func renderLogin(c *fiber.Ctx, status int, username, errMsg string) error {
	return c.Status(status).Render("auth/login", fiber.Map{
		"Title":    "Log in",
		"Username": username,
		"Error":    errMsg,
	})
}

func renderRegister(c *fiber.Ctx, status int, username, errMsg string) error {
	return c.Status(status).Render("auth/register", fiber.Map{
		"Title":    "Register",
		"Username": username,
		"Error":    errMsg,
	})
}
