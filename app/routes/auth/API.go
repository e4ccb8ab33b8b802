package auth

import (
	"log"
	"time"

	"class-tracker/app/database"
	"class-tracker/app/models"
	"class-tracker/app/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

const (
	invalidCredentials = "Invalid username or password"
	usernameTaken      = "That username is already taken"
)

type credentials struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

func (a *SessionAuth) LoginAPI(c *fiber.Ctx) error {
	var req credentials
	if err := c.BodyParser(&req); err != nil {
		return renderLogin(c, fiber.StatusBadRequest, "", "Invalid request")
	}
	if err := validation.Struct(req); err != nil {
		return renderLogin(c, fiber.StatusBadRequest, req.Username, err.Error())
	}

	ctx := c.UserContext()
	user, err := a.users.GetUserByUsername(ctx, req.Username)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		return err
	}
	// Same answer for an unknown user and a wrong password.
	if !a.verify(user, req.Password) {
		return renderLogin(c, fiber.StatusUnauthorized, req.Username, invalidCredentials)
	}

	session := &models.Session{
		ID:        GenerateSessionID().String(),
		UserID:    user.ID,
		ExpiresAt: a.now().Add(a.cfg.SessionTTL),
	}
	if err := a.sessions.CreateSession(ctx, session); err != nil {
		return err
	}

	token, err := GenerateJWT(a.cfg.JWTSecret, session.ID, user.ID, user.Username, session.ExpiresAt)
	if err != nil {
		return errors.Wrap(err, "sign session token")
	}

	// Set JWT as HTTP-only cookie
	c.Cookie(&fiber.Cookie{
		Name:     cookieName,
		Value:    token,
		Expires:  session.ExpiresAt,
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return c.Redirect("/")
}

// verify checks password against the user's hash. A nil user is compared
// against the dummy hash and always fails.
func (a *SessionAuth) verify(user *models.User, password string) bool {
	if user == nil {
		CheckPasswordHash(password, a.dummyHash)
		return false
	}
	return CheckPasswordHash(password, user.PasswordHash)
}

func (a *SessionAuth) RegisterAPI(c *fiber.Ctx) error {
	var req credentials
	if err := c.BodyParser(&req); err != nil {
		return renderRegister(c, fiber.StatusBadRequest, "", "Invalid request")
	}
	if err := validation.Struct(req); err != nil {
		return renderRegister(c, fiber.StatusBadRequest, req.Username, err.Error())
	}

	hashed, err := HashPassword(req.Password, a.cfg.BcryptCost)
	if err != nil {
		return errors.Wrap(err, "hash password")
	}

	user := &models.User{Username: req.Username, PasswordHash: hashed}
	if err := a.users.CreateUser(c.UserContext(), user); err != nil {
		if errors.Is(err, database.ErrUsernameTaken) {
			return renderRegister(c, fiber.StatusConflict, req.Username, usernameTaken)
		}
		return err
	}

	log.Printf("Registered user %q (id %d)", user.Username, user.ID)
	return c.Redirect("/login")
}

func (a *SessionAuth) LogoutAPI(c *fiber.Ctx) error {
	if tokenString := c.Cookies(cookieName); tokenString != "" {
		if err := a.revoke(c.UserContext(), tokenString); err != nil {
			log.Printf("Failed to revoke session: %v", err)
		}
	}

	// Clear session cookie
	c.Cookie(&fiber.Cookie{
		Name:     cookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})

	return c.Redirect("/login")
}
