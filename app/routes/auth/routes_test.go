package auth

import (
	"context"
	"io"
	"net/http/httptest"
	"strconv"
	"testing"

	"class-tracker/app/config"
	"class-tracker/app/database"
	"class-tracker/app/database/memory"
	"class-tracker/app/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func loginConfig() *config.Config {
	return &config.Config{
		AuthMode: config.AuthLogin,
		Auth: config.AuthConfig{
			JWTSecret:  []byte("test-secret"),
			BcryptCost: bcrypt.MinCost,
		},
	}
}

func ownerOf(t *testing.T, handlers ...fiber.Handler) string {
	t.Helper()
	app := fiber.New()
	handlers = append(handlers, func(c *fiber.Ctx) error {
		return c.SendString(strconv.FormatInt(OwnerID(c), 10))
	})
	app.Get("/", handlers...)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestOwnerIDWithoutMiddlewareMatchesNothing(t *testing.T) {
	assert.Equal(t, "-1", ownerOf(t))
	assert.Equal(t, "0", ownerOf(t, SingleTenant{}.Middleware))

	store := memory.New()
	ctx := context.Background()
	require.NoError(t, store.CreateClass(ctx, &models.Class{Name: "Art", Day: "Monday", Period: "1", OwnerID: 3}))
	require.NoError(t, store.CreateClass(ctx, &models.Class{Name: "Music", Day: "Monday", Period: "2"}))

	classes, err := store.ListClasses(ctx, noOwner)
	require.NoError(t, err)
	assert.Empty(t, classes)

	classes, err = store.ListClasses(ctx, database.Unscoped)
	require.NoError(t, err)
	assert.Len(t, classes, 2)
}

func TestUnknownUserIsCheckedAgainstDummyHash(t *testing.T) {
	store := memory.New()
	identity, ok := NewIdentity(loginConfig(), store, store).(*SessionAuth)
	require.True(t, ok)

	cost, err := bcrypt.Cost([]byte(identity.dummyHash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)

	assert.False(t, identity.verify(nil, "anything"))
	assert.False(t, identity.verify(nil, ""))

	hash, err := HashPassword("pw", bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{ID: 1, Username: "hana", PasswordHash: hash}
	assert.True(t, identity.verify(user, "pw"))
	assert.False(t, identity.verify(user, "nope"))
}

func TestNewIdentitySingleMode(t *testing.T) {
	cfg := loginConfig()
	cfg.AuthMode = config.AuthSingle
	store := memory.New()

	_, ok := NewIdentity(cfg, store, store).(SingleTenant)
	assert.True(t, ok)
}
