package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, "s3cret", hash)
	assert.True(t, CheckPasswordHash("s3cret", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestJWTRoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	sid := GenerateSessionID().String()

	token, err := GenerateJWT(secret, sid, 42, "hana", time.Now().Add(time.Hour))
	require.NoError(t, err)

	claims, err := ValidateJWT(secret, token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "hana", claims.Username)
	assert.Equal(t, sid, claims.ID)
}

func TestValidateJWTRejects(t *testing.T) {
	secret := []byte("test-secret")
	sid := GenerateSessionID().String()

	expired, err := GenerateJWT(secret, sid, 1, "a", time.Now().Add(-time.Minute))
	require.NoError(t, err)
	foreign, err := GenerateJWT([]byte("other"), sid, 1, "a", time.Now().Add(time.Hour))
	require.NoError(t, err)
	badSession, err := GenerateJWT(secret, "not-a-uuid", 1, "a", time.Now().Add(time.Hour))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "abc.def.ghi"},
		{name: "expired", token: expired},
		{name: "wrong secret", token: foreign},
		{name: "session id not a uuid", token: badSession},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateJWT(secret, tt.token)
			assert.Error(t, err)
		})
	}
}
