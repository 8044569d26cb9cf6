package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atriumhq/atrium-go/pkg/config"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestSessionExpiry(t *testing.T) {
	expiry := time.Now().Add(30 * time.Minute).Truncate(time.Second)
	token := signedToken(t, jwt.MapClaims{
		"sub": "user-1",
		"exp": expiry.Unix(),
	})

	got, err := SessionExpiry(token)
	require.NoError(t, err)
	assert.True(t, got.Equal(expiry), "want %v, got %v", expiry, got)
}

func TestSessionExpiry_NoExpClaim(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"sub": "user-1"})

	_, err := SessionExpiry(token)
	assert.Error(t, err)
}

func TestSessionExpiry_Malformed(t *testing.T) {
	_, err := SessionExpiry("not-a-jwt")
	assert.Error(t, err)
}

func TestRefresherFunc(t *testing.T) {
	want := config.Config{APIKey: "refreshed"}
	r := RefresherFunc(func(ctx context.Context) (config.Config, error) {
		return want, nil
	})

	got, err := r.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
