// Package auth defines the session-refresh capability the transport layer
// consumes, plus helpers for working with JWT session tokens.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/atriumhq/atrium-go/pkg/config"
)

// Refresher exchanges an expired session for a fresh configuration. The
// returned Config must carry the new SessionToken and SessionExpiry; the
// transport persists it into the shared config store before retrying.
type Refresher interface {
	Refresh(ctx context.Context) (config.Config, error)
}

// RefresherFunc adapts a function to the Refresher interface.
type RefresherFunc func(ctx context.Context) (config.Config, error)

// Refresh calls f.
func (f RefresherFunc) Refresh(ctx context.Context) (config.Config, error) {
	return f(ctx)
}

// SessionExpiry extracts the expiration time from a JWT session token.
//
// The token is parsed without signature verification: the client holds no key
// material and only needs the exp claim to schedule refreshes. Servers still
// verify the signature on every request.
func SessionExpiry(token string) (time.Time, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, fmt.Errorf("failed to parse session token: %w", err)
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read exp claim: %w", err)
	}
	if exp == nil {
		return time.Time{}, fmt.Errorf("session token has no exp claim")
	}
	return exp.Time, nil
}
