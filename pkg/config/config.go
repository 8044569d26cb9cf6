// Package config holds the client configuration shared by every component of
// the SDK: the API endpoint, credentials, and the optional session token that
// the transport layer refreshes when it expires.
package config

import (
	"fmt"
	"net/url"
	"sync"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// DefaultVersion is the API version requested when none is configured.
const DefaultVersion = "1"

// Config describes how to reach the Atrium API. A Config is a plain value;
// shared mutable access goes through a Store.
type Config struct {
	// APIURL is the base URL of the Atrium API, without a version suffix.
	// Example: "https://api.atrium.dev"
	APIURL string

	// Version selects the API version segment ("1" produces "/v1").
	Version string

	// APIKey is the bearer credential sent on every request.
	APIKey string

	// SessionToken is an optional short-lived session credential issued by
	// the auth service. When present it supersedes nothing by itself; the
	// transport refreshes it through a Refresher once SessionExpiry passes.
	SessionToken string

	// SessionExpiry is the expiration time of SessionToken. The zero value
	// means the session never expires (or no session is in use).
	SessionExpiry time.Time

	// Verbose enables request/response diagnostics on the transport logger.
	// It never changes behavior, only log output.
	Verbose bool
}

// Validate checks that the configuration is usable for making requests.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.APIURL, validation.Required, validation.By(checkURL)),
		validation.Field(&c.Version, validation.Required),
		validation.Field(&c.APIKey, validation.Required),
	)
}

func checkURL(value interface{}) error {
	s, _ := value.(string)
	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL must use http or https scheme, got: %q", u.Scheme)
	}
	return nil
}

// SessionExpired reports whether the session token has an expiry and it has
// passed at the given instant.
func (c Config) SessionExpired(now time.Time) bool {
	return !c.SessionExpiry.IsZero() && now.After(c.SessionExpiry)
}

// BaseURL returns the versioned API root, e.g. "https://api.atrium.dev/v1".
func (c Config) BaseURL() string {
	version := c.Version
	if version == "" {
		version = DefaultVersion
	}
	return fmt.Sprintf("%s/v%s", c.APIURL, version)
}

// Store is the shared owner of the current Config. The transport reads it
// before every request and rewrites it after a token refresh, so access is
// guarded for callers that issue requests from multiple goroutines.
type Store struct {
	mu  sync.RWMutex
	cfg Config
}

// NewStore returns a Store seeded with cfg.
func NewStore(cfg Config) *Store {
	return &Store{cfg: cfg}
}

// Get returns a copy of the current configuration.
func (s *Store) Get() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Set replaces the current configuration.
func (s *Store) Set(cfg Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
}
