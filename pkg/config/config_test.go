package config

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		APIURL:  "https://api.atrium.dev",
		Version: "1",
		APIKey:  "test-key",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing api url", mutate: func(c *Config) { c.APIURL = "" }, wantErr: true},
		{name: "missing version", mutate: func(c *Config) { c.Version = "" }, wantErr: true},
		{name: "missing api key", mutate: func(c *Config) { c.APIKey = "" }, wantErr: true},
		{name: "bad scheme", mutate: func(c *Config) { c.APIURL = "ftp://api.atrium.dev" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_BaseURL(t *testing.T) {
	cfg := validConfig()
	assert.Equal(t, "https://api.atrium.dev/v1", cfg.BaseURL())

	cfg.Version = "2"
	assert.Equal(t, "https://api.atrium.dev/v2", cfg.BaseURL())

	cfg.Version = ""
	assert.Equal(t, "https://api.atrium.dev/v1", cfg.BaseURL())
}

func TestConfig_SessionExpired(t *testing.T) {
	now := time.Now()

	cfg := validConfig()
	assert.False(t, cfg.SessionExpired(now), "zero expiry never expires")

	cfg.SessionExpiry = now.Add(time.Hour)
	assert.False(t, cfg.SessionExpired(now))

	cfg.SessionExpiry = now.Add(-time.Minute)
	assert.True(t, cfg.SessionExpired(now))
}

func TestStore_GetSet(t *testing.T) {
	store := NewStore(validConfig())
	require.Equal(t, "test-key", store.Get().APIKey)

	updated := store.Get()
	updated.APIKey = "rotated"
	store.Set(updated)
	assert.Equal(t, "rotated", store.Get().APIKey)
}

func TestStore_ConcurrentAccess(t *testing.T) {
	store := NewStore(validConfig())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			cfg := store.Get()
			cfg.SessionToken = "tok"
			store.Set(cfg)
		}()
		go func() {
			defer wg.Done()
			_ = store.Get()
		}()
	}
	wg.Wait()

	assert.Equal(t, "tok", store.Get().SessionToken)
}
