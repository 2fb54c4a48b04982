package redis

import (
	"strings"
	"testing"
	"time"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "empty host",
			mutate:  func(c *Config) { c.Host = "" },
			wantErr: "host",
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Port = 70000 },
			wantErr: "port",
		},
		{
			name:    "negative database",
			mutate:  func(c *Config) { c.Database = -1 },
			wantErr: "database",
		},
		{
			name:    "negative retries",
			mutate:  func(c *Config) { c.MaxRetries = -2 },
			wantErr: "retries",
		},
		{
			name:    "negative dial timeout",
			mutate:  func(c *Config) { c.DialTimeout = -time.Second },
			wantErr: "dial timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := NewRedisConfig()
			tt.mutate(config)

			err := config.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}

			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %q, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfigBuilderChains(t *testing.T) {
	config := NewRedisConfig().
		WithHost("cache.internal").
		WithPort(6380).
		WithDatabase(2).
		WithMaxActive(50).
		WithDefaultCacheTTL(10 * time.Minute)

	if config.Host != "cache.internal" || config.Port != 6380 || config.Database != 2 {
		t.Errorf("connection fields = %s:%d/%d", config.Host, config.Port, config.Database)
	}
	if config.MaxActive != 50 {
		t.Errorf("MaxActive = %d, want 50", config.MaxActive)
	}
	if config.DefaultCacheTTL != 10*time.Minute {
		t.Errorf("DefaultCacheTTL = %v", config.DefaultCacheTTL)
	}
	if err := config.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
}
