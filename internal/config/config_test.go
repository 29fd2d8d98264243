package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GIN_MODE", "debug")
	for _, key := range []string{"SESSION_SECRET", "STORAGE_DRIVER", "SEARCH_LOCATION_MATCH", "SESSION_STORE", "SEARCH_RELATED_TOLERANCE"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Search.FeaturedLimit != 6 || cfg.Search.RelatedLimit != 6 {
		t.Errorf("limits = %d/%d, want 6/6", cfg.Search.FeaturedLimit, cfg.Search.RelatedLimit)
	}
	if cfg.Search.RelatedTolerance != 0.2 {
		t.Errorf("RelatedTolerance = %v, want 0.2", cfg.Search.RelatedTolerance)
	}
	if cfg.Search.LocationMatch != "substring" {
		t.Errorf("LocationMatch = %q, want substring", cfg.Search.LocationMatch)
	}
	if cfg.Storage.Driver != DriverPostgres {
		t.Errorf("Driver = %q, want postgres", cfg.Storage.Driver)
	}
}

func TestEnvHelpersFallBack(t *testing.T) {
	t.Setenv("TEST_INT", "abc")
	t.Setenv("TEST_FLOAT", "1.5x")
	t.Setenv("TEST_BOOL", "maybe")
	t.Setenv("TEST_TIMEOUT", "9")

	if got := getEnvAsInt("TEST_INT", 7); got != 7 {
		t.Errorf("getEnvAsInt() = %d, want 7", got)
	}
	if got := getEnvAsFloat("TEST_FLOAT", 0.5); got != 0.5 {
		t.Errorf("getEnvAsFloat() = %v, want 0.5", got)
	}
	if got := getEnvAsBool("TEST_BOOL", true); !got {
		t.Errorf("getEnvAsBool() = false, want default true")
	}
	if got := time.Duration(getEnvAsInt("TEST_TIMEOUT", 5)) * time.Second; got != 9*time.Second {
		t.Errorf("timeout = %v, want 9s", got)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Storage: StorageConfig{Driver: DriverMemory},
			Server:  ServerConfig{GinMode: "release"},
			Search:  SearchConfig{LocationMatch: "exact", RelatedTolerance: 0.2},
			Session: SessionConfig{Secret: "s3cret", TTL: time.Hour, Store: "memory"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "unknown location mode", mutate: func(c *Config) { c.Search.LocationMatch = "fuzzy" }, wantErr: "location match"},
		{name: "unknown driver", mutate: func(c *Config) { c.Storage.Driver = "sqlite" }, wantErr: "storage driver"},
		{name: "redis sessions without redis", mutate: func(c *Config) { c.Session.Store = "redis" }, wantErr: "REDIS_ENABLED"},
		{name: "missing secret in release", mutate: func(c *Config) { c.Session.Secret = "" }, wantErr: "SESSION_SECRET"},
		{name: "missing secret in debug", mutate: func(c *Config) { c.Session.Secret = ""; c.Server.GinMode = "debug" }},
		{name: "tolerance out of range", mutate: func(c *Config) { c.Search.RelatedTolerance = 1.5 }, wantErr: "TOLERANCE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestGetPostgreSQLDSN(t *testing.T) {
	cfg := &Config{PostgreSQL: PostgreSQLConfig{Host: "db", Port: 5432, User: "u", Password: "p", Database: "estate", SSLMode: "disable"}}
	want := "host=db port=5432 user=u password=p dbname=estate sslmode=disable"
	if got := cfg.GetPostgreSQLDSN(); got != want {
		t.Errorf("GetPostgreSQLDSN() = %q, want %q", got, want)
	}

	cfg.PostgreSQL.DSN = "postgres://x"
	if got := cfg.GetPostgreSQLDSN(); got != "postgres://x" {
		t.Errorf("GetPostgreSQLDSN() = %q, want DSN", got)
	}
}
