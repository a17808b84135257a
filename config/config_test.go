package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("DB_DSN", "")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("EDIT_GRACE_DAYS", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, "contracts.db", cfg.DB.DSN)
	assert.Equal(t, 7, cfg.Contracts.EditGraceDays)
	assert.Equal(t, []string{"*"}, cfg.HTTP.CORSAllowedOrigins)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("DB_DSN", "postgres://localhost/contracts")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("EDIT_GRACE_DAYS", "14")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 14, cfg.Contracts.EditGraceDays)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.CORSAllowedOrigins)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"sqlite", Config{HTTP: HTTPConfig{Port: 80}, DB: DBConfig{Driver: "sqlite"}}, true},
		{"postgres without dsn", Config{HTTP: HTTPConfig{Port: 80}, DB: DBConfig{Driver: "postgres"}}, false},
		{"unknown driver", Config{HTTP: HTTPConfig{Port: 80}, DB: DBConfig{Driver: "mysql"}}, false},
		{"negative grace", Config{HTTP: HTTPConfig{Port: 80}, DB: DBConfig{Driver: "memory"}, Contracts: ContractsConfig{EditGraceDays: -1}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate(&tt.cfg)
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && err == nil {
				t.Error("expected error")
			}
		})
	}
}
