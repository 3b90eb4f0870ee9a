// internal/pkg/config/config_test.go
package config

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoad(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_TX_ISOLATION", "serializable")
	t.Setenv("REDIS_HOST", "cache.internal")
	t.Setenv("REPORTS_LOW_STOCK_THRESHOLD", "25")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("ASYNQ_QUEUES", "critical:5,low:1")
	t.Setenv("JWT_SECRET", "from-env-secret")

	cfg, err := Load(discardLogger())
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "serializable", cfg.Database.TxIsolation)
	assert.Equal(t, 25, cfg.Reports.LowStockThreshold)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Security.AllowedOrigins)
	assert.Equal(t, map[string]int{"critical": 5, "low": 1}, cfg.Asynq.Queues)
	assert.Equal(t, "cache.internal:6379", cfg.Asynq.RedisAddr)
	assert.Equal(t, "cache.internal:6379", cfg.GetRedisAddr())
	assert.Equal(t, "from-env-secret", cfg.Auth.JWTSecret)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_RejectsUnknownIsolation(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("DB_TX_ISOLATION", "read uncommitted")

	_, err := Load(discardLogger())
	assert.ErrorContains(t, err, "unsupported DB_TX_ISOLATION")
}

func validConfig() *Config {
	return &Config{
		App:      AppConfig{Name: "stockflow", Environment: "production"},
		Database: DatabaseConfig{Host: "db", Port: "5432", Name: "stockflow", SSLMode: "require", MaxConnections: 10, MinConnections: 2, TxIsolation: "read committed"},
		Redis:    RedisConfig{PoolSize: 10},
		Auth:     AuthConfig{JWTSecret: "0123456789abcdef0123456789abcdef"},
		Security: SecurityConfig{RateLimitRequests: 100, SecureHeaders: true, AllowedOrigins: []string{"https://app.example"}},
		Server:   ServerConfig{Port: "8080"},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		errorMsg string
	}{
		{name: "valid_production", mutate: func(*Config) {}},
		{name: "missing_database_name", mutate: func(c *Config) { c.Database.Name = "" }, errorMsg: "Database.Name"},
		{name: "pool_bounds", mutate: func(c *Config) { c.Database.MinConnections = 20 }, errorMsg: "max_connections must be >= min_connections"},
		{name: "negative_threshold", mutate: func(c *Config) { c.Reports.LowStockThreshold = -1 }, errorMsg: "low stock threshold"},
		{name: "ssl_disabled", mutate: func(c *Config) { c.Database.SSLMode = "disable" }, errorMsg: "SSL must be enabled"},
		{name: "short_secret", mutate: func(c *Config) { c.Auth.JWTSecret = "short" }, errorMsg: "at least 32 characters"},
		{name: "wildcard_origin", mutate: func(c *Config) { c.Security.AllowedOrigins = []string{"*"} }, errorMsg: "wildcard origin"},
		{
			name:   "wildcard_allowed_outside_production",
			mutate: func(c *Config) { c.App.Environment = "development"; c.Security.AllowedOrigins = []string{"*"} },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.errorMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.errorMsg)
		})
	}
}

func TestParseQueues(t *testing.T) {
	assert.Equal(t, map[string]int{"critical": 6, "default": 3}, parseQueues("critical:6, default:3"))
	assert.Equal(t, map[string]int{"default": 1}, parseQueues("garbage"))
}

type fakeSecretsAPI struct {
	payload string
	err     error
	calls   int
}

func (f *fakeSecretsAPI) GetSecretValue(context.Context, *secretsmanager.GetSecretValueInput, ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &secretsmanager.GetSecretValueOutput{SecretString: aws.String(f.payload)}, nil
}

func TestAWSSecretsManager(t *testing.T) {
	ctx := context.Background()

	t.Run("caches_within_ttl", func(t *testing.T) {
		api := &fakeSecretsAPI{payload: `{"JWT_SECRET":"s3cret","DB_PASSWORD":"pw"}`}
		sm := newAWSSecretsManager(api, "stockflow/prod", discardLogger())

		v, err := sm.GetSecret(ctx, SecretJWT)
		require.NoError(t, err)
		assert.Equal(t, "s3cret", v)

		got, err := sm.GetSecrets(ctx, []string{SecretJWT, SecretDBPassword})
		require.NoError(t, err)
		assert.Len(t, got, 2)
		assert.Equal(t, 1, api.calls)

		require.NoError(t, sm.RefreshSecrets(ctx))
		assert.Equal(t, 2, api.calls)
	})

	t.Run("missing_key", func(t *testing.T) {
		sm := newAWSSecretsManager(&fakeSecretsAPI{payload: `{}`}, "stockflow/prod", discardLogger())
		_, err := sm.GetSecret(ctx, SecretJWT)
		assert.ErrorContains(t, err, "not found")
	})

	t.Run("client_error", func(t *testing.T) {
		sm := newAWSSecretsManager(&fakeSecretsAPI{err: errors.New("access denied")}, "x", discardLogger())
		_, err := sm.GetSecrets(ctx, []string{SecretJWT})
		assert.ErrorContains(t, err, "access denied")
	})

	t.Run("overlays_config", func(t *testing.T) {
		cfg := validConfig()
		sm := newAWSSecretsManager(&fakeSecretsAPI{payload: `{"DB_PASSWORD":"rotated"}`}, "x", discardLogger())
		require.NoError(t, cfg.applySecrets(ctx, sm))
		assert.Equal(t, "rotated", cfg.Database.Password)
		assert.Equal(t, "0123456789abcdef0123456789abcdef", cfg.Auth.JWTSecret)
	})

	t.Run("ttl_expiry_refetches", func(t *testing.T) {
		api := &fakeSecretsAPI{payload: `{"JWT_SECRET":"a"}`}
		sm := newAWSSecretsManager(api, "x", discardLogger())
		sm.ttl = time.Nanosecond

		_, _ = sm.GetSecrets(ctx, []string{SecretJWT})
		time.Sleep(time.Millisecond)
		_, _ = sm.GetSecrets(ctx, []string{SecretJWT})
		assert.Equal(t, 2, api.calls)
	})
}
