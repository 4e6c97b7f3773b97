package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCSV(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "empty", in: "", want: nil},
		{name: "single", in: "localhost:9092", want: []string{"localhost:9092"}},
		{name: "trims and skips blanks", in: " a , ,b,", want: []string{"a", "b"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, CSV(tt.in))
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{
		"SERVICE_NAME", "SERVER_PORT", "DB_DRIVER", "DB_AUTO_MIGRATE", "ES_INDEX",
		"STATS_CACHE_TTL", "ACCESS_TOKEN_TTL", "ORDER_ENFORCE_STOCK", "ORDER_STRICT_TRANSITIONS",
		"REQUIRE_ADMIN_AUTH", "ADMIN_EMAILS",
	} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, "avance-storefront", cfg.ServiceName)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "pgx", cfg.DBDriver)
	assert.True(t, cfg.AutoMigrate)
	assert.Equal(t, "products", cfg.ESIndex)
	assert.Equal(t, 30*time.Second, cfg.StatsCacheTTL)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	assert.False(t, cfg.EnforceStock)
	assert.False(t, cfg.StrictStatusTransitions)
	assert.False(t, cfg.RequireAdminAuth)
	assert.Nil(t, cfg.AdminEmails)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_DRIVER", "pq")
	t.Setenv("STATS_CACHE_TTL", "5m")
	t.Setenv("ORDER_ENFORCE_STOCK", "true")
	t.Setenv("ADMIN_EMAILS", "Boss@Shop.com, ops@shop.com")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg := Load()

	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, "pq", cfg.DBDriver)
	assert.Equal(t, 5*time.Minute, cfg.StatsCacheTTL)
	assert.True(t, cfg.EnforceStock)
	assert.Equal(t, []string{"boss@shop.com", "ops@shop.com"}, cfg.AdminEmails)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
}

func TestEnvDefaults_InvalidFallsBack(t *testing.T) {
	t.Setenv("X_INT", "abc")
	t.Setenv("X_BOOL", "maybe")
	t.Setenv("X_DUR", "soon")

	assert.Equal(t, 7, EnvIntDefault("X_INT", 7))
	assert.True(t, EnvBoolDefault("X_BOOL", true))
	assert.Equal(t, time.Second, EnvDurationDefault("X_DUR", time.Second))
}
