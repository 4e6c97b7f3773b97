package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ServiceName string

	ServerPort  int
	LogLevel    string
	CORSOrigins []string

	DatabaseURL string
	DBDriver    string
	AutoMigrate bool

	JWTSecret        []byte
	AccessTokenTTL   time.Duration
	AdminEmails      []string
	RequireAdminAuth bool

	KafkaBrokers []string

	ESURL      string
	ESUser     string
	ESPassword string
	ESIndex    string

	RedisAddr     string
	StatsCacheTTL time.Duration

	EnforceStock            bool
	StrictStatusTransitions bool
}

func Load() Config {
	return Config{
		ServiceName: EnvDefault("SERVICE_NAME", "avance-storefront"),

		ServerPort:  EnvIntDefault("SERVER_PORT", 8080),
		LogLevel:    os.Getenv("LOG_LEVEL"),
		CORSOrigins: CSV(os.Getenv("CORS_ORIGINS")),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBDriver:    EnvDefault("DB_DRIVER", "pgx"),
		AutoMigrate: EnvBoolDefault("DB_AUTO_MIGRATE", true),

		JWTSecret:        []byte(os.Getenv("JWT_SECRET")),
		AccessTokenTTL:   EnvDurationDefault("ACCESS_TOKEN_TTL", 15*time.Minute),
		AdminEmails:      CSV(strings.ToLower(os.Getenv("ADMIN_EMAILS"))),
		RequireAdminAuth: EnvBoolDefault("REQUIRE_ADMIN_AUTH", false),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),

		ESURL:      os.Getenv("ES_URL"),
		ESUser:     os.Getenv("ES_USER"),
		ESPassword: os.Getenv("ES_PASSWORD"),
		ESIndex:    EnvDefault("ES_INDEX", "products"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		StatsCacheTTL: EnvDurationDefault("STATS_CACHE_TTL", 30*time.Second),

		EnforceStock:            EnvBoolDefault("ORDER_ENFORCE_STOCK", false),
		StrictStatusTransitions: EnvBoolDefault("ORDER_STRICT_TRANSITIONS", false),
	}
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func EnvBoolDefault(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// EnvDurationDefault accepts Go duration strings ("30s", "15m").
func EnvDurationDefault(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
