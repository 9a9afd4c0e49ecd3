package config

import (
	"os"
	"strings"
	"time"
)

// Server captures process level configuration.
type Server struct {
	Addr              string
	JWTSigningKey     string
	OwnerIdentity     string
	AdminUsername     string
	AdminPassword     string
	AdminPasswordHash string
	PostgresURL       string
	RedisURL          string
	KafkaBrokers      []string
	KafkaTopic        string
	CacheTTL          time.Duration
}

// FromEnv builds a Server config from environment variables so main stays
// lean. Postgres, Redis and Kafka are optional; the service falls back to
// in-memory stores and a logging event sink when they are absent.
func FromEnv() Server {
	cfg := Server{
		Addr:              envOr("CERTLEDGER_ADDR", ":8080"),
		JWTSigningKey:     envOr("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		OwnerIdentity:     envOr("REGISTRY_OWNER", "owner"),
		AdminUsername:     envOr("ADMIN_USERNAME", "admin"),
		AdminPassword:     envOr("ADMIN_PASSWORD", "admin123"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		PostgresURL:       os.Getenv("POSTGRES_URL"),
		RedisURL:          os.Getenv("REDIS_URL"),
		KafkaTopic:        envOr("KAFKA_TOPIC", "certledger.registry.events"),
		CacheTTL:          5 * time.Minute,
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}
	if ttl := os.Getenv("REGISTRY_CACHE_TTL"); ttl != "" {
		if d, err := time.ParseDuration(ttl); err == nil {
			cfg.CacheTTL = d
		}
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
