package config

import (
	"os"
	"strings"
	"time"
)

// Config captures process-level configuration. Backends left unconfigured
// degrade to in-memory fixtures so the demo runs with no external services.
type Config struct {
	Addr string

	// PostgresDSN enables the persistent bureau and catalog stores.
	PostgresDSN string

	Redis RedisConfig

	// KafkaBrokers enables the audit event sink. Comma separated.
	KafkaBrokers []string
	AuditTopic   string

	// JWTSigningKey signs partner session tokens.
	JWTSigningKey string
	// PartnerSecretHash is a bcrypt hash of the partner API secret. Empty
	// means any non-empty partner token is accepted (demo mode).
	PartnerSecretHash string
}

// RedisConfig captures Redis connection tuning for the offer result cache.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	cfg := Config{
		Addr:        envOr("PREQUAL_ADDR", ":8080"),
		PostgresDSN: os.Getenv("PREQUAL_POSTGRES_DSN"),
		Redis: RedisConfig{
			URL:          os.Getenv("PREQUAL_REDIS_URL"),
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		AuditTopic:        envOr("PREQUAL_AUDIT_TOPIC", "prequal.evaluations"),
		JWTSigningKey:     envOr("PREQUAL_JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		PartnerSecretHash: os.Getenv("PREQUAL_PARTNER_SECRET_HASH"),
	}
	if brokers := os.Getenv("PREQUAL_KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
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
