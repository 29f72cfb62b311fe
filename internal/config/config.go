package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	DSN             string
	JWTSecret       string
	AppPort         string
	Env             string
	SessionTTL      time.Duration
	AdminSessionTTL time.Duration
	BcryptCost      int
	SeedOnStart     bool
}

// Load reads configuration from the environment (and .env when present).
// Required values are fatal here, at process start: a missing signing
// secret must never degrade into a silent fallback at first use.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ .env file not found, using system environment variables")
	}

	cfg := Config{
		DSN:             os.Getenv("MYSQL_DSN"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		AppPort:         os.Getenv("APP_PORT"),
		Env:             os.Getenv("APP_ENV"),
		SessionTTL:      ttlDays("SESSION_TTL_DAYS", 7),
		AdminSessionTTL: ttlDays("ADMIN_SESSION_TTL_DAYS", 7),
		BcryptCost:      intEnv("BCRYPT_COST", bcrypt.DefaultCost),
		SeedOnStart:     os.Getenv("SEED_ON_START") == "true",
	}

	if cfg.DSN == "" {
		log.Fatal("❌ MYSQL_DSN not set in environment")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("❌ JWT_SECRET not set in environment")
	}
	if cfg.AppPort == "" {
		cfg.AppPort = "8080"
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}

	return cfg
}

// IsProduction controls the Secure attribute on cookies.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func ttlDays(key string, fallback int) time.Duration {
	return time.Duration(intEnv(key, fallback)) * 24 * time.Hour
}

func intEnv(key string, fallback int) int {
	if raw := os.Getenv(key); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			return parsed
		}
		log.Printf("⚠️ invalid %s=%q, using default %d", key, raw, fallback)
	}
	return fallback
}
