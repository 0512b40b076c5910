package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config keeps all runtime settings for the family board backend.
type Config struct {
	Port                string
	DatabaseURL         string
	JWTSecret           string
	JWTAccessExpiry     time.Duration
	AdminPassword       string
	FirebaseCredentials string
	ReminderInterval    time.Duration
	Timezone            string
	Location            *time.Location
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	accessExpiry := 12 * time.Hour
	if exp := os.Getenv("JWT_ACCESS_EXPIRY"); exp != "" {
		if parsed, err := time.ParseDuration(exp); err == nil {
			accessExpiry = parsed
		}
	}

	reminderInterval := time.Minute
	if raw := os.Getenv("REMINDER_INTERVAL"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			reminderInterval = parsed
		}
	}

	tz := getEnv("TIMEZONE", "Asia/Jerusalem")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.Local
	}

	return &Config{
		Port:                getEnv("PORT", "8080"),
		DatabaseURL:         getEnv("DATABASE_URL", "familyboard.db"),
		JWTSecret:           getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		JWTAccessExpiry:     accessExpiry,
		AdminPassword:       getEnv("ADMIN_PASSWORD", ""),
		FirebaseCredentials: getEnv("FIREBASE_CREDENTIALS", ""),
		ReminderInterval:    reminderInterval,
		Timezone:            tz,
		Location:            loc,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
