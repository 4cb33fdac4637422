package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all configuration for the application.
type Config struct {
	Port            string
	DatabaseURL     string
	RedisURL        string
	DisplayTimezone string
	MaxPastDays     int
	SyncSchedule    string
	MadisonAPIURL   string
	DaneCalendarURL string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	port := getEnv("PORT", "8080")
	dbURL := getEnv("DATABASE_URL", "")
	redisURL := getEnv("REDIS_URL", "")
	timezone := getEnv("DISPLAY_TIMEZONE", "America/Chicago")
	maxPastDays := getEnvInt("MAX_PAST_DAYS", 30)
	schedule := getEnv("SYNC_SCHEDULE", "0 3 * * *")
	madisonURL := getEnv("MADISON_API_URL", "https://webapi.legistar.com/v1/madison/events")
	daneURL := getEnv("DANE_CALENDAR_URL", "https://dane.legistar.com/Calendar.aspx")

	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if redisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required")
	}
	if maxPastDays <= 0 {
		return nil, fmt.Errorf("MAX_PAST_DAYS must be positive")
	}

	return &Config{
		Port:            port,
		DatabaseURL:     dbURL,
		RedisURL:        redisURL,
		DisplayTimezone: timezone,
		MaxPastDays:     maxPastDays,
		SyncSchedule:    schedule,
		MadisonAPIURL:   madisonURL,
		DaneCalendarURL: daneURL,
	}, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}
