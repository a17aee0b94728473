package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DatabaseURL string

	// Redis
	RedisURL string

	// JWT
	JWTSecret string

	// Google OAuth / Calendar
	GoogleClientID       string
	GoogleClientSecret   string
	ExamsCalendarName    string
	ExamKeyword          string
	StudyCalendarSummary string

	// Holidays API
	HolidaysAPIKey  string
	HolidaysCountry string

	// Scheduling defaults for new accounts
	DefaultTimeZone       string
	DefaultStudyStart     int
	DefaultStudyEnd       int
	DefaultSessionMinutes int
	DefaultBreakMinutes   int

	// Frontend
	FrontendURL string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:        getEnvOrDefault("PORT", "8080"),
		Env:         getEnvOrDefault("ENV", "development"),
		DatabaseURL: mustGetEnv("DATABASE_URL"),
		RedisURL:    mustGetEnv("REDIS_URL"),
		JWTSecret:   mustGetEnv("JWT_SECRET"),

		GoogleClientID:       mustGetEnv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret:   mustGetEnv("GOOGLE_CLIENT_SECRET"),
		ExamsCalendarName:    getEnvOrDefault("EXAMS_CALENDAR_NAME", "Exams"),
		ExamKeyword:          getEnvOrDefault("EXAM_KEYWORD", "Exam"),
		StudyCalendarSummary: getEnvOrDefault("STUDY_CALENDAR_SUMMARY", "Planora"),

		HolidaysAPIKey:  getEnvOrDefault("HOLIDAYS_API_KEY", ""),
		HolidaysCountry: getEnvOrDefault("HOLIDAYS_COUNTRY", "US"),

		DefaultTimeZone:       getEnvOrDefault("DEFAULT_TIME_ZONE", "UTC"),
		DefaultStudyStart:     getEnvAsIntOrDefault("DEFAULT_STUDY_START", 800),
		DefaultStudyEnd:       getEnvAsIntOrDefault("DEFAULT_STUDY_END", 2200),
		DefaultSessionMinutes: getEnvAsIntOrDefault("DEFAULT_SESSION_MINUTES", 120),
		DefaultBreakMinutes:   getEnvAsIntOrDefault("DEFAULT_BREAK_MINUTES", 15),

		FrontendURL: getEnvOrDefault("FRONTEND_URL", "http://localhost:5173"),
	}

	return cfg
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
