package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	JWTKey    string
	SaltRound int

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	// ClientURL is the public origin of the SPA; certificate verification
	// links and the CORS allow-list are derived from it.
	ClientURL string

	SendgridAPIKey string
	EmailSender    string
	EmailFromName  string

	WhisperAPIURL    string
	WhisperAPIKey    string
	WhisperSecretKey string // shared secret expected by the transcript webhook
}

// Load initializes configuration from environment variables or defaults.
// The returned Config is handed to the database, controllers and schedulers
// explicitly; nothing reads the environment after startup.
func Load() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	cfg := &Config{
		Port:      getEnv("PORT", "5000"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "microcourses"),
		DBPort:     getEnv("DB_PORT", "5432"),

		ClientURL: getEnv("CLIENT_URL", "http://localhost:5174"),

		SendgridAPIKey: getEnv("SENDGRID_API_KEY", ""),
		EmailSender:    getEnv("EMAIL_SENDER", "no-reply@microcourses.dev"),
		EmailFromName:  getEnv("EMAIL_FROM_NAME", "MicroCourses"),

		WhisperAPIURL:    getEnv("WHISPER_API_URL", "https://api-inference.huggingface.co/models/openai/whisper-large-v3"),
		WhisperAPIKey:    getEnv("HUGGINGFACE_API_KEY", ""),
		WhisperSecretKey: getEnv("WHISPER_SECRET_KEY", ""),
	}

	// Validate critical configuration
	if cfg.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if cfg.WhisperSecretKey == "" {
		log.Println("Warning: WHISPER_SECRET_KEY is empty. Transcript webhook will reject all calls.")
	}

	return cfg
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
