package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	defaultPort        = "8080"
	defaultBaseURL     = "http://localhost:8080"
	defaultGeminiModel = "gemini-2.5-flash"
	defaultVATPercent  = 21.0
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	Port                  string
	DatabaseURL           string
	BaseURL               string
	GoogleCredentialsFile string
	DriveFolderID         string
	GeminiAPIKey          string
	GeminiModel           string
	ChromePath            string
	VATPercent            float64
	Debug                 bool
}

// Load reads environment variables into a Config. In non-production
// environments a local .env file is loaded first; its values override system
// variables so local development always wins. Missing optional integrations
// produce warnings, not failures.
func Load() Config {
	if os.Getenv("ENV") != "production" {
		if err := godotenv.Overload(".env"); err != nil {
			log.Printf("warning: .env not loaded, using system environment: %v", err)
		}
	}

	cfg := Config{
		Port:                  os.Getenv("PORT"),
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		BaseURL:               os.Getenv("BASE_URL"),
		GoogleCredentialsFile: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		DriveFolderID:         os.Getenv("DRIVE_FOLDER_ID"),
		GeminiAPIKey:          os.Getenv("GEMINI_API_KEY"),
		GeminiModel:           os.Getenv("GEMINI_MODEL"),
		ChromePath:            os.Getenv("CHROME_PATH"),
		VATPercent:            defaultVATPercent,
		Debug:                 os.Getenv("DEBUG") == "true",
	}

	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	// PORT from some hosts arrives with a leading colon.
	if cfg.Port[0] == ':' {
		cfg.Port = cfg.Port[1:]
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.GeminiModel == "" {
		cfg.GeminiModel = defaultGeminiModel
	}
	if v := os.Getenv("VAT_PERCENT"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			log.Printf("warning: invalid VAT_PERCENT %q, using default %.0f", v, defaultVATPercent)
		} else {
			cfg.VATPercent = parsed
		}
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = dsnFromParts()
	}
	if cfg.GeminiAPIKey == "" {
		log.Print("warning: GEMINI_API_KEY is not set, quote assistant disabled")
	}
	if cfg.GoogleCredentialsFile == "" {
		log.Print("warning: GOOGLE_APPLICATION_CREDENTIALS is not set, attachments disabled")
	}

	return cfg
}

// dsnFromParts builds a Postgres DSN from the individual DB_* variables when
// DATABASE_URL is not set.
func dsnFromParts() string {
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")
	sslmode := os.Getenv("DB_SSLMODE")

	if host == "" || user == "" || dbname == "" {
		return ""
	}
	if port == "" {
		port = "5432"
	}
	if sslmode == "" {
		sslmode = "disable"
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode)
}
