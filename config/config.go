package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// LoadEnv reads .env into the process environment when the file exists.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
}

type Config struct {
	Port           string
	BackendURL     string
	BackendTimeout time.Duration
	TokenSecret    string
	Classes        []string
	// TemplateDir, when set, serves templates from disk with reload.
	TemplateDir string
}

// Load reads the dashboard settings from the environment.
func Load() Config {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		BackendURL:  getEnv("BACKEND_URL", "http://localhost:5000"),
		TokenSecret: os.Getenv("SERVICE_TOKEN_SECRET"),
		Classes:     splitList(os.Getenv("DASHBOARD_CLASSES")),
	}

	if raw := os.Getenv("BACKEND_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			log.Printf("invalid BACKEND_TIMEOUT %q, using transport default: %v", raw, err)
		} else {
			cfg.BackendTimeout = d
		}
	}

	if v := os.Getenv("TEMPLATE_RELOAD"); v == "1" || strings.EqualFold(v, "true") {
		cfg.TemplateDir = getEnv("TEMPLATE_DIR", "./app/templates")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
