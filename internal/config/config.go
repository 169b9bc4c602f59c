package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Extraction strategy names accepted in EXTRACT_STRATEGY.
const (
	StrategyPattern = "pattern"
	StrategyModel   = "model"
)

type Config struct {
	Port          string
	AllowedOrigin string
	// ERPNext resource API
	ERPBaseURL   string
	ERPAPIKey    string
	ERPAPISecret string
	// Optional bearer token; when set it takes precedence over the key/secret pair
	ERPAuthToken string
	CompanyName  string
	// Domain used when deriving user emails from extracted names
	DefaultUserDomain string
	// Text-completion collaborator
	OpenAIAPIKey string
	Model        string
	// Shared-secret login gate
	AppPassword string
	// Field extraction
	ExtractStrategy string
	ExtractSpecFile string
}

func Load() Config {
	_ = godotenv.Load()
	cfg := Config{
		Port:              getEnvDefault("PORT", "8080"),
		AllowedOrigin:     getEnvDefault("ALLOWED_ORIGIN", "*"),
		ERPBaseURL:        strings.TrimRight(os.Getenv("ERP_BASE_URL"), "/"),
		ERPAPIKey:         os.Getenv("ERP_API_KEY"),
		ERPAPISecret:      os.Getenv("ERP_API_SECRET"),
		ERPAuthToken:      os.Getenv("ERP_AUTH_TOKEN"),
		CompanyName:       getEnvDefault("COMPANY_NAME", "S&I Urban Designers"),
		DefaultUserDomain: getEnvDefault("DEFAULT_USER_DOMAIN", "example.com"),
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		Model:             getEnvDefault("OPENAI_MODEL", "gpt-4o"),
		AppPassword:       os.Getenv("APP_PASSWORD"),
		ExtractStrategy:   getEnvDefault("EXTRACT_STRATEGY", StrategyPattern),
		ExtractSpecFile:   getEnvDefault("EXTRACT_SPEC_FILE", "prompts/extract.yaml"),
	}
	return cfg
}

func getEnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
