package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds application configuration, loaded once at startup.
type Config struct {
	Port     string
	Env      string
	LogLevel string

	MongoURI      string
	MongoDatabase string

	CORSAllowedOrigins []string

	AdminJWTSecret string

	// Doctor portal shared password. The web portal predates per-doctor
	// credentials; kept configurable until accounts are migrated.
	DoctorPortalPassword string

	GeminiAPIKey  string
	GeminiModelID string
	OpenAIAPIKey  string
	OpenAIModelID string

	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string

	SheetsSpreadsheetID string
	SheetsClientEmail   string
	SheetsPrivateKey    string

	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "5000"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		MongoURI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGODB_DATABASE", "quanlyphongkham"),

		CORSAllowedOrigins: splitAndTrim(getEnv("CORS_ORIGIN", "https://frontend-quanlyphongkham.vercel.app")),

		AdminJWTSecret: getEnv("JWT_SECRET", ""),

		DoctorPortalPassword: getEnv("DOCTOR_PORTAL_PASSWORD", "doctor123"),

		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		GeminiModelID: getEnv("GEMINI_MODEL_ID", "gemini-2.0-flash"),
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIModelID: getEnv("OPENAI_MODEL_ID", "gpt-3.5-turbo"),

		TwilioAccountSID: getEnv("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:  getEnv("TWILIO_AUTH_TOKEN", ""),
		TwilioFromNumber: getEnv("TWILIO_PHONE_NUMBER", ""),

		SheetsSpreadsheetID: getEnv("GOOGLE_SHEETS_SPREADSHEET_ID", ""),
		SheetsClientEmail:   getEnv("GOOGLE_SHEETS_CLIENT_EMAIL", ""),
		// Deployment platforms store the key with literal \n sequences.
		SheetsPrivateKey: strings.ReplaceAll(getEnv("GOOGLE_SHEETS_PRIVATE_KEY", ""), `\n`, "\n"),

		// 100 requests per 15 minutes per IP, expressed as a token bucket.
		RateLimitRPS:   getEnvAsFloat("RATE_LIMIT_RPS", 100.0/(15*60)),
		RateLimitBurst: getEnvAsInt("RATE_LIMIT_BURST", 100),
	}
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return value
	}
	return defaultValue
}
