package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "quanlyphongkham", cfg.MongoDatabase)
	assert.Equal(t, "gemini-2.0-flash", cfg.GeminiModelID)
	assert.Equal(t, "gpt-3.5-turbo", cfg.OpenAIModelID)
	assert.Equal(t, 100, cfg.RateLimitBurst)
	assert.NotEmpty(t, cfg.CORSAllowedOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CORS_ORIGIN", "http://a.example, http://b.example ,")
	t.Setenv("GOOGLE_SHEETS_PRIVATE_KEY", `line1\nline2`)
	t.Setenv("RATE_LIMIT_BURST", "7")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "line1\nline2", cfg.SheetsPrivateKey)
	assert.Equal(t, 7, cfg.RateLimitBurst)
}
