package config

import (
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"TRAVELBOT_PORT", "LOG_LEVEL", "DATABASE_URL", "NATS_URL", "NATS_TOKEN",
		"ANTHROPIC_API_KEY", "TRAVELBOT_MODEL", "WEAVIATE_URL", "WEAVIATE_API_KEY",
		"CORPUS_DEALS", "CORPUS_GENERIC", "RETURN_DOCS_COUNT_DEALS",
		"RETURN_DOCS_COUNT_GENERIC", "CHAT_HISTORY_COUNT", "GOOGLE_API_KEY",
		"GOOGLE_CSE_ID", "OPENWEATHERMAP_API_KEY", "APPROVED_DOMAIN",
		"REQUEST_TIMEOUT_SECONDS",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Port != 8780 {
		t.Errorf("expected default port 8780, got %d", cfg.Port)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level info, got %s", cfg.LogLevel)
	}
	if cfg.AnthropicModel != "claude-sonnet-4-20250514" {
		t.Errorf("expected default model, got %s", cfg.AnthropicModel)
	}
	if cfg.DealsCorpus != "TravelDeal" {
		t.Errorf("expected default deals corpus, got %s", cfg.DealsCorpus)
	}
	if cfg.GenericCorpus != "TravelGuide" {
		t.Errorf("expected default generic corpus, got %s", cfg.GenericCorpus)
	}
	if cfg.DealsDocCount != 2 {
		t.Errorf("expected default deals doc count 2, got %d", cfg.DealsDocCount)
	}
	if cfg.HistoryCount != 2 {
		t.Errorf("expected default history count 2, got %d", cfg.HistoryCount)
	}
	if cfg.ApprovedDomain != "travelbestbets.com" {
		t.Errorf("expected default approved domain, got %s", cfg.ApprovedDomain)
	}
	if cfg.RequestTimeout != 60 {
		t.Errorf("expected default request timeout 60, got %d", cfg.RequestTimeout)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("TRAVELBOT_PORT", "9000")
	t.Setenv("CHAT_HISTORY_COUNT", "5")
	t.Setenv("CORPUS_DEALS", "DealDocs")

	cfg := Load()

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.HistoryCount != 5 {
		t.Errorf("expected history count 5, got %d", cfg.HistoryCount)
	}
	if cfg.DealsCorpus != "DealDocs" {
		t.Errorf("expected deals corpus DealDocs, got %s", cfg.DealsCorpus)
	}
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("TRAVELBOT_PORT", "not-a-number")

	cfg := Load()

	if cfg.Port != 8780 {
		t.Errorf("expected fallback port 8780, got %d", cfg.Port)
	}
}

func TestValidate(t *testing.T) {
	valid := Config{
		AnthropicAPIKey: "key",
		DatabaseURL:     "postgres://localhost/travelbot",
		WeaviateURL:     "localhost:8080",
		GoogleAPIKey:    "gkey",
		GoogleCSEID:     "cse",
		WeatherAPIKey:   "wkey",
		HistoryCount:    2,
	}

	if err := valid.Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}

	missing := valid
	missing.WeaviateURL = ""
	if err := missing.Validate(); err == nil {
		t.Error("expected error for missing WEAVIATE_URL")
	}

	badHistory := valid
	badHistory.HistoryCount = 0
	if err := badHistory.Validate(); err == nil {
		t.Error("expected error for zero history count")
	}
}
