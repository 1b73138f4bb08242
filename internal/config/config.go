package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Port            int
	LogLevel        string
	DatabaseURL     string
	NatsURL         string
	NatsToken       string
	AnthropicAPIKey string
	AnthropicModel  string
	WeaviateURL     string
	WeaviateAPIKey  string
	DealsCorpus     string
	GenericCorpus   string
	DealsDocCount   int
	GenericDocCount int
	HistoryCount    int
	GoogleAPIKey    string
	GoogleCSEID     string
	WeatherAPIKey   string
	ApprovedDomain  string
	RequestTimeout  int
}

func Load() Config {
	return Config{
		Port:            envInt("TRAVELBOT_PORT", 8780),
		LogLevel:        envStr("LOG_LEVEL", "info"),
		DatabaseURL:     envStr("DATABASE_URL", ""),
		NatsURL:         envStr("NATS_URL", ""),
		NatsToken:       envStr("NATS_TOKEN", ""),
		AnthropicAPIKey: envStr("ANTHROPIC_API_KEY", ""),
		AnthropicModel:  envStr("TRAVELBOT_MODEL", "claude-sonnet-4-20250514"),
		WeaviateURL:     envStr("WEAVIATE_URL", ""),
		WeaviateAPIKey:  envStr("WEAVIATE_API_KEY", ""),
		DealsCorpus:     envStr("CORPUS_DEALS", "TravelDeal"),
		GenericCorpus:   envStr("CORPUS_GENERIC", "TravelGuide"),
		DealsDocCount:   envInt("RETURN_DOCS_COUNT_DEALS", 2),
		GenericDocCount: envInt("RETURN_DOCS_COUNT_GENERIC", 2),
		HistoryCount:    envInt("CHAT_HISTORY_COUNT", 2),
		GoogleAPIKey:    envStr("GOOGLE_API_KEY", ""),
		GoogleCSEID:     envStr("GOOGLE_CSE_ID", ""),
		WeatherAPIKey:   envStr("OPENWEATHERMAP_API_KEY", ""),
		ApprovedDomain:  envStr("APPROVED_DOMAIN", "travelbestbets.com"),
		RequestTimeout:  envInt("REQUEST_TIMEOUT_SECONDS", 60),
	}
}

// Validate reports the first missing required value. The service refuses to
// start without a generation target, a retrieval target, and the search and
// weather credentials; running without them would turn every request into
// the generic failure message.
func (c Config) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"ANTHROPIC_API_KEY", c.AnthropicAPIKey},
		{"DATABASE_URL", c.DatabaseURL},
		{"WEAVIATE_URL", c.WeaviateURL},
		{"GOOGLE_API_KEY", c.GoogleAPIKey},
		{"GOOGLE_CSE_ID", c.GoogleCSEID},
		{"OPENWEATHERMAP_API_KEY", c.WeatherAPIKey},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("%s is required", r.name)
		}
	}
	if c.HistoryCount < 1 {
		return fmt.Errorf("CHAT_HISTORY_COUNT must be at least 1, got %d", c.HistoryCount)
	}
	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
