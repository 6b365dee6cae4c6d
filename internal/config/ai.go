package config

import "os"

// AIConfig holds configuration for the delegated text-insight provider
// (OpenRouter chat completions).
type AIConfig struct {
	APIKey    string `json:"-"` // Never serialize
	BaseURL   string `json:"baseUrl"`
	Model     string `json:"model"`
	TimeoutMS int    `json:"timeoutMs"`
}

// DefaultAIConfig returns the default AI configuration
func DefaultAIConfig() *AIConfig {
	return &AIConfig{
		APIKey:    os.Getenv("OPENROUTER_API_KEY"),
		BaseURL:   getEnvOrDefault("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
		Model:     getEnvOrDefault("OPENROUTER_MODEL", "openai/gpt-4o-mini"),
		TimeoutMS: 15000, // 15 second default timeout
	}
}

// IsEnabled returns true if the provider is configured
func (c *AIConfig) IsEnabled() bool {
	return c.APIKey != ""
}

// CompletionsEndpoint returns the chat completions URL
func (c *AIConfig) CompletionsEndpoint() string {
	return c.BaseURL + "/chat/completions"
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
