package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Config is the chat endpoint configuration. The provider credential is not
// stored here: only the name of the variable holding it, so it is read at call
// time and never ends up in a log line.
type Config struct {
	// Server
	Port     string
	Env      string
	LogLevel string

	// LLM provider
	Provider      string
	APIKeyEnv     string
	OpenAIBaseURL string
	OpenAIModel   string
	GeminiModel   string
	LLMTimeout    time.Duration

	// CORS
	AllowedOrigins []string

	// Tracing
	OTLPEndpoint string
}

// ProxyConfig is the chat proxy configuration.
type ProxyConfig struct {
	Port     string
	Env      string
	LogLevel string

	// BackendURLEnv names the variable holding the endpoint base address.
	BackendURLEnv string
	Timeout       time.Duration

	OTLPEndpoint string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	provider := strings.ToLower(getEnvOrDefault("LLM_PROVIDER", ProviderOpenAI))
	apiKeyEnv := "OPENAI_API_KEY"
	if provider == ProviderGemini {
		apiKeyEnv = "GEMINI_API_KEY"
	}

	cfg := &Config{
		Port:           getEnvOrDefault("PORT", "8080"),
		Env:            getEnvOrDefault("ENV", "development"),
		LogLevel:       getEnvOrDefault("LOG_LEVEL", "info"),
		Provider:       provider,
		APIKeyEnv:      apiKeyEnv,
		OpenAIBaseURL:  getEnvOrDefault("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:    getEnvOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
		GeminiModel:    getEnvOrDefault("GEMINI_MODEL", "gemini-3-flash-preview"),
		LLMTimeout:     getEnvAsSecondsOrDefault("LLM_TIMEOUT_SECONDS", 25*time.Second),
		AllowedOrigins: getEnvAsListOrDefault("CORS_ALLOWED_ORIGINS", []string{"*"}),
		OTLPEndpoint:   getEnvOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}

	return cfg
}

func LoadProxy() *ProxyConfig {
	godotenv.Load()

	return &ProxyConfig{
		Port:          getEnvOrDefault("PORT", "3000"),
		Env:           getEnvOrDefault("ENV", "development"),
		LogLevel:      getEnvOrDefault("LOG_LEVEL", "info"),
		BackendURLEnv: "BACKEND_URL",
		Timeout:       getEnvAsSecondsOrDefault("PROXY_TIMEOUT_SECONDS", 30*time.Second),
		OTLPEndpoint:  getEnvOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}
}

// APIKey returns the provider credential as currently set in the environment.
func (c *Config) APIKey() string {
	return strings.TrimSpace(os.Getenv(c.APIKeyEnv))
}

// BackendURL returns the endpoint base address as currently set in the environment.
func (c *ProxyConfig) BackendURL() string {
	return strings.TrimSpace(os.Getenv(c.BackendURLEnv))
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

func getEnvAsSecondsOrDefault(key string, defaultVal time.Duration) time.Duration {
	n := getEnvAsIntOrDefault(key, 0)
	if n <= 0 {
		return defaultVal
	}
	return time.Duration(n) * time.Second
}

func getEnvAsListOrDefault(key string, defaultVal []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}
