package config

import (
	"os"
	"reflect"
	"testing"
	"time"
)

func TestGetEnvOrDefault(t *testing.T) {
	tests := []struct {
		name       string
		key        string
		envValue   string
		defaultVal string
		expected   string
	}{
		{"uses env value", "TEST_VAR_1", "hello", "default", "hello"},
		{"uses default when empty", "TEST_VAR_2", "", "default", "default"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.envValue != "" {
				t.Setenv(tc.key, tc.envValue)
			}

			result := getEnvOrDefault(tc.key, tc.defaultVal)
			if result != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, result)
			}
		})
	}
}

func TestGetEnvAsIntOrDefault(t *testing.T) {
	tests := []struct {
		name       string
		key        string
		envValue   string
		defaultVal int
		expected   int
	}{
		{"parses integer", "TEST_INT_1", "42", 10, 42},
		{"uses default for empty", "TEST_INT_2", "", 10, 10},
		{"uses default for non-numeric", "TEST_INT_3", "abc", 10, 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.envValue != "" {
				t.Setenv(tc.key, tc.envValue)
			}

			result := getEnvAsIntOrDefault(tc.key, tc.defaultVal)
			if result != tc.expected {
				t.Errorf("Expected %d, got %d", tc.expected, result)
			}
		})
	}
}

func TestGetEnvAsSecondsOrDefault(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		expected time.Duration
	}{
		{"parses seconds", "7", 7 * time.Second},
		{"uses default for zero", "0", 25 * time.Second},
		{"uses default for negative", "-3", 25 * time.Second},
		{"uses default for garbage", "soon", 25 * time.Second},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("TEST_SECONDS", tc.envValue)

			result := getEnvAsSecondsOrDefault("TEST_SECONDS", 25*time.Second)
			if result != tc.expected {
				t.Errorf("Expected %v, got %v", tc.expected, result)
			}
		})
	}
}

func TestGetEnvAsListOrDefault(t *testing.T) {
	t.Setenv("TEST_LIST", " https://a.example , ,https://b.example")

	got := getEnvAsListOrDefault("TEST_LIST", []string{"*"})
	want := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}

	os.Unsetenv("TEST_LIST_MISSING")
	if got := getEnvAsListOrDefault("TEST_LIST_MISSING", []string{"*"}); !reflect.DeepEqual(got, []string{"*"}) {
		t.Errorf("Expected default list, got %v", got)
	}
}

func TestLoad_SelectsCredentialByProvider(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "Gemini")

	cfg := Load()
	if cfg.Provider != ProviderGemini {
		t.Errorf("Expected provider %q, got %q", ProviderGemini, cfg.Provider)
	}
	if cfg.APIKeyEnv != "GEMINI_API_KEY" {
		t.Errorf("Expected GEMINI_API_KEY, got %q", cfg.APIKeyEnv)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("LLM_TIMEOUT_SECONDS", "")

	cfg := Load()
	if cfg.Provider != ProviderOpenAI || cfg.APIKeyEnv != "OPENAI_API_KEY" {
		t.Errorf("Expected openai defaults, got %q / %q", cfg.Provider, cfg.APIKeyEnv)
	}
	if cfg.LLMTimeout != 25*time.Second {
		t.Errorf("Expected 25s LLM timeout, got %v", cfg.LLMTimeout)
	}
}

func TestAPIKey_ReadsEnvironmentAtCallTime(t *testing.T) {
	cfg := &Config{APIKeyEnv: "TEST_PROVIDER_KEY"}

	t.Setenv("TEST_PROVIDER_KEY", "")
	if cfg.APIKey() != "" {
		t.Fatal("Expected empty key before it is set")
	}

	t.Setenv("TEST_PROVIDER_KEY", "sk-later")
	if cfg.APIKey() != "sk-later" {
		t.Errorf("Expected key set after construction, got %q", cfg.APIKey())
	}
}

func TestLoadProxy_Defaults(t *testing.T) {
	t.Setenv("PROXY_TIMEOUT_SECONDS", "")
	t.Setenv("BACKEND_URL", "https://backend.example/")

	cfg := LoadProxy()
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Expected 30s proxy timeout, got %v", cfg.Timeout)
	}
	if cfg.BackendURL() != "https://backend.example/" {
		t.Errorf("Expected raw backend URL, got %q", cfg.BackendURL())
	}
}
