package config

import (
	"os"
	"testing"
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
				os.Setenv(tc.key, tc.envValue)
				defer os.Unsetenv(tc.key)
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
				os.Setenv(tc.key, tc.envValue)
				defer os.Unsetenv(tc.key)
			}

			result := getEnvAsIntOrDefault(tc.key, tc.defaultVal)
			if result != tc.expected {
				t.Errorf("Expected %d, got %d", tc.expected, result)
			}
		})
	}
}

func TestMustGetEnv_Panics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for missing required env var")
		}
	}()

	os.Unsetenv("NONEXISTENT_REQUIRED_VAR")
	mustGetEnv("NONEXISTENT_REQUIRED_VAR")
}

func TestLoad_Defaults(t *testing.T) {
	os.Setenv("DISCORD_TOKEN", "test-token")
	defer os.Unsetenv("DISCORD_TOKEN")
	os.Unsetenv("COMMAND_PREFIX")
	os.Unsetenv("LLM_PROVIDER")
	os.Unsetenv("GROQ_MODEL")

	cfg := Load()

	if cfg.DiscordToken != "test-token" {
		t.Errorf("Expected discord token 'test-token', got %q", cfg.DiscordToken)
	}
	if cfg.CommandPrefix != "!" {
		t.Errorf("Expected default prefix '!', got %q", cfg.CommandPrefix)
	}
	if cfg.LLMProvider != "groq" {
		t.Errorf("Expected default provider 'groq', got %q", cfg.LLMProvider)
	}
	if cfg.GroqModel != "llama3-8b-8192" {
		t.Errorf("Expected default Groq model 'llama3-8b-8192', got %q", cfg.GroqModel)
	}
	if cfg.TreeCacheTTLSec != 300 {
		t.Errorf("Expected default tree cache TTL 300, got %d", cfg.TreeCacheTTLSec)
	}
}
