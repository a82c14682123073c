package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server (health/status endpoint)
	Port string
	Env  string

	// Discord
	DiscordToken  string
	CommandPrefix string

	// GitHub
	GitHubToken string

	// LLM
	LLMProvider       string // "groq" | "gemini"
	GroqAPIKey        string
	GroqModel         string
	GeminiAPIKey      string
	GeminiModel       string
	LLMConcurrentReqs int

	// Redis (optional repository tree cache)
	RedisURL        string
	TreeCacheTTLSec int

	// Command execution
	CommandTimeoutSec int
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:              getEnvOrDefault("PORT", "8080"),
		Env:               getEnvOrDefault("ENV", "development"),
		DiscordToken:      mustGetEnv("DISCORD_TOKEN"),
		CommandPrefix:     getEnvOrDefault("COMMAND_PREFIX", "!"),
		GitHubToken:       getEnvOrDefault("GITHUB_TOKEN", ""),
		LLMProvider:       getEnvOrDefault("LLM_PROVIDER", "groq"),
		GroqAPIKey:        getEnvOrDefault("GROQ_API_KEY", ""),
		GroqModel:         getEnvOrDefault("GROQ_MODEL", "llama3-8b-8192"),
		GeminiAPIKey:      getEnvOrDefault("GEMINI_API_KEY", ""),
		GeminiModel:       getEnvOrDefault("GEMINI_MODEL", "gemini-1.5-flash"),
		LLMConcurrentReqs: getEnvAsIntOrDefault("LLM_CONCURRENT_REQUESTS", 3),
		RedisURL:          getEnvOrDefault("REDIS_URL", ""),
		TreeCacheTTLSec:   getEnvAsIntOrDefault("TREE_CACHE_TTL_SECONDS", 300),
		CommandTimeoutSec: getEnvAsIntOrDefault("COMMAND_TIMEOUT_SECONDS", 180),
	}

	return cfg
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
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
