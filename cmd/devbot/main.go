package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jeeems/devbot/internal/bot"
	"github.com/jeeems/devbot/internal/commands"
	"github.com/jeeems/devbot/internal/config"
	"github.com/jeeems/devbot/internal/cooldown"
	"github.com/jeeems/devbot/internal/githubapi"
	"github.com/jeeems/devbot/internal/llm"
	"github.com/jeeems/devbot/internal/router"
)

func main() {
	log.Println("🚀 Starting DevBot...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Optional Redis Tree Cache ────
	var treeCache *githubapi.TreeCache
	if cfg.RedisURL != "" {
		var err error
		treeCache, err = githubapi.NewTreeCache(cfg.RedisURL, time.Duration(cfg.TreeCacheTTLSec)*time.Second)
		if err != nil {
			log.Fatalf("✗ Redis connection failed: %v", err)
		}
		defer treeCache.Close()
		log.Println("✓ Redis tree cache connected")
	} else {
		log.Println("• Redis not configured, tree caching disabled")
	}

	// ──── Step 3: Initialize GitHub Client ────
	githubClient := githubapi.NewClient(cfg.GitHubToken, treeCache)
	if githubClient.Configured() {
		log.Println("✓ GitHub client initialized")
	} else {
		log.Println("✗ GITHUB_TOKEN not set, repository commands disabled")
	}

	// ──── Step 4: Initialize LLM Provider ────
	llmService, err := buildLLMService(cfg)
	if err != nil {
		log.Fatalf("✗ LLM provider initialization failed: %v", err)
	}
	if llmService != nil {
		defer llmService.Close()
		log.Printf("✓ %s provider initialized (%d concurrent requests)", llmService.Name(), cfg.LLMConcurrentReqs)
	} else {
		log.Println("✗ No LLM API key set, AI commands disabled")
	}

	// ──── Step 5: Build Command Router ────
	cmdRouter := commands.NewRouter(cfg.CommandPrefix, cooldown.NewLimiter())
	commands.NewAnalysisCommands(githubClient, llmService).Register(cmdRouter)

	// ──── Step 6: Connect to Discord ────
	devBot, err := bot.New(cfg.DiscordToken, cfg.CommandPrefix, cmdRouter, time.Duration(cfg.CommandTimeoutSec)*time.Second)
	if err != nil {
		log.Fatalf("✗ Discord session creation failed: %v", err)
	}

	commands.NewGeneralCommands(devBot.Session(), llmService, cfg.CommandPrefix,
		githubClient.Configured(), cfg.GroqAPIKey != "", cfg.GeminiAPIKey != "").Register(cmdRouter)

	if err := devBot.Start(); err != nil {
		log.Fatalf("✗ Discord connection failed: %v", err)
	}
	log.Println("✓ Discord gateway connected")

	// ──── Step 7: Start Health Endpoint ────
	startedAt := time.Now()
	statusFn := func() router.Status {
		guilds := 0
		if s := devBot.Session(); s != nil && s.State != nil {
			guilds = len(s.State.Guilds)
		}
		return router.Status{
			Uptime: time.Since(startedAt).Round(time.Second).String(),
			Guilds: guilds,
			APIs: map[string]bool{
				"github": githubClient.Configured(),
				"groq":   cfg.GroqAPIKey != "",
				"gemini": cfg.GeminiAPIKey != "",
			},
			CacheReady: treeCache != nil,
		}
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router.New(statusFn),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		devBot.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ DevBot ready, health endpoint on http://localhost:%s/health", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
	log.Println("Bot shutdown complete")
}

func buildLLMService(cfg *config.Config) (*llm.Service, error) {
	switch cfg.LLMProvider {
	case "groq":
		if cfg.GroqAPIKey == "" {
			return nil, nil
		}
		return llm.NewService(llm.NewGroqProvider(cfg.GroqAPIKey, cfg.GroqModel), cfg.LLMConcurrentReqs), nil
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil, nil
		}
		provider, err := llm.NewGeminiProvider(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, err
		}
		return llm.NewService(provider, cfg.LLMConcurrentReqs), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.LLMProvider)
	}
}
