// Package config resolves the router's startup configuration once,
// from environment variables and CLI flags, into a single immutable
// Config passed down to every collaborator. Nothing after startup in
// cmd/router's run re-reads the environment.
package config

import (
	"flag"
	"os"
	"strconv"
	"time"
)

// Config is the fully-resolved, immutable process configuration.
type Config struct {
	// Ollama backend
	OllamaURL           string
	OllamaHeaderTimeout  time.Duration
	OllamaBodyTimeout    time.Duration
	OllamaKeepAlive      string

	// Web search collaborators, tried in order: SerpAPI, SearXNG, DuckDuckGo
	SearchAPI    string
	SearchAPIKey string
	SearXNGURL   string

	// Media collaborators
	A1111URL   string
	FFmpegPath string

	// HTTP surface
	Port    string
	BaseURL string

	// CLI-only knobs (no env equivalent in spec.md §6)
	DataDir string
	Fast    bool
	Verbose bool
}

const (
	defaultOllamaURL          = "http://localhost:11434"
	defaultOllamaHeaderMillis = 10_000
	defaultOllamaBodyMillis   = 120_000
	defaultPort               = "8080"
	defaultDataDir            = "./data"
)

// Load resolves Config from the process environment and the given
// argv (excluding the program name), in that order: flags override
// env vars, env vars override built-in defaults.
func Load(args []string) (Config, error) {
	cfg := Config{
		OllamaURL:           getenv("OLLAMA_URL", defaultOllamaURL),
		OllamaHeaderTimeout: millisEnv("OLLAMA_HEADERS_TIMEOUT_MS", defaultOllamaHeaderMillis),
		OllamaBodyTimeout:   millisEnv("OLLAMA_BODY_TIMEOUT_MS", defaultOllamaBodyMillis),
		OllamaKeepAlive:     getenv("OLLAMA_KEEP_ALIVE", "5m"),
		SearchAPI:           os.Getenv("SEARCH_API"),
		SearchAPIKey:        os.Getenv("SEARCH_API_KEY"),
		SearXNGURL:          os.Getenv("SEARXNG_URL"),
		A1111URL:            os.Getenv("A1111_URL"),
		FFmpegPath:          getenv("FFMPEG_PATH", "ffmpeg"),
		Port:                getenv("PORT", defaultPort),
		BaseURL:             os.Getenv("BASE_URL"),
		DataDir:             defaultDataDir,
	}

	fs := flag.NewFlagSet("router", flag.ContinueOnError)
	dataDir := fs.String("data-dir", cfg.DataDir, "directory for file-backed stores (memory, cache, doc index)")
	fast := fs.Bool("fast", false, "prefer fast-tier models for every route")
	verbose := fs.Bool("verbose", false, "enable verbose startup logging")
	port := fs.String("port", cfg.Port, "HTTP listen port")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg.DataDir = *dataDir
	cfg.Fast = *fast
	cfg.Verbose = *verbose
	cfg.Port = *port

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func millisEnv(key string, fallbackMillis int) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return time.Duration(fallbackMillis) * time.Millisecond
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return time.Duration(fallbackMillis) * time.Millisecond
	}
	return time.Duration(n) * time.Millisecond
}
