// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the application configuration loaded from environment
// variables. It is built once at startup and passed into every component
// constructor; nothing mutates it afterwards.
type Config struct {
	PageID      string
	AccessToken string
	APIVersion  string

	OllamaHost    string
	OllamaModel   string
	OllamaTimeout time.Duration

	PollInterval  time.Duration
	LookbackPosts int
	CommentLimit  int
	DryRun        bool

	BrandName     string
	BrandVoice    string
	MaxReplyChars int

	Temperature float64
	TopP        float64
	MaxTokens   int

	ListenAddr string
	DBPath     string
}

// Load reads configuration from environment variables and returns a
// validated Config. PAGEPILOT_PAGE_ID and PAGEPILOT_ACCESS_TOKEN are
// required; everything else has a default. Optional variables:
// PAGEPILOT_API_VERSION (v20.0), PAGEPILOT_OLLAMA_HOST
// (http://127.0.0.1:11434), PAGEPILOT_OLLAMA_MODEL (llama3.1),
// PAGEPILOT_OLLAMA_TIMEOUT (120s), PAGEPILOT_POLL_INTERVAL (30s),
// PAGEPILOT_LOOKBACK_POSTS (10), PAGEPILOT_COMMENT_LIMIT (50),
// PAGEPILOT_DRY_RUN (true), PAGEPILOT_BRAND_NAME, PAGEPILOT_BRAND_VOICE,
// PAGEPILOT_MAX_REPLY_CHARS (700), PAGEPILOT_TEMPERATURE (0.4),
// PAGEPILOT_TOP_P (0.9), PAGEPILOT_MAX_TOKENS (220),
// PAGEPILOT_LISTEN_ADDR (127.0.0.1:8080), PAGEPILOT_DB_PATH (pagepilot.db).
func Load() (*Config, error) {
	pageID := strings.TrimSpace(os.Getenv("PAGEPILOT_PAGE_ID"))
	accessToken := strings.TrimSpace(os.Getenv("PAGEPILOT_ACCESS_TOKEN"))
	if pageID == "" || accessToken == "" {
		return nil, fmt.Errorf("missing PAGEPILOT_PAGE_ID or PAGEPILOT_ACCESS_TOKEN in environment")
	}

	cfg := &Config{
		PageID:        pageID,
		AccessToken:   accessToken,
		APIVersion:    envString("PAGEPILOT_API_VERSION", "v20.0"),
		OllamaHost:    envString("PAGEPILOT_OLLAMA_HOST", "http://127.0.0.1:11434"),
		OllamaModel:   envString("PAGEPILOT_OLLAMA_MODEL", "llama3.1"),
		BrandName:     envString("PAGEPILOT_BRAND_NAME", "Your Page"),
		BrandVoice:    envString("PAGEPILOT_BRAND_VOICE", "Helpful, friendly, concise."),
		ListenAddr:    envString("PAGEPILOT_LISTEN_ADDR", "127.0.0.1:8080"),
		DBPath:        envString("PAGEPILOT_DB_PATH", "pagepilot.db"),
		OllamaTimeout: 120 * time.Second,
		PollInterval:  30 * time.Second,
		LookbackPosts: 10,
		CommentLimit:  50,
		DryRun:        true,
		MaxReplyChars: 700,
		Temperature:   0.4,
		TopP:          0.9,
		MaxTokens:     220,
	}

	var err error
	if cfg.OllamaTimeout, err = envDuration("PAGEPILOT_OLLAMA_TIMEOUT", cfg.OllamaTimeout); err != nil {
		return nil, err
	}
	if cfg.PollInterval, err = envDuration("PAGEPILOT_POLL_INTERVAL", cfg.PollInterval); err != nil {
		return nil, err
	}
	if cfg.LookbackPosts, err = envInt("PAGEPILOT_LOOKBACK_POSTS", cfg.LookbackPosts); err != nil {
		return nil, err
	}
	if cfg.CommentLimit, err = envInt("PAGEPILOT_COMMENT_LIMIT", cfg.CommentLimit); err != nil {
		return nil, err
	}
	if cfg.MaxReplyChars, err = envInt("PAGEPILOT_MAX_REPLY_CHARS", cfg.MaxReplyChars); err != nil {
		return nil, err
	}
	if cfg.MaxTokens, err = envInt("PAGEPILOT_MAX_TOKENS", cfg.MaxTokens); err != nil {
		return nil, err
	}
	if cfg.Temperature, err = envFloat("PAGEPILOT_TEMPERATURE", cfg.Temperature); err != nil {
		return nil, err
	}
	if cfg.TopP, err = envFloat("PAGEPILOT_TOP_P", cfg.TopP); err != nil {
		return nil, err
	}
	cfg.DryRun = envBool("PAGEPILOT_DRY_RUN", cfg.DryRun)

	return cfg, nil
}

func envString(name, def string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	return def
}

func envDuration(name string, def time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(name)
	if !ok {
		return def, nil
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s has invalid duration %q: %w", name, v, err)
	}
	return parsed, nil
}

func envInt(name string, def int) (int, error) {
	v, ok := os.LookupEnv(name)
	if !ok {
		return def, nil
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("%s has invalid integer %q: %w", name, v, err)
	}
	return parsed, nil
}

func envFloat(name string, def float64) (float64, error) {
	v, ok := os.LookupEnv(name)
	if !ok {
		return def, nil
	}
	parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, fmt.Errorf("%s has invalid number %q: %w", name, v, err)
	}
	return parsed, nil
}

// envBool accepts the usual truthy spellings (1, true, yes, y, on); any
// other value means false. Absent means the default.
func envBool(name string, def bool) bool {
	v, ok := os.LookupEnv(name)
	if !ok {
		return def
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y", "on":
		return true
	default:
		return false
	}
}
