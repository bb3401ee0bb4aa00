package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// devJWTSecret signs tokens only when no history or login is configured.
const devJWTSecret = "dev-only-change-me"

type Config struct {
	// Discord Bot (optional)
	DiscordToken string

	// Discord OAuth2 (optional, enables login for settlement history)
	DiscordClientID     string
	DiscordClientSecret string
	DiscordRedirectURI  string

	// Database (optional, enables settlement history)
	DatabaseURL string

	// Web Server
	WebEnabled   bool
	WebBind      string
	WebUIBaseURL string

	// Session
	JWTSecret string

	// Logging
	LogMode string

	// Presentation
	CurrencySymbol string
	CurrencyPlaces int32
}

func Load() (*Config, error) {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from the given lookup function.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		DiscordToken:        getenv("DISCORD_TOKEN"),
		DatabaseURL:         getenv("DATABASE_URL"),
		WebBind:             get("WEB_BIND", "0.0.0.0:3000"),
		DiscordClientID:     getenv("DISCORD_CLIENT_ID"),
		DiscordClientSecret: getenv("DISCORD_CLIENT_SECRET"),
		DiscordRedirectURI:  get("DISCORD_REDIRECT_URI", "http://localhost:3000/api/auth/callback"),
		JWTSecret:           getenv("JWT_SECRET"),
		LogMode:             get("LOG_MODE", "dev"),
		CurrencySymbol:      get("CURRENCY_SYMBOL", "¥"),
	}

	web, err := strconv.ParseBool(get("WEB_ENABLED", "true"))
	if err != nil {
		return nil, fmt.Errorf("WEB_ENABLED: %w", err)
	}
	cfg.WebEnabled = web

	places, err := strconv.ParseInt(get("CURRENCY_PLACES", "0"), 10, 32)
	if err != nil || places < 0 {
		return nil, fmt.Errorf("CURRENCY_PLACES must be a non-negative integer")
	}
	cfg.CurrencyPlaces = int32(places)

	// Extract base URL from redirect URI
	cfg.WebUIBaseURL = extractBaseURL(cfg.DiscordRedirectURI)

	if (cfg.DiscordClientID == "") != (cfg.DiscordClientSecret == "") {
		return nil, fmt.Errorf("DISCORD_CLIENT_ID and DISCORD_CLIENT_SECRET must be set together")
	}
	if !cfg.WebEnabled && cfg.DiscordToken == "" {
		return nil, fmt.Errorf("nothing to run: set DISCORD_TOKEN or enable the web server")
	}

	// Tokens guard stored history, so a guessable key is only tolerated
	// when there is nothing to guard.
	if cfg.JWTSecret == "" {
		if cfg.WebEnabled && (cfg.DatabaseURL != "" || cfg.OAuthEnabled()) {
			return nil, fmt.Errorf("JWT_SECRET is required when DATABASE_URL or Discord login is set")
		}
		cfg.JWTSecret = devJWTSecret
	}

	return cfg, nil
}

// OAuthEnabled reports whether Discord login is configured.
func (c *Config) OAuthEnabled() bool {
	return c.DiscordClientID != "" && c.DiscordClientSecret != ""
}

func extractBaseURL(redirectURI string) string {
	// e.g., "http://localhost:3000/api/auth/callback" -> "http://localhost:3000"
	parsed, err := url.Parse(redirectURI)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "http://localhost:3000"
	}

	return fmt.Sprintf("%s://%s", parsed.Scheme, parsed.Host)
}
