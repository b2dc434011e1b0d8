// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"os"
)

// Config holds all configuration for the indexer and the server.
type Config struct {
	ContentDir       string
	IndexPath        string
	Port             string
	RevalidateSecret string
	GitHubOwner      string
	GitHubRepo       string
	GitHubPath       string
}

// Load reads configuration from environment variables and returns a Config
// struct with defaults applied. Callers that need the .env file loaded should
// do so before calling Load (environment variables take precedence).
func Load() *Config {
	return &Config{
		ContentDir:       getEnv("CONTENT_DIR", "content"),
		IndexPath:        getEnv("INDEX_PATH", "public/search-index.json"),
		Port:             getEnv("PORT", "8080"),
		RevalidateSecret: os.Getenv("REVALIDATE_SECRET"),
		GitHubOwner:      os.Getenv("GITHUB_OWNER"),
		GitHubRepo:       os.Getenv("GITHUB_REPO"),
		GitHubPath:       getEnv("GITHUB_PATH", "content"),
	}
}

// ValidateServer checks the fields the HTTP server cannot run without.
func (c *Config) ValidateServer() error {
	if c.RevalidateSecret == "" {
		return fmt.Errorf("REVALIDATE_SECRET is required")
	}
	return nil
}

// ValidateSync checks the fields the GitHub content sync cannot run without.
func (c *Config) ValidateSync() error {
	if c.GitHubOwner == "" {
		return fmt.Errorf("GITHUB_OWNER is required")
	}
	if c.GitHubRepo == "" {
		return fmt.Errorf("GITHUB_REPO is required")
	}
	return nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
