// Package config handles XDG configuration directory and file paths.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const (
	// AppName is the application directory name.
	AppName = "taskbridge"

	// OAuthClientFile is the OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"

	// DefaultBaseURL is the remote service origin.
	DefaultBaseURL = "https://www.taskade.com"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// BaseURL is the remote service origin. Overridable for tests and
	// self-hosted deployments via TASKBRIDGE_BASE_URL.
	BaseURL string

	// GraphQL selects the older GraphQL API revision instead of REST.
	GraphQL bool

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// OAuthClient holds the registered OAuth2 application credentials.
type OAuthClient struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/taskbridge or $HOME/.config/taskbridge.
// A .env file in the working directory is loaded if present; environment
// variables win over file contents.
func New(configDir string) (*Config, error) {
	// Best effort; a missing .env is the normal case.
	_ = godotenv.Load()

	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}

	baseURL := os.Getenv("TASKBRIDGE_BASE_URL")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Config{Dir: dir, BaseURL: baseURL}, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if OAuth client credentials are available, either
// from the credentials file or from the environment.
func (c *Config) HasOAuthClient() bool {
	if os.Getenv("TASKBRIDGE_CLIENT_ID") != "" && os.Getenv("TASKBRIDGE_CLIENT_SECRET") != "" {
		return true
	}
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// LoadOAuthClient reads the OAuth client credentials. Environment variables
// TASKBRIDGE_CLIENT_ID / TASKBRIDGE_CLIENT_SECRET take precedence over the
// credentials file.
func (c *Config) LoadOAuthClient() (OAuthClient, error) {
	id := os.Getenv("TASKBRIDGE_CLIENT_ID")
	secret := os.Getenv("TASKBRIDGE_CLIENT_SECRET")
	if id != "" && secret != "" {
		return OAuthClient{ClientID: id, ClientSecret: secret}, nil
	}

	data, err := os.ReadFile(c.OAuthClientPath())
	if err != nil {
		return OAuthClient{}, fmt.Errorf("failed to read %s: %w", OAuthClientFile, err)
	}

	var client OAuthClient
	if err := json.Unmarshal(data, &client); err != nil {
		return OAuthClient{}, fmt.Errorf("invalid %s: %w", OAuthClientFile, err)
	}
	if client.ClientID == "" || client.ClientSecret == "" {
		return OAuthClient{}, fmt.Errorf("%s is missing client_id or client_secret", OAuthClientFile)
	}
	return client, nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}
