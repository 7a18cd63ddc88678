package config

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Config represents the ghtools configuration.
type Config struct {
	// GitHub credentials
	GitHub GitHubConfig `json:"github" mapstructure:"github"`

	// Server
	Server ServerConfig `json:"server" mapstructure:"server"`

	// Logging
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// GitHubConfig holds the credentials for the GitHub API. Both values are
// required; startup fails without them.
type GitHubConfig struct {
	Token    string `json:"token" mapstructure:"token"`
	Username string `json:"username" mapstructure:"username"`
}

// ServerConfig holds the HTTP invocation server configuration.
type ServerConfig struct {
	Host          string `json:"host" mapstructure:"host"`
	Port          int    `json:"port" mapstructure:"port"`
	AuthToken     string `json:"auth_token" mapstructure:"auth_token"`
	CallTimeoutMS int    `json:"call_timeout_ms" mapstructure:"call_timeout_ms"` // 0 = no dispatcher timeout
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `json:"level" mapstructure:"level"`
	File   string `json:"file" mapstructure:"file"`
	Pretty bool   `json:"pretty" mapstructure:"pretty"`
}

// DefaultConfig returns a config with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8080,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Pretty: true,
		},
	}
}

// String returns a JSON representation of the config with the credentials
// masked.
func (c *Config) String() string {
	masked := *c
	masked.GitHub.Token = mask(c.GitHub.Token)
	masked.Server.AuthToken = mask(c.Server.AuthToken)
	data, _ := json.MarshalIndent(&masked, "", "  ")
	return string(data)
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 8 {
		return strings.Repeat("*", len(secret))
	}
	return secret[:4] + strings.Repeat("*", len(secret)-4)
}

// Validate checks if the configuration is valid. Missing credentials are a
// fatal configuration error: the process must not start without them.
func (c *Config) Validate() error {
	if c.GitHub.Token == "" {
		return fmt.Errorf("github token is required (set github.token or GITHUB_TOKEN)")
	}
	if c.GitHub.Username == "" {
		return fmt.Errorf("github username is required (set github.username or GITHUB_USERNAME)")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Server.CallTimeoutMS < 0 {
		return fmt.Errorf("call_timeout_ms cannot be negative")
	}
	return nil
}
