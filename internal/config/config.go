// Package config loads OpenSearch connection settings from the process
// environment, with an optional .env file in the working directory acting
// as a fallback for values the environment does not provide.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// DefaultHost is used when OPENSEARCH_HOST is not set.
const DefaultHost = "https://localhost:9200"

// ErrMissingCredentials indicates that OPENSEARCH_USERNAME or
// OPENSEARCH_PASSWORD was not provided. This is fatal at startup.
var ErrMissingCredentials = errors.New("missing required OpenSearch configuration: OPENSEARCH_USERNAME and OPENSEARCH_PASSWORD are required")

// Config holds the OpenSearch connection settings.
type Config struct {
	Host      string
	Username  string
	Password  string
	TLSVerify bool
}

// Load reads configuration from the environment and an optional .env file.
// Real environment variables take precedence over the file.
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile is Load with an explicit env-file path, used by tests.
func LoadFile(envFile string) (*Config, error) {
	v := viper.New()
	v.SetDefault("opensearch_host", DefaultHost)
	v.SetDefault("opensearch_tls_verify", false)

	for _, key := range []string{
		"opensearch_host",
		"opensearch_username",
		"opensearch_password",
		"opensearch_tls_verify",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable %s: %w", key, err)
		}
	}

	// The .env file is optional; only a present-but-unreadable file is an
	// error.
	if _, err := os.Stat(envFile); err == nil {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", envFile, err)
		}
	}

	cfg := &Config{
		Host:      v.GetString("opensearch_host"),
		Username:  v.GetString("opensearch_username"),
		Password:  v.GetString("opensearch_password"),
		TLSVerify: v.GetBool("opensearch_tls_verify"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the required credentials are present.
func (c *Config) Validate() error {
	if c.Username == "" || c.Password == "" {
		return ErrMissingCredentials
	}
	return nil
}
