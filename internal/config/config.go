// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 COTSense Contributors

// Package config loads the COTSense configuration from file, environment,
// and defaults.
package config

import (
	"errors"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	cotserr "github.com/cotsense/cotsense/pkg/errors"
)

// Provider names accepted for embedding and explanation backends.
const (
	ProviderGoogle    = "google"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderNone      = "none"
)

// Config is the top-level COTSense configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Search    SearchConfig    `mapstructure:"search"`
	Embedding EmbeddingConfig `mapstructure:"embedding"`
	Explain   ExplainConfig   `mapstructure:"explain"`
}

// ServerConfig controls how the API server listens for connections.
type ServerConfig struct {
	Listen         string   `mapstructure:"listen"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// StorageConfig locates the data directory holding the component database
// and vector index.
type StorageConfig struct {
	Path       string `mapstructure:"path"`
	Dimensions int    `mapstructure:"dimensions"`
}

// SearchConfig bounds recommendation result sizes.
type SearchConfig struct {
	DefaultTopK int `mapstructure:"default_top_k"`
	MaxTopK     int `mapstructure:"max_top_k"`
}

// EmbeddingConfig selects the embedding provider and credentials.
// APIKey may be a literal key or a keyring:// reference.
type EmbeddingConfig struct {
	Provider string `mapstructure:"provider"`
	APIKey   string `mapstructure:"api_key"`
	Model    string `mapstructure:"model"`
	BaseURL  string `mapstructure:"base_url"`
}

// ExplainConfig selects the explanation provider and credentials.
// Provider "none" disables AI explanations; clients fall back to locally
// synthesized text.
type ExplainConfig struct {
	Provider string `mapstructure:"provider"`
	APIKey   string `mapstructure:"api_key"`
	Model    string `mapstructure:"model"`
}

// SetDefaults installs the default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.listen", "127.0.0.1:8000")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("storage.path", "data")
	v.SetDefault("storage.dimensions", 768)
	v.SetDefault("search.default_top_k", 10)
	v.SetDefault("search.max_top_k", 100)
	v.SetDefault("embedding.provider", ProviderGoogle)
	v.SetDefault("embedding.model", "text-embedding-004")
	v.SetDefault("explain.provider", ProviderNone)
	v.SetDefault("explain.model", "gemini-2.0-flash")
}

// SetupEnv wires environment variable overrides (prefix COTSENSE_).
func SetupEnv(v *viper.Viper) {
	v.SetEnvPrefix("COTSENSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load reads configuration from the given path (or defaults) with
// environment variable overrides.
func Load(path string) (*Config, error) {
	v := viper.New()

	SetDefaults(v)
	SetupEnv(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, cotserr.Errorf(cotserr.CodeConfigLoadReadFailure, "reading config %s: %w", path, err)
		}
	}

	return FromViper(v)
}

// FromViper unmarshals and validates a fully populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, cotserr.Errorf(cotserr.CodeConfigValidateInvalidValue, "unmarshalling config: %w", err)
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, cotserr.Errorf(cotserr.CodeConfigValidateInvalidValue, "validating config: %w", errors.Join(errs...))
	}

	return &cfg, nil
}

// Validate checks the configuration for logical errors. It returns all
// validation errors found rather than stopping at the first one.
func (c *Config) Validate() []error {
	var errs []error

	errs = append(errs, c.validateServer()...)
	errs = append(errs, c.validateStorage()...)
	errs = append(errs, c.validateSearch()...)
	errs = append(errs, c.validateProviders()...)

	return errs
}

func (c *Config) validateServer() []error {
	var errs []error

	if c.Server.Listen == "" {
		errs = append(errs, cotserr.Errorf(cotserr.CodeConfigValidateInvalidValue, "config: server.listen must not be empty"))
		return errs
	}

	_, portStr, err := net.SplitHostPort(c.Server.Listen)
	if err != nil {
		errs = append(errs, cotserr.Errorf(cotserr.CodeConfigValidateInvalidValue,
			"config: server.listen must be a valid host:port address, got %q: %w",
			c.Server.Listen, err,
		))
		return errs
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		errs = append(errs, cotserr.Errorf(cotserr.CodeConfigValidateInvalidValue,
			"config: server.listen port must be a number, got %q",
			portStr,
		))
	} else if port < 1 || port > 65535 {
		errs = append(errs, cotserr.Errorf(cotserr.CodeConfigValidateInvalidValue,
			"config: server.listen port must be between 1 and 65535, got %d",
			port,
		))
	}

	return errs
}

func (c *Config) validateStorage() []error {
	var errs []error

	if c.Storage.Path == "" {
		errs = append(errs, cotserr.Errorf(cotserr.CodeConfigValidateInvalidValue, "config: storage.path must not be empty"))
	}

	if c.Storage.Dimensions <= 0 {
		errs = append(errs, cotserr.Errorf(cotserr.CodeConfigValidateInvalidValue,
			"config: storage.dimensions must be greater than 0, got %d",
			c.Storage.Dimensions,
		))
	}

	return errs
}

func (c *Config) validateSearch() []error {
	var errs []error

	if c.Search.DefaultTopK <= 0 {
		errs = append(errs, cotserr.Errorf(cotserr.CodeConfigValidateInvalidValue,
			"config: search.default_top_k must be greater than 0, got %d",
			c.Search.DefaultTopK,
		))
	}

	if c.Search.MaxTopK <= 0 {
		errs = append(errs, cotserr.Errorf(cotserr.CodeConfigValidateInvalidValue,
			"config: search.max_top_k must be greater than 0, got %d",
			c.Search.MaxTopK,
		))
	} else if c.Search.DefaultTopK > c.Search.MaxTopK {
		errs = append(errs, cotserr.Errorf(cotserr.CodeConfigValidateInvalidValue,
			"config: search.default_top_k must not exceed search.max_top_k, got %d > %d",
			c.Search.DefaultTopK, c.Search.MaxTopK,
		))
	}

	return errs
}

func (c *Config) validateProviders() []error {
	var errs []error

	validEmbedders := map[string]bool{ProviderGoogle: true, ProviderOpenAI: true}
	if !validEmbedders[c.Embedding.Provider] {
		errs = append(errs, cotserr.Errorf(cotserr.CodeConfigValidateInvalidValue,
			"config: embedding.provider must be one of [google, openai], got %q",
			c.Embedding.Provider,
		))
	}

	if c.Embedding.Model == "" {
		errs = append(errs, cotserr.Errorf(cotserr.CodeConfigValidateInvalidValue, "config: embedding.model must not be empty"))
	}

	validExplainers := map[string]bool{ProviderGoogle: true, ProviderAnthropic: true, ProviderNone: true}
	if !validExplainers[c.Explain.Provider] {
		errs = append(errs, cotserr.Errorf(cotserr.CodeConfigValidateInvalidValue,
			"config: explain.provider must be one of [google, anthropic, none], got %q",
			c.Explain.Provider,
		))
	}

	if c.Explain.Provider != ProviderNone && c.Explain.Model == "" {
		errs = append(errs, cotserr.Errorf(cotserr.CodeConfigValidateInvalidValue, "config: explain.model must not be empty"))
	}

	return errs
}

// ExplainEnabled reports whether an AI explanation provider is configured.
func (c *Config) ExplainEnabled() bool {
	return c.Explain.Provider != ProviderNone && c.Explain.Provider != "" && c.Explain.APIKey != ""
}
