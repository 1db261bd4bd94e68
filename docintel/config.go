// Copyright 2025 Voicetask Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package docintel

import (
	"strings"
	"time"
)

// Config holds configuration for the remote document-analysis service.
type Config struct {
	// Endpoint is the base URL of the service.
	// Example: "https://myresource.cognitiveservices.azure.com"
	Endpoint string

	// Key is the subscription key used to authenticate requests.
	Key string

	// APIVersion selects the service API version.
	// Default: "2023-07-31"
	APIVersion string

	// Model is the analysis model identifier.
	// Default: "prebuilt-read"
	Model string

	// PollInterval is the delay between result polls for an in-flight analysis.
	// Default: 1s
	PollInterval time.Duration

	// PollTimeout bounds the total time spent waiting for one analysis.
	// Default: 2m
	PollTimeout time.Duration

	// MaxRetries is the maximum number of submission attempts.
	// Default: 3
	MaxRetries int

	// RetryBaseDelay is the base delay for exponential backoff between
	// submission attempts. Default: 1s
	RetryBaseDelay time.Duration
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithEndpoint sets the service endpoint URL.
func WithEndpoint(endpoint string) ConfigOption {
	return func(c *Config) {
		c.Endpoint = endpoint
	}
}

// WithKey sets the subscription key.
func WithKey(key string) ConfigOption {
	return func(c *Config) {
		c.Key = key
	}
}

// WithAPIVersion sets the service API version.
func WithAPIVersion(version string) ConfigOption {
	return func(c *Config) {
		c.APIVersion = version
	}
}

// WithModel sets the analysis model identifier.
func WithModel(model string) ConfigOption {
	return func(c *Config) {
		c.Model = model
	}
}

// WithPollInterval sets the delay between result polls.
func WithPollInterval(interval time.Duration) ConfigOption {
	return func(c *Config) {
		c.PollInterval = interval
	}
}

// WithPollTimeout bounds the total wait for one analysis.
func WithPollTimeout(timeout time.Duration) ConfigOption {
	return func(c *Config) {
		c.PollTimeout = timeout
	}
}

// WithMaxRetries sets the maximum number of submission attempts.
func WithMaxRetries(retries int) ConfigOption {
	return func(c *Config) {
		c.MaxRetries = retries
	}
}

// DefaultConfig returns a Config with defaults for everything except the
// endpoint and key, which have no sensible defaults and must be supplied.
func DefaultConfig() *Config {
	return &Config{
		APIVersion:     "2023-07-31",
		Model:          "prebuilt-read",
		PollInterval:   time.Second,
		PollTimeout:    2 * time.Minute,
		MaxRetries:     3,
		RetryBaseDelay: time.Second,
	}
}

// NewConfig creates a Config with defaults and applies the provided options.
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// Trailing slashes on the endpoint are removed so URL assembly is uniform.
func (c *Config) Normalize() {
	c.Endpoint = strings.TrimSuffix(strings.TrimSpace(c.Endpoint), "/")
	if c.APIVersion == "" {
		c.APIVersion = "2023-07-31"
	}
	if c.Model == "" {
		c.Model = "prebuilt-read"
	}
	if c.PollInterval <= 0 {
		c.PollInterval = time.Second
	}
	if c.PollTimeout <= 0 {
		c.PollTimeout = 2 * time.Minute
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = 3
	}
	if c.RetryBaseDelay <= 0 {
		c.RetryBaseDelay = time.Second
	}
}

// Validate checks that the configuration is complete.
// It normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.Endpoint == "" || c.Key == "" {
		return ErrMissingCredentials
	}
	return nil
}
