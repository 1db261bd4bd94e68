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


package ai

import (
	"errors"
	"strings"
)

// Config holds configuration for the embedding/completion provider.
// The provider speaks the Azure-flavored OpenAI API: models are addressed
// by deployment identifier under a resource endpoint.
type Config struct {
	// APIKey authenticates requests to the provider.
	APIKey string

	// Endpoint is the resource base URL.
	// Example: "https://myresource.openai.azure.com"
	Endpoint string

	// APIVersion selects the provider API version.
	// Example: "2023-05-15"
	APIVersion string

	// EmbeddingDeployment is the embedding model deployment identifier.
	// Default: "text-embedding-ada-002"
	EmbeddingDeployment string

	// ChatDeployment is the chat-completion model deployment identifier
	// used for question condensation. Default: "voicetask"
	ChatDeployment string

	// Temperature is the sampling temperature for condensation calls.
	// Default: 0.5
	Temperature float64
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithAPIKey sets the provider API key.
func WithAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.APIKey = key
	}
}

// WithEndpoint sets the provider resource endpoint.
func WithEndpoint(endpoint string) ConfigOption {
	return func(c *Config) {
		c.Endpoint = endpoint
	}
}

// WithAPIVersion sets the provider API version.
func WithAPIVersion(version string) ConfigOption {
	return func(c *Config) {
		c.APIVersion = version
	}
}

// WithEmbeddingDeployment sets the embedding deployment identifier.
func WithEmbeddingDeployment(deployment string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingDeployment = deployment
	}
}

// WithChatDeployment sets the chat-completion deployment identifier.
func WithChatDeployment(deployment string) ConfigOption {
	return func(c *Config) {
		c.ChatDeployment = deployment
	}
}

// WithTemperature sets the condensation sampling temperature.
func WithTemperature(temperature float64) ConfigOption {
	return func(c *Config) {
		c.Temperature = temperature
	}
}

// DefaultConfig returns a Config with the default deployments and sampling
// temperature. Credentials have no defaults and must be supplied.
func DefaultConfig() *Config {
	return &Config{
		APIVersion:          "2023-05-15",
		EmbeddingDeployment: "text-embedding-ada-002",
		ChatDeployment:      "voicetask",
		Temperature:         0.5,
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
func (c *Config) Normalize() {
	c.Endpoint = strings.TrimSuffix(strings.TrimSpace(c.Endpoint), "/")
	if c.EmbeddingDeployment == "" {
		c.EmbeddingDeployment = "text-embedding-ada-002"
	}
	if c.ChatDeployment == "" {
		c.ChatDeployment = "voicetask"
	}
	if c.Temperature <= 0 {
		c.Temperature = 0.5
	}
}

// Validate checks that the configuration is valid and complete.
// It normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.APIKey == "" {
		return errors.New("ai config: APIKey is required")
	}
	if c.Endpoint == "" {
		return errors.New("ai config: Endpoint is required")
	}
	if c.APIVersion == "" {
		return errors.New("ai config: APIVersion is required")
	}
	return nil
}
