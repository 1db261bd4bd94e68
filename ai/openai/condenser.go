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


package openai

import (
	"context"
	"errors"
	"log/slog"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"

	"github.com/voicetask/docingest/ai"
)

// ErrNoCompletion indicates the model returned no choices.
var ErrNoCompletion = errors.New("no completion returned by model")

// Condenser implements ai.Condenser using an OpenAI-compatible chat API.
type Condenser struct {
	client      llms.Model
	temperature float64
	logger      *slog.Logger
}

// newCondenser is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newCondenser(config *ai.Config) (*Condenser, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithToken(config.APIKey),
		openai.WithBaseURL(config.Endpoint),
		openai.WithAPIType(openai.APITypeAzure),
		openai.WithAPIVersion(config.APIVersion),
		openai.WithModel(config.ChatDeployment),
	)
	if err != nil {
		return nil, err
	}

	return &Condenser{
		client:      client,
		temperature: config.Temperature,
		logger:      slog.Default().With("component", "openai-condenser"),
	}, nil
}

// NewCondenser creates a condenser using the provided configuration.
//
// Returns ai.Condenser interface to enforce abstraction.
func NewCondenser(config *ai.Config) (ai.Condenser, error) {
	return newCondenser(config)
}

// Condense rewrites question as a standalone question using history for
// context. Remote failures propagate to the caller unchanged; this is a
// best-effort operation with no local fallback.
func (c *Condenser) Condense(ctx context.Context, history, question string) (string, error) {
	prompt := buildCondensePrompt(history, question)

	content := []llms.MessageContent{
		{
			Role: schema.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(systemPrompt),
			},
		},
		{
			Role: schema.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(prompt),
			},
		},
	}

	response, err := c.client.GenerateContent(ctx, content, llms.WithTemperature(c.temperature))
	if err != nil {
		c.logger.Error("failed to condense question", "err", err)
		return "", err
	}

	if len(response.Choices) < 1 {
		return "", ErrNoCompletion
	}

	c.logger.Debug("condensed question", "history", len(history), "question", len(question))
	return response.Choices[0].Content, nil
}
