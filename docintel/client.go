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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/voicetask/docingest/internal/retry"
)

const subscriptionKeyHeader = "Ocp-Apim-Subscription-Key"

// Client implements Analyzer against the document-analysis REST API.
// An analysis is submitted, then its asynchronous result is polled until
// the service reports completion.
type Client struct {
	config     *Config
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
// Default is an http.Client with a 30-second request timeout.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// newClient is an internal constructor that returns the concrete type.
func newClient(config *Config, opts ...Option) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		config:     config,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     slog.Default().With("component", "docintel-client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// NewClient creates a document-analysis client for the configured service.
//
// Returns the Analyzer interface to enforce abstraction.
func NewClient(config *Config, opts ...Option) (Analyzer, error) {
	return newClient(config, opts...)
}

// analyzeStatus mirrors the service's operation-result payload. Only the
// fields the pipeline consumes are mapped.
type analyzeStatus struct {
	Status        string `json:"status"`
	AnalyzeResult *struct {
		Pages []struct {
			Lines []struct {
				Content string `json:"content"`
			} `json:"lines"`
		} `json:"pages"`
	} `json:"analyzeResult"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Analyze submits content to the read model and blocks until the remote
// analysis completes. Submission is retried with exponential backoff;
// polling is bounded by the configured poll timeout.
func (c *Client) Analyze(ctx context.Context, content []byte) (*Result, error) {
	var operationURL string
	err := retry.WithBackoff(ctx, func() error {
		var submitErr error
		operationURL, submitErr = c.submit(ctx, content)
		return submitErr
	}, c.config.MaxRetries, c.config.RetryBaseDelay)
	if err != nil {
		c.logger.Error("failed to submit document for analysis", "err", err)
		return nil, err
	}

	c.logger.Debug("document submitted for analysis", "bytes", len(content))
	return c.poll(ctx, operationURL)
}

// submit posts the document and returns the operation URL to poll.
func (c *Client) submit(ctx context.Context, content []byte) (string, error) {
	url := fmt.Sprintf("%s/formrecognizer/documentModels/%s:analyze?api-version=%s",
		c.config.Endpoint, c.config.Model, c.config.APIVersion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(content))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set(subscriptionKeyHeader, c.config.Key)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("%w: submit returned %d: %s", ErrUnexpectedStatus, resp.StatusCode, body)
	}

	operationURL := resp.Header.Get("Operation-Location")
	if operationURL == "" {
		return "", fmt.Errorf("%w: missing Operation-Location header", ErrUnexpectedStatus)
	}
	return operationURL, nil
}

// poll queries the operation URL until the analysis succeeds, fails, or the
// poll budget is exhausted.
func (c *Client) poll(ctx context.Context, operationURL string) (*Result, error) {
	deadline := time.Now().Add(c.config.PollTimeout)

	for {
		status, err := c.fetchStatus(ctx, operationURL)
		if err != nil {
			return nil, err
		}

		switch status.Status {
		case "succeeded":
			return convertResult(status), nil
		case "failed":
			if status.Error != nil {
				return nil, fmt.Errorf("%w: %s: %s", ErrAnalysisFailed, status.Error.Code, status.Error.Message)
			}
			return nil, ErrAnalysisFailed
		}

		if time.Now().After(deadline) {
			return nil, fmt.Errorf("%w: waited %s", ErrPollTimeout, c.config.PollTimeout)
		}

		timer := time.NewTimer(c.config.PollInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

func (c *Client) fetchStatus(ctx context.Context, operationURL string) (*analyzeStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, operationURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set(subscriptionKeyHeader, c.config.Key)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: poll returned %d: %s", ErrUnexpectedStatus, resp.StatusCode, body)
	}

	var status analyzeStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, err
	}
	return &status, nil
}

func convertResult(status *analyzeStatus) *Result {
	result := &Result{}
	if status.AnalyzeResult == nil {
		return result
	}
	result.Pages = make([]Page, len(status.AnalyzeResult.Pages))
	for i, page := range status.AnalyzeResult.Pages {
		lines := make([]Line, len(page.Lines))
		for j, line := range page.Lines {
			lines[j] = Line{Content: line.Content}
		}
		result.Pages[i] = Page{Lines: lines}
	}
	return result
}
