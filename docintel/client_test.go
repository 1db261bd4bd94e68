package docintel

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newAnalyzeServer simulates the document-analysis REST API: a submit
// endpoint returning an Operation-Location, and a poll endpoint that
// reports "running" for the first pending polls before the final payload.
func newAnalyzeServer(t *testing.T, pending int, final map[string]any) *httptest.Server {
	t.Helper()

	var polls atomic.Int64
	mux := http.NewServeMux()

	mux.HandleFunc("/formrecognizer/documentModels/prebuilt-read:analyze", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "secret", r.Header.Get("Ocp-Apim-Subscription-Key"))
		require.Equal(t, "2023-07-31", r.URL.Query().Get("api-version"))

		w.Header().Set("Operation-Location", "http://"+r.Host+"/operations/1")
		w.WriteHeader(http.StatusAccepted)
	})

	mux.HandleFunc("/operations/1", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "secret", r.Header.Get("Ocp-Apim-Subscription-Key"))

		if int(polls.Add(1)) <= pending {
			json.NewEncoder(w).Encode(map[string]any{"status": "running"})
			return
		}
		json.NewEncoder(w).Encode(final)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func testConfig(endpoint string) *Config {
	return NewConfig(
		WithEndpoint(endpoint),
		WithKey("secret"),
		WithPollInterval(time.Millisecond),
		WithPollTimeout(time.Second),
	)
}

func TestClient_Analyze(t *testing.T) {
	ctx := context.Background()

	t.Run("succeeds after polling", func(t *testing.T) {
		server := newAnalyzeServer(t, 2, map[string]any{
			"status": "succeeded",
			"analyzeResult": map[string]any{
				"pages": []map[string]any{
					{"lines": []map[string]any{{"content": "first line"}, {"content": "second line"}}},
					{"lines": []map[string]any{{"content": "third line"}}},
				},
			},
		})

		client, err := NewClient(testConfig(server.URL))
		require.NoError(t, err)

		result, err := client.Analyze(ctx, []byte("%PDF-fake"))
		require.NoError(t, err)
		require.Len(t, result.Pages, 2)
		assert.Equal(t, "first line\nsecond line\nthird line\n", result.Text())
	})

	t.Run("failed analysis", func(t *testing.T) {
		server := newAnalyzeServer(t, 0, map[string]any{
			"status": "failed",
			"error":  map[string]any{"code": "InvalidContent", "message": "unreadable"},
		})

		client, err := NewClient(testConfig(server.URL))
		require.NoError(t, err)

		_, err = client.Analyze(ctx, []byte("garbage"))
		assert.ErrorIs(t, err, ErrAnalysisFailed)
		assert.Contains(t, err.Error(), "InvalidContent")
	})

	t.Run("poll timeout", func(t *testing.T) {
		server := newAnalyzeServer(t, 1_000_000, nil)

		cfg := testConfig(server.URL)
		cfg.PollTimeout = 10 * time.Millisecond
		client, err := NewClient(cfg)
		require.NoError(t, err)

		_, err = client.Analyze(ctx, []byte("%PDF-fake"))
		assert.ErrorIs(t, err, ErrPollTimeout)
	})

	t.Run("submission retried on server error", func(t *testing.T) {
		var submits atomic.Int64
		mux := http.NewServeMux()
		mux.HandleFunc("/formrecognizer/documentModels/prebuilt-read:analyze", func(w http.ResponseWriter, r *http.Request) {
			if submits.Add(1) == 1 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			w.Header().Set("Operation-Location", "http://"+r.Host+"/operations/1")
			w.WriteHeader(http.StatusAccepted)
		})
		mux.HandleFunc("/operations/1", func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"status": "succeeded"})
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		cfg := testConfig(server.URL)
		cfg.RetryBaseDelay = time.Millisecond
		client, err := NewClient(cfg)
		require.NoError(t, err)

		result, err := client.Analyze(ctx, []byte("%PDF-fake"))
		require.NoError(t, err)
		assert.Empty(t, result.Pages)
		assert.Equal(t, int64(2), submits.Load())
	})

	t.Run("cancelled context", func(t *testing.T) {
		server := newAnalyzeServer(t, 1_000_000, nil)
		client, err := NewClient(testConfig(server.URL))
		require.NoError(t, err)

		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err = client.Analyze(cancelled, []byte("%PDF-fake"))
		assert.Error(t, err)
	})
}

func TestNewClient_Validation(t *testing.T) {
	t.Run("missing endpoint", func(t *testing.T) {
		_, err := NewClient(NewConfig(WithKey("secret")))
		assert.ErrorIs(t, err, ErrMissingCredentials)
	})

	t.Run("missing key", func(t *testing.T) {
		_, err := NewClient(NewConfig(WithEndpoint("https://example.com")))
		assert.ErrorIs(t, err, ErrMissingCredentials)
	})
}

func TestConfig_Normalize(t *testing.T) {
	cfg := NewConfig(WithEndpoint("https://example.com/"), WithKey("k"))
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "https://example.com", cfg.Endpoint)
	assert.Equal(t, "prebuilt-read", cfg.Model)
	assert.Equal(t, "2023-07-31", cfg.APIVersion)
}

func TestResult_Text(t *testing.T) {
	t.Run("page order then line order", func(t *testing.T) {
		result := &Result{Pages: []Page{
			{Lines: []Line{{Content: "a"}, {Content: "b"}}},
			{Lines: []Line{{Content: "c"}}},
		}}
		assert.Equal(t, "a\nb\nc\n", result.Text())
	})

	t.Run("empty result", func(t *testing.T) {
		assert.Equal(t, "", (&Result{}).Text())
	})
}
