package openai

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
)

// fakeModel is an in-process llms.Model capturing the messages it receives.
type fakeModel struct {
	lastMessages []llms.MessageContent
	lastOptions  llms.CallOptions
	response     string
	err          error
	noChoices    bool
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	f.lastMessages = messages
	for _, opt := range options {
		opt(&f.lastOptions)
	}
	if f.err != nil {
		return nil, f.err
	}
	if f.noChoices {
		return &llms.ContentResponse{}, nil
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: f.response}},
	}, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return f.response, f.err
}

func newTestCondenser(model llms.Model) *Condenser {
	return &Condenser{
		client:      model,
		temperature: 0.5,
		logger:      slog.Default(),
	}
}

func TestBuildCondensePrompt(t *testing.T) {
	prompt := buildCondensePrompt("User: what is RAG?\nAssistant: retrieval augmented generation.", "how do I chunk for it?")

	assert.Contains(t, prompt, "<hs>\nUser: what is RAG?")
	assert.Contains(t, prompt, "</hs>")
	assert.Contains(t, prompt, "Question: how do I chunk for it?")
	assert.Contains(t, prompt, "Do NOT answer the question")
	assert.True(t, strings.HasSuffix(prompt, "Summary:"))
}

func TestCondenser_Condense(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the single completion", func(t *testing.T) {
		model := &fakeModel{response: "How do I chunk documents for retrieval augmented generation?"}
		condenser := newTestCondenser(model)

		got, err := condenser.Condense(ctx, "some history", "how do I chunk for it?")
		require.NoError(t, err)
		assert.Equal(t, "How do I chunk documents for retrieval augmented generation?", got)
	})

	t.Run("sends system prompt plus rendered template", func(t *testing.T) {
		model := &fakeModel{response: "ok"}
		condenser := newTestCondenser(model)

		_, err := condenser.Condense(ctx, "the history", "the question")
		require.NoError(t, err)

		require.Len(t, model.lastMessages, 2)
		assert.Equal(t, schema.ChatMessageTypeSystem, model.lastMessages[0].Role)
		assert.Equal(t, schema.ChatMessageTypeHuman, model.lastMessages[1].Role)

		user, ok := model.lastMessages[1].Parts[0].(llms.TextContent)
		require.True(t, ok)
		assert.Contains(t, user.Text, "the history")
		assert.Contains(t, user.Text, "Question: the question")
	})

	t.Run("uses fixed low temperature", func(t *testing.T) {
		model := &fakeModel{response: "ok"}
		condenser := newTestCondenser(model)

		_, err := condenser.Condense(ctx, "h", "q")
		require.NoError(t, err)
		assert.Equal(t, 0.5, model.lastOptions.Temperature)
	})

	t.Run("remote failure propagates uncaught", func(t *testing.T) {
		boom := errors.New("quota exceeded")
		condenser := newTestCondenser(&fakeModel{err: boom})

		_, err := condenser.Condense(ctx, "h", "q")
		assert.ErrorIs(t, err, boom)
	})

	t.Run("empty choice list", func(t *testing.T) {
		condenser := newTestCondenser(&fakeModel{noChoices: true})

		_, err := condenser.Condense(ctx, "h", "q")
		assert.ErrorIs(t, err, ErrNoCompletion)
	})
}
