package llm

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docchat/internal/chat"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAnswerWithoutCredentialIsConfigurationError(t *testing.T) {
	// No API key: the call must fail before any network attempt. The
	// underlying HTTP client is never even constructed.
	c := NewOpenAIClient("", "", discardLogger())

	answer, err := c.Answer(context.Background(), "prompt", "system")

	require.Error(t, err)
	assert.Empty(t, answer)
	assert.Equal(t, chat.KindConfiguration, chat.KindOf(err))
}

func TestNewOpenAIClientDefaultsModel(t *testing.T) {
	c := NewOpenAIClient("sk-test", "", discardLogger())
	assert.NotEmpty(t, c.model)
	assert.NotNil(t, c.client)
}
