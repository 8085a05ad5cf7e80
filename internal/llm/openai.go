package llm

import (
	"context"
	"log/slog"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"docchat/internal/chat"
)

// OpenAIClient calls the OpenAI Chat Completions API.
type OpenAIClient struct {
	model  openai.ChatModel
	client *openai.Client
	log    *slog.Logger
}

const (
	defaultChatTimeout     = 30 * time.Second
	defaultChatTemperature = 0.2
)

const serviceErrMessage = "the assistant could not be reached; please try again"

// NewOpenAIClient builds a client against api.openai.com. A missing API key
// is not an error here: it becomes a configuration failure on the first
// Answer call, so the server can boot unconfigured.
func NewOpenAIClient(apiKey string, model openai.ChatModel, log *slog.Logger) *OpenAIClient {
	if model == "" {
		model = openai.ChatModelGPT4oMini
	}
	c := &OpenAIClient{model: model, log: log}
	if apiKey != "" {
		cli := openai.NewClient(option.WithAPIKey(apiKey))
		c.client = &cli
	}
	return c
}

// Answer issues a single non-streamed completion request. Every remote
// failure is collapsed into one user-safe service error; the cause is
// logged, never returned.
func (c *OpenAIClient) Answer(ctx context.Context, prompt, systemInstruction string) (string, error) {
	if c.client == nil {
		return "", chat.NewError(chat.KindConfiguration,
			"the assistant is not configured: set OPENAI_API_KEY", nil)
	}
	reqCtx, cancel := context.WithTimeout(ctx, defaultChatTimeout)
	defer cancel()
	resp, err := c.client.Chat.Completions.New(reqCtx, openai.ChatCompletionNewParams{
		Model:       c.model,
		Messages:    buildMessages(systemInstruction, prompt),
		Temperature: openai.Float(defaultChatTemperature),
	})
	if err != nil {
		c.log.Error("model call failed", "err", err, "model", c.model)
		return "", chat.NewError(chat.KindService, serviceErrMessage, err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		c.log.Error("model returned no choices", "model", c.model)
		return "", chat.NewError(chat.KindService, serviceErrMessage, nil)
	}
	return resp.Choices[0].Message.Content, nil
}

func buildMessages(system, user string) []openai.ChatCompletionMessageParamUnion {
	return []openai.ChatCompletionMessageParamUnion{
		{
			OfSystem: &openai.ChatCompletionSystemMessageParam{
				Content: openai.ChatCompletionSystemMessageParamContentUnion{
					OfString: openai.String(system),
				},
			},
		},
		{
			OfUser: &openai.ChatCompletionUserMessageParam{
				Content: openai.ChatCompletionUserMessageParamContentUnion{
					OfString: openai.String(user),
				},
			},
		},
	}
}
