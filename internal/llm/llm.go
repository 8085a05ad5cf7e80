package llm

import "context"

// Client is the answer service: one network round trip per question, no
// retries, no streaming, no caching.
type Client interface {
	// Answer sends the grounded prompt with the fixed system instruction and
	// returns the model's text unchanged.
	Answer(ctx context.Context, prompt, systemInstruction string) (string, error)
}
