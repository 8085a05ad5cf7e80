package app

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/openai/openai-go/v3"

	"docchat/internal/config"
	"docchat/internal/llm"
	"docchat/internal/logger"
	"docchat/internal/session"
)

// Deps bundles the runtime dependencies of the server.
type Deps struct {
	Config   config.Config
	Log      *slog.Logger
	LLM      llm.Client
	Sessions *session.Registry
}

// Build loads env, config, and shared components. A missing OPENAI_API_KEY
// is not fatal: the client reports it as a configuration error on first use.
func Build() (Deps, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	if cfg.OpenAIKey == "" {
		log.Warn("OPENAI_API_KEY not set; questions will fail until it is configured")
	}
	client := llm.NewOpenAIClient(cfg.OpenAIKey, openai.ChatModel(cfg.LLMModel), log)

	return Deps{
		Config:   cfg,
		Log:      log,
		LLM:      client,
		Sessions: session.NewRegistry(cfg.SessionTTL),
	}, nil
}
