package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"auto-bargain/internal/domain"
	"auto-bargain/internal/llm"
)

// DriverResponder is the optional external text generator. Implementations
// may fail or time out; a reply tagged SourceFallback is treated the same as
// no reply at all.
type DriverResponder interface {
	Generate(ctx context.Context, loc domain.LocationConfig, sctx SessionContext, a domain.UtteranceAnalysis, history []domain.TurnRecord, utterance string) (DriverReply, error)
}

// defaultResponderTimeout bounds each external call so no turn stalls on a
// slow provider.
const defaultResponderTimeout = 10 * time.Second

// LLMResponder adapts an llm.Client into a DriverResponder.
type LLMResponder struct {
	client  llm.Client
	prompts DriverPromptBuilder
	timeout time.Duration
	logger  *zap.Logger
}

func NewLLMResponder(client llm.Client, timeout time.Duration, logger *zap.Logger) *LLMResponder {
	if timeout <= 0 {
		timeout = defaultResponderTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LLMResponder{client: client, timeout: timeout, logger: logger}
}

func (r *LLMResponder) Generate(
	ctx context.Context,
	loc domain.LocationConfig,
	sctx SessionContext,
	a domain.UtteranceAnalysis,
	history []domain.TurnRecord,
	utterance string,
) (DriverReply, error) {
	genCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	prompt := r.prompts.Build(loc, sctx, a, history, utterance)
	text, err := r.client.Generate(genCtx, prompt)
	if err != nil {
		return DriverReply{}, err
	}
	return DriverReply{Text: text, Source: r.client.Name()}, nil
}
