package answers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"pagegen/internal/agent"
	"pagegen/internal/logging"
	"pagegen/internal/product"
)

const (
	MaxAgentAnswerLength = 600
	DefaultTimeout       = 30 * time.Second
)

var errAnswerTooLong = errors.New("agent answer too long")

// AgentAnswerer asks the agent for each answer and falls back to the
// Synthesizer for that one question when the agent fails.
type AgentAnswerer struct {
	agent    agent.Generator
	fallback *Synthesizer
	prompts  *agent.PromptBuilder
	timeout  time.Duration
	logger   *zap.Logger
}

func NewAgentAnswerer(gen agent.Generator, fallback *Synthesizer, timeout time.Duration, logger *zap.Logger) *AgentAnswerer {
	if fallback == nil {
		fallback = NewSynthesizer()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &AgentAnswerer{
		agent:    gen,
		fallback: fallback,
		prompts:  &agent.PromptBuilder{},
		timeout:  timeout,
		logger:   logging.OrNop(logger),
	}
}

func (a *AgentAnswerer) Respond(ctx context.Context, question string, rec product.Record) Response {
	text, err := a.ask(ctx, question, rec)
	if err == nil {
		return Response{Text: text, Rule: "agent", Source: SourceAgent}
	}

	a.logger.Warn("answer agent failed, using rule-based answer",
		zap.String("question", question),
		zap.Error(err),
	)
	resp := a.fallback.Respond(ctx, question, rec)
	resp.FallbackReason = err.Error()
	return resp
}

func (a *AgentAnswerer) ask(ctx context.Context, question string, rec product.Record) (string, error) {
	if a.agent == nil {
		return "", errors.New("no agent configured")
	}
	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	text, err := a.agent.Generate(callCtx, a.prompts.BuildAnswerPrompt(question, rec))
	if err != nil {
		return "", fmt.Errorf("agent call: %w", err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", agent.ErrEmptyResponse
	}
	if n := utf8.RuneCountInString(text); n > MaxAgentAnswerLength {
		return "", fmt.Errorf("%w: %d characters", errAnswerTooLong, n)
	}
	return text, nil
}
