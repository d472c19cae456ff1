package questions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"pagegen/internal/agent"
	"pagegen/internal/logging"
	"pagegen/internal/product"
)

// Source records where a question set came from.
type Source string

const (
	SourceAgent    Source = "agent"
	SourceFallback Source = "fallback"
)

const (
	DefaultMinTotal = 15
	DefaultTimeout  = 30 * time.Second
)

var (
	errAgentDisabled   = errors.New("no agent configured")
	errTooFewQuestions = errors.New("agent returned too few questions")
	errMissingCategory = errors.New("agent batch is missing categories")
)

type Options struct {
	MinTotal int
	Timeout  time.Duration
}

// Result is the outcome of one Generate call. FallbackReason is empty when
// Source is SourceAgent.
type Result struct {
	Set            *Set
	Source         Source
	FallbackReason string
	AgentAttempted bool
}

// Generator asks the agent for a question batch and falls back to the
// deterministic set on any failure.
type Generator struct {
	agent   agent.Generator
	prompts *agent.PromptBuilder
	opts    Options
	logger  *zap.Logger
}

// NewGenerator accepts a nil agent; every call then uses Fallback.
func NewGenerator(gen agent.Generator, opts Options, logger *zap.Logger) *Generator {
	if opts.MinTotal <= 0 {
		opts.MinTotal = DefaultMinTotal
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Generator{
		agent:   gen,
		prompts: &agent.PromptBuilder{},
		opts:    opts,
		logger:  logging.OrNop(logger),
	}
}

// Generate always returns a Set covering every category with at least
// MinTotal questions on the agent path, or the full fallback set.
func (g *Generator) Generate(ctx context.Context, rec product.Record) Result {
	set, err := g.fromAgent(ctx, rec)
	if err == nil {
		g.logger.Info("questions generated by agent", zap.Int("total", set.Total()))
		return Result{Set: set, Source: SourceAgent, AgentAttempted: true}
	}

	attempted := !errors.Is(err, errAgentDisabled)
	if attempted {
		g.logger.Warn("question agent failed, using fallback questions",
			zap.String("product", rec.Name),
			zap.Error(err),
		)
	}
	return Result{
		Set:            Fallback(rec),
		Source:         SourceFallback,
		FallbackReason: err.Error(),
		AgentAttempted: attempted,
	}
}

func (g *Generator) fromAgent(ctx context.Context, rec product.Record) (*Set, error) {
	if g.agent == nil {
		return nil, errAgentDisabled
	}

	perCategory := (g.opts.MinTotal + len(categoryOrder) - 1) / len(categoryOrder)
	prompt := g.prompts.BuildQuestionsPrompt(rec, perCategory)

	callCtx, cancel := context.WithTimeout(ctx, g.opts.Timeout)
	defer cancel()

	text, err := g.agent.Generate(callCtx, prompt)
	if err != nil {
		return nil, fmt.Errorf("agent call: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, agent.ErrEmptyResponse
	}

	raw, err := agent.ExtractJSONArray(text)
	if err != nil {
		return nil, err
	}
	set, err := decodeBatch(raw)
	if err != nil {
		return nil, err
	}
	if set.Total() < g.opts.MinTotal {
		return nil, fmt.Errorf("%w: got %d, need %d", errTooFewQuestions, set.Total(), g.opts.MinTotal)
	}
	if missing := set.Missing(); len(missing) > 0 {
		names := make([]string, len(missing))
		for i, c := range missing {
			names[i] = string(c)
		}
		return nil, fmt.Errorf("%w: %s", errMissingCategory, strings.Join(names, ", "))
	}
	return set, nil
}
