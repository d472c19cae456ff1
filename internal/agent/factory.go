package agent

import (
	"context"
	"fmt"
	"strings"
	"time"
)

type Options struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
	Timeout  time.Duration
}

// NewGenerator builds the backend named by opts.Provider. An empty provider
// or "none" returns a nil Generator and no error; callers treat that as
// "agent disabled".
func NewGenerator(ctx context.Context, opts Options) (Generator, error) {
	provider := strings.ToLower(strings.TrimSpace(opts.Provider))

	switch provider {
	case "", "none":
		return nil, nil
	case ProviderGemini:
		g, err := NewGeminiGenerator(ctx, opts.APIKey, opts.Model)
		if err != nil {
			return nil, err
		}
		return g, nil
	case ProviderOpenAI:
		return withClientTimeout(NewOpenAIGenerator(opts.APIKey, opts.Model, opts.BaseURL), opts.Timeout), nil
	case ProviderOllama:
		return withClientTimeout(NewOllamaGenerator(opts.Model, opts.BaseURL), opts.Timeout), nil
	default:
		return nil, fmt.Errorf("unsupported agent provider: %s", opts.Provider)
	}
}

type httpBacked interface {
	Generator
	setClientTimeout(time.Duration)
}

func withClientTimeout(g httpBacked, d time.Duration) Generator {
	if d > 0 {
		g.setClientTimeout(d)
	}
	return g
}

func (g *OpenAIGenerator) setClientTimeout(d time.Duration) { g.client.Timeout = d }
func (o *OllamaGenerator) setClientTimeout(d time.Duration) { o.client.Timeout = d }
