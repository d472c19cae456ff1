package questions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"pagegen/internal/agent"
	"pagegen/internal/product"
)

func sampleRecord() product.Record {
	return product.Record{
		Name:           "GlowBoost Vitamin C Serum",
		Concentration:  "10%",
		SkinType:       []string{"Oily", "Combination"},
		KeyIngredients: []string{"Vitamin C", "Hyaluronic Acid"},
		Benefits:       []string{"Brightening"},
		HowToUse:       "Apply in morning",
		SideEffects:    "Mild tingling",
		Price:          699,
	}
}

func batchJSON(t *testing.T, perCategory int, skip ...Category) string {
	t.Helper()
	skipped := make(map[Category]bool)
	for _, c := range skip {
		skipped[c] = true
	}
	var items []map[string]string
	for _, c := range Categories() {
		if skipped[c] {
			continue
		}
		for i := 0; i < perCategory; i++ {
			items = append(items, map[string]string{
				"category": string(c),
				"question": fmt.Sprintf("Agent %s question %d?", c, i+1),
			})
		}
	}
	raw, err := json.Marshal(items)
	require.NoError(t, err)
	return string(raw)
}

func staticAgent(text string, err error) agent.Generator {
	return agent.GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		return text, err
	})
}

func observedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return zap.New(core), logs
}

func TestFallback_ThreePerCategory(t *testing.T) {
	rec := sampleRecord()
	set := Fallback(rec)

	assert.Equal(t, 15, set.Total())
	assert.Empty(t, set.Missing())
	for _, c := range Categories() {
		qs := set.Questions(c)
		require.Len(t, qs, FallbackPerCategory, c)
		for _, q := range qs {
			assert.Contains(t, q, rec.Name)
		}
	}
}

func TestCategories_FixedOrder(t *testing.T) {
	assert.Equal(t, []Category{Informational, Usage, Safety, Purchase, Comparison}, Categories())

	c, err := ParseCategory("safety")
	require.NoError(t, err)
	assert.Equal(t, Safety, c)
	_, err = ParseCategory("pricing")
	assert.Error(t, err)
}

func TestSet_FlatFollowsCategoryOrder(t *testing.T) {
	s := NewSet()
	s.Add(Comparison, "c1")
	s.Add(Informational, "i1")
	s.Add(Informational, "i2")

	assert.Equal(t, []Question{
		{Category: Informational, Text: "i1"},
		{Category: Informational, Text: "i2"},
		{Category: Comparison, Text: "c1"},
	}, s.Flat())
	assert.Equal(t, []Category{Usage, Safety, Purchase}, s.Missing())

	qs := s.Questions(Informational)
	qs[0] = "mutated"
	assert.Equal(t, "i1", s.Questions(Informational)[0])
}

func TestGenerate_NoAgentUsesFallbackSilently(t *testing.T) {
	logger, logs := observedLogger()
	g := NewGenerator(nil, Options{}, logger)

	res := g.Generate(context.Background(), sampleRecord())
	assert.Equal(t, SourceFallback, res.Source)
	assert.Equal(t, 15, res.Set.Total())
	assert.Zero(t, logs.FilterLevelExact(zap.WarnLevel).Len())
}

func TestGenerate_AgentSuccess(t *testing.T) {
	var seenPrompt string
	gen := agent.GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		seenPrompt = prompt
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		return "```json\n" + batchJSON(t, 3) + "\n```", nil
	})
	g := NewGenerator(gen, Options{}, nil)

	res := g.Generate(context.Background(), sampleRecord())
	require.Equal(t, SourceAgent, res.Source)
	assert.Empty(t, res.FallbackReason)
	assert.Equal(t, 15, res.Set.Total())
	assert.Equal(t, "Agent usage question 1?", res.Set.Questions(Usage)[0])
	assert.Contains(t, seenPrompt, "GlowBoost Vitamin C Serum")
}

func TestGenerate_FallbackOnAgentFailure(t *testing.T) {
	cases := map[string]struct {
		gen    agent.Generator
		opts   Options
		reason string
	}{
		"agent error": {
			gen:    staticAgent("", errors.New("connection refused")),
			reason: "connection refused",
		},
		"empty text": {
			gen:    staticAgent("   ", nil),
			reason: "empty",
		},
		"no array": {
			gen:    staticAgent("Sorry, I can't do that.", nil),
			reason: "no JSON array",
		},
		"malformed array": {
			gen:    staticAgent(`[{"category":"usage","question":"How?"`+`,]`, nil),
			reason: "decode",
		},
		"schema violation": {
			gen:    staticAgent(`[{"category":"pricing","question":"How much?"}]`, nil),
			reason: "schema",
		},
		"blank question": {
			gen:    staticAgent(`[{"category":"usage","question":"   "}]`, nil),
			reason: "schema",
		},
		"too few": {
			gen:    staticAgent(batchJSON(t, 2), nil),
			reason: "too few",
		},
		"missing category": {
			gen:    staticAgent(batchJSON(t, 4, Safety), nil),
			reason: "safety",
		},
		"timeout": {
			gen: agent.GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
				<-ctx.Done()
				return "", ctx.Err()
			}),
			opts:   Options{Timeout: 20 * time.Millisecond},
			reason: "deadline exceeded",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			logger, logs := observedLogger()
			g := NewGenerator(tc.gen, tc.opts, logger)

			res := g.Generate(context.Background(), sampleRecord())
			assert.Equal(t, SourceFallback, res.Source)
			assert.Contains(t, res.FallbackReason, tc.reason)
			assert.Equal(t, 15, res.Set.Total())
			assert.Empty(t, res.Set.Missing())

			warns := logs.FilterLevelExact(zap.WarnLevel).All()
			require.Len(t, warns, 1)
			assert.True(t, strings.Contains(warns[0].Message, "fallback"))
		})
	}
}

func TestGenerate_MinTotalIsConfigurable(t *testing.T) {
	g := NewGenerator(staticAgent(batchJSON(t, 4), nil), Options{MinTotal: 20}, nil)
	res := g.Generate(context.Background(), sampleRecord())
	assert.Equal(t, SourceAgent, res.Source)
	assert.Equal(t, 20, res.Set.Total())

	g = NewGenerator(staticAgent(batchJSON(t, 3), nil), Options{MinTotal: 20}, nil)
	res = g.Generate(context.Background(), sampleRecord())
	assert.Equal(t, SourceFallback, res.Source)
}
