package answers

import (
	"context"
	"strings"

	"pagegen/internal/product"
)

// Source tells whether an answer came from the agent or from the rule table.
type Source string

const (
	SourceRules Source = "rules"
	SourceAgent Source = "agent"
)

// Response is one answered question.
type Response struct {
	Text   string
	Rule   string
	Source Source
	// FallbackReason is set when an agent was asked but its answer was rejected.
	FallbackReason string
}

// Answerer is implemented by the deterministic Synthesizer and by
// AgentAnswerer.
type Answerer interface {
	Respond(ctx context.Context, question string, rec product.Record) Response
}

// Synthesizer answers from record fields via an ordered keyword table.
type Synthesizer struct {
	rules []Rule
}

func NewSynthesizer() *Synthesizer {
	return &Synthesizer{rules: DefaultRules()}
}

// Answer never returns an empty string.
func (s *Synthesizer) Answer(question string, rec product.Record) string {
	text, _ := s.answer(question, rec)
	return text
}

// RuleFor returns the name of the rule that would answer question.
func (s *Synthesizer) RuleFor(question string) string {
	q := strings.ToLower(question)
	for _, r := range s.rules {
		if r.Match(q) {
			return r.Name
		}
	}
	return DefaultRuleName
}

func (s *Synthesizer) Respond(_ context.Context, question string, rec product.Record) Response {
	text, rule := s.answer(question, rec)
	return Response{Text: text, Rule: rule, Source: SourceRules}
}

func (s *Synthesizer) answer(question string, rec product.Record) (string, string) {
	q := strings.ToLower(question)
	for _, r := range s.rules {
		if !r.Match(q) {
			continue
		}
		if text := strings.TrimSpace(r.Respond(rec)); text != "" {
			return text, r.Name
		}
		break
	}
	return defaultAnswer(rec), DefaultRuleName
}
