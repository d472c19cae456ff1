package pages

import (
	"context"

	"pagegen/internal/answers"
	"pagegen/internal/product"
	"pagegen/internal/questions"
)

type QAItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type FAQSection struct {
	Category questions.Category `json:"category"`
	Items    []QAItem           `json:"items"`
}

type FAQPage struct {
	Title          string       `json:"title"`
	Product        string       `json:"product"`
	TotalQuestions int          `json:"total_questions"`
	Sections       []FAQSection `json:"sections"`
}

// FAQStats counts where the FAQ answers came from.
type FAQStats struct {
	AgentAnswers    int
	RuleAnswers     int
	AnswerFallbacks int
}

// FAQAssembler pairs every question with an answer and groups them into
// sections in category order.
type FAQAssembler struct {
	answerer answers.Answerer
}

func NewFAQAssembler(answerer answers.Answerer) *FAQAssembler {
	if answerer == nil {
		answerer = answers.NewSynthesizer()
	}
	return &FAQAssembler{answerer: answerer}
}

func (a *FAQAssembler) Build(ctx context.Context, rec product.Record, set *questions.Set) (FAQPage, FAQStats) {
	page := FAQPage{
		Title:    rec.Name + " – Frequently Asked Questions",
		Product:  rec.Name,
		Sections: []FAQSection{},
	}
	var stats FAQStats

	for _, cat := range questions.Categories() {
		qs := set.Questions(cat)
		if len(qs) == 0 {
			continue
		}
		section := FAQSection{Category: cat, Items: make([]QAItem, 0, len(qs))}
		for _, q := range qs {
			resp := a.answerer.Respond(ctx, q, rec)
			switch {
			case resp.Source == answers.SourceAgent:
				stats.AgentAnswers++
			case resp.FallbackReason != "":
				stats.AnswerFallbacks++
				stats.RuleAnswers++
			default:
				stats.RuleAnswers++
			}
			section.Items = append(section.Items, QAItem{Question: q, Answer: resp.Text})
		}
		page.TotalQuestions += len(section.Items)
		page.Sections = append(page.Sections, section)
	}
	return page, stats
}
