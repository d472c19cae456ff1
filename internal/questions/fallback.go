package questions

import (
	"fmt"

	"pagegen/internal/product"
)

// FallbackPerCategory is the number of hand-written questions per category.
const FallbackPerCategory = 3

var fallbackTemplates = map[Category][FallbackPerCategory]string{
	Informational: {
		"What is %s and what does it do?",
		"Which skin types is %s suitable for?",
		"What skin concerns does %s target?",
	},
	Usage: {
		"How should I apply %s in my daily routine?",
		"When should I use %s, morning or night?",
		"How often should I use %s?",
	},
	Safety: {
		"Is %s safe for sensitive skin?",
		"Are there any side effects of %s I should know about?",
		"What precautions should I take before using %s?",
	},
	Purchase: {
		"What is the price of %s?",
		"Where can I buy %s?",
		"Does %s come with a return or refund policy?",
	},
	Comparison: {
		"How does %s compare to other serums?",
		"Why choose %s over similar products?",
		"What makes %s unique?",
	},
}

// Fallback returns the deterministic question set for rec: exactly
// FallbackPerCategory questions in every category.
func Fallback(rec product.Record) *Set {
	set := NewSet()
	for _, c := range categoryOrder {
		for _, tmpl := range fallbackTemplates[c] {
			set.Add(c, fmt.Sprintf(tmpl, rec.Name))
		}
	}
	return set
}
