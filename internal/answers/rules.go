package answers

import (
	"fmt"
	"strings"

	"pagegen/internal/product"
)

// Rule pairs a keyword predicate over the lower-cased question with a
// response built only from record fields.
type Rule struct {
	Name    string
	Match   func(q string) bool
	Respond func(rec product.Record) string
}

const DefaultRuleName = "default"

const sensitiveSkinCaution = "If your skin is sensitive, be cautious and monitor how your skin responds."

func containsAny(q string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}

func joinList(items []string) string {
	return strings.Join(items, ", ")
}

func withConcentration(conc, noun string) string {
	conc = strings.TrimSpace(conc)
	if conc == "" {
		return "a " + noun
	}
	return fmt.Sprintf("a %s %s", conc, noun)
}

// DefaultRules is evaluated top to bottom; the first matching rule answers.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:  "price",
			Match: func(q string) bool { return containsAny(q, "price", "cost", "much") },
			Respond: func(rec product.Record) string {
				return fmt.Sprintf("The price of %s is ₹%d.", rec.Name, rec.Price)
			},
		},
		{
			Name:  "ingredients",
			Match: func(q string) bool { return containsAny(q, "ingredient") },
			Respond: func(rec product.Record) string {
				return fmt.Sprintf("The key ingredients in %s are: %s.", rec.Name, joinList(rec.KeyIngredients))
			},
		},
		{
			Name: "usage",
			Match: func(q string) bool {
				return (strings.Contains(q, "how") && containsAny(q, "use", "apply")) ||
					containsAny(q, "when", "daily", "often")
			},
			Respond: func(rec product.Record) string {
				if strings.TrimSpace(rec.HowToUse) == "" {
					return fmt.Sprintf("Follow the directions on the %s packaging.", rec.Name)
				}
				return rec.HowToUse
			},
		},
		{
			Name:  "safety",
			Match: func(q string) bool { return containsAny(q, "safe", "side effect", "precaution", "sensitive") },
			Respond: func(rec product.Record) string {
				if strings.TrimSpace(rec.SideEffects) == "" {
					return sensitiveSkinCaution
				}
				return rec.SideEffects
			},
		},
		{
			Name:  "benefits",
			Match: func(q string) bool { return containsAny(q, "benefit") },
			Respond: func(rec product.Record) string {
				return fmt.Sprintf("%s mainly helps with %s.", rec.Name, joinList(rec.Benefits))
			},
		},
		{
			Name:  "identity",
			Match: func(q string) bool { return containsAny(q, "what is") },
			Respond: func(rec product.Record) string {
				return fmt.Sprintf("%s is %s made for %s skin.",
					rec.Name, withConcentration(rec.Concentration, "formula"), joinList(rec.SkinType))
			},
		},
		{
			Name:  "skin_type",
			Match: func(q string) bool { return containsAny(q, "skin type", "sensitive") },
			Respond: func(rec product.Record) string {
				return fmt.Sprintf("%s is suitable for %s skin types.", rec.Name, joinList(rec.SkinType))
			},
		},
		{
			Name:  "comparison",
			Match: func(q string) bool { return containsAny(q, "compare", "why choose", "unique") },
			Respond: func(rec product.Record) string {
				return fmt.Sprintf("%s combines %s with %s at ₹%d.",
					rec.Name, withConcentration(rec.Concentration, "concentration"), joinList(rec.KeyIngredients), rec.Price)
			},
		},
		{
			Name:  "where_to_buy",
			Match: func(q string) bool { return strings.Contains(q, "where") && strings.Contains(q, "buy") },
			Respond: func(rec product.Record) string {
				return fmt.Sprintf("%s is available from authorized online and in-store skincare retailers.", rec.Name)
			},
		},
		{
			Name:  "returns",
			Match: func(q string) bool { return containsAny(q, "return", "refund") },
			Respond: func(rec product.Record) string {
				return fmt.Sprintf("Return and refund terms depend on the retailer you buy %s from.", rec.Name)
			},
		},
	}
}

func defaultAnswer(rec product.Record) string {
	return fmt.Sprintf("%s is %s with %s.",
		rec.Name, withConcentration(rec.Concentration, "product"), joinList(rec.KeyIngredients))
}
