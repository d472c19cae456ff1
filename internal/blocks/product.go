// Package blocks holds the pure functions that turn product records into
// page fragments. Nothing here branches on anything but record fields.
package blocks

import (
	"fmt"
	"strings"

	"pagegen/internal/product"
)

const (
	Currency            = "INR"
	PricingNote         = "Pricing may vary slightly depending on the seller."
	SensitiveSkinNote   = "If your skin is sensitive, be cautious and monitor how your skin responds."
	FrequencyHint       = "It is meant to be used in the morning before sunscreen as part of your routine."
	defaultHeadlineGoal = "Premium skincare"
	defaultTaglineGoal  = "beautiful skin"
)

type Overview struct {
	Name          string `json:"name"`
	Concentration string `json:"concentration"`
	SuitableFor   string `json:"suitable_for"`
	Headline      string `json:"headline"`
	Tagline       string `json:"tagline"`
}

type Ingredients struct {
	KeyIngredients []string `json:"key_ingredients"`
}

type Safety struct {
	SideEffects       string `json:"side_effects"`
	SensitiveSkinNote string `json:"sensitive_skin_note"`
}

type Pricing struct {
	Price       string `json:"price"`
	Currency    string `json:"currency"`
	PricingNote string `json:"pricing_note"`
}

func BuildOverview(rec product.Record) Overview {
	return Overview{
		Name:          rec.Name,
		Concentration: rec.Concentration,
		SuitableFor:   strings.Join(rec.SkinType, ", "),
		Headline:      Headline(rec),
		Tagline:       Tagline(rec),
	}
}

func BuildIngredients(rec product.Record) Ingredients {
	return Ingredients{KeyIngredients: nonNil(rec.KeyIngredients)}
}

func BuildSafety(rec product.Record) Safety {
	return Safety{
		SideEffects:       rec.SideEffects,
		SensitiveSkinNote: SensitiveSkinNote,
	}
}

func BuildPricing(rec product.Record) Pricing {
	return Pricing{
		Price:       FormatPrice(rec.Price),
		Currency:    Currency,
		PricingNote: PricingNote,
	}
}

// FormatPrice renders an INR amount, e.g. ₹699.
func FormatPrice(amount int) string {
	return fmt.Sprintf("₹%d", amount)
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return append([]string(nil), items...)
}
