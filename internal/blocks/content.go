package blocks

import (
	"fmt"
	"strings"

	"pagegen/internal/product"
)

func firstBenefit(rec product.Record, fallback string) string {
	if len(rec.Benefits) == 0 || strings.TrimSpace(rec.Benefits[0]) == "" {
		return fallback
	}
	return rec.Benefits[0]
}

// Headline is "<name> – Your Solution for <first benefit>".
func Headline(rec product.Record) string {
	return fmt.Sprintf("%s – Your Solution for %s", rec.Name, firstBenefit(rec, defaultHeadlineGoal))
}

func Tagline(rec product.Record) string {
	goal := strings.ToLower(firstBenefit(rec, defaultTaglineGoal))
	if strings.TrimSpace(rec.Concentration) == "" {
		return "Formula for " + goal
	}
	return fmt.Sprintf("%s formula for %s", rec.Concentration, goal)
}

// KeyFeatures lists one bullet per populated attribute, then one per benefit.
func KeyFeatures(rec product.Record) []string {
	features := []string{}
	if strings.TrimSpace(rec.Concentration) != "" {
		features = append(features, fmt.Sprintf("Potent %s formula", rec.Concentration))
	}
	if len(rec.KeyIngredients) > 0 {
		features = append(features, "Enriched with "+strings.Join(rec.KeyIngredients, ", "))
	}
	if len(rec.SkinType) > 0 {
		features = append(features, fmt.Sprintf("Perfect for %s skin", strings.Join(rec.SkinType, ", ")))
	}
	for _, b := range rec.Benefits {
		features = append(features, "Helps with "+strings.ToLower(b))
	}
	return features
}
