package pages

import (
	"pagegen/internal/blocks"
	"pagegen/internal/product"
)

type ComparisonPage struct {
	Title                string                      `json:"title"`
	ProductA             blocks.ProductSummary       `json:"product_a"`
	ProductB             blocks.ProductSummary       `json:"product_b"`
	IngredientComparison blocks.IngredientComparison `json:"ingredient_comparison"`
	Summary              blocks.ComparisonSummary    `json:"summary"`
	ComparisonTable      []blocks.ComparisonRow      `json:"comparison_table"`
	Recommendation       blocks.Recommendation       `json:"recommendation"`
}

// BuildComparisonPage compares the primary record (product A) with b.
func BuildComparisonPage(rec product.Record, b product.Comparison) ComparisonPage {
	a := rec.AsComparison()
	ingredients := blocks.CompareIngredients(a, b)
	return ComparisonPage{
		Title:                a.Name + " vs " + b.Name,
		ProductA:             blocks.Summarize(a),
		ProductB:             blocks.Summarize(b),
		IngredientComparison: ingredients,
		Summary:              blocks.BuildComparisonSummary(a, b, ingredients),
		ComparisonTable:      blocks.ComparisonTable(a, b),
		Recommendation:       blocks.Recommend(a, b),
	}
}
