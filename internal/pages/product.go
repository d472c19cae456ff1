package pages

import (
	"pagegen/internal/blocks"
	"pagegen/internal/product"
)

type ProductPage struct {
	Title       string             `json:"title"`
	Overview    blocks.Overview    `json:"overview"`
	KeyFeatures []string           `json:"key_features"`
	Ingredients blocks.Ingredients `json:"ingredients"`
	Benefits    blocks.Benefits    `json:"benefits"`
	Usage       blocks.Usage       `json:"usage"`
	Safety      blocks.Safety      `json:"safety"`
	Pricing     blocks.Pricing     `json:"pricing"`
}

func BuildProductPage(rec product.Record) ProductPage {
	return ProductPage{
		Title:       rec.Name,
		Overview:    blocks.BuildOverview(rec),
		KeyFeatures: blocks.KeyFeatures(rec),
		Ingredients: blocks.BuildIngredients(rec),
		Benefits:    blocks.BuildBenefits(rec),
		Usage:       blocks.BuildUsage(rec),
		Safety:      blocks.BuildSafety(rec),
		Pricing:     blocks.BuildPricing(rec),
	}
}
