package blocks

import (
	"fmt"
	"sort"
	"strings"

	"pagegen/internal/product"
)

// Table aspects every comparison page must carry.
const (
	AspectPrice         = "Price"
	AspectConcentration = "Concentration"
	AspectIngredients   = "Key Ingredients"
	AspectSkinType      = "Skin Type Compatibility"
)

// RequiredAspects lists the comparison_table rows in page order.
var RequiredAspects = []string{AspectPrice, AspectConcentration, AspectIngredients, AspectSkinType}

const (
	WinnerA     = "product_a"
	WinnerB     = "product_b"
	WinnerEqual = "equal"
	notListed   = "N/A"
)

type ProductSummary struct {
	Name           string   `json:"name"`
	Price          int      `json:"price"`
	KeyIngredients []string `json:"key_ingredients"`
	Benefits       []string `json:"benefits"`
}

type IngredientComparison struct {
	Overlap   []string `json:"ingredient_overlap"`
	UniqueToA []string `json:"unique_to_a"`
	UniqueToB []string `json:"unique_to_b"`
}

type ComparisonSummary struct {
	PriceDifference   string `json:"price_difference"`
	IngredientSummary string `json:"ingredient_summary"`
}

type ComparisonRow struct {
	Aspect   string `json:"aspect"`
	ProductA string `json:"product_a"`
	ProductB string `json:"product_b"`
	Winner   string `json:"winner"`
}

type Recommendation struct {
	BestForBudget string `json:"best_for_budget"`
	Reason        string `json:"reason"`
}

func Summarize(p product.Comparison) ProductSummary {
	return ProductSummary{
		Name:           p.Name,
		Price:          p.Price,
		KeyIngredients: nonNil(p.KeyIngredients),
		Benefits:       nonNil(p.Benefits),
	}
}

// CompareIngredients splits both ingredient lists into sorted, de-duplicated
// shared and unique sets.
func CompareIngredients(a, b product.Comparison) IngredientComparison {
	inA := toSet(a.KeyIngredients)
	inB := toSet(b.KeyIngredients)

	out := IngredientComparison{
		Overlap:   []string{},
		UniqueToA: []string{},
		UniqueToB: []string{},
	}
	for ing := range inA {
		if inB[ing] {
			out.Overlap = append(out.Overlap, ing)
		} else {
			out.UniqueToA = append(out.UniqueToA, ing)
		}
	}
	for ing := range inB {
		if !inA[ing] {
			out.UniqueToB = append(out.UniqueToB, ing)
		}
	}
	sort.Strings(out.Overlap)
	sort.Strings(out.UniqueToA)
	sort.Strings(out.UniqueToB)
	return out
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, it := range items {
		set[it] = true
	}
	return set
}

// PriceDifference describes B's price relative to A.
func PriceDifference(a, b product.Comparison) string {
	diff := b.Price - a.Price
	switch {
	case diff > 0:
		return fmt.Sprintf("%s is %s more expensive than %s.", b.Name, FormatPrice(diff), a.Name)
	case diff < 0:
		return fmt.Sprintf("%s is %s cheaper than %s.", b.Name, FormatPrice(-diff), a.Name)
	default:
		return fmt.Sprintf("Both products are priced the same at %s.", FormatPrice(a.Price))
	}
}

func IngredientSummary(cmp IngredientComparison) string {
	if len(cmp.Overlap) == 0 {
		return "They do not share any listed key ingredients."
	}
	return "Both contain: " + strings.Join(cmp.Overlap, ", ") + "."
}

func BuildComparisonSummary(a, b product.Comparison, cmp IngredientComparison) ComparisonSummary {
	return ComparisonSummary{
		PriceDifference:   PriceDifference(a, b),
		IngredientSummary: IngredientSummary(cmp),
	}
}

// ComparisonTable returns one row per RequiredAspects entry.
func ComparisonTable(a, b product.Comparison) []ComparisonRow {
	priceWinner := WinnerEqual
	switch {
	case a.Price < b.Price:
		priceWinner = WinnerA
	case b.Price < a.Price:
		priceWinner = WinnerB
	}

	skinWinner := WinnerA
	if len(b.SkinType) > len(a.SkinType) {
		skinWinner = WinnerB
	}

	return []ComparisonRow{
		{Aspect: AspectPrice, ProductA: FormatPrice(a.Price), ProductB: FormatPrice(b.Price), Winner: priceWinner},
		{Aspect: AspectConcentration, ProductA: orNotListed(a.Concentration), ProductB: orNotListed(b.Concentration), Winner: WinnerEqual},
		{Aspect: AspectIngredients, ProductA: joinOrNotListed(a.KeyIngredients), ProductB: joinOrNotListed(b.KeyIngredients), Winner: WinnerEqual},
		{Aspect: AspectSkinType, ProductA: joinOrNotListed(a.SkinType), ProductB: joinOrNotListed(b.SkinType), Winner: skinWinner},
	}
}

// Recommend picks the cheaper product for budget shoppers. Equal prices
// recommend product A.
func Recommend(a, b product.Comparison) Recommendation {
	switch {
	case b.Price < a.Price:
		return Recommendation{
			BestForBudget: b.Name,
			Reason:        fmt.Sprintf("%s costs %s less than %s.", b.Name, FormatPrice(a.Price-b.Price), a.Name),
		}
	case a.Price < b.Price:
		return Recommendation{
			BestForBudget: a.Name,
			Reason:        fmt.Sprintf("%s costs %s less than %s.", a.Name, FormatPrice(b.Price-a.Price), b.Name),
		}
	default:
		return Recommendation{
			BestForBudget: a.Name,
			Reason:        fmt.Sprintf("Both cost %s; %s is the featured product.", FormatPrice(a.Price), a.Name),
		}
	}
}

func orNotListed(s string) string {
	if strings.TrimSpace(s) == "" {
		return notListed
	}
	return s
}

func joinOrNotListed(items []string) string {
	if len(items) == 0 {
		return notListed
	}
	return strings.Join(items, ", ")
}
