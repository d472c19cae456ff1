package blocks

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pagegen/internal/product"
)

func glowBoost() product.Record {
	return product.Record{
		Name:           "GlowBoost Vitamin C Serum",
		Concentration:  "10%",
		SkinType:       []string{"Oily", "Combination"},
		KeyIngredients: []string{"Vitamin C", "Hyaluronic Acid"},
		Benefits:       []string{"Brightening", "Fades dark spots"},
		HowToUse:       "Apply 2–3 drops in the morning before sunscreen",
		SideEffects:    "Mild tingling for sensitive skin",
		Price:          699,
	}
}

func TestProductBlocks(t *testing.T) {
	rec := glowBoost()

	ov := BuildOverview(rec)
	assert.Equal(t, "Oily, Combination", ov.SuitableFor)
	assert.Equal(t, "GlowBoost Vitamin C Serum – Your Solution for Brightening", ov.Headline)
	assert.Equal(t, "10% formula for brightening", ov.Tagline)

	assert.Equal(t, Pricing{Price: "₹699", Currency: "INR", PricingNote: PricingNote}, BuildPricing(rec))
	assert.Equal(t, "This serum focuses on Brightening, Fades dark spots.", BuildBenefits(rec).Summary)
	assert.Equal(t, rec.HowToUse, BuildUsage(rec).HowToUse)
	assert.Equal(t, SensitiveSkinNote, BuildSafety(rec).SensitiveSkinNote)

	assert.Equal(t, []string{
		"Potent 10% formula",
		"Enriched with Vitamin C, Hyaluronic Acid",
		"Perfect for Oily, Combination skin",
		"Helps with brightening",
		"Helps with fades dark spots",
	}, KeyFeatures(rec))
}

func TestContent_EmptyFields(t *testing.T) {
	rec := product.Record{Name: "Plain"}
	assert.Equal(t, "Plain – Your Solution for Premium skincare", Headline(rec))
	assert.Equal(t, "Formula for beautiful skin", Tagline(rec))
	assert.NotNil(t, KeyFeatures(rec))
	assert.Empty(t, KeyFeatures(rec))
	assert.NotNil(t, BuildIngredients(rec).KeyIngredients)
}

func union(lists ...[]string) []string {
	seen := map[string]bool{}
	var out []string
	for _, l := range lists {
		for _, s := range l {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	sort.Strings(out)
	return out
}

func TestCompareIngredients_PartitionsUnion(t *testing.T) {
	cases := map[string]struct{ a, b []string }{
		"sample":        {[]string{"Vitamin C", "Hyaluronic Acid"}, []string{"Vitamin C", "Niacinamide"}},
		"both empty":    {nil, nil},
		"a empty":       {nil, []string{"Niacinamide"}},
		"b empty":       {[]string{"Retinol"}, []string{}},
		"identical":     {[]string{"A", "B"}, []string{"B", "A"}},
		"disjoint":      {[]string{"A"}, []string{"B"}},
		"duplicates":    {[]string{"A", "A", "B"}, []string{"B", "B", "C"}},
		"case distinct": {[]string{"vitamin c"}, []string{"Vitamin C"}},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			cmp := CompareIngredients(
				product.Comparison{KeyIngredients: tc.a},
				product.Comparison{KeyIngredients: tc.b},
			)
			require.NotNil(t, cmp.Overlap)
			require.NotNil(t, cmp.UniqueToA)
			require.NotNil(t, cmp.UniqueToB)

			assert.Equal(t, union(tc.a, tc.b), union(cmp.Overlap, cmp.UniqueToA, cmp.UniqueToB))
			total := len(cmp.Overlap) + len(cmp.UniqueToA) + len(cmp.UniqueToB)
			assert.Equal(t, len(union(tc.a, tc.b)), total, "sets must be pairwise disjoint")

			for _, s := range [][]string{cmp.Overlap, cmp.UniqueToA, cmp.UniqueToB} {
				assert.True(t, sort.StringsAreSorted(s))
			}
		})
	}
}

func TestCompareIngredients_Sample(t *testing.T) {
	cmp := CompareIngredients(glowBoost().AsComparison(), product.DefaultComparison())
	assert.Equal(t, []string{"Vitamin C"}, cmp.Overlap)
	assert.Equal(t, []string{"Hyaluronic Acid"}, cmp.UniqueToA)
	assert.Equal(t, []string{"Niacinamide"}, cmp.UniqueToB)
	assert.Equal(t, "Both contain: Vitamin C.", IngredientSummary(cmp))
	assert.Equal(t, "They do not share any listed key ingredients.", IngredientSummary(IngredientComparison{}))
}

func TestPriceDifference_ThreeBranches(t *testing.T) {
	a := product.Comparison{Name: "A", Price: 699}

	assert.Equal(t, "B is ₹50 more expensive than A.", PriceDifference(a, product.Comparison{Name: "B", Price: 749}))
	assert.Equal(t, "B is ₹99 cheaper than A.", PriceDifference(a, product.Comparison{Name: "B", Price: 600}))
	assert.Equal(t, "Both products are priced the same at ₹699.", PriceDifference(a, product.Comparison{Name: "B", Price: 699}))
}

func TestComparisonTable(t *testing.T) {
	rows := ComparisonTable(glowBoost().AsComparison(), product.DefaultComparison())
	require.Len(t, rows, len(RequiredAspects))
	for i, aspect := range RequiredAspects {
		assert.Equal(t, aspect, rows[i].Aspect)
	}

	assert.Equal(t, ComparisonRow{Aspect: AspectPrice, ProductA: "₹699", ProductB: "₹749", Winner: WinnerA}, rows[0])
	assert.Equal(t, "N/A", rows[1].ProductB)
	assert.Equal(t, "N/A", rows[3].ProductB)
	assert.Equal(t, WinnerA, rows[3].Winner)

	same := ComparisonTable(product.Comparison{Price: 5}, product.Comparison{Price: 5, SkinType: []string{"Dry"}})
	assert.Equal(t, WinnerEqual, same[0].Winner)
	assert.Equal(t, WinnerB, same[3].Winner)
}

func TestRecommend(t *testing.T) {
	a := product.Comparison{Name: "A", Price: 699}
	assert.Equal(t, "A", Recommend(a, product.Comparison{Name: "B", Price: 749}).BestForBudget)
	assert.Equal(t, "B", Recommend(a, product.Comparison{Name: "B", Price: 500}).BestForBudget)

	tie := Recommend(a, product.Comparison{Name: "B", Price: 699})
	assert.Equal(t, "A", tie.BestForBudget)
	assert.Contains(t, tie.Reason, "₹699")
}
