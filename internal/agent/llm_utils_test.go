package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pagegen/internal/product"
)

func TestExtractJSONArray(t *testing.T) {
	t.Run("fenced with prose", func(t *testing.T) {
		text := "Sure! Here you go:\n```json\n[{\"category\":\"usage\",\"question\":\"How?\"}]\n```\nEnjoy."
		v, err := ExtractJSONArray(text)
		require.NoError(t, err)
		arr, ok := v.([]any)
		require.True(t, ok)
		require.Len(t, arr, 1)
		assert.Equal(t, "usage", arr[0].(map[string]any)["category"])
	})

	t.Run("bare array", func(t *testing.T) {
		v, err := ExtractJSONArray(`[1, 2, 3]`)
		require.NoError(t, err)
		assert.Len(t, v, 3)
	})

	t.Run("no brackets", func(t *testing.T) {
		_, err := ExtractJSONArray("I cannot help with that.")
		assert.ErrorIs(t, err, ErrNoJSONArray)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := ExtractJSONArray(`[{"category": "usage",]`)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNoJSONArray)
	})
}

func TestCleanMarkdownOutput(t *testing.T) {
	assert.Equal(t, "body", cleanMarkdownOutput("```markdown\nbody\n```"))
	assert.Equal(t, "[1]", cleanMarkdownOutput("```[1]```"))
	assert.Equal(t, "plain", cleanMarkdownOutput("  plain \n"))
}

func TestPromptBuilder(t *testing.T) {
	rec := product.Record{
		Name:           "GlowBoost Vitamin C Serum",
		Concentration:  "10%",
		SkinType:       []string{"Oily", "Combination"},
		KeyIngredients: []string{"Vitamin C", "Hyaluronic Acid"},
		Benefits:       []string{"Brightening"},
		HowToUse:       "Apply in morning",
		SideEffects:    "Mild tingling",
		Price:          699,
	}
	pb := &PromptBuilder{}

	q := pb.BuildQuestionsPrompt(rec, 0)
	assert.Contains(t, q, "GlowBoost Vitamin C Serum")
	assert.Contains(t, q, "₹699")
	assert.Contains(t, q, "Oily, Combination")
	assert.Contains(t, q, "Vitamin C, Hyaluronic Acid")
	assert.Contains(t, q, "exactly 3 questions")
	for _, c := range QuestionCategories {
		assert.Contains(t, q, c)
	}

	a := pb.BuildAnswerPrompt("Is it safe?", rec)
	assert.Contains(t, a, "Question: Is it safe?")
	assert.Contains(t, a, "Mild tingling")
}
