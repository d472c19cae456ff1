package agent

import (
	"fmt"
	"strings"

	"pagegen/internal/product"
)

// PromptBuilder constructs the prompts sent to the text generator.
type PromptBuilder struct{}

const groundingInstruction = "\n**GROUNDING RULE**: Use only the product facts listed below. Never invent prices, ingredients, certifications or clinical claims.\n"

// QuestionCategories mirrors the closed category set the question batch
// schema accepts.
var QuestionCategories = []string{"informational", "usage", "safety", "purchase", "comparison"}

func (pb *PromptBuilder) BuildQuestionsPrompt(rec product.Record, perCategory int) string {
	if perCategory <= 0 {
		perCategory = 3
	}
	var sb strings.Builder
	sb.WriteString("Role: E-commerce content strategist. Task: Write the questions shoppers ask before buying a skincare product.\n")
	sb.WriteString(groundingInstruction)

	sb.WriteString("\nProduct facts:\n")
	fmt.Fprintf(&sb, "- Name: %s\n", rec.Name)
	fmt.Fprintf(&sb, "- Price: ₹%d\n", rec.Price)
	fmt.Fprintf(&sb, "- Skin types: %s\n", strings.Join(rec.SkinType, ", "))
	fmt.Fprintf(&sb, "- Key ingredients: %s\n", strings.Join(rec.KeyIngredients, ", "))

	sb.WriteString("\n**INSTRUCTION**:\n")
	fmt.Fprintf(&sb, "1. Write exactly %d questions for each of these categories: %s.\n", perCategory, strings.Join(QuestionCategories, ", "))
	sb.WriteString("2. Each question must be a single sentence ending with a question mark.\n")
	sb.WriteString("3. Output ONLY a JSON array. No prose, no markdown fences.\n")
	sb.WriteString("4. Each element must look like {\"category\": \"<category>\", \"question\": \"<text>\"}.\n")
	return sb.String()
}

func (pb *PromptBuilder) BuildAnswerPrompt(question string, rec product.Record) string {
	var sb strings.Builder
	sb.WriteString("Role: Customer support writer. Task: Answer one shopper question in at most two sentences.\n")
	sb.WriteString(groundingInstruction)

	sb.WriteString("\nProduct facts:\n")
	fmt.Fprintf(&sb, "- Name: %s\n", rec.Name)
	fmt.Fprintf(&sb, "- Concentration: %s\n", rec.Concentration)
	fmt.Fprintf(&sb, "- Skin types: %s\n", strings.Join(rec.SkinType, ", "))
	fmt.Fprintf(&sb, "- Key ingredients: %s\n", strings.Join(rec.KeyIngredients, ", "))
	fmt.Fprintf(&sb, "- Benefits: %s\n", strings.Join(rec.Benefits, ", "))
	fmt.Fprintf(&sb, "- How to use: %s\n", rec.HowToUse)
	fmt.Fprintf(&sb, "- Side effects: %s\n", rec.SideEffects)
	fmt.Fprintf(&sb, "- Price: ₹%d\n", rec.Price)

	fmt.Fprintf(&sb, "\nQuestion: %s\n", question)
	sb.WriteString("\n**INSTRUCTION**: Reply with the answer text only. If the facts do not cover the question, say so plainly.\n")
	return sb.String()
}
