package cardgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are an expert educator turning study material into high-quality flashcards. Focus on key terms, concepts, definitions, formulas, and important relationships. Each card should test one clear concept.`

func buildUserMessage(input Input, cfg Config) string {
	var b strings.Builder

	content := input.Content
	if len(content) > cfg.MaxContentChars {
		content = content[:cfg.MaxContentChars]
	}

	b.WriteString("STUDY MATERIAL:\n")
	b.WriteString(content)
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Create %d flashcards from this material.\n", input.Count))
	b.WriteString(`
Instructions:
1. The front is a concise question or term; the back is a clear, complete answer.
2. Tag every card with the specific topic it tests (2-5 words).
3. Do not repeat concepts across cards.`)

	return b.String()
}
