package weakness

import (
	"fmt"
	"strings"
)

const systemPrompt = `A student just completed a practice quiz. Analyze their performance and identify specific weak areas.`

func buildUserMessage(results []ResultInput) string {
	var b strings.Builder

	b.WriteString("WRONG ANSWERS:\n")
	for _, r := range results {
		if r.IsCorrect {
			continue
		}
		b.WriteString(fmt.Sprintf(
			"- Topic: %q | Question: %q | Concepts missed: %s\n",
			r.Topic, r.Question, strings.Join(r.KeyConceptsMissed, ", "),
		))
	}

	var correct []string
	for _, r := range results {
		if r.IsCorrect {
			correct = append(correct, r.Topic)
		}
	}
	b.WriteString(fmt.Sprintf("\nCORRECT ANSWERS (topics): %s\n", strings.Join(correct, ", ")))

	b.WriteString(`
Instructions:
1. For each weak topic, explain in one sentence what the student misunderstands and give one concrete study tip.
2. List the topics they answered correctly as strengths.
3. Write a 2-3 sentence overall assessment and name the single most important thing to do before the next session.`)

	return b.String()
}
