package grading

import (
	"fmt"
	"strings"

	"github.com/abhisek/studiz/internal/exam"
)

const systemPrompt = `You are an expert teacher evaluating a student's answer. Be honest but encouraging.`

func buildUserMessage(q exam.Question, answer string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("QUESTION: %s\n", q.Prompt))

	topic := q.Topic
	if topic == "" {
		topic = "general"
	}
	b.WriteString(fmt.Sprintf("TOPIC: %s\n", topic))
	b.WriteString(fmt.Sprintf("CORRECT ANSWER: %s\n", q.CorrectAnswer))
	b.WriteString(fmt.Sprintf("STUDENT'S ANSWER: %s\n", answer))
	b.WriteString(fmt.Sprintf("QUESTION TYPE: %s\n", q.Type))

	b.WriteString(`
Evaluate carefully:
1. Score the answer 0-100 against the correct answer.
2. An answer is correct when the score is 70 or above.
3. Give 2-3 sentences of specific feedback mentioning what they got right and wrong.
4. List the key concepts missed, and one actionable improvement tip.`)

	return b.String()
}
