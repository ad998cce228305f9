package examgen

import (
	"fmt"
	"strings"

	"github.com/abhisek/studiz/internal/exam"
)

const systemPrompt = `You are an expert educator creating exam-quality practice questions from study material.`

func typeInstruction(typ string, count int) string {
	switch exam.QuestionType(typ) {
	case exam.TypeMultipleChoice:
		return fmt.Sprintf("Generate %d multiple choice questions. Each must have exactly 4 options labeled A, B, C, D.", count)
	case exam.TypeShortAnswer:
		return fmt.Sprintf("Generate %d short answer questions requiring 2-4 sentence answers.", count)
	case exam.TypeTrueFalse:
		return fmt.Sprintf("Generate %d true/false questions. Make them non-obvious — avoid questions where the answer is trivially obvious.", count)
	default:
		return fmt.Sprintf("Generate %d questions: mix of multiple choice (with 4 options A/B/C/D), short answer, and true/false.", count)
	}
}

func buildUserMessage(input Input, cfg Config) string {
	var b strings.Builder

	content := input.Content
	if len(content) > cfg.MaxContentChars {
		content = content[:cfg.MaxContentChars]
	}

	b.WriteString("STUDY MATERIAL:\n")
	b.WriteString(content)
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("TASK: %s\n", typeInstruction(input.Type, input.Count)))

	difficulty := input.Difficulty
	if difficulty == "" {
		difficulty = "medium"
	}
	b.WriteString(fmt.Sprintf("DIFFICULTY: %s\n", difficulty))

	if len(input.WeakTopics) > 0 {
		b.WriteString(fmt.Sprintf(
			"IMPORTANT: Focus specifically on these weak topics the student is struggling with: %s\n",
			strings.Join(input.WeakTopics, ", "),
		))
	}

	return b.String()
}
