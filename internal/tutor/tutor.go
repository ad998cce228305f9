package tutor

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/studiz/internal/llm"
)

// Config controls tutor responses.
type Config struct {
	ExplainMaxTokens int
	ChatMaxTokens    int
	Temperature      float64

	// MaxContextChars truncates the study material included in prompts.
	MaxContextChars int

	// MaxHistory caps how many trailing chat messages are sent.
	MaxHistory int
}

// DefaultConfig returns sensible defaults for the tutor.
func DefaultConfig() Config {
	return Config{
		ExplainMaxTokens: 400,
		ChatMaxTokens:    600,
		Temperature:      0.5,
		MaxContextChars:  4000,
		MaxHistory:       12,
	}
}

// Tutor streams concept explanations and free-form chat over the study
// material. Responses arrive as text fragments so the UI can render
// them as they are produced; cancelling the context stops a stream.
type Tutor struct {
	provider llm.Provider
	config   Config
}

// New creates a Tutor with the given provider and config.
func New(provider llm.Provider, cfg Config) *Tutor {
	return &Tutor{provider: provider, config: cfg}
}

// ExplainInput describes a question the learner got wrong.
type ExplainInput struct {
	Question      string
	CorrectAnswer string
	StudentAnswer string
	Topic         string

	// Material is optional study-material context.
	Material string
}

// Explain streams a from-scratch explanation of the concept behind a
// missed question.
func (t *Tutor) Explain(ctx context.Context, input ExplainInput) (<-chan llm.Fragment, error) {
	ctx = llm.WithPurpose(ctx, "explain")

	req := llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: t.buildExplainMessage(input)},
		},
		MaxTokens:   t.config.ExplainMaxTokens,
		Temperature: t.config.Temperature,
	}
	return llm.GenerateStream(ctx, t.provider, req)
}

func (t *Tutor) buildExplainMessage(input ExplainInput) string {
	var b strings.Builder

	b.WriteString("A student got this question wrong and needs the concept explained clearly.\n\n")
	b.WriteString(fmt.Sprintf("QUESTION: %s\n", input.Question))
	b.WriteString(fmt.Sprintf("TOPIC: %s\n", input.Topic))
	b.WriteString(fmt.Sprintf("CORRECT ANSWER: %s\n", input.CorrectAnswer))
	b.WriteString(fmt.Sprintf("WHAT STUDENT ANSWERED: %s\n", input.StudentAnswer))

	if input.Material != "" {
		material := input.Material
		if len(material) > t.config.MaxContextChars {
			material = material[:t.config.MaxContextChars]
		}
		b.WriteString(fmt.Sprintf("STUDY MATERIAL CONTEXT:\n%s\n", material))
	}

	b.WriteString(`
Teach this concept from scratch. Your response should:
1. Start by acknowledging what they got right (if anything)
2. Clearly explain WHY the correct answer is right, in simple language
3. Use an analogy or real-world example to make it memorable
4. End with a follow-up question to check understanding

Keep the total response under 200 words. Be warm and encouraging.`)

	return b.String()
}

// Chat streams a tutoring reply to the conversation so far. material is
// optional study-material context; history is the full conversation,
// oldest first, of which only the trailing MaxHistory messages are sent.
func (t *Tutor) Chat(ctx context.Context, material string, history []llm.Message) (<-chan llm.Fragment, error) {
	if len(history) == 0 {
		return nil, fmt.Errorf("empty chat history")
	}

	ctx = llm.WithPurpose(ctx, "tutor-chat")

	if len(history) > t.config.MaxHistory {
		history = history[len(history)-t.config.MaxHistory:]
	}

	req := llm.Request{
		System:      t.buildChatSystemPrompt(material),
		Messages:    history,
		MaxTokens:   t.config.ChatMaxTokens,
		Temperature: t.config.Temperature,
	}
	return llm.GenerateStream(ctx, t.provider, req)
}

func (t *Tutor) buildChatSystemPrompt(material string) string {
	var b strings.Builder

	b.WriteString("You are an expert AI tutor helping a student understand their study material.\n")
	if material != "" {
		if len(material) > t.config.MaxContextChars {
			material = material[:t.config.MaxContextChars]
		}
		b.WriteString(fmt.Sprintf("STUDENT'S STUDY MATERIAL:\n%s\n", material))
	}

	b.WriteString(`
Be clear, patient, and pedagogical. When explaining:
- Break complex ideas into steps
- Use examples and analogies
- Check understanding with follow-up questions
- Keep responses focused (3-5 sentences unless a full explanation is needed)
- If asked something outside the material, say so and redirect`)

	return b.String()
}
