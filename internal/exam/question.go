package exam

// QuestionType identifies how a question is answered. The values match
// the wire format used by the generation collaborator.
type QuestionType string

const (
	TypeMultipleChoice QuestionType = "mcq"
	TypeShortAnswer    QuestionType = "short"
	TypeTrueFalse      QuestionType = "truefalse"
)

// Question is one exam question. Questions are immutable once generated
// for a session; a retried session shares the same question values.
type Question struct {
	ID            int
	Type          QuestionType
	Prompt        string
	Options       []string // 4 labeled options for mcq, empty otherwise
	CorrectAnswer string
	Explanation   string
	Topic         string
	Difficulty    string
	Marks         int
}

// EvalState tracks the evaluation lifecycle of one question's answer.
// Explicit states (rather than ambient loading flags) make the
// at-most-one-in-flight rule observable.
type EvalState int

const (
	EvalNone EvalState = iota
	EvalPending
	EvalDone
	EvalFailed
)

func (e EvalState) String() string {
	switch e {
	case EvalPending:
		return "pending"
	case EvalDone:
		return "done"
	case EvalFailed:
		return "failed"
	default:
		return "none"
	}
}
