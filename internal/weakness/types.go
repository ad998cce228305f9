package weakness

// PerfectSummary is returned without an LLM round trip when every
// answer in the session was correct.
const PerfectSummary = "Perfect score! You've mastered all topics in this session."

// ResultInput is one graded question fed into the analysis.
type ResultInput struct {
	Question          string
	Topic             string
	Score             int
	IsCorrect         bool
	KeyConceptsMissed []string
}

// WeakTopic is one area the learner is struggling with.
type WeakTopic struct {
	Topic    string `json:"topic"`
	Why      string `json:"why"`
	StudyTip string `json:"studyTip"`
}

// Analysis is the weak-topic breakdown for one completed session.
type Analysis struct {
	WeakTopics     []WeakTopic `json:"weakTopics"`
	StrongTopics   []string    `json:"strongTopics"`
	Summary        string      `json:"summary"`
	PriorityAction string      `json:"priorityAction"`
}

// Topics returns just the weak topic names, for feeding back into
// question generation.
func (a *Analysis) Topics() []string {
	names := make([]string, 0, len(a.WeakTopics))
	for _, w := range a.WeakTopics {
		names = append(names, w.Topic)
	}
	return names
}
