package bank

// OptionCount is the number of options every question carries.
const OptionCount = 4

// Question is a single multiple-choice question.
type Question struct {
	Prompt       string   `json:"prompt"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
}

// Answer returns the text of the correct option.
func (q Question) Answer() string {
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return ""
	}
	return q.Options[q.CorrectIndex]
}

// IsCorrect reports whether the chosen option text matches the correct option.
func (q Question) IsCorrect(choice string) bool {
	return choice == q.Answer()
}

// Topic is a named, ordered group of questions.
type Topic struct {
	Name      string     `json:"name"`
	Questions []Question `json:"questions"`
}
