package quiz

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Gama646/quizdash/internal/bank"
	"github.com/Gama646/quizdash/internal/store"
)

// Session tracks one learner working through a topic's presented questions.
type Session struct {
	// ID correlates the log lines of a single quiz run.
	ID        string
	Name      string
	Topic     string
	Questions []bank.Question
	answers   []string
}

// NewSession starts a quiz for name on topic. The name must be non-blank.
func NewSession(b *bank.Bank, name, topic string) (*Session, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("name is required")
	}
	questions, err := b.Questions(topic)
	if err != nil {
		return nil, err
	}
	presented := Presented(questions)
	return &Session{
		ID:        uuid.NewString(),
		Name:      name,
		Topic:     topic,
		Questions: presented,
		answers:   make([]string, len(presented)),
	}, nil
}

// Answer records the chosen option text for question i.
func (s *Session) Answer(i int, choice string) error {
	if i < 0 || i >= len(s.Questions) {
		return fmt.Errorf("question %d out of range", i)
	}
	s.answers[i] = choice
	return nil
}

// Answers returns the recorded answers, "" for unanswered questions.
func (s *Session) Answers() []string {
	out := make([]string, len(s.answers))
	copy(out, s.answers)
	return out
}

// Complete reports whether every presented question has an answer.
func (s *Session) Complete() bool {
	for _, a := range s.answers {
		if a == "" {
			return false
		}
	}
	return true
}

// Result scores the session.
func (s *Session) Result() Result {
	score, total := Score(s.Questions, s.answers)
	return Result{
		Topic:      s.Topic,
		Score:      score,
		Total:      total,
		Percentage: store.Percent(score, total),
	}
}
