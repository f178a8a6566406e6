package bank

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"slices"
)

//go:embed default.json
var defaultJSON []byte

// defaultBank is built once from the embedded document.
var defaultBank *Bank

func init() {
	b, err := Load(bytes.NewReader(defaultJSON))
	if err != nil {
		panic(fmt.Sprintf("bank: embedded question bank is invalid: %v", err))
	}
	defaultBank = b
}

// Bank is a read-only registry mapping topic names to ordered questions.
type Bank struct {
	topics []Topic
	byName map[string]int
}

// Default returns the built-in question bank.
func Default() *Bank {
	return defaultBank
}

// New builds a Bank from topics, preserving their order.
// Topic names must be unique and every question must have exactly
// OptionCount options with a valid correct index.
func New(topics []Topic) (*Bank, error) {
	if len(topics) == 0 {
		return nil, &ErrInvalidBank{Err: errors.New("no topics")}
	}

	b := &Bank{
		topics: make([]Topic, 0, len(topics)),
		byName: make(map[string]int, len(topics)),
	}
	for _, t := range topics {
		if t.Name == "" {
			return nil, &ErrInvalidBank{Err: errors.New("topic with empty name")}
		}
		if _, dup := b.byName[t.Name]; dup {
			return nil, &ErrInvalidBank{Err: fmt.Errorf("duplicate topic %q", t.Name)}
		}
		if len(t.Questions) == 0 {
			return nil, &ErrInvalidBank{Err: fmt.Errorf("topic %q has no questions", t.Name)}
		}
		for i, q := range t.Questions {
			if err := validateQuestion(q); err != nil {
				return nil, &ErrInvalidBank{Err: fmt.Errorf("topic %q question %d: %w", t.Name, i+1, err)}
			}
		}

		b.byName[t.Name] = len(b.topics)
		b.topics = append(b.topics, Topic{
			Name:      t.Name,
			Questions: cloneQuestions(t.Questions),
		})
	}
	return b, nil
}

func validateQuestion(q Question) error {
	if q.Prompt == "" {
		return errors.New("empty prompt")
	}
	if len(q.Options) != OptionCount {
		return fmt.Errorf("got %d options, want %d", len(q.Options), OptionCount)
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return fmt.Errorf("correct index %d out of range", q.CorrectIndex)
	}
	return nil
}

// Topics returns topic names in insertion order.
func (b *Bank) Topics() []string {
	names := make([]string, len(b.topics))
	for i, t := range b.topics {
		names[i] = t.Name
	}
	return names
}

// Questions returns the ordered questions for topic.
func (b *Bank) Questions(topic string) ([]Question, error) {
	i, ok := b.byName[topic]
	if !ok {
		return nil, &ErrTopicNotFound{Topic: topic}
	}
	return cloneQuestions(b.topics[i].Questions), nil
}

// Len returns the number of topics.
func (b *Bank) Len() int {
	return len(b.topics)
}

func cloneQuestions(qs []Question) []Question {
	out := make([]Question, len(qs))
	for i, q := range qs {
		q.Options = slices.Clone(q.Options)
		out[i] = q
	}
	return out
}
