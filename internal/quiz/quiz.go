package quiz

import (
	"fmt"
	"math"
	"time"

	"github.com/Gama646/quizdash/internal/bank"
	"github.com/Gama646/quizdash/internal/store"
)

// MaxQuestions caps how many questions of a topic are presented.
const MaxQuestions = 5

// Result is the outcome of one evaluated quiz.
type Result struct {
	Topic      string
	Score      int
	Total      int
	Percentage float64
}

// Presented returns the questions shown for a topic: the first
// min(MaxQuestions, len(questions)) in bank order.
func Presented(questions []bank.Question) []bank.Question {
	n := min(MaxQuestions, len(questions))
	return questions[:n]
}

// Score counts the presented questions whose answer matches the correct
// option text. Missing answers count as wrong.
func Score(questions []bank.Question, answers []string) (score, total int) {
	presented := Presented(questions)
	for i, q := range presented {
		if i < len(answers) && q.IsCorrect(answers[i]) {
			score++
		}
	}
	return score, len(presented)
}

// Evaluate scores answers against the topic's questions in b.
func Evaluate(b *bank.Bank, topic string, answers []string) (Result, error) {
	questions, err := b.Questions(topic)
	if err != nil {
		return Result{}, err
	}
	score, total := Score(questions, answers)
	return Result{
		Topic:      topic,
		Score:      score,
		Total:      total,
		Percentage: store.Percent(score, total),
	}, nil
}

// Attempt converts the result into the record appended to the results log.
func (r Result) Attempt(name string, now time.Time) store.Attempt {
	return store.Attempt{
		Name:           name,
		Topic:          r.Topic,
		Score:          r.Score,
		TotalQuestions: r.Total,
		Percentage:     r.Percentage,
		Timestamp:      now.Format(store.TimestampLayout),
	}
}

// FormatScore renders a score line, rounding the percentage for display.
func FormatScore(score, total int, pct float64) string {
	return fmt.Sprintf("You scored %d/%d (%.0f%%)", score, total, math.Round(pct))
}

// String renders the result the way it is announced after submission.
func (r Result) String() string {
	return FormatScore(r.Score, r.Total, r.Percentage)
}
