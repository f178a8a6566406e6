package store

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// TimestampLayout is the storage format of Attempt.Timestamp (YYYY-MM-DD HH:MM).
const TimestampLayout = "2006-01-02 15:04"

// percentageTolerance bounds the drift allowed between a supplied
// percentage and the one derived from score and total.
const percentageTolerance = 1e-9

// Column names of the durable log, in storage order.
const (
	ColName           = "Name"
	ColTopic          = "Topic"
	ColScore          = "Score"
	ColTotalQuestions = "Total Questions"
	ColPercentage     = "Percentage"
	ColDate           = "Date"
)

// Columns returns the durable log header in storage order.
func Columns() []string {
	return []string{ColName, ColTopic, ColScore, ColTotalQuestions, ColPercentage, ColDate}
}

// Attempt is one completed quiz submission. Attempts are never mutated
// once appended.
type Attempt struct {
	Name           string  `json:"name" validate:"required"`
	Topic          string  `json:"topic" validate:"required"`
	Score          int     `json:"score" validate:"gte=0,ltefield=TotalQuestions"`
	TotalQuestions int     `json:"total_questions" validate:"gt=0"`
	Percentage     float64 `json:"percentage" validate:"gte=0,lte=100"`
	Timestamp      string  `json:"date" validate:"required,datetime=2006-01-02 15:04"`
}

// Log is the full ordered sequence of attempts, in append order.
type Log []Attempt

// Percent returns 100 * score / total, unrounded.
func Percent(score, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(score) / float64(total) * 100
}

// Time parses the attempt timestamp.
func (a Attempt) Time() (time.Time, error) {
	return time.ParseInLocation(TimestampLayout, a.Timestamp, time.Local)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Prepare validates a and fills in its percentage when unset.
// It returns the record exactly as it will be stored.
func Prepare(a Attempt) (Attempt, error) {
	// Score/total invariants are checked before deriving the percentage so
	// a bad total never reaches the division.
	if a.TotalQuestions <= 0 {
		return Attempt{}, &ErrValidation{Field: "TotalQuestions", Reason: "must be greater than 0"}
	}
	if a.Score < 0 {
		return Attempt{}, &ErrValidation{Field: "Score", Reason: "must not be negative"}
	}
	if a.Score > a.TotalQuestions {
		return Attempt{}, &ErrValidation{
			Field:  "Score",
			Reason: fmt.Sprintf("score %d exceeds total questions %d", a.Score, a.TotalQuestions),
		}
	}

	// Carriage returns do not survive the CSV round trip.
	if strings.ContainsRune(a.Name, '\r') {
		return Attempt{}, &ErrValidation{Field: "Name", Reason: "must not contain carriage returns"}
	}
	if strings.ContainsRune(a.Topic, '\r') {
		return Attempt{}, &ErrValidation{Field: "Topic", Reason: "must not contain carriage returns"}
	}

	want := Percent(a.Score, a.TotalQuestions)
	if a.Percentage == 0 {
		a.Percentage = want
	} else if math.Abs(a.Percentage-want) > percentageTolerance {
		return Attempt{}, &ErrValidation{
			Field:  "Percentage",
			Reason: fmt.Sprintf("percentage %g does not match %d/%d", a.Percentage, a.Score, a.TotalQuestions),
		}
	}

	if err := validate.Struct(a); err != nil {
		return Attempt{}, fromValidatorError(err)
	}
	return a, nil
}

// fromValidatorError maps the first validator field error to ErrValidation.
func fromValidatorError(err error) error {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		fe := ve[0]
		reason := fe.Tag()
		if fe.Param() != "" {
			reason += "=" + fe.Param()
		}
		return &ErrValidation{Field: fe.Field(), Reason: "failed " + reason, Err: err}
	}
	return &ErrValidation{Reason: err.Error(), Err: err}
}
