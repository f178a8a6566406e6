package bank

import "fmt"

// ErrTopicNotFound indicates a lookup for a topic the bank does not contain.
type ErrTopicNotFound struct {
	Topic string
}

func (e *ErrTopicNotFound) Error() string {
	return fmt.Sprintf("topic not found: %q", e.Topic)
}

// ErrInvalidBank indicates a question bank document that failed schema or
// semantic validation.
type ErrInvalidBank struct {
	Err error
}

func (e *ErrInvalidBank) Error() string {
	return fmt.Sprintf("invalid question bank: %v", e.Err)
}

func (e *ErrInvalidBank) Unwrap() error { return e.Err }
