package quiz

import "github.com/Gama646/quizdash/internal/store"

// topicChosenMsg is sent when a topic is picked from the menu.
type topicChosenMsg struct {
	Topic string
}

// savedMsg reports the outcome of appending the attempt.
type savedMsg struct {
	Attempt store.Attempt
	Err     error
}
