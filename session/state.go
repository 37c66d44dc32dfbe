package session

import (
	"errors"
	"fmt"
)

// State is a screen of the roadmap flow.
type State string

const (
	StateLanding    State = "landing"
	StateFormEntry  State = "form_entry"
	StateRequesting State = "requesting"
	StateResult     State = "result"
	StateFailed     State = "failed"
)

var ErrInvalidTransition = errors.New("invalid session transition")

// Requesting only leaves through the pipeline outcome; Reset is not accepted there.
var validTransitions = map[State]map[State]bool{
	StateLanding: {
		StateFormEntry: true,
	},
	StateFormEntry: {
		StateLanding:    true,
		StateRequesting: true,
	},
	StateRequesting: {
		StateResult: true,
		StateFailed: true,
	},
	StateResult: {
		StateLanding: true,
	},
	StateFailed: {
		StateRequesting: true,
		StateFormEntry:  true,
		StateLanding:    true,
	},
}

func ValidateTransition(from, to State) error {
	if validTransitions[from][to] {
		return nil
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

func (s State) String() string {
	return string(s)
}
