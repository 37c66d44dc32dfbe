package session

import (
	"errors"
	"testing"
)

func TestValidateTransition(t *testing.T) {
	tests := []struct {
		from  State
		to    State
		valid bool
	}{
		{StateLanding, StateFormEntry, true},
		{StateFormEntry, StateLanding, true},
		{StateFormEntry, StateRequesting, true},
		{StateRequesting, StateResult, true},
		{StateRequesting, StateFailed, true},
		{StateResult, StateLanding, true},
		{StateFailed, StateRequesting, true},
		{StateFailed, StateFormEntry, true},
		{StateFailed, StateLanding, true},

		{StateLanding, StateRequesting, false},
		{StateLanding, StateResult, false},
		{StateFormEntry, StateResult, false},
		{StateRequesting, StateLanding, false},
		{StateRequesting, StateFormEntry, false},
		{StateResult, StateRequesting, false},
		{StateResult, StateFormEntry, false},
		{StateResult, StateResult, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			err := ValidateTransition(tt.from, tt.to)
			if tt.valid && err != nil {
				t.Errorf("expected valid transition, got %v", err)
			}
			if !tt.valid && !errors.Is(err, ErrInvalidTransition) {
				t.Errorf("expected ErrInvalidTransition, got %v", err)
			}
		})
	}
}
