package conversation

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// State is one isolated conversation: its transcript plus the checkout flag.
// Each conversation owns exactly one State; nothing is shared across
// concurrent HTTP requests or REPL sessions.
type State struct {
	ID  string
	Log *Log

	checkout  bool
	createdAt time.Time
}

func NewState(id string) *State {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		trimmed = uuid.NewString()
	}
	return &State{
		ID:        trimmed,
		Log:       NewLog(),
		createdAt: time.Now().UTC(),
	}
}

// MarkCheckout flips the checkout flag. The flip is one-way: once true it
// never resets within the session.
func (s *State) MarkCheckout() {
	s.checkout = true
}

// CheckedOut reports whether the shopping-to-checkout handoff has happened.
func (s *State) CheckedOut() bool {
	return s.checkout
}

func (s *State) CreatedAt() time.Time {
	return s.createdAt
}
