package server

import (
	"strings"
	"sync"

	conversationx "github.com/worapol/shop-multiagent/agent/conversation"
)

// session pairs a conversation with the lock that serializes its turns.
// Concurrent requests on different conversations proceed independently;
// concurrent requests on the same conversation queue up.
type session struct {
	mu    sync.Mutex
	state *conversationx.State
}

// Sessions tracks live conversations by id. State is per-conversation and
// in-memory only; nothing survives a process restart.
type Sessions struct {
	mu   sync.Mutex
	byID map[string]*session
}

func NewSessions() *Sessions {
	return &Sessions{byID: make(map[string]*session)}
}

// acquire returns the session for id (creating it when id is empty or
// unknown) with its turn lock held. The caller must release.
func (s *Sessions) acquire(id string) *session {
	id = strings.TrimSpace(id)

	s.mu.Lock()
	sess, ok := s.byID[id]
	if !ok {
		state := conversationx.NewState(id)
		sess = &session{state: state}
		s.byID[state.ID] = sess
	}
	s.mu.Unlock()

	sess.mu.Lock()
	return sess
}

func (sess *session) release() {
	sess.mu.Unlock()
}

// Len reports the number of live conversations.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}
