package chat

import (
	"sync"
	"time"
)

// Session is the explicit per-user conversational state: the active
// conversation and its in-memory history projection. Everything in here
// is re-derivable from storage except the turn currently in flight.
type Session struct {
	mu             sync.Mutex
	ConversationID string
	History        []Entry
	lastActive     time.Time
}

// Lock takes the session for the duration of one turn. A single active
// session per conversation is assumed; the lock only serializes turns
// from the same user.
func (s *Session) Lock() {
	s.mu.Lock()
}

// Unlock releases the session.
func (s *Session) Unlock() {
	s.mu.Unlock()
}

// SessionStore hands out sessions keyed by user id. Sessions are created
// on first use and evicted after the idle TTL.
type SessionStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]*Session
}

// NewSessionStore constructs a SessionStore with the given idle TTL.
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		ttl:      ttl,
		sessions: make(map[string]*Session),
	}
}

// Acquire returns the user's session, creating it when absent. Stale
// sessions are swept opportunistically on each call.
func (st *SessionStore) Acquire(userID string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := time.Now()
	if st.ttl > 0 {
		for id, sess := range st.sessions {
			if id != userID && now.Sub(sess.lastActive) > st.ttl {
				delete(st.sessions, id)
			}
		}
	}

	sess, ok := st.sessions[userID]
	if !ok {
		sess = &Session{}
		st.sessions[userID] = sess
	}
	sess.lastActive = now
	return sess
}

// Drop discards a user's session, forcing the next turn to reload from
// storage.
func (st *SessionStore) Drop(userID string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, userID)
}
