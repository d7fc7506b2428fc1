package net

// SessionStore tracks live sessions by id. Simulation-loop goroutine only.
type SessionStore struct {
	sessions map[uint64]*Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[uint64]*Session, 64)}
}

func (s *SessionStore) Add(sess *Session) {
	s.sessions[sess.ID] = sess
}

func (s *SessionStore) Remove(id uint64) {
	delete(s.sessions, id)
}

func (s *SessionStore) Get(id uint64) (*Session, bool) {
	sess, ok := s.sessions[id]
	return sess, ok
}

func (s *SessionStore) Len() int {
	return len(s.sessions)
}

// Each iterates all live sessions.
func (s *SessionStore) Each(fn func(*Session)) {
	for _, sess := range s.sessions {
		fn(sess)
	}
}
