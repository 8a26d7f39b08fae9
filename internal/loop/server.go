package loop

import (
	"sync"
	"time"
)

// Server tracks the sessions of a multi-user front-end so they can be told
// to wind down together. Every session still runs its own game.
type Server struct {
	mu           sync.RWMutex
	sessions     map[int]*Handle
	nextClientID int
}

// Handle represents one registered session.
type Handle struct {
	ID       int
	Username string
	EventsCh chan SessionEvent // Events sent to the session
}

// SessionEvent is sent from the server to a session.
type SessionEvent struct {
	Type SessionEventType
}

// SessionEventType identifies the type of session event.
type SessionEventType int

const (
	EventServerShutdown SessionEventType = iota
)

// NewServer creates an empty session registry.
func NewServer() *Server {
	return &Server{
		sessions:     make(map[int]*Handle),
		nextClientID: 1,
	}
}

// RegisterClient registers a new session with the given username and returns its handle.
func (s *Server) RegisterClient(username string) *Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := &Handle{
		ID:       s.nextClientID,
		Username: username,
		EventsCh: make(chan SessionEvent, 4),
	}
	s.nextClientID++
	s.sessions[h.ID] = h
	return h
}

// UnregisterClient removes a session from the server.
func (s *Server) UnregisterClient(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// ActiveCount returns the number of registered sessions.
func (s *Server) ActiveCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Shutdown notifies all connected sessions and waits for them to
// disconnect, up to the given timeout. It reports whether every session
// left in time. The caller should stop accepting connections first.
func (s *Server) Shutdown(timeout time.Duration) bool {
	s.mu.RLock()
	for _, h := range s.sessions {
		select {
		case h.EventsCh <- SessionEvent{Type: EventServerShutdown}:
		default:
		}
	}
	s.mu.RUnlock()

	if s.ActiveCount() == 0 {
		return true
	}

	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			return false
		case <-ticker.C:
			if s.ActiveCount() == 0 {
				return true
			}
		}
	}
}
