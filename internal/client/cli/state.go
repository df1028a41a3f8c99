package cli

import (
	"sync"

	"github.com/hongminglow/crime-report-hub/internal/models/dto"
)

// View is the screen the client is showing.
type View string

const (
	ViewSignin View = "signin"
	ViewSignup View = "signup"
	ViewHome   View = "home"
)

// State is the application-state container shared by every command: the
// signed-in session, the current view and the in-flight flag.
type State struct {
	mu      sync.Mutex
	session *dto.Session
	view    View
	busy    bool
}

// Session returns the current session, if any.
func (s *State) Session() (dto.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return dto.Session{}, false
	}
	return *s.session, true
}

// View returns the current view.
func (s *State) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

func (s *State) signIn(sess dto.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = &sess
	s.view = ViewHome
}

func (s *State) signOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	s.view = ViewSignin
}

func (s *State) setView(v View) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = v
}

// begin marks a submission in flight. It returns false if one already is.
func (s *State) begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return false
	}
	s.busy = true
	return true
}

func (s *State) end() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
}
