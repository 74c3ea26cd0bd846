package posapi

import (
	"errors"
	"sync"

	"golang.org/x/oauth2"
)

// ErrNoSession is returned when a request needs a bearer token but the
// session is empty or was invalidated by the POS API.
var ErrNoSession = errors.New("posapi: no active session")

// Session holds the upstream bearer token for one signed-in user.
// It is an oauth2.TokenSource so the client transport can attach it.
type Session struct {
	mu           sync.Mutex
	token        string
	invalidated  bool
	onInvalidate []func()
}

// NewSession creates a session around an existing upstream token.
func NewSession(token string) *Session {
	return &Session{token: token}
}

// Token implements oauth2.TokenSource.
func (s *Session) Token() (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.invalidated || s.token == "" {
		return nil, ErrNoSession
	}
	return &oauth2.Token{AccessToken: s.token, TokenType: "Bearer"}, nil
}

// AccessToken returns the raw token, empty when invalidated.
func (s *Session) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.invalidated {
		return ""
	}
	return s.token
}

// Set replaces the token and revives an invalidated session.
func (s *Session) Set(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.invalidated = false
}

// Valid reports whether the session still carries a usable token.
func (s *Session) Valid() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.invalidated && s.token != ""
}

// OnInvalidate registers a callback fired once when the POS API rejects the token.
func (s *Session) OnInvalidate(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onInvalidate = append(s.onInvalidate, fn)
}

// Invalidate clears the token. Callbacks run only on the first call.
func (s *Session) Invalidate() {
	s.mu.Lock()
	if s.invalidated {
		s.mu.Unlock()
		return
	}
	s.invalidated = true
	s.token = ""
	callbacks := s.onInvalidate
	s.onInvalidate = nil
	s.mu.Unlock()

	for _, fn := range callbacks {
		fn()
	}
}
