// ABOUTME: Session store owning the login/logout lifecycle
// ABOUTME: Single mutable authentication state consumed by commands and the TUI

package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/clinica-gt/clinica-cli/internal/client"
	"golang.org/x/sync/singleflight"
)

// State is the authentication state of the session
type State int

const (
	Unauthenticated State = iota
	Authenticating
	Authenticated
)

// User is the identity attached to an authenticated session. Employee is
// present when the account is linked to a staff record.
type User struct {
	Username string
	Employee *client.Employee
}

// Notifier surfaces session outcomes to the operator. Every login
// failure produces exactly one Error call.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Authenticator is the slice of the API client the store needs
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*client.LoginResponse, error)
}

// Store owns the session state machine. Only Login and Logout mutate
// the credential store; the API client reads it independently on every
// request. Overlapping Login calls are coalesced so a late failure can
// never clobber an earlier success.
type Store struct {
	api      Authenticator
	creds    *TokenFile
	notifier Notifier

	group singleflight.Group

	mu    sync.Mutex
	state State
	user  *User
}

// NewStore creates a session store in the Unauthenticated state
func NewStore(api Authenticator, creds *TokenFile, notifier Notifier) *Store {
	return &Store{
		api:      api,
		creds:    creds,
		notifier: notifier,
		state:    Unauthenticated,
	}
}

// Restore picks up a persisted session from a previous run. No network
// call is made; an expired token surfaces as a 401 on the next request.
func (s *Store) Restore() {
	token := s.creds.Token()
	if token == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Authenticated
	s.user = &User{Username: s.creds.Username()}
}

// State returns the current session state
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Authenticated reports whether a user is logged in
func (s *Store) Authenticated() bool {
	return s.State() == Authenticated
}

// Loading reports whether a login is in flight
func (s *Store) Loading() bool {
	return s.State() == Authenticating
}

// CurrentUser returns the authenticated user, or nil
func (s *Store) CurrentUser() *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Login authenticates against the backend. On success the token is
// persisted and the state becomes Authenticated; on failure the stored
// token is untouched, one notification is emitted, and false is
// returned. Concurrent calls share a single backend round-trip.
func (s *Store) Login(ctx context.Context, username, password string) bool {
	v, _, _ := s.group.Do("login", func() (any, error) {
		return s.login(ctx, username, password), nil
	})
	return v.(bool)
}

func (s *Store) login(ctx context.Context, username, password string) (ok bool) {
	s.mu.Lock()
	s.state = Authenticating
	s.mu.Unlock()

	// The state transition out of Authenticating is unconditional,
	// including on panics further down the call
	defer func() {
		s.mu.Lock()
		if ok {
			s.state = Authenticated
		} else {
			s.state = Unauthenticated
		}
		s.mu.Unlock()
	}()

	resp, err := s.api.Login(ctx, username, password)
	if err != nil {
		s.notifier.Error(loginErrorMessage(err))
		return false
	}

	if err := s.creds.Save(resp.Token, resp.Username); err != nil {
		s.notifier.Error(fmt.Sprintf("could not persist session: %v", err))
		return false
	}

	s.mu.Lock()
	s.user = &User{Username: resp.Username, Employee: resp.Employee}
	s.mu.Unlock()

	s.notifier.Success(fmt.Sprintf("Welcome, %s!", resp.Username))
	return true
}

// Logout clears the persisted credential and resets the state. It is
// synchronous, idempotent, and cannot fail from the caller's view.
func (s *Store) Logout() {
	_ = s.creds.Clear()

	s.mu.Lock()
	s.state = Unauthenticated
	s.user = nil
	s.mu.Unlock()
}

// loginErrorMessage extracts the user-facing message from a login failure
func loginErrorMessage(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return "login failed, please try again"
}
