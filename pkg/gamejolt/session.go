package gamejolt

import (
	"context"
	"sync"
	"time"

	"github.com/WattanaGaming/com.wattanagaming.gamejolt-api/pkg/log"
)

// SessionState is the authentication state of a Session.
type SessionState int

const (
	StateUnauthenticated SessionState = iota
	StateAuthenticating
	StateAuthenticated
)

func (s SessionState) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Session is the authentication state machine for one player.
//
//	Unauthenticated -> Authenticating -> Authenticated
//	      ^                  |                 |
//	      +---- failure -----+                 | forced re-authentication
//	                         ^-----------------+
//
// Only one Authenticate can be in flight. User and trophy operations fail
// with *AuthorizationError unless the Session is Authenticated.
// A Session is safe for concurrent use.
type Session struct {
	client *Client

	mu    sync.Mutex // protects state and cred
	state SessionState
	cred  Credential

	handlersMu    sync.RWMutex // protects eventHandlers
	eventHandlers map[Event]any
}

func NewSession(client *Client) *Session {
	return &Session{
		client:        client,
		eventHandlers: make(map[Event]any),
	}
}

// State returns the current state.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Credential returns the active credential. It is empty unless the last
// Authenticate succeeded.
func (s *Session) Credential() Credential {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cred
}

// Authenticate verifies username and token with the server.
//
// It returns ErrAuthenticationInProgress while another Authenticate is in
// flight, and ErrAlreadyAuthenticated when the Session is authenticated and
// forced is false. Neither sends a request.
//
// On success the credential is stored and AuthenticatedEvent fires once.
// On any failure, cancellation included, the credential is cleared and the
// Session returns to Unauthenticated before the error is returned.
func (s *Session) Authenticate(ctx context.Context, username, token string, forced bool) error {
	logger := log.FromContext(ctx).WithKV("username", username)

	s.mu.Lock()
	switch {
	case s.state == StateAuthenticating:
		s.mu.Unlock()
		return ErrAuthenticationInProgress
	case s.state == StateAuthenticated && !forced:
		s.mu.Unlock()
		return ErrAlreadyAuthenticated
	}
	s.state = StateAuthenticating
	s.mu.Unlock()

	cred := Credential{Username: username, Token: token}
	err := s.client.Authenticate(ctx, cred)

	s.mu.Lock()
	if err != nil {
		s.cred = Credential{}
		s.state = StateUnauthenticated
		s.mu.Unlock()

		s.client.metrics.observeAuth("failure")
		logger.Info("authentication failed", "error", err)
		return err
	}
	s.cred = cred
	s.state = StateAuthenticated
	s.mu.Unlock()

	s.client.metrics.observeAuth("success")
	logger.Info("authenticated", "forced", forced)

	s.emitAuthenticated(ctx, AuthenticatedNotification{Username: username, Forced: forced})
	return nil
}

// authorized returns the credential if the Session is authenticated.
func (s *Session) authorized(op string) (Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateAuthenticated {
		return Credential{}, &AuthorizationError{Operation: op}
	}
	return s.cred, nil
}

func (s *Session) FetchUsers(ctx context.Context, usernames ...string) ([]UserRecord, error) {
	if _, err := s.authorized("FetchUsers"); err != nil {
		return nil, err
	}
	return s.client.FetchUsers(ctx, usernames...)
}

func (s *Session) FetchUsersByID(ctx context.Context, ids ...int64) ([]UserRecord, error) {
	if _, err := s.authorized("FetchUsersByID"); err != nil {
		return nil, err
	}
	return s.client.FetchUsersByID(ctx, ids...)
}

func (s *Session) FetchUser(ctx context.Context, username string) (UserRecord, error) {
	if _, err := s.authorized("FetchUser"); err != nil {
		return UserRecord{}, err
	}
	return s.client.FetchUser(ctx, username)
}

// GrantTrophy marks trophyID achieved and then fires a TrophyGrant event.
func (s *Session) GrantTrophy(ctx context.Context, trophyID int64) error {
	cred, err := s.authorized("GrantTrophy")
	if err != nil {
		return err
	}
	if err := s.client.AddAchieved(ctx, cred, trophyID); err != nil {
		return err
	}

	s.emitTrophy(ctx, TrophyNotification{Kind: TrophyGrant, TrophyID: trophyID, Username: cred.Username})
	return nil
}

// RevokeTrophy clears trophyID and then fires a TrophyRevoke event.
func (s *Session) RevokeTrophy(ctx context.Context, trophyID int64) error {
	cred, err := s.authorized("RevokeTrophy")
	if err != nil {
		return err
	}
	if err := s.client.RemoveAchieved(ctx, cred, trophyID); err != nil {
		return err
	}

	s.emitTrophy(ctx, TrophyNotification{Kind: TrophyRevoke, TrophyID: trophyID, Username: cred.Username})
	return nil
}

func (s *Session) FetchTrophy(ctx context.Context, trophyID int64) (TrophyRecord, error) {
	cred, err := s.authorized("FetchTrophy")
	if err != nil {
		return TrophyRecord{}, err
	}
	return s.client.FetchTrophy(ctx, cred, trophyID)
}

func (s *Session) ListTrophies(ctx context.Context, req ListTrophiesRequest) ([]TrophyRecord, error) {
	cred, err := s.authorized("ListTrophies")
	if err != nil {
		return nil, err
	}
	return s.client.ListTrophies(ctx, cred, req)
}

// ServerTime does not need authentication.
func (s *Session) ServerTime(ctx context.Context, local bool) (time.Time, error) {
	return s.client.ServerTime(ctx, local)
}

// HandleAuthenticatedEvent registers the AuthenticatedEvent handler,
// replacing any previous one.
func (s *Session) HandleAuthenticatedEvent(handler AuthenticatedEventHandler) {
	s.setEventHandler(AuthenticatedEvent, handler)
}

// HandleTrophyEvent registers the TrophyEvent handler, replacing any
// previous one.
func (s *Session) HandleTrophyEvent(handler TrophyEventHandler) {
	s.setEventHandler(TrophyEvent, handler)
}

func (s *Session) emitAuthenticated(ctx context.Context, notif AuthenticatedNotification) {
	handler, ok := s.getEventHandler(AuthenticatedEvent).(AuthenticatedEventHandler)
	if !ok || handler == nil {
		log.FromContext(ctx).Debug("no handler for event", "event", AuthenticatedEvent)
		return
	}
	handler(ctx, notif)
}

func (s *Session) emitTrophy(ctx context.Context, notif TrophyNotification) {
	s.client.metrics.observeTrophyEvent(notif.Kind)

	handler, ok := s.getEventHandler(TrophyEvent).(TrophyEventHandler)
	if !ok || handler == nil {
		log.FromContext(ctx).Debug("no handler for event", "event", TrophyEvent)
		return
	}
	handler(ctx, notif)
}

func (s *Session) setEventHandler(event Event, handler any) {
	s.handlersMu.Lock()
	defer s.handlersMu.Unlock()

	s.eventHandlers[event] = handler
}

func (s *Session) getEventHandler(event Event) any {
	s.handlersMu.RLock()
	defer s.handlersMu.RUnlock()

	return s.eventHandlers[event]
}
