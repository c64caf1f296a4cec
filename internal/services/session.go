// Package services contains the application services of the client: the
// session store and the three view controllers that keep local state
// consistent with the server after mutating operations.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/bankledger/internal/api"
	"github.com/dmitrijs2005/bankledger/internal/common"
	"github.com/dmitrijs2005/bankledger/internal/logging"
	"github.com/dmitrijs2005/bankledger/internal/models"
	"github.com/dmitrijs2005/bankledger/internal/repositories/metadata"
	"github.com/dmitrijs2005/bankledger/internal/validation"
)

// credentialKey is the well-known metadata key holding the bearer token.
// Its absence means "no session".
const credentialKey = "authToken"

type credentialsInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Session owns the bearer credential and the authenticated identity.
//
// It is the only writer of the credential: the gateway reads it through the
// api.TokenSource implementation, controllers never touch it. A session is
// considered authenticated only after the identity fetch succeeded; a token
// that fails the identity fetch never produces an authenticated state.
//
// Every logout bumps an internal generation counter. Controllers capture the
// generation before a request and discard their state write if it moved, so
// no in-flight response can repopulate state after logout.
type Session struct {
	client    api.Client
	meta      metadata.Repository
	logger    logging.Logger
	validator *validation.Validator

	mu    sync.Mutex
	token string
	user  *models.User

	gen        atomic.Int64
	teardownMu sync.Mutex
	onTeardown []func()
}

// NewSession creates a session store backed by the given durable metadata
// repository. AttachClient must be called before any operation that talks
// to the server.
func NewSession(meta metadata.Repository, logger logging.Logger) *Session {
	return &Session{
		meta:      meta,
		logger:    logger,
		validator: validation.New(),
	}
}

// AttachClient wires the gateway in. Split from the constructor because the
// gateway itself needs the session as its token source.
func (s *Session) AttachClient(client api.Client) {
	s.client = client
}

// Token implements api.TokenSource.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// User returns the authenticated identity, or nil while logged out.
func (s *Session) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Authenticated reports whether an identity has been established.
func (s *Session) Authenticated() bool {
	return s.User() != nil
}

// Generation returns the logout-barrier counter. See the type comment.
func (s *Session) Generation() int64 {
	return s.gen.Load()
}

// OnTeardown registers f to run after every logout, once all session state
// has been cleared. Controllers register their Clear methods here.
func (s *Session) OnTeardown(f func()) {
	s.teardownMu.Lock()
	defer s.teardownMu.Unlock()
	s.onTeardown = append(s.onTeardown, f)
}

// Login exchanges credentials for a bearer token, persists it, then fetches
// the identity. On any failure no credential is left behind, in memory or on
// disk. Invalid credentials surface as common.ErrAuth.
func (s *Session) Login(ctx context.Context, username, password string) (*models.User, error) {
	if err := s.validator.Struct(credentialsInput{Username: username, Password: password}); err != nil {
		return nil, err
	}

	token, err := s.client.SubmitLogin(ctx, username, password)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			return nil, fmt.Errorf("%w: invalid username or password", common.ErrAuth)
		}
		return nil, err
	}

	s.mu.Lock()
	s.token = token
	s.user = nil
	s.mu.Unlock()

	if err := s.meta.Set(ctx, credentialKey, []byte(token)); err != nil {
		s.discardCredential(ctx)
		return nil, fmt.Errorf("failed to persist credential: %w", err)
	}

	user, err := s.client.FetchCurrentUser(ctx)
	if err != nil {
		s.discardCredential(ctx)
		if errors.Is(err, api.ErrUnauthorized) {
			return nil, fmt.Errorf("%w: token rejected by the server", common.ErrAuth)
		}
		return nil, err
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()

	s.logger.Info(ctx, "logged in", "user", user.Username)
	return user, nil
}

// Register creates an account server-side. It does not establish a session.
// Rejections (duplicate or invalid username) surface as common.ErrAuth with
// the server's detail.
func (s *Session) Register(ctx context.Context, username, password string) error {
	if err := s.validator.Struct(credentialsInput{Username: username, Password: password}); err != nil {
		return err
	}

	if err := s.client.SubmitRegistration(ctx, username, password); err != nil {
		var apiErr *api.APIError
		if errors.As(err, &apiErr) {
			return fmt.Errorf("%w: %s", common.ErrAuth, apiErr.Message)
		}
		return err
	}
	return nil
}

// Restore revalidates a previously persisted credential by fetching the
// identity. It never returns an error to the caller for an invalid or
// expired credential: the credential is cleared and (nil, nil) is returned.
// Calling it again is a no-op with the same result.
func (s *Session) Restore(ctx context.Context) (*models.User, error) {
	saved, err := s.meta.Get(ctx, credentialKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read credential: %w", err)
	}
	if len(saved) == 0 {
		return nil, nil
	}

	s.mu.Lock()
	s.token = string(saved)
	s.mu.Unlock()

	user, err := s.client.FetchCurrentUser(ctx)
	if err != nil {
		s.logger.Warn(ctx, "stored session is no longer valid", "error", err)
		s.discardCredential(ctx)
		return nil, nil
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()

	s.logger.Info(ctx, "session restored", "user", user.Username)
	return user, nil
}

// Logout clears the credential and identity, bumps the generation counter,
// and runs the registered teardown hooks so every controller drops its
// view state. Idempotent; also invoked when any request observes a 401.
func (s *Session) Logout(ctx context.Context) error {
	s.discardCredential(ctx)

	s.teardownMu.Lock()
	hooks := make([]func(), len(s.onTeardown))
	copy(hooks, s.onTeardown)
	s.teardownMu.Unlock()

	for _, hook := range hooks {
		hook()
	}
	return nil
}

// discardCredential wipes the in-memory and persisted credential and moves
// the generation forward so in-flight responses are discarded at apply time.
func (s *Session) discardCredential(ctx context.Context) {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	s.gen.Add(1)

	if err := s.meta.Delete(ctx, credentialKey); err != nil {
		s.logger.Error(ctx, "failed to remove persisted credential", "error", err)
	}
}
