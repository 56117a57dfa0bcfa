// Package session owns the signed-in user and bearer token of the running
// storefront and keeps them in persistent local storage between runs.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"glassstore/internal/apiclient"
	"glassstore/internal/domain"
	"glassstore/internal/kvstore"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// Storage keys. The pair is written together on sign-in and removed together on
// sign-out.
const (
	KeyUser  = "user"
	KeyToken = "access_token"
)

// Authenticator is the part of the backend client the session needs.
type Authenticator interface {
	Login(ctx context.Context, creds apiclient.Credentials) (*apiclient.AuthResponse, error)
	Register(ctx context.Context, req apiclient.RegisterRequest) (*apiclient.AuthResponse, error)
}

// AuthError wraps a failed login or registration. The underlying
// *apiclient.ConnectionError or *apiclient.HTTPStatusError stays reachable
// through errors.As.
type AuthError struct {
	Op  string
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// Store holds at most one session. A token is present exactly when a user is.
type Store struct {
	api      Authenticator
	kv       kvstore.Store
	logger   *logrus.Entry
	validate *validator.Validate

	mu    sync.RWMutex
	token string
	user  *domain.User
}

func New(api Authenticator, kv kvstore.Store, logger *logrus.Entry) *Store {
	return &Store{
		api:      api,
		kv:       kv,
		logger:   logger,
		validate: validator.New(),
	}
}

// InferRole decides the storefront role for a user returned by the backend.
// A user is admin when the backend says so or when the email contains "admin".
// This is a demo convenience for showing the admin screens. It is not an
// authorization check; the backend decides what a token may do.
func InferRole(u domain.User) domain.Role {
	if u.Role == domain.RoleAdmin || strings.Contains(strings.ToLower(u.Email), "admin") {
		return domain.RoleAdmin
	}
	return domain.RoleUser
}

func (s *Store) Login(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, domain.Invalid("email", "required")
	}
	if password == "" {
		return nil, domain.Invalid("password", "required")
	}

	res, err := s.api.Login(ctx, apiclient.Credentials{Email: email, Password: password})
	if err != nil {
		return nil, &AuthError{Op: "login", Err: err}
	}
	user := res.User
	user.Role = InferRole(user)
	s.establish(ctx, res.AccessToken, user)
	s.logger.WithFields(logrus.Fields{"user_id": user.ID, "role": user.Role}).Info("signed in")
	return &user, nil
}

// Register creates an account and signs it in. New accounts are always plain users.
func (s *Store) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	name, email = strings.TrimSpace(name), strings.TrimSpace(email)
	switch {
	case name == "":
		return nil, domain.Invalid("name", "required")
	case email == "":
		return nil, domain.Invalid("email", "required")
	case password == "":
		return nil, domain.Invalid("password", "required")
	}

	res, err := s.api.Register(ctx, apiclient.RegisterRequest{Name: name, Email: email, Password: password})
	if err != nil {
		return nil, &AuthError{Op: "register", Err: err}
	}
	user := res.User
	user.Role = domain.RoleUser
	s.establish(ctx, res.AccessToken, user)
	s.logger.WithField("user_id", user.ID).Info("registered")
	return &user, nil
}

// establish sets the in-memory session and persists it. A storage failure is
// logged; the session still works for the life of the process.
func (s *Store) establish(ctx context.Context, token string, user domain.User) {
	s.mu.Lock()
	s.token = token
	u := user
	s.user = &u
	s.mu.Unlock()

	raw, err := json.Marshal(user)
	if err != nil {
		s.logger.WithError(err).Warn("encode session user")
		return
	}
	if err := s.kv.Set(ctx, KeyUser, string(raw)); err != nil {
		s.logger.WithError(err).Warn("persist session user")
		return
	}
	if err := s.kv.Set(ctx, KeyToken, token); err != nil {
		s.logger.WithError(err).Warn("persist session token")
		if err := s.kv.Delete(ctx, KeyUser); err != nil {
			s.logger.WithError(err).Warn("remove stored user without token")
		}
	}
}

// Logout clears the session in memory and in storage. Calling it without a
// session is a no-op.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	if err := s.kv.Delete(ctx, KeyUser, KeyToken); err != nil {
		return fmt.Errorf("clear stored session: %w", err)
	}
	return nil
}

// Restore loads a persisted session. Missing or corrupt entries leave the store
// empty; corrupt entries are removed from storage. Only storage failures are
// returned.
func (s *Store) Restore(ctx context.Context) error {
	rawUser, userErr := s.kv.Get(ctx, KeyUser)
	token, tokenErr := s.kv.Get(ctx, KeyToken)
	for _, err := range []error{userErr, tokenErr} {
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("read stored session: %w", err)
		}
	}
	if userErr != nil && tokenErr != nil {
		return nil
	}

	var user domain.User
	reason := ""
	switch {
	case userErr != nil || tokenErr != nil || strings.TrimSpace(token) == "":
		reason = "incomplete session"
	case json.Unmarshal([]byte(rawUser), &user) != nil:
		reason = "malformed user"
	case s.validate.Struct(user) != nil:
		reason = "invalid user"
	}
	if reason != "" {
		s.logger.WithField("reason", reason).Warn("discarding stored session")
		return s.Logout(ctx)
	}

	if user.Role != domain.RoleAdmin {
		user.Role = domain.RoleUser
	}
	s.mu.Lock()
	s.token = token
	s.user = &user
	s.mu.Unlock()
	return nil
}

// Token returns the bearer token, or "" without a session.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// ClearToken ends the session. The token and the user are only ever cleared together.
func (s *Store) ClearToken() {
	if err := s.Logout(context.Background()); err != nil {
		s.logger.WithError(err).Warn("clear token")
	}
}

// User returns a copy of the signed-in user, or nil.
func (s *Store) User() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.token != ""
}

func (s *Store) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.user.Role == domain.RoleAdmin
}
