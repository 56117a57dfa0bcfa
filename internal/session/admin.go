package session

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"

	"glassstore/internal/apiclient"
	"glassstore/internal/domain"
)

const (
	AdminAccessCode  = "ADMIN2025"
	MaxAdminAttempts = 3
)

var (
	ErrInvalidAccessCode = errors.New("invalid admin access code")
	ErrAdminLocked       = errors.New("admin sign-in locked after repeated failures")
)

// AdminGate guards the admin sign-in screen. It counts consecutive failures in
// memory only, so a restart or a successful sign-in resets it.
type AdminGate struct {
	store *Store
	code  string
	max   int

	mu       sync.Mutex
	failures int
}

func NewAdminGate(store *Store) *AdminGate {
	return &AdminGate{store: store, code: AdminAccessCode, max: MaxAdminAttempts}
}

// Login checks the access code and then signs in through the session store.
// A wrong code and a failed sign-in both count as an attempt.
func (g *AdminGate) Login(ctx context.Context, email, password, code string) (*domain.User, error) {
	g.mu.Lock()
	if g.failures >= g.max {
		g.mu.Unlock()
		return nil, ErrAdminLocked
	}
	if strings.TrimSpace(code) != g.code {
		g.failures++
		g.mu.Unlock()
		return nil, ErrInvalidAccessCode
	}
	g.mu.Unlock()

	user, err := g.store.Login(ctx, email, password)

	g.mu.Lock()
	defer g.mu.Unlock()
	if err != nil {
		g.failures++
		return nil, err
	}
	g.failures = 0
	return user, nil
}

// Remaining is the number of attempts left before the gate locks.
func (g *AdminGate) Remaining() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	if n := g.max - g.failures; n > 0 {
		return n
	}
	return 0
}

func (g *AdminGate) Locked() bool {
	return g.Remaining() == 0
}

// Describe turns an admin sign-in failure into the message shown to the user.
func Describe(err error) string {
	var (
		connErr   *apiclient.ConnectionError
		statusErr *apiclient.HTTPStatusError
		vErr      *domain.ValidationError
	)
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrAdminLocked):
		return "Too many failed attempts. Please try again later."
	case errors.Is(err, ErrInvalidAccessCode):
		return "Invalid admin access code"
	case errors.As(err, &connErr):
		return "Cannot connect to server. Please ensure the backend is running."
	case errors.As(err, &statusErr):
		if statusErr.Status == http.StatusUnauthorized {
			return "Invalid admin credentials. Please check your email and password."
		}
		return "Server error. Please try again."
	case errors.As(err, &vErr):
		return vErr.Error()
	default:
		return "Admin authentication failed."
	}
}
