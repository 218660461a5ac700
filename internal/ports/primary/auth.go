// Package primary defines the primary ports (driving adapters) for the application.
// These are the interfaces through which the outside world drives the application.
package primary

import (
	"context"
	"time"

	"github.com/example/armazem/internal/models"
)

// AuthService defines the primary port for authentication operations.
type AuthService interface {
	// Login exchanges credentials for a token and persists the session.
	Login(ctx context.Context, req LoginRequest) (*Session, error)

	// Register creates an account and persists the returned session.
	Register(ctx context.Context, req RegisterRequest) (*Session, error)

	// Logout clears the persisted session.
	Logout(ctx context.Context) error

	// Restore returns the persisted session, or nil when there is none
	// or the stored token has expired.
	Restore(ctx context.Context) (*Session, error)

	// Me asks the backend for the account behind the current token.
	Me(ctx context.Context) (*models.User, error)

	// Theme returns the stored theme preference (dark by default).
	Theme(ctx context.Context) (string, error)

	// SetTheme stores the theme preference.
	SetTheme(ctx context.Context, theme string) error
}

// LoginRequest contains parameters for signing in.
type LoginRequest struct {
	Email    string
	Password string
}

// RegisterRequest contains parameters for creating an account.
type RegisterRequest struct {
	Name     string
	Email    string
	Password string
}

// Session is an authenticated session.
type Session struct {
	Token     string
	User      models.User
	ExpiresAt time.Time // zero when unknown
}

// Theme values.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)
