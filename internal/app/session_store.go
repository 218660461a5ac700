package app

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/armazem/internal/models"
	"github.com/example/armazem/internal/ports/secondary"
)

// Keys under which client state is persisted.
const (
	settingToken = "token"
	settingUser  = "user"
	settingTheme = "theme"
)

// SessionStore keeps the session token, user and theme in the settings
// repository. It is the TokenSource of the backend client, so the token is
// read when each request is built and a login takes effect immediately.
type SessionStore struct {
	settings secondary.SettingsRepository
}

// NewSessionStore creates a SessionStore over settings.
func NewSessionStore(settings secondary.SettingsRepository) *SessionStore {
	return &SessionStore{settings: settings}
}

var _ secondary.TokenSource = (*SessionStore)(nil)

// Token returns the stored token, or "" when signed out.
func (s *SessionStore) Token(ctx context.Context) (string, error) {
	token, _, err := s.settings.Get(ctx, settingToken)
	return token, err
}

// Load returns the stored token and user. ok is false when no token is stored.
func (s *SessionStore) Load(ctx context.Context) (token string, user models.User, ok bool, err error) {
	token, ok, err = s.settings.Get(ctx, settingToken)
	if err != nil || !ok || token == "" {
		return "", models.User{}, false, err
	}

	raw, found, err := s.settings.Get(ctx, settingUser)
	if err != nil {
		return "", models.User{}, false, err
	}
	if found {
		if err := json.Unmarshal([]byte(raw), &user); err != nil {
			return "", models.User{}, false, fmt.Errorf("failed to decode stored user: %w", err)
		}
	}
	return token, user, true, nil
}

// Save stores token and user.
func (s *SessionStore) Save(ctx context.Context, token string, user models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	if err := s.settings.Set(ctx, settingToken, token); err != nil {
		return err
	}
	return s.settings.Set(ctx, settingUser, string(data))
}

// Clear removes token and user. The theme preference survives logout.
func (s *SessionStore) Clear(ctx context.Context) error {
	return s.settings.Delete(ctx, settingToken, settingUser)
}

// Theme returns the stored theme, or "" when none was chosen.
func (s *SessionStore) Theme(ctx context.Context) (string, error) {
	theme, _, err := s.settings.Get(ctx, settingTheme)
	return theme, err
}

// SetTheme stores the theme.
func (s *SessionStore) SetTheme(ctx context.Context, theme string) error {
	return s.settings.Set(ctx, settingTheme, theme)
}
