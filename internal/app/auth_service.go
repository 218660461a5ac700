package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/example/armazem/internal/core/apperr"
	"github.com/example/armazem/internal/core/form"
	"github.com/example/armazem/internal/core/session"
	"github.com/example/armazem/internal/models"
	"github.com/example/armazem/internal/ports/primary"
	"github.com/example/armazem/internal/ports/secondary"
)

// Messages shown when the backend gives no detail.
const (
	MsgLoginFailed    = "Erro ao iniciar sessão"
	MsgRegisterFailed = "Erro ao criar conta"
)

// AuthServiceImpl implements the AuthService interface.
type AuthServiceImpl struct {
	backend secondary.Backend
	store   *SessionStore
	logger  *zap.Logger
	now     func() time.Time
}

// NewAuthService creates a new AuthService with injected dependencies.
func NewAuthService(backend secondary.Backend, store *SessionStore, logger *zap.Logger) *AuthServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthServiceImpl{
		backend: backend,
		store:   store,
		logger:  logger,
		now:     time.Now,
	}
}

var _ primary.AuthService = (*AuthServiceImpl)(nil)

// Login signs in and persists the session.
func (s *AuthServiceImpl) Login(ctx context.Context, req primary.LoginRequest) (*primary.Session, error) {
	creds := &form.Login{Email: req.Email, Password: req.Password}
	if err := form.Validate(creds); err != nil {
		return nil, err
	}

	var resp models.AuthResponse
	if err := s.backend.Post(ctx, "/auth/login", creds, &resp); err != nil {
		return nil, fmt.Errorf("failed to sign in: %w", err)
	}
	return s.persist(ctx, resp)
}

// Register creates an account and persists the returned session.
func (s *AuthServiceImpl) Register(ctx context.Context, req primary.RegisterRequest) (*primary.Session, error) {
	data := &form.Register{Name: req.Name, Email: req.Email, Password: req.Password}
	if err := form.Validate(data); err != nil {
		return nil, err
	}

	var resp models.AuthResponse
	if err := s.backend.Post(ctx, "/auth/register", data, &resp); err != nil {
		return nil, fmt.Errorf("failed to register: %w", err)
	}
	return s.persist(ctx, resp)
}

func (s *AuthServiceImpl) persist(ctx context.Context, resp models.AuthResponse) (*primary.Session, error) {
	if resp.AccessToken == "" {
		return nil, fmt.Errorf("backend returned no access token")
	}
	if err := s.store.Save(ctx, resp.AccessToken, resp.User); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	s.logger.Info("session started", zap.String("user", resp.User.Email))
	return s.session(resp.AccessToken, resp.User), nil
}

// Logout clears the persisted session.
func (s *AuthServiceImpl) Logout(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// Restore returns the persisted session. An expired token is cleared.
func (s *AuthServiceImpl) Restore(ctx context.Context) (*primary.Session, error) {
	token, user, ok, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	if !ok {
		return nil, nil
	}

	if check := session.CanReuse(token, s.now()); !check.Allowed {
		s.logger.Info("discarding stored session", zap.String("reason", check.Reason))
		if err := s.store.Clear(ctx); err != nil {
			return nil, fmt.Errorf("failed to clear session: %w", err)
		}
		return nil, nil
	}

	return s.session(token, user), nil
}

// Me asks the backend for the current account.
func (s *AuthServiceImpl) Me(ctx context.Context) (*models.User, error) {
	current, err := s.Restore(ctx)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, apperr.ErrNotAuthenticated
	}

	var user models.User
	if err := s.backend.Get(ctx, "/auth/me", &user); err != nil {
		return nil, fmt.Errorf("failed to fetch current user: %w", err)
	}
	return &user, nil
}

// Theme returns the stored theme preference, dark by default.
func (s *AuthServiceImpl) Theme(ctx context.Context) (string, error) {
	theme, err := s.store.Theme(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read theme: %w", err)
	}
	if theme == "" {
		return primary.ThemeDark, nil
	}
	return theme, nil
}

// SetTheme stores the theme preference.
func (s *AuthServiceImpl) SetTheme(ctx context.Context, theme string) error {
	if theme != primary.ThemeDark && theme != primary.ThemeLight {
		return fmt.Errorf("unknown theme %q (valid: %s, %s)", theme, primary.ThemeDark, primary.ThemeLight)
	}
	if err := s.store.SetTheme(ctx, theme); err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}
	return nil
}

func (s *AuthServiceImpl) session(token string, user models.User) *primary.Session {
	sess := &primary.Session{Token: token, User: user}
	if claims, err := session.Inspect(token); err == nil {
		sess.ExpiresAt = claims.ExpiresAt
	}
	return sess
}
