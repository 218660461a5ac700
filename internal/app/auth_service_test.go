package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/example/armazem/internal/core/apperr"
	"github.com/example/armazem/internal/models"
	"github.com/example/armazem/internal/ports/primary"
)

func mintToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func newTestAuthService(backend *mockBackend, settings *mockSettingsRepository, now time.Time) *AuthServiceImpl {
	svc := NewAuthService(backend, NewSessionStore(settings), nil)
	svc.now = func() time.Time { return now }
	return svc
}

func TestAuthService_LoginPersistsAcrossRestart(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	token := mintToken(t, now.Add(24*time.Hour))
	backend := newMockBackend().on("POST", "/auth/login", models.AuthResponse{
		AccessToken: token,
		User:        models.User{ID: "u1", Name: "Ana", Email: "ana@example.com"},
	})
	settings := newMockSettingsRepository()

	svc := newTestAuthService(backend, settings, now)
	sess, err := svc.Login(context.Background(), primary.LoginRequest{Email: "ana@example.com", Password: "segredo"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if sess.Token != token || sess.User.Name != "Ana" {
		t.Errorf("unexpected session %+v", sess)
	}
	if !sess.ExpiresAt.Equal(now.Add(24 * time.Hour)) {
		t.Errorf("ExpiresAt = %v", sess.ExpiresAt)
	}

	// simulated restart: a fresh service over the same store
	restarted := newTestAuthService(newMockBackend(), settings, now.Add(time.Hour))
	restored, err := restarted.Restore(context.Background())
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if restored == nil {
		t.Fatal("expected session to survive restart")
	}
	if restored.Token != token || restored.User.Email != "ana@example.com" {
		t.Errorf("unexpected restored session %+v", restored)
	}

	stored, _ := NewSessionStore(settings).Token(context.Background())
	if stored != token {
		t.Errorf("token source returns %q", stored)
	}
}

func TestAuthService_RestoreClearsExpiredToken(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	settings := newMockSettingsRepository()
	settings.values["token"] = mintToken(t, now.Add(-time.Minute))
	settings.values["user"] = `{"id":"u1","name":"Ana","email":"ana@example.com"}`
	settings.values["theme"] = "light"

	svc := newTestAuthService(newMockBackend(), settings, now)
	sess, err := svc.Restore(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if sess != nil {
		t.Errorf("expected no session, got %+v", sess)
	}
	if keys := settings.keys(); len(keys) != 1 || keys[0] != "theme" {
		t.Errorf("expected only the theme to remain, got %v", keys)
	}
}

func TestAuthService_RestoreWithoutSession(t *testing.T) {
	svc := newTestAuthService(newMockBackend(), newMockSettingsRepository(), time.Now())

	sess, err := svc.Restore(context.Background())
	if err != nil || sess != nil {
		t.Errorf("Restore = %+v, %v", sess, err)
	}
}

func TestAuthService_LoginFailureSurfacesDetail(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{"backend detail", &apperr.APIError{Status: 401, Detail: "Credenciais inválidas"}, "Credenciais inválidas"},
		{"no detail", &apperr.APIError{Status: 500}, MsgLoginFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := newMockSettingsRepository()
			backend := newMockBackend().fail("POST", "/auth/login", tt.err)
			svc := newTestAuthService(backend, settings, time.Now())

			_, err := svc.Login(context.Background(), primary.LoginRequest{Email: "ana@example.com", Password: "x"})
			if err == nil {
				t.Fatal("expected error")
			}
			if got := apperr.Message(err, MsgLoginFailed); got != tt.wantMsg {
				t.Errorf("Message = %q, want %q", got, tt.wantMsg)
			}
			if len(settings.values) != 0 {
				t.Errorf("nothing should be persisted, got %v", settings.keys())
			}
		})
	}
}

func TestAuthService_RegisterValidatesBeforeRequest(t *testing.T) {
	backend := newMockBackend()
	svc := newTestAuthService(backend, newMockSettingsRepository(), time.Now())

	_, err := svc.Register(context.Background(), primary.RegisterRequest{Name: "Rui", Email: "rui@example.com", Password: "123"})

	var verr *apperr.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := verr.Fields["password"]; !ok {
		t.Errorf("expected password problem, got %v", verr.Fields)
	}
	if backend.total() != 0 {
		t.Errorf("no request expected, got %d", backend.total())
	}
}

func TestAuthService_Register(t *testing.T) {
	backend := newMockBackend().on("POST", "/auth/register", models.AuthResponse{
		AccessToken: "opaque-token",
		User:        models.User{ID: "u2", Name: "Rui", Email: "rui@example.com"},
	})
	settings := newMockSettingsRepository()
	svc := newTestAuthService(backend, settings, time.Now())

	sess, err := svc.Register(context.Background(), primary.RegisterRequest{Name: "Rui", Email: "rui@example.com", Password: "123456"})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if sess.Token != "opaque-token" || !sess.ExpiresAt.IsZero() {
		t.Errorf("unexpected session %+v", sess)
	}
	if settings.values["token"] != "opaque-token" {
		t.Errorf("token not persisted")
	}
}

func TestAuthService_Logout(t *testing.T) {
	settings := newMockSettingsRepository()
	settings.values["token"] = "t"
	settings.values["user"] = "{}"
	svc := newTestAuthService(newMockBackend(), settings, time.Now())

	if err := svc.Logout(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(settings.values) != 0 {
		t.Errorf("expected empty store, got %v", settings.keys())
	}
}

func TestAuthService_Me(t *testing.T) {
	backend := newMockBackend().on("GET", "/auth/me", models.User{ID: "u1", Email: "ana@example.com"})
	settings := newMockSettingsRepository()
	svc := newTestAuthService(backend, settings, time.Now())

	if _, err := svc.Me(context.Background()); !errors.Is(err, apperr.ErrNotAuthenticated) {
		t.Errorf("expected ErrNotAuthenticated without a session, got %v", err)
	}
	if backend.total() != 0 {
		t.Error("no request expected without a session")
	}

	settings.values["token"] = "opaque"
	user, err := svc.Me(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if user.Email != "ana@example.com" {
		t.Errorf("unexpected user %+v", user)
	}
}

func TestAuthService_Theme(t *testing.T) {
	svc := newTestAuthService(newMockBackend(), newMockSettingsRepository(), time.Now())
	ctx := context.Background()

	theme, err := svc.Theme(ctx)
	if err != nil || theme != primary.ThemeDark {
		t.Errorf("default theme = %q, %v", theme, err)
	}

	if err := svc.SetTheme(ctx, primary.ThemeLight); err != nil {
		t.Fatal(err)
	}
	if theme, _ := svc.Theme(ctx); theme != primary.ThemeLight {
		t.Errorf("theme = %q", theme)
	}

	if err := svc.SetTheme(ctx, "solarized"); err == nil {
		t.Error("expected error for unknown theme")
	}
}
