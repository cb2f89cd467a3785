package session

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pizzeria-next/internal/config"
	"github.com/pizzeria-next/internal/constants"
	"github.com/pizzeria-next/internal/models"
	"github.com/pizzeria-next/internal/store"
	"github.com/pizzeria-next/internal/upstream"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupSessionTest(t *testing.T) *Manager {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.StoreEntry{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return NewManager(config.SessionConfig{SecretKey: "test-secret", ExpireHours: 1}, store.NewStore(db))
}

func TestIssueAndParseRoundTrip(t *testing.T) {
	m := setupSessionTest(t)

	sid, token, err := m.Issue()
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if sid == "" || token == "" {
		t.Fatalf("empty session id or token")
	}

	parsed, err := m.Parse(token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if parsed != sid {
		t.Fatalf("sid mismatch: want=%s got=%s", sid, parsed)
	}
}

func TestParseRejectsTamperedToken(t *testing.T) {
	m := setupSessionTest(t)

	_, token, err := m.Issue()
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	other := NewManager(config.SessionConfig{SecretKey: "another-secret", ExpireHours: 1}, nil)
	if _, err := other.Parse(token); !errors.Is(err, ErrSessionInvalid) {
		t.Fatalf("foreign-key token must be rejected, got=%v", err)
	}

	if _, err := m.Parse(token + "x"); !errors.Is(err, ErrSessionInvalid) {
		t.Fatalf("tampered token must be rejected, got=%v", err)
	}
	if _, err := m.Parse(""); !errors.Is(err, ErrSessionInvalid) {
		t.Fatalf("empty token must be rejected, got=%v", err)
	}
}

func TestLoginLogoutLifecycle(t *testing.T) {
	m := setupSessionTest(t)
	sid, _, err := m.Issue()
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if _, ok := m.Current(sid); ok {
		t.Fatalf("fresh session must be anonymous")
	}
	if got := m.Role(sid); got != constants.RoleGuest {
		t.Fatalf("anonymous role want guest, got=%s", got)
	}

	if err := m.Login(sid, &upstream.LoginResult{Token: "tok-1", Role: "admin", Name: "Amit"}); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	auth, ok := m.Current(sid)
	if !ok || auth.Token != "tok-1" || auth.Name != "Amit" {
		t.Fatalf("unexpected auth state: %+v ok=%v", auth, ok)
	}
	if got := m.Role(sid); got != constants.RoleAdmin {
		t.Fatalf("role want admin, got=%s", got)
	}

	if err := m.Logout(sid); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, ok := m.Current(sid); ok {
		t.Fatalf("auth state must be cleared after logout")
	}
}

func TestHandleUnauthorizedClearsAuth(t *testing.T) {
	m := setupSessionTest(t)
	sid, _, err := m.Issue()
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if err := m.Login(sid, &upstream.LoginResult{Token: "stale", Role: "user"}); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	m.HandleUnauthorized(sid)
	if _, ok := m.Current(sid); ok {
		t.Fatalf("auth state must be cleared after upstream 401")
	}
}
