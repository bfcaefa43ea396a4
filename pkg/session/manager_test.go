package session

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/vango-dev/webkit/internal/errors"
)

func newTestManager(t *testing.T, cfg Config) (*Manager, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore()
	t.Cleanup(func() { store.Close() })
	cfg.Store = store
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return NewManager(cfg), store
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("no %s cookie in %v", name, rec.Header().Values("Set-Cookie"))
	return nil
}

func TestStartProduction(t *testing.T) {
	m, store := newTestManager(t, Config{})

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "https://example.com/", nil)
	sess, err := m.Start(rec, r)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if sess == nil || !sess.IsNew() {
		t.Fatalf("expected a new session, got %+v", sess)
	}

	c := sessionCookie(t, rec, SecureCookieName)
	if c.Value != sess.ID {
		t.Errorf("cookie value = %q, want %q", c.Value, sess.ID)
	}
	if !c.Secure || !c.HttpOnly || c.SameSite != http.SameSiteStrictMode || c.Path != "/" {
		t.Errorf("cookie not hardened: %+v", c)
	}
	if c.MaxAge != 0 || !c.Expires.IsZero() {
		t.Errorf("cookie must be a browser-session cookie: %+v", c)
	}
	if len(sess.ID) != 43 {
		t.Errorf("session id length = %d, want 43", len(sess.ID))
	}
	if store.Count() != 1 {
		t.Errorf("store Count = %d, want 1", store.Count())
	}
}

func TestStartDebugCookieName(t *testing.T) {
	m, _ := newTestManager(t, Config{Debug: true})

	rec := httptest.NewRecorder()
	if _, err := m.Start(rec, httptest.NewRequest(http.MethodGet, "/", nil)); err != nil {
		t.Fatalf("Start: %v", err)
	}
	sessionCookie(t, rec, CookieName)
}

func TestStartDisabled(t *testing.T) {
	m, store := newTestManager(t, Config{Disabled: true})

	rec := httptest.NewRecorder()
	sess, err := m.Start(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if sess != nil || err != nil {
		t.Fatalf("Start = %v, %v; want nil, nil", sess, err)
	}
	if rec.Header().Get("Set-Cookie") != "" {
		t.Error("disabled manager must not set a cookie")
	}
	if store.Count() != 0 {
		t.Error("disabled manager must not store state")
	}
}

func TestStartAlreadyActive(t *testing.T) {
	m, _ := newTestManager(t, Config{})

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r = r.WithContext(NewContext(r.Context(), newSession("existing", time.Now())))

	_, err := m.Start(httptest.NewRecorder(), r)
	if !stderrors.Is(err, ErrSessionActive) {
		t.Fatalf("err = %v, want ErrSessionActive", err)
	}
	if errors.StatusOf(err) != http.StatusConflict {
		t.Errorf("StatusOf = %d, want 409", errors.StatusOf(err))
	}
}

func TestStartResumes(t *testing.T) {
	m, _ := newTestManager(t, Config{})

	rec := httptest.NewRecorder()
	first, err := m.Start(rec, httptest.NewRequest(http.MethodGet, "https://example.com/", nil))
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	_ = first.Set("user", "ada")
	if err := m.Save(context.Background(), first); err != nil {
		t.Fatalf("Save: %v", err)
	}

	tests := []struct {
		name       string
		referer    string
		wantResume bool
	}{
		{"no referer", "", true},
		{"same host referer", "https://example.com/login", true},
		{"foreign referer", "https://evil.test/", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "https://example.com/next", nil)
			r.AddCookie(&http.Cookie{Name: SecureCookieName, Value: first.ID})
			if tt.referer != "" {
				r.Header.Set("Referer", tt.referer)
			}

			sess, err := m.Start(httptest.NewRecorder(), r)
			if err != nil {
				t.Fatalf("Start: %v", err)
			}
			if resumed := sess.ID == first.ID; resumed != tt.wantResume {
				t.Fatalf("resumed = %v, want %v", resumed, tt.wantResume)
			}
			if tt.wantResume {
				if sess.IsNew() {
					t.Error("resumed session reported as new")
				}
				if got := sess.GetString("user"); got != "ada" {
					t.Errorf("user = %q, want ada", got)
				}
			}
		})
	}
}

func TestStartIgnoresUnknownAndMalformedIDs(t *testing.T) {
	m, _ := newTestManager(t, Config{})

	for _, value := range []string{"short", strings.Repeat("A", 43), "not base64!"} {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: SecureCookieName, Value: value})
		sess, err := m.Start(httptest.NewRecorder(), r)
		if err != nil {
			t.Fatalf("Start(%q): %v", value, err)
		}
		if sess.ID == value || !sess.IsNew() {
			t.Errorf("cookie %q should not be resumed", value)
		}
	}
}

func TestStartCallsOnStart(t *testing.T) {
	var started []string
	m, _ := newTestManager(t, Config{OnStart: func(r *http.Request, s *Session) {
		started = append(started, s.ID)
	}})

	sess, err := m.Start(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if len(started) != 1 || started[0] != sess.ID {
		t.Errorf("OnStart calls = %v", started)
	}
}

func TestStartRandomFailure(t *testing.T) {
	m, _ := newTestManager(t, Config{})
	m.random = bytes.NewReader([]byte{1, 2, 3})

	_, err := m.Start(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if errors.CodeOf(err) != "E302" {
		t.Fatalf("err = %v, want E302", err)
	}
}

func TestStartStoreFailure(t *testing.T) {
	m, store := newTestManager(t, Config{})
	store.Close()

	rec := httptest.NewRecorder()
	_, err := m.Start(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if errors.CodeOf(err) != "E301" {
		t.Fatalf("err = %v, want E301", err)
	}
	if rec.Header().Get("Set-Cookie") != "" {
		t.Error("cookie must not be set when the store fails")
	}
}

func TestIdleExpiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	store := NewMemoryStore(WithClock(clock))
	defer store.Close()
	m := NewManager(Config{Store: store, IdleTimeout: time.Minute, Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	m.now = clock

	first, err := m.Start(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	now = now.Add(2 * time.Minute)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: SecureCookieName, Value: first.ID})
	second, err := m.Start(httptest.NewRecorder(), r)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if second.ID == first.ID {
		t.Error("idle session should have expired")
	}
}

func TestDestroy(t *testing.T) {
	m, store := newTestManager(t, Config{})

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	sess, err := m.Start(httptest.NewRecorder(), r)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	rec := httptest.NewRecorder()
	if err := m.Destroy(context.Background(), rec, r, sess); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	if store.Count() != 0 {
		t.Errorf("store Count = %d, want 0", store.Count())
	}
	c := sessionCookie(t, rec, SecureCookieName)
	if c.MaxAge >= 0 {
		t.Errorf("expired cookie MaxAge = %d", c.MaxAge)
	}

	if err := m.Destroy(context.Background(), rec, r, nil); err != nil {
		t.Errorf("Destroy(nil) = %v", err)
	}
	if err := m.Save(context.Background(), nil); err != nil {
		t.Errorf("Save(nil) = %v", err)
	}
}

func TestNewManagerDefaults(t *testing.T) {
	m := NewManager(Config{})
	defer m.Close()
	if m.config.IdleTimeout != DefaultIdleTimeout {
		t.Errorf("IdleTimeout = %v", m.config.IdleTimeout)
	}
	if m.store == nil || m.logger == nil {
		t.Error("store and logger must default")
	}

	r := httptest.NewRequest(http.MethodGet, "http://example.com/", nil)
	m.config.Domain = "example.com"
	if opts := m.Options(r); opts.Domain != "example.com" || opts.RefererCheck != "example.com" {
		t.Errorf("Options = %+v", opts)
	}
}

func TestSaveAfterDestroyIsNoop(t *testing.T) {
	m, store := newTestManager(t, Config{})

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	sess, err := m.Start(httptest.NewRecorder(), r)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := m.Destroy(context.Background(), httptest.NewRecorder(), r, sess); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	if err := m.Save(context.Background(), sess); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if store.Count() != 0 {
		t.Error("destroyed session was written back")
	}
}

type countingStore struct {
	SessionStore
	saves, touches int
}

func (c *countingStore) Save(ctx context.Context, id string, data []byte, expiresAt time.Time) error {
	c.saves++
	return c.SessionStore.Save(ctx, id, data, expiresAt)
}

func (c *countingStore) Touch(ctx context.Context, id string, expiresAt time.Time) error {
	c.touches++
	return c.SessionStore.Touch(ctx, id, expiresAt)
}

func TestResumeExtendsExpiryWithoutRewrite(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	mem := NewMemoryStore(WithClock(clock))
	defer mem.Close()
	store := &countingStore{SessionStore: mem}
	m := NewManager(Config{Store: store, IdleTimeout: time.Minute, Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	m.now = clock

	first, err := m.Start(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if store.saves != 1 || store.touches != 0 {
		t.Fatalf("new session: saves=%d touches=%d, want 1 and 0", store.saves, store.touches)
	}
	if err := m.Save(context.Background(), first); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if store.saves != 1 {
		t.Errorf("unchanged session was rewritten: saves=%d", store.saves)
	}

	resume := func() *Session {
		t.Helper()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: SecureCookieName, Value: first.ID})
		sess, err := m.Start(httptest.NewRecorder(), r)
		if err != nil {
			t.Fatalf("Start: %v", err)
		}
		return sess
	}

	// Each resume pushes the expiry a full minute past its own time.
	for i := 0; i < 3; i++ {
		now = now.Add(50 * time.Second)
		if sess := resume(); sess.ID != first.ID {
			t.Fatalf("resume %d minted a new session", i)
		}
	}
	if store.saves != 1 || store.touches != 3 {
		t.Errorf("resumes: saves=%d touches=%d, want 1 and 3", store.saves, store.touches)
	}

	sess := resume()
	_ = sess.Set("k", "v")
	if err := m.Save(context.Background(), sess); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if store.saves != 2 {
		t.Errorf("changed session not written: saves=%d", store.saves)
	}
	if err := m.Save(context.Background(), sess); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if store.saves != 2 {
		t.Errorf("second Save rewrote a clean session: saves=%d", store.saves)
	}
}

func TestSessionActiveErrorIsNotShared(t *testing.T) {
	m, _ := newTestManager(t, Config{})

	start := func() error {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r = r.WithContext(NewContext(r.Context(), newSession("existing", time.Now())))
		_, err := m.Start(httptest.NewRecorder(), r)
		return err
	}

	var we *errors.WebkitError
	if !stderrors.As(start(), &we) {
		t.Fatal("expected a WebkitError")
	}
	we.WithDetail("changed by caller").WithStatus(http.StatusTeapot)

	err := start()
	if !stderrors.Is(err, ErrSessionActive) {
		t.Fatalf("err = %v, want ErrSessionActive", err)
	}
	if !stderrors.As(err, &we) || we.Detail == "changed by caller" {
		t.Errorf("caller mutation leaked into later errors: %+v", we)
	}
	if errors.StatusOf(err) != http.StatusConflict {
		t.Errorf("StatusOf = %d, want 409", errors.StatusOf(err))
	}
}
