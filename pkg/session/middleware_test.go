package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMiddleware(t *testing.T) {
	m, _ := newTestManager(t, Config{})

	var seen *Session
	handler := Middleware(m)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = FromContext(r.Context())
		var visits int
		_, _ = seen.Get("visits", &visits)
		_ = seen.Set("visits", visits+1)
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if seen == nil {
		t.Fatal("handler did not see a session")
	}
	cookie := sessionCookie(t, rec, SecureCookieName)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(cookie)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, r)

	var visits int
	if _, err := seen.Get("visits", &visits); err != nil || visits != 2 {
		t.Errorf("visits = %d, %v; want 2", visits, err)
	}
}

func TestMiddlewareDisabled(t *testing.T) {
	m, _ := newTestManager(t, Config{Disabled: true})

	called := false
	handler := Middleware(m)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if FromContext(r.Context()) != nil {
			t.Error("disabled middleware must not attach a session")
		}
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if !called {
		t.Error("handler not called")
	}
}

func TestMiddlewareNested(t *testing.T) {
	m, _ := newTestManager(t, Config{})

	handler := Middleware(m)(Middleware(m)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("inner handler must not run")
	})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
}

func TestFromContextEmpty(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if FromContext(r.Context()) != nil {
		t.Error("FromContext on bare context should be nil")
	}
}
