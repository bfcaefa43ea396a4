package app

import (
	"fmt"
	"net/http"

	"github.com/vango-dev/webkit/internal/errors"
	"github.com/vango-dev/webkit/pkg/base64url"
	"github.com/vango-dev/webkit/pkg/markup"
	"github.com/vango-dev/webkit/pkg/session"
)

const visitsKey = "visits"

func (a *App) handleEncode(w http.ResponseWriter, r *http.Request) {
	writeText(w, base64url.Encode([]byte(r.URL.Query().Get("data"))))
}

func (a *App) handleDecode(w http.ResponseWriter, r *http.Request) {
	data, err := base64url.Decode(r.URL.Query().Get("data"))
	if err != nil {
		a.metrics.ObserveDecodeError()
		a.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	_, _ = w.Write(data)
}

// handleTag renders user input, so everything is escaped before it reaches the
// passthrough builder.
func (a *App) handleTag(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	html := markup.WrapTag(
		markup.EscapeText(q.Get("tag")),
		markup.EscapeText(q.Get("text")),
		markup.Class(markup.EscapeAttr(q.Get("class"))),
		markup.ID(markup.EscapeAttr(q.Get("id"))),
	)
	writeHTML(w, html)
}

func (a *App) handleOption(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	writeHTML(w, markup.OptionTag(
		markup.EscapeText(q.Get("text")),
		markup.EscapeAttr(q.Get("value")),
		markup.EscapeAttr(q.Get("selected")),
	))
}

func (a *App) handleSession(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	if sess == nil {
		writeText(w, "sessions disabled")
		return
	}

	var visits int
	if _, err := sess.Get(visitsKey, &visits); err != nil {
		a.fail(w, r, err)
		return
	}
	visits++
	if err := sess.Set(visitsKey, visits); err != nil {
		a.fail(w, r, err)
		return
	}
	writeText(w, fmt.Sprintf("visits=%d new=%t", visits, sess.IsNew()))
}

func (a *App) handleSessionDestroy(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.Destroy(r.Context(), w, r, session.FromContext(r.Context())); err != nil {
		a.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.StatusOf(err)
	if status >= http.StatusInternalServerError {
		a.logger.Error("request failed", "path", r.URL.Path, "error", err)
	} else {
		a.logger.Debug("request rejected", "path", r.URL.Path, "error", err)
	}
	http.Error(w, err.Error(), status)
}

func writeText(w http.ResponseWriter, s string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = fmt.Fprintln(w, s)
}

func writeHTML(w http.ResponseWriter, s string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(s))
}
