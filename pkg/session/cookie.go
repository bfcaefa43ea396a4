package session

import (
	"net/http"
	"strings"
	"time"
)

const (
	// CookieName is the session cookie name in debug mode.
	CookieName = "SessionId"

	// SecureCookieName is the session cookie name outside debug mode. The
	// "__Secure-" prefix makes browsers reject it unless it is Secure and set
	// over HTTPS.
	SecureCookieName = "__Secure-" + CookieName
)

// CookieOptions is the fixed configuration of a session cookie.
type CookieOptions struct {
	// Name is the cookie name.
	Name string

	// Lifetime is the cookie lifetime. Zero means a browser-session cookie.
	Lifetime time.Duration

	// Path is the cookie path.
	Path string

	// Domain is the cookie domain. Empty means host-only.
	Domain string

	// Secure restricts the cookie to HTTPS.
	Secure bool

	// HTTPOnly hides the cookie from JavaScript.
	HTTPOnly bool

	// SameSite is the cookie's same-site policy.
	SameSite http.SameSite

	// RefererCheck, when set, must appear in a non-empty Referer header for a
	// presented session id to be honoured.
	RefererCheck string
}

// Options returns the hardened cookie configuration for a request to host.
func Options(debug bool, host string) CookieOptions {
	name := SecureCookieName
	if debug {
		name = CookieName
	}
	return CookieOptions{
		Name:         name,
		Lifetime:     0,
		Path:         "/",
		Secure:       true,
		HTTPOnly:     true,
		SameSite:     http.SameSiteStrictMode,
		RefererCheck: host,
	}
}

// Cookie returns the Set-Cookie value carrying sessionID.
func (o CookieOptions) Cookie(sessionID string) *http.Cookie {
	c := &http.Cookie{
		Name:     o.Name,
		Value:    sessionID,
		Path:     o.Path,
		Domain:   o.Domain,
		Secure:   o.Secure,
		HttpOnly: o.HTTPOnly,
		SameSite: o.SameSite,
	}
	if o.Lifetime > 0 {
		c.MaxAge = int(o.Lifetime / time.Second)
	}
	return c
}

// Expired returns a cookie that removes the session cookie from the browser.
func (o CookieOptions) Expired() *http.Cookie {
	c := o.Cookie("")
	c.MaxAge = -1
	c.Expires = time.Unix(0, 0)
	return c
}

// RefererAllowed reports whether a presented session id may be used for a
// request carrying referer.
func (o CookieOptions) RefererAllowed(referer string) bool {
	if o.RefererCheck == "" || referer == "" {
		return true
	}
	return strings.Contains(referer, o.RefererCheck)
}
