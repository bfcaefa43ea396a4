package session

import (
	"context"
	"crypto/rand"
	stderrors "errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/vango-dev/webkit/internal/errors"
	"github.com/vango-dev/webkit/pkg/base64url"
)

// DefaultIdleTimeout is how long an untouched session survives server-side.
const DefaultIdleTimeout = 24 * time.Minute

// idBytes is the entropy of a session id before encoding.
const idBytes = 32

// ErrSessionActive is wrapped by the E300 error Start returns when the
// request already carries a started session.
var ErrSessionActive = stderrors.New("session already active")

// Config configures a Manager.
type Config struct {
	// Debug selects the plain cookie name instead of the "__Secure-" one.
	Debug bool

	// Disabled turns Start into a no-op.
	Disabled bool

	// Domain is the cookie domain. Empty means host-only.
	Domain string

	// Store holds server-side session state.
	// Default: a new MemoryStore.
	Store SessionStore

	// IdleTimeout is how long a session survives without being started again.
	// Default: DefaultIdleTimeout.
	IdleTimeout time.Duration

	// Logger receives session lifecycle logs.
	// Default: slog.Default().
	Logger *slog.Logger

	// OnStart is called after every successful Start.
	OnStart func(r *http.Request, s *Session)
}

// Manager starts, saves and destroys sessions.
type Manager struct {
	config Config
	store  SessionStore
	logger *slog.Logger

	// Overrideable for tests.
	now    func() time.Time
	random io.Reader
}

// NewManager creates a Manager, filling unset Config fields with defaults.
func NewManager(config Config) *Manager {
	if config.Store == nil {
		config.Store = NewMemoryStore()
	}
	if config.IdleTimeout <= 0 {
		config.IdleTimeout = DefaultIdleTimeout
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Manager{
		config: config,
		store:  config.Store,
		logger: config.Logger,
		now:    time.Now,
		random: rand.Reader,
	}
}

// Options returns the cookie configuration used for r.
func (m *Manager) Options(r *http.Request) CookieOptions {
	opts := Options(m.config.Debug, r.Host)
	opts.Domain = m.config.Domain
	return opts
}

// Start attaches a session to the exchange and emits its Set-Cookie header.
// It must run before anything is written to the response body.
//
// When the manager is disabled Start does nothing and returns (nil, nil).
// When r's context already carries a session it returns an error matching
// ErrSessionActive.
//
// A new session is written to the store. A resumed one only has its expiry
// extended; its record is rewritten by Save once its values change.
func (m *Manager) Start(w http.ResponseWriter, r *http.Request) (*Session, error) {
	if m.config.Disabled {
		return nil, nil
	}
	if FromContext(r.Context()) != nil {
		return nil, errors.New("E300").Wrap(ErrSessionActive)
	}

	opts := m.Options(r)
	now := m.now()

	sess, err := m.resume(r, opts)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		id, err := m.newID()
		if err != nil {
			return nil, err
		}
		sess = newSession(id, now)
		if err := m.persist(r.Context(), sess); err != nil {
			return nil, err
		}
		m.logger.Debug("session created", "session_id", sess.ID, "cookie", opts.Name)
	} else {
		sess.touch(now)
		if err := m.store.Touch(r.Context(), sess.ID, now.Add(m.config.IdleTimeout)); err != nil {
			return nil, errors.New("E301").Wrap(err)
		}
		m.logger.Debug("session resumed", "session_id", sess.ID)
	}

	http.SetCookie(w, opts.Cookie(sess.ID))

	if m.config.OnStart != nil {
		m.config.OnStart(r, sess)
	}
	return sess, nil
}

// resume loads the session named by r's cookie. It returns (nil, nil) when
// there is no usable cookie or the store has no record for it.
func (m *Manager) resume(r *http.Request, opts CookieOptions) (*Session, error) {
	cookie, err := r.Cookie(opts.Name)
	if err != nil || !validID(cookie.Value) {
		return nil, nil
	}
	if !opts.RefererAllowed(r.Referer()) {
		m.logger.Warn("session id discarded by referer check",
			"referer", r.Referer(), "host", opts.RefererCheck)
		return nil, nil
	}

	data, err := m.store.Load(r.Context(), cookie.Value)
	if err != nil {
		return nil, errors.New("E301").Wrap(err)
	}
	if data == nil {
		return nil, nil
	}

	ss, err := Deserialize(data)
	if err != nil || ss.ID != cookie.Value {
		m.logger.Warn("discarding unreadable session record", "session_id", cookie.Value, "error", err)
		return nil, nil
	}
	return restore(ss), nil
}

// Save writes the session's state to the store when its values changed since
// the last write. Saving an unchanged or destroyed session is a no-op.
func (m *Manager) Save(ctx context.Context, s *Session) error {
	if s == nil || s.isDestroyed() || !s.isDirty() {
		return nil
	}
	return m.persist(ctx, s)
}

func (m *Manager) persist(ctx context.Context, s *Session) error {
	data, err := Serialize(s.snapshot())
	if err != nil {
		return errors.New("E301").Wrap(err)
	}
	if err := m.store.Save(ctx, s.ID, data, m.now().Add(m.config.IdleTimeout)); err != nil {
		return errors.New("E301").Wrap(err)
	}
	s.markClean()
	return nil
}

// Destroy deletes the session's server-side state and expires its cookie.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request, s *Session) error {
	if s == nil {
		return nil
	}
	if err := m.store.Delete(ctx, s.ID); err != nil {
		return errors.New("E301").Wrap(err)
	}
	s.markDestroyed()
	http.SetCookie(w, m.Options(r).Expired())
	m.logger.Debug("session destroyed", "session_id", s.ID)
	return nil
}

// Close closes the underlying store.
func (m *Manager) Close() error {
	return m.store.Close()
}

func (m *Manager) newID() (string, error) {
	buf := make([]byte, idBytes)
	if _, err := io.ReadFull(m.random, buf); err != nil {
		return "", errors.New("E302").Wrap(err)
	}
	return base64url.Encode(buf), nil
}

func validID(id string) bool {
	raw, err := base64url.Decode(id)
	return err == nil && len(raw) == idBytes
}
