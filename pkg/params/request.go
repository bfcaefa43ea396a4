package params

import (
	stderrors "errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/vango-dev/webkit/internal/errors"
)

// Source selects which part of an HTTP request supplies the parameters.
type Source int

const (
	// SourceRequest merges the URL query and the form body.
	SourceRequest Source = iota
	// SourceQuery uses only the URL query.
	SourceQuery
	// SourceForm uses only the form body of POST, PUT and PATCH requests.
	SourceForm
)

// FromRequest returns the parameters of r selected by src.
// A body that cannot be parsed yields an E102 error carrying 400.
func FromRequest(r *http.Request, src Source) (url.Values, error) {
	if src == SourceQuery {
		return r.URL.Query(), nil
	}
	if err := r.ParseForm(); err != nil {
		return nil, errors.New("E102").Wrap(err)
	}
	if src == SourceForm {
		return r.PostForm, nil
	}
	return r.Form, nil
}

// RequireOption configures Require.
type RequireOption func(*requireConfig)

type requireConfig struct {
	source        Source
	exact         bool
	rejectUnknown bool
	logger        *slog.Logger
	observer      func(ok bool)
}

// WithSource selects where the parameters come from. Default: SourceRequest.
func WithSource(src Source) RequireOption {
	return func(c *requireConfig) {
		c.source = src
	}
}

// WithExact selects exact (default) or subset matching.
func WithExact(exact bool) RequireOption {
	return func(c *requireConfig) {
		c.exact = exact
	}
}

// WithRejectUnknown rejects requests carrying keys that are not required.
func WithRejectUnknown(reject bool) RequireOption {
	return func(c *requireConfig) {
		c.rejectUnknown = reject
	}
}

// WithLogger sets the logger used for rejected requests.
func WithLogger(logger *slog.Logger) RequireOption {
	return func(c *requireConfig) {
		c.logger = logger
	}
}

// WithObserver registers a callback invoked with the outcome of every check.
func WithObserver(fn func(ok bool)) RequireOption {
	return func(c *requireConfig) {
		c.observer = fn
	}
}

// Require returns middleware that rejects requests not carrying the required
// parameters. Rejections are answered with the status of the error (403 for
// a failed check, 400 for an unparsable body) before next runs.
func Require(required []string, opts ...RequireOption) func(http.Handler) http.Handler {
	cfg := requireConfig{source: SourceRequest, exact: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			values, err := FromRequest(r, cfg.source)
			if err == nil {
				_, err = Check(required, values, Exact(cfg.exact), RejectUnknown(cfg.rejectUnknown))
			}
			if cfg.observer != nil {
				cfg.observer(err == nil)
			}
			if err != nil {
				status := errors.StatusOf(err)
				msg := http.StatusText(status)
				attrs := []any{"path", r.URL.Path, "status", status, "error", err}
				var verr *ValidationError
				if stderrors.As(err, &verr) {
					msg = verr.Error()
					attrs = append(attrs, "missing", verr.Missing, "unexpected", verr.Unexpected)
				}
				cfg.logger.Warn("request rejected", attrs...)
				http.Error(w, msg, status)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
