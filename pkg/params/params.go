package params

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/vango-dev/webkit/internal/errors"
)

// Policy selects how a failed check is surfaced.
type Policy int

const (
	// PolicyFail returns a *ValidationError on failure.
	PolicyFail Policy = iota
	// PolicyReport returns the boolean result and never an error.
	PolicyReport
)

// String returns the policy name used in logs and metrics.
func (p Policy) String() string {
	switch p {
	case PolicyFail:
		return "fail"
	case PolicyReport:
		return "report"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// Option configures Check.
type Option func(*options)

type options struct {
	exact         bool
	rejectUnknown bool
	policy        Policy
}

func defaultOptions() options {
	return options{exact: true, policy: PolicyFail}
}

// Exact selects exact matching (true, the default) or subset matching.
func Exact(exact bool) Option {
	return func(o *options) {
		o.exact = exact
	}
}

// RejectUnknown additionally fails the check when request carries keys that
// are not required. It applies to both match modes.
func RejectUnknown(reject bool) Option {
	return func(o *options) {
		o.rejectUnknown = reject
	}
}

// OnFailure selects the failure policy. Default: PolicyFail.
func OnFailure(p Policy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// ValidationError reports a request that does not carry the required
// parameters.
type ValidationError struct {
	// Status is the HTTP status to answer with.
	Status int

	// Exact records which match policy failed.
	Exact bool

	// Missing lists required keys absent from the request, sorted.
	Missing []string

	// Unexpected lists keys that are not required, sorted. Populated for
	// exact checks and for checks with RejectUnknown; extra keys only cause
	// the failure under RejectUnknown.
	Unexpected []string

	err *errors.WebkitError
}

func (e *ValidationError) Error() string {
	return e.err.Message
}

// Unwrap returns the registered coded error.
func (e *ValidationError) Unwrap() error {
	return e.err
}

// Check reports whether request carries the required keys.
//
// With PolicyFail a failed check returns (false, *ValidationError). With
// PolicyReport it returns (false, nil). A successful check returns
// (true, nil) under either policy.
func Check[V any](required []string, request map[string]V, opts ...Option) (bool, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	res := match(required, request)
	ok := res.subset()
	if o.exact {
		ok = res.exact()
	}
	if o.rejectUnknown && len(res.unexpected) > 0 {
		ok = false
	}
	if ok {
		return true, nil
	}
	if o.policy == PolicyReport {
		return false, nil
	}

	verr := &ValidationError{
		Status:  http.StatusForbidden,
		Exact:   o.exact,
		Missing: res.missing,
		err:     errors.New("E100"),
	}
	if o.exact || o.rejectUnknown {
		verr.Unexpected = res.unexpected
	}
	if len(verr.Missing) > 0 {
		verr.err.WithDetail("missing: " + strings.Join(verr.Missing, ", "))
	} else if len(verr.Unexpected) > 0 {
		verr.err.WithDetail("unexpected: " + strings.Join(verr.Unexpected, ", "))
	}
	return false, verr
}

// CheckRequestParams is the legacy count-based check.
//
// It counts the request keys listed in required, each key once, and returns
// true when that count differs from len(required). Duplicates in required are
// counted by len(required) only. When die is set and the counts are equal it
// also returns a *ValidationError with status 500 and the message
// "wrong number of parameters".
//
// Deprecated: the result is inverted relative to its name. Use Check.
func CheckRequestParams[V any](required []string, request map[string]V, die bool) (bool, error) {
	want := make(map[string]struct{}, len(required))
	for _, key := range required {
		want[key] = struct{}{}
	}
	found := 0
	for key := range request {
		if _, ok := want[key]; ok {
			found++
		}
	}
	result := found != len(required)
	if die && !result {
		return result, &ValidationError{
			Status: http.StatusInternalServerError,
			Exact:  true,
			err:    errors.New("E101"),
		}
	}
	return result, nil
}

type matchResult struct {
	required   int
	found      int
	missing    []string
	unexpected []string
}

// exact holds when the intersection with the request has the size of the
// required set. Extra request keys do not affect it.
func (m matchResult) exact() bool {
	return m.found == m.required
}

func (m matchResult) subset() bool {
	return m.required <= m.found
}

func match[V any](required []string, request map[string]V) matchResult {
	want := make(map[string]struct{}, len(required))
	for _, key := range required {
		want[key] = struct{}{}
	}

	res := matchResult{required: len(want)}
	for key := range want {
		if _, ok := request[key]; ok {
			res.found++
		} else {
			res.missing = append(res.missing, key)
		}
	}
	for key := range request {
		if _, ok := want[key]; !ok {
			res.unexpected = append(res.unexpected, key)
		}
	}
	sort.Strings(res.missing)
	sort.Strings(res.unexpected)
	return res
}
