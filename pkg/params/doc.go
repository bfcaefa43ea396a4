// Package params checks that a request carries the parameters a handler
// expects.
//
// Two match policies are supported:
//   - Exact (the default): the request carries as many required keys as
//     the required set holds.
//   - Subset: every required key is present.
//
// Neither mode looks at extra keys. RejectUnknown fails a check whose request
// carries keys outside the required set.
//
// Two failure policies decide how a failed check surfaces:
//   - PolicyFail (the default) returns a *ValidationError carrying 403.
//   - PolicyReport returns false and never an error.
//
// Only keys are inspected, so any map keyed by string works:
//
//	ok, err := params.Check([]string{"id", "token"}, r.URL.Query())
//	ok, _ := params.Check(required, values, params.Exact(false), params.OnFailure(params.PolicyReport))
//
// Require wraps the check as net/http middleware that answers 403 before the
// handler runs.
package params
