// Package errors provides structured, coded errors for webkit.
//
// Every failure the helpers surface maps to a registered code that carries:
//   - A category (validation, decode, session, config, cli)
//   - A short message and a longer explanation
//   - The HTTP status a transport layer should answer with
//
// # Error Codes
//
//	E100-E119  validation   request parameter checks
//	E120-E159  config       webkit.json and environment
//	E200-E219  decode       base64url input
//	E300-E319  session      cookie-backed sessions
//
// # Usage
//
//	err := errors.New("E100").
//	    WithDetail("missing: id").
//	    WithSuggestion("Send every required parameter")
//
//	http.Error(w, err.Message, err.Status)
//
// StatusOf maps any error (wrapped or not) to a status code, so handlers can
// answer with the right status without knowing which package failed:
//
//	if err != nil {
//	    http.Error(w, err.Error(), errors.StatusOf(err))
//	}
package errors
