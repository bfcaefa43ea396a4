// Package session starts cookie-backed server-side sessions with a fixed,
// hardened cookie configuration.
//
// Every session cookie is:
//   - Named "__Secure-SessionId" ("SessionId" when Debug is set)
//   - A browser-session cookie (no Max-Age, gone when the browser closes)
//   - Path "/", Secure, HttpOnly, SameSite=Strict
//
// A presented session id is only honoured when the request's Referer header is
// empty or contains the request host; otherwise a fresh session is issued.
//
// # Starting Sessions
//
//	manager := session.NewManager(session.Config{
//	    Debug: cfg.Debug,
//	    Store: session.NewMemoryStore(),
//	})
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    sess, err := manager.Start(w, r) // before writing the body
//	    ...
//	    _ = manager.Save(r.Context(), sess)
//	}
//
// Or let the middleware start and save the session around a handler:
//
//	r.Use(session.Middleware(manager))
//	sess := session.FromContext(r.Context())
//
// # Session Storage
//
// The SessionStore interface defines the contract for server-side state.
// MemoryStore is the only implementation; it suits single-process servers.
package session
