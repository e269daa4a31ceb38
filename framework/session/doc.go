// Package session provides request sessions with Laravel-style flash data.
//
// A value stored with Flash is readable during the next request only, which
// is how validation errors and old input reach a re-rendered form:
//
//	store := session.NewMemoryStore() // or session.NewRedisStore(client, "session:", 2*time.Hour)
//	router.Middleware(session.Middleware(store, session.Options{CookieName: "app_session"}))
//
//	s := session.FromContext(r.Context())
//	s.Flash("status", "Profile updated.")
package session
