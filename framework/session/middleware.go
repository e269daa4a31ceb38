package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"
)

type contextKey struct{}

// FromContext returns the session attached by Middleware, or nil.
func FromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(contextKey{}).(*Session)
	return s
}

// WithContext attaches s to ctx.
func WithContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// Options configures Middleware.
type Options struct {
	CookieName string
	Lifetime   time.Duration
	Secure     bool
	Logger     *slog.Logger
}

// Middleware starts a session for every request: it loads the session named
// by the cookie (or creates one), exposes it through the request context,
// and ages flash data and saves it once the handler returns.
func Middleware(store Store, opts Options) func(http.Handler) http.Handler {
	if opts.CookieName == "" {
		opts.CookieName = "laravel_session"
	}
	if opts.Lifetime <= 0 {
		opts.Lifetime = 2 * time.Hour
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			s := load(ctx, store, r, opts)

			http.SetCookie(w, &http.Cookie{
				Name:     opts.CookieName,
				Value:    s.ID,
				Path:     "/",
				HttpOnly: true,
				Secure:   opts.Secure,
				SameSite: http.SameSiteLaxMode,
				Expires:  s.ExpiresAt,
			})

			next.ServeHTTP(w, r.WithContext(WithContext(ctx, s)))

			s.AgeFlash()
			if err := store.Save(ctx, s); err != nil {
				opts.Logger.ErrorContext(ctx, "session save failed", slog.String("session", s.ID), slog.Any("error", err))
			}
		})
	}
}

func load(ctx context.Context, store Store, r *http.Request, opts Options) *Session {
	c, err := r.Cookie(opts.CookieName)
	if err != nil || c.Value == "" {
		return New(opts.Lifetime)
	}

	s, err := store.Get(ctx, c.Value)
	if err != nil {
		if !errors.Is(err, ErrSessionNotFound) && !errors.Is(err, ErrSessionExpired) {
			opts.Logger.WarnContext(ctx, "session load failed", slog.Any("error", err))
		}
		return New(opts.Lifetime)
	}

	s.ExpiresAt = time.Now().Add(opts.Lifetime)
	return s
}
