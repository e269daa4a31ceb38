package routing

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// ErrFilterNotDefined is reported when a route names a filter that was never registered.
var ErrFilterNotDefined = fmt.Errorf("routing: filter not defined")

// Filter runs before a route handler. Laravel 4: Route::filter('name', fn).
// Returning a non-nil handler stops the request and serves that handler
// instead; returning nil lets the request through.
type Filter func(r *http.Request) http.Handler

// filters is shared by a router and all of its groups.
type filters struct {
	mu    sync.RWMutex
	named map[string]Filter
}

// Router wraps chi.Router with Laravel-style helpers.
type Router struct {
	mux     chi.Router
	filters *filters
	logger  *slog.Logger
}

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the logger used for request logs and filter errors.
func WithLogger(l *slog.Logger) Option {
	return func(r *Router) {
		if l != nil {
			r.logger = l
		}
	}
}

// New creates a Router with sane defaults (RequestID, RealIP, request log, Recoverer).
func New(opts ...Option) *Router {
	r := &Router{
		mux:     chi.NewRouter(),
		filters: &filters{named: make(map[string]Filter)},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.mux.Use(middleware.RequestID)
	r.mux.Use(middleware.RealIP)
	r.mux.Use(r.logRequests)
	r.mux.Use(middleware.Recoverer)
	return r
}

func (r *Router) sub(mx chi.Router) *Router {
	return &Router{mux: mx, filters: r.filters, logger: r.logger}
}

func (r *Router) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, req)
		r.logger.InfoContext(req.Context(), "request",
			slog.String("method", req.Method),
			slog.String("path", req.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Duration("duration", time.Since(start)),
			slog.String("request_id", middleware.GetReqID(req.Context())),
		)
	})
}

// ── HTTP verbs ───────────────────────────────────────────────────────────────

func (r *Router) Get(pattern string, h http.HandlerFunc)    { r.mux.Get(pattern, h) }
func (r *Router) Post(pattern string, h http.HandlerFunc)   { r.mux.Post(pattern, h) }
func (r *Router) Put(pattern string, h http.HandlerFunc)    { r.mux.Put(pattern, h) }
func (r *Router) Patch(pattern string, h http.HandlerFunc)  { r.mux.Patch(pattern, h) }
func (r *Router) Delete(pattern string, h http.HandlerFunc) { r.mux.Delete(pattern, h) }

// ── Groups & Prefixes ────────────────────────────────────────────────────────

// Group creates an inline group — Laravel: Route::group([], fn)
func (r *Router) Group(fn func(r *Router)) {
	r.mux.Group(func(mx chi.Router) {
		fn(r.sub(mx))
	})
}

// Prefix creates a sub-router with a URL prefix — Laravel: Route::prefix('/api')
func (r *Router) Prefix(pattern string, fn func(r *Router)) {
	r.mux.Route(pattern, func(mx chi.Router) {
		fn(r.sub(mx))
	})
}

// Middleware adds one or more middleware to the router.
func (r *Router) Middleware(mw ...func(http.Handler) http.Handler) {
	r.mux.Use(mw...)
}

// With returns a router whose routes run the extra middleware.
//
//	r.With(r.Before("validator.login")).Post("/login", h)
func (r *Router) With(mw ...func(http.Handler) http.Handler) *Router {
	return r.sub(r.mux.With(mw...))
}

// ── Resource routes ──────────────────────────────────────────────────────────

// ResourceController handles the standard RESTful routes.
//
//	GET    /photos           → c.Index
//	POST   /photos           → c.Store
//	GET    /photos/{id}      → c.Show
//	PUT    /photos/{id}      → c.Update
//	DELETE /photos/{id}      → c.Destroy
type ResourceController interface {
	Index(w http.ResponseWriter, r *http.Request)
	Store(w http.ResponseWriter, r *http.Request)
	Show(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Destroy(w http.ResponseWriter, r *http.Request)
}

func (r *Router) Resource(pattern string, c ResourceController) {
	r.mux.Get(pattern, c.Index)
	r.mux.Post(pattern, c.Store)
	r.mux.Get(pattern+"/{id}", c.Show)
	r.mux.Put(pattern+"/{id}", c.Update)
	r.mux.Patch(pattern+"/{id}", c.Update)
	r.mux.Delete(pattern+"/{id}", c.Destroy)
}

// ── Filters ──────────────────────────────────────────────────────────────────

// Filter registers (or replaces) a named filter.
//
//	router.Filter("auth", func(r *http.Request) http.Handler { ... })
func (r *Router) Filter(name string, f Filter) {
	r.filters.mu.Lock()
	defer r.filters.mu.Unlock()
	r.filters.named[name] = f
}

// GetFilter returns a registered filter.
func (r *Router) GetFilter(name string) (Filter, bool) {
	r.filters.mu.RLock()
	defer r.filters.mu.RUnlock()
	f, ok := r.filters.named[name]
	return f, ok
}

// Before returns middleware running the named filters in order. Laravel 4:
// ['before' => 'auth|validator.login']. Filters are looked up per request,
// so they may be registered after the route.
func (r *Router) Before(names ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			for _, name := range names {
				f, ok := r.GetFilter(name)
				if !ok {
					r.logger.ErrorContext(req.Context(), "route filter failed",
						slog.String("filter", name), slog.Any("error", ErrFilterNotDefined))
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
					return
				}
				if h := f(req); h != nil {
					h.ServeHTTP(w, req)
					return
				}
			}
			next.ServeHTTP(w, req)
		})
	}
}

// ── Params ───────────────────────────────────────────────────────────────────

// Param extracts a URL param — equivalent to $request->route('id')
func Param(r *http.Request, key string) string {
	return chi.URLParam(r, key)
}

// ── Serve ────────────────────────────────────────────────────────────────────

// ServeHTTP implements http.Handler so Router can be passed to http.ListenAndServe.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}
