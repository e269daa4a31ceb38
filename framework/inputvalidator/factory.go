package inputvalidator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	gohttp "github.com/km-arc/go-laravel-input/framework/http"
	"github.com/km-arc/go-laravel-input/framework/http/validation"
	"github.com/km-arc/go-laravel-input/framework/routing"
)

// FilterPrefix namespaces the route filters registered by Add.
const FilterPrefix = "validator."

// ErrInvalidValidator is returned when a reference cannot be resolved to a
// validator.
var ErrInvalidValidator = errors.New("inputvalidator: invalid validator reference")

// FilterRegistrar receives the route filters created by Add.
// *routing.Router implements it.
type FilterRegistrar interface {
	Filter(name string, f routing.Filter)
}

// Factory resolves validators by name and runs them as route filters.
// It is safe for concurrent use.
type Factory struct {
	mu      sync.RWMutex
	classes map[string]Constructor
	named   map[string]Constructor
	filters map[string]routing.Filter

	registrar FilterRegistrar
	engine    Engine
	source    func(r *http.Request) Source
	inputs    InputStore
	logger    *slog.Logger
}

// Option configures a Factory.
type Option func(*Factory)

func WithLogger(l *slog.Logger) Option {
	return func(f *Factory) {
		if l != nil {
			f.logger = l
		}
	}
}

// WithInputStore sets where validated filter input is kept.
// Defaults to a MemoryInputStore.
func WithInputStore(s InputStore) Option {
	return func(f *Factory) {
		if s != nil {
			f.inputs = s
		}
	}
}

func WithEngine(e Engine) Option {
	return func(f *Factory) {
		if e != nil {
			f.engine = e
		}
	}
}

// WithSource changes how filters wrap the incoming request.
// Defaults to gohttp.NewRequest.
func WithSource(fn func(r *http.Request) Source) Option {
	return func(f *Factory) {
		if fn != nil {
			f.source = fn
		}
	}
}

// NewFactory creates a Factory. Filters are handed to registrar, which may be
// nil when they are only fetched through Filter.
func NewFactory(registrar FilterRegistrar, opts ...Option) *Factory {
	f := &Factory{
		classes:   make(map[string]Constructor),
		named:     make(map[string]Constructor),
		filters:   make(map[string]routing.Filter),
		registrar: registrar,
		engine:    DefaultEngine,
		source:    func(r *http.Request) Source { return gohttp.NewRequest(r) },
		inputs:    NewMemoryInputStore(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// RegisterClass makes a validator type resolvable by name.
func (f *Factory) RegisterClass(name string, ctor Constructor) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.classes[name] = ctor
}

// resolve turns a reference into a constructor. A name that was never added
// but names a registered class is added as itself.
func (f *Factory) resolve(ref Reference) (Constructor, error) {
	switch ref.kind {
	case refClass:
		if ref.ctor != nil {
			return ref.ctor, nil
		}
	case refClosure:
		if ref.fn != nil {
			fn := ref.fn
			return func() Definer { return fn }, nil
		}
	case refName:
		f.mu.Lock()
		defer f.mu.Unlock()
		if ctor, ok := f.named[ref.name]; ok {
			return ctor, nil
		}
		if ctor, ok := f.classes[ref.name]; ok {
			f.named[ref.name] = ctor
			return ctor, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrInvalidValidator, ref)
}

// Make builds the referenced validator for src. A ByClosure reference also
// yields a *Validator here; use MakeClosure to get the input, rules and
// messages of an inline definition without a Validator.
func (f *Factory) Make(src Source, ref Reference) (*Validator, error) {
	ctor, err := f.resolve(ref)
	if err != nil {
		return nil, err
	}
	def := ctor()
	if def == nil {
		return nil, fmt.Errorf("%w: %s built nothing", ErrInvalidValidator, ref)
	}
	return New(def, src, f.engine), nil
}

// MakeClosure runs an inline definition against src and returns what the
// engine would receive: the input, the rules and the custom messages.
func (f *Factory) MakeClosure(src Source, fn DefinerFunc) (map[string]string, validation.Rules, validation.Messages) {
	v := NewClosure(fn, src, f.engine)
	return v.Input(true), v.Rules(), v.FailedMessages()
}

// Add maps name to ref and registers the "validator.<name>" filter answering
// failures with resp. With a nil resp the definer's FilterFailResponse is
// used; when there is none, no filter is registered. Adding a name again
// replaces it.
func (f *Factory) Add(name string, ref Reference, resp Response) error {
	ctor, err := f.resolve(ref)
	if err != nil {
		return fmt.Errorf("inputvalidator: add %q: %w", name, err)
	}

	f.mu.Lock()
	f.named[name] = ctor
	f.mu.Unlock()

	if resp == nil {
		if fr, ok := ctor().(FailResponder); ok {
			resp = fr.FilterFailResponse()
		}
	}
	if resp == nil {
		f.logger.Debug("validator added without filter", slog.String("validator", name))
		return nil
	}

	f.addFilter(name, resp)
	f.logger.Debug("validator added", slog.String("validator", name), slog.String("filter", FilterPrefix+name))
	return nil
}

func (f *Factory) addFilter(name string, resp Response) {
	filter := func(r *http.Request) http.Handler {
		ctx := r.Context()

		v, err := f.Make(f.source(r), ByName(name))
		if err != nil {
			f.logger.ErrorContext(ctx, "validator filter failed", slog.String("validator", name), slog.Any("error", err))
			return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				gohttp.NewResponse(w).ServerError()
			})
		}

		if v.Fails() {
			f.logger.InfoContext(ctx, "validation failed",
				slog.String("validator", name),
				slog.Any("fields", v.Errors().Keys()),
			)
			if h := resp.Respond(r); h != nil {
				return h
			}
			errs := v.Errors()
			return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				gohttp.NewResponse(w).ValidationError(errs)
			})
		}

		if err := f.inputs.Put(ctx, name, v.Input(false)); err != nil {
			f.logger.ErrorContext(ctx, "failed to store validated input", slog.String("validator", name), slog.Any("error", err))
		}
		return nil
	}

	f.mu.Lock()
	f.filters[name] = filter
	f.mu.Unlock()

	if f.registrar != nil {
		f.registrar.Filter(FilterPrefix+name, filter)
	}
}

// Filter returns the filter registered for name.
func (f *Factory) Filter(name string) (routing.Filter, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	filter, ok := f.filters[name]
	return filter, ok
}

// Input returns the input captured by the last successful filter run for
// name. It reports false when the filter has not passed yet.
func (f *Factory) Input(ctx context.Context, name string) (map[string]string, bool) {
	input, ok, err := f.inputs.Get(ctx, name)
	if err != nil {
		f.logger.ErrorContext(ctx, "failed to load validated input", slog.String("validator", name), slog.Any("error", err))
		return nil, false
	}
	return input, ok
}
