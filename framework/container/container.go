package container

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	// ErrNotBound is returned by Make for an abstract nobody registered.
	ErrNotBound = errors.New("container: no binding registered")
	// ErrTypeMismatch is returned by Resolve when the instance has another type.
	ErrTypeMismatch = errors.New("container: resolved instance has unexpected type")
)

// Factory builds the value bound to an abstract. It may resolve other
// bindings from c.
type Factory func(c *Container) (any, error)

// Container holds the application's shared services. Every binding is a
// singleton: the factory runs on first Make and the result is reused.
type Container struct {
	mu        sync.RWMutex
	bindings  map[string]Factory
	instances map[string]any
	aliases   map[string]string
}

// New creates an empty container.
func New() *Container {
	c := &Container{
		bindings:  make(map[string]Factory),
		instances: make(map[string]any),
		aliases:   make(map[string]string),
	}
	c.Instance("container", c)
	return c
}

// ── Registration ──────────────────────────────────────────────────────────────

// Singleton registers a lazily built shared service.
//
//	// Laravel: $app->singleton('cache', fn($app) => new RedisCache($app))
//	c.Singleton("cache", func(c *container.Container) (any, error) {
//	    return cache.New(), nil
//	})
func (c *Container) Singleton(abstract string, factory Factory) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := c.canonical(abstract)
	delete(c.instances, key)
	c.bindings[key] = factory
}

// Instance registers a pre-built value.
//
//	// Laravel: $app->instance('config', $config)
func (c *Container) Instance(abstract string, instance any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := c.canonical(abstract)
	delete(c.bindings, key)
	c.instances[key] = instance
}

// Alias registers an alternative name for an abstract.
func (c *Container) Alias(abstract, alias string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if abstract == alias {
		panic(fmt.Sprintf("container: [%s] is aliased to itself", abstract))
	}
	c.aliases[alias] = c.canonical(abstract)
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Make resolves an abstract, building it on first use.
//
//	// Laravel: $app->make('router')
func (c *Container) Make(abstract string) (any, error) {
	c.mu.RLock()
	key := c.canonical(abstract)
	if inst, ok := c.instances[key]; ok {
		c.mu.RUnlock()
		return inst, nil
	}
	factory, ok := c.bindings[key]
	c.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: [%s]", ErrNotBound, abstract)
	}

	// built without the lock so factories can resolve their dependencies
	instance, err := factory(c)
	if err != nil {
		return nil, fmt.Errorf("container: build [%s]: %w", abstract, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.instances[key]; ok {
		return existing, nil
	}
	c.instances[key] = instance
	return instance, nil
}

// Bound reports whether an abstract has been registered.
func (c *Container) Bound(abstract string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	key := c.canonical(abstract)
	_, hasBinding := c.bindings[key]
	_, hasInstance := c.instances[key]
	return hasBinding || hasInstance
}

// Resolved reports whether the abstract has been built or given as an instance.
func (c *Container) Resolved(abstract string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.instances[c.canonical(abstract)]
	return ok
}

// Bindings returns every registered abstract, sorted.
func (c *Container) Bindings() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.bindings)+len(c.instances))
	for k := range c.bindings {
		out = append(out, k)
	}
	for k := range c.instances {
		if _, already := c.bindings[k]; !already {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// canonical resolves an alias to its canonical key. Callers hold mu.
func (c *Container) canonical(abstract string) string {
	if target, ok := c.aliases[abstract]; ok {
		return target
	}
	return abstract
}

// ── Generics helper ───────────────────────────────────────────────────────────

// Resolve calls Make and type-asserts the result.
//
//	router, err := container.Resolve[*routing.Router](c, "router")
func Resolve[T any](c *Container, abstract string) (T, error) {
	var zero T
	instance, err := c.Make(abstract)
	if err != nil {
		return zero, err
	}
	typed, ok := instance.(T)
	if !ok {
		return zero, fmt.Errorf("%w: [%s] is %T, want %T", ErrTypeMismatch, abstract, instance, zero)
	}
	return typed, nil
}

// MustResolve is Resolve that panics. Use it only after the application booted.
func MustResolve[T any](c *Container, abstract string) T {
	typed, err := Resolve[T](c, abstract)
	if err != nil {
		panic(err)
	}
	return typed
}
