package container_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-laravel-input/framework/container"
)

// ── stub providers ────────────────────────────────────────────────────────────

type eagerProvider struct {
	container.BaseProvider
	registerCalls int
	bootCalled    bool
}

func (p *eagerProvider) Register(app *container.Container) {
	p.registerCalls++
	app.Singleton("eager-svc", func(c *container.Container) (any, error) { return "eager", nil })
}

func (p *eagerProvider) Boot(app *container.Container) error {
	p.bootCalled = true
	return nil
}

type failingProvider struct {
	container.BaseProvider
}

func (p *failingProvider) Register(app *container.Container) {}

func (p *failingProvider) Boot(app *container.Container) error {
	return errors.New("redis unreachable")
}

// ── Container ─────────────────────────────────────────────────────────────────

func TestContainer_SingletonBuiltOnce(t *testing.T) {
	c := container.New()
	builds := 0
	c.Singleton("counter", func(c *container.Container) (any, error) {
		builds++
		return &builds, nil
	})

	assert.False(t, c.Resolved("counter"))
	first, err := c.Make("counter")
	require.NoError(t, err)
	second, err := c.Make("counter")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, builds)
	assert.True(t, c.Resolved("counter"))
}

func TestContainer_FactoryResolvesDependencies(t *testing.T) {
	c := container.New()
	c.Instance("name", "demo")
	c.Singleton("greeting", func(c *container.Container) (any, error) {
		name, err := container.Resolve[string](c, "name")
		if err != nil {
			return nil, err
		}
		return "hello " + name, nil
	})

	got, err := container.Resolve[string](c, "greeting")
	require.NoError(t, err)
	assert.Equal(t, "hello demo", got)
}

func TestContainer_Errors(t *testing.T) {
	c := container.New()
	c.Instance("port", 8000)
	c.Singleton("broken", func(c *container.Container) (any, error) {
		return nil, errors.New("boom")
	})

	_, err := c.Make("missing")
	assert.ErrorIs(t, err, container.ErrNotBound)

	_, err = container.Resolve[string](c, "port")
	assert.ErrorIs(t, err, container.ErrTypeMismatch)

	_, err = c.Make("broken")
	assert.ErrorContains(t, err, "boom")
	assert.False(t, c.Resolved("broken"))

	assert.Panics(t, func() { container.MustResolve[string](c, "missing") })
}

func TestContainer_Alias(t *testing.T) {
	c := container.New()
	c.Instance("config", "cfg")
	c.Alias("config", "configuration")

	got, err := container.Resolve[string](c, "configuration")
	require.NoError(t, err)
	assert.Equal(t, "cfg", got)

	assert.Panics(t, func() { c.Alias("config", "config") })
}

func TestContainer_Bindings(t *testing.T) {
	c := container.New()
	c.Singleton("b", func(c *container.Container) (any, error) { return 1, nil })
	c.Instance("a", 2)

	assert.Equal(t, []string{"a", "b", "container"}, c.Bindings())
	assert.True(t, c.Bound("a"))
	assert.False(t, c.Bound("z"))
}

// ── ProviderRegistry ──────────────────────────────────────────────────────────

func TestRegistry_RegisterThenBoot(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)

	p := &eagerProvider{}
	require.NoError(t, reg.Register(p))
	assert.Equal(t, 1, p.registerCalls)
	assert.False(t, p.bootCalled)
	assert.False(t, reg.Booted())

	require.NoError(t, reg.Boot())
	assert.True(t, p.bootCalled)
	assert.True(t, reg.Booted())

	got, err := container.Resolve[string](c, "eager-svc")
	require.NoError(t, err)
	assert.Equal(t, "eager", got)
}

func TestRegistry_DuplicateRegisterIgnored(t *testing.T) {
	reg := container.NewProviderRegistry(container.New())

	p := &eagerProvider{}
	require.NoError(t, reg.Register(p))
	require.NoError(t, reg.Register(p))

	assert.Equal(t, 1, p.registerCalls)
	assert.Len(t, reg.Providers(), 1)
}

func TestRegistry_RegisterAfterBootBootsImmediately(t *testing.T) {
	reg := container.NewProviderRegistry(container.New())
	require.NoError(t, reg.Boot())

	p := &eagerProvider{}
	require.NoError(t, reg.Register(p))
	assert.True(t, p.bootCalled)
}

func TestRegistry_BootError(t *testing.T) {
	reg := container.NewProviderRegistry(container.New())
	late := &eagerProvider{}
	require.NoError(t, reg.Register(&failingProvider{}))
	require.NoError(t, reg.Register(late))

	err := reg.Boot()
	assert.ErrorContains(t, err, "redis unreachable")
	assert.False(t, late.bootCalled)
}

func TestBaseProvider_Defaults(t *testing.T) {
	var p container.BaseProvider
	assert.NoError(t, p.Boot(container.New()))
}
