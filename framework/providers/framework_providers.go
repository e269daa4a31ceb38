package providers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/km-arc/go-laravel-input/framework/config"
	"github.com/km-arc/go-laravel-input/framework/container"
	"github.com/km-arc/go-laravel-input/framework/inputvalidator"
	"github.com/km-arc/go-laravel-input/framework/logging"
	"github.com/km-arc/go-laravel-input/framework/routing"
	"github.com/km-arc/go-laravel-input/framework/session"
)

// Drivers accepted by SESSION_DRIVER and VALIDATOR_INPUT_STORE.
const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
)

const redisConnectTimeout = 5 * time.Second

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider loads the application configuration from .env and
// binds it as "config".
//
// Laravel equivalent:
//
//	// Illuminate\Foundation\Bootstrap\LoadConfiguration
//	$app->singleton('config', fn() => new Repository($items));
type ConfigServiceProvider struct {
	container.BaseProvider
	EnvFiles []string
}

func (p *ConfigServiceProvider) Register(app *container.Container) {
	envFiles := p.EnvFiles
	app.Singleton("config", func(c *container.Container) (any, error) {
		return config.Load(envFiles...)
	})
	app.Alias("config", "configuration")
}

// Boot loads the configuration so a bad environment fails at startup.
func (p *ConfigServiceProvider) Boot(app *container.Container) error {
	_, err := container.Resolve[*config.Config](app, "config")
	return err
}

// ── LogServiceProvider ────────────────────────────────────────────────────────

// LogServiceProvider binds "logger" (*slog.Logger) from LOG_LEVEL and LOG_FORMAT.
type LogServiceProvider struct {
	container.BaseProvider
}

func (p *LogServiceProvider) Register(app *container.Container) {
	app.Singleton("logger", func(c *container.Container) (any, error) {
		cfg, err := container.Resolve[*config.Config](c, "config")
		if err != nil {
			return nil, err
		}
		return logging.New(
			logging.WithLevel(logging.ParseLevel(cfg.Log.Level)),
			logging.WithFormat(cfg.Log.Format),
			logging.WithSource(cfg.App.Debug),
			logging.WithAttr(slog.String("app", cfg.App.Name), slog.String("env", cfg.App.Env)),
		), nil
	})
	app.Alias("logger", "log")
}

// ── RedisServiceProvider ──────────────────────────────────────────────────────

// RedisServiceProvider binds "redis" (*redis.Client) from REDIS_URL. The
// client is only created, and pinged, when a driver asks for it.
type RedisServiceProvider struct {
	container.BaseProvider
}

func (p *RedisServiceProvider) Register(app *container.Container) {
	app.Singleton("redis", func(c *container.Container) (any, error) {
		cfg, err := container.Resolve[*config.Config](c, "config")
		if err != nil {
			return nil, err
		}
		return Connect(context.Background(), cfg.Redis.URL)
	})
}

// Connect parses a redis:// URL and checks the server answers.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis: parse url: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, redisConnectTimeout)
	defer cancel()

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}
	return client, nil
}

// ── SessionServiceProvider ────────────────────────────────────────────────────

// SessionServiceProvider binds "session.store" (session.Store) for
// SESSION_DRIVER.
//
// Laravel equivalent:
//
//	// Illuminate\Session\SessionServiceProvider
//	$app->singleton('session.store', fn($app) => $app['session']->driver());
type SessionServiceProvider struct {
	container.BaseProvider
}

func (p *SessionServiceProvider) Register(app *container.Container) {
	app.Singleton("session.store", func(c *container.Container) (any, error) {
		cfg, err := container.Resolve[*config.Config](c, "config")
		if err != nil {
			return nil, err
		}

		var store session.Store
		switch cfg.Session.Driver {
		case DriverMemory:
			store = session.NewMemoryStore()
		case DriverRedis:
			client, err := container.Resolve[*redis.Client](c, "redis")
			if err != nil {
				return nil, err
			}
			store = session.NewRedisStore(client, "", cfg.Session.Lifetime)
		default:
			return nil, fmt.Errorf("session: unsupported driver %q", cfg.Session.Driver)
		}
		return store, nil
	})
}

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider binds "router" with the session middleware installed.
//
// Laravel equivalent:
//
//	// Illuminate\Routing\RoutingServiceProvider
//	$app->singleton('router', fn($app) => new Router($app['events'], $app));
type RoutingServiceProvider struct {
	container.BaseProvider
}

func (p *RoutingServiceProvider) Register(app *container.Container) {
	app.Singleton("router", func(c *container.Container) (any, error) {
		cfg, err := container.Resolve[*config.Config](c, "config")
		if err != nil {
			return nil, err
		}
		logger, err := container.Resolve[*slog.Logger](c, "logger")
		if err != nil {
			return nil, err
		}
		store, err := container.Resolve[session.Store](c, "session.store")
		if err != nil {
			return nil, err
		}

		router := routing.New(routing.WithLogger(logger))
		router.Middleware(session.Middleware(store, session.Options{
			CookieName: cfg.Session.Cookie,
			Lifetime:   cfg.Session.Lifetime,
			Secure:     cfg.IsProduction(),
			Logger:     logger,
		}))
		return router, nil
	})
}

// ── ValidatorServiceProvider ──────────────────────────────────────────────────

// ValidatorServiceProvider binds "validator" (*inputvalidator.Factory). Its
// filters are registered on the router; validated input is kept in memory or
// in Redis per VALIDATOR_INPUT_STORE.
type ValidatorServiceProvider struct {
	container.BaseProvider
}

func (p *ValidatorServiceProvider) Register(app *container.Container) {
	app.Singleton("validator", func(c *container.Container) (any, error) {
		cfg, err := container.Resolve[*config.Config](c, "config")
		if err != nil {
			return nil, err
		}
		logger, err := container.Resolve[*slog.Logger](c, "logger")
		if err != nil {
			return nil, err
		}
		router, err := container.Resolve[*routing.Router](c, "router")
		if err != nil {
			return nil, err
		}

		var inputs inputvalidator.InputStore
		switch cfg.Validator.InputStore {
		case DriverMemory:
			inputs = inputvalidator.NewMemoryInputStore()
		case DriverRedis:
			client, err := container.Resolve[*redis.Client](c, "redis")
			if err != nil {
				return nil, err
			}
			inputs = inputvalidator.NewRedisInputStore(client, "", cfg.Validator.InputTTL)
		default:
			return nil, fmt.Errorf("validator: unsupported input store %q", cfg.Validator.InputStore)
		}

		return inputvalidator.NewFactory(router,
			inputvalidator.WithLogger(logger),
			inputvalidator.WithInputStore(inputs),
		), nil
	})
}

// Boot builds the factory, and through it the router and session store,
// so driver errors surface at startup.
func (p *ValidatorServiceProvider) Boot(app *container.Container) error {
	_, err := container.Resolve[*inputvalidator.Factory](app, "validator")
	return err
}
