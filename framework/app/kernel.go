package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/km-arc/go-laravel-input/framework/config"
	"github.com/km-arc/go-laravel-input/framework/container"
	gohttp "github.com/km-arc/go-laravel-input/framework/http"
	"github.com/km-arc/go-laravel-input/framework/inputvalidator"
	"github.com/km-arc/go-laravel-input/framework/providers"
	"github.com/km-arc/go-laravel-input/framework/routing"
	"github.com/km-arc/go-laravel-input/framework/session"
)

const (
	shutdownTimeout = 10 * time.Second
	sweepInterval   = time.Minute
)

// Application is the top-level application container.
// It embeds the Container and ProviderRegistry so user code can call
// app.Singleton() and app.Register() directly, like $app in Laravel's
// bootstrap/app.php.
type Application struct {
	*container.Container
	Providers *container.ProviderRegistry
}

// New creates and boots the application. Configuration, logger, session
// store, router and validator factory are all built before it returns.
func New(envFiles ...string) (*Application, error) {
	c := container.New()
	registry := container.NewProviderRegistry(c)

	app := &Application{
		Container: c,
		Providers: registry,
	}

	// same order as Laravel: config first, everything else resolves it
	for _, p := range []container.ServiceProvider{
		&providers.ConfigServiceProvider{EnvFiles: envFiles},
		&providers.LogServiceProvider{},
		&providers.RedisServiceProvider{},
		&providers.SessionServiceProvider{},
		&providers.RoutingServiceProvider{},
		&providers.ValidatorServiceProvider{},
	} {
		if err := registry.Register(p); err != nil {
			return nil, err
		}
	}

	if err := registry.Boot(); err != nil {
		return nil, fmt.Errorf("app: boot: %w", err)
	}
	return app, nil
}

// Register adds a ServiceProvider to the application.
func (a *Application) Register(provider container.ServiceProvider) error {
	return a.Providers.Register(provider)
}

func (a *Application) Config() *config.Config {
	return container.MustResolve[*config.Config](a.Container, "config")
}

func (a *Application) Logger() *slog.Logger {
	return container.MustResolve[*slog.Logger](a.Container, "logger")
}

func (a *Application) Router() *routing.Router {
	return container.MustResolve[*routing.Router](a.Container, "router")
}

func (a *Application) Sessions() session.Store {
	return container.MustResolve[session.Store](a.Container, "session.store")
}

// Validators returns the validator factory; its filters are registered on Router().
func (a *Application) Validators() *inputvalidator.Factory {
	return container.MustResolve[*inputvalidator.Factory](a.Container, "validator")
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (a *Application) Run(ctx context.Context) error {
	cfg := a.Config()
	logger := a.Logger()

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           a.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	if mem, ok := a.Sessions().(*session.MemoryStore); ok {
		go sweep(ctx, mem, logger)
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server started",
			slog.String("addr", srv.Addr),
			slog.String("url", cfg.App.URL),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("app: serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("app: shutdown: %w", err)
	}
	return nil
}

// sweep drops expired in-memory sessions until ctx ends.
func sweep(ctx context.Context, store *session.MemoryStore, logger *slog.Logger) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := store.DeleteExpired(ctx); err != nil {
				logger.WarnContext(ctx, "session sweep failed", slog.Any("error", err))
			}
		}
	}
}

// Environment returns APP_ENV value.
func (a *Application) Environment() string { return a.Config().App.Env }
func (a *Application) IsLocal() bool       { return a.Environment() == "local" }
func (a *Application) IsProduction() bool  { return a.Config().IsProduction() }
func (a *Application) IsTesting() bool     { return a.Environment() == "testing" }
func (a *Application) IsDebug() bool       { return a.Config().App.Debug }

// Controller is an embeddable base for HTTP controllers.
type Controller struct{}

func (c *Controller) Request(r *http.Request) *gohttp.Request {
	return gohttp.NewRequest(r)
}

func (c *Controller) Response(w http.ResponseWriter) *gohttp.Response {
	return gohttp.NewResponse(w)
}
