// Package container holds the application's shared services and the
// service providers that build them.
//
// # Lifecycle
//
//  1. Create: c := container.New()
//  2. Register providers: registry.Register(&MyProvider{})
//  3. Boot: registry.Boot()        — safe to resolve everything after this
//  4. Serve requests
//
// # Bindings
//
// Every binding is a lazily built singleton:
//
//	// Laravel: $app->singleton('log', fn($app) => ...)
//	c.Singleton("logger", func(c *container.Container) (any, error) {
//	    cfg, err := container.Resolve[*config.Config](c, "config")
//	    if err != nil {
//	        return nil, err
//	    }
//	    return logging.New(logging.WithFormat(cfg.Log.Format)), nil
//	})
//
//	// Pre-built value
//	c.Instance("config", cfg)
//
// # Resolving
//
//	logger, err := container.Resolve[*slog.Logger](c, "logger")
//
// Factory errors are returned from Make and Resolve wrapped with the
// abstract's name. Unknown abstracts fail with ErrNotBound.
package container
