// Command authgate serves the refresh token and user details API.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"

	"github.com/dmitrymomot/authgate"
	"github.com/dmitrymomot/authgate/handlers"
	"github.com/dmitrymomot/authgate/middlewares"
	"github.com/dmitrymomot/authgate/pkg/cache"
	"github.com/dmitrymomot/authgate/pkg/db"
	"github.com/dmitrymomot/authgate/pkg/db/migrations"
	"github.com/dmitrymomot/authgate/pkg/dbctx"
	"github.com/dmitrymomot/authgate/pkg/health"
	"github.com/dmitrymomot/authgate/pkg/jwt"
	"github.com/dmitrymomot/authgate/pkg/logger"
	"github.com/dmitrymomot/authgate/pkg/redis"
	"github.com/dmitrymomot/authgate/pkg/sample"
	"github.com/dmitrymomot/authgate/pkg/security"
)

func main() {
	var err error
	if len(os.Args) > 1 && os.Args[1] == "issue" {
		err = runIssue(os.Args[2:], os.Stdout)
	} else {
		err = run()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "authgate: %v\n", err)
		os.Exit(1)
	}
}

func run() (err error) {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	tokens, err := newJWT(cfg)
	if err != nil {
		return err
	}

	log := logger.NewWithSentry(cfg.Log, cfg.Sentry,
		middlewares.RequestIDExtractor(),
		middlewares.UserIDExtractor(),
	)

	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		return err
	}
	// Resources opened before Run are released here only on startup failure;
	// afterwards the shutdown hooks own them.
	var cleanup []func()
	defer func() {
		if err != nil {
			for _, fn := range cleanup {
				fn()
			}
		}
	}()
	cleanup = append(cleanup, pool.Close)

	if err := db.Migrate(ctx, pool, migrations.FS, cfg.DB.MigrationsTable, log); err != nil {
		return err
	}

	registry := dbctx.NewRegistry[db.Querier]()
	if err := registry.RegisterInstance(dbctx.DefaultName, db.Querier(pool)); err != nil {
		return err
	}
	resolver := dbctx.NewResolver(registry)

	checks := health.Checks{"postgres": db.Healthcheck(pool)}
	shutdown := []authgate.RunOption{authgate.ShutdownHook(db.Shutdown(pool))}

	var users cache.Cache[security.User]
	if cfg.Redis.Enabled() {
		client, err := redis.Open(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		cleanup = append(cleanup, func() { _ = client.Close() })
		checks["redis"] = redis.Healthcheck(client)
		shutdown = append(shutdown, authgate.ShutdownHook(redis.Shutdown(client)))
		users = cache.NewRedis[security.User](client, "authgate", cfg.UserCacheTTL)
		log.Info("user cache backed by redis")
	} else {
		mem := cache.NewMemory[security.User](cache.WithDefaultTTL(cfg.UserCacheTTL))
		shutdown = append(shutdown, authgate.ShutdownHook(func(context.Context) error { return mem.Close() }))
		users = mem
		log.Info("user cache in memory")
	}

	cmd := security.NewCached(security.NewStore(resolver), users, cfg.UserCacheTTL)

	scheduler := cron.New()
	if _, err := security.Schedule(scheduler, cfg.PurgeSchedule, security.NewPurgeJob(cmd, log, cfg.PurgeTimeout)); err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := middlewares.NewMetrics(reg, cfg.MetricsNamespace)

	app := newApp(cfg, log, appDeps{
		security: cmd,
		pool:     pool,
		tokens:   tokens,
		samples:  sample.NewManager(sample.NewPostgres(resolver)),
		checks:   checks,
		metrics:  metrics,
		gatherer: reg,
	})

	log.Info("starting server",
		slog.String("addr", cfg.Addr),
		slog.String("routing", cfg.Routing.String()),
	)

	opts := []authgate.RunOption{
		authgate.Logger(log),
		authgate.ShutdownTimeout(cfg.ShutdownTimeout),
		authgate.StartupHook(func(context.Context) error {
			scheduler.Start()
			return nil
		}),
		authgate.ShutdownHook(func(ctx context.Context) error {
			select {
			case <-scheduler.Stop().Done():
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		}),
	}
	cleanup = nil
	return app.Run(cfg.Addr, append(opts, shutdown...)...)
}

type appDeps struct {
	security security.Command
	pool     *pgxpool.Pool
	tokens   *jwt.Service
	samples  *sample.Manager
	checks   health.Checks
	metrics  *middlewares.Metrics
	gatherer prometheus.Gatherer
}

func newApp(cfg Config, log *slog.Logger, d appDeps) *authgate.App {
	global := []authgate.Middleware{
		middlewares.RequestID(),
		d.metrics.Middleware(),
		middlewares.Recover(),
		middlewares.Timeout(cfg.RequestTimeout),
	}
	if len(cfg.CORSOrigins) > 0 {
		global = append(global, middlewares.CORS(middlewares.WithAllowOrigins(cfg.CORSOrigins...)))
	}

	return authgate.New(
		authgate.WithLogger(log),
		authgate.WithRouting(cfg.Routing),
		authgate.WithSecurityCommand(d.security),
		authgate.WithErrorHandler(authgate.APIErrorHandler(middlewares.GetRequestID, handlers.ErrorMappings()...)),
		authgate.WithMiddleware(global...),
		authgate.WithHealthChecks(d.checks),
		authgate.WithMount("/metrics", promhttp.HandlerFor(d.gatherer, promhttp.HandlerOpts{})),
		authgate.WithHandlers(
			handlers.NewRefreshTokens(handlers.WithDeleteInTx(d.pool)),
			handlers.NewUsers(d.tokens),
		),
		authgate.WithControllers(handlers.NewSampleController(d.samples)),
	)
}

func newJWT(cfg Config) (*jwt.Service, error) {
	var opts []jwt.Option
	if cfg.JWTIssuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.JWTIssuer))
	}
	return jwt.NewFromString(cfg.JWTSecret, opts...)
}
