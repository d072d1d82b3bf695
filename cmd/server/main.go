package main

import (
	"context"
	"net"

	"jobhive/internal/adapter/auth"
	httpadapter "jobhive/internal/adapter/http"
	"jobhive/internal/adapter/repository"
	"jobhive/internal/adapter/storage"
	"jobhive/internal/config"
	"jobhive/internal/infrastructure/migration"
	"jobhive/internal/usecase"
	"jobhive/pkg/authclient"
	infra "jobhive/pkg/infrastructure"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v4/pgxpool"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			newLogger,
			newPool,
			newStorage,
			newMemoryAuth,
			newAuthenticator,

			repository.NewJobsRepo,
			repository.NewUsersRepo,
			repository.NewPostingsRepo,
			repository.NewActivityRepo,
			newStatsRepo,
			func(r *repository.JobsRepo) usecase.JobCatalog { return r },
			func(r *repository.UsersRepo) usecase.UserDirectory { return r },
			func(r *repository.PostingsRepo) usecase.PostingRepo { return r },
			func(r *repository.ActivityRepo) usecase.ActivityRepo { return r },
			func(r *repository.StatsRepo) usecase.StatsRepo { return r },
			newRenderer,

			usecase.NewSessionStore,
			newJobListingService,
			usecase.NewResumeService,
			usecase.NewPostingService,
			usecase.NewActivityService,
			usecase.NewDashboardService,

			newHandler,
			httpadapter.NewApp,
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(migrate, serve),
	).Run()
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// newPool returns a nil pool when no database is configured or reachable;
// every repository then falls back to in-process state.
func newPool(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) *pgxpool.Pool {
	if cfg.DatabaseURL == "" {
		log.Info("DATABASE_URL not set, using in-memory repositories")
		return nil
	}
	pool, err := infra.NewPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Warn("database not available, using in-memory repositories", zap.Error(err))
		return nil
	}
	lc.Append(fx.Hook{OnStop: func(context.Context) error {
		pool.Close()
		return nil
	}})
	return pool
}

func newStorage(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) usecase.Storage {
	if cfg.RedisAddr == "" {
		log.Info("REDIS_ADDR not set, sessions are kept in memory")
		return storage.NewMemory()
	}
	rs := storage.NewRedis(storage.RedisOptions{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
		TTL:      cfg.SessionTTL,
	})
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := rs.Ping(ctx); err != nil {
				log.Warn("redis ping failed", zap.String("addr", cfg.RedisAddr), zap.Error(err))
			}
			return nil
		},
		OnStop: func(context.Context) error { return rs.Close() },
	})
	return rs
}

func newMemoryAuth(cfg *config.Config) (*auth.MemoryAuthenticator, error) {
	return auth.NewMemory(auth.WithLatency(cfg.AuthLatency))
}

func newAuthenticator(cfg *config.Config, mem *auth.MemoryAuthenticator, log *zap.Logger) usecase.Authenticator {
	if cfg.AuthServiceURL != "" {
		log.Info("using remote auth service", zap.String("url", cfg.AuthServiceURL))
		return authclient.New(cfg.AuthServiceURL, log)
	}
	return mem
}

func newStatsRepo(pool *pgxpool.Pool, mem *auth.MemoryAuthenticator, users *repository.UsersRepo,
	jobs *repository.JobsRepo, postings *repository.PostingsRepo, log *zap.Logger) *repository.StatsRepo {
	countUsers := users.Count
	if pool == nil {
		countUsers = func(context.Context) (int, error) { return mem.Count(), nil }
	}
	return repository.NewStatsRepo(countUsers, jobs.Count, postings, log)
}

func newRenderer(cfg *config.Config, log *zap.Logger) usecase.Renderer {
	r := infra.NewChromedpRenderer(cfg.PDFPagination, cfg.ChromePath, cfg.PDFTimeout, log)
	log.Info("pdf renderer ready", zap.String("pagination", r.Mode()), zap.Duration("timeout", cfg.PDFTimeout))
	return r
}

func newJobListingService(cfg *config.Config, catalog usecase.JobCatalog, activity usecase.ActivityRepo, log *zap.Logger) *usecase.JobListingService {
	return usecase.NewJobListingService(catalog, activity, cfg.LoadMoreDelay, log)
}

type handlerParams struct {
	fx.In

	Config    *config.Config
	Sessions  *usecase.SessionStore
	Users     usecase.UserDirectory
	Jobs      *usecase.JobListingService
	Resumes   *usecase.ResumeService
	Postings  *usecase.PostingService
	Activity  *usecase.ActivityService
	Dashboard *usecase.DashboardService
	Log       *zap.Logger
}

func newHandler(p handlerParams) *httpadapter.Handler {
	return httpadapter.NewHandler(httpadapter.Deps{
		Sessions:      p.Sessions,
		Users:         p.Users,
		Jobs:          p.Jobs,
		Resumes:       p.Resumes,
		Postings:      p.Postings,
		Activity:      p.Activity,
		Dashboard:     p.Dashboard,
		SecureCookies: p.Config.IsProduction(),
		Log:           p.Log,
	})
}

// migrate creates the schema and mirrors the seed data when a database is
// present.
func migrate(lc fx.Lifecycle, cfg *config.Config, pool *pgxpool.Pool, jobs *repository.JobsRepo, users *repository.UsersRepo, log *zap.Logger) {
	if pool == nil || !cfg.RunMigrations {
		return
	}
	lc.Append(fx.Hook{OnStart: func(ctx context.Context) error {
		if err := migration.RunMigrations(ctx, pool, log); err != nil {
			return err
		}
		if err := jobs.SeedCatalog(ctx); err != nil {
			return err
		}
		for _, u := range auth.SeedUsers() {
			if err := users.Upsert(ctx, u); err != nil {
				return err
			}
		}
		return nil
	}})
}

func serve(lc fx.Lifecycle, app *fiber.App, cfg *config.Config, log *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			ln, err := net.Listen("tcp", ":"+cfg.Port)
			if err != nil {
				return err
			}
			log.Info("server listening", zap.String("port", cfg.Port), zap.String("env", cfg.AppEnv))
			go func() {
				if err := app.Listener(ln); err != nil {
					log.Error("server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.ShutdownWithContext(ctx)
		},
	})
}
