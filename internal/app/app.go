package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/sync/errgroup"

	"github.com/adityakarchi/recipe-management/internal/adapter/postgres"
	"github.com/adityakarchi/recipe-management/internal/adapter/postgres/ingredient"
	reciperepo "github.com/adityakarchi/recipe-management/internal/adapter/postgres/recipe"
	"github.com/adityakarchi/recipe-management/internal/adapter/postgres/recipeingredient"
	"github.com/adityakarchi/recipe-management/internal/adapter/postgres/step"
	"github.com/adityakarchi/recipe-management/internal/config"
	"github.com/adityakarchi/recipe-management/internal/service/recipe"
	"github.com/adityakarchi/recipe-management/internal/transport/rest"
	"github.com/adityakarchi/recipe-management/migrations"
)

// Run is the application entry point. It loads configuration, connects to
// the database, applies migrations when enabled and serves HTTP until ctx is
// cancelled, then drains in-flight requests and closes the pool.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	logger.Info("database connected",
		slog.Int("max_conns", int(cfg.Database.MaxConns)),
	)

	if cfg.Database.AutoMigrate {
		if err := migrate(ctx, pool, logger); err != nil {
			return err
		}
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      NewHandler(cfg, logger, pool),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("stopped")
	return nil
}

// NewHandler wires repositories, the recipe service and the HTTP router on
// top of pool.
func NewHandler(cfg *config.Config, logger *slog.Logger, pool *pgxpool.Pool) http.Handler {
	svc := recipe.NewService(
		logger,
		reciperepo.New(pool),
		ingredient.New(pool),
		recipeingredient.New(pool),
		step.New(pool),
		postgres.NewTxManager(pool),
		cfg.Recipe,
	)

	return rest.NewRouter(
		logger,
		cfg,
		rest.NewRecipeHandler(svc, logger, cfg.Server.MaxBodyBytes),
		rest.NewHealthHandler(pool, Version),
	)
}

func migrate(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	applied, err := migrations.Up(ctx, db)
	if err != nil {
		return err
	}
	logger.Info("migrations applied", slog.Int("count", applied))
	return nil
}
