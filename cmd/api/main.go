package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/daileit/wedding-planner/internal/auth"
	"github.com/daileit/wedding-planner/internal/catalog"
	catalogStore "github.com/daileit/wedding-planner/internal/catalog/store"
	"github.com/daileit/wedding-planner/internal/category"
	categoryStore "github.com/daileit/wedding-planner/internal/category/store"
	"github.com/daileit/wedding-planner/internal/config"
	"github.com/daileit/wedding-planner/internal/database"
	"github.com/daileit/wedding-planner/internal/export"
	plannerHttp "github.com/daileit/wedding-planner/internal/http"
	accountHandler "github.com/daileit/wedding-planner/internal/http/account"
	catalogHandler "github.com/daileit/wedding-planner/internal/http/catalog"
	categoryHandler "github.com/daileit/wedding-planner/internal/http/category"
	itemHandler "github.com/daileit/wedding-planner/internal/http/item"
	planHandler "github.com/daileit/wedding-planner/internal/http/plan"
	"github.com/daileit/wedding-planner/internal/importer"
	"github.com/daileit/wedding-planner/internal/item"
	itemStore "github.com/daileit/wedding-planner/internal/item/store"
	"github.com/daileit/wedding-planner/internal/logging"
	"github.com/daileit/wedding-planner/internal/metrics"
	"github.com/daileit/wedding-planner/internal/ownership"
	ownershipStore "github.com/daileit/wedding-planner/internal/ownership/store"
	"github.com/daileit/wedding-planner/internal/plan"
	planStore "github.com/daileit/wedding-planner/internal/plan/store"
	"github.com/daileit/wedding-planner/internal/user"
	userStore "github.com/daileit/wedding-planner/internal/user/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	db, err := database.New(cfg.ConnectionString(), database.PoolConfig{
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	})
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := database.Setup(ctx, db); err != nil {
		slog.Error("failed to set up database", "error", err)
		os.Exit(1)
	}

	reg := metrics.NewRegistry()
	guard := ownership.NewGuard(ownershipStore.New(db), reg)

	var (
		tokens = auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
		hasher = auth.NewPasswordHasher(cfg.Auth.BcryptCost)
	)

	var (
		userService     = user.NewService(userStore.New(db), hasher)
		planService     = plan.NewService(planStore.New(db), guard)
		categoryService = category.NewService(categoryStore.New(db), guard)
		itemService     = item.NewService(itemStore.New(db), guard)
		vendorService   = catalog.NewService(catalogStore.New(db))
		importService   = importer.NewService()
		exportService   = export.NewService(planService)
	)

	var (
		accountH  = accountHandler.NewHandler(userService, tokens)
		planH     = planHandler.NewHandler(planService, categoryService, exportService)
		categoryH = categoryHandler.NewHandler(categoryService, itemService, importService)
		itemH     = itemHandler.NewHandler(itemService)
		vendorH   = catalogHandler.NewHandler(vendorService)
	)

	router := plannerHttp.New(plannerHttp.Options{
		Timeout:        cfg.Server.Timeout,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Tokens:         tokens,
		DB:             db,
		Registry:       reg,
	}, accountH, planH, categoryH, itemH, vendorH)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.Server.Timeout + 5*time.Second,
		IdleTimeout:       time.Minute,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", server.Addr, "env", cfg.App.Env)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("graceful shutdown failed", "error", err)
			os.Exit(1)
		}
	case err := <-serverErr:
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
