package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"

	"github.com/daileit/wedding-planner/internal/catalog"
	catalogStore "github.com/daileit/wedding-planner/internal/catalog/store"
	"github.com/daileit/wedding-planner/internal/cli"
	"github.com/daileit/wedding-planner/internal/config"
	"github.com/daileit/wedding-planner/internal/database"
	"github.com/daileit/wedding-planner/internal/logging"
)

type schema struct {
	db *sqlx.DB
}

func (s schema) Setup(ctx context.Context) error {
	return database.Setup(ctx, s.db)
}

func (s schema) Status(ctx context.Context) ([]database.TableStatus, error) {
	return database.Status(ctx, s.db)
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	db, err := database.New(cfg.ConnectionString(), database.DefaultPool)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := &cli.App{
		Schema:  schema{db: db},
		Vendors: catalog.NewService(catalogStore.New(db)),
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
