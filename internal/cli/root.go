// Package cli holds the plannerctl operator commands.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/daileit/wedding-planner/internal/catalog"
	"github.com/daileit/wedding-planner/internal/database"
)

type Schema interface {
	Setup(ctx context.Context) error
	Status(ctx context.Context) ([]database.TableStatus, error)
}

type VendorSeeder interface {
	Seed(ctx context.Context, params []catalog.SeedParams) (int, error)
}

// App holds the dependencies the commands run against.
type App struct {
	Schema  Schema
	Vendors VendorSeeder
}

func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "plannerctl",
		Short:         "Operator tooling for the wedding planner backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newSetupCmd(app),
		newStatusCmd(app),
		newVendorsCmd(app),
	)

	return root
}
