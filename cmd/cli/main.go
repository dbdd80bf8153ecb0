package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/harukisb/raidloot/cmd/cli/commands"
	"github.com/harukisb/raidloot/internal/config"
	"github.com/harukisb/raidloot/pkg/postgres"
	"github.com/harukisb/raidloot/pkg/utils/logging"
)

var (
	configPath string
	app        *commands.AppContext
	database   *postgres.DB
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "raidloot",
		Short: "Raid loot allocation CLI",
		Long:  `A CLI tool for ranking loot candidates, recommending winners and recording allocations per raid layer.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.Logger != nil {
				app.Logger.Sync()
			}
			if database != nil {
				database.Close()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: raidloot_config.yaml in cwd or home)")

	rootCmd.AddCommand(commands.ProcessLayerCmd(appRef()))
	rootCmd.AddCommand(commands.ConfirmCmd(appRef()))
	rootCmd.AddCommand(commands.ListRosterCmd(appRef()))
	rootCmd.AddCommand(commands.ViewHistoryCmd(appRef()))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// appRef returns the shared AppContext, allocating it before initApp fills it
// in so command constructors can capture the pointer.
func appRef() *commands.AppContext {
	if app == nil {
		app = &commands.AppContext{}
	}
	return app
}

// initApp sets up config, logger and database for the invoked command
func initApp() error {
	ctx := context.Background()

	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFromPath(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.InitLogger(cfg.RaidTierID)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	database, err = postgres.NewDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.RunMigrations(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	appCtx := appRef()
	appCtx.Cfg = cfg
	appCtx.Logger = logger
	appCtx.Database = database
	appCtx.Ctx = ctx

	return nil
}
