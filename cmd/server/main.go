// Package main implements the shop API server: a product catalog kept in
// the document store, orders, tasks and todos kept in the relational store,
// and the migrate subcommand for the relational schema.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/phrazzld/shop-api/internal/config"
	"github.com/phrazzld/shop-api/internal/platform/logger"
	"github.com/phrazzld/shop-api/internal/platform/postgres"
	"github.com/phrazzld/shop-api/internal/redact"
	"github.com/spf13/cobra"
)

const version = "1.0.0"

var migrateCommands = []string{
	postgres.MigrateUp,
	postgres.MigrateDown,
	postgres.MigrateStatus,
	postgres.MigrateVersion,
	postgres.MigrateReset,
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Running the binary without a
// subcommand serves the API.
func newRootCmd() *cobra.Command {
	var configFile string

	rootCmd := &cobra.Command{
		Use:   "server",
		Short: "Shop API server - products, orders, tasks and todos",
		Long: `Serves the shop REST API. Products live in MongoDB; orders, tasks and
todos live in PostgreSQL. Configuration comes from an optional YAML file and
SHOP_-prefixed environment variables (e.g. SHOP_DATABASE_URL, SHOP_MONGO_URI).`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), configFile)
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to a config file (default: ./config.yaml if present)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), configFile)
		},
	}

	migrateCmd := &cobra.Command{
		Use:       "migrate [" + strings.Join(migrateCommands, "|") + "]",
		Short:     "Run relational schema migrations",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: migrateCommands,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd.Context(), configFile, args[0])
		},
	}

	rootCmd.AddCommand(serveCmd, migrateCmd)
	return rootCmd
}

// loadConfig loads configuration and sets up the process-wide logger.
func loadConfig(configFile string) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}
	l.Info("configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("database_url", redact.String(cfg.Database.URL)),
		slog.String("mongo_database", cfg.Mongo.Database))
	return cfg, l, nil
}

// runServe initializes both stores and serves until SIGINT or SIGTERM.
// Any store initialization failure aborts before the listener opens.
func runServe(ctx context.Context, configFile string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, l, err := loadConfig(configFile)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := newApplication(ctx, cfg, l)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return app.Run(ctx)
}

// runMigrate applies a single goose command to the relational store.
func runMigrate(ctx context.Context, configFile, command string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, l, err := loadConfig(configFile)
	if err != nil {
		return err
	}
	adapter := postgres.NewAdapter(cfg.Database, l)
	if err := adapter.Migrate(ctx, command); err != nil {
		return fmt.Errorf("migrate %s failed: %w", command, err)
	}
	return nil
}
