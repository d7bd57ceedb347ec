package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/msomdec/quill-blog/internal/config"
	"github.com/msomdec/quill-blog/internal/handler"
	"github.com/msomdec/quill-blog/internal/repository/sqlite"
	"github.com/spf13/cobra"
)

var configPath string

// rootCmd runs the server when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:           "quill",
	Short:         "Quill: a small personal blog",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ./quill.yaml if present)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

// loadConfig reads the configuration and installs the default logger.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	slog.SetDefault(newLogger(cfg, level))
	return cfg, nil
}

func newLogger(cfg *config.Config, level slog.Level) *slog.Logger {
	logOpts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	if cfg.IsProduction() {
		h = slog.NewJSONHandler(os.Stdout, logOpts)
	} else {
		h = slog.NewMultiHandler(
			slog.NewTextHandler(os.Stdout, logOpts),
			slog.NewJSONHandler(os.Stderr, logOpts),
		)
	}
	return slog.New(handler.NewContextLogHandler(h))
}

// openDB opens the database and applies any pending migrations.
func openDB(ctx context.Context, cfg *config.Config) (*sqlite.DB, error) {
	db, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	slog.Info("database migrations applied", "path", cfg.DatabasePath)
	return db, nil
}
