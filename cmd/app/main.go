package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/jera/internal"
	"github.com/starford/jera/internal/habitservice"
	"github.com/starford/jera/internal/habitstore"
	"github.com/starford/jera/internal/mcpserver"
	"github.com/starford/jera/internal/storage"
	pkgconfig "github.com/starford/jera/pkg/config"
)

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.Load(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func run(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	opts := []internal.Option{
		internal.WithConfig(cfg),
	}

	if err := internal.Run(ctx, opts...); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}

	return nil
}

// runMCP serves the tracker tools over stdio for the host's assistant.
// No HTTP server, no SSE broker; the process lives as long as the pipe.
func runMCP(_ context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var provider storage.Provider
	switch cfg.Storage.Backend {
	case internal.StorageBackendSQLite:
		provider, err = storage.OpenSQLite(cfg.Storage.Path)
	default:
		provider, err = storage.NewFile(cfg.Storage.Path)
	}
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}
	defer provider.Close()

	store, err := habitstore.Open(provider)
	if err != nil {
		return fmt.Errorf("init store: %w", err)
	}

	svc := habitservice.NewService(store, nil)
	return mcpserver.New(svc).ServeStdio()
}

// configFlag returns a fresh flag instance per command; cli flags carry
// parse state and must not be shared.
func configFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "config",
		Aliases:     []string{"c"},
		Usage:       "Path to config file",
		DefaultText: "config/config.yaml",
		Value:       "config/config.yaml",
		Sources:     cli.EnvVars("APP_CONFIG_FILE"),
	}
}

func main() {
	cmd := &cli.Command{
		Name:   "jera",
		Usage:  "Habit tracker companion for a note-taking host: month grid, per-day completions, monthly totals",
		Action: run,
		Flags:  []cli.Flag{configFlag()},
		Commands: []*cli.Command{
			{
				Name:   "mcp",
				Usage:  "Serve tracker tools over MCP stdio transport",
				Action: runMCP,
				Flags:  []cli.Flag{configFlag()},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
