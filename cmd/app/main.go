package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/mauvelian/internal"
	"github.com/starford/mauvelian/internal/almanac"
	"github.com/starford/mauvelian/internal/dateservice"
	pkgconfig "github.com/starford/mauvelian/pkg/config"
)

// loadConfig reads the config file named by the --config flag.
func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.Load(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// loadConfigSoft is loadConfig, except a missing default config file
// falls back to the built-in defaults so one-shot commands stay usable
// without one. An explicitly named file must still exist.
func loadConfigSoft(cmd *cli.Command) (*internal.Config, error) {
	if cmd.IsSet("config") {
		return loadConfig(cmd)
	}
	cfg := internal.NewDefaultConfig()
	if _, err := pkgconfig.LoadIfPresent(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// withService opens the configured almanac, applies the reference pair
// when one is set, and hands the ready service to fn. The database is
// closed when fn returns.
func withService(ctx context.Context, cmd *cli.Command, fn func(*dateservice.Service) error) error {
	cfg, err := loadConfigSoft(cmd)
	if err != nil {
		return err
	}

	db, err := almanac.Open(cfg.Almanac.Path)
	if err != nil {
		return fmt.Errorf("open almanac: %w", err)
	}
	defer db.Close()

	svc := dateservice.NewService(db, nil)

	ref, err := cfg.Reference.Pair()
	if err != nil {
		return fmt.Errorf("reference config: %w", err)
	}
	if !ref.IsZero() {
		if err := svc.SetReference(ctx, ref); err != nil {
			return fmt.Errorf("set reference: %w", err)
		}
	}

	return fn(svc)
}

func main() {
	cmd := &cli.Command{
		Name:  "mauvelian",
		Usage: "Mauvelian calendar service: date conversion, almanac events, REST API and MCP tools",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			mcpCommand(),
			convertCommand(),
			todayCommand(),
			betweenCommand(),
			seasonsCommand(),
			almanacCommand(),
			interactiveCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
