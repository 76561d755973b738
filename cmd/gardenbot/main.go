package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"GardenBot/internal/app"
	"GardenBot/internal/config"
	"GardenBot/internal/logging"
)

// cfgFile holds the path to the YAML configuration.
var cfgFile string

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "gardenbot",
		Short:         "Posts one gardening article per run to a Telegram channel",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML config file (default $GARDENBOT_CONFIG)")

	root.AddCommand(runCommand(), discoverCommand(), storeCommand())
	return root
}

// setup loads configuration and builds the application.
func setup(ctx context.Context, validate bool) (*app.Application, *slog.Logger, error) {
	cfg := config.Load(cfgFile)
	if validate {
		if err := cfg.Validate(); err != nil {
			return nil, nil, err
		}
	}

	logger := logging.New(cfg.Logging.Level)
	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return application, logger, nil
}
