// cmd/seeder/main.go
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ammerola/stockflow-be/internal/pkg/config"
	"github.com/ammerola/stockflow-be/internal/pkg/logger"
)

var (
	cfg     *config.Config
	slogger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "seeder",
	Short: "Maintenance commands for the stockflow database",
	Long: `seeder manages the stockflow schema and fills a development
database with sample catalog, party and invoice data.

Configuration is read from the same environment as the API.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		slogger = logger.SetupLogger("info", "text")

		loaded, err := config.Load(slogger)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		cfg = loaded
		slogger = logger.SetupLogger(cfg.App.LogLevel, "text")
		return nil
	},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
