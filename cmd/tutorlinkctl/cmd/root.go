// Package cmd implements the tutorlinkctl operator commands.
package cmd

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tutorlink/tutorlink-api/internal/app"
	"github.com/tutorlink/tutorlink-api/internal/pkg/config"
	"github.com/tutorlink/tutorlink-api/pkg/logger"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "tutorlinkctl",
	Short: "Operator tool for the TutorLink API",
	Long: `tutorlinkctl runs maintenance tasks directly against the configured
store. It reads the same environment variables as the API server.

Examples:
  tutorlinkctl create-admin --email root@example.com --username root --password s3cret
  tutorlinkctl skills
  tutorlinkctl search --skill go --sort price_asc`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log storage and service activity to stderr")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// runtime is the service graph a command operates on.
type runtime struct {
	services *app.Services
	stores   *app.Stores
}

func (r *runtime) close() {
	_ = r.stores.Close(context.Background())
}

func openRuntime(ctx context.Context) (*runtime, error) {
	cfg, err := config.LoadWith(ctx, envLookuper())
	if err != nil {
		return nil, err
	}

	log := zerolog.Nop()
	if verbose {
		log = logger.New(logger.Options{Level: cfg.LogLevel, Pretty: true, Output: os.Stderr, Service: "tutorlinkctl"})
	}

	stores, err := app.OpenStores(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	return &runtime{services: app.NewServices(cfg, stores, log), stores: stores}, nil
}
