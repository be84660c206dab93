// Package cli implements billingctl, the operator command line for the
// billing service.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sangkips/galleauto-billing/internal/bootstrap"
	"github.com/sangkips/galleauto-billing/internal/config"
	"github.com/sangkips/galleauto-billing/pkg/logger"
	"github.com/spf13/cobra"
)

var version = "1.0.0"

// NewRootCommand builds the billingctl command tree.
func NewRootCommand(cfg *config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:   "billingctl",
		Short: "Operator tools for the vehicle service billing system",
		Long: `billingctl runs maintenance tasks against the billing database and the
receipt printer: schema migration, daily report export, printer checks and
invoice number previews.

Configuration is read from .env and the environment, the same way the API
server reads it.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newMigrateCommand(cfg),
		newReportCommand(cfg),
		newPrinterCommand(cfg),
		newInvoiceCommand(cfg),
	)
	return root
}

// Execute runs billingctl and exits non-zero on failure.
func Execute() {
	cfg := config.Load()
	if err := logger.Setup(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: "stderr"}); err != nil {
		fmt.Fprintf(os.Stderr, "Error setting up logging: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCommand(cfg).ExecuteContext(ctx); err != nil {
		log := logger.WithComponent("cli")
		log.Error().Err(err).Msg("command failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// openApp connects to the database for commands that need it.
func openApp(cfg *config.Config) (*bootstrap.App, error) {
	return bootstrap.Open(cfg)
}
