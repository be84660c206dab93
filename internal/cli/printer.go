package cli

import (
	"fmt"

	"github.com/sangkips/galleauto-billing/internal/bootstrap"
	"github.com/sangkips/galleauto-billing/internal/config"
	"github.com/spf13/cobra"
)

func newPrinterCommand(cfg *config.Config) *cobra.Command {
	printerCmd := &cobra.Command{
		Use:   "printer",
		Short: "Inspect and test the receipt printer",
	}

	printerCmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List installed print queues and the printer status",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				svc := bootstrap.NewPrinterService(cfg, nil)

				names, err := svc.AvailablePrinters(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				for _, name := range names {
					fmt.Fprintln(out, name)
				}
				if len(names) == 0 {
					fmt.Fprintln(out, "No print queues found")
				}

				status := svc.GetStatus(cmd.Context())
				fmt.Fprintf(out, "type=%s configured=%t connected=%t queue=%s\n",
					status.Type, status.Configured, status.Connected, status.Queue)
				return nil
			},
		},
		&cobra.Command{
			Use:   "test",
			Short: "Print a test page",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := bootstrap.NewPrinterService(cfg, nil).TestPrint(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Test page sent to printer")
				return nil
			},
		},
	)
	return printerCmd
}
