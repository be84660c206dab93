package cli

import (
	"fmt"

	"github.com/sangkips/galleauto-billing/internal/config"
	"github.com/spf13/cobra"
)

func newInvoiceCommand(cfg *config.Config) *cobra.Command {
	invoiceCmd := &cobra.Command{
		Use:   "invoice",
		Short: "Invoice numbering tools",
	}

	invoiceCmd.AddCommand(&cobra.Command{
		Use:   "next-number",
		Short: "Show the number the next invoice will get",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			next, err := app.Invoices.NextInvoiceNumber(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), next)
			return nil
		},
	})
	return invoiceCmd
}
