package cli

import (
	"fmt"
	"time"

	"github.com/sangkips/galleauto-billing/internal/application/service"
	"github.com/sangkips/galleauto-billing/internal/config"
	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

func newReportCommand(cfg *config.Config) *cobra.Command {
	report := &cobra.Command{
		Use:   "report",
		Short: "Export invoice reports",
	}

	daily := &cobra.Command{
		Use:   "daily",
		Short: "Export the invoices of one day as PDF or Excel",
		Example: `  # Today's report as PDF into the configured directory
  billingctl report daily

  # Excel report for a given day into /srv/reports
  billingctl report daily --date 2024-03-14 --format xlsx --dir /srv/reports`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDailyReport(cmd, cfg)
		},
	}
	daily.Flags().String("date", "", "Report day as YYYY-MM-DD (default: today)")
	daily.Flags().String("dir", "", "Output directory (default: REPORT_OUTPUT_DIR)")
	daily.Flags().String("format", service.FormatPDF, "Output format: pdf or xlsx")

	report.AddCommand(daily)
	return report
}

func runDailyReport(cmd *cobra.Command, cfg *config.Config) error {
	dateStr, _ := cmd.Flags().GetString("date")
	dir, _ := cmd.Flags().GetString("dir")
	format, _ := cmd.Flags().GetString("format")

	date, err := reportDate(dateStr, time.Now())
	if err != nil {
		return err
	}

	app, err := openApp(cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	result, err := app.Reports.Export(cmd.Context(), date, dir, format)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d invoices, total %s)\n",
		result.Path, result.InvoiceCount, result.TotalIncome.StringFixed(2))
	return nil
}

// reportDate parses a YYYY-MM-DD flag in local time; empty means the day of now.
func reportDate(value string, now time.Time) (time.Time, error) {
	if value == "" {
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local), nil
	}
	d, err := time.ParseInLocation(dateLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q, use YYYY-MM-DD", value)
	}
	return d, nil
}
