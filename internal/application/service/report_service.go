package service

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/sangkips/galleauto-billing/internal/domain/entity"
	"github.com/sangkips/galleauto-billing/pkg/apperror"
	"github.com/sangkips/galleauto-billing/pkg/logger"
	"github.com/sangkips/galleauto-billing/pkg/report"
	"github.com/shopspring/decimal"
)

// Report export formats
const (
	FormatPDF  = "pdf"
	FormatXLSX = "xlsx"
)

// ReportService builds and exports the daily income report
type ReportService struct {
	invoices   *InvoiceService
	shopName   string
	currency   string
	defaultDir string
	log        zerolog.Logger
}

// NewReportService creates a new report service
func NewReportService(invoices *InvoiceService, shopName, currency, defaultDir string) *ReportService {
	return &ReportService{
		invoices:   invoices,
		shopName:   shopName,
		currency:   currency,
		defaultDir: defaultDir,
		log:        logger.WithComponent("report"),
	}
}

// DailyReport is the invoices of one day and their total.
type DailyReport struct {
	Date         string            `json:"date"`
	Invoices     []*entity.Invoice `json:"invoices"`
	InvoiceCount int               `json:"invoice_count"`
	TotalIncome  decimal.Decimal   `json:"total_income"`
}

// DailyReport returns the invoices and income of date
func (s *ReportService) DailyReport(ctx context.Context, date time.Time) (*DailyReport, error) {
	invoices, err := s.invoices.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	total, err := s.invoices.TotalIncome(ctx, date)
	if err != nil {
		return nil, err
	}
	return &DailyReport{
		Date:         date.Format("2006-01-02"),
		Invoices:     invoices,
		InvoiceCount: len(invoices),
		TotalIncome:  total,
	}, nil
}

// ExportResult describes a written report file.
type ExportResult struct {
	Path         string          `json:"path"`
	InvoiceCount int             `json:"invoice_count"`
	TotalIncome  decimal.Decimal `json:"total_income"`
}

// ExportDailyPDF writes Daily_Report_<date>.pdf into dir, or the configured
// directory when dir is empty.
func (s *ReportService) ExportDailyPDF(ctx context.Context, date time.Time, dir string) (*ExportResult, error) {
	return s.export(ctx, date, dir, FormatPDF)
}

// ExportDailyXLSX writes Daily_Report_<date>.xlsx into dir, or the
// configured directory when dir is empty.
func (s *ReportService) ExportDailyXLSX(ctx context.Context, date time.Time, dir string) (*ExportResult, error) {
	return s.export(ctx, date, dir, FormatXLSX)
}

// Export writes the daily report in the given format.
func (s *ReportService) Export(ctx context.Context, date time.Time, dir, format string) (*ExportResult, error) {
	switch format {
	case FormatPDF, FormatXLSX:
		return s.export(ctx, date, dir, format)
	default:
		return nil, apperror.NewFieldError("format", "Format must be pdf or xlsx")
	}
}

func (s *ReportService) export(ctx context.Context, date time.Time, dir, format string) (*ExportResult, error) {
	daily, err := s.DailyReport(ctx, date)
	if err != nil {
		return nil, err
	}
	if daily.InvoiceCount == 0 {
		return nil, apperror.NewFieldError("date", "No data to export for this date")
	}

	var buf bytes.Buffer
	if err := s.render(&buf, date, daily, format); err != nil {
		return nil, apperror.NewInfrastructureError("Failed to render report", err)
	}

	if dir == "" {
		dir = s.defaultDir
	}
	path := filepath.Join(dir, report.FileName(date, format))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, apperror.NewInfrastructureError("Failed to create report directory", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return nil, apperror.NewInfrastructureError("Failed to write report", err)
	}

	s.log.Info().
		Str("path", path).
		Int("invoices", daily.InvoiceCount).
		Str("total", daily.TotalIncome.StringFixed(2)).
		Msg("daily report exported")
	return &ExportResult{Path: path, InvoiceCount: daily.InvoiceCount, TotalIncome: daily.TotalIncome}, nil
}

func (s *ReportService) render(w io.Writer, date time.Time, daily *DailyReport, format string) error {
	d := &report.Daily{
		ShopName: s.shopName,
		Date:     date,
		Currency: s.currency,
		Total:    daily.TotalIncome,
	}
	for _, inv := range daily.Invoices {
		d.Rows = append(d.Rows, report.InvoiceRow{
			Number:   inv.InvoiceNumber,
			Date:     inv.InvoiceDate,
			Customer: inv.CustomerName,
			Contact:  inv.ContactNumber,
			Vehicle:  inv.VehicleNumber,
			Mileage:  inv.CurrentMileage,
			Amount:   inv.TotalAmount(),
		})
	}

	if format == FormatXLSX {
		return report.WriteDailyXLSX(w, d)
	}
	return report.WriteDailyPDF(w, d)
}
