package service

import (
	"context"
	"strconv"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sangkips/galleauto-billing/internal/domain/entity"
	"github.com/sangkips/galleauto-billing/internal/domain/repository"
	"github.com/sangkips/galleauto-billing/pkg/apperror"
	"github.com/sangkips/galleauto-billing/pkg/logger"
	"github.com/sangkips/galleauto-billing/pkg/printer"
)

const receiptDateLayout = "02-01-2006 15:04"

// PrinterService handles receipt formatting and thermal printing.
type PrinterService struct {
	printer     printer.Printer
	spooler     printer.Spooler
	invoiceRepo repository.InvoiceRepository
	printerType string
	header      entity.ReceiptHeader
	width       int
	log         zerolog.Logger
}

// NewPrinterService creates a new printer service. spooler may be nil when
// the printer is not queue based.
func NewPrinterService(
	p printer.Printer,
	spooler printer.Spooler,
	invoiceRepo repository.InvoiceRepository,
	printerType string,
	header entity.ReceiptHeader,
	width int,
) *PrinterService {
	if width <= 0 {
		width = printer.DefaultWidth
	}
	return &PrinterService{
		printer:     p,
		spooler:     spooler,
		invoiceRepo: invoiceRepo,
		printerType: printerType,
		header:      header,
		width:       width,
		log:         logger.WithComponent("printer"),
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
	Queue      string `json:"queue,omitempty"`
}

type resolver interface {
	Resolve(ctx context.Context) (string, error)
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus(ctx context.Context) *PrinterStatus {
	status := &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
	if r, ok := s.printer.(resolver); ok {
		if name, err := r.Resolve(ctx); err == nil {
			status.Queue = name
		}
	}
	return status
}

// AvailablePrinters lists the installed print queues.
func (s *PrinterService) AvailablePrinters(ctx context.Context) ([]string, error) {
	if s.spooler == nil {
		return []string{}, nil
	}
	names, err := s.spooler.Printers(ctx)
	if err != nil {
		return nil, apperror.NewInfrastructureError("Failed to list printers", err)
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// TestPrint sends a short test page to the printer.
func (s *PrinterService) TestPrint() error {
	doc := printer.NewDocument(s.width)
	doc.SetAlign(printer.AlignCenter).
		SetMode(printer.ModeDoubleSize).
		Text(s.header.StoreName).
		SetMode(printer.ModeNormal).
		Text("Printer Test").
		Separator('-').
		Text("Printer is working!").
		FeedLines(3).
		Cut()

	if err := s.printer.Print(doc.Bytes()); err != nil {
		s.log.Error().Err(err).Msg("test print failed")
		return apperror.NewInfrastructureError("Test print failed", err)
	}
	return nil
}

// PrintInvoice prints the receipt of a stored invoice. The receipt is
// returned even when printing fails.
func (s *PrinterService) PrintInvoice(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, wrapInfra("Failed to load invoice", err)
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}

	receipt := s.BuildReceipt(invoice)
	if err := s.printer.Print(FormatReceipt(receipt, s.width)); err != nil {
		s.log.Error().Err(err).Str("invoice_number", invoice.InvoiceNumber).Msg("receipt print failed")
		return receipt, apperror.NewInfrastructureError("Failed to print receipt", err)
	}

	s.log.Info().Str("invoice_number", invoice.InvoiceNumber).Msg("receipt printed")
	return receipt, nil
}

// BuildReceipt composes the printable view of an invoice.
func (s *PrinterService) BuildReceipt(invoice *entity.Invoice) *entity.Receipt {
	receipt := &entity.Receipt{
		Header:        s.header,
		InvoiceNumber: invoice.InvoiceNumber,
		Date:          invoice.InvoiceDate.Format(receiptDateLayout),
		Customer:      invoice.CustomerName,
		Contact:       invoice.ContactNumber,
		Vehicle:       invoice.VehicleNumber,
		Total:         invoice.TotalAmount(),
	}
	if invoice.CurrentMileage != nil {
		receipt.Mileage = *invoice.CurrentMileage
	}
	for _, item := range invoice.Items() {
		receipt.Lines = append(receipt.Lines, entity.ReceiptLine{
			Description: item.Description,
			Amount:      item.Price,
		})
	}
	return receipt
}

// FormatReceipt converts a Receipt into ESC/POS bytes for a roll of width
// characters.
func FormatReceipt(r *entity.Receipt, width int) []byte {
	doc := printer.NewDocument(width)
	descWidth := doc.Width() - 11

	// Header
	doc.SetAlign(printer.AlignCenter).
		SetMode(printer.ModeDoubleHeight).
		SetBold(true).
		Text(r.Header.StoreName).
		SetMode(printer.ModeNormal).
		SetBold(false)
	if r.Header.Tagline != "" {
		doc.Text(r.Header.Tagline)
	}
	doc.Separator('-').LineFeed()

	// Invoice info
	doc.SetAlign(printer.AlignLeft).
		SetBold(true).
		TextF("Invoice: %s", r.InvoiceNumber).
		SetBold(false).
		TextF("Date: %s", r.Date).
		LineFeed()

	// Customer
	doc.Separator('-').
		TextF("Cust : %s", r.Customer).
		TextF("Tel  : %s", r.Contact).
		SetBold(true).
		TextF("Veh  : %s", r.Vehicle)
	if r.Mileage > 0 {
		doc.TextF("Mil  : %s km", groupThousands(r.Mileage))
	}
	doc.SetBold(false).
		Separator('-').
		LineFeed()

	// Lines
	doc.SetBold(true).
		Columns("Description", "Amount", descWidth).
		SetBold(false).
		Separator('-')
	for _, line := range r.Lines {
		doc.Columns(line.Description, line.Amount.StringFixed(2), descWidth)
	}
	doc.Separator('-').LineFeed()

	// Total
	doc.SetAlign(printer.AlignRight).
		SetBold(true).
		SetMode(printer.ModeDoubleHeight).
		TextF("TOTAL: %*s", 10, r.Total.StringFixed(2)).
		SetMode(printer.ModeNormal).
		SetBold(false).
		LineFeed()

	// Footer
	doc.SetAlign(printer.AlignCenter).
		Separator('-').
		Text("Thank you!").
		Text("Visit us again").
		FeedLines(3).
		Cut()

	return doc.Bytes()
}

// groupThousands renders n as 45,000.
func groupThousands(n int) string {
	s := strconv.Itoa(n)
	if n < 0 {
		return "-" + groupThousands(-n)
	}
	out := make([]byte, 0, len(s)+len(s)/3)
	for i := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, s[i])
	}
	return string(out)
}
