// Package bootstrap wires configuration, storage and services together for
// the API server and the operator CLI.
package bootstrap

import (
	"github.com/rs/zerolog/log"
	"github.com/sangkips/galleauto-billing/internal/application/service"
	"github.com/sangkips/galleauto-billing/internal/config"
	"github.com/sangkips/galleauto-billing/internal/domain/entity"
	domainRepo "github.com/sangkips/galleauto-billing/internal/domain/repository"
	"github.com/sangkips/galleauto-billing/internal/infrastructure/database"
	"github.com/sangkips/galleauto-billing/internal/infrastructure/repository"
	"github.com/sangkips/galleauto-billing/pkg/numbering"
	"github.com/sangkips/galleauto-billing/pkg/printer"
	"gorm.io/gorm"
)

// App holds the wired services of one process.
type App struct {
	DB              *gorm.DB
	Catalog         *service.CatalogService
	Stock           *service.StockService
	Invoices        *service.InvoiceService
	Reports         *service.ReportService
	Printer         *service.PrinterService
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Open connects to the database and builds every service.
func Open(cfg *config.Config) (*App, error) {
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, err
	}

	transactor := repository.NewTransactor(db)
	itemRepo := repository.NewItemRepository(db)
	batchRepo := repository.NewStockBatchRepository(db)
	txRepo := repository.NewStockTransactionRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	seqRepo := repository.NewInvoiceSequenceRepository(db)

	invoices := service.NewInvoiceService(transactor, invoiceRepo, seqRepo,
		numbering.NewScheme(cfg.Invoice.Prefix, cfg.Invoice.Width))

	return &App{
		DB:              db,
		Catalog:         service.NewCatalogService(itemRepo, batchRepo, cfg.Catalog.SimilarityThreshold),
		Stock:           service.NewStockService(transactor, itemRepo, batchRepo, txRepo),
		Invoices:        invoices,
		Reports:         service.NewReportService(invoices, cfg.Receipt.StoreName, cfg.Report.Currency, cfg.Report.OutputDir),
		Printer:         NewPrinterService(cfg, invoiceRepo),
		IdempotencyRepo: repository.NewIdempotencyRepository(db),
	}, nil
}

// NewPrinterService builds the receipt printer from configuration. A printer
// that cannot be set up degrades to the null printer so billing keeps
// working. invoiceRepo may be nil when only status and test pages are needed.
func NewPrinterService(cfg *config.Config, invoiceRepo domainRepo.InvoiceRepository) *service.PrinterService {
	var spooler printer.Spooler
	if cfg.Printer.Type == "queue" {
		spooler = printer.NewCUPSSpooler()
	}
	thermal, err := printer.New(printer.Options{
		Type:    cfg.Printer.Type,
		Name:    cfg.Printer.Name,
		USBPath: cfg.Printer.USBPath,
		Address: cfg.Printer.Address,
		Spooler: spooler,
	})
	if err != nil {
		log.Warn().Err(err).Msg("printer unavailable, receipts will not be printed")
		thermal = printer.NewNullPrinter()
	}

	header := entity.ReceiptHeader{StoreName: cfg.Receipt.StoreName, Tagline: cfg.Receipt.Tagline}
	return service.NewPrinterService(thermal, spooler, invoiceRepo, cfg.Printer.Type, header, cfg.Printer.CharWidth)
}

// Close releases the database connection pool.
func (a *App) Close() error {
	sqlDB, err := a.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
