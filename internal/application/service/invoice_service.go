package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sangkips/galleauto-billing/internal/domain/entity"
	"github.com/sangkips/galleauto-billing/internal/domain/repository"
	"github.com/sangkips/galleauto-billing/pkg/apperror"
	"github.com/sangkips/galleauto-billing/pkg/logger"
	"github.com/sangkips/galleauto-billing/pkg/numbering"
	"github.com/sangkips/galleauto-billing/pkg/pagination"
	"github.com/shopspring/decimal"
)

// InvoiceService handles invoice numbering, creation and history
type InvoiceService struct {
	transactor  repository.Transactor
	invoiceRepo repository.InvoiceRepository
	seqRepo     repository.InvoiceSequenceRepository
	scheme      *numbering.Scheme
	validate    *validator.Validate
	now         func() time.Time
	log         zerolog.Logger
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	transactor repository.Transactor,
	invoiceRepo repository.InvoiceRepository,
	seqRepo repository.InvoiceSequenceRepository,
	scheme *numbering.Scheme,
) *InvoiceService {
	return &InvoiceService{
		transactor:  transactor,
		invoiceRepo: invoiceRepo,
		seqRepo:     seqRepo,
		scheme:      scheme,
		validate:    newInvoiceValidator(),
		now:         time.Now,
		log:         logger.WithComponent("invoice"),
	}
}

// InvoiceItemInput is one service line of a new invoice
type InvoiceItemInput struct {
	Description string          `json:"description" validate:"required,min=3"`
	Price       decimal.Decimal `json:"price" validate:"gt=0"`
}

// CreateInvoiceInput represents the create invoice input. InvoiceNumber may
// only be supplied for the very first invoice.
type CreateInvoiceInput struct {
	InvoiceNumber  string             `json:"invoice_number"`
	CustomerName   string             `json:"customer_name" validate:"required"`
	ContactNumber  string             `json:"contact_number" validate:"required,contact"`
	VehicleNumber  string             `json:"vehicle_number" validate:"required"`
	CurrentMileage *int               `json:"current_mileage" validate:"omitempty,gte=0"`
	Items          []InvoiceItemInput `json:"items" validate:"required,min=1,dive"`
}

func (in *CreateInvoiceInput) normalize() {
	in.InvoiceNumber = strings.TrimSpace(in.InvoiceNumber)
	in.CustomerName = strings.TrimSpace(in.CustomerName)
	in.ContactNumber = strings.TrimSpace(in.ContactNumber)
	in.VehicleNumber = strings.ToUpper(strings.TrimSpace(in.VehicleNumber))
	for i := range in.Items {
		in.Items[i].Description = strings.TrimSpace(in.Items[i].Description)
	}
}

// CreateInvoice validates the input, allocates the invoice number and stores
// the invoice with its lines in one transaction.
func (s *InvoiceService) CreateInvoice(ctx context.Context, input *CreateInvoiceInput) (*entity.Invoice, error) {
	input.normalize()
	if err := s.validate.Struct(input); err != nil {
		return nil, validationError(err)
	}

	invoice := &entity.Invoice{
		InvoiceDate:    s.now(),
		CustomerName:   input.CustomerName,
		ContactNumber:  input.ContactNumber,
		VehicleNumber:  input.VehicleNumber,
		CurrentMileage: input.CurrentMileage,
	}
	for _, item := range input.Items {
		invoice.AddItem(item.Description, item.Price)
	}

	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		number, err := s.allocateNumber(ctx, input.InvoiceNumber)
		if err != nil {
			return err
		}
		invoice.InvoiceNumber = number

		if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return apperror.NewConflictError("Invoice number " + number + " already exists")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, wrapInfra("Failed to save invoice", err)
	}

	s.log.Info().
		Str("invoice_number", invoice.InvoiceNumber).
		Str("vehicle", invoice.VehicleNumber).
		Int("items", invoice.ItemCount()).
		Str("total", invoice.TotalAmount().StringFixed(2)).
		Msg("invoice created")
	return invoice, nil
}

// allocateNumber must run inside the creation transaction.
func (s *InvoiceService) allocateNumber(ctx context.Context, requested string) (string, error) {
	count, err := s.invoiceRepo.Count(ctx)
	if err != nil {
		return "", err
	}

	if requested != "" && count == 0 {
		n, ok := s.scheme.Parse(requested)
		if !ok || !s.scheme.Valid(requested) {
			return "", apperror.NewFieldError("invoice_number",
				"Invoice number must look like "+s.scheme.Seed())
		}
		if err := s.seqRepo.Set(ctx, n); err != nil {
			return "", err
		}
		return requested, nil
	}

	n, err := s.seqRepo.Reserve(ctx, func() (int64, error) {
		if count == 0 {
			return 0, nil
		}
		last, err := s.invoiceRepo.LastNumber(ctx)
		if err != nil {
			return 0, err
		}
		if n, ok := s.scheme.Parse(last); ok {
			return n, nil
		}
		return count, nil
	})
	if err != nil {
		return "", err
	}

	number := s.scheme.Format(n)
	if requested != "" && requested != number {
		return "", apperror.NewFieldError("invoice_number",
			"Invoice number can only be entered for the first invoice")
	}
	return number, nil
}

// NextInvoiceNumber previews the number the next invoice will get without
// reserving it.
func (s *InvoiceService) NextInvoiceNumber(ctx context.Context) (string, error) {
	last, ok, err := s.seqRepo.Peek(ctx)
	if err != nil {
		return "", wrapInfra("Failed to read invoice sequence", err)
	}
	if ok {
		return s.scheme.Format(last + 1), nil
	}

	count, err := s.invoiceRepo.Count(ctx)
	if err != nil {
		return "", wrapInfra("Failed to count invoices", err)
	}
	lastNumber := ""
	if count > 0 {
		if lastNumber, err = s.invoiceRepo.LastNumber(ctx); err != nil {
			return "", wrapInfra("Failed to read last invoice", err)
		}
	}
	return s.scheme.Next(lastNumber, count), nil
}

// IsFirstInvoice reports whether no invoice has been stored yet
func (s *InvoiceService) IsFirstInvoice(ctx context.Context) (bool, error) {
	count, err := s.invoiceRepo.Count(ctx)
	if err != nil {
		return false, wrapInfra("Failed to count invoices", err)
	}
	return count == 0, nil
}

// GetInvoice retrieves an invoice with its lines
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, wrapInfra("Failed to load invoice", err)
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// SearchByVehicle lists invoices whose vehicle number contains vehicle,
// newest first. An empty vehicle lists every invoice.
func (s *InvoiceService) SearchByVehicle(ctx context.Context, vehicle string, params *pagination.PaginationParams) (*pagination.PaginatedResult[*entity.Invoice], error) {
	if params == nil {
		params = pagination.DefaultPagination()
	}
	params.Validate()

	invoices, total, err := s.invoiceRepo.SearchByVehicle(ctx, vehicle, params)
	if err != nil {
		return nil, wrapInfra("Failed to search invoices", err)
	}
	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(invoices, pag), nil
}

// DayBounds returns local midnight of date and of the following day.
func DayBounds(date time.Time) (time.Time, time.Time) {
	y, m, d := date.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, date.Location())
	return start, start.AddDate(0, 0, 1)
}

func rangeBounds(start, end time.Time) (time.Time, time.Time, error) {
	from, _ := DayBounds(start)
	_, to := DayBounds(end)
	if to.Before(from) || to.Equal(from) {
		return time.Time{}, time.Time{}, apperror.NewFieldError("end", "End date must not be before start date")
	}
	return from, to, nil
}

// ListByDate returns the invoices of one calendar day, newest first
func (s *InvoiceService) ListByDate(ctx context.Context, date time.Time) ([]*entity.Invoice, error) {
	start, end := DayBounds(date)
	invoices, err := s.invoiceRepo.ListBetween(ctx, start, end)
	if err != nil {
		return nil, wrapInfra("Failed to load invoices", err)
	}
	return invoices, nil
}

// ListByDateRange returns invoices from the start day through the end day
// inclusive, newest first
func (s *InvoiceService) ListByDateRange(ctx context.Context, start, end time.Time) ([]*entity.Invoice, error) {
	from, to, err := rangeBounds(start, end)
	if err != nil {
		return nil, err
	}
	invoices, err := s.invoiceRepo.ListBetween(ctx, from, to)
	if err != nil {
		return nil, wrapInfra("Failed to load invoices", err)
	}
	return invoices, nil
}

// TotalIncome sums the invoice totals of one calendar day
func (s *InvoiceService) TotalIncome(ctx context.Context, date time.Time) (decimal.Decimal, error) {
	start, end := DayBounds(date)
	total, err := s.invoiceRepo.TotalBetween(ctx, start, end)
	if err != nil {
		return decimal.Zero, wrapInfra("Failed to calculate income", err)
	}
	return total, nil
}

// TotalIncomeRange sums the invoice totals from the start day through the
// end day inclusive
func (s *InvoiceService) TotalIncomeRange(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	from, to, err := rangeBounds(start, end)
	if err != nil {
		return decimal.Zero, err
	}
	total, err := s.invoiceRepo.TotalBetween(ctx, from, to)
	if err != nil {
		return decimal.Zero, wrapInfra("Failed to calculate income", err)
	}
	return total, nil
}
