package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/galleauto-billing/internal/domain/entity"
	"github.com/sangkips/galleauto-billing/pkg/pagination"
	"github.com/shopspring/decimal"
)

// InvoiceRepository persists Invoice aggregates together with their lines.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	Count(ctx context.Context) (int64, error)
	// LastNumber returns the number of the most recently created invoice,
	// or "" when none exist.
	LastNumber(ctx context.Context) (string, error)
	// SearchByVehicle matches the vehicle number case-insensitively, newest first.
	SearchByVehicle(ctx context.Context, vehicle string, params *pagination.PaginationParams) ([]*entity.Invoice, int64, error)
	// ListBetween returns invoices dated in [start, end), newest first.
	ListBetween(ctx context.Context, start, end time.Time) ([]*entity.Invoice, error)
	// TotalBetween sums invoice totals dated in [start, end).
	TotalBetween(ctx context.Context, start, end time.Time) (decimal.Decimal, error)
}

// InvoiceSequenceRepository allocates invoice numbers from a locked counter row.
type InvoiceSequenceRepository interface {
	// Reserve locks the counter, calls init when the counter does not exist
	// yet, and stores and returns the next value. It must run inside a
	// transaction.
	Reserve(ctx context.Context, init func() (int64, error)) (int64, error)
	// Peek returns the last allocated value without reserving one.
	Peek(ctx context.Context) (int64, bool, error)
	// Set overwrites the counter, used when the first invoice number is typed in.
	Set(ctx context.Context, value int64) error
}
