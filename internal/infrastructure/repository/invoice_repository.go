package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/galleauto-billing/internal/domain/entity"
	domainRepo "github.com/sangkips/galleauto-billing/internal/domain/repository"
	"github.com/sangkips/galleauto-billing/pkg/pagination"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) domainRepo.InvoiceRepository {
	return &invoiceRepository{db: db}
}

// Create stores the invoice and its lines in one statement batch and copies
// the generated id back onto the aggregate.
func (r *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	m := toInvoiceModel(invoice)
	if err := conn(ctx, r.db).Create(m).Error; err != nil {
		return translate(err)
	}
	invoice.ID = m.ID
	return nil
}

func (r *invoiceRepository) withItems(ctx context.Context) *gorm.DB {
	return conn(ctx, r.db).Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("serial_no ASC")
	})
}

func (r *invoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	var m InvoiceModel
	err := r.withItems(ctx).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m.toEntity(), nil
}

func (r *invoiceRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&InvoiceModel{}).Count(&count).Error
	return count, err
}

func (r *invoiceRepository) LastNumber(ctx context.Context) (string, error) {
	var m InvoiceModel
	err := conn(ctx, r.db).
		Select("invoice_number").
		Order("created_at DESC").
		Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	return m.InvoiceNumber, err
}

func (r *invoiceRepository) SearchByVehicle(ctx context.Context, vehicle string, params *pagination.PaginationParams) ([]*entity.Invoice, int64, error) {
	params.Validate()

	filter := containsFold("vehicle_number", vehicle)

	var total int64
	if err := conn(ctx, r.db).Model(&InvoiceModel{}).Scopes(filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []InvoiceModel
	err := r.withItems(ctx).
		Scopes(filter, paginate(params)).
		Order("invoice_date DESC").
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}
	return toEntities(models), total, nil
}

func (r *invoiceRepository) ListBetween(ctx context.Context, start, end time.Time) ([]*entity.Invoice, error) {
	var models []InvoiceModel
	err := r.withItems(ctx).
		Where("invoice_date >= ? AND invoice_date < ?", start, end).
		Order("invoice_date DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toEntities(models), nil
}

func (r *invoiceRepository) TotalBetween(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	var row struct {
		Total decimal.NullDecimal
	}
	err := conn(ctx, r.db).Model(&InvoiceModel{}).
		Where("invoice_date >= ? AND invoice_date < ?", start, end).
		Select("SUM(total_amount) AS total").
		Scan(&row).Error
	if err != nil || !row.Total.Valid {
		return decimal.Zero, err
	}
	return row.Total.Decimal, nil
}

func toEntities(models []InvoiceModel) []*entity.Invoice {
	out := make([]*entity.Invoice, 0, len(models))
	for i := range models {
		out = append(out, models[i].toEntity())
	}
	return out
}
