package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/galleauto-billing/internal/domain/entity"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InvoiceModel is the stored form of an entity.Invoice
type InvoiceModel struct {
	ID             uuid.UUID          `gorm:"type:uuid;primary_key"`
	InvoiceNumber  string             `gorm:"size:32;not null;uniqueIndex"`
	InvoiceDate    time.Time          `gorm:"not null;index"`
	CustomerName   string             `gorm:"size:255;not null"`
	ContactNumber  string             `gorm:"size:20;not null"`
	VehicleNumber  string             `gorm:"size:50;not null;index"`
	CurrentMileage *int               `gorm:"check:chk_invoices_mileage,current_mileage >= 0"`
	TotalAmount    decimal.Decimal    `gorm:"type:numeric(12,2);not null"`
	CreatedAt      time.Time          `gorm:"index"`
	Items          []InvoiceItemModel `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for InvoiceModel
func (InvoiceModel) TableName() string {
	return "invoices"
}

// BeforeCreate generates a UUID before creating a new invoice
func (m *InvoiceModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// InvoiceItemModel is the stored form of an entity.InvoiceItem
type InvoiceItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_invoice_items_serial,priority:1"`
	SerialNo    int             `gorm:"not null;uniqueIndex:idx_invoice_items_serial,priority:2"`
	Description string          `gorm:"size:255;not null"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

// TableName returns the table name for InvoiceItemModel
func (InvoiceItemModel) TableName() string {
	return "invoice_items"
}

// BeforeCreate generates a UUID before creating a new invoice line
func (m *InvoiceItemModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// InvoiceSequence is the single-row counter invoice numbers are allocated from
type InvoiceSequence struct {
	Name      string `gorm:"primaryKey;size:32"`
	LastValue int64  `gorm:"not null"`
	UpdatedAt time.Time
}

// TableName returns the table name for InvoiceSequence
func (InvoiceSequence) TableName() string {
	return "invoice_sequences"
}

func toInvoiceModel(inv *entity.Invoice) *InvoiceModel {
	m := &InvoiceModel{
		ID:             inv.ID,
		InvoiceNumber:  inv.InvoiceNumber,
		InvoiceDate:    inv.InvoiceDate,
		CustomerName:   inv.CustomerName,
		ContactNumber:  inv.ContactNumber,
		VehicleNumber:  inv.VehicleNumber,
		CurrentMileage: inv.CurrentMileage,
		TotalAmount:    inv.TotalAmount(),
	}
	for _, item := range inv.Items() {
		m.Items = append(m.Items, InvoiceItemModel{
			SerialNo:    item.SerialNo,
			Description: item.Description,
			Price:       item.Price,
		})
	}
	return m
}

func (m *InvoiceModel) toEntity() *entity.Invoice {
	items := make([]entity.InvoiceItem, 0, len(m.Items))
	for _, it := range m.Items {
		items = append(items, entity.InvoiceItem{
			SerialNo:    it.SerialNo,
			Description: it.Description,
			Price:       it.Price,
		})
	}
	return entity.RestoreInvoice(entity.Invoice{
		ID:             m.ID,
		InvoiceNumber:  m.InvoiceNumber,
		InvoiceDate:    m.InvoiceDate,
		CustomerName:   m.CustomerName,
		ContactNumber:  m.ContactNumber,
		VehicleNumber:  m.VehicleNumber,
		CurrentMileage: m.CurrentMileage,
	}, items)
}

// Models lists every persisted type for migrations
func Models() []interface{} {
	return []interface{}{
		&entity.Item{},
		&entity.StockBatch{},
		&entity.StockTransaction{},
		&InvoiceModel{},
		&InvoiceItemModel{},
		&InvoiceSequence{},
		&entity.IdempotencyKey{},
	}
}
