package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/galleauto-billing/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StockBatch is one purchase of an item. Quantity only ever decreases after
// creation and stays within [0, InitialQuantity].
type StockBatch struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	ItemID          uuid.UUID       `gorm:"type:uuid;not null;index:idx_stock_batches_item_date,priority:1" json:"item_id"`
	Quantity        int             `gorm:"not null;check:chk_stock_batches_quantity,quantity >= 0" json:"quantity"`
	InitialQuantity int             `gorm:"not null" json:"initial_quantity"`
	BuyPrice        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"buy_price"`
	SellPrice       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"sell_price"`
	BatchDate       time.Time       `gorm:"not null;index:idx_stock_batches_item_date,priority:2" json:"batch_date"`
	Reference       *string         `gorm:"size:100" json:"reference,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	Item *Item `gorm:"foreignKey:ItemID" json:"item,omitempty"`
}

// BeforeCreate generates a UUID before creating a new batch
func (b *StockBatch) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StockBatch model
func (StockBatch) TableName() string {
	return "stock_batches"
}

// IsDepleted reports whether the batch has no remaining stock.
func (b *StockBatch) IsDepleted() bool {
	return b.Quantity == 0
}

// StockTransaction is an append-only audit entry for a stock movement.
// Prices are recorded for STOCK_IN only.
type StockTransaction struct {
	ID              uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	ItemID          uuid.UUID            `gorm:"type:uuid;not null;index" json:"item_id"`
	Type            enum.TransactionType `gorm:"type:varchar(16);not null;index" json:"transaction_type"`
	Quantity        int                  `gorm:"not null" json:"quantity"`
	BuyPrice        *decimal.Decimal     `gorm:"type:numeric(12,2)" json:"buy_price,omitempty"`
	SellPrice       *decimal.Decimal     `gorm:"type:numeric(12,2)" json:"sell_price,omitempty"`
	Reference       *string              `gorm:"size:100" json:"reference,omitempty"`
	Notes           *string              `gorm:"type:text" json:"notes,omitempty"`
	TransactionDate time.Time            `gorm:"not null;index" json:"transaction_date"`
	CreatedAt       time.Time            `json:"created_at"`

	Item *Item `gorm:"foreignKey:ItemID" json:"item,omitempty"`
}

// BeforeCreate generates a UUID before creating a new transaction
func (t *StockTransaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StockTransaction model
func (StockTransaction) TableName() string {
	return "stock_transactions"
}
