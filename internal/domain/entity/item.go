package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Item is an inventory item (a part or consumable) tracked by name.
// NormalizedName is lower(trim(Name)) and is set by the catalog before every
// write; it is unique among live items.
type Item struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name           string         `gorm:"size:255;not null" json:"name"`
	NormalizedName string         `gorm:"size:255;not null;uniqueIndex:idx_items_normalized_name,where:deleted_at IS NULL" json:"normalized_name"`
	Description    string         `gorm:"type:text" json:"description,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new item
func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Item model
func (Item) TableName() string {
	return "items"
}

// ItemStock pairs an item with its remaining quantity across all batches.
type ItemStock struct {
	Item          Item `json:"item"`
	TotalQuantity int  `json:"total_quantity"`
}
