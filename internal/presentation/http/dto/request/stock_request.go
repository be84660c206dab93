package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockInRequest records a purchase of an item as a new batch
type StockInRequest struct {
	ItemID    uuid.UUID       `json:"item_id" binding:"required"`
	Quantity  int             `json:"quantity"`
	BuyPrice  decimal.Decimal `json:"buy_price"`
	SellPrice decimal.Decimal `json:"sell_price"`
	Reference string          `json:"reference" binding:"max=100"`
	Notes     string          `json:"notes"`
}

// ConsumeRequest takes stock out of a batch
type ConsumeRequest struct {
	Quantity int    `json:"quantity"`
	Notes    string `json:"notes"`
}

// StockHistoryRequest filters the stock movement log. Dates use YYYY-MM-DD.
type StockHistoryRequest struct {
	ItemID string `form:"item_id" binding:"omitempty,uuid"`
	Type   string `form:"type" binding:"omitempty,oneof=STOCK_IN STOCK_OUT"`
	Start  string `form:"start"`
	End    string `form:"end"`
}
