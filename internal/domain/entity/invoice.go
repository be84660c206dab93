package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceItem is one service line on an invoice. SerialNo is 1-based and
// sequential within its invoice.
type InvoiceItem struct {
	SerialNo    int             `json:"serial_no"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

// Invoice is the billing aggregate. Line items are reachable only through
// its accessors, and the total always equals the sum of their prices.
type Invoice struct {
	ID             uuid.UUID
	InvoiceNumber  string
	InvoiceDate    time.Time
	CustomerName   string
	ContactNumber  string
	VehicleNumber  string
	CurrentMileage *int

	items []InvoiceItem
	total decimal.Decimal
}

// RestoreInvoice rebuilds an aggregate from stored state. Items are ordered
// by their stored serial numbers and the total is recomputed.
func RestoreInvoice(inv Invoice, items []InvoiceItem) *Invoice {
	inv.items = make([]InvoiceItem, len(items))
	copy(inv.items, items)
	inv.recalculate()
	return &inv
}

// AddItem appends a line and returns it with its serial number.
func (inv *Invoice) AddItem(description string, price decimal.Decimal) InvoiceItem {
	item := InvoiceItem{
		SerialNo:    len(inv.items) + 1,
		Description: description,
		Price:       price,
	}
	inv.items = append(inv.items, item)
	inv.recalculate()
	return item
}

// RemoveItem drops the line with the given serial number and renumbers the
// lines after it. It reports whether a line was removed.
func (inv *Invoice) RemoveItem(serialNo int) bool {
	for i, item := range inv.items {
		if item.SerialNo != serialNo {
			continue
		}
		inv.items = append(inv.items[:i], inv.items[i+1:]...)
		for j := i; j < len(inv.items); j++ {
			inv.items[j].SerialNo = j + 1
		}
		inv.recalculate()
		return true
	}
	return false
}

// Items returns a copy of the line items.
func (inv *Invoice) Items() []InvoiceItem {
	out := make([]InvoiceItem, len(inv.items))
	copy(out, inv.items)
	return out
}

// ItemCount returns the number of lines.
func (inv *Invoice) ItemCount() int {
	return len(inv.items)
}

// TotalAmount returns the sum of the line prices.
func (inv *Invoice) TotalAmount() decimal.Decimal {
	return inv.total
}

func (inv *Invoice) recalculate() {
	total := decimal.Zero
	for _, item := range inv.items {
		total = total.Add(item.Price)
	}
	inv.total = total
}

// MarshalJSON exposes the aggregate including its derived total.
func (inv *Invoice) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID             uuid.UUID       `json:"id"`
		InvoiceNumber  string          `json:"invoice_number"`
		InvoiceDate    time.Time       `json:"invoice_date"`
		CustomerName   string          `json:"customer_name"`
		ContactNumber  string          `json:"contact_number"`
		VehicleNumber  string          `json:"vehicle_number"`
		CurrentMileage *int            `json:"current_mileage,omitempty"`
		Items          []InvoiceItem   `json:"items"`
		TotalAmount    decimal.Decimal `json:"total_amount"`
	}{
		ID:             inv.ID,
		InvoiceNumber:  inv.InvoiceNumber,
		InvoiceDate:    inv.InvoiceDate,
		CustomerName:   inv.CustomerName,
		ContactNumber:  inv.ContactNumber,
		VehicleNumber:  inv.VehicleNumber,
		CurrentMileage: inv.CurrentMileage,
		Items:          inv.Items(),
		TotalAmount:    inv.total,
	})
}
