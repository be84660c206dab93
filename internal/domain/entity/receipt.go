package entity

import "github.com/shopspring/decimal"

// ReceiptHeader holds the shop header printed at the top of a receipt.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Tagline   string `json:"tagline,omitempty"`
}

// ReceiptLine is a single service line on a receipt.
type ReceiptLine struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// Receipt is a value object representing a printable invoice receipt.
// It is NOT a database entity, it is composed from an Invoice at print time.
type Receipt struct {
	Header        ReceiptHeader   `json:"header"`
	InvoiceNumber string          `json:"invoice_number"`
	Date          string          `json:"date"`
	Customer      string          `json:"customer"`
	Contact       string          `json:"contact"`
	Vehicle       string          `json:"vehicle"`
	Mileage       int             `json:"mileage,omitempty"`
	Lines         []ReceiptLine   `json:"lines"`
	Total         decimal.Decimal `json:"total"`
}
