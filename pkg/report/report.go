// Package report renders invoice and stock summaries to PDF and XLSX.
package report

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceRow is one invoice line of the daily report.
type InvoiceRow struct {
	Number   string
	Date     time.Time
	Customer string
	Contact  string
	Vehicle  string
	Mileage  *int
	Amount   decimal.Decimal
}

// Daily is the content of a daily income report.
type Daily struct {
	ShopName string
	Date     time.Time
	Currency string
	Rows     []InvoiceRow
	Total    decimal.Decimal
}

// StockRow is one stock movement in a history export.
type StockRow struct {
	Date      time.Time
	Item      string
	Type      string
	Quantity  int
	BuyPrice  *decimal.Decimal
	SellPrice *decimal.Decimal
	Reference string
	Notes     string
}

// FileName returns Daily_Report_<YYYY-MM-DD>.<ext>.
func FileName(date time.Time, ext string) string {
	return "Daily_Report_" + date.Format("2006-01-02") + "." + ext
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
