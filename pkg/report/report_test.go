package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

func sampleDaily() *Daily {
	day := time.Date(2024, 3, 14, 0, 0, 0, 0, time.Local)
	mileage := 45000
	return &Daily{
		ShopName: "GALLEAUTO SERVICE",
		Date:     day,
		Currency: "LKR",
		Rows: []InvoiceRow{
			{Number: "INV-0000002", Date: day.Add(15 * time.Hour), Customer: "Nimal", Vehicle: "CAB-1234", Mileage: &mileage, Amount: decimal.RequireFromString("4300.50")},
			{Number: "INV-0000001", Date: day.Add(9*time.Hour + 5*time.Minute), Customer: "Sunil", Vehicle: "WP-5678", Amount: decimal.NewFromInt(1200)},
		},
		Total: decimal.RequireFromString("5500.50"),
	}
}

func TestFileName(t *testing.T) {
	day := time.Date(2024, 1, 5, 18, 30, 0, 0, time.UTC)
	if got := FileName(day, "pdf"); got != "Daily_Report_2024-01-05.pdf" {
		t.Fatalf("FileName = %q", got)
	}
}

func TestWriteDailyPDF(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteDailyPDF(&buf, sampleDaily()); err != nil {
		t.Fatalf("WriteDailyPDF: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("output is not a PDF: %q", buf.Bytes()[:8])
	}
}

func TestWriteDailyXLSX(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteDailyXLSX(&buf, sampleDaily()); err != nil {
		t.Fatalf("WriteDailyXLSX: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	tests := []struct {
		cell string
		want string
	}{
		{"A1", "Invoice No"},
		{"A2", "INV-0000002"},
		{"B3", "09:05"},
		{"E2", "CAB-1234"},
		{"F2", "45000"},
		{"F3", ""},
		{"F5", "Total (LKR)"},
		{"G5", "5500.5"},
	}
	for _, tt := range tests {
		got, err := f.GetCellValue(invoiceSheet, tt.cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s): %v", tt.cell, err)
		}
		if got != tt.want {
			t.Errorf("%s = %q, want %q", tt.cell, got, tt.want)
		}
	}
}

func TestWriteStockHistoryXLSX(t *testing.T) {
	buy := decimal.NewFromInt(900)
	rows := []StockRow{
		{Date: time.Date(2024, 3, 14, 10, 0, 0, 0, time.Local), Item: "Oil Filter", Type: "STOCK_IN", Quantity: 10, BuyPrice: &buy, Reference: "GRN-7"},
		{Date: time.Date(2024, 3, 14, 11, 0, 0, 0, time.Local), Item: "Oil Filter", Type: "STOCK_OUT", Quantity: 2},
	}

	var buf bytes.Buffer
	if err := WriteStockHistoryXLSX(&buf, rows); err != nil {
		t.Fatalf("WriteStockHistoryXLSX: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	all, err := f.GetRows(stockSheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d rows, want 3", len(all))
	}
	if all[1][4] != "900.00" || all[2][2] != "STOCK_OUT" {
		t.Fatalf("unexpected rows: %v", all)
	}
}
