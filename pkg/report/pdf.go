package report

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

var pdfColumns = []struct {
	title string
	width float64
	align string
}{
	{"Invoice No", 34, "L"},
	{"Time", 18, "C"},
	{"Customer", 56, "L"},
	{"Vehicle", 40, "L"},
	{"Amount", 32, "R"},
}

// WriteDailyPDF renders d as an A4 PDF table followed by the day's total.
func WriteDailyPDF(w io.Writer, d *Daily) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(fmt.Sprintf("Daily Report %s", d.Date.Format("2006-01-02")), true)
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, tr(d.ShopName), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 7, "Daily Invoice Report - "+d.Date.Format("02 Jan 2006"), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for _, col := range pdfColumns {
		pdf.CellFormat(col.width, 8, col.title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range d.Rows {
		cells := []string{
			row.Number,
			row.Date.Format("15:04"),
			tr(row.Customer),
			tr(row.Vehicle),
			money(row.Amount),
		}
		for i, col := range pdfColumns {
			pdf.CellFormat(col.width, 7, cells[i], "1", 0, col.align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Invoices: %d", len(d.Rows)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Total Income: %s %s", d.Currency, money(d.Total)), "", 1, "L", false, 0, "")

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("report: failed to build PDF: %w", err)
	}
	return pdf.Output(w)
}
