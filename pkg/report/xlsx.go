package report

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	invoiceSheet = "Invoices"
	stockSheet   = "Stock History"
)

// WriteDailyXLSX writes d as a single-sheet workbook.
func WriteDailyXLSX(w io.Writer, d *Daily) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", invoiceSheet); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	header := []interface{}{"Invoice No", "Time", "Customer", "Contact", "Vehicle", "Mileage", "Amount"}
	if err := f.SetSheetRow(invoiceSheet, "A1", &header); err != nil {
		return err
	}
	if err := f.SetCellStyle(invoiceSheet, "A1", "G1", bold); err != nil {
		return err
	}

	for i, row := range d.Rows {
		amount, _ := row.Amount.Float64()
		var mileage interface{}
		if row.Mileage != nil {
			mileage = *row.Mileage
		}
		values := []interface{}{
			row.Number,
			row.Date.Format("15:04"),
			row.Customer,
			row.Contact,
			row.Vehicle,
			mileage,
			amount,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(invoiceSheet, cell, &values); err != nil {
			return err
		}
	}

	totalRow := len(d.Rows) + 3
	total, _ := d.Total.Float64()
	if err := f.SetCellValue(invoiceSheet, fmt.Sprintf("F%d", totalRow), "Total ("+d.Currency+")"); err != nil {
		return err
	}
	if err := f.SetCellValue(invoiceSheet, fmt.Sprintf("G%d", totalRow), total); err != nil {
		return err
	}
	if err := f.SetCellStyle(invoiceSheet, fmt.Sprintf("F%d", totalRow), fmt.Sprintf("G%d", totalRow), bold); err != nil {
		return err
	}
	if err := f.SetColWidth(invoiceSheet, "A", "G", 18); err != nil {
		return err
	}

	_, err = f.WriteTo(w)
	return err
}

// WriteStockHistoryXLSX writes stock movements, newest first as given.
func WriteStockHistoryXLSX(w io.Writer, rows []StockRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", stockSheet); err != nil {
		return err
	}
	header := []interface{}{"Date", "Item", "Type", "Quantity", "Buy Price", "Sell Price", "Reference", "Notes"}
	if err := f.SetSheetRow(stockSheet, "A1", &header); err != nil {
		return err
	}

	for i, row := range rows {
		values := []interface{}{
			row.Date.Format("2006-01-02 15:04"),
			row.Item,
			row.Type,
			row.Quantity,
			optionalMoney(row.BuyPrice),
			optionalMoney(row.SellPrice),
			row.Reference,
			row.Notes,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(stockSheet, cell, &values); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(stockSheet, "A", "H", 16); err != nil {
		return err
	}

	_, err := f.WriteTo(w)
	return err
}

func optionalMoney(d *decimal.Decimal) interface{} {
	if d == nil {
		return nil
	}
	return money(*d)
}
