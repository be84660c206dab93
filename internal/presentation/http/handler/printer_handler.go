package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/galleauto-billing/internal/application/service"
	"github.com/sangkips/galleauto-billing/internal/presentation/http/dto/response"
)

// PrinterHandler handles printer-related HTTP requests.
type PrinterHandler struct {
	printerService *service.PrinterService
}

// NewPrinterHandler creates a new printer handler.
func NewPrinterHandler(printerService *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService}
}

// GetStatus returns the current printer connection status.
func (h *PrinterHandler) GetStatus(c *gin.Context) {
	status := h.printerService.GetStatus(c.Request.Context())
	response.OK(c, "Printer status retrieved", status)
}

// ListPrinters returns the print queues installed on the host.
func (h *PrinterHandler) ListPrinters(c *gin.Context) {
	names, err := h.printerService.AvailablePrinters(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Printers retrieved", names)
}

// TestPrint sends a test page to the printer.
func (h *PrinterHandler) TestPrint(c *gin.Context) {
	if err := h.printerService.TestPrint(); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Test page sent to printer", nil)
}

// PrintInvoice prints the receipt of a saved invoice. A printer failure does
// not undo the invoice, so the receipt is still returned with a warning.
func (h *PrinterHandler) PrintInvoice(c *gin.Context) {
	id, ok := paramID(c, "invoice")
	if !ok {
		return
	}

	receipt, err := h.printerService.PrintInvoice(c.Request.Context(), id)
	if err != nil {
		if receipt != nil {
			response.OK(c, "Receipt generated but printing failed", gin.H{
				"receipt": receipt,
				"warning": err.Error(),
			})
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt printed successfully", gin.H{
		"receipt": receipt,
	})
}
