package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/galleauto-billing/internal/application/service"
	"github.com/sangkips/galleauto-billing/internal/presentation/http/dto/request"
	"github.com/sangkips/galleauto-billing/internal/presentation/http/dto/response"
	"github.com/sangkips/galleauto-billing/pkg/apperror"
	"github.com/sangkips/galleauto-billing/pkg/pagination"
)

// InvoiceHandler handles invoice HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// NextNumber previews the number the next invoice will get. When no invoice
// exists yet the client may let the user type the first number instead.
func (h *InvoiceHandler) NextNumber(c *gin.Context) {
	ctx := c.Request.Context()

	next, err := h.invoiceService.NextInvoiceNumber(ctx)
	if err != nil {
		response.Error(c, err)
		return
	}
	first, err := h.invoiceService.IsFirstInvoice(ctx)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Next invoice number retrieved", gin.H{
		"invoice_number": next,
		"is_first":       first,
	})
}

// Create handles invoice creation
func (h *InvoiceHandler) Create(c *gin.Context) {
	var input service.CreateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice created successfully", invoice)
}

// List returns invoices by vehicle, by day or by day range
func (h *InvoiceHandler) List(c *gin.Context) {
	var filter request.InvoiceFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	ctx := c.Request.Context()

	switch {
	case filter.Vehicle != "":
		result, err := h.invoiceService.SearchByVehicle(ctx, filter.Vehicle, &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		})
		if err != nil {
			response.Error(c, err)
			return
		}
		response.SuccessWithPagination(c, "Invoices retrieved successfully", result)

	case filter.Start != "" || filter.End != "":
		if filter.Start == "" || filter.End == "" {
			response.Error(c, apperror.NewFieldError("start", "Both start and end dates are required"))
			return
		}
		start, err := parseDate("start", filter.Start)
		if err != nil {
			response.Error(c, err)
			return
		}
		end, err := parseDate("end", filter.End)
		if err != nil {
			response.Error(c, err)
			return
		}
		invoices, err := h.invoiceService.ListByDateRange(ctx, start, end)
		if err != nil {
			response.Error(c, err)
			return
		}
		total, err := h.invoiceService.TotalIncomeRange(ctx, start, end)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, "Invoices retrieved successfully", gin.H{
			"invoices":     invoices,
			"total_income": total,
		})

	default:
		date, err := parseDateOrToday("date", filter.Date)
		if err != nil {
			response.Error(c, err)
			return
		}
		invoices, err := h.invoiceService.ListByDate(ctx, date)
		if err != nil {
			response.Error(c, err)
			return
		}
		total, err := h.invoiceService.TotalIncome(ctx, date)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, "Invoices retrieved successfully", gin.H{
			"invoices":     invoices,
			"total_income": total,
		})
	}
}

// Get handles getting a single invoice with its lines
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "invoice")
	if !ok {
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", invoice)
}
