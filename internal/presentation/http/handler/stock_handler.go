package handler

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/galleauto-billing/internal/application/service"
	"github.com/sangkips/galleauto-billing/internal/domain/enum"
	"github.com/sangkips/galleauto-billing/internal/presentation/http/dto/request"
	"github.com/sangkips/galleauto-billing/internal/presentation/http/dto/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// StockHandler handles stock movement HTTP requests
type StockHandler struct {
	stockService *service.StockService
}

// NewStockHandler creates a new stock handler
func NewStockHandler(stockService *service.StockService) *StockHandler {
	return &StockHandler{stockService: stockService}
}

// StockIn records a purchase as a new batch
func (h *StockHandler) StockIn(c *gin.Context) {
	var req request.StockInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	batch, err := h.stockService.StockIn(c.Request.Context(), &service.StockInInput{
		ItemID:    req.ItemID,
		Quantity:  req.Quantity,
		BuyPrice:  req.BuyPrice,
		SellPrice: req.SellPrice,
		Reference: req.Reference,
		Notes:     req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Stock added successfully", batch)
}

// Consume takes stock out of a batch
func (h *StockHandler) Consume(c *gin.Context) {
	id, ok := paramID(c, "batch")
	if !ok {
		return
	}

	var req request.ConsumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	batch, err := h.stockService.Consume(c.Request.Context(), &service.ConsumeInput{
		BatchID:  id,
		Quantity: req.Quantity,
		Notes:    req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock consumed successfully", batch)
}

// History lists stock movements, newest first
func (h *StockHandler) History(c *gin.Context) {
	filter, ok := h.bindHistoryFilter(c)
	if !ok {
		return
	}

	movements, err := h.stockService.History(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock history retrieved successfully", movements)
}

// ExportHistory downloads the filtered stock history as an Excel workbook
func (h *StockHandler) ExportHistory(c *gin.Context) {
	filter, ok := h.bindHistoryFilter(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.stockService.ExportHistoryXLSX(c.Request.Context(), filter, &buf); err != nil {
		response.Error(c, err)
		return
	}

	fileName := "Stock_History_" + time.Now().Format(dateLayout) + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// bindHistoryFilter turns the query into a HistoryFilter. Start and end are
// calendar days; the end day is included in full.
func (h *StockHandler) bindHistoryFilter(c *gin.Context) (service.HistoryFilter, bool) {
	var filter service.HistoryFilter

	var req request.StockHistoryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters: "+err.Error())
		return filter, false
	}

	if req.ItemID != "" {
		id := uuid.MustParse(req.ItemID)
		filter.ItemID = &id
	}
	if req.Type != "" {
		t, err := enum.ParseTransactionType(req.Type)
		if err != nil {
			response.BadRequest(c, err.Error())
			return filter, false
		}
		filter.Type = &t
	}
	if req.Start != "" {
		start, err := parseDate("start", req.Start)
		if err != nil {
			response.Error(c, err)
			return filter, false
		}
		filter.Start = &start
	}
	if req.End != "" {
		day, err := parseDate("end", req.End)
		if err != nil {
			response.Error(c, err)
			return filter, false
		}
		end := day.AddDate(0, 0, 1).Add(-time.Nanosecond)
		filter.End = &end
	}
	return filter, true
}
