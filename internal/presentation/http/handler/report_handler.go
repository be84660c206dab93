package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/galleauto-billing/internal/application/service"
	"github.com/sangkips/galleauto-billing/internal/presentation/http/dto/request"
	"github.com/sangkips/galleauto-billing/internal/presentation/http/dto/response"
)

// ReportHandler handles daily report HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Daily returns the invoices and income of one day
func (h *ReportHandler) Daily(c *gin.Context) {
	var req request.DailyReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	date, err := parseDateOrToday("date", req.Date)
	if err != nil {
		response.Error(c, err)
		return
	}

	daily, err := h.reportService.DailyReport(c.Request.Context(), date)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Daily report retrieved successfully", daily)
}

// ExportPDF writes the daily report as a PDF file on the server
func (h *ReportHandler) ExportPDF(c *gin.Context) {
	h.export(c, service.FormatPDF)
}

// ExportXLSX writes the daily report as an Excel workbook on the server
func (h *ReportHandler) ExportXLSX(c *gin.Context) {
	h.export(c, service.FormatXLSX)
}

func (h *ReportHandler) export(c *gin.Context, format string) {
	var req request.ExportReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	date, err := parseDate("date", req.Date)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.reportService.Export(c.Request.Context(), date, "", format)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Report exported successfully", result)
}
