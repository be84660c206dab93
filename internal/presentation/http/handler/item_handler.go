package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/galleauto-billing/internal/application/service"
	"github.com/sangkips/galleauto-billing/internal/presentation/http/dto/request"
	"github.com/sangkips/galleauto-billing/internal/presentation/http/dto/response"
)

// ItemHandler handles catalog HTTP requests
type ItemHandler struct {
	catalogService *service.CatalogService
	stockService   *service.StockService
}

// NewItemHandler creates a new item handler
func NewItemHandler(catalogService *service.CatalogService, stockService *service.StockService) *ItemHandler {
	return &ItemHandler{catalogService: catalogService, stockService: stockService}
}

// List handles listing items, optionally filtered by a search term
func (h *ItemHandler) List(c *gin.Context) {
	var filter request.ItemFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	items, err := h.catalogService.Search(c.Request.Context(), filter.Search)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Items retrieved successfully", items)
}

// Create handles item creation
func (h *ItemHandler) Create(c *gin.Context) {
	var req request.ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	item, err := h.catalogService.CreateItem(c.Request.Context(), &service.CreateItemInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Item created successfully", item)
}

// Similar lists catalog items whose names resemble the given name, so the
// user can pick an existing item instead of creating a near duplicate.
func (h *ItemHandler) Similar(c *gin.Context) {
	var req request.SimilarItemsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	items, err := h.catalogService.FindSimilar(c.Request.Context(), req.Name, req.Threshold)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Similar items retrieved successfully", items)
}

// Overview returns every item with its remaining quantity
func (h *ItemHandler) Overview(c *gin.Context) {
	var filter request.ItemFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	overview, err := h.catalogService.InventoryOverview(c.Request.Context(), filter.Search)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Inventory retrieved successfully", overview)
}

// Get handles getting a single item
func (h *ItemHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "item")
	if !ok {
		return
	}

	item, err := h.catalogService.GetItem(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item retrieved successfully", item)
}

// Update handles renaming an item
func (h *ItemHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "item")
	if !ok {
		return
	}

	var req request.ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	item, err := h.catalogService.RenameItem(c.Request.Context(), id, &service.RenameItemInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item updated successfully", item)
}

// Delete removes an item that has no stock left
func (h *ItemHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "item")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteItem(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item deleted successfully", nil)
}

// Stock returns the item's total quantity and its batches that still hold stock
func (h *ItemHandler) Stock(c *gin.Context) {
	id, ok := paramID(c, "item")
	if !ok {
		return
	}

	detail, err := h.stockService.ItemStock(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item stock retrieved successfully", detail)
}

// Batches returns every batch of the item, including empty ones
func (h *ItemHandler) Batches(c *gin.Context) {
	id, ok := paramID(c, "item")
	if !ok {
		return
	}

	if _, err := h.catalogService.GetItem(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	batches, err := h.stockService.Batches(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Batches retrieved successfully", batches)
}
