package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/cutiefy/pos-api/internal/application/service"
	"github.com/cutiefy/pos-api/internal/domain/repository"
	"github.com/cutiefy/pos-api/internal/presentation/http/dto/request"
	"github.com/cutiefy/pos-api/internal/presentation/http/dto/response"
	"github.com/cutiefy/pos-api/pkg/pagination"
)

// ItemHandler handles inventory-related HTTP requests
type ItemHandler struct {
	inventoryService *service.InventoryService
}

// NewItemHandler creates a new item handler
func NewItemHandler(inventoryService *service.InventoryService) *ItemHandler {
	return &ItemHandler{inventoryService: inventoryService}
}

// List handles listing inventory items
func (h *ItemHandler) List(c *gin.Context) {
	var filter request.ItemFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.ItemFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:   filter.Search,
		LowStock: filter.LowStock,
	}

	result, err := h.inventoryService.ListItems(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Items retrieved successfully", result)
}

// Create handles adding an item to inventory
func (h *ItemHandler) Create(c *gin.Context) {
	var req request.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	item, err := h.inventoryService.CreateItem(c.Request.Context(), service.CreateItemInput{
		ItemID:            req.ItemID,
		Name:              req.Name,
		PurchasePrice:     req.PurchasePrice,
		SalePrice:         req.SalePrice,
		QuantityAvailable: req.QuantityAvailable,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Item created successfully", item)
}

// Get handles getting a single item by its business ID
func (h *ItemHandler) Get(c *gin.Context) {
	itemID := c.Param("item_id")
	if itemID == "" {
		response.BadRequest(c, "Item ID is required")
		return
	}

	item, err := h.inventoryService.GetItem(c.Request.Context(), itemID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item retrieved successfully", item)
}

// Update handles editing an item
func (h *ItemHandler) Update(c *gin.Context) {
	itemID := c.Param("item_id")
	if itemID == "" {
		response.BadRequest(c, "Item ID is required")
		return
	}

	var req request.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	item, err := h.inventoryService.UpdateItem(c.Request.Context(), itemID, service.UpdateItemInput{
		Name:              req.Name,
		PurchasePrice:     req.PurchasePrice,
		SalePrice:         req.SalePrice,
		QuantityAvailable: req.QuantityAvailable,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item updated successfully", item)
}

// Delete handles removing an item from inventory
func (h *ItemHandler) Delete(c *gin.Context) {
	itemID := c.Param("item_id")
	if itemID == "" {
		response.BadRequest(c, "Item ID is required")
		return
	}

	if err := h.inventoryService.DeleteItem(c.Request.Context(), itemID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// GetLowStock handles getting items below the low-stock threshold
func (h *ItemHandler) GetLowStock(c *gin.Context) {
	items, err := h.inventoryService.GetLowStockItems(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Low stock items retrieved successfully", items)
}
