package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/cutiefy/pos-api/internal/domain/entity"
	"github.com/cutiefy/pos-api/internal/domain/repository"
	"github.com/cutiefy/pos-api/pkg/apperror"
	"github.com/cutiefy/pos-api/pkg/pagination"
	"go.uber.org/zap"
)

// InventoryService manages the item catalogue and stock levels.
type InventoryService struct {
	items             repository.ItemRepository
	logger            *zap.Logger
	lowStockThreshold int
}

// NewInventoryService creates a new inventory service
func NewInventoryService(items repository.ItemRepository, logger *zap.Logger, lowStockThreshold int) *InventoryService {
	if lowStockThreshold <= 0 {
		lowStockThreshold = 10
	}
	return &InventoryService{
		items:             items,
		logger:            logger,
		lowStockThreshold: lowStockThreshold,
	}
}

// CreateItemInput contains the fields for adding a new item to inventory.
type CreateItemInput struct {
	ItemID            string
	Name              string
	PurchasePrice     float64
	SalePrice         float64
	QuantityAvailable int
}

// UpdateItemInput contains the mutable fields of an item. The business
// ItemID itself is immutable; pointers distinguish "leave unchanged" from
// an explicit zero.
type UpdateItemInput struct {
	Name              *string
	PurchasePrice     *float64
	SalePrice         *float64
	QuantityAvailable *int
}

// CreateItem adds a new item after checking the business ID is unique.
func (s *InventoryService) CreateItem(ctx context.Context, input CreateItemInput) (*entity.Item, error) {
	if err := validateItemFields(input.ItemID, input.Name, input.PurchasePrice, input.SalePrice, input.QuantityAvailable); err != nil {
		return nil, err
	}

	existing, err := s.items.GetByItemID(ctx, input.ItemID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError(fmt.Sprintf("item with ID '%s' already exists", input.ItemID))
	}

	item := &entity.Item{
		ItemID:            input.ItemID,
		Name:              input.Name,
		PurchasePrice:     input.PurchasePrice,
		SalePrice:         input.SalePrice,
		QuantityAvailable: input.QuantityAvailable,
	}

	if err := s.items.Create(ctx, item); err != nil {
		s.logger.Error("failed to create item", zap.String("item_id", input.ItemID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("item created",
		zap.String("item_id", item.ItemID),
		zap.String("name", item.Name),
		zap.Int("quantity", item.QuantityAvailable),
	)
	return item, nil
}

// GetItem fetches a single item by its business ID.
func (s *InventoryService) GetItem(ctx context.Context, itemID string) (*entity.Item, error) {
	item, err := s.items.GetByItemID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Item")
	}
	return item, nil
}

// UpdateItem applies the provided field changes to an existing item.
func (s *InventoryService) UpdateItem(ctx context.Context, itemID string, input UpdateItemInput) (*entity.Item, error) {
	item, err := s.items.GetByItemID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Item")
	}

	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.PurchasePrice != nil {
		item.PurchasePrice = *input.PurchasePrice
	}
	if input.SalePrice != nil {
		item.SalePrice = *input.SalePrice
	}
	if input.QuantityAvailable != nil {
		item.QuantityAvailable = *input.QuantityAvailable
	}

	if err := validateItemFields(item.ItemID, item.Name, item.PurchasePrice, item.SalePrice, item.QuantityAvailable); err != nil {
		return nil, err
	}

	if err := s.items.Update(ctx, item); err != nil {
		s.logger.Error("failed to update item", zap.String("item_id", itemID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("item updated", zap.String("item_id", item.ItemID))
	return item, nil
}

// DeleteItem removes an item from inventory. Settled sales keep their own
// snapshots, so deleting an item never touches sales history.
func (s *InventoryService) DeleteItem(ctx context.Context, itemID string) error {
	item, err := s.items.GetByItemID(ctx, itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return apperror.NewNotFoundError("Item")
	}

	if err := s.items.Delete(ctx, itemID); err != nil {
		s.logger.Error("failed to delete item", zap.String("item_id", itemID), zap.Error(err))
		return err
	}

	s.logger.Info("item deleted", zap.String("item_id", itemID))
	return nil
}

// ListItems returns a paginated, optionally filtered view of the inventory.
func (s *InventoryService) ListItems(ctx context.Context, params *repository.ItemFilterParams) (*pagination.PaginatedResult[entity.Item], error) {
	if params == nil {
		params = &repository.ItemFilterParams{}
	}
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()
	if params.LowStock && params.LowStockThreshold <= 0 {
		params.LowStockThreshold = s.lowStockThreshold
	}

	items, total, err := s.items.List(ctx, params)
	if err != nil {
		return nil, err
	}

	p := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(items, p), nil
}

// ListAllItems returns the full inventory unfiltered, for cart pickers.
func (s *InventoryService) ListAllItems(ctx context.Context) ([]entity.Item, error) {
	return s.items.ListAll(ctx)
}

// GetLowStockItems returns every item below the configured threshold,
// including those fully out of stock.
func (s *InventoryService) GetLowStockItems(ctx context.Context) ([]entity.Item, error) {
	return s.items.GetLowStock(ctx, s.lowStockThreshold)
}

func validateItemFields(itemID, name string, purchasePrice, salePrice float64, quantity int) error {
	var fieldErrors []apperror.FieldError
	if strings.TrimSpace(itemID) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "item_id", Message: "item ID is required"})
	}
	if strings.TrimSpace(name) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "name is required"})
	}
	if purchasePrice < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "purchase_price", Message: "purchase price cannot be negative"})
	}
	if salePrice < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "sale_price", Message: "sale price cannot be negative"})
	}
	if quantity < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "quantity_available", Message: "quantity cannot be negative"})
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}
