package repository

import (
	"context"

	"github.com/cutiefy/pos-api/internal/domain/entity"
	"github.com/cutiefy/pos-api/pkg/pagination"
)

// ItemRepository defines the interface for inventory data operations.
// Uniqueness of the business ItemID is enforced by the inventory service,
// not by the store.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	// GetByItemID looks an item up by its business identifier.
	// Returns (nil, nil) when the item does not exist.
	GetByItemID(ctx context.Context, itemID string) (*entity.Item, error)
	Update(ctx context.Context, item *entity.Item) error
	Delete(ctx context.Context, itemID string) error
	List(ctx context.Context, params *ItemFilterParams) ([]entity.Item, int64, error)
	// ListAll returns the full inventory without pagination, for cart
	// pickers and report cost fallbacks.
	ListAll(ctx context.Context) ([]entity.Item, error)
	GetLowStock(ctx context.Context, threshold int) ([]entity.Item, error)
	// DecrementQuantity subtracts amount from the item's available quantity
	// in a single guarded update, clamping at zero, and returns the new
	// quantity. A vanished item yields (0, nil).
	DecrementQuantity(ctx context.Context, itemID string, amount int) (int, error)
}

// ItemFilterParams contains filtering parameters for inventory queries
type ItemFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	LowStock   bool
	// LowStockThreshold is only consulted when LowStock is set.
	LowStockThreshold int
}
