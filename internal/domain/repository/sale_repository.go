package repository

import (
	"context"
	"time"

	"github.com/cutiefy/pos-api/internal/domain/entity"
)

// SaleRepository defines the interface for the sales store. Sales are
// append-only: there is no update or delete.
type SaleRepository interface {
	// Create persists the sale together with its lines in one transaction.
	Create(ctx context.Context, sale *entity.Sale) error
	// ListInRange returns all sales whose timestamp falls within
	// [start, end] inclusive, lines preloaded, oldest first.
	ListInRange(ctx context.Context, start, end time.Time) ([]entity.Sale, error)
}
