package service

import (
	"context"

	"github.com/cutiefy/pos-api/internal/domain/repository"
	"go.uber.org/zap"
)

// CartService implements the cart engine: it validates every add against a
// fresh inventory read and re-checks the whole cart immediately before
// settlement.
type CartService struct {
	items  repository.ItemRepository
	logger *zap.Logger
}

// NewCartService creates a new cart service
func NewCartService(items repository.ItemRepository, logger *zap.Logger) *CartService {
	return &CartService{items: items, logger: logger}
}

// AddToCart merges the requested quantity into the session's cart after
// re-reading the item's current availability and sale price. The quantity
// already in the cart counts against availability, and a merged line's
// total is always recomputed from the freshly fetched price so price
// changes between browse and add are honored.
func (s *CartService) AddToCart(ctx context.Context, session *CartSession, itemID string, quantity int) error {
	item, err := s.items.GetByItemID(ctx, itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return &ItemRemovedError{ItemID: itemID, ItemName: itemID}
	}

	inCart := session.QuantityInCart(itemID)
	if inCart+quantity > item.QuantityAvailable {
		canAdd := item.QuantityAvailable - inCart
		if canAdd < 0 {
			canAdd = 0
		}
		s.logger.Warn("add to cart rejected, out of stock",
			zap.String("item_id", itemID),
			zap.Int("requested", quantity),
			zap.Int("in_cart", inCart),
			zap.Int("available", item.QuantityAvailable),
		)
		return &OutOfStockError{
			ItemID:   itemID,
			ItemName: item.Name,
			InCart:   inCart,
			CanAdd:   canAdd,
		}
	}

	if i, ok := session.index[itemID]; ok {
		line := &session.Lines[i]
		line.Quantity += quantity
		line.SalePrice = item.SalePrice
		line.Total = item.SalePrice * float64(line.Quantity)
	} else {
		session.index[itemID] = len(session.Lines)
		session.Lines = append(session.Lines, CartLine{
			ItemID:    item.ItemID,
			ItemName:  item.Name,
			SalePrice: item.SalePrice,
			Quantity:  quantity,
			Total:     item.SalePrice * float64(quantity),
		})
	}

	s.logger.Info("added to cart",
		zap.String("session_id", session.ID.String()),
		zap.String("item_id", itemID),
		zap.Int("quantity", quantity),
	)
	return nil
}

// RemoveFromCart drops the line at the given position. An out-of-range
// index is silently ignored.
func (s *CartService) RemoveFromCart(session *CartSession, index int) {
	if index < 0 || index >= len(session.Lines) {
		return
	}

	removed := session.Lines[index]
	session.Lines = append(session.Lines[:index], session.Lines[index+1:]...)
	delete(session.index, removed.ItemID)
	for i := range session.Lines {
		session.index[session.Lines[i].ItemID] = i
	}
}

// ValidateCart re-checks every line against current inventory. This is the
// single consistency checkpoint before settlement: another terminal may
// have reduced stock, or deleted an item, since the lines were added.
func (s *CartService) ValidateCart(ctx context.Context, session *CartSession) error {
	for _, line := range session.Lines {
		item, err := s.items.GetByItemID(ctx, line.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return &ItemRemovedError{ItemID: line.ItemID, ItemName: line.ItemName}
		}
		if item.QuantityAvailable < line.Quantity {
			return &InsufficientStockError{
				ItemID:    line.ItemID,
				ItemName:  line.ItemName,
				Requested: line.Quantity,
				Available: item.QuantityAvailable,
			}
		}
	}
	return nil
}
