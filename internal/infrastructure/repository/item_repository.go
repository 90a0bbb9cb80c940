package repository

import (
	"context"
	"errors"

	"github.com/cutiefy/pos-api/internal/domain/entity"
	domainRepo "github.com/cutiefy/pos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type itemRepository struct {
	db *gorm.DB
}

// NewItemRepository creates a new inventory repository
func NewItemRepository(db *gorm.DB) domainRepo.ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(ctx context.Context, item *entity.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *itemRepository) GetByItemID(ctx context.Context, itemID string) (*entity.Item, error) {
	var item entity.Item
	err := r.db.WithContext(ctx).First(&item, "item_id = ?", itemID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepository) Update(ctx context.Context, item *entity.Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *itemRepository) Delete(ctx context.Context, itemID string) error {
	return r.db.WithContext(ctx).Delete(&entity.Item{}, "item_id = ?", itemID).Error
}

func (r *itemRepository) List(ctx context.Context, params *domainRepo.ItemFilterParams) ([]entity.Item, int64, error) {
	var items []entity.Item
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Item{})

	if params.Search != "" {
		query = query.Where("name ILIKE ? OR item_id ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.LowStock {
		query = query.Where("quantity_available < ?", params.LowStockThreshold)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("name ASC").
		Find(&items).Error

	return items, total, err
}

func (r *itemRepository) ListAll(ctx context.Context) ([]entity.Item, error) {
	var items []entity.Item
	err := r.db.WithContext(ctx).Order("name ASC").Find(&items).Error
	return items, err
}

func (r *itemRepository) GetLowStock(ctx context.Context, threshold int) ([]entity.Item, error) {
	var items []entity.Item
	err := r.db.WithContext(ctx).
		Where("quantity_available < ?", threshold).
		Order("quantity_available ASC").
		Find(&items).Error
	return items, err
}

// DecrementQuantity subtracts amount from the available quantity in a
// single guarded UPDATE so the floor at zero holds even when another
// actor decremented the same item in between:
// UPDATE items SET quantity_available = GREATEST(quantity_available - ?, 0) WHERE item_id = ?
func (r *itemRepository) DecrementQuantity(ctx context.Context, itemID string, amount int) (int, error) {
	result := r.db.WithContext(ctx).Model(&entity.Item{}).
		Where("item_id = ?", itemID).
		Update("quantity_available", gorm.Expr("GREATEST(quantity_available - ?, 0)", amount))
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		// Item vanished between cart-add and settlement. The sale still
		// goes through; there is simply no stock left to decrement.
		return 0, nil
	}

	var item entity.Item
	err := r.db.WithContext(ctx).Select("quantity_available").First(&item, "item_id = ?", itemID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return item.QuantityAvailable, nil
}
