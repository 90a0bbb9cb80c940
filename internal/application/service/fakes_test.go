package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cutiefy/pos-api/internal/domain/entity"
	"github.com/cutiefy/pos-api/internal/domain/repository"
	"github.com/cutiefy/pos-api/pkg/email"
)

// fakeItemRepo is an in-memory ItemRepository keyed by business ItemID.
type fakeItemRepo struct {
	mu    sync.Mutex
	items map[string]*entity.Item

	getErr       error
	createErr    error
	decrementErr error
}

func newFakeItemRepo(items ...entity.Item) *fakeItemRepo {
	repo := &fakeItemRepo{items: make(map[string]*entity.Item)}
	for i := range items {
		item := items[i]
		repo.items[item.ItemID] = &item
	}
	return repo
}

func (r *fakeItemRepo) Create(ctx context.Context, item *entity.Item) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *item
	r.items[item.ItemID] = &stored
	return nil
}

func (r *fakeItemRepo) GetByItemID(ctx context.Context, itemID string) (*entity.Item, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[itemID]
	if !ok {
		return nil, nil
	}
	copied := *item
	return &copied, nil
}

func (r *fakeItemRepo) Update(ctx context.Context, item *entity.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *item
	r.items[item.ItemID] = &stored
	return nil
}

func (r *fakeItemRepo) Delete(ctx context.Context, itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, itemID)
	return nil
}

func (r *fakeItemRepo) List(ctx context.Context, params *repository.ItemFilterParams) ([]entity.Item, int64, error) {
	all, err := r.ListAll(ctx)
	if err != nil {
		return nil, 0, err
	}

	filtered := make([]entity.Item, 0, len(all))
	for _, item := range all {
		if params.Search != "" && !strings.Contains(strings.ToLower(item.Name), strings.ToLower(params.Search)) {
			continue
		}
		if params.LowStock && item.QuantityAvailable >= params.LowStockThreshold {
			continue
		}
		filtered = append(filtered, item)
	}

	total := int64(len(filtered))
	offset := params.Pagination.Offset()
	if offset > len(filtered) {
		offset = len(filtered)
	}
	end := offset + params.Pagination.PerPage
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end], total, nil
}

func (r *fakeItemRepo) ListAll(ctx context.Context) ([]entity.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]entity.Item, 0, len(r.items))
	for _, item := range r.items {
		all = append(all, *item)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ItemID < all[j].ItemID })
	return all, nil
}

func (r *fakeItemRepo) GetLowStock(ctx context.Context, threshold int) ([]entity.Item, error) {
	all, _ := r.ListAll(ctx)
	low := make([]entity.Item, 0)
	for _, item := range all {
		if item.QuantityAvailable < threshold {
			low = append(low, item)
		}
	}
	return low, nil
}

func (r *fakeItemRepo) DecrementQuantity(ctx context.Context, itemID string, amount int) (int, error) {
	if r.decrementErr != nil {
		return 0, r.decrementErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[itemID]
	if !ok {
		return 0, nil
	}
	item.QuantityAvailable -= amount
	if item.QuantityAvailable < 0 {
		item.QuantityAvailable = 0
	}
	return item.QuantityAvailable, nil
}

// quantity reads an item's current stock directly, bypassing the interface.
func (r *fakeItemRepo) quantity(itemID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if item, ok := r.items[itemID]; ok {
		return item.QuantityAvailable
	}
	return -1
}

// fakeSaleRepo is an in-memory append-only SaleRepository.
type fakeSaleRepo struct {
	mu    sync.Mutex
	sales []entity.Sale

	createErr error
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{}
}

func (r *fakeSaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sales = append(r.sales, *sale)
	return nil
}

func (r *fakeSaleRepo) ListInRange(ctx context.Context, start, end time.Time) ([]entity.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matched := make([]entity.Sale, 0)
	for _, sale := range r.sales {
		if !sale.CreatedAt.Before(start) && !sale.CreatedAt.After(end) {
			matched = append(matched, sale)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.Before(matched[j].CreatedAt) })
	return matched, nil
}

// fakeMailer records receipts instead of sending them.
type fakeMailer struct {
	mu       sync.Mutex
	sent     []email.ReceiptData
	sendErr  error
	lastAddr string
}

func (m *fakeMailer) SendReceipt(toEmail string, data email.ReceiptData) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastAddr = toEmail
	m.sent = append(m.sent, data)
	return nil
}
