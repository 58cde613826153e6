package service

import (
	"context"
	"sync"
	"testing"

	"go.uber.org/zap"

	"go-eshop-api/internal/domain"
	"go-eshop-api/internal/repo"
)

type fixture struct {
	store      *repo.MemoryStore
	categories *CategoryService
	products   *ProductService
	orders     *OrderService
	items      *recordingItems
}

func setup(t *testing.T) *fixture {
	t.Helper()
	store := repo.NewMemoryStore()
	items := &recordingItems{OrderItemRepository: store.Items()}
	return &fixture{
		store:      store,
		categories: NewCategoryService(store.Categories()),
		products:   NewProductService(store.Products(), store.Categories(), nil),
		orders:     NewOrderService(store.Orders(), items, zap.NewNop()),
		items:      items,
	}
}

// recordingItems 记录创建/删除过的行项 id，便于断言补偿删除
type recordingItems struct {
	domain.OrderItemRepository
	mu      sync.Mutex
	created []string
	deleted []string
}

func (r *recordingItems) Create(ctx context.Context, item *domain.OrderItem) error {
	err := r.OrderItemRepository.Create(ctx, item)
	if err == nil {
		r.mu.Lock()
		r.created = append(r.created, item.ID)
		r.mu.Unlock()
	}
	return err
}

func (r *recordingItems) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	r.deleted = append(r.deleted, id)
	r.mu.Unlock()
	return r.OrderItemRepository.Delete(ctx, id)
}

func (r *recordingItems) snapshot() (created, deleted []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.created...), append([]string(nil), r.deleted...)
}
