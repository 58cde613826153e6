package repo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"go-eshop-api/internal/domain"
)

// MemoryStore 内存实现，供测试与本地联调使用。
// 实现 domain 下全部仓储接口；写操作持锁，读操作拷贝后返回。
type MemoryStore struct {
	mu         sync.RWMutex
	categories map[string]domain.Category
	products   map[string]domain.Product
	users      map[string]domain.User
	orders     map[string]domain.Order
	items      map[string]domain.OrderItem
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		categories: map[string]domain.Category{},
		products:   map[string]domain.Product{},
		users:      map[string]domain.User{},
		orders:     map[string]domain.Order{},
		items:      map[string]domain.OrderItem{},
	}
}

// ---- categories ----

func (m *MemoryStore) Create(ctx context.Context, cat *domain.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories[cat.ID] = *cat
	return nil
}

func (m *MemoryStore) FindByID(ctx context.Context, id string) (*domain.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cat, ok := m.categories[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &cat, nil
}

func (m *MemoryStore) List(ctx context.Context) ([]domain.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Category, 0, len(m.categories))
	for _, cat := range m.categories {
		out = append(out, cat)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) Update(ctx context.Context, cat *domain.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories[cat.ID] = *cat
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.categories, id)
	return nil
}

// ---- products ----

func (m *MemoryStore) CreateProduct(ctx context.Context, p *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.DateCreated.IsZero() {
		p.DateCreated = time.Now()
	}
	cp := *p
	cp.Category = nil
	m.products[p.ID] = cp
	return nil
}

func (m *MemoryStore) FindProductByID(ctx context.Context, id string) (*domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	m.populateCategory(&p)
	return &p, nil
}

func (m *MemoryStore) ListProducts(ctx context.Context, categoryIDs []string) ([]domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	allow := map[string]struct{}{}
	for _, id := range categoryIDs {
		allow[id] = struct{}{}
	}
	var out []domain.Product
	for _, p := range m.products {
		if len(allow) > 0 {
			if _, ok := allow[p.CategoryID]; !ok {
				continue
			}
		}
		m.populateCategory(&p)
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) UpdateProduct(ctx context.Context, p *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	cp.Category = nil
	m.products[p.ID] = cp
	return nil
}

func (m *MemoryStore) DeleteProduct(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *MemoryStore) CountProducts(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.products)), nil
}

func (m *MemoryStore) FeaturedProducts(ctx context.Context, limit int) ([]domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []domain.Product
	for _, p := range m.products {
		if p.IsFeatured {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryStore) populateCategory(p *domain.Product) {
	if cat, ok := m.categories[p.CategoryID]; ok {
		c := cat
		p.Category = &c
	} else {
		p.Category = nil // dangling reference after category delete
	}
}

// ---- users ----

func (m *MemoryStore) CreateUser(ctx context.Context, u *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.emailTaken(u.Email, u.ID) {
		return domain.ErrDuplicateEmail
	}
	if u.DateCreated.IsZero() {
		u.DateCreated = time.Now()
	}
	m.users[u.ID] = *u
	return nil
}

func (m *MemoryStore) FindUserByID(ctx context.Context, id string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (m *MemoryStore) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MemoryStore) ListUsers(ctx context.Context) ([]domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) UpdateUser(ctx context.Context, u *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.emailTaken(u.Email, u.ID) {
		return domain.ErrDuplicateEmail
	}
	m.users[u.ID] = *u
	return nil
}

// emailTaken 等价于库里的 email 唯一索引；调用方需持锁
func (m *MemoryStore) emailTaken(email, selfID string) bool {
	for id, u := range m.users {
		if u.Email == email && id != selfID {
			return true
		}
	}
	return false
}

func (m *MemoryStore) DeleteUser(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *MemoryStore) CountUsers(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.users)), nil
}

// ---- orders ----

func (m *MemoryStore) CreateOrder(ctx context.Context, o *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if o.DateOrdered.IsZero() {
		o.DateOrdered = time.Now()
	}
	if o.Status == "" {
		o.Status = "Pending"
	}
	cp := *o
	cp.Items = nil
	cp.User = nil
	m.orders[o.ID] = cp
	return nil
}

func (m *MemoryStore) FindOrderByID(ctx context.Context, id string) (*domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	m.expandOrder(&o)
	return &o, nil
}

func (m *MemoryStore) ListOrders(ctx context.Context) ([]domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Order, 0, len(m.orders))
	for _, o := range m.orders {
		m.populateUser(&o)
		out = append(out, o)
	}
	sortOrdersNewestFirst(out)
	return out, nil
}

func (m *MemoryStore) ListOrdersByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []domain.Order
	for _, o := range m.orders {
		if o.UserID != userID {
			continue
		}
		m.expandOrder(&o)
		out = append(out, o)
	}
	sortOrdersNewestFirst(out)
	return out, nil
}

func (m *MemoryStore) UpdateOrderStatus(ctx context.Context, id, status string) (*domain.Order, error) {
	m.mu.Lock()
	o, ok := m.orders[id]
	if !ok {
		m.mu.Unlock()
		return nil, domain.ErrNotFound
	}
	o.Status = status
	m.orders[id] = o
	m.mu.Unlock()
	return m.FindOrderByID(ctx, id)
}

func (m *MemoryStore) DeleteOrder(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.orders[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.orders, id)
	return nil
}

func (m *MemoryStore) CountOrders(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.orders)), nil
}

func (m *MemoryStore) TotalSales(ctx context.Context) (decimal.Decimal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	total := decimal.Zero
	for _, o := range m.orders {
		total = total.Add(o.TotalPrice)
	}
	return total, nil
}

func (m *MemoryStore) expandOrder(o *domain.Order) {
	m.populateUser(o)
	var items []domain.OrderItem
	for _, it := range m.items {
		if it.OrderID != o.ID {
			continue
		}
		m.populateItemProduct(&it)
		items = append(items, it)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Position < items[j].Position })
	o.Items = items
}

func (m *MemoryStore) populateUser(o *domain.Order) {
	if u, ok := m.users[o.UserID]; ok {
		cp := u
		o.User = &cp
	} else {
		o.User = nil
	}
}

func sortOrdersNewestFirst(os []domain.Order) {
	sort.SliceStable(os, func(i, j int) bool { return os[i].DateOrdered.After(os[j].DateOrdered) })
}

// ---- order items ----

func (m *MemoryStore) CreateOrderItem(ctx context.Context, item *domain.OrderItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *item
	cp.Product = nil
	m.items[item.ID] = cp
	return nil
}

func (m *MemoryStore) FindOrderItemWithProduct(ctx context.Context, id string) (*domain.OrderItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	it, ok := m.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	m.populateItemProduct(&it)
	return &it, nil
}

func (m *MemoryStore) AttachOrderItems(ctx context.Context, itemIDs []string, orderID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range itemIDs {
		if it, ok := m.items[id]; ok {
			it.OrderID = orderID
			m.items[id] = it
		}
	}
	return nil
}

func (m *MemoryStore) DeleteOrderItem(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *MemoryStore) populateItemProduct(it *domain.OrderItem) {
	if p, ok := m.products[it.ProductID]; ok {
		m.populateCategory(&p)
		it.Product = &p
	} else {
		it.Product = nil
	}
}

// 接口适配器：一个 MemoryStore 充当全部仓储

type memProducts struct{ *MemoryStore }

func (m memProducts) Create(ctx context.Context, p *domain.Product) error {
	return m.CreateProduct(ctx, p)
}
func (m memProducts) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	return m.FindProductByID(ctx, id)
}
func (m memProducts) List(ctx context.Context, categoryIDs []string) ([]domain.Product, error) {
	return m.ListProducts(ctx, categoryIDs)
}
func (m memProducts) Update(ctx context.Context, p *domain.Product) error {
	return m.UpdateProduct(ctx, p)
}
func (m memProducts) Delete(ctx context.Context, id string) error {
	return m.DeleteProduct(ctx, id)
}
func (m memProducts) Count(ctx context.Context) (int64, error) { return m.CountProducts(ctx) }
func (m memProducts) Featured(ctx context.Context, limit int) ([]domain.Product, error) {
	return m.FeaturedProducts(ctx, limit)
}

type memUsers struct{ *MemoryStore }

func (m memUsers) Create(ctx context.Context, u *domain.User) error { return m.CreateUser(ctx, u) }
func (m memUsers) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return m.FindUserByID(ctx, id)
}
func (m memUsers) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.FindUserByEmail(ctx, email)
}
func (m memUsers) List(ctx context.Context) ([]domain.User, error) { return m.ListUsers(ctx) }
func (m memUsers) Update(ctx context.Context, u *domain.User) error {
	return m.UpdateUser(ctx, u)
}
func (m memUsers) Delete(ctx context.Context, id string) error { return m.DeleteUser(ctx, id) }
func (m memUsers) Count(ctx context.Context) (int64, error)    { return m.CountUsers(ctx) }

type memOrders struct{ *MemoryStore }

func (m memOrders) Create(ctx context.Context, o *domain.Order) error { return m.CreateOrder(ctx, o) }
func (m memOrders) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	return m.FindOrderByID(ctx, id)
}
func (m memOrders) List(ctx context.Context) ([]domain.Order, error) { return m.ListOrders(ctx) }
func (m memOrders) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return m.ListOrdersByUser(ctx, userID)
}
func (m memOrders) UpdateStatus(ctx context.Context, id, status string) (*domain.Order, error) {
	return m.UpdateOrderStatus(ctx, id, status)
}
func (m memOrders) Delete(ctx context.Context, id string) error { return m.DeleteOrder(ctx, id) }
func (m memOrders) Count(ctx context.Context) (int64, error)    { return m.CountOrders(ctx) }

type memItems struct{ *MemoryStore }

func (m memItems) Create(ctx context.Context, item *domain.OrderItem) error {
	return m.CreateOrderItem(ctx, item)
}
func (m memItems) FindWithProduct(ctx context.Context, id string) (*domain.OrderItem, error) {
	return m.FindOrderItemWithProduct(ctx, id)
}
func (m memItems) AttachOrder(ctx context.Context, itemIDs []string, orderID string) error {
	return m.AttachOrderItems(ctx, itemIDs, orderID)
}
func (m memItems) Delete(ctx context.Context, id string) error { return m.DeleteOrderItem(ctx, id) }

func (m *MemoryStore) Categories() domain.CategoryRepository { return m }
func (m *MemoryStore) Products() domain.ProductRepository    { return memProducts{m} }
func (m *MemoryStore) Users() domain.UserRepository          { return memUsers{m} }
func (m *MemoryStore) Orders() domain.OrderRepository        { return memOrders{m} }
func (m *MemoryStore) Items() domain.OrderItemRepository     { return memItems{m} }
