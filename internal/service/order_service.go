package service

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"go-eshop-api/internal/domain"
	"go-eshop-api/pkg/utils"
)

type OrderItemInput struct {
	ProductID string
	Quantity  int
}

type CreateOrderInput struct {
	Items            []OrderItemInput
	ShippingAddress1 string
	ShippingAddress2 string
	City             string
	Zip              string
	Country          string
	Phone            string
	Status           string
	UserID           string
}

type OrderService struct {
	orders domain.OrderRepository
	items  domain.OrderItemRepository
	log    *zap.Logger
}

func NewOrderService(orders domain.OrderRepository, items domain.OrderItemRepository, log *zap.Logger) *OrderService {
	if log == nil {
		log = zap.NewNop()
	}
	return &OrderService{orders: orders, items: items, log: log}
}

// Create 分四步：并发建行项 → 并发取价算小计 → 求和 → 建订单并挂接行项。
// 第一步之后的任何失败都会尽力删除已建行项，避免留下孤儿记录。
func (s *OrderService) Create(ctx context.Context, in CreateOrderInput) (*domain.Order, error) {
	itemIDs := make([]string, len(in.Items))

	g, gctx := errgroup.WithContext(ctx)
	for i, it := range in.Items {
		g.Go(func() error {
			item := &domain.OrderItem{
				ID:        utils.NewID(),
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
				Position:  i,
			}
			if err := s.items.Create(gctx, item); err != nil {
				return err
			}
			itemIDs[i] = item.ID
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.discardItems(ctx, itemIDs)
		return nil, err
	}

	subtotals := make([]decimal.Decimal, len(itemIDs))
	g2, gctx2 := errgroup.WithContext(ctx)
	for i, id := range itemIDs {
		g2.Go(func() error {
			item, err := s.items.FindWithProduct(gctx2, id)
			if err != nil {
				return err
			}
			if item.Product == nil {
				return domain.ErrInvalidProduct
			}
			subtotals[i] = item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
			return nil
		})
	}
	if err := g2.Wait(); err != nil {
		s.discardItems(ctx, itemIDs)
		return nil, err
	}

	total := decimal.Zero
	for _, sub := range subtotals {
		total = total.Add(sub)
	}

	status := in.Status
	if status == "" {
		status = "Pending"
	}
	order := &domain.Order{
		ID:               utils.NewID(),
		ShippingAddress1: in.ShippingAddress1,
		ShippingAddress2: in.ShippingAddress2,
		City:             in.City,
		Zip:              in.Zip,
		Country:          in.Country,
		Phone:            in.Phone,
		Status:           status,
		TotalPrice:       total,
		UserID:           in.UserID,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		s.discardItems(ctx, itemIDs)
		return nil, err
	}
	if err := s.items.AttachOrder(ctx, itemIDs, order.ID); err != nil {
		if derr := s.orders.Delete(ctx, order.ID); derr != nil {
			s.log.Warn("orphaned order after attach failure", zap.String("order", order.ID), zap.Error(derr))
		}
		s.discardItems(ctx, itemIDs)
		return nil, err
	}

	created, err := s.orders.FindByID(ctx, order.ID)
	if err != nil {
		return order, nil
	}
	return created, nil
}

func (s *OrderService) Get(ctx context.Context, id string) (*domain.Order, error) {
	return s.orders.FindByID(ctx, id)
}

func (s *OrderService) List(ctx context.Context) ([]domain.Order, error) {
	return s.orders.List(ctx)
}

func (s *OrderService) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

func (s *OrderService) UpdateStatus(ctx context.Context, id, status string) (*domain.Order, error) {
	return s.orders.UpdateStatus(ctx, id, status)
}

// Delete 先删父订单再清理行项；行项删除失败只记日志，不向调用方暴露。
// 订单不存在时不做任何行项清理。
func (s *OrderService) Delete(ctx context.Context, id string) error {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.orders.Delete(ctx, id); err != nil {
		return err
	}
	for _, it := range order.Items {
		if err := s.items.Delete(ctx, it.ID); err != nil && !errors.Is(err, domain.ErrNotFound) {
			s.log.Warn("order item cleanup failed", zap.String("order", id), zap.String("item", it.ID), zap.Error(err))
		}
	}
	return nil
}

func (s *OrderService) Count(ctx context.Context) (int64, error) {
	return s.orders.Count(ctx)
}

// TotalSales 无订单时返回 0，不报错。
func (s *OrderService) TotalSales(ctx context.Context) (decimal.Decimal, error) {
	return s.orders.TotalSales(ctx)
}

func (s *OrderService) discardItems(ctx context.Context, itemIDs []string) {
	for _, id := range itemIDs {
		if id == "" {
			continue
		}
		if err := s.items.Delete(ctx, id); err != nil && !errors.Is(err, domain.ErrNotFound) {
			s.log.Warn("order item rollback failed", zap.String("item", id), zap.Error(err))
		}
	}
}
