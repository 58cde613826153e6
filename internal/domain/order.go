package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem 只作为 Order 的子记录存在：先于父订单批量创建，
// 随父订单一起批量删除。Position 保留提交顺序。
type OrderItem struct {
	ID        string   `gorm:"primaryKey;size:36" json:"id"`
	OrderID   string   `gorm:"size:36;index" json:"-"`
	ProductID string   `gorm:"size:36;index" json:"productId"`
	Product   *Product `json:"product,omitempty"`
	Quantity  int      `json:"quantity"`
	Position  int      `json:"-"`
}

func (OrderItem) TableName() string { return "order_items" }

// Order 的 TotalPrice 是下单时刻的快照：之后商品调价不回填历史订单。
type Order struct {
	ID               string          `gorm:"primaryKey;size:36" json:"id"`
	Items            []OrderItem     `gorm:"foreignKey:OrderID" json:"orderItems,omitempty"`
	ShippingAddress1 string          `gorm:"size:255" json:"shippingAddress1"`
	ShippingAddress2 string          `gorm:"size:255" json:"shippingAddress2"`
	City             string          `gorm:"size:64" json:"city"`
	Zip              string          `gorm:"size:16" json:"zip"`
	Country          string          `gorm:"size:64" json:"country"`
	Phone            string          `gorm:"size:32" json:"phone"`
	Status           string          `gorm:"size:32;default:Pending" json:"status"`
	TotalPrice       decimal.Decimal `gorm:"type:decimal(12,2)" json:"totalPrice"`
	UserID           string          `gorm:"size:36;index" json:"userId"`
	User             *User           `json:"user,omitempty"`
	DateOrdered      time.Time       `gorm:"autoCreateTime" json:"dateOrdered"`
}

func (Order) TableName() string { return "orders" }

type OrderRepository interface {
	Create(ctx context.Context, o *Order) error
	// FindByID 展开 items→product→category 与 user
	FindByID(ctx context.Context, id string) (*Order, error)
	List(ctx context.Context) ([]Order, error)
	ListByUser(ctx context.Context, userID string) ([]Order, error)
	UpdateStatus(ctx context.Context, id, status string) (*Order, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	TotalSales(ctx context.Context) (decimal.Decimal, error)
}

type OrderItemRepository interface {
	Create(ctx context.Context, item *OrderItem) error
	FindWithProduct(ctx context.Context, id string) (*OrderItem, error)
	AttachOrder(ctx context.Context, itemIDs []string, orderID string) error
	Delete(ctx context.Context, id string) error
}
