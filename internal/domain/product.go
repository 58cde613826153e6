package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID              string          `gorm:"primaryKey;size:36" json:"id"`
	Name            string          `gorm:"size:255;not null" json:"name"`
	Description     string          `gorm:"size:1024" json:"description"`
	RichDescription string          `gorm:"type:text" json:"richDescription"`
	Image           string          `gorm:"size:512" json:"image"`
	Brand           string          `gorm:"size:128" json:"brand"`
	Price           decimal.Decimal `gorm:"type:decimal(12,2)" json:"price"`
	CategoryID      string          `gorm:"size:36;index" json:"categoryId"`
	Category        *Category       `json:"category,omitempty"`
	CountInStock    int             `json:"countInStock"`
	Rating          float64         `json:"rating"`
	NumReviews      int             `json:"numReviews"`
	IsFeatured      bool            `json:"isFeatured"`
	DateCreated     time.Time       `gorm:"autoCreateTime" json:"dateCreated"`
}

func (Product) TableName() string { return "products" }

type ProductRepository interface {
	Create(ctx context.Context, p *Product) error
	FindByID(ctx context.Context, id string) (*Product, error)
	// List 按 categoryIDs 过滤；空集合返回全部
	List(ctx context.Context, categoryIDs []string) ([]Product, error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	Featured(ctx context.Context, limit int) ([]Product, error)
}
