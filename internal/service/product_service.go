package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-eshop-api/internal/core/cache"
	"go-eshop-api/internal/domain"
	"go-eshop-api/pkg/utils"
)

const featuredCacheTTL = 30 * time.Second

type ProductService struct {
	products   domain.ProductRepository
	categories domain.CategoryRepository
	cache      *cache.Cache // 可为 nil（测试/无 Redis 部署）
}

func NewProductService(products domain.ProductRepository, categories domain.CategoryRepository, ch *cache.Cache) *ProductService {
	return &ProductService{products: products, categories: categories, cache: ch}
}

func (s *ProductService) List(ctx context.Context, categoryIDs []string) ([]domain.Product, error) {
	return s.products.List(ctx, categoryIDs)
}

func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.FindByID(ctx, id)
}

// Create 先校验分类外键（fail-fast，不依赖库约束），再落库。
func (s *ProductService) Create(ctx context.Context, p *domain.Product) error {
	if err := s.checkCategory(ctx, p.CategoryID); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = utils.NewID()
	}
	return s.products.Create(ctx, p)
}

// Update 不接受客户端的 dateCreated：沿用库里的建档时间
func (s *ProductService) Update(ctx context.Context, p *domain.Product) error {
	existing, err := s.products.FindByID(ctx, p.ID)
	if err != nil {
		return err
	}
	if err := s.checkCategory(ctx, p.CategoryID); err != nil {
		return err
	}
	p.DateCreated = existing.DateCreated
	return s.products.Update(ctx, p)
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	return s.products.Delete(ctx, id)
}

func (s *ProductService) Count(ctx context.Context) (int64, error) {
	return s.products.Count(ctx)
}

func (s *ProductService) Featured(ctx context.Context, limit int) ([]domain.Product, error) {
	load := func(ctx context.Context) (*[]domain.Product, error) {
		ps, err := s.products.Featured(ctx, limit)
		if err != nil {
			return nil, err
		}
		return &ps, nil
	}
	if s.cache == nil {
		ps, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return *ps, nil
	}
	key := fmt.Sprintf("products:featured:%d", limit)
	ps, err := cache.GetOrLoadJSON(s.cache, ctx, key, featuredCacheTTL, load)
	if err != nil {
		return nil, err
	}
	if ps == nil {
		return nil, nil
	}
	return *ps, nil
}

func (s *ProductService) checkCategory(ctx context.Context, categoryID string) error {
	_, err := s.categories.FindByID(ctx, categoryID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrInvalidCategory
	}
	return err
}
