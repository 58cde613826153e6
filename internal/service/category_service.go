package service

import (
	"context"

	"go-eshop-api/internal/domain"
	"go-eshop-api/pkg/utils"
)

type CategoryService struct {
	categories domain.CategoryRepository
}

func NewCategoryService(categories domain.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

func (s *CategoryService) Get(ctx context.Context, id string) (*domain.Category, error) {
	return s.categories.FindByID(ctx, id)
}

func (s *CategoryService) Create(ctx context.Context, cat *domain.Category) error {
	if cat.ID == "" {
		cat.ID = utils.NewID()
	}
	return s.categories.Create(ctx, cat)
}

func (s *CategoryService) Update(ctx context.Context, cat *domain.Category) error {
	if _, err := s.categories.FindByID(ctx, cat.ID); err != nil {
		return err
	}
	return s.categories.Update(ctx, cat)
}

// Delete 不级联：引用该分类的商品保留悬挂引用
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	return s.categories.Delete(ctx, id)
}
