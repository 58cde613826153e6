package service

import (
	"context"
	"errors"

	"go-eshop-api/internal/core/auth"
	"go-eshop-api/internal/domain"
	"go-eshop-api/pkg/utils"
)

type UserService struct {
	users domain.UserRepository
	jwter *auth.JWTer
}

func NewUserService(users domain.UserRepository, jwter *auth.JWTer) *UserService {
	return &UserService{users: users, jwter: jwter}
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

// Create 也承载 /register：两者行为一致
func (s *UserService) Create(ctx context.Context, u *domain.User, password string) error {
	if u.ID == "" {
		u.ID = utils.NewID()
	}
	u.PasswordHash = utils.HashPassword(password)
	return s.users.Create(ctx, u)
}

// Update 仅在请求携带新明文密码时重新散列，否则沿用既有散列。
func (s *UserService) Update(ctx context.Context, u *domain.User, password string) error {
	existing, err := s.users.FindByID(ctx, u.ID)
	if err != nil {
		return err
	}
	if password != "" {
		u.PasswordHash = utils.HashPassword(password)
	} else {
		u.PasswordHash = existing.PasswordHash
	}
	u.DateCreated = existing.DateCreated
	return s.users.Update(ctx, u)
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.users.Delete(ctx, id)
}

func (s *UserService) Count(ctx context.Context) (int64, error) {
	return s.users.Count(ctx)
}

// Login 对未知邮箱和密码错误返回同一个错误，不向客户端区分两种情况。
func (s *UserService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, "", domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}
	if !utils.CheckPassword(password, u.PasswordHash) {
		return nil, "", domain.ErrInvalidCredentials
	}
	token, err := s.jwter.Issue(u.ID, u.IsAdmin)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}
