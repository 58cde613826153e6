package domain

import (
	"context"
	"time"
)

type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Name         string    `gorm:"size:64" json:"name"`
	Email        string    `gorm:"uniqueIndex;size:191" json:"email"`
	PasswordHash string    `gorm:"size:191" json:"-"`
	Phone        string    `gorm:"size:32" json:"phone"`
	IsAdmin      bool      `json:"isAdmin"`
	Street       string    `gorm:"size:255" json:"street"`
	Apartment    string    `gorm:"size:64" json:"apartment"`
	Zip          string    `gorm:"size:16" json:"zip"`
	City         string    `gorm:"size:64" json:"city"`
	Country      string    `gorm:"size:64" json:"country"`
	DateCreated  time.Time `gorm:"autoCreateTime" json:"dateCreated"`
}

func (User) TableName() string { return "users" }

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
