package domain

import "errors"

// 仓储层统一的业务错误，handler 据此映射 4xx/5xx
var (
	ErrNotFound           = errors.New("record not found")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrInvalidProduct     = errors.New("invalid product")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrDuplicateEmail     = errors.New("email already in use")
)
