package repository

import (
	"context"
	"errors"
	"savings_bank/internal/domain"
	"time"
)

type AccountRepository interface {
	Save(ctx context.Context, account domain.Account) error
	GetByNumber(ctx context.Context, number int64) (domain.Account, error)
	GetByOwner(ctx context.Context, owner string) ([]domain.Account, error)
	GetAll(ctx context.Context) ([]domain.Account, error)
	Exists(ctx context.Context, number int64) (bool, error)
}

type TransactionRepository interface {
	Save(ctx context.Context, transaction *domain.Transaction) error
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	GetByAccount(ctx context.Context, number int64, limit, offset int) ([]*domain.Transaction, error)
	GetByType(ctx context.Context, t domain.TransactionType) ([]*domain.Transaction, error)
	GetByPeriod(ctx context.Context, from, to time.Time) ([]*domain.Transaction, error)
	CountByAccount(ctx context.Context, number int64) (int, error)
}

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate entry")
)
