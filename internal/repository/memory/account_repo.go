package memory

import (
	"context"
	"fmt"
	"savings_bank/internal/domain"
	"savings_bank/internal/repository"
	"sort"
	"sync"
)

type AccountRepository struct {
	mu         sync.RWMutex
	accounts   map[int64]domain.Account
	ownerIndex map[string][]int64
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		accounts:   make(map[int64]domain.Account),
		ownerIndex: make(map[string][]int64),
	}
}

func (r *AccountRepository) Save(ctx context.Context, account domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.accounts[account.Number()]; exists {
		return fmt.Errorf("%w: account %d", repository.ErrDuplicate, account.Number())
	}

	r.accounts[account.Number()] = account
	r.ownerIndex[account.Owner()] = append(r.ownerIndex[account.Owner()], account.Number())

	return nil
}

func (r *AccountRepository) GetByNumber(ctx context.Context, number int64) (domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, exists := r.accounts[number]
	if !exists {
		return nil, fmt.Errorf("%w: account %d", repository.ErrNotFound, number)
	}
	return account, nil
}

func (r *AccountRepository) GetByOwner(ctx context.Context, owner string) ([]domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	numbers, exists := r.ownerIndex[owner]
	if !exists {
		return nil, fmt.Errorf("%w: owner %s", repository.ErrNotFound, owner)
	}

	var result []domain.Account
	for _, number := range numbers {
		if account, exists := r.accounts[number]; exists {
			result = append(result, account)
		}
	}

	return result, nil
}

func (r *AccountRepository) GetAll(ctx context.Context) ([]domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Account, 0, len(r.accounts))
	for _, account := range r.accounts {
		result = append(result, account)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Number() < result[j].Number()
	})

	return result, nil
}

func (r *AccountRepository) Exists(ctx context.Context, number int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.accounts[number]
	return exists, nil
}
