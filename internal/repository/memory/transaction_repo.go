package memory

import (
	"context"
	"fmt"
	"savings_bank/internal/domain"
	"savings_bank/internal/repository"
	"sync"
	"time"
)

// TransactionRepository keeps transactions in insertion order per
// account, which is also chronological order for an append-only log.
type TransactionRepository struct {
	mu           sync.RWMutex
	transactions map[string]*domain.Transaction
	index        map[int64][]string
	order        []string
}

func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{
		transactions: make(map[string]*domain.Transaction),
		index:        make(map[int64][]string),
	}
}

func (r *TransactionRepository) Save(ctx context.Context, tx *domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.transactions[tx.ID]; exists {
		return fmt.Errorf("%w: transaction %s", repository.ErrDuplicate, tx.ID)
	}

	r.transactions[tx.ID] = tx
	r.index[tx.AccountNumber] = append(r.index[tx.AccountNumber], tx.ID)
	r.order = append(r.order, tx.ID)

	return nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tx, exists := r.transactions[id]
	if !exists {
		return nil, fmt.Errorf("%w: transaction %s", repository.ErrNotFound, id)
	}
	return tx, nil
}

// GetByAccount returns the account's transactions oldest first.
// limit <= 0 means no paging.
func (r *TransactionRepository) GetByAccount(ctx context.Context, number int64, limit, offset int) ([]*domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids, exists := r.index[number]
	if !exists {
		return nil, fmt.Errorf("%w: account %d", repository.ErrNotFound, number)
	}

	if limit <= 0 {
		limit = len(ids)
	}

	start := offset
	end := offset + limit
	if end > len(ids) {
		end = len(ids)
	}
	if start >= len(ids) {
		return []*domain.Transaction{}, nil
	}

	result := make([]*domain.Transaction, 0, end-start)
	for _, id := range ids[start:end] {
		result = append(result, r.transactions[id])
	}

	return result, nil
}

func (r *TransactionRepository) GetByType(ctx context.Context, t domain.TransactionType) ([]*domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*domain.Transaction
	for _, id := range r.order {
		if tx := r.transactions[id]; tx.Type == t {
			result = append(result, tx)
		}
	}

	return result, nil
}

func (r *TransactionRepository) GetByPeriod(ctx context.Context, from, to time.Time) ([]*domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*domain.Transaction
	for _, id := range r.order {
		tx := r.transactions[id]
		if !tx.CreatedAt.Before(from) && !tx.CreatedAt.After(to) {
			result = append(result, tx)
		}
	}

	return result, nil
}

func (r *TransactionRepository) CountByAccount(ctx context.Context, number int64) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.index[number]), nil
}
