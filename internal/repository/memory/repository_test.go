package memory

import (
	"context"
	"errors"
	"savings_bank/internal/domain"
	"savings_bank/internal/repository"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestAccountRepository_SaveAndGetByNumber(t *testing.T) {
	repo := NewAccountRepository()
	account := domain.NewBasicAccount(1000000001, "Alice", decimal.NewFromInt(100))

	err := repo.Save(context.Background(), account)
	if err != nil {
		t.Fatalf("unexpected error on Save: %v", err)
	}
	got, err := repo.GetByNumber(context.Background(), 1000000001)

	if err != nil {
		t.Fatalf("unexpected error on GetByNumber: %v", err)
	}
	if got.Number() != account.Number() || got.Owner() != account.Owner() || !got.Balance().Equal(account.Balance()) {
		t.Errorf("expected account %+v, got %+v", account, got)
	}
}

func TestAccountRepository_SaveDuplicate(t *testing.T) {
	repo := NewAccountRepository()
	account := domain.NewBasicAccount(1000000001, "Alice", decimal.NewFromInt(100))
	_ = repo.Save(context.Background(), account)

	err := repo.Save(context.Background(), account)

	if !errors.Is(err, repository.ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
}

func TestAccountRepository_GetByNumberNotFound(t *testing.T) {
	repo := NewAccountRepository()

	_, err := repo.GetByNumber(context.Background(), 42)

	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestAccountRepository_GetByOwner(t *testing.T) {
	repo := NewAccountRepository()
	_ = repo.Save(context.Background(), domain.NewBasicAccount(1, "Alice", decimal.NewFromInt(10)))
	_ = repo.Save(context.Background(), domain.NewSavingsAccount(2, "Alice", decimal.NewFromInt(20), decimal.Zero, decimal.Zero))
	_ = repo.Save(context.Background(), domain.NewBasicAccount(3, "Bob", decimal.NewFromInt(30)))

	accounts, err := repo.GetByOwner(context.Background(), "Alice")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(accounts) != 2 {
		t.Errorf("expected 2 accounts for Alice, got %d", len(accounts))
	}
}

func TestAccountRepository_Exists(t *testing.T) {
	repo := NewAccountRepository()
	_ = repo.Save(context.Background(), domain.NewBasicAccount(9, "Eve", decimal.NewFromInt(5)))

	exists, err := repo.Exists(context.Background(), 9)
	if err != nil || !exists {
		t.Errorf("expected account 9 to exist, got exists=%v err=%v", exists, err)
	}

	exists, err = repo.Exists(context.Background(), 10)
	if err != nil || exists {
		t.Errorf("expected account 10 to not exist, got exists=%v err=%v", exists, err)
	}
}

func TestTransactionRepository_SaveAndGetByID(t *testing.T) {
	repo := NewTransactionRepository()
	tx := domain.NewTransaction(1, domain.TypeDeposit, decimal.NewFromInt(100)).
		WithBalance(decimal.NewFromInt(200))

	err := repo.Save(context.Background(), tx)
	if err != nil {
		t.Fatalf("unexpected error on Save: %v", err)
	}
	got, err := repo.GetByID(context.Background(), tx.ID)

	if err != nil {
		t.Fatalf("unexpected error on GetByID: %v", err)
	}
	if got.ID != tx.ID || !got.Amount.Equal(tx.Amount) {
		t.Errorf("expected transaction %+v, got %+v", tx, got)
	}
}

func TestTransactionRepository_GetByAccountChronological(t *testing.T) {
	repo := NewTransactionRepository()
	types := []domain.TransactionType{domain.TypeOpening, domain.TypeDeposit, domain.TypeWithdrawal}
	for _, tt := range types {
		tx := domain.NewTransaction(7, tt, decimal.NewFromInt(10))
		if err := repo.Save(context.Background(), tx); err != nil {
			t.Fatalf("unexpected error on Save: %v", err)
		}
	}

	history, err := repo.GetByAccount(context.Background(), 7, 0, 0)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("expected 3 transactions, got %d", len(history))
	}
	for i, tt := range types {
		if history[i].Type != tt {
			t.Errorf("expected %s at position %d, got %s", tt, i, history[i].Type)
		}
	}
}

func TestTransactionRepository_GetByAccountPaging(t *testing.T) {
	repo := NewTransactionRepository()
	for i := 0; i < 5; i++ {
		_ = repo.Save(context.Background(), domain.NewTransaction(7, domain.TypeDeposit, decimal.NewFromInt(int64(i+1))))
	}

	page, err := repo.GetByAccount(context.Background(), 7, 2, 1)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(page))
	}
	if !page[0].Amount.Equal(decimal.NewFromInt(2)) || !page[1].Amount.Equal(decimal.NewFromInt(3)) {
		t.Errorf("expected amounts 2 and 3, got %s and %s", page[0].Amount, page[1].Amount)
	}
}

func TestTransactionRepository_GetByAccountNotFound(t *testing.T) {
	repo := NewTransactionRepository()

	_, err := repo.GetByAccount(context.Background(), 404, 0, 0)

	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestTransactionRepository_GetByType(t *testing.T) {
	repo := NewTransactionRepository()
	_ = repo.Save(context.Background(), domain.NewTransaction(7, domain.TypeOpening, decimal.NewFromInt(100)))
	_ = repo.Save(context.Background(), domain.NewTransaction(7, domain.TypeDeposit, decimal.NewFromInt(50)))
	_ = repo.Save(context.Background(), domain.NewTransaction(8, domain.TypeDeposit, decimal.NewFromInt(25)))

	deposits, err := repo.GetByType(context.Background(), domain.TypeDeposit)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(deposits) != 2 {
		t.Errorf("expected 2 deposits, got %d", len(deposits))
	}
}

func TestTransactionRepository_GetByPeriod(t *testing.T) {
	repo := NewTransactionRepository()
	old := domain.NewTransaction(7, domain.TypeOpening, decimal.NewFromInt(100))
	old.CreatedAt = time.Now().Add(-48 * time.Hour)
	_ = repo.Save(context.Background(), old)
	_ = repo.Save(context.Background(), domain.NewTransaction(7, domain.TypeDeposit, decimal.NewFromInt(50)))

	recent, err := repo.GetByPeriod(context.Background(), time.Now().Add(-time.Hour), time.Now().Add(time.Hour))

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recent) != 1 || recent[0].Type != domain.TypeDeposit {
		t.Errorf("expected only the recent deposit, got %+v", recent)
	}
}

func TestTransactionRepository_CountByAccount(t *testing.T) {
	repo := NewTransactionRepository()
	_ = repo.Save(context.Background(), domain.NewTransaction(7, domain.TypeOpening, decimal.NewFromInt(100)))
	_ = repo.Save(context.Background(), domain.NewTransaction(7, domain.TypeDeposit, decimal.NewFromInt(50)))
	_ = repo.Save(context.Background(), domain.NewTransaction(8, domain.TypeOpening, decimal.NewFromInt(10)))

	count, err := repo.CountByAccount(context.Background(), 7)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 transactions for account 7, got %d", count)
	}
}
