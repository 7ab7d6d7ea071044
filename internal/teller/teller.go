package teller

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"savings_bank/internal/domain"
	"savings_bank/internal/repository"
	"savings_bank/internal/service"
	"savings_bank/pkg/crypto"
	"savings_bank/pkg/metrics"
	"savings_bank/pkg/validator"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
)

const (
	OpOpen     = "open"
	OpDeposit  = "deposit"
	OpWithdraw = "withdraw"
)

// Teller orchestrates account operations: it validates input, invokes
// the domain model, persists the resulting transaction records, signs
// receipts and reports metrics and audit events. Mutating operations
// are serialized so a balance update and its history record land
// together.
type Teller struct {
	accountRepo    repository.AccountRepository
	txRepo         repository.TransactionRepository
	validator      *validator.OperationValidator
	signer         *crypto.Signer
	metrics        *metrics.MetricsCollector
	audit          *service.AuditService
	interestRate   decimal.Decimal
	minimumBalance decimal.Decimal
	numberSeq      atomic.Int64
	mu             sync.Mutex
	logger         *slog.Logger
}

func NewTeller(
	accountRepo repository.AccountRepository,
	txRepo repository.TransactionRepository,
	signer *crypto.Signer,
	interestRate decimal.Decimal,
	minimumBalance decimal.Decimal,
	logger *slog.Logger,
) *Teller {
	if logger == nil {
		logger = slog.Default()
	}

	t := &Teller{
		accountRepo:    accountRepo,
		txRepo:         txRepo,
		validator:      validator.NewOperationValidator(),
		signer:         signer,
		interestRate:   interestRate,
		minimumBalance: minimumBalance,
		logger:         logger,
	}

	// 10-digit account numbers, randomly seeded per process, then
	// strictly incrementing so they never collide within a run.
	t.numberSeq.Store(1_000_000_000 + rand.Int64N(8_000_000_000))

	return t
}

func (t *Teller) WithMetrics(collector *metrics.MetricsCollector) *Teller {
	t.metrics = collector
	return t
}

func (t *Teller) WithAudit(audit *service.AuditService) *Teller {
	t.audit = audit
	return t
}

func (t *Teller) nextNumber() int64 {
	return t.numberSeq.Add(1)
}

// OpenAccount creates an account of the requested kind with a positive
// opening deposit and records the opening transaction.
func (t *Teller) OpenAccount(ctx context.Context, owner string, kind domain.Kind, opening decimal.Decimal) (domain.Account, error) {
	startTime := time.Now()

	account, tx, err := t.openAccount(ctx, owner, kind, opening)

	var number int64
	if account != nil {
		number = account.Number()
	}
	t.observe(ctx, OpOpen, number, account, tx, err, startTime)
	return account, err
}

func (t *Teller) openAccount(ctx context.Context, owner string, kind domain.Kind, opening decimal.Decimal) (domain.Account, *domain.Transaction, error) {
	if err := t.validator.ValidateOwner(owner); err != nil {
		return nil, nil, err
	}
	if err := t.validator.ValidateAmount(opening); err != nil {
		return nil, nil, fmt.Errorf("opening deposit: %w", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	number := t.nextNumber()

	var account domain.Account
	switch kind {
	case domain.KindSavings:
		account = domain.NewSavingsAccount(number, owner, opening, t.interestRate, t.minimumBalance)
	default:
		account = domain.NewBasicAccount(number, owner, opening)
	}

	if err := t.accountRepo.Save(ctx, account); err != nil {
		return nil, nil, fmt.Errorf("failed to save account: %w", err)
	}

	tx := domain.NewTransaction(number, domain.TypeOpening, opening).
		WithBalance(account.Balance())
	t.stamp(tx)

	if err := t.txRepo.Save(ctx, tx); err != nil {
		return nil, nil, fmt.Errorf("failed to record opening transaction: %w", err)
	}

	t.logger.InfoContext(ctx, "Account opened",
		slog.Int64("account_number", number),
		slog.String("kind", string(kind)),
		slog.String("opening", opening.StringFixed(2)))

	return account, tx, nil
}

// Access looks up an existing account by number.
func (t *Teller) Access(ctx context.Context, number int64) (domain.Account, error) {
	return t.accountRepo.GetByNumber(ctx, number)
}

// Deposit credits amount to the account (plus interest for savings)
// and appends the deposit record.
func (t *Teller) Deposit(ctx context.Context, number int64, amount decimal.Decimal) (*domain.Transaction, error) {
	startTime := time.Now()

	account, tx, err := t.mutate(ctx, OpDeposit, number, func(account domain.Account) (*domain.Transaction, error) {
		return account.Deposit(amount)
	}, amount)

	t.observe(ctx, OpDeposit, number, account, tx, err, startTime)
	return tx, err
}

// Withdraw debits amount from the account and appends the withdrawal
// record. Savings accounts additionally enforce the minimum-balance
// floor.
func (t *Teller) Withdraw(ctx context.Context, number int64, amount decimal.Decimal) (*domain.Transaction, error) {
	startTime := time.Now()

	account, tx, err := t.mutate(ctx, OpWithdraw, number, func(account domain.Account) (*domain.Transaction, error) {
		return account.Withdraw(amount)
	}, amount)

	t.observe(ctx, OpWithdraw, number, account, tx, err, startTime)
	return tx, err
}

func (t *Teller) mutate(ctx context.Context, operation string, number int64, apply func(domain.Account) (*domain.Transaction, error), amount decimal.Decimal) (domain.Account, *domain.Transaction, error) {
	if err := t.validator.ValidateAmount(amount); err != nil {
		return nil, nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	account, err := t.accountRepo.GetByNumber(ctx, number)
	if err != nil {
		return nil, nil, err
	}

	tx, err := apply(account)
	if err != nil {
		return account, nil, err
	}
	t.stamp(tx)

	if err := t.txRepo.Save(ctx, tx); err != nil {
		return account, nil, fmt.Errorf("failed to record %s: %w", operation, err)
	}

	t.logger.InfoContext(ctx, "Operation completed",
		slog.String("operation", operation),
		slog.Int64("account_number", number),
		slog.String("amount", amount.StringFixed(2)),
		slog.String("balance", tx.Balance.StringFixed(2)))

	return account, tx, nil
}

// Balance returns the current balance; no side effects.
func (t *Teller) Balance(ctx context.Context, number int64) (decimal.Decimal, error) {
	account, err := t.accountRepo.GetByNumber(ctx, number)
	if err != nil {
		return decimal.Zero, err
	}
	return account.Balance(), nil
}

// History returns the account's transaction records oldest first.
func (t *Teller) History(ctx context.Context, number int64) ([]*domain.Transaction, error) {
	return t.txRepo.GetByAccount(ctx, number, 0, 0)
}

// VerifyReceipt re-derives a transaction's receipt signature.
func (t *Teller) VerifyReceipt(tx *domain.Transaction) (bool, error) {
	if t.signer == nil {
		return false, fmt.Errorf("no signer configured")
	}
	return t.signer.VerifyReceipt(tx.AccountNumber, string(tx.Type), tx.Amount, tx.CreatedAt.Unix(), tx.Receipt)
}

func (t *Teller) stamp(tx *domain.Transaction) {
	if t.signer == nil {
		return
	}
	tx.WithReceipt(t.signer.SignReceipt(tx.AccountNumber, string(tx.Type), tx.Amount, tx.CreatedAt.Unix()))
}

func (t *Teller) observe(ctx context.Context, operation string, number int64, account domain.Account, tx *domain.Transaction, opErr error, startTime time.Time) {
	duration := time.Since(startTime)

	if t.metrics != nil {
		t.metrics.RecordOperation(operation, duration, opErr == nil)
		if tx != nil && account != nil {
			t.metrics.UpdateAccountBalance(strconv.FormatInt(number, 10), string(account.Kind()), tx.Balance.InexactFloat64())
			if tx.Interest.Sign() > 0 {
				t.metrics.RecordInterest(tx.Interest.InexactFloat64())
			}
		}
	}

	if t.audit != nil {
		if err := t.audit.RecordOperation(ctx, operation, number, tx, opErr); err != nil {
			t.logger.Error("Failed to queue audit event", slog.String("error", err.Error()))
		}
	}

	if opErr != nil {
		t.logger.WarnContext(ctx, "Operation rejected",
			slog.String("operation", operation),
			slog.Int64("account_number", number),
			slog.String("reason", opErr.Error()))
	}
}
