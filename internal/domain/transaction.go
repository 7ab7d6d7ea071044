package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TypeOpening    TransactionType = "opening"
	TypeDeposit    TransactionType = "deposit"
	TypeWithdrawal TransactionType = "withdrawal"
)

// Transaction is an immutable log entry capturing an operation, its
// amount and the balance it produced. Interest is the credit applied
// alongside a savings deposit; zero for everything else.
type Transaction struct {
	ID            string          `json:"id"`
	AccountNumber int64           `json:"account_number"`
	Type          TransactionType `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Interest      decimal.Decimal `json:"interest"`
	Balance       decimal.Decimal `json:"balance"`
	Receipt       string          `json:"receipt,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

func NewTransaction(accountNumber int64, t TransactionType, amount decimal.Decimal) *Transaction {
	return &Transaction{
		ID:            uuid.New().String(),
		AccountNumber: accountNumber,
		Type:          t,
		Amount:        amount,
		CreatedAt:     time.Now(),
	}
}

func (tx *Transaction) WithBalance(balance decimal.Decimal) *Transaction {
	tx.Balance = balance
	return tx
}

func (tx *Transaction) WithInterest(interest decimal.Decimal) *Transaction {
	tx.Interest = interest
	return tx
}

func (tx *Transaction) WithReceipt(receipt string) *Transaction {
	tx.Receipt = receipt
	return tx
}
