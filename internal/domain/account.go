package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindBasic   Kind = "basic"
	KindSavings Kind = "savings"
)

var (
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrBelowMinimumBalance = errors.New("balance would fall below minimum")
)

// DefaultMinimumBalance is the floor enforced on savings withdrawals.
var DefaultMinimumBalance = decimal.NewFromInt(50)

// Account is the capability set shared by every account kind.
// Deposit and Withdraw return the transaction record describing the
// mutation; on error the account state is unchanged.
type Account interface {
	Number() int64
	Owner() string
	Kind() Kind
	Balance() decimal.Decimal
	Deposit(amount decimal.Decimal) (*Transaction, error)
	Withdraw(amount decimal.Decimal) (*Transaction, error)
}

type BasicAccount struct {
	number  int64
	owner   string
	balance decimal.Decimal
}

func NewBasicAccount(number int64, owner string, opening decimal.Decimal) *BasicAccount {
	return &BasicAccount{
		number:  number,
		owner:   owner,
		balance: opening,
	}
}

func (a *BasicAccount) Number() int64            { return a.number }
func (a *BasicAccount) Owner() string            { return a.owner }
func (a *BasicAccount) Kind() Kind               { return KindBasic }
func (a *BasicAccount) Balance() decimal.Decimal { return a.balance }

func (a *BasicAccount) Deposit(amount decimal.Decimal) (*Transaction, error) {
	if amount.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}

	a.balance = a.balance.Add(amount)

	return NewTransaction(a.number, TypeDeposit, amount).WithBalance(a.balance), nil
}

func (a *BasicAccount) Withdraw(amount decimal.Decimal) (*Transaction, error) {
	if amount.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}
	if a.balance.LessThan(amount) {
		return nil, ErrInsufficientFunds
	}

	a.balance = a.balance.Sub(amount)

	return NewTransaction(a.number, TypeWithdrawal, amount).WithBalance(a.balance), nil
}

// SavingsAccount specializes BasicAccount: withdrawals must keep the
// balance at or above the minimum floor, and deposits credit interest
// on the pre-deposit balance at a rate fixed at creation.
type SavingsAccount struct {
	BasicAccount
	rate  decimal.Decimal
	floor decimal.Decimal
}

func NewSavingsAccount(number int64, owner string, opening, rate, floor decimal.Decimal) *SavingsAccount {
	return &SavingsAccount{
		BasicAccount: BasicAccount{number: number, owner: owner, balance: opening},
		rate:         rate,
		floor:        floor,
	}
}

func (s *SavingsAccount) Kind() Kind                      { return KindSavings }
func (s *SavingsAccount) InterestRate() decimal.Decimal   { return s.rate }
func (s *SavingsAccount) MinimumBalance() decimal.Decimal { return s.floor }

func (s *SavingsAccount) Deposit(amount decimal.Decimal) (*Transaction, error) {
	if amount.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}

	interest := s.balance.Mul(s.rate).Round(2)
	s.balance = s.balance.Add(amount).Add(interest)

	return NewTransaction(s.number, TypeDeposit, amount).
		WithInterest(interest).
		WithBalance(s.balance), nil
}

func (s *SavingsAccount) Withdraw(amount decimal.Decimal) (*Transaction, error) {
	if amount.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}
	if s.balance.LessThan(amount) {
		return nil, ErrInsufficientFunds
	}
	if s.balance.Sub(amount).LessThan(s.floor) {
		return nil, ErrBelowMinimumBalance
	}

	s.balance = s.balance.Sub(amount)

	return NewTransaction(s.number, TypeWithdrawal, amount).WithBalance(s.balance), nil
}
