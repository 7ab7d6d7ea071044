package validator

import (
	"errors"
	"fmt"
	"regexp"
	"savings_bank/internal/domain"

	"github.com/shopspring/decimal"
)

var (
	ErrAmountTooLarge = errors.New("amount exceeds the per-operation limit")
	ErrInvalidOwner   = errors.New("invalid owner name")
)

// defaultOperationLimit caps a single deposit or withdrawal.
var defaultOperationLimit = decimal.NewFromInt(1_000_000)

type OperationValidator struct {
	ownerRegex     *regexp.Regexp
	operationLimit decimal.Decimal
}

func NewOperationValidator() *OperationValidator {
	return &OperationValidator{
		ownerRegex:     regexp.MustCompile(`^[\p{L}][\p{L} .'-]*$`),
		operationLimit: defaultOperationLimit,
	}
}

func (v *OperationValidator) ValidateAmount(amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return domain.ErrInvalidAmount
	}

	if amount.GreaterThan(v.operationLimit) {
		return fmt.Errorf("%w: %s > %s", ErrAmountTooLarge, amount, v.operationLimit)
	}

	return nil
}

func (v *OperationValidator) ValidateOwner(owner string) error {
	if !v.ownerRegex.MatchString(owner) {
		return fmt.Errorf("%w: %q", ErrInvalidOwner, owner)
	}

	return nil
}
