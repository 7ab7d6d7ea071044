package validator

import (
	"errors"
	"savings_bank/internal/domain"
	"testing"

	"github.com/shopspring/decimal"
)

func TestOperationValidator_ValidAmount(t *testing.T) {
	v := NewOperationValidator()

	err := v.ValidateAmount(decimal.NewFromFloat(10.50))

	if err != nil {
		t.Fatalf("expected valid amount, got err=%v", err)
	}
}

func TestOperationValidator_NonPositiveAmount(t *testing.T) {
	v := NewOperationValidator()

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-5)} {
		err := v.ValidateAmount(amount)
		if !errors.Is(err, domain.ErrInvalidAmount) {
			t.Errorf("expected ErrInvalidAmount for %s, got %v", amount, err)
		}
	}
}

func TestOperationValidator_AmountTooLarge(t *testing.T) {
	v := NewOperationValidator()

	err := v.ValidateAmount(decimal.NewFromInt(2_000_000))

	if !errors.Is(err, ErrAmountTooLarge) {
		t.Errorf("expected ErrAmountTooLarge, got %v", err)
	}
}

func TestOperationValidator_ValidateOwner(t *testing.T) {
	v := NewOperationValidator()

	for _, owner := range []string{"Alice", "Mary-Jane O'Neil", "Jean Luc"} {
		if err := v.ValidateOwner(owner); err != nil {
			t.Errorf("expected %q to be valid, got %v", owner, err)
		}
	}

	for _, owner := range []string{"", "  ", "123", "-dash"} {
		if err := v.ValidateOwner(owner); !errors.Is(err, ErrInvalidOwner) {
			t.Errorf("expected ErrInvalidOwner for %q, got %v", owner, err)
		}
	}
}
