package crypto

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
)

// Signer produces HMAC-SHA256 receipts for transaction records so a
// printed receipt can later be checked against the ledger.
type Signer struct {
	secretKey []byte
	logger    *slog.Logger
}

func NewSigner(secretKey string, logger *slog.Logger) *Signer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Signer{
		secretKey: []byte(secretKey),
		logger:    logger,
	}
}

func (s *Signer) Sign(data []byte) string {
	mac := hmac.New(sha256.New, s.secretKey)
	mac.Write(data)
	signature := mac.Sum(nil)
	return hex.EncodeToString(signature)
}

func (s *Signer) Verify(data []byte, signature string) (bool, error) {
	expectedSignature := s.Sign(data)

	if !hmac.Equal([]byte(expectedSignature), []byte(signature)) {
		s.logger.Warn("Receipt verification failed",
			slog.String("expected", expectedSignature),
			slog.String("received", signature))
		return false, fmt.Errorf("invalid receipt")
	}

	return true, nil
}

func (s *Signer) SignReceipt(accountNumber int64, operation string, amount decimal.Decimal, timestamp int64) string {
	data := fmt.Sprintf("%d:%s:%s:%d", accountNumber, operation, amount.StringFixed(2), timestamp)
	return s.Sign([]byte(data))
}

func (s *Signer) VerifyReceipt(accountNumber int64, operation string, amount decimal.Decimal, timestamp int64, receipt string) (bool, error) {
	data := fmt.Sprintf("%d:%s:%s:%d", accountNumber, operation, amount.StringFixed(2), timestamp)
	return s.Verify([]byte(data), receipt)
}
