package service

import (
	"context"
	"savings_bank/internal/domain"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestAuditService_RecordsAcceptedAndRejected(t *testing.T) {
	sink := &MemorySink{}
	audit := NewAuditService([]AuditSink{sink}, 2, nil)

	tx := domain.NewTransaction(7, domain.TypeDeposit, decimal.NewFromInt(50))
	if err := audit.RecordOperation(context.Background(), "deposit", 7, tx, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := audit.RecordOperation(context.Background(), "withdraw", 7, nil, domain.ErrInsufficientFunds); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	deadline := time.Now().Add(time.Second)
	for len(sink.Recorded()) < 2 {
		if time.Now().After(deadline) {
			t.Fatalf("expected 2 audit events, got %d", len(sink.Recorded()))
		}
		time.Sleep(10 * time.Millisecond)
	}

	var accepted, rejected *AuditEvent
	for i := range sink.Recorded() {
		event := sink.Recorded()[i]
		switch event.Outcome {
		case OutcomeAccepted:
			accepted = &event
		case OutcomeRejected:
			rejected = &event
		}
	}

	if accepted == nil || accepted.Amount != "50.00" {
		t.Errorf("expected accepted event with amount 50.00, got %+v", accepted)
	}
	if rejected == nil || rejected.Reason == "" {
		t.Errorf("expected rejected event with a reason, got %+v", rejected)
	}

	if err := audit.Shutdown(context.Background()); err != nil {
		t.Fatalf("unexpected error on Shutdown: %v", err)
	}
}
