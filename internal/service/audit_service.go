package service

import (
	"context"
	"log/slog"
	"savings_bank/internal/domain"
	"sync"
	"time"
)

type Outcome string

const (
	OutcomeAccepted Outcome = "accepted"
	OutcomeRejected Outcome = "rejected"
)

// AuditService records every teller operation on a background worker
// pool so the interactive shell never waits on the audit trail.
type AuditService struct {
	sinks        []AuditSink
	eventQueue   chan AuditEvent
	workers      int
	shutdownChan chan struct{}
	wg           sync.WaitGroup
	logger       *slog.Logger
}

type AuditEvent struct {
	Operation     string
	AccountNumber int64
	Amount        string
	Outcome       Outcome
	Reason        string
	CreatedAt     time.Time
}

type AuditSink interface {
	Record(event AuditEvent) error
}

func NewAuditService(sinks []AuditSink, workers int, logger *slog.Logger) *AuditService {
	if logger == nil {
		logger = slog.Default()
	}

	service := &AuditService{
		sinks:        sinks,
		eventQueue:   make(chan AuditEvent, 1000),
		workers:      workers,
		shutdownChan: make(chan struct{}),
		logger:       logger,
	}

	service.startWorkers()

	return service
}

func (s *AuditService) RecordOperation(ctx context.Context, operation string, accountNumber int64, tx *domain.Transaction, opErr error) error {
	event := AuditEvent{
		Operation:     operation,
		AccountNumber: accountNumber,
		Outcome:       OutcomeAccepted,
		CreatedAt:     time.Now(),
	}

	if tx != nil {
		event.Amount = tx.Amount.StringFixed(2)
	}
	if opErr != nil {
		event.Outcome = OutcomeRejected
		event.Reason = opErr.Error()
	}

	select {
	case s.eventQueue <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *AuditService) startWorkers() {
	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}
}

func (s *AuditService) worker(id int) {
	defer s.wg.Done()

	s.logger.Info("Audit worker started", slog.Int("worker_id", id))

	for {
		select {
		case event := <-s.eventQueue:
			s.processEvent(event, id)
		case <-s.shutdownChan:
			s.logger.Info("Audit worker stopping", slog.Int("worker_id", id))
			return
		}
	}
}

func (s *AuditService) processEvent(event AuditEvent, workerID int) {
	for _, sink := range s.sinks {
		if err := sink.Record(event); err != nil {
			s.logger.Error("Failed to record audit event",
				slog.String("operation", event.Operation),
				slog.Int64("account_number", event.AccountNumber),
				slog.String("error", err.Error()),
				slog.Int("worker_id", workerID))
		}
	}
}

func (s *AuditService) Shutdown(ctx context.Context) error {
	close(s.shutdownChan)

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Audit service shutdown complete")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// LogSink writes audit events to the structured log.
type LogSink struct {
	Logger *slog.Logger
}

func (l *LogSink) Record(event AuditEvent) error {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("audit",
		slog.String("operation", event.Operation),
		slog.Int64("account_number", event.AccountNumber),
		slog.String("amount", event.Amount),
		slog.String("outcome", string(event.Outcome)),
		slog.String("reason", event.Reason))
	return nil
}

// MemorySink collects audit events for inspection in tests.
type MemorySink struct {
	mu     sync.Mutex
	Events []AuditEvent
}

func (m *MemorySink) Record(event AuditEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, event)
	return nil
}

func (m *MemorySink) Recorded() []AuditEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]AuditEvent, len(m.Events))
	copy(out, m.Events)
	return out
}
