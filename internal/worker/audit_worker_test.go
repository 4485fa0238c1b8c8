package worker_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"graduation-tickets/internal/model"
	"graduation-tickets/internal/queue"
	"graduation-tickets/internal/repository"
	"graduation-tickets/internal/worker"
	apperrors "graduation-tickets/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyAuditRepository 前 failures 次 Append 回傳 err
type flakyAuditRepository struct {
	repository.AuditRepository

	mu       sync.Mutex
	failures int
	err      error
	attempts int
}

func (r *flakyAuditRepository) Append(ctx context.Context, event *model.TicketEvent) error {
	r.mu.Lock()
	r.attempts++
	if r.failures > 0 {
		r.failures--
		r.mu.Unlock()
		return r.err
	}
	r.mu.Unlock()
	return r.AuditRepository.Append(ctx, event)
}

func (r *flakyAuditRepository) Attempts() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.attempts
}

func newTestEvent(eventType model.TicketEventType, code string) *model.TicketEvent {
	return &model.TicketEvent{
		EventID:    uuid.NewString(),
		Type:       eventType,
		Code:       code,
		IssuerName: "Ana",
		TicketType: model.TicketTypeGraduate,
		Actor:      "Ana",
		OccurredAt: time.Date(2026, 6, 20, 18, 30, 0, 0, time.UTC),
	}
}

func hasEvents(repo repository.AuditRepository, code string, n int) func() bool {
	return func() bool {
		events, err := repo.ListByCode(context.Background(), code)
		return err == nil && len(events) == n
	}
}

func TestAuditWorker_AppendsEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	audit := repository.NewMemoryAuditRepository()
	events := queue.NewEventQueue(10)
	w := worker.NewAuditWorker(audit, events)
	require.NoError(t, w.Start(ctx))

	require.NoError(t, events.PublishEvent(ctx, newTestEvent(model.TicketEventIssued, "AAAAAAAAAAA1")))
	require.NoError(t, events.PublishEvent(ctx, newTestEvent(model.TicketEventValidated, "AAAAAAAAAAA1")))

	assert.Eventually(t, hasEvents(audit, "AAAAAAAAAAA1", 2), 2*time.Second, 10*time.Millisecond)

	stored, err := audit.ListByCode(ctx, "AAAAAAAAAAA1")
	require.NoError(t, err)
	assert.Equal(t, model.TicketEventIssued, stored[0].Type)
	assert.Equal(t, model.TicketEventValidated, stored[1].Type)
}

func TestAuditWorker_RequeuesWhenStoreUnavailable(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	audit := &flakyAuditRepository{
		AuditRepository: repository.NewMemoryAuditRepository(),
		failures:        2,
		err:             fmt.Errorf("append ticket event: %w", apperrors.ErrStoreUnavailable),
	}
	events := queue.NewEventQueue(10)
	w := worker.NewAuditWorker(audit, events)
	require.NoError(t, w.Start(ctx))

	require.NoError(t, events.PublishEvent(ctx, newTestEvent(model.TicketEventIssued, "AAAAAAAAAAA1")))

	assert.Eventually(t, hasEvents(audit, "AAAAAAAAAAA1", 1), 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 3, audit.Attempts())
}

func TestAuditWorker_DiscardsOnOtherErrors(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	audit := &flakyAuditRepository{
		AuditRepository: repository.NewMemoryAuditRepository(),
		failures:        1,
		err:             errors.New("bad event"),
	}
	events := queue.NewEventQueue(10)
	w := worker.NewAuditWorker(audit, events)
	require.NoError(t, w.Start(ctx))

	require.NoError(t, events.PublishEvent(ctx, newTestEvent(model.TicketEventIssued, "AAAAAAAAAAA1")))
	require.NoError(t, events.PublishEvent(ctx, newTestEvent(model.TicketEventIssued, "AAAAAAAAAAA2")))

	assert.Eventually(t, hasEvents(audit, "AAAAAAAAAAA2", 1), 2*time.Second, 10*time.Millisecond)

	stored, err := audit.ListByCode(ctx, "AAAAAAAAAAA1")
	require.NoError(t, err)
	assert.Empty(t, stored)
	assert.Equal(t, 2, audit.Attempts())
}

func TestAuditWorker_DoneAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	w := worker.NewAuditWorker(repository.NewMemoryAuditRepository(), queue.NewEventQueue(10))
	require.NoError(t, w.Start(ctx))
	cancel()

	select {
	case <-w.Done():
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}
