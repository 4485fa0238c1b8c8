package repository_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"graduation-tickets/internal/model"
	"graduation-tickets/internal/repository"
	apperrors "graduation-tickets/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 6, 20, 18, 30, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func newTestTicket(issuer string, ticketType model.TicketType, code string, createdAt time.Time) *model.Ticket {
	ticket := &model.Ticket{
		TicketID:   uuid.New(),
		IssuerName: issuer,
		TicketType: ticketType,
		Code:       code,
		CreatedAt:  createdAt,
	}
	if ticketType != model.TicketTypeGraduate {
		ticket.GuestName = strPtr("Guest of " + issuer)
	}
	return ticket
}

func createTestIssuer(t *testing.T, repo repository.IssuerRepository, name string, maxTickets int) *model.Issuer {
	t.Helper()
	issuer, err := repo.Create(context.Background(), &model.Issuer{Name: name, MaxTickets: maxTickets})
	require.NoError(t, err)
	return issuer
}

// 以下測試在每種儲存後端上執行相同的行為檢查

func testTicketRepositoryContract(t *testing.T, tickets repository.TicketRepository, issuers repository.IssuerRepository) {
	ctx := context.Background()
	createTestIssuer(t, issuers, "Ana", 5)
	createTestIssuer(t, issuers, "Bruno", 5)

	t.Run("insert and find", func(t *testing.T) {
		ticket := newTestTicket("Ana", model.TicketTypeFamily, "AAAAAAAAAAA1", testNow)
		ticket.SpecialNotes = strPtr("wheelchair access")

		created, err := tickets.InsertIfCodeUnique(ctx, ticket)
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.False(t, created.Used)
		assert.Nil(t, created.UsedAt)
		assert.Nil(t, created.ValidatedBy)

		found, err := tickets.FindByCode(ctx, "AAAAAAAAAAA1")
		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
		assert.Equal(t, ticket.TicketID, found.TicketID)
		assert.Equal(t, "Ana", found.IssuerName)
		assert.Equal(t, model.TicketTypeFamily, found.TicketType)
		require.NotNil(t, found.GuestName)
		assert.Equal(t, "Guest of Ana", *found.GuestName)
		require.NotNil(t, found.SpecialNotes)
		assert.Equal(t, "wheelchair access", *found.SpecialNotes)
		assert.True(t, testNow.Equal(found.CreatedAt))
	})

	t.Run("insert collision keeps original", func(t *testing.T) {
		_, err := tickets.InsertIfCodeUnique(ctx, newTestTicket("Bruno", model.TicketTypeGraduate, "AAAAAAAAAAA1", testNow))
		assert.ErrorIs(t, err, apperrors.ErrCodeCollision)

		found, err := tickets.FindByCode(ctx, "AAAAAAAAAAA1")
		require.NoError(t, err)
		assert.Equal(t, "Ana", found.IssuerName)
	})

	t.Run("find missing", func(t *testing.T) {
		_, err := tickets.FindByCode(ctx, "ZZZZZZZZZZZZ")
		assert.ErrorIs(t, err, apperrors.ErrTicketNotFound)
	})

	t.Run("find by issuer newest first", func(t *testing.T) {
		_, err := tickets.InsertIfCodeUnique(ctx, newTestTicket("Ana", model.TicketTypeGraduate, "AAAAAAAAAAA2", testNow.Add(time.Minute)))
		require.NoError(t, err)
		_, err = tickets.InsertIfCodeUnique(ctx, newTestTicket("Bruno", model.TicketTypeSponsor, "BBBBBBBBBBB1", testNow.Add(2*time.Minute)))
		require.NoError(t, err)

		found, err := tickets.FindByIssuer(ctx, "Ana")
		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.Equal(t, "AAAAAAAAAAA2", found[0].Code)
		assert.Equal(t, "AAAAAAAAAAA1", found[1].Code)

		none, err := tickets.FindByIssuer(ctx, "Nobody")
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("mark used exactly once", func(t *testing.T) {
		usedAt := testNow.Add(time.Hour)

		status, ticket, err := tickets.MarkUsedIfUnused(ctx, "AAAAAAAAAAA2", "door-1", usedAt)
		require.NoError(t, err)
		assert.Equal(t, model.RedemptionAccepted, status)
		assert.True(t, ticket.Used)
		require.NotNil(t, ticket.UsedAt)
		assert.True(t, usedAt.Equal(*ticket.UsedAt))
		assert.Equal(t, "door-1", *ticket.ValidatedBy)

		status, ticket, err = tickets.MarkUsedIfUnused(ctx, "AAAAAAAAAAA2", "door-2", usedAt.Add(time.Minute))
		require.NoError(t, err)
		assert.Equal(t, model.RedemptionAlreadyUsed, status)
		assert.True(t, usedAt.Equal(*ticket.UsedAt))
		assert.Equal(t, "door-1", *ticket.ValidatedBy)

		status, ticket, err = tickets.MarkUsedIfUnused(ctx, "ZZZZZZZZZZZZ", "door-1", usedAt)
		require.NoError(t, err)
		assert.Equal(t, model.RedemptionNotFound, status)
		assert.Nil(t, ticket)
	})

	t.Run("list with filters", func(t *testing.T) {
		all, err := tickets.List(ctx, model.TicketFilter{})
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, "BBBBBBBBBBB1", all[0].Code)

		used, err := tickets.List(ctx, model.TicketFilter{Status: model.TicketStatusUsed})
		require.NoError(t, err)
		require.Len(t, used, 1)
		assert.Equal(t, "AAAAAAAAAAA2", used[0].Code)

		available, err := tickets.List(ctx, model.TicketFilter{IssuerName: "Ana", Status: model.TicketStatusAvailable})
		require.NoError(t, err)
		require.Len(t, available, 1)
		assert.Equal(t, "AAAAAAAAAAA1", available[0].Code)

		sponsors, err := tickets.List(ctx, model.TicketFilter{TicketType: model.TicketTypeSponsor})
		require.NoError(t, err)
		require.Len(t, sponsors, 1)

		search, err := tickets.List(ctx, model.TicketFilter{Search: "guest of bruno"})
		require.NoError(t, err)
		require.Len(t, search, 1)
		assert.Equal(t, "BBBBBBBBBBB1", search[0].Code)

		byCode, err := tickets.List(ctx, model.TicketFilter{Search: "aaaaaaaaaaa"})
		require.NoError(t, err)
		assert.Len(t, byCode, 2)

		wildcard, err := tickets.List(ctx, model.TicketFilter{Search: "%"})
		require.NoError(t, err)
		assert.Empty(t, wildcard)
	})
}

func testConcurrentMarkUsed(t *testing.T, tickets repository.TicketRepository, issuers repository.IssuerRepository) {
	ctx := context.Background()
	createTestIssuer(t, issuers, "Race", 5)
	_, err := tickets.InsertIfCodeUnique(ctx, newTestTicket("Race", model.TicketTypeGraduate, "RACE00000001", testNow))
	require.NoError(t, err)

	const validators = 40
	var wg sync.WaitGroup
	var mu sync.Mutex
	statuses := make(map[model.RedemptionStatus]int)

	for i := 0; i < validators; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			status, _, err := tickets.MarkUsedIfUnused(ctx, "RACE00000001", fmt.Sprintf("door-%d", i), testNow)
			assert.NoError(t, err)

			mu.Lock()
			statuses[status]++
			mu.Unlock()
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, statuses[model.RedemptionAccepted])
	assert.Equal(t, validators-1, statuses[model.RedemptionAlreadyUsed])
}

func testIssuerRepositoryContract(t *testing.T, issuers repository.IssuerRepository) {
	ctx := context.Background()

	t.Run("create and find", func(t *testing.T) {
		created := createTestIssuer(t, issuers, "Carla", 2)
		assert.NotZero(t, created.ID)
		assert.Equal(t, 0, created.TicketsGenerated)

		found, err := issuers.FindByName(ctx, "Carla")
		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
		assert.Equal(t, 2, found.MaxTickets)
	})

	t.Run("duplicate", func(t *testing.T) {
		_, err := issuers.Create(ctx, &model.Issuer{Name: "Carla", MaxTickets: 5})
		assert.ErrorIs(t, err, apperrors.ErrIssuerAlreadyExists)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := issuers.FindByName(ctx, "Nobody")
		assert.ErrorIs(t, err, apperrors.ErrIssuerNotFound)

		err = issuers.IncrementTicketsGenerated(ctx, "Nobody")
		assert.ErrorIs(t, err, apperrors.ErrIssuerNotFound)

		err = issuers.WithIssuerLock(ctx, "Nobody", func(ctx context.Context) error { return nil })
		assert.ErrorIs(t, err, apperrors.ErrIssuerNotFound)
	})

	t.Run("increment is capped", func(t *testing.T) {
		for i := 0; i < 4; i++ {
			require.NoError(t, issuers.IncrementTicketsGenerated(ctx, "Carla"))
		}
		found, err := issuers.FindByName(ctx, "Carla")
		require.NoError(t, err)
		assert.Equal(t, 2, found.TicketsGenerated)
	})

	t.Run("lock returns callback error", func(t *testing.T) {
		sentinel := fmt.Errorf("callback failed")
		err := issuers.WithIssuerLock(ctx, "Carla", func(ctx context.Context) error { return sentinel })
		assert.ErrorIs(t, err, sentinel)
	})

	t.Run("lock serializes callers", func(t *testing.T) {
		var active, maxActive int
		var mu sync.Mutex
		var wg sync.WaitGroup

		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := issuers.WithIssuerLock(ctx, "Carla", func(ctx context.Context) error {
					mu.Lock()
					active++
					if active > maxActive {
						maxActive = active
					}
					mu.Unlock()

					time.Sleep(5 * time.Millisecond)

					mu.Lock()
					active--
					mu.Unlock()
					return nil
				})
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, maxActive)
	})
}

func testAuditRepositoryContract(t *testing.T, audit repository.AuditRepository) {
	ctx := context.Background()

	event := &model.TicketEvent{
		EventID:    uuid.NewString(),
		Type:       model.TicketEventIssued,
		Code:       "AUDIT0000001",
		IssuerName: "Ana",
		TicketType: model.TicketTypeGraduate,
		Actor:      "Ana",
		OccurredAt: testNow,
	}
	require.NoError(t, audit.Append(ctx, event))
	// 重複投遞
	require.NoError(t, audit.Append(ctx, event))

	validated := *event
	validated.EventID = uuid.NewString()
	validated.Type = model.TicketEventValidated
	validated.Actor = "door-1"
	validated.OccurredAt = testNow.Add(time.Hour)
	require.NoError(t, audit.Append(ctx, &validated))

	events, err := audit.ListByCode(ctx, "AUDIT0000001")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, model.TicketEventIssued, events[0].Type)
	assert.Equal(t, model.TicketEventValidated, events[1].Type)
	assert.Equal(t, "door-1", events[1].Actor)
	assert.True(t, testNow.Add(time.Hour).Equal(events[1].OccurredAt))

	none, err := audit.ListByCode(ctx, "NONE00000000")
	require.NoError(t, err)
	assert.Empty(t, none)
}
