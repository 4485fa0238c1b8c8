package repository_test

import (
	"context"
	"testing"

	"graduation-tickets/internal/model"
	"graduation-tickets/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryTicketRepository(t *testing.T) {
	testTicketRepositoryContract(t, repository.NewMemoryTicketRepository(), repository.NewMemoryIssuerRepository())
}

func TestMemoryTicketRepository_ConcurrentMarkUsed(t *testing.T) {
	testConcurrentMarkUsed(t, repository.NewMemoryTicketRepository(), repository.NewMemoryIssuerRepository())
}

func TestMemoryTicketRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryTicketRepository()

	_, err := repo.InsertIfCodeUnique(ctx, newTestTicket("Ana", model.TicketTypeFamily, "COPY00000001", testNow))
	require.NoError(t, err)

	found, err := repo.FindByCode(ctx, "COPY00000001")
	require.NoError(t, err)
	found.Used = true
	*found.GuestName = "Mallory"

	again, err := repo.FindByCode(ctx, "COPY00000001")
	require.NoError(t, err)
	assert.False(t, again.Used)
	assert.Equal(t, "Guest of Ana", *again.GuestName)
}

func TestMemoryTicketRepository_InsertIgnoresUsedFields(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryTicketRepository()

	ticket := newTestTicket("Ana", model.TicketTypeGraduate, "USED00000001", testNow)
	ticket.Used = true
	ticket.ValidatedBy = strPtr("door-1")

	created, err := repo.InsertIfCodeUnique(ctx, ticket)
	require.NoError(t, err)
	assert.False(t, created.Used)
	assert.Nil(t, created.ValidatedBy)
}

func TestMemoryIssuerRepository(t *testing.T) {
	testIssuerRepositoryContract(t, repository.NewMemoryIssuerRepository())
}

func TestMemoryAuditRepository(t *testing.T) {
	testAuditRepositoryContract(t, repository.NewMemoryAuditRepository())
}
