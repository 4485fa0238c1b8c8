package repository_test

import (
	"context"
	"testing"

	"graduation-tickets/internal/model"
	"graduation-tickets/internal/repository"
	"graduation-tickets/internal/testutil"
	apperrors "graduation-tickets/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicketRepository_Postgres(t *testing.T) {
	pool := testutil.NewTestPool(t)
	testTicketRepositoryContract(t, repository.NewTicketRepository(pool), repository.NewIssuerRepository(pool))
}

func TestTicketRepository_Postgres_ConcurrentMarkUsed(t *testing.T) {
	pool := testutil.NewTestPool(t)
	testConcurrentMarkUsed(t, repository.NewTicketRepository(pool), repository.NewIssuerRepository(pool))
}

func TestIssuerRepository_Postgres(t *testing.T) {
	pool := testutil.NewTestPool(t)
	testIssuerRepositoryContract(t, repository.NewIssuerRepository(pool))
}

func TestAuditRepository_Postgres(t *testing.T) {
	pool := testutil.NewTestPool(t)
	testAuditRepositoryContract(t, repository.NewAuditRepository(pool))
}

// 碰撞發生在 transaction 內時，transaction 仍可繼續使用
func TestIssuerRepository_Postgres_CollisionInsideLock(t *testing.T) {
	ctx := context.Background()
	pool := testutil.NewTestPool(t)
	tickets := repository.NewTicketRepository(pool)
	issuers := repository.NewIssuerRepository(pool)
	createTestIssuer(t, issuers, "Ana", 5)

	_, err := tickets.InsertIfCodeUnique(ctx, newTestTicket("Ana", model.TicketTypeGraduate, "TXTX00000001", testNow))
	require.NoError(t, err)

	err = issuers.WithIssuerLock(ctx, "Ana", func(ctx context.Context) error {
		_, err := tickets.InsertIfCodeUnique(ctx, newTestTicket("Ana", model.TicketTypeFamily, "TXTX00000001", testNow))
		assert.ErrorIs(t, err, apperrors.ErrCodeCollision)

		_, err = tickets.InsertIfCodeUnique(ctx, newTestTicket("Ana", model.TicketTypeFamily, "TXTX00000002", testNow))
		return err
	})
	require.NoError(t, err)

	found, err := tickets.FindByIssuer(ctx, "Ana")
	require.NoError(t, err)
	assert.Len(t, found, 2)
}

// callback 失敗時整個 transaction 回滾
func TestIssuerRepository_Postgres_LockRollsBack(t *testing.T) {
	ctx := context.Background()
	pool := testutil.NewTestPool(t)
	tickets := repository.NewTicketRepository(pool)
	issuers := repository.NewIssuerRepository(pool)
	createTestIssuer(t, issuers, "Ana", 5)

	err := issuers.WithIssuerLock(ctx, "Ana", func(ctx context.Context) error {
		if _, err := tickets.InsertIfCodeUnique(ctx, newTestTicket("Ana", model.TicketTypeGraduate, "ROLL00000001", testNow)); err != nil {
			return err
		}
		return apperrors.ErrQuotaExceededGlobal
	})
	assert.ErrorIs(t, err, apperrors.ErrQuotaExceededGlobal)

	_, err = tickets.FindByCode(ctx, "ROLL00000001")
	assert.ErrorIs(t, err, apperrors.ErrTicketNotFound)
}
