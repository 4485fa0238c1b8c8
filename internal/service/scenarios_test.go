package service_test

import (
	"context"
	"testing"

	"graduation-tickets/internal/clock"
	"graduation-tickets/internal/model"
	"graduation-tickets/internal/service"
	apperrors "graduation-tickets/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 發券到驗票的完整流程
func TestIssueAndRedeemFlow(t *testing.T) {
	ctx := context.Background()
	f := newIssuanceFixture(t, nil)
	f.registerIssuer(t, "Ana", intPtr(5))
	validation := service.NewValidationService(f.tickets, nil, clock.NewFixed(testNow))

	// 第一張畢業生票
	graduate, err := f.service.Issue(ctx, issueRequest("Ana", model.TicketTypeGraduate, ""))
	require.NoError(t, err)
	issuer, err := f.issuers.FindByName(ctx, "Ana")
	require.NoError(t, err)
	assert.Equal(t, 1, issuer.TicketsGenerated)

	// 第二張畢業生票
	_, err = f.service.Issue(ctx, issueRequest("Ana", model.TicketTypeGraduate, ""))
	assert.ErrorIs(t, err, apperrors.ErrQuotaExceededByType)

	// 第四張家人票，總額度尚未用完
	for _, guest := range []string{"Mom", "Dad", "Grandma"} {
		_, err := f.service.Issue(ctx, issueRequest("Ana", model.TicketTypeFamily, guest))
		require.NoError(t, err)
	}
	_, err = f.service.Issue(ctx, issueRequest("Ana", model.TicketTypeFamily, "Uncle"))
	assert.ErrorIs(t, err, apperrors.ErrQuotaExceededByType)

	summary, err := f.service.Summary(ctx, "Ana")
	require.NoError(t, err)
	assert.Equal(t, 1, summary.RemainingGlobal)

	// 驗票兩次
	accepted, err := validation.Validate(ctx, graduate.Code, "door-1")
	require.NoError(t, err)
	assert.Equal(t, model.RedemptionAccepted, accepted.Status)

	again, err := validation.Validate(ctx, graduate.Code, "door-2")
	require.NoError(t, err)
	assert.Equal(t, model.RedemptionAlreadyUsed, again.Status)
	assert.Equal(t, *accepted.Ticket.UsedAt, *again.Ticket.UsedAt)
	assert.Equal(t, "door-1", *again.Ticket.ValidatedBy)

	// 從未發出的兌換碼
	unknown, err := validation.Validate(ctx, "000000000000", "door-1")
	require.NoError(t, err)
	assert.Equal(t, model.RedemptionNotFound, unknown.Status)
}
