package service

import (
	"context"
	"time"

	"graduation-tickets/internal/model"
	"graduation-tickets/internal/queue"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func newTicketEvent(eventType model.TicketEventType, ticket *model.Ticket, actor string, at time.Time) *model.TicketEvent {
	return &model.TicketEvent{
		EventID:    uuid.NewString(),
		Type:       eventType,
		Code:       ticket.Code,
		IssuerName: ticket.IssuerName,
		TicketType: ticket.TicketType,
		Actor:      actor,
		OccurredAt: at,
	}
}

// publishEvent 稽核事件送出失敗不影響發券或驗票結果，只記錄警告
func publishEvent(ctx context.Context, events queue.EventQueue, event *model.TicketEvent, log *zap.Logger) {
	if events == nil {
		return
	}
	if err := events.PublishEvent(ctx, event); err != nil {
		log.Warn("Failed to publish ticket event",
			zap.String("type", string(event.Type)),
			zap.String("code", event.Code),
			zap.Error(err),
		)
	}
}
