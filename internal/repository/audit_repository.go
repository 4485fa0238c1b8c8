package repository

import (
	"context"

	"graduation-tickets/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AuditRepository 票券稽核紀錄，只新增不修改
type AuditRepository interface {
	// 同一個 event_id 重複寫入會被忽略
	Append(ctx context.Context, event *model.TicketEvent) error
	ListByCode(ctx context.Context, code string) ([]*model.TicketEvent, error)
}

type AuditRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewAuditRepository(pool *pgxpool.Pool) AuditRepository {
	return &AuditRepositoryImpl{
		pool: pool,
	}
}

func (r *AuditRepositoryImpl) Append(ctx context.Context, event *model.TicketEvent) error {
	query := `
		INSERT INTO ticket_events (event_id, type, code, issuer_name, ticket_type, actor, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (event_id) DO NOTHING
	`

	_, err := conn(ctx, r.pool).Exec(ctx, query,
		event.EventID, event.Type, event.Code, event.IssuerName,
		event.TicketType, event.Actor, event.OccurredAt.UTC(),
	)
	if err != nil {
		return storeErr("append ticket event", err)
	}
	return nil
}

func (r *AuditRepositoryImpl) ListByCode(ctx context.Context, code string) ([]*model.TicketEvent, error) {
	query := `
		SELECT id, event_id, type, code, issuer_name, ticket_type, actor, occurred_at
		FROM ticket_events
		WHERE code = $1
		ORDER BY occurred_at ASC, id ASC
	`

	rows, err := conn(ctx, r.pool).Query(ctx, query, code)
	if err != nil {
		return nil, storeErr("list ticket events", err)
	}
	defer rows.Close()

	events := make([]*model.TicketEvent, 0)
	for rows.Next() {
		var event model.TicketEvent
		err := rows.Scan(
			&event.ID,
			&event.EventID,
			&event.Type,
			&event.Code,
			&event.IssuerName,
			&event.TicketType,
			&event.Actor,
			&event.OccurredAt,
		)
		if err != nil {
			return nil, storeErr("scan ticket event", err)
		}
		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, storeErr("scan ticket events", err)
	}
	return events, nil
}
