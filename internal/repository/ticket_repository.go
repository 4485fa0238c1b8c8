package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"graduation-tickets/internal/model"
	apperrors "graduation-tickets/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TicketRepository 票券儲存層。InsertIfCodeUnique 與 MarkUsedIfUnused 必須是原子操作
type TicketRepository interface {
	FindByCode(ctx context.Context, code string) (*model.Ticket, error)
	FindByIssuer(ctx context.Context, issuerName string) ([]*model.Ticket, error)
	List(ctx context.Context, filter model.TicketFilter) ([]*model.Ticket, error)

	// 兌換碼已存在時回傳 ErrCodeCollision，不覆寫
	InsertIfCodeUnique(ctx context.Context, ticket *model.Ticket) (*model.Ticket, error)
	// 只有 used = false 的票會被標記；AlreadyUsed 時回傳原本的紀錄
	MarkUsedIfUnused(ctx context.Context, code string, validatorID string, at time.Time) (model.RedemptionStatus, *model.Ticket, error)
}

const ticketColumns = `id, ticket_id, issuer_name, guest_name, ticket_type, code,
		used, used_at, validated_by, special_notes, created_at`

type TicketRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &TicketRepositoryImpl{
		pool: pool,
	}
}

func scanTicket(row pgx.Row) (*model.Ticket, error) {
	var ticket model.Ticket
	err := row.Scan(
		&ticket.ID,
		&ticket.TicketID,
		&ticket.IssuerName,
		&ticket.GuestName,
		&ticket.TicketType,
		&ticket.Code,
		&ticket.Used,
		&ticket.UsedAt,
		&ticket.ValidatedBy,
		&ticket.SpecialNotes,
		&ticket.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

func collectTickets(rows pgx.Rows) ([]*model.Ticket, error) {
	defer rows.Close()

	tickets := make([]*model.Ticket, 0)
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, ticket)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tickets, nil
}

func (r *TicketRepositoryImpl) FindByCode(ctx context.Context, code string) (*model.Ticket, error) {
	query := `
		SELECT ` + ticketColumns + `
		FROM tickets
		WHERE code = $1
	`

	ticket, err := scanTicket(conn(ctx, r.pool).QueryRow(ctx, query, code))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrTicketNotFound
		}
		return nil, storeErr("find ticket by code", err)
	}
	return ticket, nil
}

func (r *TicketRepositoryImpl) FindByIssuer(ctx context.Context, issuerName string) ([]*model.Ticket, error) {
	query := `
		SELECT ` + ticketColumns + `
		FROM tickets
		WHERE issuer_name = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := conn(ctx, r.pool).Query(ctx, query, issuerName)
	if err != nil {
		return nil, storeErr("find tickets by issuer", err)
	}
	tickets, err := collectTickets(rows)
	if err != nil {
		return nil, storeErr("scan tickets", err)
	}
	return tickets, nil
}

func (r *TicketRepositoryImpl) List(ctx context.Context, filter model.TicketFilter) ([]*model.Ticket, error) {
	wheres := []string{}
	args := []interface{}{}
	argPos := 1

	if filter.IssuerName != "" {
		wheres = append(wheres, fmt.Sprintf("issuer_name = $%d", argPos))
		args = append(args, filter.IssuerName)
		argPos++
	}

	if filter.TicketType != "" {
		wheres = append(wheres, fmt.Sprintf("ticket_type = $%d", argPos))
		args = append(args, filter.TicketType)
		argPos++
	}

	switch filter.Status {
	case model.TicketStatusUsed:
		wheres = append(wheres, "used = TRUE")
	case model.TicketStatusAvailable:
		wheres = append(wheres, "used = FALSE")
	}

	if filter.Search != "" {
		wheres = append(wheres, fmt.Sprintf(
			"(issuer_name ILIKE $%[1]d OR COALESCE(NULLIF(guest_name, ''), issuer_name) ILIKE $%[1]d OR code ILIKE $%[1]d)",
			argPos,
		))
		args = append(args, "%"+escapeLike(filter.Search)+"%")
		argPos++
	}

	where := ""
	if len(wheres) > 0 {
		where = "WHERE " + strings.Join(wheres, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM tickets
		%s
		ORDER BY created_at DESC, id DESC
	`, ticketColumns, where)

	rows, err := conn(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, storeErr("list tickets", err)
	}
	tickets, err := collectTickets(rows)
	if err != nil {
		return nil, storeErr("scan tickets", err)
	}
	return tickets, nil
}

// InsertIfCodeUnique 使用 ON CONFLICT DO NOTHING，在 transaction 中碰撞也不會中止整個 transaction
func (r *TicketRepositoryImpl) InsertIfCodeUnique(ctx context.Context, ticket *model.Ticket) (*model.Ticket, error) {
	query := `
		INSERT INTO tickets (
			ticket_id, issuer_name, guest_name, ticket_type, code,
			special_notes, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT ON CONSTRAINT tickets_code_key DO NOTHING
		RETURNING ` + ticketColumns

	created, err := scanTicket(conn(ctx, r.pool).QueryRow(ctx, query,
		ticket.TicketID, ticket.IssuerName, ticket.GuestName, ticket.TicketType,
		ticket.Code, ticket.SpecialNotes, ticket.CreatedAt,
	))
	if err != nil {
		if err == pgx.ErrNoRows || isUniqueViolation(err, "tickets_code_key") {
			return nil, apperrors.ErrCodeCollision
		}
		return nil, storeErr("insert ticket", err)
	}
	return created, nil
}

// MarkUsedIfUnused 單一條件式 UPDATE；0 筆時才讀取以區分已使用與不存在
func (r *TicketRepositoryImpl) MarkUsedIfUnused(ctx context.Context, code string, validatorID string, at time.Time) (model.RedemptionStatus, *model.Ticket, error) {
	query := `
		UPDATE tickets
		SET used = TRUE, used_at = $2, validated_by = $3
		WHERE code = $1 AND used = FALSE
		RETURNING ` + ticketColumns

	ticket, err := scanTicket(conn(ctx, r.pool).QueryRow(ctx, query, code, at.UTC(), validatorID))
	if err == nil {
		return model.RedemptionAccepted, ticket, nil
	}
	if err != pgx.ErrNoRows {
		return "", nil, storeErr("mark ticket used", err)
	}

	existing, err := r.FindByCode(ctx, code)
	if err != nil {
		if err == apperrors.ErrTicketNotFound {
			return model.RedemptionNotFound, nil, nil
		}
		return "", nil, err
	}
	return model.RedemptionAlreadyUsed, existing, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
