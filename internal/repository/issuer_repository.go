package repository

import (
	"context"
	"time"

	"graduation-tickets/internal/model"
	apperrors "graduation-tickets/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type IssuerRepository interface {
	Create(ctx context.Context, issuer *model.Issuer) (*model.Issuer, error)
	FindByName(ctx context.Context, name string) (*model.Issuer, error)
	// 快取計數 +1，不會超過 max_tickets
	IncrementTicketsGenerated(ctx context.Context, name string) error
	// 同一發券人的發券流程在 fn 內序列化執行
	WithIssuerLock(ctx context.Context, name string, fn func(ctx context.Context) error) error
}

type IssuerRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewIssuerRepository(pool *pgxpool.Pool) IssuerRepository {
	return &IssuerRepositoryImpl{
		pool: pool,
	}
}

func (r *IssuerRepositoryImpl) Create(ctx context.Context, issuer *model.Issuer) (*model.Issuer, error) {
	query := `
		INSERT INTO issuers (name, tickets_generated, max_tickets)
		VALUES ($1, 0, $2)
		RETURNING id, name, tickets_generated, max_tickets, created_at, updated_at
	`

	var created model.Issuer
	err := conn(ctx, r.pool).QueryRow(ctx, query, issuer.Name, issuer.MaxTickets).Scan(
		&created.ID,
		&created.Name,
		&created.TicketsGenerated,
		&created.MaxTickets,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "issuers_name_key") {
			return nil, apperrors.ErrIssuerAlreadyExists
		}
		return nil, storeErr("create issuer", err)
	}
	return &created, nil
}

func (r *IssuerRepositoryImpl) FindByName(ctx context.Context, name string) (*model.Issuer, error) {
	query := `
		SELECT id, name, tickets_generated, max_tickets, created_at, updated_at
		FROM issuers
		WHERE name = $1
	`

	var issuer model.Issuer
	err := conn(ctx, r.pool).QueryRow(ctx, query, name).Scan(
		&issuer.ID,
		&issuer.Name,
		&issuer.TicketsGenerated,
		&issuer.MaxTickets,
		&issuer.CreatedAt,
		&issuer.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrIssuerNotFound
		}
		return nil, storeErr("find issuer", err)
	}
	return &issuer, nil
}

func (r *IssuerRepositoryImpl) IncrementTicketsGenerated(ctx context.Context, name string) error {
	query := `
		UPDATE issuers
		SET tickets_generated = LEAST(tickets_generated + 1, max_tickets), updated_at = $1
		WHERE name = $2
	`

	result, err := conn(ctx, r.pool).Exec(ctx, query, time.Now().UTC(), name)
	if err != nil {
		return storeErr("increment tickets generated", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrIssuerNotFound
	}
	return nil
}

// WithIssuerLock 開 transaction 並以 FOR UPDATE 鎖住發券人那一列
func (r *IssuerRepositoryImpl) WithIssuerLock(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, func(txCtx context.Context) error {
		query := `
			SELECT id
			FROM issuers
			WHERE name = $1
			FOR UPDATE
		`

		var id int
		if err := txFromContext(txCtx).QueryRow(txCtx, query, name).Scan(&id); err != nil {
			if err == pgx.ErrNoRows {
				return apperrors.ErrIssuerNotFound
			}
			return storeErr("lock issuer", err)
		}
		return fn(txCtx)
	})
}
