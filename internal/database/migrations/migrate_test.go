package migrations_test

import (
	"context"
	"testing"

	"graduation-tickets/internal/database/migrations"
	"graduation-tickets/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply_Idempotent(t *testing.T) {
	ctx := context.Background()
	pool := testutil.NewTestPool(t)

	var before int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM schema_migrations`).Scan(&before))
	assert.GreaterOrEqual(t, before, 2)

	require.NoError(t, migrations.Apply(ctx, pool))

	var after int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM schema_migrations`).Scan(&after))
	assert.Equal(t, before, after)
}

func TestSchema_RejectsInconsistentTickets(t *testing.T) {
	ctx := context.Background()
	pool := testutil.NewTestPool(t)

	_, err := pool.Exec(ctx, `INSERT INTO issuers (name, max_tickets) VALUES ('Ana', 5)`)
	require.NoError(t, err)

	tests := []struct {
		name  string
		query string
	}{
		{
			name: "lowercase code",
			query: `INSERT INTO tickets (ticket_id, issuer_name, ticket_type, code)
				VALUES (gen_random_uuid(), 'Ana', 'graduate', 'abcdefghijkl')`,
		},
		{
			name: "unknown type",
			query: `INSERT INTO tickets (ticket_id, issuer_name, ticket_type, code)
				VALUES (gen_random_uuid(), 'Ana', 'vip', 'ABCDEFGHIJKL')`,
		},
		{
			name: "used without validator",
			query: `INSERT INTO tickets (ticket_id, issuer_name, ticket_type, code, used, used_at)
				VALUES (gen_random_uuid(), 'Ana', 'graduate', 'ABCDEFGHIJKL', TRUE, NOW())`,
		},
		{
			name: "unknown issuer",
			query: `INSERT INTO tickets (ticket_id, issuer_name, ticket_type, code)
				VALUES (gen_random_uuid(), 'Nobody', 'graduate', 'ABCDEFGHIJKL')`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := pool.Exec(ctx, tt.query)
			assert.Error(t, err)
		})
	}
}
