package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vedran77/budgeter/internal/domain"
)

type SpendingRepo struct {
	pool *pgxpool.Pool
}

func NewSpendingRepo(pool *pgxpool.Pool) *SpendingRepo {
	return &SpendingRepo{pool: pool}
}

func (r *SpendingRepo) Create(ctx context.Context, entry *domain.SpendingEntry) error {
	query := `
		INSERT INTO spendings (id, username, item, category, price, paid_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		entry.ID, entry.Username, entry.Item, entry.Category,
		entry.Price, entry.PaidAt, entry.CreatedAt,
	)
	return err
}

func (r *SpendingRepo) ListByUsername(ctx context.Context, username string) ([]domain.SpendingEntry, error) {
	query := `
		SELECT id, username, item, category, price, paid_at, created_at
		FROM spendings
		WHERE username = $1
		ORDER BY paid_at DESC`

	rows, err := r.pool.Query(ctx, query, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.SpendingEntry
	for rows.Next() {
		var e domain.SpendingEntry
		if err := rows.Scan(&e.ID, &e.Username, &e.Item, &e.Category, &e.Price, &e.PaidAt, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *SpendingRepo) DeleteAllByUsername(ctx context.Context, username string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM spendings WHERE username = $1`, username)
	return err
}
