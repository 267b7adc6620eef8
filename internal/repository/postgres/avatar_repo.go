package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vedran77/budgeter/internal/domain"
)

type AvatarRepo struct {
	pool *pgxpool.Pool
}

func NewAvatarRepo(pool *pgxpool.Pool) *AvatarRepo {
	return &AvatarRepo{pool: pool}
}

func (r *AvatarRepo) Create(ctx context.Context, avatar *domain.Avatar) error {
	query := `
		INSERT INTO avatars (id, username, storage_key, content_type, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.pool.Exec(ctx, query,
		avatar.ID, avatar.Username, avatar.StorageKey, avatar.ContentType, avatar.CreatedAt,
	)
	return err
}

func (r *AvatarRepo) GetLatestByUsername(ctx context.Context, username string) (*domain.Avatar, error) {
	query := `
		SELECT id, username, storage_key, content_type, created_at
		FROM avatars
		WHERE username = $1
		ORDER BY created_at DESC
		LIMIT 1`

	var a domain.Avatar
	err := r.pool.QueryRow(ctx, query, username).Scan(
		&a.ID, &a.Username, &a.StorageKey, &a.ContentType, &a.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}
