package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vedran77/budgeter/internal/domain"
	"github.com/vedran77/budgeter/internal/repository"
)

const userColumns = "id, username, full_name, email, password_hash, monthly_budget, created_at"

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, username, full_name, email, password_hash, monthly_budget, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		user.ID, user.Username, user.FullName, user.Email,
		user.PasswordHash, user.MonthlyBudget, user.CreatedAt,
	)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrUniqueViolation {
		return repository.ErrDuplicateUsername
	}
	return err
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.scanUser(ctx, "SELECT "+userColumns+" FROM users WHERE username = $1", username)
}

func (r *UserRepo) UpdateBudget(ctx context.Context, username string, budget float64) (*domain.User, error) {
	query := `
		UPDATE users SET monthly_budget = $1
		WHERE username = $2
		RETURNING ` + userColumns

	return r.scanRow(r.pool.QueryRow(ctx, query, budget, username))
}

func (r *UserRepo) Delete(ctx context.Context, username string) (bool, error) {
	// Spendings and avatars reference users(username) ON DELETE CASCADE,
	// so the whole account goes in one atomic statement.
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE username = $1`, username)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *UserRepo) scanUser(ctx context.Context, query string, arg any) (*domain.User, error) {
	return r.scanRow(r.pool.QueryRow(ctx, query, arg))
}

func (r *UserRepo) scanRow(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Username, &u.FullName, &u.Email,
		&u.PasswordHash, &u.MonthlyBudget, &u.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
