package repository

import (
	"context"
	"errors"

	"github.com/vedran77/budgeter/internal/domain"
)

// ErrDuplicateUsername is returned by UserRepository.Create when the
// username is already taken. The check is atomic with the insert.
var ErrDuplicateUsername = errors.New("username already exists")

type UserRepository interface {
	// Create inserts the user. Uniqueness of the username is enforced by
	// the store itself, never by a prior read.
	Create(ctx context.Context, user *domain.User) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	// UpdateBudget returns the updated user, or nil if no such user exists.
	// It never inserts.
	UpdateBudget(ctx context.Context, username string, budget float64) (*domain.User, error)
	// Delete reports whether a user row was actually removed. Dependent
	// spending and avatar rows go with it in the same statement.
	Delete(ctx context.Context, username string) (bool, error)
}

type SpendingRepository interface {
	Create(ctx context.Context, entry *domain.SpendingEntry) error
	ListByUsername(ctx context.Context, username string) ([]domain.SpendingEntry, error)
	DeleteAllByUsername(ctx context.Context, username string) error
}

type AvatarRepository interface {
	Create(ctx context.Context, avatar *domain.Avatar) error
	// GetLatestByUsername returns the most recently uploaded avatar,
	// or nil if the user has none.
	GetLatestByUsername(ctx context.Context, username string) (*domain.Avatar, error)
}
