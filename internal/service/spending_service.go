package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vedran77/budgeter/internal/domain"
	"github.com/vedran77/budgeter/internal/repository"
)

type SpendingService struct {
	spendingRepo repository.SpendingRepository
}

func NewSpendingService(spendingRepo repository.SpendingRepository) *SpendingService {
	return &SpendingService{spendingRepo: spendingRepo}
}

type AddSpendingInput struct {
	Item     string    `json:"item"`
	Category string    `json:"category"`
	Price    float64   `json:"price"`
	PaidAt   time.Time `json:"paid_at"`
}

func (s *SpendingService) Add(ctx context.Context, username string, input AddSpendingInput) (*domain.SpendingEntry, error) {
	entry := &domain.SpendingEntry{
		ID:        uuid.New(),
		Username:  username,
		Item:      input.Item,
		Category:  input.Category,
		Price:     input.Price,
		PaidAt:    input.PaidAt,
		CreatedAt: time.Now(),
	}

	if err := s.spendingRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("creating spending entry: %w", err)
	}

	return entry, nil
}

func (s *SpendingService) ListByUsername(ctx context.Context, username string) ([]domain.SpendingEntry, error) {
	return s.spendingRepo.ListByUsername(ctx, username)
}
