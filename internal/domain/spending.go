package domain

import (
	"time"

	"github.com/google/uuid"
)

type SpendingEntry struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Item      string    `json:"item"`
	Category  string    `json:"category"`
	Price     float64   `json:"price"`
	PaidAt    time.Time `json:"paid_at"`
	CreatedAt time.Time `json:"created_at"`
}
