package domain

import (
	"time"

	"github.com/google/uuid"
)

// Avatar references an image stored in blob storage. The newest row per
// username wins on lookup; older rows are kept around.
type Avatar struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	StorageKey  string    `json:"-"`
	ContentType string    `json:"content_type"`
	CreatedAt   time.Time `json:"created_at"`
}
