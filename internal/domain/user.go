package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID            uuid.UUID `json:"id"`
	Username      string    `json:"username"`
	FullName      string    `json:"full_name"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	MonthlyBudget float64   `json:"monthly_budget"`
	CreatedAt     time.Time `json:"created_at"`
}

// Profile is the read-only projection returned to clients. It deliberately
// has no field for the password hash.
type Profile struct {
	FullName      string    `json:"full_name"`
	Email         string    `json:"email"`
	MonthlyBudget float64   `json:"monthly_budget"`
	CreatedAt     time.Time `json:"created_at"`
}

func (u *User) Profile() *Profile {
	return &Profile{
		FullName:      u.FullName,
		Email:         u.Email,
		MonthlyBudget: u.MonthlyBudget,
		CreatedAt:     u.CreatedAt,
	}
}
