package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vedran77/budgeter/internal/auth"
	"github.com/vedran77/budgeter/internal/domain"
	"github.com/vedran77/budgeter/internal/repository"
	"github.com/vedran77/budgeter/internal/session"
)

var (
	ErrUsernameTaken    = errors.New("username already taken")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrNoSuchUser       = errors.New("no user exists")
	ErrWrongPassword    = errors.New("wrong password")
	ErrUserNotFound     = errors.New("user not found")
)

// AuthService orchestrates the account lifecycle: registration, login,
// logout, profile reads, budget changes and account deletion. It holds no
// per-request state; the credential store is the only shared resource.
type AuthService struct {
	userRepo repository.UserRepository
	ledger   repository.SpendingRepository
	sessions session.Store
	hasher   *auth.Hasher
	tokens   *auth.TokenIssuer
}

func NewAuthService(
	userRepo repository.UserRepository,
	ledger repository.SpendingRepository,
	sessions session.Store,
	hasher *auth.Hasher,
	tokens *auth.TokenIssuer,
) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		ledger:   ledger,
		sessions: sessions,
		hasher:   hasher,
		tokens:   tokens,
	}
}

type RegisterInput struct {
	Username        string  `json:"username"`
	Password        string  `json:"password"`
	ConfirmPassword string  `json:"conf_password"`
	FullName        string  `json:"full_name"`
	Email           string  `json:"email"`
	MonthlyBudget   float64 `json:"budget"`
}

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResponse struct {
	User        *domain.User `json:"user"`
	AccessToken string       `json:"access_token"`
	SessionID   string       `json:"-"`
}

// Register creates the account. The two password fields are compared as
// plaintext before anything is hashed; only the single agreed-on value is
// hashed and stored. No token is issued here, the client logs in after.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if input.Password != input.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &domain.User{
		ID:            uuid.New(),
		Username:      input.Username,
		FullName:      input.FullName,
		Email:         input.Email,
		PasswordHash:  hash,
		MonthlyBudget: input.MonthlyBudget,
		CreatedAt:     time.Now(),
	}

	// No lookup first: the store enforces uniqueness atomically, so two
	// concurrent registrations for one username cannot both pass.
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return user, nil
}

// Login verifies the credentials and on success returns a signed token plus
// a server-side session id for the cookie. An unknown username and a wrong
// password are distinct outcomes.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, fmt.Errorf("looking up user: %w", err)
	}
	if user == nil {
		return nil, ErrNoSuchUser
	}

	if !s.hasher.Verify(input.Password, user.PasswordHash) {
		return nil, ErrWrongPassword
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}

	sessionID, err := s.sessions.Create(ctx, session.Session{
		UserID:   user.ID,
		Username: user.Username,
	})
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	return &AuthResponse{User: user, AccessToken: token, SessionID: sessionID}, nil
}

// Logout destroys the server-side session if one exists. Best-effort: a
// missing or already-deleted session is not an error.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.sessions.Delete(ctx, sessionID)
}

func (s *AuthService) GetProfile(ctx context.Context, username string) (*domain.Profile, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("looking up user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return user.Profile(), nil
}

// ChangeBudget updates the monthly budget of an existing user. It never
// creates one: an unknown username is ErrUserNotFound.
func (s *AuthService) ChangeBudget(ctx context.Context, username string, newBudget float64) (*domain.User, error) {
	user, err := s.userRepo.UpdateBudget(ctx, username, newBudget)
	if err != nil {
		return nil, fmt.Errorf("updating budget: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return user, nil
}

// DeleteAccount removes the user and every spending entry owned by the
// username. The postgres store cascades both in one statement; the explicit
// ledger call keeps the contract honest for stores that cannot.
func (s *AuthService) DeleteAccount(ctx context.Context, username string) error {
	deleted, err := s.userRepo.Delete(ctx, username)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	if !deleted {
		return ErrUserNotFound
	}

	if err := s.ledger.DeleteAllByUsername(ctx, username); err != nil {
		return fmt.Errorf("deleting spendings: %w", err)
	}

	return nil
}
