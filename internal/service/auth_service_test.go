package service

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vedran77/budgeter/internal/auth"
)

func newTestAuthService() (*AuthService, *memUserRepo, *memSpendingRepo, *memSessionStore) {
	userRepo := newMemUserRepo()
	ledger := newMemSpendingRepo()
	sessions := newMemSessionStore()
	svc := NewAuthService(
		userRepo,
		ledger,
		sessions,
		auth.NewHasher(),
		auth.NewTokenIssuer("test-secret", time.Hour),
	)
	return svc, userRepo, ledger, sessions
}

func registerInput(username string) RegisterInput {
	return RegisterInput{
		Username:        username,
		Password:        "Password1",
		ConfirmPassword: "Password1",
		FullName:        "Test User",
		Email:           username + "@example.com",
		MonthlyBudget:   500,
	}
}

func TestRegisterThenLogin(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newTestAuthService()
	ctx := context.Background()

	user, err := svc.Register(ctx, registerInput("alice"))
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "Password1", user.PasswordHash)

	resp, err := svc.Login(ctx, LoginInput{Username: "alice", Password: "Password1"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)
	require.NotEmpty(t, resp.SessionID)

	claims, err := auth.NewTokenIssuer("test-secret", time.Hour).Verify(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, user.ID.String(), claims.Subject)
}

func TestRegister_PasswordMismatch(t *testing.T) {
	t.Parallel()

	svc, userRepo, _, _ := newTestAuthService()

	input := registerInput("bob")
	input.ConfirmPassword = "Different1"

	_, err := svc.Register(context.Background(), input)
	assert.ErrorIs(t, err, ErrPasswordMismatch)

	// Nothing persisted on mismatch.
	u, err := userRepo.GetByUsername(context.Background(), "bob")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, registerInput("carol"))
	require.NoError(t, err)

	_, err = svc.Register(ctx, registerInput("carol"))
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRegister_ConcurrentDuplicates(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newTestAuthService()
	ctx := context.Background()

	const attempts = 16
	var successes atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Register(ctx, registerInput("dave")); err == nil {
				successes.Add(1)
			} else {
				assert.ErrorIs(t, err, ErrUsernameTaken)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), successes.Load(), "exactly one concurrent registration may win")
}

func TestLogin_Failures(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, registerInput("erin"))
	require.NoError(t, err)

	tests := []struct {
		name    string
		input   LoginInput
		wantErr error
	}{
		{"unknown user", LoginInput{Username: "nobody", Password: "Password1"}, ErrNoSuchUser},
		{"wrong password", LoginInput{Username: "erin", Password: "wrong"}, ErrWrongPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(ctx, tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLogout_BestEffort(t *testing.T) {
	t.Parallel()

	svc, _, _, sessions := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, registerInput("frank"))
	require.NoError(t, err)

	resp, err := svc.Login(ctx, LoginInput{Username: "frank", Password: "Password1"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, resp.SessionID))

	sess, err := sessions.Get(ctx, resp.SessionID)
	require.NoError(t, err)
	assert.Nil(t, sess, "session must be destroyed")

	// Unknown or empty handles are fine too.
	assert.NoError(t, svc.Logout(ctx, resp.SessionID))
	assert.NoError(t, svc.Logout(ctx, ""))
}

func TestGetProfile(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, registerInput("grace"))
	require.NoError(t, err)

	profile, err := svc.GetProfile(ctx, "grace")
	require.NoError(t, err)
	assert.Equal(t, "Test User", profile.FullName)
	assert.Equal(t, "grace@example.com", profile.Email)
	assert.Equal(t, 500.0, profile.MonthlyBudget)
	assert.False(t, profile.CreatedAt.IsZero())

	_, err = svc.GetProfile(ctx, "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetProfile_NeverLeaksHash(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, registerInput("heidi"))
	require.NoError(t, err)

	profile, err := svc.GetProfile(ctx, "heidi")
	require.NoError(t, err)

	data, err := json.Marshal(profile)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.NotContains(t, fields, "password_hash")
	assert.NotContains(t, fields, "password")
}

func TestChangeBudget(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, registerInput("ivan"))
	require.NoError(t, err)

	user, err := svc.ChangeBudget(ctx, "ivan", 750)
	require.NoError(t, err)
	assert.Equal(t, 750.0, user.MonthlyBudget)

	// No upsert: unknown usernames are rejected, not materialized.
	_, err = svc.ChangeBudget(ctx, "nobody", 100)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDeleteAccount_CascadesSpendings(t *testing.T) {
	t.Parallel()

	svc, _, ledger, _ := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, registerInput("judy"))
	require.NoError(t, err)

	spendingSvc := NewSpendingService(ledger)
	for i := 0; i < 3; i++ {
		_, err := spendingSvc.Add(ctx, "judy", AddSpendingInput{Item: "coffee", Price: 3.5, PaidAt: time.Now()})
		require.NoError(t, err)
	}
	_, err = spendingSvc.Add(ctx, "mallory", AddSpendingInput{Item: "tea", Price: 2, PaidAt: time.Now()})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAccount(ctx, "judy"))

	entries, err := ledger.ListByUsername(ctx, "judy")
	require.NoError(t, err)
	assert.Empty(t, entries, "deleting the account must delete its spendings")

	others, err := ledger.ListByUsername(ctx, "mallory")
	require.NoError(t, err)
	assert.Len(t, others, 1, "other users' spendings stay put")

	assert.ErrorIs(t, svc.DeleteAccount(ctx, "judy"), ErrUserNotFound)
}

// The end-to-end account lifecycle: register, login, wrong password,
// delete, login again.
func TestAccountLifecycle(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, registerInput("alice"))
	require.NoError(t, err)

	resp, err := svc.Login(ctx, LoginInput{Username: "alice", Password: "Password1"})
	require.NoError(t, err)

	claims, err := auth.NewTokenIssuer("test-secret", time.Hour).Verify(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)

	_, err = svc.Login(ctx, LoginInput{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, ErrWrongPassword)

	require.NoError(t, svc.DeleteAccount(ctx, "alice"))

	_, err = svc.Login(ctx, LoginInput{Username: "alice", Password: "Password1"})
	assert.ErrorIs(t, err, ErrNoSuchUser)
}
