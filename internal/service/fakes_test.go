package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/vedran77/budgeter/internal/domain"
	"github.com/vedran77/budgeter/internal/repository"
	"github.com/vedran77/budgeter/internal/session"
)

// In-memory stands-ins for the postgres repositories and the redis/S3
// stores. Mutation is mutex-guarded so the uniqueness check in Create is
// atomic, like the real unique index.

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]domain.User)}
}

func (r *memUserRepo) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.Username]; exists {
		return repository.ErrDuplicateUsername
	}
	r.users[user.Username] = *user
	return nil
}

func (r *memUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, exists := r.users[username]
	if !exists {
		return nil, nil
	}
	return &u, nil
}

func (r *memUserRepo) UpdateBudget(ctx context.Context, username string, budget float64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, exists := r.users[username]
	if !exists {
		return nil, nil
	}
	u.MonthlyBudget = budget
	r.users[username] = u
	return &u, nil
}

func (r *memUserRepo) Delete(ctx context.Context, username string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, exists := r.users[username]
	delete(r.users, username)
	return exists, nil
}

type memSpendingRepo struct {
	mu      sync.Mutex
	entries []domain.SpendingEntry
}

func newMemSpendingRepo() *memSpendingRepo {
	return &memSpendingRepo{}
}

func (r *memSpendingRepo) Create(ctx context.Context, entry *domain.SpendingEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, *entry)
	return nil
}

func (r *memSpendingRepo) ListByUsername(ctx context.Context, username string) ([]domain.SpendingEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.SpendingEntry
	for _, e := range r.entries {
		if e.Username == username {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memSpendingRepo) DeleteAllByUsername(ctx context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.entries[:0]
	for _, e := range r.entries {
		if e.Username != username {
			kept = append(kept, e)
		}
	}
	r.entries = kept
	return nil
}

type memAvatarRepo struct {
	mu      sync.Mutex
	avatars []domain.Avatar
}

func newMemAvatarRepo() *memAvatarRepo {
	return &memAvatarRepo{}
}

func (r *memAvatarRepo) Create(ctx context.Context, avatar *domain.Avatar) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.avatars = append(r.avatars, *avatar)
	return nil
}

func (r *memAvatarRepo) GetLatestByUsername(ctx context.Context, username string) (*domain.Avatar, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var latest *domain.Avatar
	for i := range r.avatars {
		a := r.avatars[i]
		if a.Username != username {
			continue
		}
		if latest == nil || a.CreatedAt.After(latest.CreatedAt) {
			latest = &a
		}
	}
	return latest, nil
}

type memSessionStore struct {
	mu       sync.Mutex
	sessions map[string]session.Session
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: make(map[string]session.Session)}
}

func (s *memSessionStore) Create(ctx context.Context, sess session.Session) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New().String()
	s.sessions[id] = sess
	return id, nil
}

func (s *memSessionStore) Get(ctx context.Context, id string) (*session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, exists := s.sessions[id]
	if !exists {
		return nil, nil
	}
	return &sess, nil
}

func (s *memSessionStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

type memBlobStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func newMemBlobStore() *memBlobStore {
	return &memBlobStore{blobs: make(map[string][]byte)}
}

func (s *memBlobStore) Put(ctx context.Context, key, contentType string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.blobs[key] = data
	return nil
}

func (s *memBlobStore) PresignGet(ctx context.Context, key string) (string, error) {
	return "https://blobs.test/" + key, nil
}
