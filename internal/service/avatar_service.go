package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vedran77/budgeter/internal/domain"
	"github.com/vedran77/budgeter/internal/repository"
	"github.com/vedran77/budgeter/internal/storage"
)

// MaxAvatarBytes caps uploads at 2 MiB.
const MaxAvatarBytes = 2 * 1024 * 1024

var (
	ErrUnsupportedImage = errors.New("unsupported image type")
	ErrImageTooLarge    = errors.New("image too large")
	ErrNoAvatar         = errors.New("no avatar found")
)

var allowedImageTypes = map[string]bool{
	"image/png":  true,
	"image/jpg":  true,
	"image/jpeg": true,
}

type AvatarService struct {
	avatarRepo repository.AvatarRepository
	blobs      storage.BlobStore
}

func NewAvatarService(avatarRepo repository.AvatarRepository, blobs storage.BlobStore) *AvatarService {
	return &AvatarService{
		avatarRepo: avatarRepo,
		blobs:      blobs,
	}
}

type AvatarView struct {
	URL         string    `json:"url"`
	ContentType string    `json:"content_type"`
	CreatedAt   time.Time `json:"created_at"`
}

// Upload stores the image bytes in blob storage and records it for the
// user. Older avatars are kept; lookup always returns the newest one.
func (s *AvatarService) Upload(ctx context.Context, username, contentType string, data []byte) (*domain.Avatar, error) {
	if !allowedImageTypes[contentType] {
		return nil, ErrUnsupportedImage
	}
	if len(data) > MaxAvatarBytes {
		return nil, ErrImageTooLarge
	}

	avatar := &domain.Avatar{
		ID:          uuid.New(),
		Username:    username,
		StorageKey:  fmt.Sprintf("avatars/%s/%s", username, uuid.New()),
		ContentType: contentType,
		CreatedAt:   time.Now(),
	}

	if err := s.blobs.Put(ctx, avatar.StorageKey, contentType, data); err != nil {
		return nil, fmt.Errorf("storing avatar blob: %w", err)
	}

	if err := s.avatarRepo.Create(ctx, avatar); err != nil {
		return nil, fmt.Errorf("creating avatar record: %w", err)
	}

	return avatar, nil
}

// GetLatest returns the newest avatar for the user with a short-lived
// download URL.
func (s *AvatarService) GetLatest(ctx context.Context, username string) (*AvatarView, error) {
	avatar, err := s.avatarRepo.GetLatestByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("looking up avatar: %w", err)
	}
	if avatar == nil {
		return nil, ErrNoAvatar
	}

	url, err := s.blobs.PresignGet(ctx, avatar.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("presigning avatar url: %w", err)
	}

	return &AvatarView{
		URL:         url,
		ContentType: avatar.ContentType,
		CreatedAt:   avatar.CreatedAt,
	}, nil
}
