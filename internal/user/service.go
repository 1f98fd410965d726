package user

import (
	"context"
	"errors"
	"fmt"
	"path"
)

// Common errors
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrAvatarsDisabled = errors.New("avatar storage is not configured")
)

// AvatarUploader stores avatar images and returns their public URL.
type AvatarUploader interface {
	Upload(ctx context.Context, objectPath string, data []byte, contentType string) (string, error)
}

// Service handles profile business logic
type Service struct {
	repo    *Repository
	avatars AvatarUploader
}

// NewService creates a new user service with dependencies injected
func NewService(repo *Repository, avatars AvatarUploader) *Service {
	return &Service{repo: repo, avatars: avatars}
}

// GetByID retrieves a profile by id
func (s *Service) GetByID(ctx context.Context, id string) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// GetByHandle retrieves a profile by exact handle match
func (s *Service) GetByHandle(ctx context.Context, handle string) (*User, error) {
	u, err := s.repo.GetByHandle(ctx, handle)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// UpdateProfile modifies the caller's own profile
func (s *Service) UpdateProfile(ctx context.Context, id string, req *UpdateProfileRequest) (*User, error) {
	u, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// SetAvatar uploads an avatar image to the blob store and records its public
// URL on the profile. Images are stored under avatars/<user-id><ext>, so a
// re-upload replaces the previous one.
func (s *Service) SetAvatar(ctx context.Context, id string, data []byte, filename, contentType string) (*User, error) {
	if s.avatars == nil {
		return nil, ErrAvatarsDisabled
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrUserNotFound
	}

	objectPath := "avatars/" + id + path.Ext(filename)
	url, err := s.avatars.Upload(ctx, objectPath, data, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to upload avatar: %w", err)
	}

	return s.repo.Update(ctx, id, &UpdateProfileRequest{AvatarURL: &url})
}
