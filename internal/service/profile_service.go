package service

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"

	"gorm.io/gorm"

	"miniblog/internal/dto"
	"miniblog/internal/repository"
	"miniblog/pkg/apperror"
	"miniblog/pkg/storage"
)

type ProfileService interface {
	GetCurrentUser(ctx context.Context, userID uint) (*dto.UserResponse, error)
	UpdateAvatar(ctx context.Context, userID uint, r io.Reader, fileName string) (*dto.UserResponse, error)
}

type profileService struct {
	repo         repository.UserRepository
	imageStorage storage.ImageStorage
}

func NewProfileService(repo repository.UserRepository, imageStorage storage.ImageStorage) ProfileService {
	return &profileService{repo: repo, imageStorage: imageStorage}
}

func (s *profileService) GetCurrentUser(ctx context.Context, userID uint) (*dto.UserResponse, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, err
	}

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *profileService) UpdateAvatar(ctx context.Context, userID uint, r io.Reader, fileName string) (*dto.UserResponse, error) {
	if s.imageStorage == nil {
		return nil, apperror.New(http.StatusServiceUnavailable, "media storage is not configured", nil)
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, err
	}

	url, err := s.imageStorage.UploadImage(ctx, r, "avatars", fileName)
	if err != nil {
		return nil, err
	}

	// Best-effort cleanup of the previous avatar.
	if user.AvatarURL != nil {
		if err := s.imageStorage.DeleteImage(ctx, *user.AvatarURL); err != nil {
			log.Printf("failed to delete old avatar for user %d: %v", userID, err)
		}
	}

	user.AvatarURL = &url
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	resp := dto.NewUserResponse(user)
	return &resp, nil
}
