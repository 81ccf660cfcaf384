package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"miniblog/internal/dto"
	"miniblog/internal/repository"
	"miniblog/pkg/apperror"
)

type AdminService interface {
	GetAllUsers(ctx context.Context) ([]dto.UserResponse, error)
	UpdateUserRole(ctx context.Context, userID uint, roleName string) (*dto.UserResponse, error)
	SetUserActive(ctx context.Context, userID uint, active bool) (*dto.UserResponse, error)
	DeleteUser(ctx context.Context, userID uint) error
}

type adminService struct {
	repo          repository.UserRepository
	deleteCascade bool
}

func NewAdminService(repo repository.UserRepository, deleteCascade bool) AdminService {
	return &adminService{repo: repo, deleteCascade: deleteCascade}
}

func (s *adminService) GetAllUsers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, dto.NewUserResponse(user))
	}
	return responses, nil
}

func (s *adminService) UpdateUserRole(ctx context.Context, userID uint, roleName string) (*dto.UserResponse, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, err
	}

	role, err := s.repo.FindRoleByName(ctx, roleName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("role not found")
		}
		return nil, err
	}

	user.RoleID = role.ID
	user.Role = *role
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *adminService) SetUserActive(ctx context.Context, userID uint, active bool) (*dto.UserResponse, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, err
	}

	user.Active = active
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *adminService) DeleteUser(ctx context.Context, userID uint) error {
	if _, err := s.repo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("user not found")
		}
		return err
	}

	return s.repo.Delete(ctx, userID, s.deleteCascade)
}
