package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"miniblog/internal/dto"
	"miniblog/internal/model"
	"miniblog/internal/repository"
	"miniblog/pkg/apperror"
)

type CategoryService interface {
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	GetAllCategories(ctx context.Context) ([]dto.CategoryResponse, error)
	GetCategoryByID(ctx context.Context, id uint) (*dto.CategoryResponse, error)
	UpdateCategory(ctx context.Context, id uint, req dto.UpdateCategoryRequest) (*dto.CategoryResponse, error)
	DeleteCategory(ctx context.Context, id uint) error
}

type categoryService struct {
	repo     repository.CategoryRepository
	postRepo repository.PostRepository
}

func NewCategoryService(repo repository.CategoryRepository, postRepo repository.PostRepository) CategoryService {
	return &categoryService{repo: repo, postRepo: postRepo}
}

func (s *categoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if existing, _ := s.repo.FindByName(ctx, req.Name); existing != nil {
		return nil, apperror.Conflict(fmt.Sprintf("category %q already exists", req.Name))
	}

	category := &model.Category{
		Name:        req.Name,
		Description: req.Description,
	}

	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}

	resp := dto.NewCategoryResponse(category)
	return &resp, nil
}

func (s *categoryService) GetAllCategories(ctx context.Context) ([]dto.CategoryResponse, error) {
	categories, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		responses = append(responses, dto.NewCategoryResponse(category))
	}
	return responses, nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, id uint) (*dto.CategoryResponse, error) {
	category, err := s.findCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := dto.NewCategoryResponse(category)
	return &resp, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, id uint, req dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	category, err := s.findCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != category.Name {
		if existing, _ := s.repo.FindByName(ctx, *req.Name); existing != nil {
			return nil, apperror.Conflict(fmt.Sprintf("category %q already exists", *req.Name))
		}
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}

	if err := s.repo.Update(ctx, category); err != nil {
		return nil, err
	}

	resp := dto.NewCategoryResponse(category)
	return &resp, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, id uint) error {
	if _, err := s.findCategory(ctx, id); err != nil {
		return err
	}

	// Refuse deletion while posts still reference the category.
	count, err := s.postRepo.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperror.Conflict(fmt.Sprintf("category is still referenced by %d post(s)", count))
	}

	return s.repo.Delete(ctx, id)
}

func (s *categoryService) findCategory(ctx context.Context, id uint) (*model.Category, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("category not found")
		}
		return nil, err
	}
	return category, nil
}
