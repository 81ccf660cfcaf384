package dto

import (
	"time"

	"miniblog/internal/model"
)

type CreatePostRequest struct {
	Title      string `json:"title" binding:"required,min=1,max=255"`
	Body       string `json:"body" binding:"required,min=1"`
	Status     string `json:"status" binding:"omitempty,oneof=draft published archived"`
	CategoryID uint   `json:"category_id" binding:"required"`
}

// UpdatePostRequest carries partial-update semantics: absent fields keep
// their prior values.
type UpdatePostRequest struct {
	Title      *string `json:"title" binding:"omitempty,min=1,max=255"`
	Body       *string `json:"body" binding:"omitempty,min=1"`
	Status     *string `json:"status" binding:"omitempty,oneof=draft published archived"`
	CategoryID *uint   `json:"category_id"`
}

type PostFilter struct {
	PageFilter
	Status     string `form:"status" binding:"omitempty,oneof=draft published archived"`
	CategoryID uint   `form:"category_id"`
}

type PostResponse struct {
	ID         uint      `json:"id"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	Status     string    `json:"status"`
	Author     string    `json:"author"`
	AuthorID   uint      `json:"author_id"`
	CategoryID uint      `json:"category_id"`
	Category   string    `json:"category,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type PaginatedPostResponse struct {
	Data []PostResponse `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

func NewPostResponse(post *model.Post) PostResponse {
	return PostResponse{
		ID:         post.ID,
		Title:      post.Title,
		Body:       post.Body,
		Status:     post.Status,
		Author:     post.Author.Username,
		AuthorID:   post.AuthorID,
		CategoryID: post.CategoryID,
		Category:   post.Category.Name,
		CreatedAt:  post.CreatedAt,
		UpdatedAt:  post.UpdatedAt,
	}
}
