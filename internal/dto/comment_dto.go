package dto

import (
	"time"

	"miniblog/internal/model"
)

type CreateCommentRequest struct {
	Body string `json:"body" binding:"required,min=1"`
}

type UpdateCommentRequest struct {
	Body *string `json:"body" binding:"omitempty,min=1"`
}

type CommentResponse struct {
	ID        uint      `json:"id"`
	Body      string    `json:"body"`
	Author    string    `json:"author"`
	AuthorID  uint      `json:"author_id"`
	PostID    uint      `json:"post_id"`
	Visible   bool      `json:"visible"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewCommentResponse(comment *model.Comment) CommentResponse {
	return CommentResponse{
		ID:        comment.ID,
		Body:      comment.Body,
		Author:    comment.Author.Username,
		AuthorID:  comment.AuthorID,
		PostID:    comment.PostID,
		Visible:   comment.Visible,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
}
