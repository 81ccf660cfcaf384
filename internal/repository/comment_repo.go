package repository

import (
	"context"

	"gorm.io/gorm"

	"miniblog/internal/model"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	FindByID(ctx context.Context, id uint) (*model.Comment, error)
	// FindByPostID lists a post's comments. With visibleOnly set, hidden
	// comments are excluded unless authored by the viewer.
	FindByPostID(ctx context.Context, postID uint, visibleOnly bool, viewerID uint) ([]*model.Comment, error)
	Update(ctx context.Context, comment *model.Comment) error
	// Hide flips the visibility flag (soft delete).
	Hide(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) FindByID(ctx context.Context, id uint) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.WithContext(ctx).
		Preload("Author").
		First(&comment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) FindByPostID(ctx context.Context, postID uint, visibleOnly bool, viewerID uint) ([]*model.Comment, error) {
	var comments []*model.Comment

	q := r.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID)

	if visibleOnly {
		if viewerID != 0 {
			q = q.Where("visible = ? OR author_id = ?", true, viewerID)
		} else {
			q = q.Where("visible = ?", true)
		}
	}

	if err := q.Order("created_at ASC").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) Update(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Save(comment).Error
}

func (r *commentRepository) Hide(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&model.Comment{}).
		Where("id = ?", id).
		Update("visible", false).Error
}

func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Comment{}, "id = ?", id).Error
}
