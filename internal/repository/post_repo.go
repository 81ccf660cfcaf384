package repository

import (
	"context"

	"gorm.io/gorm"

	"miniblog/internal/model"
)

// PostQuery narrows a listing to what the caller is allowed to see.
type PostQuery struct {
	// PublishedOnly hides drafts and archived posts, except the viewer's own.
	PublishedOnly bool
	ViewerID      uint
	Status        string
	CategoryID    uint
	Offset        int
	Limit         int
}

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id uint) (*model.Post, error)
	FindAll(ctx context.Context, query PostQuery) ([]*model.Post, int64, error)
	Update(ctx context.Context, post *model.Post) error
	// Delete removes the post and its comments in one transaction.
	Delete(ctx context.Context, id uint) error
	CountByCategory(ctx context.Context, categoryID uint) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) FindByID(ctx context.Context, id uint) (*model.Post, error) {
	var post model.Post
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Author.Role").
		Preload("Category").
		First(&post, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) FindAll(ctx context.Context, query PostQuery) ([]*model.Post, int64, error) {
	var posts []*model.Post
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Post{})

	if query.PublishedOnly {
		if query.ViewerID != 0 {
			q = q.Where("status = ? OR author_id = ?", model.PostStatusPublished, query.ViewerID)
		} else {
			q = q.Where("status = ?", model.PostStatusPublished)
		}
	}
	if query.Status != "" {
		q = q.Where("status = ?", query.Status)
	}
	if query.CategoryID != 0 {
		q = q.Where("category_id = ?", query.CategoryID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := q.
		Preload("Author").
		Preload("Category").
		Order("created_at DESC").
		Offset(query.Offset).
		Limit(query.Limit).
		Find(&posts).Error; err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

func (r *postRepository) Update(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Post{}, "id = ?", id).Error
	})
}

func (r *postRepository) CountByCategory(ctx context.Context, categoryID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Post{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
