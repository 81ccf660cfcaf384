package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"miniblog/internal/dto"
	"miniblog/internal/model"
	"miniblog/internal/policy"
	"miniblog/internal/repository"
	"miniblog/pkg/apperror"
)

type PostService interface {
	CreatePost(ctx context.Context, user *model.User, req dto.CreatePostRequest) (*dto.PostResponse, error)
	GetAllPosts(ctx context.Context, viewer *model.User, filter dto.PostFilter) (*dto.PaginatedPostResponse, error)
	GetPostByID(ctx context.Context, viewer *model.User, postID uint) (*dto.PostResponse, error)
	UpdatePost(ctx context.Context, user *model.User, postID uint, req dto.UpdatePostRequest) (*dto.PostResponse, error)
	DeletePost(ctx context.Context, user *model.User, postID uint) error
	SearchPosts(ctx context.Context, viewer *model.User, query string, limit int) ([]dto.PostResponse, error)
}

type postService struct {
	postRepo     repository.PostRepository
	categoryRepo repository.CategoryRepository
	search       SearchService
	redisClient  *redis.Client
	sanitizer    *bluemonday.Policy
	createLimit  time.Duration
}

func NewPostService(postRepo repository.PostRepository, categoryRepo repository.CategoryRepository, search SearchService, redisClient *redis.Client, createLimit time.Duration) PostService {
	return &postService{
		postRepo:     postRepo,
		categoryRepo: categoryRepo,
		search:       search,
		redisClient:  redisClient,
		sanitizer:    bluemonday.UGCPolicy(),
		createLimit:  createLimit,
	}
}

func (s *postService) CreatePost(ctx context.Context, user *model.User, req dto.CreatePostRequest) (*dto.PostResponse, error) {
	if err := checkCreationCooldown(ctx, s.redisClient, user.ID, "post", s.createLimit); err != nil {
		return nil, err
	}

	creationFailed := true
	defer func() {
		if creationFailed {
			_ = ClearRateLimit(ctx, s.redisClient, user.ID, "post")
		}
	}()

	if _, err := s.categoryRepo.FindByID(ctx, req.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusBadRequest,
				fmt.Sprintf("category with id %d does not exist", req.CategoryID), apperror.ErrBadRequest)
		}
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = model.PostStatusDraft
	}

	post := &model.Post{
		Title:      s.sanitizer.Sanitize(req.Title),
		Body:       s.sanitizer.Sanitize(req.Body),
		Status:     status,
		AuthorID:   user.ID,
		CategoryID: req.CategoryID,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	created, err := s.postRepo.FindByID(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	creationFailed = false

	s.indexPost(created)

	resp := dto.NewPostResponse(created)
	return &resp, nil
}

func (s *postService) GetAllPosts(ctx context.Context, viewer *model.User, filter dto.PostFilter) (*dto.PaginatedPostResponse, error) {
	filter.Normalize()

	query := repository.PostQuery{
		Status:     filter.Status,
		CategoryID: filter.CategoryID,
		Offset:     (filter.Page - 1) * filter.Limit,
		Limit:      filter.Limit,
	}

	if !viewerRole(viewer).AtLeast(policy.RoleEditor) {
		query.PublishedOnly = true
		if viewer != nil {
			query.ViewerID = viewer.ID
		}
	}

	posts, total, err := s.postRepo.FindAll(ctx, query)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.PostResponse, 0, len(posts))
	for _, post := range posts {
		responses = append(responses, dto.NewPostResponse(post))
	}

	return &dto.PaginatedPostResponse{
		Data: responses,
		Meta: dto.NewPaginationMeta(filter.PageFilter, total),
	}, nil
}

func (s *postService) GetPostByID(ctx context.Context, viewer *model.User, postID uint) (*dto.PostResponse, error) {
	post, err := s.findVisiblePost(ctx, viewer, postID)
	if err != nil {
		return nil, err
	}

	resp := dto.NewPostResponse(post)
	return &resp, nil
}

func (s *postService) UpdatePost(ctx context.Context, user *model.User, postID uint, req dto.UpdatePostRequest) (*dto.PostResponse, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("post not found")
		}
		return nil, err
	}

	role := userRole(user)
	if !policy.Allow(role, user.ID, policy.MutatePost, post.AuthorID) {
		return nil, apperror.Forbidden("only the author or an admin can edit this post")
	}

	// Partial-field semantics: absent fields retain prior values.
	if req.Title != nil {
		post.Title = s.sanitizer.Sanitize(*req.Title)
	}
	if req.Body != nil {
		post.Body = s.sanitizer.Sanitize(*req.Body)
	}
	if req.Status != nil {
		post.Status = *req.Status
	}
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperror.New(http.StatusBadRequest,
					fmt.Sprintf("category with id %d does not exist", *req.CategoryID), apperror.ErrBadRequest)
			}
			return nil, err
		}
		post.CategoryID = *req.CategoryID
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	updated, err := s.postRepo.FindByID(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	s.indexPost(updated)

	resp := dto.NewPostResponse(updated)
	return &resp, nil
}

func (s *postService) DeletePost(ctx context.Context, user *model.User, postID uint) error {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("post not found")
		}
		return err
	}

	role := userRole(user)
	if !policy.Allow(role, user.ID, policy.MutatePost, post.AuthorID) {
		return apperror.Forbidden("only the author or an admin can delete this post")
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return err
	}

	if s.search != nil {
		if err := s.search.RemovePost(postID); err != nil {
			log.Printf("failed to remove post %d from search index: %v", postID, err)
		}
	}

	return nil
}

func (s *postService) SearchPosts(ctx context.Context, viewer *model.User, query string, limit int) ([]dto.PostResponse, error) {
	if s.search == nil {
		return nil, apperror.New(http.StatusServiceUnavailable, "search is not configured", nil)
	}

	publishedOnly := !viewerRole(viewer).AtLeast(policy.RoleEditor)
	return s.search.SearchPosts(query, publishedOnly, limit)
}

// findVisiblePost loads a post and hides drafts and archived posts from
// callers without elevated role, other than the author. Invisible posts are
// indistinguishable from missing ones.
func (s *postService) findVisiblePost(ctx context.Context, viewer *model.User, postID uint) (*model.Post, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("post not found")
		}
		return nil, err
	}

	if post.Status != model.PostStatusPublished {
		role := viewerRole(viewer)
		isOwner := viewer != nil && viewer.ID == post.AuthorID
		if !policy.CanSeeUnpublished(role) && !isOwner {
			return nil, apperror.NotFound("post not found")
		}
	}

	return post, nil
}

func (s *postService) indexPost(post *model.Post) {
	if s.search == nil {
		return
	}
	if err := s.search.IndexPost(post); err != nil {
		log.Printf("failed to index post %d: %v", post.ID, err)
	}
}

func userRole(user *model.User) policy.Role {
	return policy.Role(user.Role.Name)
}

func viewerRole(viewer *model.User) policy.Role {
	if viewer == nil {
		return ""
	}
	return policy.Role(viewer.Role.Name)
}
