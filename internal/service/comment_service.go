package service

import (
	"context"
	"errors"
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

type CommentService interface {
	CreateComment(ctx context.Context, user *model.User, postID uint, req dto.CreateCommentRequest) (*dto.CommentResponse, error)
	GetCommentsByPostID(ctx context.Context, viewer *model.User, postID uint) ([]dto.CommentResponse, error)
	UpdateComment(ctx context.Context, user *model.User, commentID uint, req dto.UpdateCommentRequest) (*dto.CommentResponse, error)
	DeleteComment(ctx context.Context, user *model.User, commentID uint) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	redisClient *redis.Client
	sanitizer   *bluemonday.Policy
	hardDelete  bool
	createLimit time.Duration
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository, redisClient *redis.Client, hardDelete bool, createLimit time.Duration) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		redisClient: redisClient,
		sanitizer:   bluemonday.UGCPolicy(),
		hardDelete:  hardDelete,
		createLimit: createLimit,
	}
}

func (s *commentService) CreateComment(ctx context.Context, user *model.User, postID uint, req dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	if err := checkCreationCooldown(ctx, s.redisClient, user.ID, "comment", s.createLimit); err != nil {
		return nil, err
	}

	creationFailed := true
	defer func() {
		if creationFailed {
			_ = ClearRateLimit(ctx, s.redisClient, user.ID, "comment")
		}
	}()

	if _, err := s.visiblePost(ctx, user, postID); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		Body:     s.sanitizer.Sanitize(req.Body),
		AuthorID: user.ID,
		PostID:   postID,
		Visible:  true,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	created, err := s.commentRepo.FindByID(ctx, comment.ID)
	if err != nil {
		return nil, err
	}

	creationFailed = false

	resp := dto.NewCommentResponse(created)
	return &resp, nil
}

func (s *commentService) GetCommentsByPostID(ctx context.Context, viewer *model.User, postID uint) ([]dto.CommentResponse, error) {
	if _, err := s.visiblePost(ctx, viewer, postID); err != nil {
		return nil, err
	}

	visibleOnly := !policy.CanSeeUnpublished(viewerRole(viewer))
	var viewerID uint
	if viewer != nil {
		viewerID = viewer.ID
	}

	comments, err := s.commentRepo.FindByPostID(ctx, postID, visibleOnly, viewerID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		responses = append(responses, dto.NewCommentResponse(comment))
	}
	return responses, nil
}

func (s *commentService) UpdateComment(ctx context.Context, user *model.User, commentID uint, req dto.UpdateCommentRequest) (*dto.CommentResponse, error) {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("comment not found")
		}
		return nil, err
	}

	if !policy.Allow(userRole(user), user.ID, policy.MutateComment, comment.AuthorID) {
		return nil, apperror.Forbidden("only the author or an admin can edit this comment")
	}

	if req.Body != nil {
		comment.Body = s.sanitizer.Sanitize(*req.Body)
	}

	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}

	resp := dto.NewCommentResponse(comment)
	return &resp, nil
}

func (s *commentService) DeleteComment(ctx context.Context, user *model.User, commentID uint) error {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("comment not found")
		}
		return err
	}

	if !policy.Allow(userRole(user), user.ID, policy.MutateComment, comment.AuthorID) {
		return apperror.Forbidden("only the author or an admin can delete this comment")
	}

	if s.hardDelete {
		return s.commentRepo.Delete(ctx, commentID)
	}
	return s.commentRepo.Hide(ctx, commentID)
}

// visiblePost gates comment operations on the parent post's visibility.
func (s *commentService) visiblePost(ctx context.Context, viewer *model.User, postID uint) (*model.Post, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("post not found")
		}
		return nil, err
	}

	if post.Status != model.PostStatusPublished {
		isOwner := viewer != nil && viewer.ID == post.AuthorID
		if !policy.CanSeeUnpublished(viewerRole(viewer)) && !isOwner {
			return nil, apperror.NotFound("post not found")
		}
	}

	return post, nil
}
