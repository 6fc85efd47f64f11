package usecase

import (
	"context"
	"errors"
	"time"

	"media-review/internal/access"
	"media-review/internal/data/entity"
	"media-review/internal/data/repository"
	"media-review/internal/dto/request"
	"media-review/internal/dto/response"
	"media-review/pkg/apperr"
	"media-review/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CommentService interface {
	List(ctx context.Context, titleID, reviewID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CommentResponse], error)
	Get(ctx context.Context, titleID, reviewID, commentID uuid.UUID) (*response.CommentResponse, error)
	Create(ctx context.Context, subject access.Subject, titleID, reviewID uuid.UUID, req *request.CommentRequest) (*response.CommentResponse, error)
	Update(ctx context.Context, subject access.Subject, titleID, reviewID, commentID uuid.UUID, req *request.CommentUpdateRequest) (*response.CommentResponse, error)
	Delete(ctx context.Context, subject access.Subject, titleID, reviewID, commentID uuid.UUID) error
}

type commentService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCommentService(repo *repository.Repository, log *zap.Logger) CommentService {
	return &commentService{
		repo: repo,
		log:  log.With(zap.String("service", "comment")),
	}
}

func (s *commentService) List(ctx context.Context, titleID, reviewID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CommentResponse], error) {
	if _, err := loadReview(ctx, s.repo, titleID, reviewID); err != nil {
		return nil, err
	}

	comments, err := s.repo.Comment.FindByReviewID(ctx, reviewID, req.Limit(), req.Offset())
	if err != nil {
		return nil, apperr.Internal(err)
	}

	total, err := s.repo.Comment.CountByReviewID(ctx, reviewID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	data := make([]response.CommentResponse, 0, len(comments))
	for _, c := range comments {
		data = append(data, response.CommentToResponse(c))
	}

	return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
}

func (s *commentService) load(ctx context.Context, titleID, reviewID, commentID uuid.UUID) (*entity.Comment, error) {
	if _, err := loadReview(ctx, s.repo, titleID, reviewID); err != nil {
		return nil, err
	}

	comment, err := s.repo.Comment.FindByID(ctx, commentID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if comment == nil || comment.ReviewID != reviewID {
		return nil, apperr.NotFound("comment")
	}
	return comment, nil
}

func (s *commentService) Get(ctx context.Context, titleID, reviewID, commentID uuid.UUID) (*response.CommentResponse, error) {
	comment, err := s.load(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	resp := response.CommentToResponse(comment)
	return &resp, nil
}

func (s *commentService) Create(ctx context.Context, subject access.Subject, titleID, reviewID uuid.UUID, req *request.CommentRequest) (*response.CommentResponse, error) {
	if err := access.CheckPermission(subject, access.ResourceComment, access.ActionCreate).Err(); err != nil {
		return nil, err
	}
	if err := utils.Validate(req); err != nil {
		return nil, err
	}
	if _, err := loadReview(ctx, s.repo, titleID, reviewID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	comment := &entity.Comment{
		ID:        uuid.New(),
		ReviewID:  reviewID,
		AuthorID:  subject.ID,
		Text:      req.Text,
		PubDate:   now,
		UpdatedAt: now,
	}

	if err := s.repo.Comment.Create(ctx, comment); err != nil {
		return nil, apperr.Internal(err)
	}

	created, err := s.repo.Comment.FindByID(ctx, comment.ID)
	if err != nil || created == nil {
		created = comment
	}

	resp := response.CommentToResponse(created)
	return &resp, nil
}

func (s *commentService) Update(ctx context.Context, subject access.Subject, titleID, reviewID, commentID uuid.UUID, req *request.CommentUpdateRequest) (*response.CommentResponse, error) {
	if err := utils.Validate(req); err != nil {
		return nil, err
	}

	comment, err := s.load(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	if err := access.CheckObjectPermission(subject, access.ResourceComment, access.ActionPartialUpdate, comment.AuthorID).Err(); err != nil {
		return nil, err
	}

	if req.Text != nil {
		comment.Text = *req.Text
	}
	comment.UpdatedAt = time.Now().UTC()

	if err := s.repo.Comment.Update(ctx, comment); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("comment")
		}
		return nil, apperr.Internal(err)
	}

	resp := response.CommentToResponse(comment)
	return &resp, nil
}

func (s *commentService) Delete(ctx context.Context, subject access.Subject, titleID, reviewID, commentID uuid.UUID) error {
	comment, err := s.load(ctx, titleID, reviewID, commentID)
	if err != nil {
		return err
	}

	if err := access.CheckObjectPermission(subject, access.ResourceComment, access.ActionDestroy, comment.AuthorID).Err(); err != nil {
		return err
	}

	if err := s.repo.Comment.Delete(ctx, comment.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("comment")
		}
		return apperr.Internal(err)
	}

	return nil
}
