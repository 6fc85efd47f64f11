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

type ReviewService interface {
	List(ctx context.Context, titleID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)
	Get(ctx context.Context, titleID, reviewID uuid.UUID) (*response.ReviewResponse, error)
	Create(ctx context.Context, subject access.Subject, titleID uuid.UUID, req *request.ReviewRequest) (*response.ReviewResponse, error)
	Update(ctx context.Context, subject access.Subject, titleID, reviewID uuid.UUID, req *request.ReviewUpdateRequest) (*response.ReviewResponse, error)
	Delete(ctx context.Context, subject access.Subject, titleID, reviewID uuid.UUID) error
}

type reviewService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		log:  log.With(zap.String("service", "review")),
	}
}

// duplicateReview is returned both by the pre-check and when the unique
// constraint rejects a concurrent insert.
func duplicateReview() error {
	return apperr.Validation("You have already reviewed this title", map[string]string{
		"title": "Only one review per title is allowed",
	})
}

func (s *reviewService) List(ctx context.Context, titleID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	if err := ensureTitle(ctx, s.repo, titleID); err != nil {
		return nil, err
	}

	reviews, err := s.repo.Review.FindByTitleID(ctx, titleID, req.Limit(), req.Offset())
	if err != nil {
		return nil, apperr.Internal(err)
	}

	total, err := s.repo.Review.CountByTitleID(ctx, titleID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	data := make([]response.ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		data = append(data, response.ReviewToResponse(r))
	}

	return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
}

func (s *reviewService) Get(ctx context.Context, titleID, reviewID uuid.UUID) (*response.ReviewResponse, error) {
	review, err := loadReview(ctx, s.repo, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) Create(ctx context.Context, subject access.Subject, titleID uuid.UUID, req *request.ReviewRequest) (*response.ReviewResponse, error) {
	if err := access.CheckPermission(subject, access.ResourceReview, access.ActionCreate).Err(); err != nil {
		return nil, err
	}
	if err := utils.Validate(req); err != nil {
		return nil, err
	}
	if err := ensureTitle(ctx, s.repo, titleID); err != nil {
		return nil, err
	}

	existing, err := s.repo.Review.FindByTitleAndAuthor(ctx, titleID, subject.ID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if existing != nil {
		return nil, duplicateReview()
	}

	now := time.Now().UTC()
	review := &entity.Review{
		ID:        uuid.New(),
		TitleID:   titleID,
		AuthorID:  subject.ID,
		Text:      req.Text,
		Score:     req.Score,
		PubDate:   now,
		UpdatedAt: now,
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			s.log.Info("Concurrent duplicate review rejected by constraint",
				zap.String("title_id", titleID.String()),
				zap.String("author_id", subject.ID.String()),
			)
			return nil, duplicateReview()
		}
		return nil, apperr.Internal(err)
	}

	// re-read for the author's username
	created, err := s.repo.Review.FindByID(ctx, review.ID)
	if err != nil || created == nil {
		created = review
	}

	resp := response.ReviewToResponse(created)
	return &resp, nil
}

func (s *reviewService) Update(ctx context.Context, subject access.Subject, titleID, reviewID uuid.UUID, req *request.ReviewUpdateRequest) (*response.ReviewResponse, error) {
	if err := utils.Validate(req); err != nil {
		return nil, err
	}

	review, err := loadReview(ctx, s.repo, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if err := access.CheckObjectPermission(subject, access.ResourceReview, access.ActionPartialUpdate, review.AuthorID).Err(); err != nil {
		return nil, err
	}

	if req.Text != nil {
		review.Text = *req.Text
	}
	if req.Score != nil {
		review.Score = *req.Score
	}
	review.UpdatedAt = time.Now().UTC()

	if err := s.repo.Review.Update(ctx, review); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("review")
		}
		return nil, apperr.Internal(err)
	}

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) Delete(ctx context.Context, subject access.Subject, titleID, reviewID uuid.UUID) error {
	review, err := loadReview(ctx, s.repo, titleID, reviewID)
	if err != nil {
		return err
	}

	if err := access.CheckObjectPermission(subject, access.ResourceReview, access.ActionDestroy, review.AuthorID).Err(); err != nil {
		return err
	}

	if err := s.repo.Review.Delete(ctx, review.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("review")
		}
		return apperr.Internal(err)
	}

	s.log.Info("Review deleted",
		zap.String("review_id", review.ID.String()),
		zap.String("by", subject.ID.String()),
	)
	return nil
}

func ensureTitle(ctx context.Context, repo *repository.Repository, titleID uuid.UUID) error {
	title, err := repo.Title.FindByID(ctx, titleID)
	if err != nil {
		return apperr.Internal(err)
	}
	if title == nil {
		return apperr.NotFound("title")
	}
	return nil
}

// loadReview fetches a review only if it belongs to titleID.
func loadReview(ctx context.Context, repo *repository.Repository, titleID, reviewID uuid.UUID) (*entity.Review, error) {
	if err := ensureTitle(ctx, repo, titleID); err != nil {
		return nil, err
	}

	review, err := repo.Review.FindByID(ctx, reviewID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if review == nil || review.TitleID != titleID {
		return nil, apperr.NotFound("review")
	}
	return review, nil
}
