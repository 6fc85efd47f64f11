package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"media-review/internal/data/entity"
	"media-review/internal/data/repository"
	"media-review/internal/dto/request"
	"media-review/internal/dto/response"
	"media-review/pkg/apperr"
	"media-review/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TitleService interface {
	List(ctx context.Context, req *request.TitleFilterRequest) (*response.PaginatedResponse[response.TitleResponse], error)
	Get(ctx context.Context, id uuid.UUID) (*response.TitleResponse, error)
	Create(ctx context.Context, req *request.TitleRequest) (*response.TitleResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *request.TitleUpdateRequest) (*response.TitleResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type titleService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewTitleService(repo *repository.Repository, log *zap.Logger) TitleService {
	return &titleService{
		repo: repo,
		log:  log.With(zap.String("service", "title")),
	}
}

func (s *titleService) List(ctx context.Context, req *request.TitleFilterRequest) (*response.PaginatedResponse[response.TitleResponse], error) {
	filter := entity.TitleFilter{
		CategorySlug: req.Category,
		GenreSlug:    req.Genre,
		Name:         req.Name,
		Year:         req.Year,
	}

	titles, err := s.repo.Title.FindAll(ctx, filter, req.Limit(), req.Offset())
	if err != nil {
		return nil, apperr.Internal(err)
	}

	total, err := s.repo.Title.CountAll(ctx, filter)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	data := make([]response.TitleResponse, 0, len(titles))
	for _, t := range titles {
		resp, err := s.toResponse(ctx, t)
		if err != nil {
			return nil, err
		}
		data = append(data, resp)
	}

	return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
}

func (s *titleService) find(ctx context.Context, id uuid.UUID) (*entity.Title, error) {
	title, err := s.repo.Title.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if title == nil {
		return nil, apperr.NotFound("title")
	}
	return title, nil
}

func (s *titleService) Get(ctx context.Context, id uuid.UUID) (*response.TitleResponse, error) {
	title, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	resp, err := s.toResponse(ctx, title)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *titleService) Create(ctx context.Context, req *request.TitleRequest) (*response.TitleResponse, error) {
	if err := utils.Validate(req); err != nil {
		return nil, err
	}

	categoryID, err := s.resolveCategory(ctx, req.Category)
	if err != nil {
		return nil, err
	}

	genreIDs, err := s.resolveGenres(ctx, req.Genre)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	title := &entity.Title{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        req.Name,
		Year:        req.Year,
		Description: req.Description,
		CategoryID:  categoryID,
	}

	if err := s.repo.Title.Create(ctx, title, genreIDs); err != nil {
		s.log.Error("Failed to create title", zap.Error(err))
		return nil, apperr.Internal(err)
	}

	s.log.Info("Title created", zap.String("title_id", title.ID.String()))

	resp, err := s.toResponse(ctx, title)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *titleService) Update(ctx context.Context, id uuid.UUID, req *request.TitleUpdateRequest) (*response.TitleResponse, error) {
	if err := utils.Validate(req); err != nil {
		return nil, err
	}

	title, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		title.Name = *req.Name
	}
	if req.Year != nil {
		title.Year = *req.Year
	}
	if req.Description != nil {
		title.Description = req.Description
	}
	if req.Category != nil {
		// an empty slug detaches the category
		title.CategoryID, err = s.resolveCategory(ctx, *req.Category)
		if err != nil {
			return nil, err
		}
	}

	var genreIDs []uuid.UUID
	if req.Genre != nil {
		genreIDs, err = s.resolveGenres(ctx, *req.Genre)
		if err != nil {
			return nil, err
		}
		if genreIDs == nil {
			genreIDs = []uuid.UUID{}
		}
	}

	title.UpdatedAt = time.Now().UTC()
	if err := s.repo.Title.Update(ctx, title, genreIDs); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("title")
		}
		return nil, apperr.Internal(err)
	}

	resp, err := s.toResponse(ctx, title)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *titleService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Title.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("title")
		}
		return apperr.Internal(err)
	}
	return nil
}

func (s *titleService) resolveCategory(ctx context.Context, slug string) (*uuid.UUID, error) {
	if slug == "" {
		return nil, nil
	}

	category, err := s.repo.Category.FindBySlug(ctx, slug)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if category == nil {
		return nil, apperr.Validation("unknown category", map[string]string{
			"category": "No category with slug " + slug,
		})
	}
	return &category.ID, nil
}

func (s *titleService) resolveGenres(ctx context.Context, slugs []string) ([]uuid.UUID, error) {
	if len(slugs) == 0 {
		return nil, nil
	}

	unique := make(map[string]struct{}, len(slugs))
	for _, slug := range slugs {
		unique[slug] = struct{}{}
	}

	genres, err := s.repo.Genre.FindBySlugs(ctx, slugs)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	ids := make([]uuid.UUID, 0, len(genres))
	for _, g := range genres {
		delete(unique, g.Slug)
		ids = append(ids, g.ID)
	}

	if len(unique) > 0 {
		missing := make([]string, 0, len(unique))
		for slug := range unique {
			missing = append(missing, slug)
		}
		return nil, apperr.Validation("unknown genre", map[string]string{
			"genre": "No genre with slug " + strings.Join(missing, ", "),
		})
	}

	return ids, nil
}

// toResponse assembles the read schema. The rating is computed from the
// current reviews on every call and never stored.
func (s *titleService) toResponse(ctx context.Context, title *entity.Title) (response.TitleResponse, error) {
	var category *entity.Category
	if title.CategoryID != nil {
		c, err := s.repo.Category.FindByID(ctx, *title.CategoryID)
		if err != nil {
			return response.TitleResponse{}, apperr.Internal(err)
		}
		category = c
	}

	genres, err := s.repo.Genre.FindByTitleID(ctx, title.ID)
	if err != nil {
		return response.TitleResponse{}, apperr.Internal(err)
	}

	sum, count, err := s.repo.Review.ScoreTotals(ctx, title.ID)
	if err != nil {
		return response.TitleResponse{}, apperr.Internal(err)
	}

	return response.TitleToResponse(title, category, genres, AverageScore(sum, count)), nil
}
