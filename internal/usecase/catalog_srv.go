package usecase

import (
	"context"
	"errors"
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

type CategoryService interface {
	List(ctx context.Context, req *request.SearchRequest) (*response.PaginatedResponse[response.TagResponse], error)
	Create(ctx context.Context, req *request.TagRequest) (*response.TagResponse, error)
	Delete(ctx context.Context, slug string) error
}

type GenreService interface {
	List(ctx context.Context, req *request.SearchRequest) (*response.PaginatedResponse[response.TagResponse], error)
	Create(ctx context.Context, req *request.TagRequest) (*response.TagResponse, error)
	Delete(ctx context.Context, slug string) error
}

func duplicateSlug() error {
	return apperr.Validation("slug already exists", map[string]string{
		"slug": "This slug is already in use",
	})
}

type categoryService struct {
	repo repository.CategoryRepository
	log  *zap.Logger
}

func NewCategoryService(repo repository.CategoryRepository, log *zap.Logger) CategoryService {
	return &categoryService{
		repo: repo,
		log:  log.With(zap.String("service", "category")),
	}
}

func (s *categoryService) List(ctx context.Context, req *request.SearchRequest) (*response.PaginatedResponse[response.TagResponse], error) {
	categories, err := s.repo.FindAll(ctx, req.Search, req.Limit(), req.Offset())
	if err != nil {
		return nil, apperr.Internal(err)
	}

	total, err := s.repo.CountAll(ctx, req.Search)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	data := make([]response.TagResponse, 0, len(categories))
	for _, c := range categories {
		data = append(data, response.CategoryToResponse(c))
	}

	return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
}

func (s *categoryService) Create(ctx context.Context, req *request.TagRequest) (*response.TagResponse, error) {
	if err := utils.Validate(req); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindBySlug(ctx, req.Slug)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if existing != nil {
		return nil, duplicateSlug()
	}

	category := &entity.Category{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now().UTC()},
		Name:       req.Name,
		Slug:       req.Slug,
	}

	if err := s.repo.Create(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, duplicateSlug()
		}
		return nil, apperr.Internal(err)
	}

	s.log.Info("Category created", zap.String("slug", category.Slug))

	resp := response.CategoryToResponse(category)
	return &resp, nil
}

func (s *categoryService) Delete(ctx context.Context, slug string) error {
	category, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return apperr.Internal(err)
	}
	if category == nil {
		return apperr.NotFound("category")
	}

	if err := s.repo.Delete(ctx, category.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("category")
		}
		return apperr.Internal(err)
	}

	return nil
}

type genreService struct {
	repo repository.GenreRepository
	log  *zap.Logger
}

func NewGenreService(repo repository.GenreRepository, log *zap.Logger) GenreService {
	return &genreService{
		repo: repo,
		log:  log.With(zap.String("service", "genre")),
	}
}

func (s *genreService) List(ctx context.Context, req *request.SearchRequest) (*response.PaginatedResponse[response.TagResponse], error) {
	genres, err := s.repo.FindAll(ctx, req.Search, req.Limit(), req.Offset())
	if err != nil {
		return nil, apperr.Internal(err)
	}

	total, err := s.repo.CountAll(ctx, req.Search)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	data := make([]response.TagResponse, 0, len(genres))
	for _, g := range genres {
		data = append(data, response.GenreToResponse(g))
	}

	return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
}

func (s *genreService) Create(ctx context.Context, req *request.TagRequest) (*response.TagResponse, error) {
	if err := utils.Validate(req); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindBySlug(ctx, req.Slug)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if existing != nil {
		return nil, duplicateSlug()
	}

	genre := &entity.Genre{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now().UTC()},
		Name:       req.Name,
		Slug:       req.Slug,
	}

	if err := s.repo.Create(ctx, genre); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, duplicateSlug()
		}
		return nil, apperr.Internal(err)
	}

	s.log.Info("Genre created", zap.String("slug", genre.Slug))

	resp := response.GenreToResponse(genre)
	return &resp, nil
}

func (s *genreService) Delete(ctx context.Context, slug string) error {
	genre, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return apperr.Internal(err)
	}
	if genre == nil {
		return apperr.NotFound("genre")
	}

	if err := s.repo.Delete(ctx, genre.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("genre")
		}
		return apperr.Internal(err)
	}

	return nil
}
