package repository

import (
	"context"
	"fmt"

	"media-review/internal/data/entity"
	"media-review/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	FindBySlug(ctx context.Context, slug string) (*entity.Category, error)
	FindAll(ctx context.Context, search string, limit, offset int) ([]*entity.Category, error)
	CountAll(ctx context.Context, search string) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type categoryRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCategoryRepository(db database.PgxIface, log *zap.Logger) CategoryRepository {
	return &categoryRepository{
		db:  db,
		log: log.With(zap.String("repository", "category")),
	}
}

func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	query := `INSERT INTO categories (id, name, slug, created_at) VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(ctx, query, category.ID, category.Name, category.Slug, category.CreatedAt)
	if err != nil {
		err = mapConstraintError(err)
		r.log.Error("Failed to create category", zap.Error(err), zap.String("slug", category.Slug))
		return fmt.Errorf("create category %s: %w", category.Slug, err)
	}

	return nil
}

func (r *categoryRepository) findOne(ctx context.Context, where string, arg any) (*entity.Category, error) {
	query := `SELECT id, name, slug, created_at FROM categories WHERE ` + where

	var category entity.Category
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&category.ID,
		&category.Name,
		&category.Slug,
		&category.CreatedAt,
	)

	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find category", zap.Error(err), zap.Any("arg", arg))
		return nil, fmt.Errorf("find category: %w", err)
	}

	return &category, nil
}

func (r *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	return r.findOne(ctx, "id = $1", id)
}

func (r *categoryRepository) FindBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	return r.findOne(ctx, "slug = $1", slug)
}

func (r *categoryRepository) FindAll(ctx context.Context, search string, limit, offset int) ([]*entity.Category, error) {
	query := `
		SELECT id, name, slug, created_at
		FROM categories
		WHERE ($1 = '' OR name ILIKE $2)
		ORDER BY slug
		LIMIT $3 OFFSET $4
	`

	rows, err := r.db.Query(ctx, query, search, containsPattern(search), limit, offset)
	if err != nil {
		r.log.Error("Failed to find categories", zap.Error(err), zap.String("search", search))
		return nil, fmt.Errorf("find categories: %w", err)
	}
	defer rows.Close()

	var categories []*entity.Category
	for rows.Next() {
		var category entity.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.Slug, &category.CreatedAt); err != nil {
			r.log.Error("Failed to scan category row", zap.Error(err))
			return nil, fmt.Errorf("scan category row: %w", err)
		}
		categories = append(categories, &category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category rows: %w", err)
	}

	return categories, nil
}

func (r *categoryRepository) CountAll(ctx context.Context, search string) (int64, error) {
	query := `SELECT COUNT(*) FROM categories WHERE ($1 = '' OR name ILIKE $2)`

	var count int64
	if err := r.db.QueryRow(ctx, query, search, containsPattern(search)).Scan(&count); err != nil {
		r.log.Error("Failed to count categories", zap.Error(err))
		return 0, fmt.Errorf("count categories: %w", err)
	}

	return count, nil
}

// Delete removes the category; titles keep existing with category_id set to NULL.
func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete category", zap.Error(err), zap.String("category_id", id.String()))
		return fmt.Errorf("delete category %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete category %s: %w", id.String(), ErrNotFound)
	}

	r.log.Info("Category deleted", zap.String("category_id", id.String()))
	return nil
}
