package repository

import (
	"context"
	"fmt"

	"media-review/internal/data/entity"
	"media-review/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type GenreRepository interface {
	Create(ctx context.Context, genre *entity.Genre) error
	FindBySlug(ctx context.Context, slug string) (*entity.Genre, error)
	FindBySlugs(ctx context.Context, slugs []string) ([]*entity.Genre, error)
	FindByTitleID(ctx context.Context, titleID uuid.UUID) ([]*entity.Genre, error)
	FindAll(ctx context.Context, search string, limit, offset int) ([]*entity.Genre, error)
	CountAll(ctx context.Context, search string) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type genreRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewGenreRepository(db database.PgxIface, log *zap.Logger) GenreRepository {
	return &genreRepository{
		db:  db,
		log: log.With(zap.String("repository", "genre")),
	}
}

func (r *genreRepository) Create(ctx context.Context, genre *entity.Genre) error {
	query := `INSERT INTO genres (id, name, slug, created_at) VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(ctx, query, genre.ID, genre.Name, genre.Slug, genre.CreatedAt)
	if err != nil {
		err = mapConstraintError(err)
		r.log.Error("Failed to create genre", zap.Error(err), zap.String("slug", genre.Slug))
		return fmt.Errorf("create genre %s: %w", genre.Slug, err)
	}

	return nil
}

func (r *genreRepository) FindBySlug(ctx context.Context, slug string) (*entity.Genre, error) {
	query := `SELECT id, name, slug, created_at FROM genres WHERE slug = $1`

	var genre entity.Genre
	err := r.db.QueryRow(ctx, query, slug).Scan(
		&genre.ID,
		&genre.Name,
		&genre.Slug,
		&genre.CreatedAt,
	)

	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find genre by slug", zap.Error(err), zap.String("slug", slug))
		return nil, fmt.Errorf("find genre by slug: %w", err)
	}

	return &genre, nil
}

// FindBySlugs returns the genres that exist among slugs; missing ones are simply absent.
func (r *genreRepository) FindBySlugs(ctx context.Context, slugs []string) ([]*entity.Genre, error) {
	query := `SELECT id, name, slug, created_at FROM genres WHERE slug = ANY($1) ORDER BY slug`
	return r.query(ctx, query, slugs)
}

func (r *genreRepository) FindByTitleID(ctx context.Context, titleID uuid.UUID) ([]*entity.Genre, error) {
	query := `
		SELECT g.id, g.name, g.slug, g.created_at
		FROM genres g
		INNER JOIN title_genres tg ON g.id = tg.genre_id
		WHERE tg.title_id = $1
		ORDER BY g.slug
	`
	return r.query(ctx, query, titleID)
}

func (r *genreRepository) FindAll(ctx context.Context, search string, limit, offset int) ([]*entity.Genre, error) {
	query := `
		SELECT id, name, slug, created_at
		FROM genres
		WHERE ($1 = '' OR name ILIKE $2)
		ORDER BY slug
		LIMIT $3 OFFSET $4
	`
	return r.query(ctx, query, search, containsPattern(search), limit, offset)
}

func (r *genreRepository) query(ctx context.Context, query string, args ...any) ([]*entity.Genre, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query genres", zap.Error(err))
		return nil, fmt.Errorf("query genres: %w", err)
	}
	defer rows.Close()

	var genres []*entity.Genre
	for rows.Next() {
		var genre entity.Genre
		if err := rows.Scan(&genre.ID, &genre.Name, &genre.Slug, &genre.CreatedAt); err != nil {
			r.log.Error("Failed to scan genre row", zap.Error(err))
			return nil, fmt.Errorf("scan genre row: %w", err)
		}
		genres = append(genres, &genre)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate genre rows: %w", err)
	}

	return genres, nil
}

func (r *genreRepository) CountAll(ctx context.Context, search string) (int64, error) {
	query := `SELECT COUNT(*) FROM genres WHERE ($1 = '' OR name ILIKE $2)`

	var count int64
	if err := r.db.QueryRow(ctx, query, search, containsPattern(search)).Scan(&count); err != nil {
		r.log.Error("Failed to count genres", zap.Error(err))
		return 0, fmt.Errorf("count genres: %w", err)
	}

	return count, nil
}

// Delete removes the genre and, through the schema, its title links.
func (r *genreRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM genres WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete genre", zap.Error(err), zap.String("genre_id", id.String()))
		return fmt.Errorf("delete genre %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete genre %s: %w", id.String(), ErrNotFound)
	}

	r.log.Info("Genre deleted", zap.String("genre_id", id.String()))
	return nil
}
