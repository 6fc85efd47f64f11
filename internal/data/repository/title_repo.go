package repository

import (
	"context"
	"fmt"
	"strings"

	"media-review/internal/data/entity"
	"media-review/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type TitleRepository interface {
	// Create inserts the title and its genre links in one transaction.
	Create(ctx context.Context, title *entity.Title, genreIDs []uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Title, error)
	FindAll(ctx context.Context, filter entity.TitleFilter, limit, offset int) ([]*entity.Title, error)
	CountAll(ctx context.Context, filter entity.TitleFilter) (int64, error)
	// Update saves scalar fields and, when genreIDs is non-nil, replaces the genre links.
	Update(ctx context.Context, title *entity.Title, genreIDs []uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type titleRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTitleRepository(db database.PgxIface, log *zap.Logger) TitleRepository {
	return &titleRepository{
		db:  db,
		log: log.With(zap.String("repository", "title")),
	}
}

func (r *titleRepository) Create(ctx context.Context, title *entity.Title, genreIDs []uuid.UUID) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		query := `
			INSERT INTO titles (id, name, year, description, category_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`
		_, err := tx.Exec(ctx, query,
			title.ID,
			title.Name,
			title.Year,
			title.Description,
			title.CategoryID,
			title.CreatedAt,
			title.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to create title", zap.Error(err), zap.String("name", title.Name))
			return fmt.Errorf("create title: %w", err)
		}

		return insertTitleGenres(ctx, tx, title.ID, genreIDs)
	})
}

func (r *titleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Title, error) {
	query := `
		SELECT id, name, year, description, category_id, created_at, updated_at
		FROM titles
		WHERE id = $1
	`

	var title entity.Title
	err := r.db.QueryRow(ctx, query, id).Scan(
		&title.ID,
		&title.Name,
		&title.Year,
		&title.Description,
		&title.CategoryID,
		&title.CreatedAt,
		&title.UpdatedAt,
	)

	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find title by ID", zap.Error(err), zap.String("title_id", id.String()))
		return nil, fmt.Errorf("find title %s: %w", id.String(), err)
	}

	return &title, nil
}

// buildFilter renders the WHERE clause for filter, numbering placeholders from 1.
func buildFilter(filter entity.TitleFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)

	if filter.CategorySlug != "" {
		args = append(args, filter.CategorySlug)
		conds = append(conds, fmt.Sprintf("t.category_id = (SELECT id FROM categories WHERE slug = $%d)", len(args)))
	}
	if filter.GenreSlug != "" {
		args = append(args, filter.GenreSlug)
		conds = append(conds, fmt.Sprintf(`EXISTS (
			SELECT 1 FROM title_genres tg
			INNER JOIN genres g ON g.id = tg.genre_id
			WHERE tg.title_id = t.id AND g.slug = $%d)`, len(args)))
	}
	if filter.Name != "" {
		args = append(args, containsPattern(filter.Name))
		conds = append(conds, fmt.Sprintf("t.name ILIKE $%d", len(args)))
	}
	if filter.Year != 0 {
		args = append(args, filter.Year)
		conds = append(conds, fmt.Sprintf("t.year = $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *titleRepository) FindAll(ctx context.Context, filter entity.TitleFilter, limit, offset int) ([]*entity.Title, error) {
	where, args := buildFilter(filter)

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT t.id, t.name, t.year, t.description, t.category_id, t.created_at, t.updated_at
		FROM titles t`)
	queryBuilder.WriteString(where)
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY t.name, t.id LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2))
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to find titles",
			zap.Error(err),
			zap.Any("filter", filter),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find titles: %w", err)
	}
	defer rows.Close()

	var titles []*entity.Title
	for rows.Next() {
		var title entity.Title
		err := rows.Scan(
			&title.ID,
			&title.Name,
			&title.Year,
			&title.Description,
			&title.CategoryID,
			&title.CreatedAt,
			&title.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan title row", zap.Error(err))
			return nil, fmt.Errorf("scan title row: %w", err)
		}
		titles = append(titles, &title)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate title rows: %w", err)
	}

	return titles, nil
}

func (r *titleRepository) CountAll(ctx context.Context, filter entity.TitleFilter) (int64, error) {
	where, args := buildFilter(filter)

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM titles t`+where, args...).Scan(&total); err != nil {
		r.log.Error("Failed to count titles", zap.Error(err), zap.Any("filter", filter))
		return 0, fmt.Errorf("count titles: %w", err)
	}

	return total, nil
}

func (r *titleRepository) Update(ctx context.Context, title *entity.Title, genreIDs []uuid.UUID) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		query := `
			UPDATE titles
			SET name = $2, year = $3, description = $4, category_id = $5, updated_at = $6
			WHERE id = $1
		`
		result, err := tx.Exec(ctx, query,
			title.ID,
			title.Name,
			title.Year,
			title.Description,
			title.CategoryID,
			title.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to update title", zap.Error(err), zap.String("title_id", title.ID.String()))
			return fmt.Errorf("update title %s: %w", title.ID.String(), err)
		}
		if result.RowsAffected() == 0 {
			return fmt.Errorf("update title %s: %w", title.ID.String(), ErrNotFound)
		}

		if genreIDs == nil {
			return nil
		}

		if _, err := tx.Exec(ctx, `DELETE FROM title_genres WHERE title_id = $1`, title.ID); err != nil {
			return fmt.Errorf("clear title genres: %w", err)
		}
		return insertTitleGenres(ctx, tx, title.ID, genreIDs)
	})
}

// Delete removes the title; reviews, comments and genre links cascade.
func (r *titleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM titles WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete title", zap.Error(err), zap.String("title_id", id.String()))
		return fmt.Errorf("delete title %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete title %s: %w", id.String(), ErrNotFound)
	}

	r.log.Info("Title deleted", zap.String("title_id", id.String()))
	return nil
}

func (r *titleRepository) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func insertTitleGenres(ctx context.Context, tx pgx.Tx, titleID uuid.UUID, genreIDs []uuid.UUID) error {
	if len(genreIDs) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, genreID := range genreIDs {
		batch.Queue(`INSERT INTO title_genres (title_id, genre_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, titleID, genreID)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert title genres: %w", err)
	}
	return nil
}
