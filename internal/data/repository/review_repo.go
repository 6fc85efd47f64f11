package repository

import (
	"context"
	"fmt"

	"media-review/internal/data/entity"
	"media-review/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ReviewRepository interface {
	// Create returns an error wrapping ErrDuplicate when the author already reviewed the title.
	Create(ctx context.Context, review *entity.Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error)
	FindByTitleID(ctx context.Context, titleID uuid.UUID, limit, offset int) ([]*entity.Review, error)
	FindByTitleAndAuthor(ctx context.Context, titleID, authorID uuid.UUID) (*entity.Review, error)
	CountByTitleID(ctx context.Context, titleID uuid.UUID) (int64, error)
	Update(ctx context.Context, review *entity.Review) error
	Delete(ctx context.Context, id uuid.UUID) error

	// ScoreTotals returns the sum and number of scores for a title.
	ScoreTotals(ctx context.Context, titleID uuid.UUID) (sum int64, count int64, err error)
}

type reviewRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReviewRepository(db database.PgxIface, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

const reviewSelect = `
		SELECT r.id, r.title_id, r.author_id, r.text, r.score, r.pub_date, r.updated_at, u.username
		FROM reviews r
		INNER JOIN users u ON u.id = r.author_id
`

func scanReview(row pgx.Row) (*entity.Review, error) {
	var review entity.Review
	err := row.Scan(
		&review.ID,
		&review.TitleID,
		&review.AuthorID,
		&review.Text,
		&review.Score,
		&review.PubDate,
		&review.UpdatedAt,
		&review.AuthorUsername,
	)
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	query := `
		INSERT INTO reviews (id, title_id, author_id, text, score, pub_date, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		review.ID,
		review.TitleID,
		review.AuthorID,
		review.Text,
		review.Score,
		review.PubDate,
		review.UpdatedAt,
	)

	if err != nil {
		err = mapConstraintError(err)
		r.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("author_id", review.AuthorID.String()),
			zap.String("title_id", review.TitleID.String()),
		)
		return fmt.Errorf("create review for title %s by %s: %w",
			review.TitleID.String(), review.AuthorID.String(), err)
	}

	return nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	review, err := scanReview(r.db.QueryRow(ctx, reviewSelect+` WHERE r.id = $1`, id))
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by ID", zap.Error(err), zap.String("review_id", id.String()))
		return nil, fmt.Errorf("find review by ID %s: %w", id.String(), err)
	}

	return review, nil
}

func (r *reviewRepository) FindByTitleID(ctx context.Context, titleID uuid.UUID, limit, offset int) ([]*entity.Review, error) {
	query := reviewSelect + `
		WHERE r.title_id = $1
		ORDER BY r.pub_date DESC, r.id
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, titleID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find reviews by title ID",
			zap.Error(err),
			zap.String("title_id", titleID.String()),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find reviews by title %s: %w", titleID.String(), err)
	}
	defer rows.Close()

	var reviews []*entity.Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			r.log.Error("Failed to scan review row", zap.Error(err))
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review rows: %w", err)
	}

	return reviews, nil
}

func (r *reviewRepository) FindByTitleAndAuthor(ctx context.Context, titleID, authorID uuid.UUID) (*entity.Review, error) {
	review, err := scanReview(r.db.QueryRow(ctx, reviewSelect+` WHERE r.title_id = $1 AND r.author_id = $2`, titleID, authorID))
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by title and author",
			zap.Error(err),
			zap.String("title_id", titleID.String()),
			zap.String("author_id", authorID.String()),
		)
		return nil, fmt.Errorf("find review by title %s and author %s: %w",
			titleID.String(), authorID.String(), err)
	}

	return review, nil
}

func (r *reviewRepository) CountByTitleID(ctx context.Context, titleID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM reviews WHERE title_id = $1`, titleID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count reviews by title ID", zap.Error(err), zap.String("title_id", titleID.String()))
		return 0, fmt.Errorf("count reviews by title %s: %w", titleID.String(), err)
	}

	return count, nil
}

func (r *reviewRepository) Update(ctx context.Context, review *entity.Review) error {
	query := `
		UPDATE reviews
		SET text = $2, score = $3, updated_at = $4
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		review.ID,
		review.Text,
		review.Score,
		review.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update review", zap.Error(err), zap.String("review_id", review.ID.String()))
		return fmt.Errorf("update review %s: %w", review.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update review %s: %w", review.ID.String(), ErrNotFound)
	}

	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete review", zap.Error(err), zap.String("review_id", id.String()))
		return fmt.Errorf("delete review %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete review %s: %w", id.String(), ErrNotFound)
	}

	r.log.Info("Review deleted", zap.String("review_id", id.String()))
	return nil
}

func (r *reviewRepository) ScoreTotals(ctx context.Context, titleID uuid.UUID) (int64, int64, error) {
	query := `SELECT COALESCE(SUM(score), 0), COUNT(*) FROM reviews WHERE title_id = $1`

	var sum, count int64
	if err := r.db.QueryRow(ctx, query, titleID).Scan(&sum, &count); err != nil {
		r.log.Error("Failed to get score totals", zap.Error(err), zap.String("title_id", titleID.String()))
		return 0, 0, fmt.Errorf("score totals for title %s: %w", titleID.String(), err)
	}

	return sum, count, nil
}
