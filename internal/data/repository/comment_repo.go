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

type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Comment, error)
	FindByReviewID(ctx context.Context, reviewID uuid.UUID, limit, offset int) ([]*entity.Comment, error)
	CountByReviewID(ctx context.Context, reviewID uuid.UUID) (int64, error)
	Update(ctx context.Context, comment *entity.Comment) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type commentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCommentRepository(db database.PgxIface, log *zap.Logger) CommentRepository {
	return &commentRepository{
		db:  db,
		log: log.With(zap.String("repository", "comment")),
	}
}

const commentSelect = `
		SELECT c.id, c.review_id, c.author_id, c.text, c.pub_date, c.updated_at, u.username
		FROM comments c
		INNER JOIN users u ON u.id = c.author_id
`

func scanComment(row pgx.Row) (*entity.Comment, error) {
	var comment entity.Comment
	err := row.Scan(
		&comment.ID,
		&comment.ReviewID,
		&comment.AuthorID,
		&comment.Text,
		&comment.PubDate,
		&comment.UpdatedAt,
		&comment.AuthorUsername,
	)
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	query := `
		INSERT INTO comments (id, review_id, author_id, text, pub_date, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		comment.ID,
		comment.ReviewID,
		comment.AuthorID,
		comment.Text,
		comment.PubDate,
		comment.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create comment",
			zap.Error(err),
			zap.String("review_id", comment.ReviewID.String()),
			zap.String("author_id", comment.AuthorID.String()),
		)
		return fmt.Errorf("create comment on review %s: %w", comment.ReviewID.String(), err)
	}

	return nil
}

func (r *commentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Comment, error) {
	comment, err := scanComment(r.db.QueryRow(ctx, commentSelect+` WHERE c.id = $1`, id))
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find comment by ID", zap.Error(err), zap.String("comment_id", id.String()))
		return nil, fmt.Errorf("find comment %s: %w", id.String(), err)
	}

	return comment, nil
}

func (r *commentRepository) FindByReviewID(ctx context.Context, reviewID uuid.UUID, limit, offset int) ([]*entity.Comment, error) {
	query := commentSelect + `
		WHERE c.review_id = $1
		ORDER BY c.pub_date DESC, c.id
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, reviewID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find comments by review ID", zap.Error(err), zap.String("review_id", reviewID.String()))
		return nil, fmt.Errorf("find comments by review %s: %w", reviewID.String(), err)
	}
	defer rows.Close()

	var comments []*entity.Comment
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			r.log.Error("Failed to scan comment row", zap.Error(err))
			return nil, fmt.Errorf("scan comment row: %w", err)
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comment rows: %w", err)
	}

	return comments, nil
}

func (r *commentRepository) CountByReviewID(ctx context.Context, reviewID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM comments WHERE review_id = $1`, reviewID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count comments", zap.Error(err), zap.String("review_id", reviewID.String()))
		return 0, fmt.Errorf("count comments by review %s: %w", reviewID.String(), err)
	}

	return count, nil
}

func (r *commentRepository) Update(ctx context.Context, comment *entity.Comment) error {
	result, err := r.db.Exec(ctx,
		`UPDATE comments SET text = $2, updated_at = $3 WHERE id = $1`,
		comment.ID, comment.Text, comment.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update comment", zap.Error(err), zap.String("comment_id", comment.ID.String()))
		return fmt.Errorf("update comment %s: %w", comment.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update comment %s: %w", comment.ID.String(), ErrNotFound)
	}

	return nil
}

func (r *commentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete comment", zap.Error(err), zap.String("comment_id", id.String()))
		return fmt.Errorf("delete comment %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete comment %s: %w", id.String(), ErrNotFound)
	}

	r.log.Info("Comment deleted", zap.String("comment_id", id.String()))
	return nil
}
