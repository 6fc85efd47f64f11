package repository

import (
	"context"
	"fmt"
	"time"

	"media-review/internal/data/entity"
	"media-review/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	FindAll(ctx context.Context, search string, limit, offset int) ([]*entity.User, error)
	CountAll(ctx context.Context, search string) (int64, error)
	Update(ctx context.Context, user *entity.User) error
	// UpdateLastLogin sets last_login to at only if it still equals previous.
	// It returns ErrNotFound when the row is gone or was changed concurrently.
	UpdateLastLogin(ctx context.Context, id uuid.UUID, previous *time.Time, at time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type userRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserRepository(db database.PgxIface, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

const userColumns = `id, username, email, first_name, last_name, bio, role,
		       is_superuser, last_login, created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	var user entity.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.Bio,
		&user.Role,
		&user.IsSuperuser,
		&user.LastLogin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (ur *userRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, username, email, first_name, last_name, bio, role,
		                   is_superuser, last_login, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := ur.db.Exec(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Bio,
		user.Role,
		user.IsSuperuser,
		user.LastLogin,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		err = mapConstraintError(err)
		ur.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("username", user.Username),
		)
		return fmt.Errorf("create user %s: %w", user.Username, err)
	}

	return nil
}

func (ur *userRepository) findOne(ctx context.Context, where string, arg any) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where

	user, err := scanUser(ur.db.QueryRow(ctx, query, arg))
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user", zap.Error(err), zap.String("where", where), zap.Any("arg", arg))
		return nil, fmt.Errorf("find user where %s: %w", where, err)
	}

	return user, nil
}

func (ur *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return ur.findOne(ctx, "id = $1", id)
}

func (ur *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return ur.findOne(ctx, "email = $1", email)
}

func (ur *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return ur.findOne(ctx, "username = $1", username)
}

// FindAll lists users ordered by username, optionally filtered by a username substring.
func (ur *userRepository) FindAll(ctx context.Context, search string, limit, offset int) ([]*entity.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE ($1 = '' OR username ILIKE $2)
		ORDER BY username
		LIMIT $3 OFFSET $4
	`

	rows, err := ur.db.Query(ctx, query, search, containsPattern(search), limit, offset)
	if err != nil {
		ur.log.Error("Failed to get all users",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all users limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			ur.log.Error("Failed to scan user row", zap.Error(err))
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		ur.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate users rows: %w", err)
	}

	return users, nil
}

func (ur *userRepository) CountAll(ctx context.Context, search string) (int64, error) {
	query := `SELECT COUNT(*) FROM users WHERE ($1 = '' OR username ILIKE $2)`

	var count int64
	if err := ur.db.QueryRow(ctx, query, search, containsPattern(search)).Scan(&count); err != nil {
		ur.log.Error("Database error counting users", zap.Error(err))
		return 0, fmt.Errorf("count all users: %w", err)
	}

	return count, nil
}

func (ur *userRepository) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users
		SET username = $2, email = $3, first_name = $4, last_name = $5,
		    bio = $6, role = $7, updated_at = $8
		WHERE id = $1
	`

	result, err := ur.db.Exec(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Bio,
		user.Role,
		user.UpdatedAt,
	)

	if err != nil {
		err = mapConstraintError(err)
		ur.log.Error("Failed to update user",
			zap.Error(err),
			zap.String("user_id", user.ID.String()),
		)
		return fmt.Errorf("update user %s: %w", user.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update user %s: %w", user.ID.String(), ErrNotFound)
	}

	return nil
}

func (ur *userRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, previous *time.Time, at time.Time) error {
	query := `UPDATE users SET last_login = $2 WHERE id = $1 AND last_login IS NOT DISTINCT FROM $3`

	result, err := ur.db.Exec(ctx, query, id, at, previous)
	if err != nil {
		ur.log.Error("Failed to update last login", zap.Error(err), zap.String("user_id", id.String()))
		return fmt.Errorf("update last login %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update last login %s: %w", id.String(), ErrNotFound)
	}

	return nil
}

// Delete removes the user; reviews and comments cascade in the schema.
func (ur *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := ur.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		ur.log.Error("Failed to delete user",
			zap.Error(err),
			zap.String("id", id.String()),
		)
		return fmt.Errorf("delete user %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete user %s: %w", id.String(), ErrNotFound)
	}

	ur.log.Info("User deleted", zap.String("id", id.String()))
	return nil
}
