package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"devfinance/internal/domain/user"
)

type UserRepository struct {
	db *DB
}

func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = "id, name, email, password, avatar, active, created_at, last_login"

func (r *UserRepository) Create(ctx context.Context, params user.CreateUserParams) (*user.User, error) {
	query := `
		INSERT INTO users (name, email, password)
		VALUES ($1, $2, $3)
		RETURNING ` + userColumns

	u, err := scanUser(r.db.QueryRowContext(ctx, query, params.Name, params.Email, params.PasswordHash))
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	u, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, user.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	// Case-sensitive match, exactly as stored. Known gap: two emails
	// differing only in case are treated as distinct users.
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	u, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, user.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return u, nil
}

func (r *UserRepository) EmailInUse(ctx context.Context, email string, excludeUserID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 AND id != $2)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, email, excludeUserID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}

func (r *UserRepository) Update(ctx context.Context, userID int64, params user.UpdateUserParams) (*user.User, error) {
	if params.IsEmpty() {
		return nil, user.ErrNoFieldsToUpdate
	}

	setClauses := make([]string, 0, 3)
	args := make([]any, 0, 4)

	addSet := func(column string, value any) {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if params.Name != nil {
		addSet("name", *params.Name)
	}
	if params.Email != nil {
		addSet("email", *params.Email)
	}
	if params.Avatar.Set {
		// nil Value clears the column to NULL.
		addSet("avatar", params.Avatar.Value)
	}

	args = append(args, userID)
	query := fmt.Sprintf(
		"UPDATE users SET %s WHERE id = $%d RETURNING %s",
		strings.Join(setClauses, ", "), len(args), userColumns,
	)

	u, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, user.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update user %d: %w", userID, err)
	}
	return u, nil
}

func (r *UserRepository) TouchLastLogin(ctx context.Context, userID int64) error {
	query := `UPDATE users SET last_login = now() WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to update last login for user %d: %w", userID, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*user.User, error) {
	var u user.User
	var avatar sql.NullString
	var lastLogin sql.NullTime

	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &avatar, &u.Active, &u.CreatedAt, &lastLogin)
	if err != nil {
		return nil, err
	}

	if avatar.Valid {
		u.Avatar = &avatar.String
	}
	if lastLogin.Valid {
		u.LastLogin = &lastLogin.Time
	}
	return &u, nil
}
