package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/hvaldez/gamestore/internal/apperror"
	"github.com/hvaldez/gamestore/internal/model"
	"github.com/hvaldez/gamestore/internal/repository"
)

// compile-time checks that *DB implements the account interfaces
var (
	_ repository.UserRepository         = (*DB)(nil)
	_ repository.SessionTokenRepository = (*DB)(nil)
)

// CreateUser inserts a new user, assigning its ID and timestamps.
func (db *DB) CreateUser(ctx context.Context, user *model.User) error {
	now := time.Now()
	user.ID = xid.New().String()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (id, email, password_hash, user_name, profile_img, active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.UserName,
		user.ProfileImg,
		user.Active,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting user (email=%s): %w", user.Email, err)
	}
	return nil
}

// GetUserByID retrieves a user by internal ID.
// Returns apperror.ErrNotFound if no user exists with that ID.
func (db *DB) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	return db.getUser(ctx, `WHERE id = ?`, id)
}

// GetUserByEmail retrieves a user by email (exact match, oldest row wins —
// duplicates are possible because uniqueness is only a service-level
// pre-check).
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return db.getUser(ctx, `WHERE email = ? ORDER BY created_at LIMIT 1`, email)
}

func (db *DB) getUser(ctx context.Context, where string, arg any) (*model.User, error) {
	var u model.User

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, email, password_hash, user_name, profile_img, active, created_at, updated_at
		 FROM users `+where,
		arg,
	).Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.UserName,
		&u.ProfileImg,
		&u.Active,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", fmt.Sprint(arg))
		}
		return nil, fmt.Errorf("sqlite: getting user: %w", err)
	}

	return &u, nil
}

// UpdateUserProfile overwrites user_name and/or profile_img, skipping empty
// values.
func (db *DB) UpdateUserProfile(ctx context.Context, id, userName, profileImg string) error {
	set := `updated_at = ?`
	args := []any{time.Now()}

	if userName != "" {
		set += `, user_name = ?`
		args = append(args, userName)
	}
	if profileImg != "" {
		set += `, profile_img = ?`
		args = append(args, profileImg)
	}
	args = append(args, id)

	res, err := db.conn.ExecContext(ctx, `UPDATE users SET `+set+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("sqlite: updating profile %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.NotFound("user", id)
	}
	return nil
}

// AppendSessionToken adds a refresh token to the user's session list.
// Duplicate values are stored as-is.
func (db *DB) AppendSessionToken(ctx context.Context, userID, token string) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO session_tokens (user_id, token, created_at) VALUES (?, ?, ?)`,
		userID, token, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("sqlite: appending session token for %s: %w", userID, err)
	}
	return nil
}

// SessionTokenExists reports whether the token value is currently in the
// user's list.
func (db *DB) SessionTokenExists(ctx context.Context, userID, token string) (bool, error) {
	var exists bool
	err := db.conn.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM session_tokens WHERE user_id = ? AND token = ?)`,
		userID, token,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("sqlite: checking session token for %s: %w", userID, err)
	}
	return exists, nil
}

// RemoveSessionToken deletes every copy of the token value from the user's
// list. Removing an absent value is a no-op, not an error.
func (db *DB) RemoveSessionToken(ctx context.Context, userID, token string) error {
	_, err := db.conn.ExecContext(ctx,
		`DELETE FROM session_tokens WHERE user_id = ? AND token = ?`,
		userID, token,
	)
	if err != nil {
		return fmt.Errorf("sqlite: removing session token for %s: %w", userID, err)
	}
	return nil
}

// ListSessionTokens returns the user's session tokens in issuance order.
func (db *DB) ListSessionTokens(ctx context.Context, userID string) ([]string, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT token FROM session_tokens WHERE user_id = ? ORDER BY rowid`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing session tokens for %s: %w", userID, err)
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("sqlite: scanning session token: %w", err)
		}
		tokens = append(tokens, t)
	}
	return tokens, rows.Err()
}
