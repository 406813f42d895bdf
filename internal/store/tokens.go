package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/safar/go-bookstore/internal/database"
	"github.com/safar/go-bookstore/internal/models"
)

func CreatePasswordResetToken(ctx context.Context, db *sql.DB, userID int64, token string, expiresAt time.Time) (*models.PasswordResetToken, error) {
	t := &models.PasswordResetToken{}

	err := db.QueryRowContext(ctx, `
		INSERT INTO password_reset_tokens (user_id, token, used, expires_at, created_at)
		VALUES ($1, $2, FALSE, $3, NOW())
		RETURNING id, user_id, token, used, expires_at, created_at`,
		userID, token, expiresAt).
		Scan(&t.ID, &t.UserID, &t.Token, &t.Used, &t.ExpiresAt, &t.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create reset token: %w", err)
	}

	return t, nil
}

// ConsumeResetToken validates a single-use reset token and, in one
// transaction, updates the user's password hash and marks the token
// used. Expired or already-used tokens fail without side effects.
func ConsumeResetToken(ctx context.Context, db *sql.DB, token, hashedPassword string) error {
	return database.WithTransaction(ctx, db, database.DefaultTxOptions(), func(tx *sql.Tx) error {
		t := &models.PasswordResetToken{}
		err := tx.QueryRowContext(ctx, `
			SELECT id, user_id, token, used, expires_at, created_at
			FROM password_reset_tokens
			WHERE token = $1
			FOR UPDATE`, token).
			Scan(&t.ID, &t.UserID, &t.Token, &t.Used, &t.ExpiresAt, &t.CreatedAt)
		if err != nil {
			if err == sql.ErrNoRows {
				return database.ErrTokenNotFound
			}
			return fmt.Errorf("get reset token: %w", err)
		}

		if t.Used {
			return database.ErrTokenUsed
		}
		if t.ExpiresAt.Before(time.Now()) {
			return database.ErrTokenExpired
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE users SET password = $1, updated_at = NOW() WHERE id = $2`,
			hashedPassword, t.UserID); err != nil {
			return fmt.Errorf("update password: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE password_reset_tokens SET used = TRUE WHERE id = $1`, t.ID); err != nil {
			return fmt.Errorf("mark token used: %w", err)
		}
		return nil
	})
}
