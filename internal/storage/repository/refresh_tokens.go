package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/magabrotheeeer/auth-service/internal/models"
	"github.com/magabrotheeeer/auth-service/internal/storage"
)

func insertRefreshToken(ctx context.Context, tx storage.DBTX, rt models.RefreshToken) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO refresh_tokens
			(id, user_id, token_hash, expires_at, revoked_at, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
		rt.ID, rt.UserID, rt.TokenHash, rt.ExpiresAt, rt.RevokedAt, rt.CreatedAt)
	return err
}

func pruneExpired(ctx context.Context, tx storage.DBTX, userID string, now time.Time) (int64, error) {
	res, err := tx.ExecContext(ctx, `DELETE FROM refresh_tokens
			WHERE user_id = $1 AND expires_at <= $2`, userID, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// GetRefreshTokenByHash возвращает запись refresh-токена по хешу.
func (s *Storage) GetRefreshTokenByHash(ctx context.Context, hash string) (*models.RefreshToken, error) {
	const op = "storage.GetRefreshTokenByHash"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	var (
		rt        models.RefreshToken
		revokedAt sql.NullTime
	)
	err := s.DB.QueryRowContext(ctx, `SELECT id, user_id, token_hash, expires_at, revoked_at, created_at
			  FROM refresh_tokens
			  WHERE token_hash = $1`, hash).
		Scan(&rt.ID, &rt.UserID, &rt.TokenHash, &rt.ExpiresAt, &revokedAt, &rt.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, storage.MapError(err))
	}
	if revokedAt.Valid {
		t := revokedAt.Time
		rt.RevokedAt = &t
	}
	return &rt, nil
}

// RevokeRefreshToken помечает запись отозванной. Повторный отзыв
// сохраняет первоначальное время отзыва.
func (s *Storage) RevokeRefreshToken(ctx context.Context, hash string, at time.Time) error {
	const op = "storage.RevokeRefreshToken"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	res, err := s.DB.ExecContext(ctx, `UPDATE refresh_tokens
			  SET revoked_at = COALESCE(revoked_at, $2)
			  WHERE token_hash = $1`, hash, at)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	return nil
}

// PruneExpired удаляет истёкшие refresh-токены аккаунта и возвращает их число.
func (s *Storage) PruneExpired(ctx context.Context, userID string, now time.Time) (int64, error) {
	const op = "storage.PruneExpired"
	if err := checkCtx(ctx, op); err != nil {
		return 0, err
	}

	n, err := pruneExpired(ctx, s.DB, userID, now)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}
