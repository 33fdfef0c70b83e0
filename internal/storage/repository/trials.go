package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/auth-service/internal/models"
	"github.com/magabrotheeeer/auth-service/internal/storage"
)

// GetTrial возвращает запись пробного периода аккаунта.
func (s *Storage) GetTrial(ctx context.Context, userID string) (*models.Trial, error) {
	const op = "storage.GetTrial"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	var t models.Trial
	err := s.DB.QueryRowContext(ctx, `SELECT user_id, start_ts, end_ts FROM trials WHERE user_id = $1`, userID).
		Scan(&t.UserID, &t.StartTS, &t.EndTS)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, storage.MapError(err))
	}
	return &t, nil
}

// StartTrial атомарно записывает пробный период [start, end), если
// записи нет или она истекла к моменту now. Иначе возвращает
// существующую запись без изменений. Второе значение сообщает, была ли
// запись создана или перезаписана.
func (s *Storage) StartTrial(ctx context.Context, userID string, start, end, now int64) (*models.Trial, bool, error) {
	const op = "storage.StartTrial"
	if err := checkCtx(ctx, op); err != nil {
		return nil, false, err
	}

	var t models.Trial
	err := s.DB.QueryRowContext(ctx, `INSERT INTO trials (user_id, start_ts, end_ts)
			  VALUES ($1, $2, $3)
			  ON CONFLICT (user_id) DO UPDATE
			  SET start_ts = EXCLUDED.start_ts, end_ts = EXCLUDED.end_ts
			  WHERE trials.end_ts <= $4
			  RETURNING user_id, start_ts, end_ts`, userID, start, end, now).
		Scan(&t.UserID, &t.StartTS, &t.EndTS)
	if err == nil {
		return &t, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	existing, err := s.GetTrial(ctx, userID)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	return existing, false, nil
}
