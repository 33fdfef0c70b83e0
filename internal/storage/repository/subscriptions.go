package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/magabrotheeeer/auth-service/internal/models"
	"github.com/magabrotheeeer/auth-service/internal/storage"
)

// GetSubscription возвращает подписку аккаунта.
func (s *Storage) GetSubscription(ctx context.Context, userID string) (*models.Subscription, error) {
	const op = "storage.GetSubscription"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	var (
		sub       models.Subscription
		periodEnd sql.NullTime
		features  []byte
	)
	err := s.DB.QueryRowContext(ctx, `SELECT id, user_id, plan, status, current_period_end, features
			  FROM subscriptions
			  WHERE user_id = $1`, userID).
		Scan(&sub.ID, &sub.UserID, &sub.Plan, &sub.Status, &periodEnd, &features)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, storage.MapError(err))
	}
	if periodEnd.Valid {
		t := periodEnd.Time
		sub.CurrentPeriodEnd = &t
	}
	sub.Features = []string{}
	if len(features) > 0 {
		if err := json.Unmarshal(features, &sub.Features); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	return &sub, nil
}
