package cache

import (
	"context"
	"time"

	"github.com/magabrotheeeer/auth-service/internal/models"
)

const trialKeyPrefix = "trial:"

// Trials кеширует записи пробных периодов по id аккаунта.
type Trials struct {
	cache *Cache
	ttl   time.Duration
}

// NewTrials создаёт кеш пробных периодов с временем жизни записи ttl.
func NewTrials(c *Cache, ttl time.Duration) *Trials {
	return &Trials{cache: c, ttl: ttl}
}

// TrialKey ключ записи пробного периода аккаунта.
func TrialKey(userID string) string {
	return trialKeyPrefix + userID
}

// GetTrial возвращает закешированную запись, если она есть.
func (t *Trials) GetTrial(ctx context.Context, userID string) (*models.Trial, bool, error) {
	var trial models.Trial
	found, err := t.cache.Get(ctx, TrialKey(userID), &trial)
	if err != nil || !found {
		return nil, false, err
	}
	return &trial, true, nil
}

// SetTrial кладёт запись в кеш.
func (t *Trials) SetTrial(ctx context.Context, trial models.Trial) error {
	return t.cache.Set(ctx, TrialKey(trial.UserID), trial, t.ttl)
}

// InvalidateTrial удаляет запись аккаунта из кеша.
func (t *Trials) InvalidateTrial(ctx context.Context, userID string) error {
	return t.cache.Invalidate(ctx, TrialKey(userID))
}
