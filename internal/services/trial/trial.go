// Package trial ведёт пробные периоды аккаунтов и собирает сводный
// статус пользователя: статус аккаунта, эффективный план и пробный период.
package trial

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/auth-service/internal/lib/sl"
	"github.com/magabrotheeeer/auth-service/internal/models"
	"github.com/magabrotheeeer/auth-service/internal/services/errs"
	"github.com/magabrotheeeer/auth-service/internal/storage"
)

// Repository описывает операции хранилища с пробными периодами и подписками.
type Repository interface {
	GetTrial(ctx context.Context, userID string) (*models.Trial, error)
	StartTrial(ctx context.Context, userID string, start, end, now int64) (*models.Trial, bool, error)
	GetSubscription(ctx context.Context, userID string) (*models.Subscription, error)
}

// Cache кеш записей пробных периодов.
type Cache interface {
	GetTrial(ctx context.Context, userID string) (*models.Trial, bool, error)
	SetTrial(ctx context.Context, trial models.Trial) error
	InvalidateTrial(ctx context.Context, userID string) error
}

// Status ответ на запрос статуса пробного периода.
type Status struct {
	HasTrial    bool   `json:"hasTrial"`
	TrialEndsAt *int64 `json:"trialEndsAt"`
	IsActive    bool   `json:"isActive"`
}

// Info пробный период в сводном статусе пользователя.
type Info struct {
	StartAt   time.Time `json:"start_at"`
	EndAt     time.Time `json:"end_at"`
	IsActive  bool      `json:"is_active"`
	IsExpired bool      `json:"is_expired"`
}

// UserStatus сводный статус пользователя. Только для чтения.
type UserStatus struct {
	Username    string        `json:"username"`
	Status      models.Status `json:"status"`
	Plan        models.Plan   `json:"plan"`
	CreatedAt   time.Time     `json:"created_at"`
	LastLoginAt *time.Time    `json:"last_login_at"`
	Trial       *Info         `json:"trial"`
}

// SubscriptionStatus состояние подписки пользователя.
type SubscriptionStatus struct {
	Success    bool        `json:"success"`
	Username   string      `json:"username"`
	IsDisabled int         `json:"is_disabled"`
	Plan       models.Plan `json:"plan"`
	ExpiresAt  int64       `json:"expires_at"`
	Expired    bool        `json:"expired"`
}

// Service сервис пробных периодов.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
	now   func() time.Time
}

// New создаёт Service. cache может быть nil, тогда все чтения идут в хранилище.
func New(log *slog.Logger, repo Repository, cache Cache) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
		now:   time.Now,
	}
}

// WithClock подменяет источник времени.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Start запускает пробный период на models.TrialDuration. Если период
// уже идёт, возвращает его без изменений; истёкший период перезапускается.
func (s *Service) Start(ctx context.Context, userID string) (*models.Trial, error) {
	const op = "trial.Start"

	now := s.now().Unix()
	end := now + int64(models.TrialDuration/time.Second)
	t, started, err := s.repo.StartTrial(ctx, userID, now, end, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if started {
		s.invalidate(ctx, userID)
	}
	s.remember(ctx, *t)
	return t, nil
}

// Status сообщает, есть ли у аккаунта пробный период и идёт ли он сейчас.
func (s *Service) Status(ctx context.Context, userID string) (*Status, error) {
	const op = "trial.Status"

	t, err := s.lookup(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if t == nil {
		return &Status{}, nil
	}
	end := t.EndTS
	return &Status{
		HasTrial:    true,
		TrialEndsAt: &end,
		IsActive:    t.IsActive(s.now()),
	}, nil
}

// UserStatus собирает сводный статус аккаунта. План заменяется на trial,
// пока идёт пробный период.
func (s *Service) UserStatus(ctx context.Context, acc *models.Account) (*UserStatus, error) {
	const op = "trial.UserStatus"

	t, err := s.lookup(ctx, acc.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now()
	plan := acc.Plan
	if plan == "" {
		plan = models.PlanFree
	}
	res := &UserStatus{
		Username:    acc.Username(),
		Status:      acc.Status,
		Plan:        plan,
		CreatedAt:   acc.CreatedAt,
		LastLoginAt: acc.LastLoginAt,
	}
	if t != nil {
		active := t.IsActive(now)
		if active {
			res.Plan = models.PlanTrial
		}
		res.Trial = &Info{
			StartAt:   time.Unix(t.StartTS, 0).UTC(),
			EndAt:     time.Unix(t.EndTS, 0).UTC(),
			IsActive:  active,
			IsExpired: !active,
		}
	}
	return res, nil
}

// Subscription возвращает состояние подписки. Пользователь может
// запросить только собственный логин.
func (s *Service) Subscription(ctx context.Context, acc *models.Account, username string) (*SubscriptionStatus, error) {
	const op = "trial.Subscription"

	if username != acc.Username() {
		return nil, errs.ErrForbidden
	}

	res := &SubscriptionStatus{
		Success:  true,
		Username: username,
		Plan:     models.PlanFree,
	}
	if !acc.IsActive() {
		res.IsDisabled = 1
	}

	sub, err := s.repo.GetSubscription(ctx, acc.ID)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return res, nil
	case err != nil:
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if sub.Plan != "" {
		res.Plan = sub.Plan
	}
	if sub.CurrentPeriodEnd != nil {
		res.ExpiresAt = sub.CurrentPeriodEnd.Unix()
		res.Expired = !sub.CurrentPeriodEnd.After(s.now())
	}
	return res, nil
}

// Forget удаляет запись аккаунта из кеша.
func (s *Service) Forget(ctx context.Context, userID string) {
	s.invalidate(ctx, userID)
}

// lookup возвращает nil без ошибки, если пробного периода нет.
func (s *Service) lookup(ctx context.Context, userID string) (*models.Trial, error) {
	if s.cache != nil {
		t, found, err := s.cache.GetTrial(ctx, userID)
		if err != nil {
			s.log.Warn("trial cache read failed", slog.String("user_id", userID), sl.Err(err))
		} else if found {
			return t, nil
		}
	}

	t, err := s.repo.GetTrial(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	s.remember(ctx, *t)
	return t, nil
}

func (s *Service) remember(ctx context.Context, t models.Trial) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetTrial(ctx, t); err != nil {
		s.log.Warn("trial cache write failed", slog.String("user_id", t.UserID), sl.Err(err))
	}
}

func (s *Service) invalidate(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateTrial(ctx, userID); err != nil {
		s.log.Warn("trial cache invalidation failed", slog.String("user_id", userID), sl.Err(err))
	}
}
