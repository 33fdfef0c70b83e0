// Package auth реализует жизненный цикл пользовательской сессии:
// регистрацию, вход, обновление access-токена, выход и проверку
// access-токена для защищённых запросов.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/auth-service/internal/lib/identifier"
	"github.com/magabrotheeeer/auth-service/internal/lib/jwt"
	"github.com/magabrotheeeer/auth-service/internal/metrics"
	"github.com/magabrotheeeer/auth-service/internal/models"
	"github.com/magabrotheeeer/auth-service/internal/services/errs"
	"github.com/magabrotheeeer/auth-service/internal/storage"
)

// MinPasswordLength минимальная длина пароля при регистрации.
const MinPasswordLength = 6

// Repository описывает операции хранилища, нужные сервису.
type Repository interface {
	CreateAccount(ctx context.Context, acc models.Account, sub models.Subscription, rt models.RefreshToken) error
	RecordLogin(ctx context.Context, userID string, at time.Time, rt models.RefreshToken) error
	GetRefreshTokenByHash(ctx context.Context, hash string) (*models.RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, hash string, at time.Time) error
	GetSubscription(ctx context.Context, userID string) (*models.Subscription, error)
}

// Resolver находит аккаунт по логину или идентификатору.
type Resolver interface {
	ByIdentifier(ctx context.Context, raw string) (*models.Account, error)
	ByID(ctx context.Context, id string) (*models.Account, error)
}

// PasswordHasher хеширует и сверяет пароли.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// Session результат регистрации или входа.
type Session struct {
	Account      *models.Account
	AccessToken  string
	RefreshToken string
}

// AuthService отвечает за регистрацию, вход и проверку токенов пользователей.
type AuthService struct {
	repo     Repository
	accounts Resolver
	tokens   jwt.Maker
	hasher   PasswordHasher
	metrics  *metrics.Metrics
	now      func() time.Time
}

// NewAuthService создает новый экземпляр AuthService. m может быть nil.
func NewAuthService(repo Repository, accounts Resolver, tokens jwt.Maker, hasher PasswordHasher, m *metrics.Metrics) *AuthService {
	return &AuthService{
		repo:     repo,
		accounts: accounts,
		tokens:   tokens,
		hasher:   hasher,
		metrics:  m,
		now:      time.Now,
	}
}

// WithClock подменяет источник времени.
func (s *AuthService) WithClock(now func() time.Time) *AuthService {
	s.now = now
	return s
}

// Register создаёт аккаунт с планом free, подписку по умолчанию и первую сессию.
func (s *AuthService) Register(ctx context.Context, rawIdentifier, rawPassword string) (*Session, error) {
	const op = "auth.Register"

	login := identifier.Normalize(rawIdentifier)
	if login == "" {
		return nil, errs.InvalidParams("enter a phone number or email")
	}
	kind := identifier.Classify(login)
	if kind == identifier.Invalid {
		return nil, errs.InvalidParams("enter a valid phone number or email")
	}
	if len(rawPassword) < MinPasswordLength {
		return nil, errs.InvalidParams(fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}

	_, err := s.accounts.ByIdentifier(ctx, login)
	switch {
	case err == nil:
		return nil, errs.ErrAccountExists
	case !errors.Is(err, storage.ErrNotFound):
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	hash, err := s.hasher.Hash(rawPassword)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now().UTC()
	acc := &models.Account{
		ID:           uuid.NewString(),
		PasswordHash: hash,
		Status:       models.StatusActive,
		Plan:         models.PlanFree,
		CreatedAt:    now,
	}
	if kind == identifier.Email {
		acc.Email = &login
	} else {
		acc.Phone = &login
	}

	session, rt, err := s.issueSession(acc, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	sub := models.DefaultSubscription(uuid.NewString(), acc.ID)
	if err := s.repo.CreateAccount(ctx, *acc, sub, rt); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil, errs.ErrAccountExists
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.issued()
	return session, nil
}

// Login проверяет пароль и открывает новую сессию. Ранее выданные
// refresh-токены остаются действительными.
//
// Неизвестный логин и неверный пароль дают одну и ту же ошибку
// wrong_password. Статус аккаунта проверяется только после пароля.
func (s *AuthService) Login(ctx context.Context, rawIdentifier, rawPassword string) (*Session, error) {
	const op = "auth.Login"

	login := identifier.Normalize(rawIdentifier)
	if login == "" {
		return nil, errs.InvalidParams("enter a phone number or email")
	}

	acc, err := s.accounts.ByIdentifier(ctx, login)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.metrics.Login(metrics.OutcomeFailure)
			return nil, errs.ErrWrongPassword
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.hasher.Compare(acc.PasswordHash, rawPassword); err != nil {
		s.metrics.Login(metrics.OutcomeFailure)
		return nil, errs.ErrWrongPassword
	}
	if !acc.IsActive() {
		s.metrics.Login(metrics.OutcomeFailure)
		return nil, errs.ErrAccountDisabled
	}

	now := s.now().UTC()
	session, rt, err := s.issueSession(acc, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.repo.RecordLogin(ctx, acc.ID, now, rt); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, errs.ErrWrongPassword
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	acc.LastLoginAt = &now

	s.metrics.Login(metrics.OutcomeSuccess)
	s.issued()
	return session, nil
}

// Refresh выпускает новый access-токен по refresh-токену. Сам
// refresh-токен не меняется.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	const op = "auth.Refresh"

	acc, err := s.refreshOwner(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, errs.ErrTokenInvalid) {
			s.metrics.TokenRejected(string(jwt.KindRefresh))
			return "", err
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	access, err := s.tokens.GenerateAccessToken(acc.ID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	s.metrics.TokenIssued(string(jwt.KindAccess))
	return access, nil
}

// Logout отзывает refresh-токен. Повторный выход тем же токеном не ошибка.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	const op = "auth.Logout"

	if refreshToken == "" {
		return errs.ErrTokenInvalid
	}
	if _, err := s.tokens.ParseRefreshToken(refreshToken); err != nil {
		return errs.ErrTokenInvalid
	}
	if err := s.repo.RevokeRefreshToken(ctx, jwt.Fingerprint(refreshToken), s.now().UTC()); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return errs.ErrTokenInvalid
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// AuthenticateUser превращает access-токен в активный аккаунт. Любая
// причина отказа сводится к token_invalid.
func (s *AuthService) AuthenticateUser(ctx context.Context, accessToken string) (*models.Account, error) {
	const op = "auth.AuthenticateUser"

	acc, err := s.tokenOwner(ctx, accessToken, s.tokens.ParseAccessToken)
	if err != nil {
		if errors.Is(err, errs.ErrTokenInvalid) {
			s.metrics.TokenRejected(string(jwt.KindAccess))
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return acc, nil
}

// Subscription возвращает подписку аккаунта или подписку по умолчанию,
// если запись отсутствует.
func (s *AuthService) Subscription(ctx context.Context, acc *models.Account) (*models.Subscription, error) {
	const op = "auth.Subscription"

	sub, err := s.repo.GetSubscription(ctx, acc.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			def := models.DefaultSubscription("", acc.ID)
			return &def, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sub, nil
}

func (s *AuthService) refreshOwner(ctx context.Context, refreshToken string) (*models.Account, error) {
	acc, err := s.tokenOwner(ctx, refreshToken, s.tokens.ParseRefreshToken)
	if err != nil {
		return nil, err
	}

	record, err := s.repo.GetRefreshTokenByHash(ctx, jwt.Fingerprint(refreshToken))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, errs.ErrTokenInvalid
		}
		return nil, err
	}
	if record.UserID != acc.ID || !record.IsLive(s.now()) {
		return nil, errs.ErrTokenInvalid
	}
	return acc, nil
}

func (s *AuthService) tokenOwner(ctx context.Context, token string, parse func(string) (string, error)) (*models.Account, error) {
	if token == "" {
		return nil, errs.ErrTokenInvalid
	}
	userID, err := parse(token)
	if err != nil {
		return nil, errs.ErrTokenInvalid
	}
	acc, err := s.accounts.ByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, errs.ErrTokenInvalid
		}
		return nil, err
	}
	if !acc.IsActive() {
		return nil, errs.ErrTokenInvalid
	}
	return acc, nil
}

func (s *AuthService) issueSession(acc *models.Account, now time.Time) (*Session, models.RefreshToken, error) {
	access, err := s.tokens.GenerateAccessToken(acc.ID)
	if err != nil {
		return nil, models.RefreshToken{}, err
	}
	refresh, expiresAt, err := s.tokens.GenerateRefreshToken(acc.ID)
	if err != nil {
		return nil, models.RefreshToken{}, err
	}
	rt := models.RefreshToken{
		ID:        uuid.NewString(),
		UserID:    acc.ID,
		TokenHash: jwt.Fingerprint(refresh),
		ExpiresAt: expiresAt.UTC(),
		CreatedAt: now,
	}
	return &Session{Account: acc, AccessToken: access, RefreshToken: refresh}, rt, nil
}

func (s *AuthService) issued() {
	s.metrics.TokenIssued(string(jwt.KindAccess))
	s.metrics.TokenIssued(string(jwt.KindRefresh))
}
