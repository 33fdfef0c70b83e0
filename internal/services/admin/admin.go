// Package admin реализует административные операции: вход
// администратора, просмотр аккаунтов, блокировку, сброс пароля и удаление.
package admin

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/auth-service/internal/lib/jwt"
	"github.com/magabrotheeeer/auth-service/internal/lib/password"
	"github.com/magabrotheeeer/auth-service/internal/metrics"
	"github.com/magabrotheeeer/auth-service/internal/models"
	"github.com/magabrotheeeer/auth-service/internal/services/errs"
	"github.com/magabrotheeeer/auth-service/internal/storage"
)

// Параметры постраничного вывода.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPasswordLen  = 6
)

// Repository описывает операции хранилища для администрирования.
type Repository interface {
	ListAccounts(ctx context.Context, query string, limit, offset int) ([]models.AccountSummary, error)
	GetAccountSummary(ctx context.Context, id string) (*models.AccountSummary, error)
	SetStatus(ctx context.Context, id string, status models.Status) error
	UpdatePasswordHash(ctx context.Context, id, hash string) error
	DeleteAccount(ctx context.Context, id string) error
}

// Resolver находит аккаунт по email, телефону или идентификатору.
type Resolver interface {
	ByHandle(ctx context.Context, raw string) (*models.Account, error)
}

// PasswordHasher хеширует пароли.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// TrialCache забывает закешированный пробный период удалённого аккаунта.
type TrialCache interface {
	Forget(ctx context.Context, userID string)
}

// Credentials учётные данные администратора из конфигурации.
type Credentials struct {
	Username string
	Password string
}

// Page нормализованные параметры страницы.
type Page struct {
	Page int
	Size int
}

// ResetResult результат сброса пароля. TempPassword заполнен, только
// если пароль сгенерирован сервисом.
type ResetResult struct {
	Account      *models.Account
	TempPassword string
}

// Service административный сервис.
type Service struct {
	repo     Repository
	accounts Resolver
	tokens   jwt.Maker
	hasher   PasswordHasher
	creds    Credentials
	trials   TrialCache
	metrics  *metrics.Metrics
}

// New создаёт Service. trials и m могут быть nil.
func New(repo Repository, accounts Resolver, tokens jwt.Maker, hasher PasswordHasher, creds Credentials, trials TrialCache, m *metrics.Metrics) *Service {
	return &Service{
		repo:     repo,
		accounts: accounts,
		tokens:   tokens,
		hasher:   hasher,
		creds:    creds,
		trials:   trials,
		metrics:  m,
	}
}

// Login сверяет учётные данные с конфигурацией и выпускает admin-токен.
// Неверное имя и неверный пароль неразличимы.
func (s *Service) Login(username, pass string) (string, error) {
	const op = "admin.Login"

	userOK := constantTimeEqual(username, s.creds.Username)
	passOK := constantTimeEqual(pass, s.creds.Password)
	if !userOK || !passOK {
		return "", errs.ErrWrongPassword
	}

	token, err := s.tokens.GenerateAdminToken(s.creds.Username)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	s.metrics.TokenIssued(string(jwt.KindAdmin))
	return token, nil
}

// AuthenticateAdmin проверяет admin-токен и возвращает имя администратора.
// Хранилище не используется.
func (s *Service) AuthenticateAdmin(token string) (string, error) {
	if token == "" {
		s.metrics.TokenRejected(string(jwt.KindAdmin))
		return "", errs.ErrAdminUnauthorized
	}
	subject, err := s.tokens.ParseAdminToken(token)
	if err != nil || subject != s.creds.Username {
		s.metrics.TokenRejected(string(jwt.KindAdmin))
		return "", errs.ErrAdminUnauthorized
	}
	return subject, nil
}

// NormalizePage приводит page и size к допустимым значениям.
func NormalizePage(page, size int) Page {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > MaxPageSize {
		size = DefaultPageSize
	}
	return Page{Page: page, Size: size}
}

// List возвращает страницу аккаунтов, новые первыми.
func (s *Service) List(ctx context.Context, query string, page, size int) ([]models.AccountSummary, Page, error) {
	const op = "admin.List"

	p := NormalizePage(page, size)
	items, err := s.repo.ListAccounts(ctx, query, p.Size, (p.Page-1)*p.Size)
	if err != nil {
		return nil, p, fmt.Errorf("%s: %w", op, err)
	}
	return items, p, nil
}

// Get возвращает аккаунт вместе с пробным периодом.
func (s *Service) Get(ctx context.Context, handle string) (*models.AccountSummary, error) {
	const op = "admin.Get"

	acc, err := s.resolve(ctx, op, handle)
	if err != nil {
		return nil, err
	}
	summary, err := s.repo.GetAccountSummary(ctx, acc.ID)
	if err != nil {
		return nil, s.mapNotFound(op, err)
	}
	return summary, nil
}

// SetStatus переводит аккаунт в status. Повторный перевод в тот же статус не ошибка.
func (s *Service) SetStatus(ctx context.Context, handle string, status models.Status) (*models.Account, error) {
	const op = "admin.SetStatus"

	acc, err := s.resolve(ctx, op, handle)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetStatus(ctx, acc.ID, status); err != nil {
		return nil, s.mapNotFound(op, err)
	}
	acc.Status = status
	return acc, nil
}

// ResetPassword устанавливает newPassword или, если он пуст, генерирует
// временный пароль и возвращает его один раз.
func (s *Service) ResetPassword(ctx context.Context, handle, newPassword string) (*ResetResult, error) {
	const op = "admin.ResetPassword"

	if newPassword != "" && len(newPassword) < MinPasswordLen {
		return nil, errs.InvalidParams(fmt.Sprintf("new_password must be at least %d characters", MinPasswordLen))
	}
	acc, err := s.resolve(ctx, op, handle)
	if err != nil {
		return nil, err
	}

	res := &ResetResult{Account: acc}
	pass := newPassword
	if pass == "" {
		if pass, err = password.GenerateTemp(); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		res.TempPassword = pass
	}
	hash, err := s.hasher.Hash(pass)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.repo.UpdatePasswordHash(ctx, acc.ID, hash); err != nil {
		return nil, s.mapNotFound(op, err)
	}
	return res, nil
}

// Delete удаляет аккаунт со всеми связанными записями.
func (s *Service) Delete(ctx context.Context, handle string) (*models.Account, error) {
	const op = "admin.Delete"

	acc, err := s.resolve(ctx, op, handle)
	if err != nil {
		return nil, err
	}
	if err := s.repo.DeleteAccount(ctx, acc.ID); err != nil {
		return nil, s.mapNotFound(op, err)
	}
	if s.trials != nil {
		s.trials.Forget(ctx, acc.ID)
	}
	return acc, nil
}

func (s *Service) resolve(ctx context.Context, op, handle string) (*models.Account, error) {
	acc, err := s.accounts.ByHandle(ctx, handle)
	if err != nil {
		return nil, s.mapNotFound(op, err)
	}
	return acc, nil
}

func (s *Service) mapNotFound(op string, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return errs.ErrUserNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

func constantTimeEqual(a, b string) bool {
	ha := sha256.Sum256([]byte(a))
	hb := sha256.Sum256([]byte(b))
	return subtle.ConstantTimeCompare(ha[:], hb[:]) == 1
}
