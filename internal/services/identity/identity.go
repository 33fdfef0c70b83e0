// Package identity находит аккаунт по логину: email, номеру телефона
// или, в административных запросах, по идентификатору.
package identity

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/auth-service/internal/lib/identifier"
	"github.com/magabrotheeeer/auth-service/internal/models"
	"github.com/magabrotheeeer/auth-service/internal/storage"
)

// AccountLookup описывает поиск аккаунтов в хранилище.
type AccountLookup interface {
	GetAccountByEmail(ctx context.Context, email string) (*models.Account, error)
	GetAccountByPhone(ctx context.Context, phone string) (*models.Account, error)
	GetAccountByID(ctx context.Context, id string) (*models.Account, error)
}

// Resolver выбирает поле поиска по виду идентификатора.
type Resolver struct {
	accounts AccountLookup
}

// NewResolver создаёт Resolver.
func NewResolver(accounts AccountLookup) *Resolver {
	return &Resolver{accounts: accounts}
}

// ByIdentifier ищет аккаунт по логину. Строка, не похожая ни на email,
// ни на телефон, не может быть логином: результат storage.ErrNotFound.
func (r *Resolver) ByIdentifier(ctx context.Context, raw string) (*models.Account, error) {
	const op = "identity.ByIdentifier"

	id := identifier.Normalize(raw)
	var (
		acc *models.Account
		err error
	)
	switch identifier.Classify(id) {
	case identifier.Email:
		acc, err = r.accounts.GetAccountByEmail(ctx, id)
	case identifier.Phone:
		acc, err = r.accounts.GetAccountByPhone(ctx, id)
	default:
		err = storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return acc, nil
}

// ByHandle ищет аккаунт по логину или, если строка не является ни email,
// ни телефоном, по идентификатору аккаунта.
func (r *Resolver) ByHandle(ctx context.Context, raw string) (*models.Account, error) {
	const op = "identity.ByHandle"

	handle := identifier.Normalize(raw)
	if handle == "" {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	if identifier.Classify(handle) != identifier.Invalid {
		return r.ByIdentifier(ctx, handle)
	}
	acc, err := r.accounts.GetAccountByID(ctx, handle)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return acc, nil
}

// ByID ищет аккаунт по идентификатору.
func (r *Resolver) ByID(ctx context.Context, id string) (*models.Account, error) {
	const op = "identity.ByID"

	acc, err := r.accounts.GetAccountByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return acc, nil
}
