package login

import (
	"context"

	"github.com/magabrotheeeer/auth-service/internal/services/auth"
)

// Service описывает вход в аккаунт.
type Service interface {
	Login(ctx context.Context, identifier, password string) (*auth.Session, error)
}
