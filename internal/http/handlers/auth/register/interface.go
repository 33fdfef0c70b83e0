package register

import (
	"context"

	"github.com/magabrotheeeer/auth-service/internal/services/auth"
)

// Service описывает регистрацию аккаунта.
type Service interface {
	Register(ctx context.Context, identifier, password string) (*auth.Session, error)
}
