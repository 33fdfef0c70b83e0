package auth

import (
	"log/slog"
	"time"

	"github.com/magabrotheeeer/auth-service/internal/lib/jwt"
	"github.com/magabrotheeeer/auth-service/internal/lib/password"
	"github.com/magabrotheeeer/auth-service/internal/metrics"
	"github.com/magabrotheeeer/auth-service/internal/services/admin"
	"github.com/magabrotheeeer/auth-service/internal/services/audit"
	authservice "github.com/magabrotheeeer/auth-service/internal/services/auth"
	"github.com/magabrotheeeer/auth-service/internal/services/identity"
	trialservice "github.com/magabrotheeeer/auth-service/internal/services/trial"
)

// Store все операции хранилища, нужные сервисам. Реализуется
// repository.Storage.
type Store interface {
	authservice.Repository
	identity.AccountLookup
	admin.Repository
	trialservice.Repository
}

// Deps зависимости бизнес-сервисов.
type Deps struct {
	Store      Store
	TrialCache trialservice.Cache // nil отключает кеш
	Tokens     jwt.Maker
	Hasher     *password.Hasher
	Admin      admin.Credentials
	Metrics    *metrics.Metrics
	Sinks      []audit.Sink
	Clock      func() time.Time // nil означает time.Now
}

// Services собранные бизнес-сервисы.
type Services struct {
	Auth    *authservice.AuthService
	Admin   *admin.Service
	Trials  *trialservice.Service
	Auditor *audit.Auditor
}

// NewServices связывает сервисы между собой.
func NewServices(log *slog.Logger, d Deps) *Services {
	accounts := identity.NewResolver(d.Store)

	authSvc := authservice.NewAuthService(d.Store, accounts, d.Tokens, d.Hasher, d.Metrics)
	trials := trialservice.New(log, d.Store, d.TrialCache)
	if d.Clock != nil {
		authSvc.WithClock(d.Clock)
		trials.WithClock(d.Clock)
	}

	return &Services{
		Auth:    authSvc,
		Admin:   admin.New(d.Store, accounts, d.Tokens, d.Hasher, d.Admin, trials, d.Metrics),
		Trials:  trials,
		Auditor: audit.New(log, d.Metrics, d.Sinks...),
	}
}
