package auth

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/magabrotheeeer/auth-service/docs"
	adminget "github.com/magabrotheeeer/auth-service/internal/http/handlers/admin/get"
	adminlist "github.com/magabrotheeeer/auth-service/internal/http/handlers/admin/list"
	adminlogin "github.com/magabrotheeeer/auth-service/internal/http/handlers/admin/login"
	"github.com/magabrotheeeer/auth-service/internal/http/handlers/admin/remove"
	"github.com/magabrotheeeer/auth-service/internal/http/handlers/admin/resetpassword"
	"github.com/magabrotheeeer/auth-service/internal/http/handlers/admin/setstatus"
	"github.com/magabrotheeeer/auth-service/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/auth-service/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/auth-service/internal/http/handlers/auth/refresh"
	"github.com/magabrotheeeer/auth-service/internal/http/handlers/auth/register"
	authstatus "github.com/magabrotheeeer/auth-service/internal/http/handlers/auth/status"
	"github.com/magabrotheeeer/auth-service/internal/http/handlers/health"
	"github.com/magabrotheeeer/auth-service/internal/http/handlers/me"
	substatus "github.com/magabrotheeeer/auth-service/internal/http/handlers/subscription/status"
	trialstart "github.com/magabrotheeeer/auth-service/internal/http/handlers/trial/start"
	trialstatus "github.com/magabrotheeeer/auth-service/internal/http/handlers/trial/status"
	"github.com/magabrotheeeer/auth-service/internal/http/middlewarectx"
	"github.com/magabrotheeeer/auth-service/internal/models"
	"github.com/magabrotheeeer/auth-service/internal/services/audit"
)

// RouteOptions параметры маршрутизатора.
type RouteOptions struct {
	CORSOrigins []string
	// Gatherer источник метрик для /metrics; nil отключает эндпоинт.
	Gatherer prometheus.Gatherer
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, s *Services, opts RouteOptions) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		middlewarectx.CORS(opts.CORSOrigins),
	)

	userGuard := middlewarectx.UserGuard(s.Auth, logger)
	adminGuard := middlewarectx.AdminGuard(s.Admin, logger)
	// Аудит снаружи guard, чтобы попытки без прав тоже попадали в журнал.
	audited := func(action string) chi.Router {
		return r.With(middlewarectx.Audit(s.Auditor, action, logger), adminGuard)
	}

	r.Get("/health", health.Handler)

	r.Route("/auth", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, s.Auth).ServeHTTP)
		r.Post("/login", login.New(logger, s.Auth).ServeHTTP)
		r.Post("/refresh", refresh.New(logger, s.Auth).ServeHTTP)
		r.Post("/logout", logout.New(logger, s.Auth).ServeHTTP)

		r.Group(func(r chi.Router) {
			r.Use(userGuard)
			r.Get("/status", authstatus.New(logger, s.Trials).ServeHTTP)
			r.Post("/trial/start", trialstart.New(logger, s.Trials).ServeHTTP)
			r.Get("/trial/status", trialstatus.New(logger, s.Trials).ServeHTTP)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(userGuard)
		r.Get("/me", me.New(logger, s.Auth).ServeHTTP)
		r.Get("/subscription/status", substatus.New(logger, s.Trials).ServeHTTP)
	})

	r.With(middlewarectx.Audit(s.Auditor, audit.ActionAdminLogin, logger)).
		Post("/admin/login", adminlogin.New(logger, s.Admin).ServeHTTP)
	audited(audit.ActionListUsers).Get("/admin/users", adminlist.New(logger, s.Admin).ServeHTTP)
	audited(audit.ActionGetUser).Get("/admin/users/{id}", adminget.New(logger, s.Admin).ServeHTTP)
	audited(audit.ActionDisableUser).Post("/admin/users/{id}/disable", setstatus.New(logger, s.Admin, models.StatusDisabled).ServeHTTP)
	audited(audit.ActionEnableUser).Post("/admin/users/{id}/enable", setstatus.New(logger, s.Admin, models.StatusActive).ServeHTTP)
	audited(audit.ActionResetPassword).Post("/admin/users/{id}/reset-password", resetpassword.New(logger, s.Admin).ServeHTTP)
	audited(audit.ActionDeleteUser).Delete("/admin/users/{id}", remove.New(logger, s.Admin).ServeHTTP)

	if opts.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
