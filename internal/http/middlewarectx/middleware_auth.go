// Package middlewarectx содержит HTTP middleware сервиса: проверку
// bearer-токенов пользователя и администратора, журнал аудита и CORS.
//
// При успешной проверке принципал кладётся в контекст запроса и
// достаётся обработчиками через UserFrom и AdminFrom.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/auth-service/internal/http/response"
	"github.com/magabrotheeeer/auth-service/internal/lib/sl"
	"github.com/magabrotheeeer/auth-service/internal/models"
	"github.com/magabrotheeeer/auth-service/internal/services/errs"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// User ключ аутентифицированного аккаунта в контексте.
	User Key = "user"
	// Admin ключ имени администратора в контексте.
	Admin Key = "admin"
)

// UserAuthenticator проверяет access-токен и возвращает активный аккаунт.
type UserAuthenticator interface {
	AuthenticateUser(ctx context.Context, token string) (*models.Account, error)
}

// AdminAuthenticator проверяет админ-токен и возвращает имя администратора.
type AdminAuthenticator interface {
	AuthenticateAdmin(token string) (string, error)
}

// BearerToken извлекает токен из заголовка Authorization. Схема
// сравнивается без учёта регистра. Пустая строка, если заголовка нет
// или схема не Bearer.
func BearerToken(r *http.Request) string {
	scheme, token, found := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// UserGuard пропускает запрос только с действующим access-токеном
// активного аккаунта. Иначе 401 token_invalid.
func UserGuard(svc UserAuthenticator, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.UserGuard"

			log := log.With(
				sl.Op(op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			token := BearerToken(r)
			if token == "" {
				log.Info("missing or invalid authorization header")
				reject(w, r, errs.ErrTokenInvalid)
				return
			}

			acc, err := svc.AuthenticateUser(r.Context(), token)
			if err != nil {
				if _, ok := errs.From(err); !ok {
					response.Fail(w, r, log, err)
					return
				}
				log.Info("user token rejected", sl.Err(err))
				reject(w, r, errs.ErrTokenInvalid)
				return
			}

			ctx := context.WithValue(r.Context(), User, acc)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminGuard пропускает запрос только с действующим админ-токеном.
// Иначе 401 admin_unauthorized. Хранилище не используется.
func AdminGuard(svc AdminAuthenticator, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.AdminGuard"

			username, err := svc.AuthenticateAdmin(BearerToken(r))
			if err != nil {
				log.Info("admin token rejected",
					sl.Op(op),
					slog.String("request_id", middleware.GetReqID(r.Context())),
					sl.Err(err),
				)
				reject(w, r, errs.ErrAdminUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), Admin, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFrom возвращает аккаунт, положенный в контекст UserGuard.
func UserFrom(ctx context.Context) (*models.Account, bool) {
	acc, ok := ctx.Value(User).(*models.Account)
	return acc, ok && acc != nil
}

// AdminFrom возвращает имя администратора, положенное в контекст AdminGuard.
func AdminFrom(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(Admin).(string)
	return username, ok && username != ""
}

func reject(w http.ResponseWriter, r *http.Request, e *errs.Error) {
	render.Status(r, e.Status)
	render.JSON(w, r, response.FromDomain(e))
}
