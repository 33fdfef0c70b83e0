// Package setstatus реализует выключение и включение аккаунта
// администратором. Повторный перевод в тот же статус не ошибка.
package setstatus

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/auth-service/internal/http/middlewarectx"
	"github.com/magabrotheeeer/auth-service/internal/http/response"
	"github.com/magabrotheeeer/auth-service/internal/lib/sl"
	"github.com/magabrotheeeer/auth-service/internal/models"
)

// Service описывает смену статуса аккаунта.
type Service interface {
	SetStatus(ctx context.Context, handle string, status models.Status) (*models.Account, error)
}

// Response результат смены статуса.
type Response struct {
	OK       bool          `json:"ok"`
	Username string        `json:"username"`
	Status   models.Status `json:"status"`
}

// Handler переводит аккаунт в фиксированный статус.
type Handler struct {
	log    *slog.Logger
	svc    Service
	status models.Status
}

// New создаёт Handler, который переводит аккаунт в status.
func New(log *slog.Logger, svc Service, status models.Status) *Handler {
	return &Handler{log: log, svc: svc, status: status}
}

// ServeHTTP godoc
// @Summary Выключение или включение пользователя
// @Tags Admin
// @Produce  json
// @Param id path string true "Email, телефон или id"
// @Success 200 {object} Response
// @Failure 401 {object} response.ErrorResponse "admin_unauthorized"
// @Failure 404 {object} response.ErrorResponse "user_not_found"
// @Security BearerAuth
// @Router /admin/users/{id}/disable [post]
// @Router /admin/users/{id}/enable [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.setstatus"

	log := h.log.With(
		sl.Op(op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("status", string(h.status)),
	)

	acc, err := h.svc.SetStatus(r.Context(), middlewarectx.Target(r), h.status)
	if err != nil {
		log.Info("set status failed", sl.Err(err))
		response.Fail(w, r, log, err)
		return
	}

	log.Info("account status changed", slog.String("user_id", acc.ID))
	render.JSON(w, r, Response{OK: true, Username: acc.Username(), Status: acc.Status})
}
