// Package get реализует карточку пользователя для администратора.
package get

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/auth-service/internal/http/handlers/view"
	"github.com/magabrotheeeer/auth-service/internal/http/middlewarectx"
	"github.com/magabrotheeeer/auth-service/internal/http/response"
	"github.com/magabrotheeeer/auth-service/internal/lib/sl"
	"github.com/magabrotheeeer/auth-service/internal/models"
)

// Service описывает чтение карточки аккаунта.
type Service interface {
	Get(ctx context.Context, handle string) (*models.AccountSummary, error)
}

// Handler обрабатывает запрос карточки.
type Handler struct {
	log *slog.Logger
	svc Service
}

// New создаёт Handler.
func New(log *slog.Logger, svc Service) *Handler {
	return &Handler{log: log, svc: svc}
}

// ServeHTTP godoc
// @Summary Карточка пользователя
// @Tags Admin
// @Produce  json
// @Param id path string true "Email, телефон или id"
// @Success 200 {object} view.AdminUserDetail
// @Failure 401 {object} response.ErrorResponse "admin_unauthorized"
// @Failure 404 {object} response.ErrorResponse "user_not_found"
// @Security BearerAuth
// @Router /admin/users/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.get"

	log := h.log.With(
		sl.Op(op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	summary, err := h.svc.Get(r.Context(), middlewarectx.Target(r))
	if err != nil {
		log.Info("get user failed", sl.Err(err))
		response.Fail(w, r, log, err)
		return
	}
	render.JSON(w, r, view.AdminDetail(summary))
}
