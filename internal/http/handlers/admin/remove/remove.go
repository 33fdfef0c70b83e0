// Package remove реализует удаление пользователя администратором.
// Удаление необратимо и забирает с собой refresh-токены, подписку и
// пробный период.
package remove

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

// Service описывает удаление аккаунта.
type Service interface {
	Delete(ctx context.Context, handle string) (*models.Account, error)
}

// Response результат удаления.
type Response struct {
	OK       bool   `json:"ok"`
	Username string `json:"username"`
	Message  string `json:"message"`
}

// Handler обрабатывает удаление.
type Handler struct {
	log *slog.Logger
	svc Service
}

// New создаёт Handler.
func New(log *slog.Logger, svc Service) *Handler {
	return &Handler{log: log, svc: svc}
}

// ServeHTTP godoc
// @Summary Удаление пользователя
// @Tags Admin
// @Produce  json
// @Param id path string true "Email, телефон или id"
// @Success 200 {object} Response
// @Failure 401 {object} response.ErrorResponse "admin_unauthorized"
// @Failure 404 {object} response.ErrorResponse "user_not_found"
// @Security BearerAuth
// @Router /admin/users/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.remove"

	log := h.log.With(
		sl.Op(op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	acc, err := h.svc.Delete(r.Context(), middlewarectx.Target(r))
	if err != nil {
		log.Info("delete user failed", sl.Err(err))
		response.Fail(w, r, log, err)
		return
	}

	log.Info("user deleted", slog.String("user_id", acc.ID))
	render.JSON(w, r, Response{OK: true, Username: acc.Username(), Message: "user deleted"})
}
