// Package status реализует HTTP-обработчик сводного статуса пользователя:
// статус аккаунта, действующий тариф и пробный период. Только чтение.
package status

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
	"github.com/magabrotheeeer/auth-service/internal/services/errs"
	"github.com/magabrotheeeer/auth-service/internal/services/trial"
)

// Service описывает чтение сводного статуса.
type Service interface {
	UserStatus(ctx context.Context, acc *models.Account) (*trial.UserStatus, error)
}

// Handler обрабатывает запрос статуса.
type Handler struct {
	log *slog.Logger
	svc Service
}

// New создаёт Handler.
func New(log *slog.Logger, svc Service) *Handler {
	return &Handler{log: log, svc: svc}
}

// ServeHTTP godoc
// @Summary Статус пользователя
// @Description Возвращает логин, статус, действующий тариф (trial при активном пробном периоде) и пробный период.
// @Tags Auth
// @Produce  json
// @Success 200 {object} trial.UserStatus
// @Failure 401 {object} response.ErrorResponse "token_invalid"
// @Failure 500 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /auth/status [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.status"

	log := h.log.With(
		sl.Op(op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	acc, ok := middlewarectx.UserFrom(r.Context())
	if !ok {
		response.Fail(w, r, log, errs.ErrTokenInvalid)
		return
	}

	st, err := h.svc.UserStatus(r.Context(), acc)
	if err != nil {
		log.Error("failed to read user status", sl.Err(err))
		response.Fail(w, r, log, err)
		return
	}
	render.JSON(w, r, st)
}
