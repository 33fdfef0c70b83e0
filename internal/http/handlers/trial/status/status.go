// Package status реализует HTTP-обработчик статуса пробного периода.
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
	"github.com/magabrotheeeer/auth-service/internal/services/errs"
	"github.com/magabrotheeeer/auth-service/internal/services/trial"
)

// Service описывает чтение статуса пробного периода.
type Service interface {
	Status(ctx context.Context, userID string) (*trial.Status, error)
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
// @Summary Статус пробного периода
// @Tags Trial
// @Produce  json
// @Success 200 {object} trial.Status
// @Failure 401 {object} response.ErrorResponse "token_invalid"
// @Failure 500 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /auth/trial/status [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.trial.status"

	log := h.log.With(
		sl.Op(op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	acc, ok := middlewarectx.UserFrom(r.Context())
	if !ok {
		response.Fail(w, r, log, errs.ErrTokenInvalid)
		return
	}

	st, err := h.svc.Status(r.Context(), acc.ID)
	if err != nil {
		log.Error("failed to read trial status", sl.Err(err))
		response.Fail(w, r, log, err)
		return
	}
	render.JSON(w, r, st)
}
