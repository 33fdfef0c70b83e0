// Package status реализует HTTP-обработчик GET /subscription/status.
// Пользователь может запросить только собственный логин.
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

// Service описывает чтение состояния подписки.
type Service interface {
	Subscription(ctx context.Context, acc *models.Account, username string) (*trial.SubscriptionStatus, error)
}

// Handler обрабатывает запрос состояния подписки.
type Handler struct {
	log *slog.Logger
	svc Service
}

// New создаёт Handler.
func New(log *slog.Logger, svc Service) *Handler {
	return &Handler{log: log, svc: svc}
}

// ServeHTTP godoc
// @Summary Состояние подписки
// @Tags Subscription
// @Produce  json
// @Param username query string true "Собственный логин (email или телефон)"
// @Success 200 {object} trial.SubscriptionStatus
// @Failure 400 {object} response.ErrorResponse "invalid_params"
// @Failure 401 {object} response.ErrorResponse "token_invalid"
// @Failure 403 {object} response.ErrorResponse "forbidden"
// @Failure 500 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /subscription/status [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.status"

	log := h.log.With(
		sl.Op(op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	acc, ok := middlewarectx.UserFrom(r.Context())
	if !ok {
		response.Fail(w, r, log, errs.ErrTokenInvalid)
		return
	}

	username := r.URL.Query().Get("username")
	if username == "" {
		response.Fail(w, r, log, errs.InvalidParams("username is required"))
		return
	}

	st, err := h.svc.Subscription(r.Context(), acc, username)
	if err != nil {
		log.Info("subscription status failed", sl.Err(err))
		response.Fail(w, r, log, err)
		return
	}
	render.JSON(w, r, st)
}
