// Package start реализует HTTP-обработчик запуска пробного периода.
//
// Повторный запуск во время действующего периода возвращает прежнюю
// дату окончания. После истечения период начинается заново.
package start

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
)

// Service описывает запуск пробного периода.
type Service interface {
	Start(ctx context.Context, userID string) (*models.Trial, error)
}

// Response дата окончания пробного периода в unix-секундах.
type Response struct {
	Success     bool  `json:"success" example:"true"`
	TrialEndsAt int64 `json:"trialEndsAt" example:"1700604800"`
}

// Handler обрабатывает запуск пробного периода.
type Handler struct {
	log *slog.Logger
	svc Service
}

// New создаёт Handler.
func New(log *slog.Logger, svc Service) *Handler {
	return &Handler{log: log, svc: svc}
}

// ServeHTTP godoc
// @Summary Запуск пробного периода
// @Description Запускает семидневный пробный период. Идемпотентен, пока период действует.
// @Tags Trial
// @Produce  json
// @Success 200 {object} Response
// @Failure 401 {object} response.ErrorResponse "token_invalid"
// @Failure 500 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /auth/trial/start [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.trial.start"

	log := h.log.With(
		sl.Op(op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	acc, ok := middlewarectx.UserFrom(r.Context())
	if !ok {
		response.Fail(w, r, log, errs.ErrTokenInvalid)
		return
	}

	t, err := h.svc.Start(r.Context(), acc.ID)
	if err != nil {
		log.Error("failed to start trial", sl.Err(err))
		response.Fail(w, r, log, err)
		return
	}

	log.Info("trial started", slog.String("user_id", acc.ID), slog.Int64("end_ts", t.EndTS))
	render.JSON(w, r, Response{Success: true, TrialEndsAt: t.EndTS})
}
