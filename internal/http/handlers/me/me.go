// Package me реализует HTTP-обработчик GET /me: профиль текущего
// пользователя вместе с подпиской.
package me

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
	"github.com/magabrotheeeer/auth-service/internal/services/errs"
)

// Service описывает чтение подписки аккаунта.
type Service interface {
	Subscription(ctx context.Context, acc *models.Account) (*models.Subscription, error)
}

// Response профиль и подписка.
type Response struct {
	User         view.UserOut         `json:"user"`
	Subscription view.SubscriptionOut `json:"subscription"`
}

// Handler обрабатывает GET /me.
type Handler struct {
	log *slog.Logger
	svc Service
}

// New создаёт Handler.
func New(log *slog.Logger, svc Service) *Handler {
	return &Handler{log: log, svc: svc}
}

// ServeHTTP godoc
// @Summary Текущий пользователь
// @Description Профиль пользователя по access-токену и его подписка. Без записи о подписке возвращается free/active.
// @Tags User
// @Produce  json
// @Success 200 {object} Response
// @Failure 401 {object} response.ErrorResponse "token_invalid"
// @Failure 500 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /me [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.me"

	log := h.log.With(
		sl.Op(op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	acc, ok := middlewarectx.UserFrom(r.Context())
	if !ok {
		response.Fail(w, r, log, errs.ErrTokenInvalid)
		return
	}

	sub, err := h.svc.Subscription(r.Context(), acc)
	if err != nil {
		log.Error("failed to read subscription", sl.Err(err))
		response.Fail(w, r, log, err)
		return
	}

	render.JSON(w, r, Response{
		User:         view.User(acc),
		Subscription: view.Subscription(sub),
	})
}
