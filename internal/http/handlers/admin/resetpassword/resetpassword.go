// Package resetpassword реализует сброс пароля администратором.
//
// Если new_password передан, он сохраняется и не возвращается. Иначе
// генерируется временный пароль, который отдаётся в ответе один раз.
package resetpassword

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/auth-service/internal/http/middlewarectx"
	"github.com/magabrotheeeer/auth-service/internal/http/response"
	"github.com/magabrotheeeer/auth-service/internal/lib/sl"
	"github.com/magabrotheeeer/auth-service/internal/services/admin"
)

// Service описывает сброс пароля.
type Service interface {
	ResetPassword(ctx context.Context, handle, newPassword string) (*admin.ResetResult, error)
}

// Request тело запроса. Может отсутствовать.
type Request struct {
	NewPassword string `json:"new_password" example:"newsecret"`
}

// Response результат сброса.
type Response struct {
	OK           bool   `json:"ok"`
	TempPassword string `json:"temp_password,omitempty"`
	Message      string `json:"message"`
}

// Handler обрабатывает сброс пароля.
type Handler struct {
	log *slog.Logger
	svc Service
}

// New создаёт Handler.
func New(log *slog.Logger, svc Service) *Handler {
	return &Handler{log: log, svc: svc}
}

// ServeHTTP godoc
// @Summary Сброс пароля пользователя
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param id path string true "Email, телефон или id"
// @Param request body Request false "Новый пароль, не короче 6 символов"
// @Success 200 {object} Response
// @Failure 400 {object} response.ErrorResponse "invalid_params"
// @Failure 401 {object} response.ErrorResponse "admin_unauthorized"
// @Failure 404 {object} response.ErrorResponse "user_not_found"
// @Security BearerAuth
// @Router /admin/users/{id}/reset-password [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.resetpassword"

	log := h.log.With(
		sl.Op(op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if r.Body != nil {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			log.Error("failed to decode request body", sl.Err(err))
			response.InvalidJSON(w, r)
			return
		}
	}

	res, err := h.svc.ResetPassword(r.Context(), middlewarectx.Target(r), req.NewPassword)
	if err != nil {
		log.Info("reset password failed", sl.Err(err))
		response.Fail(w, r, log, err)
		return
	}

	log.Info("password reset", slog.String("user_id", res.Account.ID), slog.Bool("generated", res.TempPassword != ""))
	if res.TempPassword == "" {
		render.JSON(w, r, Response{OK: true, Message: "password updated"})
		return
	}
	render.JSON(w, r, Response{
		OK:           true,
		TempPassword: res.TempPassword,
		Message:      "temporary password generated, store it safely",
	})
}
