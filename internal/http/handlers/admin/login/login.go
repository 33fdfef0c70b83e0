// Package login реализует HTTP-обработчик входа администратора.
//
// Имя и пароль сверяются с конфигурацией. Ошибка в любом из них даёт
// одинаковый ответ 401 wrong_password.
package login

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/auth-service/internal/http/response"
	"github.com/magabrotheeeer/auth-service/internal/lib/sl"
)

// Service описывает вход администратора.
type Service interface {
	Login(username, password string) (string, error)
}

// Request учётные данные администратора.
type Request struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Response админ-токен.
type Response struct {
	Token string `json:"token"`
}

// Handler обрабатывает вход администратора.
type Handler struct {
	log      *slog.Logger
	svc      Service
	validate *validator.Validate
}

// New создаёт Handler.
func New(log *slog.Logger, svc Service) *Handler {
	return &Handler{
		log:      log,
		svc:      svc,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Вход администратора
// @Description Возвращает admin-токен со сроком действия 24 часа.
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param request body Request true "Учётные данные администратора"
// @Success 200 {object} Response
// @Failure 400 {object} response.ErrorResponse "invalid_params"
// @Failure 401 {object} response.ErrorResponse "wrong_password"
// @Router /admin/login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.login"

	log := h.log.With(
		sl.Op(op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		response.InvalidJSON(w, r)
		return
	}
	if !response.Validate(w, r, h.validate, req) {
		return
	}

	token, err := h.svc.Login(req.Username, req.Password)
	if err != nil {
		log.Warn("admin login failed", sl.Err(err))
		response.Fail(w, r, log, err)
		return
	}

	log.Info("admin logged in")
	render.JSON(w, r, Response{Token: token})
}
