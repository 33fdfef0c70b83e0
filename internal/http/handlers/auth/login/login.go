// Package login реализует HTTP-обработчик входа пользователя.
//
// Неизвестный логин и неверный пароль неразличимы для клиента: оба
// дают 401 wrong_password. Выключенный аккаунт получает 403.
package login

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/auth-service/internal/http/handlers/view"
	"github.com/magabrotheeeer/auth-service/internal/http/response"
	"github.com/magabrotheeeer/auth-service/internal/lib/sl"
)

// Request учётные данные для входа.
type Request struct {
	Identifier string `json:"identifier" validate:"required" example:"alice@example.com"`
	Password   string `json:"password" validate:"required" example:"secret1"`
}

// Handler обрабатывает вход.
type Handler struct {
	log      *slog.Logger        // Логгер для записи операций и ошибок
	svc      Service             // Сервис аккаунтов
	validate *validator.Validate // Валидатор входных данных
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
// @Summary Вход пользователя
// @Description Проверяет логин и пароль, обновляет время входа и выдаёт новую пару токенов. Ранее выданные refresh-токены остаются действительными.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Учётные данные"
// @Success 200 {object} view.AuthResponse
// @Failure 400 {object} response.ErrorResponse "invalid_params"
// @Failure 401 {object} response.ErrorResponse "wrong_password"
// @Failure 403 {object} response.ErrorResponse "account_disabled"
// @Failure 500 {object} response.ErrorResponse
// @Router /auth/login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

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
		log.Info("validation failed")
		return
	}

	session, err := h.svc.Login(r.Context(), req.Identifier, req.Password)
	if err != nil {
		log.Info("login failed", sl.Err(err))
		response.Fail(w, r, log, err)
		return
	}

	log.Info("login success", slog.String("user_id", session.Account.ID))
	render.JSON(w, r, view.AuthResponse{
		User:         view.User(session.Account),
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		TokenType:    view.TokenType,
	})
}
