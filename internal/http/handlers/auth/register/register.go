// Package register реализует HTTP-обработчик регистрации пользователя.
//
// Логином служит email или номер телефона. При успехе создаются аккаунт
// и бесплатная подписка, а клиент сразу получает пару токенов.
package register

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

// Request входные данные регистрации.
type Request struct {
	Identifier string `json:"identifier" validate:"required" example:"alice@example.com"`
	Password   string `json:"password" validate:"required,min=6" example:"secret1"`
}

// Handler обрабатывает регистрацию.
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
// @Summary Регистрация пользователя
// @Description Создаёт аккаунт по email или телефону и возвращает access и refresh токены.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Логин и пароль"
// @Success 200 {object} view.AuthResponse
// @Failure 400 {object} response.ErrorResponse "invalid_params или account_exists"
// @Failure 500 {object} response.ErrorResponse
// @Router /auth/register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

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

	session, err := h.svc.Register(r.Context(), req.Identifier, req.Password)
	if err != nil {
		log.Info("register failed", sl.Err(err))
		response.Fail(w, r, log, err)
		return
	}

	log.Info("user registered", slog.String("user_id", session.Account.ID))
	render.JSON(w, r, view.AuthResponse{
		User:         view.User(session.Account),
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		TokenType:    view.TokenType,
	})
}
