// Package refresh реализует HTTP-обработчик обновления access-токена.
//
// Refresh-токен берётся из поля refresh_token тела запроса, а если его
// нет, то из заголовка Authorization. Ротации нет: в ответе только новый
// access-токен.
package refresh

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/auth-service/internal/http/handlers/view"
	"github.com/magabrotheeeer/auth-service/internal/http/middlewarectx"
	"github.com/magabrotheeeer/auth-service/internal/http/response"
	"github.com/magabrotheeeer/auth-service/internal/lib/sl"
)

// Service описывает обновление access-токена.
type Service interface {
	Refresh(ctx context.Context, refreshToken string) (string, error)
}

// Request тело запроса. Может отсутствовать.
type Request struct {
	RefreshToken string `json:"refresh_token" example:"eyJhbGciOiJIUzI1NiIs..."`
}

// Response новый access-токен.
type Response struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type" example:"bearer"`
}

// Handler обрабатывает обновление токена.
type Handler struct {
	log *slog.Logger
	svc Service
}

// New создаёт Handler.
func New(log *slog.Logger, svc Service) *Handler {
	return &Handler{log: log, svc: svc}
}

// TokenFrom достаёт refresh-токен из тела запроса или заголовка
// Authorization. Неразбираемое тело считается пустым.
func TokenFrom(r *http.Request) string {
	var req Request
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	if token := strings.TrimSpace(req.RefreshToken); token != "" {
		return token
	}
	return middlewarectx.BearerToken(r)
}

// ServeHTTP godoc
// @Summary Обновление access-токена
// @Description Проверяет refresh-токен и выдаёт новый access-токен. Токен принимается из тела или из заголовка Authorization.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request false "Refresh-токен"
// @Success 200 {object} Response
// @Failure 401 {object} response.ErrorResponse "token_invalid"
// @Failure 500 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /auth/refresh [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.refresh"

	log := h.log.With(
		sl.Op(op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	access, err := h.svc.Refresh(r.Context(), TokenFrom(r))
	if err != nil {
		log.Info("refresh failed", sl.Err(err))
		response.Fail(w, r, log, err)
		return
	}

	log.Info("access token refreshed")
	render.JSON(w, r, Response{AccessToken: access, TokenType: view.TokenType})
}
