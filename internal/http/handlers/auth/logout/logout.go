// Package logout реализует HTTP-обработчик выхода: отзыв refresh-токена.
// Остальные сессии аккаунта остаются действительными.
package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/auth-service/internal/http/handlers/auth/refresh"
	"github.com/magabrotheeeer/auth-service/internal/http/response"
	"github.com/magabrotheeeer/auth-service/internal/lib/sl"
)

// Service описывает отзыв refresh-токена.
type Service interface {
	Logout(ctx context.Context, refreshToken string) error
}

// Handler обрабатывает выход.
type Handler struct {
	log *slog.Logger
	svc Service
}

// New создаёт Handler.
func New(log *slog.Logger, svc Service) *Handler {
	return &Handler{log: log, svc: svc}
}

// ServeHTTP godoc
// @Summary Выход
// @Description Отзывает переданный refresh-токен.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body refresh.Request false "Refresh-токен"
// @Success 200 {object} response.OKResponse
// @Failure 401 {object} response.ErrorResponse "token_invalid"
// @Failure 500 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		sl.Op(op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := h.svc.Logout(r.Context(), refresh.TokenFrom(r)); err != nil {
		log.Info("logout failed", sl.Err(err))
		response.Fail(w, r, log, err)
		return
	}

	log.Info("refresh token revoked")
	render.JSON(w, r, response.OKResponse{OK: true})
}
