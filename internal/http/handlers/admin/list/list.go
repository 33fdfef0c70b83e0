// Package list реализует постраничный список пользователей для
// администратора. Новые аккаунты идут первыми.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/auth-service/internal/http/handlers/view"
	"github.com/magabrotheeeer/auth-service/internal/http/response"
	"github.com/magabrotheeeer/auth-service/internal/lib/sl"
	"github.com/magabrotheeeer/auth-service/internal/models"
	"github.com/magabrotheeeer/auth-service/internal/services/admin"
)

// Service описывает чтение списка аккаунтов.
type Service interface {
	List(ctx context.Context, query string, page, size int) ([]models.AccountSummary, admin.Page, error)
}

// Handler обрабатывает запрос списка.
type Handler struct {
	log *slog.Logger
	svc Service
}

// New создаёт Handler.
func New(log *slog.Logger, svc Service) *Handler {
	return &Handler{log: log, svc: svc}
}

// ServeHTTP godoc
// @Summary Список пользователей
// @Description Поиск без учёта регистра по email, телефону и id. page < 1 считается 1, size вне 1..100 считается 20.
// @Tags Admin
// @Produce  json
// @Param query query string false "Подстрока для поиска"
// @Param page query int false "Номер страницы" default(1)
// @Param size query int false "Размер страницы" default(20)
// @Success 200 {array} view.AdminUserItem
// @Failure 401 {object} response.ErrorResponse "admin_unauthorized"
// @Failure 500 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /admin/users [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.list"

	log := h.log.With(
		sl.Op(op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	q := r.URL.Query()
	// нечисловые значения превращаются в 0 и нормализуются сервисом
	page, _ := strconv.Atoi(q.Get("page"))
	size, _ := strconv.Atoi(q.Get("size"))

	items, p, err := h.svc.List(r.Context(), q.Get("query"), page, size)
	if err != nil {
		log.Error("failed to list users", sl.Err(err))
		response.Fail(w, r, log, err)
		return
	}

	out := make([]view.AdminUserItem, 0, len(items))
	for i := range items {
		out = append(out, view.AdminItem(&items[i]))
	}

	log.Info("users listed", slog.Int("count", len(out)), slog.Int("page", p.Page), slog.Int("size", p.Size))
	render.JSON(w, r, out)
}
