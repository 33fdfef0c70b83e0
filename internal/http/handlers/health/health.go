// Package health реализует проверку живости сервиса.
package health

import (
	"net/http"

	"github.com/go-chi/render"
)

// Response ответ проверки.
type Response struct {
	Status string `json:"status" example:"ok"`
}

// Handler отвечает {"status":"ok"}, пока процесс обслуживает запросы.
//
// @Summary Проверка живости
// @Tags Health
// @Produce  json
// @Success 200 {object} Response
// @Router /health [get]
func Handler(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, Response{Status: "ok"})
}
