// Package response формирует JSON-ответы HTTP-обработчиков.
//
// Ошибки отдаются в виде {"detail": {"code": ..., "message": ...}}:
// code машиночитаемый и стабильный, message предназначен человеку.
package response

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/auth-service/internal/lib/sl"
	"github.com/magabrotheeeer/auth-service/internal/services/errs"
)

// CodeInternal код непредвиденной ошибки сервера.
const CodeInternal = "internal_error"

// ErrorDetail код и сообщение ошибки.
type ErrorDetail struct {
	Code    string `json:"code" example:"token_invalid"`
	Message string `json:"message" example:"token is invalid or expired"`
}

// ErrorResponse тело ответа с ошибкой.
type ErrorResponse struct {
	Detail ErrorDetail `json:"detail"`
}

// OKResponse тело простого успешного ответа.
type OKResponse struct {
	OK bool `json:"ok" example:"true"`
}

// Error возвращает тело ответа с ошибкой.
func Error(code, msg string) ErrorResponse {
	return ErrorResponse{Detail: ErrorDetail{Code: code, Message: msg}}
}

// FromDomain возвращает тело ответа для доменной ошибки.
func FromDomain(e *errs.Error) ErrorResponse {
	return Error(e.Code, e.Message)
}

// Fail пишет ответ для err. Доменные ошибки отдаются со своим статусом и
// кодом, остальные логируются и превращаются в 500 без подробностей.
func Fail(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	if e, ok := errs.From(err); ok {
		render.Status(r, e.Status)
		render.JSON(w, r, FromDomain(e))
		return
	}
	log.Error("internal error", sl.Err(err))
	render.Status(r, http.StatusInternalServerError)
	render.JSON(w, r, Error(CodeInternal, "internal server error"))
}

// InvalidJSON пишет 400 invalid_params для неразбираемого тела запроса.
func InvalidJSON(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, Error(errs.ErrInvalidParams.Code, "invalid request body"))
}

// ValidationError формирует invalid_params на основе ошибок валидации.
// Каждое нарушение формируется в человеко‑читаемый текст, объединённый через запятую.
func ValidationError(verrs validator.ValidationErrors) ErrorResponse {
	var msgs []string

	for _, err := range verrs {
		switch err.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "min":
			msgs = append(msgs, fmt.Sprintf("field %s must be at least %s characters", err.Field(), err.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("field %s must be at most %s characters", err.Field(), err.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("field %s is not valid", err.Field()))
		}
	}
	return Error(errs.ErrInvalidParams.Code, strings.Join(msgs, ", "))
}

// Validate проверяет req и при ошибке сам пишет ответ 400. Возвращает
// true, если запрос корректен.
func Validate(w http.ResponseWriter, r *http.Request, v *validator.Validate, req any) bool {
	err := v.Struct(req)
	if err == nil {
		return true
	}
	render.Status(r, http.StatusBadRequest)
	if verrs, ok := err.(validator.ValidationErrors); ok {
		render.JSON(w, r, ValidationError(verrs))
	} else {
		render.JSON(w, r, Error(errs.ErrInvalidParams.Code, err.Error()))
	}
	return false
}
