// Package errs описывает доменные ошибки сервиса. Каждая ошибка несёт
// машиночитаемый код, HTTP-статус и сообщение для клиента.
package errs

import (
	"errors"
	"net/http"
)

// Error доменная ошибка, которая отдаётся клиенту как {code, message}.
type Error struct {
	Code    string
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

// Is сравнивает ошибки по коду, поэтому InvalidParams("...") совпадает
// с ErrInvalidParams.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

var (
	ErrInvalidParams     = &Error{Code: "invalid_params", Status: http.StatusBadRequest, Message: "invalid parameters"}
	ErrAccountExists     = &Error{Code: "account_exists", Status: http.StatusBadRequest, Message: "account already exists"}
	ErrWrongPassword     = &Error{Code: "wrong_password", Status: http.StatusUnauthorized, Message: "wrong identifier or password"}
	ErrAccountDisabled   = &Error{Code: "account_disabled", Status: http.StatusForbidden, Message: "account is disabled"}
	ErrTokenInvalid      = &Error{Code: "token_invalid", Status: http.StatusUnauthorized, Message: "token is invalid or expired"}
	ErrAdminUnauthorized = &Error{Code: "admin_unauthorized", Status: http.StatusUnauthorized, Message: "administrator authorization required"}
	ErrUserNotFound      = &Error{Code: "user_not_found", Status: http.StatusNotFound, Message: "user not found"}
	ErrForbidden         = &Error{Code: "forbidden", Status: http.StatusForbidden, Message: "can only query own status"}
)

// InvalidParams возвращает invalid_params с уточнённым сообщением.
func InvalidParams(msg string) *Error {
	return &Error{Code: ErrInvalidParams.Code, Status: ErrInvalidParams.Status, Message: msg}
}

// From извлекает доменную ошибку из цепочки err.
func From(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
