// Package identifier классифицирует логин пользователя: email, номер
// телефона или недопустимое значение. Классификация используется всеми
// путями поиска аккаунта, чтобы регистрация, вход и админ-операции
// проверяли идентификатор одинаково.
package identifier

import (
	"regexp"
	"strings"
)

// Kind вид идентификатора.
type Kind int

const (
	// Invalid строка не является ни email, ни телефоном.
	Invalid Kind = iota
	// Email адрес электронной почты.
	Email
	// Phone мобильный номер: 11 цифр, первая 1, вторая 3–9.
	Phone
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^1[3-9]\d{9}$`)
)

// String возвращает имя вида для логов.
func (k Kind) String() string {
	switch k {
	case Email:
		return "email"
	case Phone:
		return "phone"
	default:
		return "invalid"
	}
}

// Normalize убирает пробельные символы по краям.
func Normalize(s string) string {
	return strings.TrimSpace(s)
}

// Classify определяет вид уже нормализованного идентификатора.
func Classify(s string) Kind {
	switch {
	case emailRe.MatchString(s):
		return Email
	case phoneRe.MatchString(s):
		return Phone
	default:
		return Invalid
	}
}
