// Package models содержит доменные структуры сервиса аутентификации:
// аккаунт, refresh-токен, подписку и пробный период.
package models

import "time"

// Status состояние жизненного цикла аккаунта.
type Status string

const (
	// StatusActive аккаунт может входить и получать токены.
	StatusActive Status = "active"
	// StatusDisabled аккаунт выключен администратором, обратимо.
	StatusDisabled Status = "disabled"
	// StatusBanned терминальное состояние, зарезервировано.
	StatusBanned Status = "banned"
)

// Plan тарифный план аккаунта.
type Plan string

const (
	PlanFree       Plan = "free"
	PlanTrial      Plan = "trial"
	PlanPremium    Plan = "premium"
	PlanEnterprise Plan = "enterprise"
)

// Account представляет зарегистрированного пользователя.
//
// Ровно одно из полей Email и Phone заполнено, оно же служит логином.
type Account struct {
	ID           string     // Неизменяемый идентификатор
	Email        *string    // Электронная почта, если логин это email
	Phone        *string    // Телефон, если логин это номер телефона
	PasswordHash string     // bcrypt-хеш пароля
	Status       Status     // active | disabled | banned
	Plan         Plan       // Хранимый план, по умолчанию free
	CreatedAt    time.Time  // Время регистрации
	LastLoginAt  *time.Time // Время последнего входа
}

// Username возвращает логин аккаунта: email, телефон или, если оба
// пусты, идентификатор.
func (a *Account) Username() string {
	if a.Email != nil && *a.Email != "" {
		return *a.Email
	}
	if a.Phone != nil && *a.Phone != "" {
		return *a.Phone
	}
	return a.ID
}

// IsActive сообщает, может ли аккаунт пользоваться сервисом.
func (a *Account) IsActive() bool {
	return a.Status == StatusActive
}

// AccountSummary строка административного списка: аккаунт вместе с
// тарифом и границами пробного периода.
type AccountSummary struct {
	Account
	TrialStart *int64
	TrialEnd   *int64
}
