// Package view содержит публичные JSON-представления аккаунта и подписки,
// общие для нескольких обработчиков. Хеш пароля сюда не попадает.
package view

import (
	"time"

	"github.com/magabrotheeeer/auth-service/internal/models"
)

// TokenType тип токенов в ответах.
const TokenType = "bearer"

// UserOut публичное представление аккаунта.
type UserOut struct {
	ID          string        `json:"id" example:"5f1c7c1e-6a1f-4c55-9f62-0f3f7e1f6d11"`
	Email       *string       `json:"email" example:"alice@example.com"`
	Phone       *string       `json:"phone"`
	CreatedAt   time.Time     `json:"created_at"`
	LastLoginAt *time.Time    `json:"last_login_at"`
	Status      models.Status `json:"status" example:"active"`
}

// SubscriptionOut публичное представление подписки.
type SubscriptionOut struct {
	Plan             models.Plan `json:"plan" example:"free"`
	Status           string      `json:"status" example:"active"`
	CurrentPeriodEnd *time.Time  `json:"current_period_end"`
	Features         []string    `json:"features"`
}

// AuthResponse ответ регистрации и входа.
type AuthResponse struct {
	User         UserOut `json:"user"`
	AccessToken  string  `json:"access_token"`
	RefreshToken string  `json:"refresh_token"`
	TokenType    string  `json:"token_type" example:"bearer"`
}

// AdminUserItem строка административного списка пользователей.
type AdminUserItem struct {
	Username  string      `json:"username" example:"alice@example.com"`
	UserID    string      `json:"user_id"`
	CreatedAt time.Time   `json:"created_at"`
	Disabled  bool        `json:"disabled"`
	TrialEnd  *int64      `json:"trial_end"`
	Plan      models.Plan `json:"plan" example:"free"`
}

// AdminUserDetail карточка пользователя для администратора.
type AdminUserDetail struct {
	AdminUserItem
	LastLoginAt *time.Time `json:"last_login_at"`
	TrialStart  *int64     `json:"trial_start"`
}

// User строит UserOut.
func User(acc *models.Account) UserOut {
	return UserOut{
		ID:          acc.ID,
		Email:       acc.Email,
		Phone:       acc.Phone,
		CreatedAt:   acc.CreatedAt,
		LastLoginAt: acc.LastLoginAt,
		Status:      acc.Status,
	}
}

// Subscription строит SubscriptionOut. Список возможностей никогда не null.
func Subscription(sub *models.Subscription) SubscriptionOut {
	features := sub.Features
	if features == nil {
		features = []string{}
	}
	return SubscriptionOut{
		Plan:             sub.Plan,
		Status:           sub.Status,
		CurrentPeriodEnd: sub.CurrentPeriodEnd,
		Features:         features,
	}
}

// AdminItem строит строку административного списка.
func AdminItem(s *models.AccountSummary) AdminUserItem {
	plan := s.Plan
	if plan == "" {
		plan = models.PlanFree
	}
	return AdminUserItem{
		Username:  s.Username(),
		UserID:    s.ID,
		CreatedAt: s.CreatedAt,
		Disabled:  !s.IsActive(),
		TrialEnd:  s.TrialEnd,
		Plan:      plan,
	}
}

// AdminDetail строит карточку пользователя.
func AdminDetail(s *models.AccountSummary) AdminUserDetail {
	return AdminUserDetail{
		AdminUserItem: AdminItem(s),
		LastLoginAt:   s.LastLoginAt,
		TrialStart:    s.TrialStart,
	}
}
