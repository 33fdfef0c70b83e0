package models

import "time"

// Subscription подписка аккаунта, один к одному. Создаётся при
// регистрации с планом free и статусом active.
type Subscription struct {
	ID               string
	UserID           string
	Plan             Plan
	Status           string
	CurrentPeriodEnd *time.Time
	Features         []string
}

// DefaultSubscription возвращает подписку, которая создаётся при регистрации.
func DefaultSubscription(id, userID string) Subscription {
	return Subscription{
		ID:       id,
		UserID:   userID,
		Plan:     PlanFree,
		Status:   "active",
		Features: []string{},
	}
}
