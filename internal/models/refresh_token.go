package models

import "time"

// RefreshToken запись о выданном refresh-токене.
//
// Хранится только хеш токена. Запись не изменяется после создания,
// кроме отметки об отзыве.
type RefreshToken struct {
	ID        string
	UserID    string
	TokenHash string
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}

// IsLive сообщает, что токен не отозван и не истёк на момент now.
func (t *RefreshToken) IsLive(now time.Time) bool {
	return t.RevokedAt == nil && now.Before(t.ExpiresAt)
}
