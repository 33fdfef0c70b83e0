// Package jwt реализует выпуск и разбор подписанных токенов трёх видов:
// access, refresh и admin.
//
// Каждый токен несёт subject, срок действия и тег типа. При разборе
// проверяются подпись, срок действия и совпадение тега типа; любая
// ошибка сводится к ErrInvalidToken, чтобы вызывающий код не мог
// отличить просроченный токен от подделанного или токена чужого типа.
package jwt

import (
	"errors"
	"time"
)

// AdminTokenTTL фиксированное время жизни административного токена.
const AdminTokenTTL = 24 * time.Hour

// ErrInvalidToken возвращается для любого непригодного токена.
var ErrInvalidToken = errors.New("invalid token")

// Maker описывает интерфейс для выпуска и разбора токенов.
type Maker interface {
	// GenerateAccessToken выпускает короткоживущий access-токен для аккаунта.
	GenerateAccessToken(userID string) (string, error)
	// GenerateRefreshToken выпускает refresh-токен и возвращает момент его истечения.
	GenerateRefreshToken(userID string) (string, time.Time, error)
	// GenerateAdminToken выпускает административный токен на 24 часа.
	GenerateAdminToken(username string) (string, error)
	// ParseAccessToken возвращает id аккаунта из access-токена.
	ParseAccessToken(tokenStr string) (string, error)
	// ParseRefreshToken возвращает id аккаунта из refresh-токена.
	ParseRefreshToken(tokenStr string) (string, error)
	// ParseAdminToken возвращает имя администратора из admin-токена.
	ParseAdminToken(tokenStr string) (string, error)
}

// MakerImpl реализует Maker поверх HS256.
//
// Пользовательские токены (access и refresh) подписываются secretKey,
// административные ключом adminSecretKey.
type MakerImpl struct {
	secretKey      []byte
	adminSecretKey []byte
	accessTTL      time.Duration
	refreshTTL     time.Duration
	now            func() time.Time
}

// NewJWTMaker создаёт MakerImpl. Пустой adminSecretKey означает
// подпись административных токенов тем же ключом, что и пользовательских.
func NewJWTMaker(secretKey, adminSecretKey string, accessTTL, refreshTTL time.Duration) *MakerImpl {
	if adminSecretKey == "" {
		adminSecretKey = secretKey
	}
	return &MakerImpl{
		secretKey:      []byte(secretKey),
		adminSecretKey: []byte(adminSecretKey),
		accessTTL:      accessTTL,
		refreshTTL:     refreshTTL,
		now:            time.Now,
	}
}

// WithClock подменяет источник времени для выпуска и проверки токенов.
func (j *MakerImpl) WithClock(now func() time.Time) *MakerImpl {
	j.now = now
	return j
}
