// Package password реализует хеширование и проверку паролей, а также
// генерацию временных паролей для административного сброса.
//
// Hasher создает bcrypt-хеш пароля для хранения, Compare сверяет хеш
// с введённым паролем. Сырые пароли нигде не сохраняются и не логируются.
package password

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// TempPasswordBytes количество случайных байт во временном пароле.
// В base64url это даёт 16 символов.
const TempPasswordBytes = 12

// Hasher хеширует пароли с заданной стоимостью bcrypt.
type Hasher struct {
	cost int
}

// NewHasher создаёт Hasher. Стоимость вне допустимого диапазона bcrypt
// заменяется на bcrypt.DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash принимает пароль пользователя и возвращает его bcrypt‑хэш.
func (h *Hasher) Hash(password string) (string, error) {
	const op = "password.Hash"
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashed), nil
}

// Compare сравнивает bcrypt‑хэш с введённым паролем.
//
// Возвращает nil, если пароль соответствует хэшу, иначе ошибку.
func (h *Hasher) Compare(hash, password string) error {
	const op = "password.Compare"
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GenerateTemp возвращает случайный временный пароль в алфавите base64url.
func GenerateTemp() (string, error) {
	const op = "password.GenerateTemp"
	buf := make([]byte, TempPasswordBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
