package jwt

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Kind тег типа токена.
type Kind string

const (
	// KindAccess access-токен пользователя.
	KindAccess Kind = "access"
	// KindRefresh refresh-токен пользователя.
	KindRefresh Kind = "refresh"
	// KindAdmin токен администратора.
	KindAdmin Kind = "admin"
)

// CustomClaims описывает данные, хранящиеся в токене.
type CustomClaims struct {
	Type Kind `json:"type"`
	jwt.RegisteredClaims
}

// GenerateAccessToken выпускает access-токен с subject = userID.
func (j *MakerImpl) GenerateAccessToken(userID string) (string, error) {
	token, _, err := j.sign(KindAccess, userID, j.accessTTL, j.secretKey)
	return token, err
}

// GenerateRefreshToken выпускает refresh-токен с subject = userID.
func (j *MakerImpl) GenerateRefreshToken(userID string) (string, time.Time, error) {
	return j.sign(KindRefresh, userID, j.refreshTTL, j.secretKey)
}

// GenerateAdminToken выпускает admin-токен с subject = username.
func (j *MakerImpl) GenerateAdminToken(username string) (string, error) {
	token, _, err := j.sign(KindAdmin, username, AdminTokenTTL, j.adminSecretKey)
	return token, err
}

// ParseAccessToken проверяет access-токен и возвращает его subject.
func (j *MakerImpl) ParseAccessToken(tokenStr string) (string, error) {
	return j.parse(KindAccess, tokenStr, j.secretKey)
}

// ParseRefreshToken проверяет refresh-токен и возвращает его subject.
func (j *MakerImpl) ParseRefreshToken(tokenStr string) (string, error) {
	return j.parse(KindRefresh, tokenStr, j.secretKey)
}

// ParseAdminToken проверяет admin-токен и возвращает его subject.
func (j *MakerImpl) ParseAdminToken(tokenStr string) (string, error) {
	return j.parse(KindAdmin, tokenStr, j.adminSecretKey)
}

func (j *MakerImpl) sign(kind Kind, subject string, ttl time.Duration, key []byte) (string, time.Time, error) {
	const op = "jwt.sign"
	now := j.now()
	expiresAt := now.Add(ttl)
	claims := CustomClaims{
		Type: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%s: %w", op, err)
	}
	return token, expiresAt, nil
}

// parse намеренно не сохраняет исходную причину отказа.
func (j *MakerImpl) parse(kind Kind, tokenStr string, key []byte) (string, error) {
	const op = "jwt.parse"
	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, func(_ *jwt.Token) (any, error) {
		return key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}
	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid || claims.Type != kind || claims.Subject == "" {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}
	return claims.Subject, nil
}

// Fingerprint возвращает sha256-хеш токена в hex. Только он хранится
// в таблице refresh-токенов, сам токен не сохраняется.
func Fingerprint(tokenStr string) string {
	sum := sha256.Sum256([]byte(tokenStr))
	return hex.EncodeToString(sum[:])
}
