package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/auth-service/internal/migrations"
	"github.com/magabrotheeeer/auth-service/internal/models"
	"github.com/magabrotheeeer/auth-service/internal/storage"
)

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(s *Storage) *TestDataFactory {
	return &TestDataFactory{storage: s}
}

// CreateAccount создает аккаунт с подпиской и refresh-токеном
func (f *TestDataFactory) CreateAccount(t *testing.T, email, phone string, createdAt time.Time) models.Account {
	t.Helper()

	acc := models.Account{
		ID:           uuid.NewString(),
		PasswordHash: "hash",
		Status:       models.StatusActive,
		Plan:         models.PlanFree,
		CreatedAt:    createdAt,
	}
	if email != "" {
		acc.Email = &email
	}
	if phone != "" {
		acc.Phone = &phone
	}
	rt := f.RefreshToken(acc.ID, "hash-"+acc.ID, createdAt.Add(time.Hour))
	err := f.storage.CreateAccount(context.Background(), acc,
		models.DefaultSubscription(uuid.NewString(), acc.ID), rt)
	require.NoError(t, err)
	return acc
}

// RefreshToken собирает запись refresh-токена
func (f *TestDataFactory) RefreshToken(userID, hash string, expiresAt time.Time) models.RefreshToken {
	return models.RefreshToken{
		ID:        uuid.NewString(),
		UserID:    userID,
		TokenHash: hash,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
}

// CountRows возвращает число строк таблицы, принадлежащих аккаунту
func (f *TestDataFactory) CountRows(t *testing.T, table, userColumn, userID string) int {
	t.Helper()

	var n int
	err := f.storage.DB.QueryRow(`SELECT COUNT(*) FROM `+table+` WHERE `+userColumn+` = $1`, userID).Scan(&n)
	require.NoError(t, err)
	return n
}

func setupTestDatabase(t *testing.T) (*Storage, func()) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		),
	)
	require.NoError(t, err, "failed to start container")

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := storage.New(ctx, storage.Options{DSN: dsn, MaxOpenConns: 5, ConnMaxLifetime: time.Minute})
	require.NoError(t, err, "failed to connect")

	migrationsPath, err := filepath.Abs("../../../migrations")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(db, migrationsPath))

	cleanup := func() {
		_ = db.Close()
		_ = pgContainer.Terminate(ctx)
	}
	return New(db), cleanup
}
