// Package repository реализует хранилище аккаунтов на основе PostgreSQL:
// аккаунты, refresh-токены, подписки и пробные периоды.
//
// Операции, затрагивающие несколько таблиц (регистрация, вход, удаление),
// выполняются в одной транзакции.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/auth-service/internal/storage"
)

// Storage инкапсулирует пул соединений с PostgreSQL.
type Storage struct {
	DB *sql.DB
}

// New создаёт Storage поверх открытого пула.
func New(db *sql.DB) *Storage {
	return &Storage{DB: db}
}

// CheckDatabaseReady проверяет, что миграции применены.
func (s *Storage) CheckDatabaseReady(ctx context.Context) error {
	const op = "storage.CheckDatabaseReady"

	var exists bool
	err := s.DB.QueryRowContext(ctx, `SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'users'
    )`).Scan(&exists)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !exists {
		return fmt.Errorf("%s: required table users missing", op)
	}
	return nil
}

func checkCtx(ctx context.Context, op string) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
		return nil
	}
}

func (s *Storage) inTx(ctx context.Context, fn func(ctx context.Context, tx storage.DBTX) error) error {
	return storage.WithTx(ctx, s.DB, fn)
}
