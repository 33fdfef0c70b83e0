// Package storage открывает пул соединений с PostgreSQL и предоставляет
// общие для репозиториев абстракции: интерфейс DBTX, выполнение функции
// в транзакции и ошибки уровня хранилища.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

var (
	// ErrNotFound запись не найдена.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists нарушено ограничение уникальности.
	ErrAlreadyExists = errors.New("already exists")
)

const uniqueViolation = "23505"

// Options настройки пула соединений.
type Options struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DBTX подмножество database/sql, которым пользуются репозитории.
// Ему удовлетворяют и *sql.DB, и *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// New открывает пул соединений и проверяет его доступность.
//
// Соединения пересоздаются по истечении ConnMaxLifetime, а database/sql
// отбрасывает сломанные соединения, не возвращая ошибку вызывающему.
func New(ctx context.Context, opts Options) (*sql.DB, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		db.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}
	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return db, nil
}

// WithTx открывает транзакцию, выполняет fn и фиксирует её при успехе.
// При ошибке или панике транзакция откатывается, паника пробрасывается дальше.
func WithTx(ctx context.Context, db *sql.DB, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	err = fn(ctx, tx)
	return err
}

// IsUniqueViolation сообщает, что err вызван нарушением ограничения уникальности.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// MapError переводит ошибки драйвера в ошибки уровня хранилища.
func MapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return ErrNotFound
	case IsUniqueViolation(err):
		return ErrAlreadyExists
	default:
		return err
	}
}
