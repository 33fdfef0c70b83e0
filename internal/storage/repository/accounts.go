package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/magabrotheeeer/auth-service/internal/models"
	"github.com/magabrotheeeer/auth-service/internal/storage"
)

const accountColumns = `id, email, phone, password_hash, status, plan, created_at, last_login_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*models.Account, error) {
	var (
		acc         models.Account
		email       sql.NullString
		phone       sql.NullString
		lastLoginAt sql.NullTime
	)
	if err := row.Scan(&acc.ID, &email, &phone, &acc.PasswordHash,
		&acc.Status, &acc.Plan, &acc.CreatedAt, &lastLoginAt); err != nil {
		return nil, err
	}
	if email.Valid {
		acc.Email = &email.String
	}
	if phone.Valid {
		acc.Phone = &phone.String
	}
	if lastLoginAt.Valid {
		t := lastLoginAt.Time
		acc.LastLoginAt = &t
	}
	return &acc, nil
}

// CreateAccount сохраняет новый аккаунт вместе с подпиской по умолчанию
// и первым refresh-токеном. Если логин уже занят, возвращает
// storage.ErrAlreadyExists.
func (s *Storage) CreateAccount(ctx context.Context, acc models.Account, sub models.Subscription, rt models.RefreshToken) error {
	const op = "storage.CreateAccount"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	features, err := json.Marshal(sub.Features)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = s.inTx(ctx, func(ctx context.Context, tx storage.DBTX) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO users (`+accountColumns+`)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			acc.ID, acc.Email, acc.Phone, acc.PasswordHash, acc.Status, acc.Plan,
			acc.CreatedAt, acc.LastLoginAt); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO subscriptions
				(id, user_id, plan, status, current_period_end, features)
				VALUES ($1, $2, $3, $4, $5, $6)`,
			sub.ID, acc.ID, sub.Plan, sub.Status, sub.CurrentPeriodEnd, string(features)); err != nil {
			return err
		}
		return insertRefreshToken(ctx, tx, rt)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, storage.MapError(err))
	}
	return nil
}

// GetAccountByEmail возвращает аккаунт по email.
func (s *Storage) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	return s.getAccount(ctx, "storage.GetAccountByEmail", "email", email)
}

// GetAccountByPhone возвращает аккаунт по номеру телефона.
func (s *Storage) GetAccountByPhone(ctx context.Context, phone string) (*models.Account, error) {
	return s.getAccount(ctx, "storage.GetAccountByPhone", "phone", phone)
}

// GetAccountByID возвращает аккаунт по идентификатору. Строка, не
// являющаяся UUID, не может быть идентификатором и даёт storage.ErrNotFound.
func (s *Storage) GetAccountByID(ctx context.Context, id string) (*models.Account, error) {
	const op = "storage.GetAccountByID"
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	return s.getAccount(ctx, op, "id", id)
}

func (s *Storage) getAccount(ctx context.Context, op, column, value string) (*models.Account, error) {
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT ` + accountColumns + ` FROM users WHERE ` + column + ` = $1`
	acc, err := scanAccount(s.DB.QueryRowContext(ctx, query, value))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, storage.MapError(err))
	}
	return acc, nil
}

// RecordLogin отмечает время входа, сохраняет новый refresh-токен и
// удаляет истёкшие refresh-токены этого аккаунта.
func (s *Storage) RecordLogin(ctx context.Context, userID string, at time.Time, rt models.RefreshToken) error {
	const op = "storage.RecordLogin"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	err := s.inTx(ctx, func(ctx context.Context, tx storage.DBTX) error {
		res, err := tx.ExecContext(ctx, `UPDATE users SET last_login_at = $2 WHERE id = $1`, userID, at)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err != nil {
			return err
		} else if n == 0 {
			return storage.ErrNotFound
		}
		if _, err := pruneExpired(ctx, tx, userID, at); err != nil {
			return err
		}
		return insertRefreshToken(ctx, tx, rt)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, storage.MapError(err))
	}
	return nil
}

// ListAccounts возвращает страницу аккаунтов, новые первыми. Непустой
// query фильтрует по вхождению подстроки в email, телефон или id без
// учёта регистра.
func (s *Storage) ListAccounts(ctx context.Context, query string, limit, offset int) ([]models.AccountSummary, error) {
	const op = "storage.ListAccounts"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	q := `SELECT u.id, u.email, u.phone, u.password_hash, u.status, u.plan,
				u.created_at, u.last_login_at, t.start_ts, t.end_ts
			  FROM users u
			  LEFT JOIN trials t ON t.user_id = u.id`
	args := []any{}
	if query = strings.TrimSpace(query); query != "" {
		q += ` WHERE u.email ILIKE $1 OR u.phone ILIKE $1 OR u.id::text ILIKE $1`
		args = append(args, "%"+escapeLike(query)+"%")
	}
	q += fmt.Sprintf(` ORDER BY u.created_at DESC, u.id LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := s.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := []models.AccountSummary{}
	for rows.Next() {
		summary, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, *summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetAccountSummary возвращает аккаунт вместе с границами пробного периода.
func (s *Storage) GetAccountSummary(ctx context.Context, id string) (*models.AccountSummary, error) {
	const op = "storage.GetAccountSummary"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	row := s.DB.QueryRowContext(ctx, `SELECT u.id, u.email, u.phone, u.password_hash, u.status, u.plan,
				u.created_at, u.last_login_at, t.start_ts, t.end_ts
			  FROM users u
			  LEFT JOIN trials t ON t.user_id = u.id
			  WHERE u.id = $1`, id)
	summary, err := scanSummary(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, storage.MapError(err))
	}
	return summary, nil
}

func scanSummary(row rowScanner) (*models.AccountSummary, error) {
	var (
		summary     models.AccountSummary
		email       sql.NullString
		phone       sql.NullString
		lastLoginAt sql.NullTime
		start, end  sql.NullInt64
	)
	if err := row.Scan(&summary.ID, &email, &phone, &summary.PasswordHash, &summary.Status,
		&summary.Plan, &summary.CreatedAt, &lastLoginAt, &start, &end); err != nil {
		return nil, err
	}
	if email.Valid {
		summary.Email = &email.String
	}
	if phone.Valid {
		summary.Phone = &phone.String
	}
	if lastLoginAt.Valid {
		t := lastLoginAt.Time
		summary.LastLoginAt = &t
	}
	if start.Valid {
		summary.TrialStart = &start.Int64
	}
	if end.Valid {
		summary.TrialEnd = &end.Int64
	}
	return &summary, nil
}

// SetStatus меняет статус аккаунта.
func (s *Storage) SetStatus(ctx context.Context, id string, status models.Status) error {
	const op = "storage.SetStatus"
	return s.updateOne(ctx, op, `UPDATE users SET status = $2 WHERE id = $1`, id, status)
}

// UpdatePasswordHash заменяет хеш пароля аккаунта.
func (s *Storage) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	const op = "storage.UpdatePasswordHash"
	return s.updateOne(ctx, op, `UPDATE users SET password_hash = $2 WHERE id = $1`, id, hash)
}

func (s *Storage) updateOne(ctx context.Context, op, query string, args ...any) error {
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	res, err := s.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	return nil
}

// DeleteAccount удаляет аккаунт вместе с refresh-токенами, подпиской и
// пробным периодом. Операция необратима.
func (s *Storage) DeleteAccount(ctx context.Context, id string) error {
	const op = "storage.DeleteAccount"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	err := s.inTx(ctx, func(ctx context.Context, tx storage.DBTX) error {
		for _, q := range []string{
			`DELETE FROM refresh_tokens WHERE user_id = $1`,
			`DELETE FROM subscriptions WHERE user_id = $1`,
			`DELETE FROM trials WHERE user_id = $1`,
		} {
			if _, err := tx.ExecContext(ctx, q, id); err != nil {
				return err
			}
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return storage.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, storage.MapError(err))
	}
	return nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
