package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	other := errors.New("boom")
	fkErr := &pgconn.PgError{Code: "23503"}

	tests := []struct {
		name string
		in   error
		want error
	}{
		{name: "nil", in: nil, want: nil},
		{name: "no rows", in: sql.ErrNoRows, want: ErrNotFound},
		{name: "wrapped no rows", in: fmt.Errorf("scan: %w", sql.ErrNoRows), want: ErrNotFound},
		{name: "unique violation", in: &pgconn.PgError{Code: "23505"}, want: ErrAlreadyExists},
		{name: "other pg error", in: fkErr, want: fkErr},
		{name: "other", in: other, want: other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapError(tt.in))
		})
	}
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, IsUniqueViolation(errors.New("23505")))
	assert.False(t, IsUniqueViolation(nil))
}
