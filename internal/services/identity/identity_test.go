package identity_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/auth-service/internal/models"
	"github.com/magabrotheeeer/auth-service/internal/services/identity"
	"github.com/magabrotheeeer/auth-service/internal/storage"
)

type LookupMock struct {
	mock.Mock
}

func (m *LookupMock) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	args := m.Called(ctx, email)
	acc, _ := args.Get(0).(*models.Account)
	return acc, args.Error(1)
}

func (m *LookupMock) GetAccountByPhone(ctx context.Context, phone string) (*models.Account, error) {
	args := m.Called(ctx, phone)
	acc, _ := args.Get(0).(*models.Account)
	return acc, args.Error(1)
}

func (m *LookupMock) GetAccountByID(ctx context.Context, id string) (*models.Account, error) {
	args := m.Called(ctx, id)
	acc, _ := args.Get(0).(*models.Account)
	return acc, args.Error(1)
}

func TestResolver_ByIdentifier(t *testing.T) {
	acc := &models.Account{ID: "u1"}

	tests := []struct {
		name    string
		raw     string
		setup   func(m *LookupMock)
		wantErr error
	}{
		{
			name: "email",
			raw:  "  alice@example.com ",
			setup: func(m *LookupMock) {
				m.On("GetAccountByEmail", mock.Anything, "alice@example.com").Return(acc, nil).Once()
			},
		},
		{
			name: "phone",
			raw:  "13800138000",
			setup: func(m *LookupMock) {
				m.On("GetAccountByPhone", mock.Anything, "13800138000").Return(acc, nil).Once()
			},
		},
		{
			name:    "invalid identifier never hits the store",
			raw:     "12345",
			setup:   func(m *LookupMock) {},
			wantErr: storage.ErrNotFound,
		},
		{
			name: "store miss",
			raw:  "bob@example.com",
			setup: func(m *LookupMock) {
				m.On("GetAccountByEmail", mock.Anything, "bob@example.com").Return(nil, storage.ErrNotFound).Once()
			},
			wantErr: storage.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(LookupMock)
			tt.setup(m)
			r := identity.NewResolver(m)

			got, err := r.ByIdentifier(context.Background(), tt.raw)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, acc, got)
			}
			m.AssertExpectations(t)
		})
	}
}

func TestResolver_ByHandle(t *testing.T) {
	acc := &models.Account{ID: "3f1c2a9e-0000-4000-8000-000000000001"}

	t.Run("falls back to id", func(t *testing.T) {
		m := new(LookupMock)
		m.On("GetAccountByID", mock.Anything, acc.ID).Return(acc, nil).Once()

		got, err := identity.NewResolver(m).ByHandle(context.Background(), acc.ID)
		require.NoError(t, err)
		assert.Equal(t, acc, got)
		m.AssertExpectations(t)
	})

	t.Run("phone goes to phone lookup", func(t *testing.T) {
		m := new(LookupMock)
		m.On("GetAccountByPhone", mock.Anything, "13912345678").Return(acc, nil).Once()

		_, err := identity.NewResolver(m).ByHandle(context.Background(), "13912345678")
		require.NoError(t, err)
		m.AssertExpectations(t)
	})

	t.Run("empty handle", func(t *testing.T) {
		m := new(LookupMock)
		_, err := identity.NewResolver(m).ByHandle(context.Background(), "   ")
		assert.ErrorIs(t, err, storage.ErrNotFound)
		m.AssertNotCalled(t, "GetAccountByID", mock.Anything, mock.Anything)
	})

	t.Run("store error is propagated", func(t *testing.T) {
		boom := errors.New("boom")
		m := new(LookupMock)
		m.On("GetAccountByID", mock.Anything, "abc").Return(nil, boom).Once()

		_, err := identity.NewResolver(m).ByHandle(context.Background(), "abc")
		assert.ErrorIs(t, err, boom)
	})
}
