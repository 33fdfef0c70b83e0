package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/magabrotheeeer/auth-service/internal/lib/jwt"
	"github.com/magabrotheeeer/auth-service/internal/lib/password"
	"github.com/magabrotheeeer/auth-service/internal/models"
	"github.com/magabrotheeeer/auth-service/internal/services/auth"
	"github.com/magabrotheeeer/auth-service/internal/services/errs"
	"github.com/magabrotheeeer/auth-service/internal/storage"
)

// Мок для Repository
type RepoMock struct {
	mock.Mock
}

func (m *RepoMock) CreateAccount(ctx context.Context, acc models.Account, sub models.Subscription, rt models.RefreshToken) error {
	return m.Called(ctx, acc, sub, rt).Error(0)
}

func (m *RepoMock) RecordLogin(ctx context.Context, userID string, at time.Time, rt models.RefreshToken) error {
	return m.Called(ctx, userID, at, rt).Error(0)
}

func (m *RepoMock) GetRefreshTokenByHash(ctx context.Context, hash string) (*models.RefreshToken, error) {
	args := m.Called(ctx, hash)
	rt, _ := args.Get(0).(*models.RefreshToken)
	return rt, args.Error(1)
}

func (m *RepoMock) RevokeRefreshToken(ctx context.Context, hash string, at time.Time) error {
	return m.Called(ctx, hash, at).Error(0)
}

func (m *RepoMock) GetSubscription(ctx context.Context, userID string) (*models.Subscription, error) {
	args := m.Called(ctx, userID)
	sub, _ := args.Get(0).(*models.Subscription)
	return sub, args.Error(1)
}

// Мок для Resolver
type ResolverMock struct {
	mock.Mock
}

func (m *ResolverMock) ByIdentifier(ctx context.Context, raw string) (*models.Account, error) {
	args := m.Called(ctx, raw)
	acc, _ := args.Get(0).(*models.Account)
	return acc, args.Error(1)
}

func (m *ResolverMock) ByID(ctx context.Context, id string) (*models.Account, error) {
	args := m.Called(ctx, id)
	acc, _ := args.Get(0).(*models.Account)
	return acc, args.Error(1)
}

type fixture struct {
	repo     *RepoMock
	resolver *ResolverMock
	maker    *jwt.MakerImpl
	hasher   *password.Hasher
	svc      *auth.AuthService
	now      time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		repo:     new(RepoMock),
		resolver: new(ResolverMock),
		hasher:   password.NewHasher(bcrypt.MinCost),
		now:      time.Now().UTC().Truncate(time.Second),
	}
	clock := func() time.Time { return f.now }
	f.maker = jwt.NewJWTMaker("secret", "", 15*time.Minute, 7*24*time.Hour).WithClock(clock)
	f.svc = auth.NewAuthService(f.repo, f.resolver, f.maker, f.hasher, nil).WithClock(clock)
	return f
}

func (f *fixture) account(t *testing.T, id, email, pass string, status models.Status) *models.Account {
	t.Helper()
	hash, err := f.hasher.Hash(pass)
	require.NoError(t, err)
	return &models.Account{ID: id, Email: &email, PasswordHash: hash, Status: status, Plan: models.PlanFree, CreatedAt: f.now}
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name       string
		identifier string
		password   string
		setupMocks func(f *fixture)
		wantErr    error
		check      func(t *testing.T, f *fixture, s *auth.Session)
	}{
		{
			name:       "email registration",
			identifier: " alice@example.com ",
			password:   "secret1",
			setupMocks: func(f *fixture) {
				f.resolver.On("ByIdentifier", mock.Anything, "alice@example.com").Return(nil, storage.ErrNotFound).Once()
				f.repo.On("CreateAccount", mock.Anything,
					mock.MatchedBy(func(acc models.Account) bool {
						return acc.Email != nil && *acc.Email == "alice@example.com" && acc.Phone == nil &&
							acc.Status == models.StatusActive && acc.Plan == models.PlanFree &&
							acc.PasswordHash != "" && acc.PasswordHash != "secret1"
					}),
					mock.MatchedBy(func(sub models.Subscription) bool {
						return sub.Plan == models.PlanFree && sub.Status == "active"
					}),
					mock.MatchedBy(func(rt models.RefreshToken) bool {
						return rt.TokenHash != "" && rt.ExpiresAt.After(time.Now())
					}),
				).Return(nil).Once()
			},
			check: func(t *testing.T, f *fixture, s *auth.Session) {
				assert.Equal(t, models.StatusActive, s.Account.Status)
				sub, err := f.maker.ParseAccessToken(s.AccessToken)
				require.NoError(t, err)
				assert.Equal(t, s.Account.ID, sub)

				sub, err = f.maker.ParseRefreshToken(s.RefreshToken)
				require.NoError(t, err)
				assert.Equal(t, s.Account.ID, sub)

				_, err = f.maker.ParseRefreshToken(s.AccessToken)
				assert.Error(t, err)
			},
		},
		{
			name:       "phone registration",
			identifier: "13800138000",
			password:   "secret1",
			setupMocks: func(f *fixture) {
				f.resolver.On("ByIdentifier", mock.Anything, "13800138000").Return(nil, storage.ErrNotFound).Once()
				f.repo.On("CreateAccount", mock.Anything,
					mock.MatchedBy(func(acc models.Account) bool {
						return acc.Phone != nil && *acc.Phone == "13800138000" && acc.Email == nil
					}), mock.Anything, mock.Anything).Return(nil).Once()
			},
			check: func(t *testing.T, f *fixture, s *auth.Session) {
				assert.Equal(t, "13800138000", s.Account.Username())
			},
		},
		{
			name:       "empty identifier",
			identifier: "   ",
			password:   "secret1",
			setupMocks: func(f *fixture) {},
			wantErr:    errs.ErrInvalidParams,
		},
		{
			name:       "neither email nor phone",
			identifier: "12345",
			password:   "secret1",
			setupMocks: func(f *fixture) {},
			wantErr:    errs.ErrInvalidParams,
		},
		{
			name:       "short password",
			identifier: "alice@example.com",
			password:   "12345",
			setupMocks: func(f *fixture) {},
			wantErr:    errs.ErrInvalidParams,
		},
		{
			name:       "account exists",
			identifier: "alice@example.com",
			password:   "secret1",
			setupMocks: func(f *fixture) {
				f.resolver.On("ByIdentifier", mock.Anything, "alice@example.com").Return(&models.Account{ID: "u1"}, nil).Once()
			},
			wantErr: errs.ErrAccountExists,
		},
		{
			name:       "lost insert race",
			identifier: "alice@example.com",
			password:   "secret1",
			setupMocks: func(f *fixture) {
				f.resolver.On("ByIdentifier", mock.Anything, "alice@example.com").Return(nil, storage.ErrNotFound).Once()
				f.repo.On("CreateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return(storage.ErrAlreadyExists).Once()
			},
			wantErr: errs.ErrAccountExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMocks(f)

			s, err := f.svc.Register(context.Background(), tt.identifier, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, s)
			} else {
				require.NoError(t, err)
				tt.check(t, f, s)
			}
			f.repo.AssertExpectations(t)
			f.resolver.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	t.Run("success issues distinct tokens and records login", func(t *testing.T) {
		f := newFixture(t)
		acc := f.account(t, "u1", "alice@example.com", "secret1", models.StatusActive)
		f.resolver.On("ByIdentifier", mock.Anything, "alice@example.com").Return(acc, nil).Twice()
		f.repo.On("RecordLogin", mock.Anything, "u1", f.now, mock.MatchedBy(func(rt models.RefreshToken) bool {
			return rt.UserID == "u1"
		})).Return(nil).Twice()

		first, err := f.svc.Login(context.Background(), "alice@example.com", "secret1")
		require.NoError(t, err)
		second, err := f.svc.Login(context.Background(), "alice@example.com", "secret1")
		require.NoError(t, err)

		assert.NotEqual(t, first.AccessToken, second.AccessToken)
		assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
		require.NotNil(t, second.Account.LastLoginAt)
		assert.Equal(t, f.now, *second.Account.LastLoginAt)
		f.repo.AssertExpectations(t)
	})

	t.Run("unknown identifier and wrong password are indistinguishable", func(t *testing.T) {
		f := newFixture(t)
		acc := f.account(t, "u1", "alice@example.com", "secret1", models.StatusActive)
		f.resolver.On("ByIdentifier", mock.Anything, "alice@example.com").Return(acc, nil).Once()
		f.resolver.On("ByIdentifier", mock.Anything, "ghost@example.com").Return(nil, storage.ErrNotFound).Once()

		_, errWrong := f.svc.Login(context.Background(), "alice@example.com", "wrong-pass")
		_, errUnknown := f.svc.Login(context.Background(), "ghost@example.com", "secret1")

		require.ErrorIs(t, errWrong, errs.ErrWrongPassword)
		require.ErrorIs(t, errUnknown, errs.ErrWrongPassword)
		assert.Equal(t, errWrong.Error(), errUnknown.Error())
		f.repo.AssertNotCalled(t, "RecordLogin", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("disabled account", func(t *testing.T) {
		f := newFixture(t)
		acc := f.account(t, "u1", "alice@example.com", "secret1", models.StatusDisabled)
		f.resolver.On("ByIdentifier", mock.Anything, "alice@example.com").Return(acc, nil).Twice()

		_, err := f.svc.Login(context.Background(), "alice@example.com", "secret1")
		assert.ErrorIs(t, err, errs.ErrAccountDisabled)

		_, err = f.svc.Login(context.Background(), "alice@example.com", "bad-pass")
		assert.ErrorIs(t, err, errs.ErrWrongPassword, "status is not revealed without the password")
	})

	t.Run("empty identifier", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.Login(context.Background(), "", "secret1")
		assert.ErrorIs(t, err, errs.ErrInvalidParams)
	})

	t.Run("store failure is not a credential error", func(t *testing.T) {
		f := newFixture(t)
		boom := errors.New("connection reset")
		f.resolver.On("ByIdentifier", mock.Anything, "alice@example.com").Return(nil, boom).Once()

		_, err := f.svc.Login(context.Background(), "alice@example.com", "secret1")
		assert.ErrorIs(t, err, boom)
		_, isDomain := errs.From(err)
		assert.False(t, isDomain)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	f := newFixture(t)
	acc := f.account(t, "u1", "alice@example.com", "secret1", models.StatusActive)
	refresh, expiresAt, err := f.maker.GenerateRefreshToken("u1")
	require.NoError(t, err)
	access, err := f.maker.GenerateAccessToken("u1")
	require.NoError(t, err)
	live := &models.RefreshToken{UserID: "u1", TokenHash: jwt.Fingerprint(refresh), ExpiresAt: expiresAt}

	t.Run("valid refresh token", func(t *testing.T) {
		f.resolver.On("ByID", mock.Anything, "u1").Return(acc, nil).Once()
		f.repo.On("GetRefreshTokenByHash", mock.Anything, jwt.Fingerprint(refresh)).Return(live, nil).Once()

		got, err := f.svc.Refresh(context.Background(), refresh)
		require.NoError(t, err)
		sub, err := f.maker.ParseAccessToken(got)
		require.NoError(t, err)
		assert.Equal(t, "u1", sub)
	})

	t.Run("access token is rejected", func(t *testing.T) {
		_, err := f.svc.Refresh(context.Background(), access)
		assert.ErrorIs(t, err, errs.ErrTokenInvalid)
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := f.svc.Refresh(context.Background(), "")
		assert.ErrorIs(t, err, errs.ErrTokenInvalid)
	})

	t.Run("unknown record", func(t *testing.T) {
		f.resolver.On("ByID", mock.Anything, "u1").Return(acc, nil).Once()
		f.repo.On("GetRefreshTokenByHash", mock.Anything, jwt.Fingerprint(refresh)).Return(nil, storage.ErrNotFound).Once()

		_, err := f.svc.Refresh(context.Background(), refresh)
		assert.ErrorIs(t, err, errs.ErrTokenInvalid)
	})

	t.Run("revoked record", func(t *testing.T) {
		revokedAt := f.now
		revoked := *live
		revoked.RevokedAt = &revokedAt
		f.resolver.On("ByID", mock.Anything, "u1").Return(acc, nil).Once()
		f.repo.On("GetRefreshTokenByHash", mock.Anything, jwt.Fingerprint(refresh)).Return(&revoked, nil).Once()

		_, err := f.svc.Refresh(context.Background(), refresh)
		assert.ErrorIs(t, err, errs.ErrTokenInvalid)
	})

	t.Run("account gone", func(t *testing.T) {
		f.resolver.On("ByID", mock.Anything, "u1").Return(nil, storage.ErrNotFound).Once()

		_, err := f.svc.Refresh(context.Background(), refresh)
		assert.ErrorIs(t, err, errs.ErrTokenInvalid)
	})

	t.Run("account disabled", func(t *testing.T) {
		disabled := *acc
		disabled.Status = models.StatusDisabled
		f.resolver.On("ByID", mock.Anything, "u1").Return(&disabled, nil).Once()

		_, err := f.svc.Refresh(context.Background(), refresh)
		assert.ErrorIs(t, err, errs.ErrTokenInvalid)
	})
}

func TestAuthService_AuthenticateUser(t *testing.T) {
	f := newFixture(t)
	acc := f.account(t, "u1", "alice@example.com", "secret1", models.StatusActive)
	access, err := f.maker.GenerateAccessToken("u1")
	require.NoError(t, err)

	f.resolver.On("ByID", mock.Anything, "u1").Return(acc, nil).Once()
	got, err := f.svc.AuthenticateUser(context.Background(), access)
	require.NoError(t, err)
	assert.Equal(t, "u1", got.ID)

	f.now = f.now.Add(16 * time.Minute)
	_, err = f.svc.AuthenticateUser(context.Background(), access)
	assert.ErrorIs(t, err, errs.ErrTokenInvalid, "expired access token")

	_, err = f.svc.AuthenticateUser(context.Background(), "garbage")
	assert.ErrorIs(t, err, errs.ErrTokenInvalid)
}

func TestAuthService_Logout(t *testing.T) {
	f := newFixture(t)
	refresh, _, err := f.maker.GenerateRefreshToken("u1")
	require.NoError(t, err)

	f.repo.On("RevokeRefreshToken", mock.Anything, jwt.Fingerprint(refresh), f.now).Return(nil).Once()
	require.NoError(t, f.svc.Logout(context.Background(), refresh))

	assert.ErrorIs(t, f.svc.Logout(context.Background(), "x.y.z"), errs.ErrTokenInvalid)

	other, _, err := f.maker.GenerateRefreshToken("u2")
	require.NoError(t, err)
	f.repo.On("RevokeRefreshToken", mock.Anything, jwt.Fingerprint(other), f.now).Return(storage.ErrNotFound).Once()
	assert.ErrorIs(t, f.svc.Logout(context.Background(), other), errs.ErrTokenInvalid)
}

func TestAuthService_Subscription(t *testing.T) {
	f := newFixture(t)
	acc := &models.Account{ID: "u1"}

	f.repo.On("GetSubscription", mock.Anything, "u1").Return(nil, storage.ErrNotFound).Once()
	sub, err := f.svc.Subscription(context.Background(), acc)
	require.NoError(t, err)
	assert.Equal(t, models.PlanFree, sub.Plan)
	assert.Equal(t, "active", sub.Status)
	assert.Empty(t, sub.Features)

	premium := &models.Subscription{UserID: "u1", Plan: models.PlanPremium, Status: "active", Features: []string{"sync"}}
	f.repo.On("GetSubscription", mock.Anything, "u1").Return(premium, nil).Once()
	sub, err = f.svc.Subscription(context.Background(), acc)
	require.NoError(t, err)
	assert.Equal(t, premium, sub)
}
