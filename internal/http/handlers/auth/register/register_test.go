package register

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/auth-service/internal/models"
	"github.com/magabrotheeeer/auth-service/internal/services/auth"
	"github.com/magabrotheeeer/auth-service/internal/services/errs"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Register(ctx context.Context, identifier, password string) (*auth.Session, error) {
	args := m.Called(ctx, identifier, password)
	s, _ := args.Get(0).(*auth.Session)
	return s, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestRegisterHandler_ServeHTTP(t *testing.T) {
	email := "alice@example.com"
	session := &auth.Session{
		Account: &models.Account{
			ID:           "u1",
			Email:        &email,
			PasswordHash: "hash",
			Status:       models.StatusActive,
			CreatedAt:    time.Unix(1_700_000_000, 0).UTC(),
		},
		AccessToken:  "access",
		RefreshToken: "refresh",
	}

	tests := []struct {
		name           string
		requestBody    any
		mockSession    *auth.Session
		mockErr        error
		wantStatusCode int
		wantCode       string
	}{
		{
			name:           "valid registration",
			requestBody:    Request{Identifier: email, Password: "secret1"},
			mockSession:    session,
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			wantStatusCode: http.StatusBadRequest,
			wantCode:       "invalid_params",
		},
		{
			name:           "short password",
			requestBody:    Request{Identifier: email, Password: "123"},
			wantStatusCode: http.StatusBadRequest,
			wantCode:       "invalid_params",
		},
		{
			name:           "account exists",
			requestBody:    Request{Identifier: email, Password: "secret1"},
			mockErr:        errs.ErrAccountExists,
			wantStatusCode: http.StatusBadRequest,
			wantCode:       "account_exists",
		},
		{
			name:           "bad identifier",
			requestBody:    Request{Identifier: "nobody", Password: "secret1"},
			mockErr:        errs.InvalidParams("enter a valid email or phone number"),
			wantStatusCode: http.StatusBadRequest,
			wantCode:       "invalid_params",
		},
		{
			name:           "storage failure",
			requestBody:    Request{Identifier: email, Password: "secret1"},
			mockErr:        errors.New("db down"),
			wantStatusCode: http.StatusInternalServerError,
			wantCode:       "internal_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			if tt.mockSession != nil || tt.mockErr != nil {
				req := tt.requestBody.(Request)
				svc.On("Register", mock.Anything, req.Identifier, req.Password).Return(tt.mockSession, tt.mockErr).Once()
			}

			var bodyBytes []byte
			switch v := tt.requestBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				var err error
				bodyBytes, err = json.Marshal(v)
				require.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(bodyBytes))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))
			rec := httptest.NewRecorder()

			New(newNoopLogger(), svc).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			if tt.wantCode != "" {
				detail, ok := body["detail"].(map[string]any)
				require.True(t, ok)
				assert.Equal(t, tt.wantCode, detail["code"])
			} else {
				assert.Equal(t, "access", body["access_token"])
				assert.Equal(t, "refresh", body["refresh_token"])
				assert.Equal(t, "bearer", body["token_type"])
				user := body["user"].(map[string]any)
				assert.Equal(t, "active", user["status"])
				assert.NotContains(t, user, "password_hash")
			}
			svc.AssertExpectations(t)
		})
	}
}
