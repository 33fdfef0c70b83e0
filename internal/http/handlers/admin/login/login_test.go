package login

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/auth-service/internal/services/errs"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Login(username, password string) (string, error) {
	args := m.Called(username, password)
	return args.String(0), args.Error(1)
}

func TestAdminLoginHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		mockTok  string
		mockErr  error
		call     bool
		wantCode int
		wantBody string
	}{
		{name: "ok", body: `{"username":"root","password":"pw"}`, mockTok: "admintoken", call: true, wantCode: http.StatusOK, wantBody: `{"token":"admintoken"}`},
		{name: "wrong", body: `{"username":"root","password":"pw"}`, mockErr: errs.ErrWrongPassword, call: true, wantCode: http.StatusUnauthorized, wantBody: `"wrong_password"`},
		{name: "missing field", body: `{"username":"root"}`, wantCode: http.StatusBadRequest, wantBody: `"invalid_params"`},
		{name: "broken json", body: `nope`, wantCode: http.StatusBadRequest, wantBody: `"invalid_params"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			if tt.call {
				svc.On("Login", "root", "pw").Return(tt.mockTok, tt.mockErr).Once()
			}

			rec := httptest.NewRecorder()
			New(slog.New(slog.NewTextHandler(io.Discard, nil)), svc).
				ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
			svc.AssertExpectations(t)
		})
	}
}
