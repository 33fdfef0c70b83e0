package list

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/auth-service/internal/http/handlers/view"
	"github.com/magabrotheeeer/auth-service/internal/models"
	"github.com/magabrotheeeer/auth-service/internal/services/admin"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) List(ctx context.Context, query string, page, size int) ([]models.AccountSummary, admin.Page, error) {
	args := m.Called(ctx, query, page, size)
	items, _ := args.Get(0).([]models.AccountSummary)
	return items, args.Get(1).(admin.Page), args.Error(2)
}

func TestListHandler_ServeHTTP(t *testing.T) {
	email := "alice@example.com"
	end := int64(1_700_604_800)
	items := []models.AccountSummary{
		{
			Account:  models.Account{ID: "u1", Email: &email, Status: models.StatusDisabled, Plan: models.PlanFree, CreatedAt: time.Now()},
			TrialEnd: &end,
		},
	}

	tests := []struct {
		name       string
		url        string
		query      string
		page, size int
	}{
		{name: "explicit paging", url: "/admin/users?query=ALICE&page=2&size=50", query: "ALICE", page: 2, size: 50},
		{name: "garbage paging passed as zero", url: "/admin/users?page=x&size=y", page: 0, size: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			svc.On("List", mock.Anything, tt.query, tt.page, tt.size).
				Return(items, admin.NormalizePage(tt.page, tt.size), nil).Once()

			rec := httptest.NewRecorder()
			New(slog.New(slog.NewTextHandler(io.Discard, nil)), svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.url, nil))

			require.Equal(t, http.StatusOK, rec.Code)
			var got []view.AdminUserItem
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			require.Len(t, got, 1)
			assert.Equal(t, email, got[0].Username)
			assert.True(t, got[0].Disabled)
			assert.Equal(t, &end, got[0].TrialEnd)
			svc.AssertExpectations(t)
		})
	}
}

func TestListHandler_EmptyIsArray(t *testing.T) {
	svc := new(ServiceMock)
	svc.On("List", mock.Anything, "", 0, 0).Return([]models.AccountSummary(nil), admin.NormalizePage(0, 0), nil).Once()

	rec := httptest.NewRecorder()
	New(slog.New(slog.NewTextHandler(io.Discard, nil)), svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/users", nil))

	assert.JSONEq(t, `[]`, rec.Body.String())
}
