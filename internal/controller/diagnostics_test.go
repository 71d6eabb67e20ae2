package controller

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"bid-ledger-api/internal/repo"
	"bid-ledger-api/internal/repo/memdb"
	"bid-ledger-api/internal/repo/mocks"
	"bid-ledger-api/internal/service"
	"bid-ledger-api/pkg/clock"

	"github.com/labstack/echo"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestPingStorageDown(t *testing.T) {
	ctrl := gomock.NewController(t)
	diagnostics := mocks.NewMockDiagnostics(ctrl)
	diagnostics.EXPECT().Ping(gomock.Any()).Return(errors.New("connection refused"))

	repos := repo.NewInMemoryRepositories(memdb.NewRegistry(), memdb.NewAccounts())
	repos.Diagnostics = diagnostics

	handler := echo.New()
	SetupRoutesHandlers(handler, service.NewServices(repos), clock.Fixed(0))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ping", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"reason":"Storage is not reachable"}`, rec.Body.String())
}
