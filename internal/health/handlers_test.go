package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type stubChecker struct {
	redisErr   error
	catalogErr error
}

func (s stubChecker) PingRedis(context.Context, time.Duration) error   { return s.redisErr }
func (s stubChecker) PingCatalog(context.Context, time.Duration) error { return s.catalogErr }

func TestLive(t *testing.T) {
	rec := httptest.NewRecorder()
	Handler{}.Live(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", rec.Body.String())
}

func TestReadyAllHealthy(t *testing.T) {
	rec := httptest.NewRecorder()
	Handler{Checker: stubChecker{}}.Ready(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"redis": "ok", "catalog": "ok"}`, rec.Body.String())
}

func TestReadyDependencyDown(t *testing.T) {
	rec := httptest.NewRecorder()
	checker := stubChecker{catalogErr: errors.New("connection refused")}
	Handler{Checker: checker}.Ready(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Contains(t, rec.Body.String(), "connection refused")
}
