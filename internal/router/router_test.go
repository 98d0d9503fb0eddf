package router

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tendermarket/tender-lifecycle/internal/handlers"

	"github.com/peterldowns/testy/check"
)

func newTestRoutes() http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return InitRoutes(new(handlers.TenderHandler), new(handlers.BidHandler), new(handlers.VendorHandler), new(handlers.SweepHandler), logger)
}

func TestPingRoute(t *testing.T) {
	routes := newTestRoutes()

	recorder := httptest.NewRecorder()
	routes.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/ping", nil))

	check.Equal(t, http.StatusOK, recorder.Code)
	body, err := io.ReadAll(recorder.Result().Body)
	check.NoError(t, err)
	check.Equal(t, "ok", string(body))
}

func TestPingRoute_RejectsPost(t *testing.T) {
	routes := newTestRoutes()

	recorder := httptest.NewRecorder()
	routes.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/api/ping", nil))

	check.Equal(t, http.StatusMethodNotAllowed, recorder.Code)
}
