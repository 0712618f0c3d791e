package rest_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/rgt24/orderboard/internal/domain"
	"github.com/rgt24/orderboard/internal/engine"
	"github.com/rgt24/orderboard/internal/ports/mocks"
	rest "github.com/rgt24/orderboard/internal/transport/http"
)

type noopLogger struct{}

func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

func newTestRouter(t *testing.T) (*mocks.MockDashboardService, http.Handler) {
	t.Helper()
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockDashboardService(ctrl)

	h := rest.NewHandler(svc, noopLogger{})
	return svc, rest.NewRouter(h, "")
}

func TestListOrders_OK(t *testing.T) {
	svc, r := newTestRouter(t)

	want := []domain.Order{
		{ID: 2, FoodName: "pizza", Quantity: 1, Status: domain.StatusDone},
		{ID: 1, FoodName: "pasta", Quantity: 2, Status: domain.StatusPending},
	}
	svc.EXPECT().Orders(gomock.Any()).Return(want, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/orders", http.NoBody)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d, body=%s", w.Code, w.Body.String())
	}
	var got []domain.Order
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(got) != 2 || got[0].ID != 2 {
		t.Fatalf("unexpected orders: %+v", got)
	}
}

func TestListOrders_LimitTrims(t *testing.T) {
	svc, r := newTestRouter(t)

	orders := []domain.Order{
		{ID: 3, FoodName: "a", Quantity: 1, Status: "done"},
		{ID: 2, FoodName: "b", Quantity: 1, Status: "done"},
		{ID: 1, FoodName: "c", Quantity: 1, Status: "done"},
	}
	svc.EXPECT().Orders(gomock.Any()).Return(orders, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/orders?limit=2", http.NoBody)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var got []domain.Order
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	// лимит режет сверху: остаются старшие id
	if len(got) != 2 || got[0].ID != 3 || got[1].ID != 2 {
		t.Fatalf("unexpected trimmed orders: %+v", got)
	}
}

func TestListOrders_InternalError(t *testing.T) {
	svc, r := newTestRouter(t)

	svc.EXPECT().Orders(gomock.Any()).Return(nil, errors.New("engine stopped"))

	req := httptest.NewRequest(http.MethodGet, "/api/orders", http.NoBody)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("want 500, got %d", w.Code)
	}
}

func TestStatus_OK(t *testing.T) {
	svc, r := newTestRouter(t)

	svc.EXPECT().Status(gomock.Any()).Return(domain.SyncStatus{
		Mode:       domain.ModeDegraded,
		Online:     true,
		Channel:    domain.ChannelConnecting,
		LastSyncAt: time.Now(),
		Size:       7,
		LastSeenID: 42,
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/status", http.NoBody)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}
	var got domain.SyncStatus
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got.Mode != domain.ModeDegraded || got.LastSeenID != 42 {
		t.Fatalf("unexpected status: %+v", got)
	}
}

func TestLoadMore_NoContent(t *testing.T) {
	svc, r := newTestRouter(t)

	svc.EXPECT().LoadMore(gomock.Any()).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/orders/more", http.NoBody)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("want 204, got %d", w.Code)
	}
}

func TestLoadMore_Offline(t *testing.T) {
	svc, r := newTestRouter(t)

	svc.EXPECT().LoadMore(gomock.Any()).Return(engine.ErrOffline)

	req := httptest.NewRequest(http.MethodPost, "/api/orders/more", http.NoBody)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("want 503 when offline, got %d", w.Code)
	}
}

func TestLoadMore_BackendFailure(t *testing.T) {
	svc, r := newTestRouter(t)

	svc.EXPECT().LoadMore(gomock.Any()).Return(errors.New("network failure: status 500"))

	req := httptest.NewRequest(http.MethodPost, "/api/orders/more", http.NoBody)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadGateway {
		t.Fatalf("want 502 on fetch failure, got %d", w.Code)
	}
}

func TestRefresh_NoContent(t *testing.T) {
	svc, r := newTestRouter(t)

	svc.EXPECT().Refresh(gomock.Any()).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/refresh", http.NoBody)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("want 204, got %d", w.Code)
	}
}

func TestPing(t *testing.T) {
	_, r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/ping", http.NoBody)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK || w.Body.String() != "pong" {
		t.Fatalf("want pong, got %d %q", w.Code, w.Body.String())
	}
}

func TestRequestIDHeaderEchoed(t *testing.T) {
	svc, r := newTestRouter(t)

	svc.EXPECT().Orders(gomock.Any()).Return([]domain.Order{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/orders", http.NoBody)
	req.Header.Set("X-Request-ID", "req-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-ID"); got != "req-123" {
		t.Fatalf("want echoed request id, got %q", got)
	}
}
