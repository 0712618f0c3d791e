package fetch_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rgt24/orderboard/internal/fetch"
)

func TestFetchPage_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/orders" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("page"); got != "2" {
			t.Errorf("want page=2, got %s", got)
		}
		if got := r.URL.Query().Get("size"); got != "10" {
			t.Errorf("want size=10, got %s", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":21,"foodName":"pizza","quantity":1,"status":"done"},{"id":20,"foodName":"pasta","quantity":2,"status":"pending"}]`))
	}))
	defer srv.Close()

	client := fetch.NewClient(srv.URL, time.Second)

	orders, err := client.FetchPage(context.Background(), 2, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orders) != 2 || orders[0].ID != 21 || orders[1].FoodName != "pasta" {
		t.Fatalf("unexpected orders: %+v", orders)
	}
}

func TestFetchSince_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/orders/since" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("lastId"); got != "42" {
			t.Errorf("want lastId=42, got %s", got)
		}
		_, _ = w.Write([]byte(`[{"id":43,"foodName":"ramen","quantity":1,"status":"accepted"}]`))
	}))
	defer srv.Close()

	client := fetch.NewClient(srv.URL, time.Second)

	orders, err := client.FetchSince(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orders) != 1 || orders[0].ID != 43 {
		t.Fatalf("unexpected orders: %+v", orders)
	}
}

func TestFetchPage_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := fetch.NewClient(srv.URL, time.Second)

	_, err := client.FetchPage(context.Background(), 0, 10)
	if !errors.Is(err, fetch.ErrNetwork) {
		t.Fatalf("want ErrNetwork on 5xx, got %v", err)
	}
}

func TestFetchPage_Unreachable(t *testing.T) {
	// закрытый сервер: соединение отклоняется
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := fetch.NewClient(srv.URL, time.Second)

	_, err := client.FetchPage(context.Background(), 0, 10)
	if !errors.Is(err, fetch.ErrNetwork) {
		t.Fatalf("want ErrNetwork on refused connection, got %v", err)
	}
}

func TestFetchPage_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"an array"`))
	}))
	defer srv.Close()

	client := fetch.NewClient(srv.URL, time.Second)

	_, err := client.FetchPage(context.Background(), 0, 10)
	if !errors.Is(err, fetch.ErrDecode) {
		t.Fatalf("want ErrDecode on malformed body, got %v", err)
	}
}

func TestPing(t *testing.T) {
	alive := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ping" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer alive.Close()

	client := fetch.NewClient(alive.URL, time.Second)
	if !client.Ping(context.Background()) {
		t.Fatalf("want ping=true for live backend")
	}

	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	dead.Close()

	client = fetch.NewClient(dead.URL, time.Second)
	if client.Ping(context.Background()) {
		t.Fatalf("want ping=false for dead backend")
	}
}
