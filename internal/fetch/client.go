package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rgt24/orderboard/internal/domain"
	"github.com/rgt24/orderboard/internal/ports"
	"github.com/rgt24/orderboard/pkg/metrics"
)

// Проверка соответствия портам источников.
var (
	_ ports.PagedFetcher = (*Client)(nil)
	_ ports.DeltaFetcher = (*Client)(nil)
)

// Классы ошибок выборки. Сетевые — восстановимые (ретрай на следующей
// возможности), ошибки декодирования означают сброс батча целиком.
var (
	ErrNetwork = errors.New("network failure")
	ErrDecode  = errors.New("malformed payload")
)

// Client — REST-клиент бэкенда заказов.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient — конструктор. timeout <= 0 — дефолт 10s.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
	}
}

// FetchPage — страница исторических заказов: GET /orders?page=&size=.
func (c *Client) FetchPage(ctx context.Context, page, size int) ([]domain.Order, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))

	orders, err := c.getOrders(ctx, "/orders?"+q.Encode())
	c.count("page", err)
	return orders, err
}

// FetchSince — все заказы с id > lastID: GET /orders/since?lastId=.
// lastID = 0 — «всё» (используется при пустом кэше).
func (c *Client) FetchSince(ctx context.Context, lastID int64) ([]domain.Order, error) {
	q := url.Values{}
	q.Set("lastId", strconv.FormatInt(lastID, 10))

	orders, err := c.getOrders(ctx, "/orders/since?"+q.Encode())
	c.count("delta", err)
	return orders, err
}

// Ping — проба доступности бэкенда; используется монитором связности.
func (c *Client) Ping(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/ping", http.NoBody)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func (c *Client) getOrders(ctx context.Context, path string) ([]domain.Order, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrNetwork, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrNetwork, resp.StatusCode)
	}

	var orders []domain.Order
	if err := json.NewDecoder(resp.Body).Decode(&orders); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return orders, nil
}

func (c *Client) count(kind string, err error) {
	switch {
	case err == nil:
		metrics.FetchesTotal.WithLabelValues(kind, "ok").Inc()
	case errors.Is(err, ErrDecode):
		metrics.FetchesTotal.WithLabelValues(kind, "decode").Inc()
	default:
		metrics.FetchesTotal.WithLabelValues(kind, "network").Inc()
	}
}
