package realtime

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rgt24/orderboard/internal/domain"
	"github.com/rgt24/orderboard/internal/ports"
	"github.com/rgt24/orderboard/pkg/metrics"
)

// Проверка, что Channel удовлетворяет порту RealtimeFeed.
var _ ports.RealtimeFeed = (*Channel)(nil)

// Config — параметры push-канала.
type Config struct {
	URL              string
	ReconnectDelay   time.Duration // фиксированная пауза между попытками
	HandshakeTimeout time.Duration
}

// Channel — websocket-клиент топиков orders/errors.
// Машина состояний: disconnected → connecting → connected → disconnected;
// из disconnected новая попытка после фиксированной паузы, пока монитор
// связности сообщает online. Живо не более одного подключения: dial
// сначала закрывает предыдущее.
type Channel struct {
	cfg    Config
	dialer *websocket.Dialer
	conn   ports.ConnectivityMonitor
	log    ports.Logger

	orders chan domain.Order
	errs   chan string

	mu    sync.Mutex
	ws    *websocket.Conn
	state domain.ChannelState

	closeOnce sync.Once
}

// NewChannel — конструктор. Нулевые таймауты получают дефолты (5s/10s).
func NewChannel(cfg Config, conn ports.ConnectivityMonitor, log ports.Logger) *Channel {
	if cfg.ReconnectDelay <= 0 {
		cfg.ReconnectDelay = 5 * time.Second
	}
	if cfg.HandshakeTimeout <= 0 {
		cfg.HandshakeTimeout = 10 * time.Second
	}
	return &Channel{
		cfg:    cfg,
		dialer: &websocket.Dialer{HandshakeTimeout: cfg.HandshakeTimeout},
		conn:   conn,
		log:    log,
		orders: make(chan domain.Order, 64),
		errs:   make(chan string, 16),
		state:  domain.ChannelDisconnected,
	}
}

func (c *Channel) Orders() <-chan domain.Order { return c.orders }
func (c *Channel) Errors() <-chan string       { return c.errs }

// State — текущее состояние машины подключения.
func (c *Channel) State() domain.ChannelState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Run — основной цикл: подключение, подписка, чтение до ошибки, пауза,
// повтор. Завершается только по отмене контекста.
func (c *Channel) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		// offline: подключение не пытаемся, ждём до следующего шанса
		if !c.conn.Online() {
			if !c.sleep(ctx, c.cfg.ReconnectDelay) {
				return ctx.Err()
			}
			continue
		}

		ws, err := c.dial(ctx)
		if err != nil {
			c.setState(domain.ChannelDisconnected)
			c.log.Warnf(ctx, "realtime dial failed url=%s err=%v (retry in %s)", c.cfg.URL, err, c.cfg.ReconnectDelay)
			if !c.sleep(ctx, c.cfg.ReconnectDelay) {
				return ctx.Err()
			}
			continue
		}

		c.setState(domain.ChannelConnected)
		c.log.Infof(ctx, "realtime connected url=%s topics=%v", c.cfg.URL, []string{TopicOrders, TopicErrors})

		readErr := c.readLoop(ctx, ws)
		c.teardown()
		c.setState(domain.ChannelDisconnected)

		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.log.Warnf(ctx, "realtime disconnected err=%v (retry in %s)", readErr, c.cfg.ReconnectDelay)
		if !c.sleep(ctx, c.cfg.ReconnectDelay) {
			return ctx.Err()
		}
	}
}

// Close — принудительный разрыв текущего подключения (размораживает чтение).
func (c *Channel) Close() error {
	c.closeOnce.Do(func() { c.teardown() })
	return nil
}

// dial — сносит предыдущее подключение, устанавливает новое
// и отправляет кадр подписки.
func (c *Channel) dial(ctx context.Context) (*websocket.Conn, error) {
	c.teardown()
	c.setState(domain.ChannelConnecting)
	metrics.RealtimeReconnects.Inc()

	ws, resp, err := c.dialer.DialContext(ctx, c.cfg.URL, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return nil, err
	}

	if err := ws.WriteJSON(SubscribeFrame{Subscribe: []string{TopicOrders, TopicErrors}}); err != nil {
		_ = ws.Close()
		return nil, err
	}

	c.mu.Lock()
	c.ws = ws
	c.mu.Unlock()
	return ws, nil
}

// readLoop — читает кадры до первой ошибки транспорта.
// Сломанный кадр — не повод рвать подключение: он отбрасывается с метрикой.
func (c *Channel) readLoop(ctx context.Context, ws *websocket.Conn) error {
	for {
		_, raw, err := ws.ReadMessage()
		if err != nil {
			return err
		}

		var env Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			metrics.RealtimeMessages.WithLabelValues("dropped").Inc()
			c.log.Warnf(ctx, "realtime malformed frame dropped: %v", err)
			continue
		}

		switch env.Topic {
		case TopicOrders:
			if env.Order == nil {
				metrics.RealtimeMessages.WithLabelValues("dropped").Inc()
				c.log.Warnf(ctx, "realtime order frame without order body dropped")
				continue
			}
			metrics.RealtimeMessages.WithLabelValues(TopicOrders).Inc()
			select {
			case c.orders <- *env.Order:
			case <-ctx.Done():
				return ctx.Err()
			}
		case TopicErrors:
			metrics.RealtimeMessages.WithLabelValues(TopicErrors).Inc()
			select {
			case c.errs <- env.Message:
			case <-ctx.Done():
				return ctx.Err()
			}
		default:
			metrics.RealtimeMessages.WithLabelValues("dropped").Inc()
		}
	}
}

func (c *Channel) teardown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ws != nil {
		_ = c.ws.Close()
		c.ws = nil
	}
}

func (c *Channel) setState(s domain.ChannelState) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// sleep — пауза с уважением к отмене контекста.
func (c *Channel) sleep(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}
