package simulator

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rgt24/orderboard/internal/domain"
	"github.com/rgt24/orderboard/internal/ports"
	"github.com/rgt24/orderboard/internal/realtime"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// симулятор для локальных запусков: origin не проверяем
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub — реестр websocket-подписчиков с рассылкой по топикам.
type Hub struct {
	mu      sync.Mutex
	clients map[*wsClient]struct{}
	log     ports.Logger
}

func NewHub(log ports.Logger) *Hub {
	return &Hub{clients: make(map[*wsClient]struct{}), log: log}
}

// Broadcast — доставка конверта всем подписчикам его топика.
// Переполненный буфер клиента означает потерю кадра, не блокировку хаба.
func (h *Hub) Broadcast(env realtime.Envelope) {
	raw, err := json.Marshal(env)
	if err != nil {
		h.log.Warnf(context.Background(), "hub marshal failed: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		if !client.subscribed(env.Topic) {
			continue
		}
		select {
		case client.send <- raw:
		default:
			h.log.Warnf(context.Background(), "hub client buffer full, frame dropped")
		}
	}
}

func (h *Hub) register(c *wsClient) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) unregister(c *wsClient) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
}

// inboundFrame — кадры от клиента: подписка или публикация заказа.
type inboundFrame struct {
	Subscribe []string      `json:"subscribe,omitempty"`
	Action    string        `json:"action,omitempty"`
	Order     *domain.Order `json:"order,omitempty"`
}

// wsClient — одно websocket-подключение.
type wsClient struct {
	conn   *websocket.Conn
	send   chan []byte
	submit func(order domain.Order)

	mu     sync.Mutex
	topics map[string]struct{}
}

func newWSClient(conn *websocket.Conn, submit func(domain.Order)) *wsClient {
	return &wsClient{
		conn:   conn,
		send:   make(chan []byte, 256),
		submit: submit,
		topics: make(map[string]struct{}),
	}
}

func (c *wsClient) subscribed(topic string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.topics[topic]
	return ok
}

func (c *wsClient) setTopics(topics []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range topics {
		c.topics[t] = struct{}{}
	}
}

// readPump — кадры от клиента до разрыва подключения.
func (c *wsClient) readPump(hub *Hub) {
	defer func() {
		hub.unregister(c)
		close(c.send)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(64 * 1024)

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var frame inboundFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			continue
		}

		switch {
		case len(frame.Subscribe) > 0:
			c.setTopics(frame.Subscribe)
		case frame.Action == "order" && frame.Order != nil:
			c.submit(*frame.Order)
		}
	}
}

// writePump — исходящие кадры плюс пинги, чтобы не висли мёртвые клиенты.
func (c *wsClient) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case raw, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, raw); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
