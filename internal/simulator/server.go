package simulator

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rgt24/orderboard/internal/domain"
	"github.com/rgt24/orderboard/internal/ports"
	"github.com/rgt24/orderboard/internal/realtime"
	"github.com/rgt24/orderboard/pkg/httpx"
)

// Server — in-memory бэкенд заказов: REST-листинг (paged + delta),
// приём заказов и push-рассылка по websocket-топикам orders/errors.
// Поведение повторяет боевой сервис, к которому подключается движок.
type Server struct {
	router *gin.Engine
	store  *Store
	hub    *Hub
	log    ports.Logger
}

func NewServer(log ports.Logger) *Server {
	s := &Server{
		router: gin.New(),
		store:  NewStore(),
		hub:    NewHub(log),
		log:    log,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(gin.Recovery())
	s.router.Use(httpx.RequestLogger(s.log))

	s.router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	s.router.GET("/ws", s.handleWebSocket)

	s.router.GET("/orders", s.listOrders)
	s.router.GET("/orders/since", s.listSince)
	s.router.POST("/order", s.createOrder)
	s.router.PUT("/order/:id/status", s.updateStatus)
}

// Router — gin-роутер (отдельно для httptest).
func (s *Server) Router() *gin.Engine { return s.router }

// Store — доступ к хранилищу (посев данных в тестах и при старте).
func (s *Server) Store() *Store { return s.store }

// Broadcast — публикация конверта в push-канал вне REST-обработчиков.
func (s *Server) Broadcast(env realtime.Envelope) { s.hub.Broadcast(env) }

func (s *Server) listOrders(c *gin.Context) {
	page, size := httpx.ParsePageSize(c, 10, 100)
	c.JSON(http.StatusOK, s.store.Page(page, size))
}

func (s *Server) listSince(c *gin.Context) {
	lastID, err := strconv.ParseInt(c.DefaultQuery("lastId", "0"), 10, 64)
	if err != nil || lastID < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lastId"})
		return
	}
	c.JSON(http.StatusOK, s.store.Since(lastID))
}

// createOrder — REST-приём заказа: сервер назначает id и статус,
// затем рассылает запись в топик orders.
func (s *Server) createOrder(c *gin.Context) {
	var req struct {
		FoodName string `json:"foodName"`
		Quantity int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if req.FoodName == "" || req.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "foodName and positive quantity required"})
		return
	}

	order := s.store.Create(req.FoodName, req.Quantity)
	s.log.Infof(c.Request.Context(), "order accepted id=%d food=%s qty=%d", order.ID, order.FoodName, order.Quantity)
	s.hub.Broadcast(realtime.Envelope{Topic: realtime.TopicOrders, Order: &order})

	c.JSON(http.StatusCreated, order)
}

func (s *Server) updateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	status := c.Query("status")
	if !domain.KnownStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
		return
	}

	order, err := s.store.UpdateStatus(id, status)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	s.log.Infof(c.Request.Context(), "order status changed id=%d status=%s", order.ID, order.Status)
	s.hub.Broadcast(realtime.Envelope{Topic: realtime.TopicOrders, Order: &order})

	c.JSON(http.StatusOK, order)
}

func (s *Server) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.Warnf(c.Request.Context(), "websocket upgrade failed: %v", err)
		return
	}

	client := newWSClient(conn, s.submitFromSocket)
	s.hub.register(client)

	go client.writePump()
	go client.readPump(s.hub)
}

// submitFromSocket — публикация заказа через websocket. Невалидная
// запись не сохраняется; причина уходит в топик errors.
func (s *Server) submitFromSocket(order domain.Order) {
	if order.FoodName == "" || order.Quantity <= 0 {
		s.hub.Broadcast(realtime.Envelope{
			Topic:   realtime.TopicErrors,
			Message: fmt.Sprintf("order rejected: foodName and positive quantity required (got food=%q qty=%d)", order.FoodName, order.Quantity),
		})
		return
	}

	created := s.store.Create(order.FoodName, order.Quantity)
	s.hub.Broadcast(realtime.Envelope{Topic: realtime.TopicOrders, Order: &created})
}
