package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/rgt24/orderboard/internal/engine"
	"github.com/rgt24/orderboard/internal/ports"
	"github.com/rgt24/orderboard/pkg/httpx"
)

// Handler — HTTP-слой витрины поверх DashboardService.
type Handler struct {
	service ports.DashboardService
	log     ports.Logger
}

func NewHandler(service ports.DashboardService, log ports.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// NewRouter — маршрутизатор витрины. otelServiceName != "" включает otelgin.
func NewRouter(h *Handler, otelServiceName string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if otelServiceName != "" {
		r.Use(otelgin.Middleware(otelServiceName))
	}
	r.Use(httpx.RequestIDMiddleware())
	r.Use(httpx.RequestLogger(h.log))

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/orders", h.listOrders)
		api.GET("/status", h.status)
		api.POST("/orders/more", h.loadMore)
		api.POST("/refresh", h.refresh)
	}

	return r
}

// listOrders — текущий снимок коллекции; ?limit= режет выдачу сверху.
func (h *Handler) listOrders(c *gin.Context) {
	ctx := c.Request.Context()

	orders, err := h.service.Orders(ctx)
	if err != nil {
		h.log.Errorf(ctx, "orders snapshot failed err=%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	limit := httpx.ParseLimit(c, 100, 1000)
	if len(orders) > limit {
		orders = orders[:limit]
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) status(c *gin.Context) {
	ctx := c.Request.Context()

	st, err := h.service.Status(ctx)
	if err != nil {
		h.log.Errorf(ctx, "status failed err=%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, st)
}

// loadMore — запрос следующей страницы; offline — честный 503,
// неудачная выборка — 502 (бэкенд недоступен или сломан).
func (h *Handler) loadMore(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.service.LoadMore(ctx); err != nil {
		if errors.Is(err, engine.ErrOffline) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "offline"})
			return
		}
		h.log.Warnf(ctx, "load more failed err=%v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) refresh(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.service.Refresh(ctx); err != nil {
		h.log.Errorf(ctx, "refresh failed err=%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.Status(http.StatusNoContent)
}
