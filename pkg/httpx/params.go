package httpx

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// ClampInt — ограничение значения v диапазоном [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ParseLimit — читает limit из query с дефолтом и верхней границей.
// Используется витриной, чтобы отдавать срез капованной коллекции.
func ParseLimit(c *gin.Context, defaultLimit, maxLimit int) int {
	limit := defaultLimit
	if v, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit))); err == nil {
		limit = ClampInt(v, 1, maxLimit)
	}
	return limit
}

// ParsePageSize — читает page/size из query с безопасными дефолтами.
// Используется бэкендом-симулятором для постраничной выдачи.
func ParsePageSize(c *gin.Context, defaultSize, maxSize int) (page, size int) {
	if v, err := strconv.Atoi(c.DefaultQuery("page", "0")); err == nil && v >= 0 {
		page = v
	}
	size = defaultSize
	if v, err := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(defaultSize))); err == nil {
		size = ClampInt(v, 1, maxSize)
	}
	return page, size
}
