package engine

import (
	"sort"
	"time"

	"github.com/rgt24/orderboard/internal/domain"
)

// Collection — авторитетное множество заказов: map по id плюс кэп.
// Мутации выполняет только цикл движка, поэтому без блокировок.
type Collection struct {
	byID       map[int64]domain.Order
	capacity   int
	lastSeenID int64
}

// MergeStats — итог одного merge-батча.
type MergeStats struct {
	Inserted int
	Updated  int
	Evicted  int
}

// NewCollection — конструктор. capacity <= 0 — дефолт 100.
func NewCollection(capacity int) *Collection {
	if capacity <= 0 {
		capacity = 100
	}
	return &Collection{
		byID:     make(map[int64]domain.Order),
		capacity: capacity,
	}
}

// Merge — слияние батча по правилу arrival-order last-writer-wins:
// запись с существующим id безусловно замещает предыдущую. После слияния
// кэп: остаются capacity старших id, младшие вытесняются. lastSeenID
// продвигается по принятым записям и вытеснением не откатывается.
func (c *Collection) Merge(batch ...domain.Order) MergeStats {
	var stats MergeStats

	for _, order := range batch {
		if _, exists := c.byID[order.ID]; exists {
			stats.Updated++
		} else {
			stats.Inserted++
		}
		c.byID[order.ID] = order
		if order.ID > c.lastSeenID {
			c.lastSeenID = order.ID
		}
	}

	stats.Evicted = c.evictOverCap()
	return stats
}

// evictOverCap — удаляет младшие id сверх кэпа.
func (c *Collection) evictOverCap() int {
	over := len(c.byID) - c.capacity
	if over <= 0 {
		return 0
	}

	ids := make([]int64, 0, len(c.byID))
	for id := range c.byID {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids[:over] {
		delete(c.byID, id)
	}
	return over
}

// ObserveID — продвигает lastSeenID без слияния записей
// (например, из устаревшего кэш-снимка).
func (c *Collection) ObserveID(id int64) {
	if id > c.lastSeenID {
		c.lastSeenID = id
	}
}

// Snapshot — копия коллекции, отсортированная по id по убыванию.
func (c *Collection) Snapshot() []domain.Order {
	orders := make([]domain.Order, 0, len(c.byID))
	for _, order := range c.byID {
		orders = append(orders, order)
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID > orders[j].ID })
	return orders
}

// Record — персистентный снимок для write-through записи.
func (c *Collection) Record(now time.Time) domain.CacheRecord {
	return domain.CacheRecord{
		Orders:        c.Snapshot(),
		LastUpdatedAt: now,
		LastSeenID:    c.lastSeenID,
	}
}

func (c *Collection) Len() int          { return len(c.byID) }
func (c *Collection) LastSeenID() int64 { return c.lastSeenID }
