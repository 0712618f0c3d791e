package simulator

import (
	"errors"
	"sort"
	"sync"

	"github.com/rgt24/orderboard/internal/domain"
)

// ErrNotFound — заказ с таким id не существует.
var ErrNotFound = errors.New("order not found")

// Store — серверное in-memory хранилище заказов симулятора.
// В отличие от клиентского движка сюда ходят параллельные HTTP-запросы,
// поэтому мьютекс обязателен. id назначаются строго по возрастанию с 1.
type Store struct {
	mu     sync.RWMutex
	byID   map[int64]domain.Order
	nextID int64
}

func NewStore() *Store {
	return &Store{byID: make(map[int64]domain.Order), nextID: 1}
}

// Create — регистрирует заказ: назначает id и статус accepted.
func (s *Store) Create(foodName string, quantity int) domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	order := domain.Order{
		ID:       s.nextID,
		FoodName: foodName,
		Quantity: quantity,
		Status:   domain.StatusAccepted,
	}
	s.byID[order.ID] = order
	s.nextID++
	return order
}

// UpdateStatus — смена статуса существующего заказа.
func (s *Store) UpdateStatus(id int64, status string) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.byID[id]
	if !ok {
		return domain.Order{}, ErrNotFound
	}
	order.Status = status
	s.byID[id] = order
	return order, nil
}

// Page — страница истории, id по убыванию; короткая страница
// означает конец данных для клиента.
func (s *Store) Page(page, size int) []domain.Order {
	all := s.sortedDesc()

	from := page * size
	if from >= len(all) {
		return []domain.Order{}
	}
	to := from + size
	if to > len(all) {
		to = len(all)
	}
	return all[from:to]
}

// Since — все заказы с id > lastID (порядок не гарантируется клиенту,
// но отдаём по возрастанию для предсказуемости).
func (s *Store) Since(lastID int64) []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Order, 0)
	for id, order := range s.byID {
		if id > lastID {
			out = append(out, order)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

func (s *Store) sortedDesc() []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]domain.Order, 0, len(s.byID))
	for _, order := range s.byID {
		all = append(all, order)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	return all
}
