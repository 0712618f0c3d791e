package ports

import (
	"context"

	"github.com/rgt24/orderboard/internal/domain"
)

// DashboardService — read-модель витрины плюс явные действия пользователя.
// Все операции сериализуются на единственном потоке управления движка.
type DashboardService interface {
	// Orders — текущий снимок коллекции, отсортированный по id по убыванию.
	Orders(ctx context.Context) ([]domain.Order, error)

	// Status — состояние синхронизации (режим, канал, последняя ошибка).
	Status(ctx context.Context) (domain.SyncStatus, error)

	// LoadMore — запросить следующую страницу истории (no-op после конца данных).
	LoadMore(ctx context.Context) error

	// Refresh — полный сброс: очистка кэша, пустая коллекция, холодный старт.
	Refresh(ctx context.Context) error
}
