package ports

import (
	"context"

	"github.com/rgt24/orderboard/internal/domain"
)

// OrderValidator — доменная валидация записи заказа перед merge.
type OrderValidator interface {
	Validate(ctx context.Context, order *domain.Order) error
}
