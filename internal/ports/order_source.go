package ports

import (
	"context"

	"github.com/rgt24/orderboard/internal/domain"
)

// PagedFetcher — постраничная выгрузка исторических заказов.
// Страница короче size означает конец данных.
type PagedFetcher interface {
	FetchPage(ctx context.Context, page, size int) ([]domain.Order, error)
}

// DeltaFetcher — догоняющая выборка: все заказы с id > lastID.
// Порядок в ответе произвольный, lastID = 0 означает «всё».
type DeltaFetcher interface {
	FetchSince(ctx context.Context, lastID int64) ([]domain.Order, error)
}
