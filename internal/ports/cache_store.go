package ports

import (
	"context"

	"github.com/rgt24/orderboard/internal/domain"
)

// CacheStore — долговременное хранилище снимка коллекции заказов.
// Требования к реализации: Load на повреждённых данных возвращает
// ok=false, а не ошибку; Save атомарен относительно параллельного Load.
type CacheStore interface {
	// Load — вернуть снимок; (record, true, nil) при наличии,
	// (zero, false, nil) при отсутствии или нечитаемом содержимом.
	Load(ctx context.Context) (domain.CacheRecord, bool, error)

	// Save — записать снимок целиком (write-through после каждого merge).
	Save(ctx context.Context, record domain.CacheRecord) error

	// Clear — удалить персистентный снимок (ручной refresh).
	Clear(ctx context.Context) error
}
