package realtime

import "github.com/rgt24/orderboard/internal/domain"

// Топики push-канала. Заказы попадают в merge движка,
// ошибки только показываются пользователю.
const (
	TopicOrders = "orders"
	TopicErrors = "errors"
)

// Envelope — кадр push-канала: одно сообщение одного топика.
type Envelope struct {
	Topic   string        `json:"topic"`
	Order   *domain.Order `json:"order,omitempty"`
	Message string        `json:"message,omitempty"`
}

// SubscribeFrame — первый кадр клиента после рукопожатия:
// перечень топиков, на которые он подписывается.
type SubscribeFrame struct {
	Subscribe []string `json:"subscribe"`
}
