package ports

import (
	"github.com/rgt24/orderboard/internal/domain"
)

// RealtimeFeed — push-источник заказов и серверных ошибок.
// Каналы читает только движок синхронизации; порядок доставки
// в пределах одного канала сохраняется.
type RealtimeFeed interface {
	Orders() <-chan domain.Order
	Errors() <-chan string
	State() domain.ChannelState
}
