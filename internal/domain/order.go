package domain

import "time"

// Order — единица заказа, приходящая с бэкенда.
// ID назначается сервером, строго возрастает и глобально уникален;
// сравнение и дедупликация заказов ведутся только по ID.
type Order struct {
	ID       int64  `json:"id"`
	FoodName string `json:"foodName"`
	Quantity int    `json:"quantity"`
	Status   string `json:"status"`
}

// Статусы заказа. Набор открыт для продюсера: движок синхронизации
// требует лишь непустого статуса (см. pkg/validate).
const (
	StatusPending   = "pending"
	StatusAccepted  = "accepted"
	StatusCooking   = "cooking"
	StatusDone      = "done"
	StatusCancelled = "cancelled"
)

// KnownStatus — true для статусов из базового набора.
func KnownStatus(s string) bool {
	switch s {
	case StatusPending, StatusAccepted, StatusCooking, StatusDone, StatusCancelled:
		return true
	}
	return false
}

// CacheRecord — персистентный снимок коллекции заказов.
// LastSeenID — максимальный ID, когда-либо принятый в коллекцию;
// монотонно неубывающий, вытеснение из кэпа его не сбрасывает.
type CacheRecord struct {
	Orders        []Order   `json:"orders"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastSeenID    int64     `json:"lastSeenId"`
}

// ChannelState — состояние realtime-канала.
type ChannelState string

const (
	ChannelDisconnected ChannelState = "disconnected"
	ChannelConnecting   ChannelState = "connecting"
	ChannelConnected    ChannelState = "connected"
)

// Режимы работы витрины: connected — всё живо, degraded — сеть есть,
// но push-канал не подключён, offline — сети нет, отдаём кэш.
const (
	ModeConnected = "connected"
	ModeDegraded  = "degraded"
	ModeOffline   = "offline"
)

// SyncStatus — текущий статус движка синхронизации для витрины.
type SyncStatus struct {
	Mode        string       `json:"mode"`
	Online      bool         `json:"online"`
	Channel     ChannelState `json:"channel"`
	LastError   string       `json:"lastError,omitempty"`
	LastSyncAt  time.Time    `json:"lastSyncAt"`
	NoMorePages bool         `json:"noMorePages"`
	Size        int          `json:"size"`
	LastSeenID  int64        `json:"lastSeenId"`
}
