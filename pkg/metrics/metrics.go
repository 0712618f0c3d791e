package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// SyncBatchesMerged — принятые merge-батчи по источникам: page|delta|stream|cache.
	SyncBatchesMerged = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_batches_merged_total",
			Help: "Number of merged batches by source",
		},
		[]string{"source"},
	)
	// SyncRecordsRejected — отброшенные записи: invalid|decode.
	SyncRecordsRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_records_rejected_total",
			Help: "Number of records rejected before merge",
		},
		[]string{"reason"},
	)
	CollectionSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "collection_size",
			Help: "Number of orders currently in the reconciled collection",
		},
	)
	LastSeenID = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "last_seen_order_id",
			Help: "Highest order id ever incorporated",
		},
	)
)

var (
	// FetchesTotal — REST-выборки: kind=page|delta, outcome=ok|network|decode.
	FetchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fetches_total",
			Help: "REST fetch attempts by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)
	// CacheOps — операции локального кэша: save|save_error|load_hit|load_miss|clear.
	CacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Local cache store operations",
		},
		[]string{"op"},
	)
)

var (
	RealtimeReconnects = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "realtime_reconnects_total",
			Help: "Number of websocket reconnect attempts",
		},
	)
	// RealtimeMessages — доставленные push-сообщения по топикам: orders|errors|dropped.
	RealtimeMessages = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "realtime_messages_total",
			Help: "Messages delivered by the realtime channel",
		},
		[]string{"topic"},
	)
	ConnectivityOnline = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "connectivity_online",
			Help: "1 while the backend is reachable, 0 otherwise",
		},
	)
)

var registerOnce sync.Once

// MustRegister — регистрация коллекторов; повторный вызов безопасен.
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			SyncBatchesMerged, SyncRecordsRejected, CollectionSize, LastSeenID,
			FetchesTotal, CacheOps,
			RealtimeReconnects, RealtimeMessages, ConnectivityOnline,
		)
	})
}
