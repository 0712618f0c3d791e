package connectivity

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rgt24/orderboard/internal/ports"
	"github.com/rgt24/orderboard/pkg/metrics"
)

// Проверка, что Monitor удовлетворяет порту ConnectivityMonitor.
var _ ports.ConnectivityMonitor = (*Monitor)(nil)

// Prober — проба доступности бэкенда (обычно fetch.Client.Ping).
type Prober func(ctx context.Context) bool

// Monitor — периодический опрос пробы с публикацией переходов
// online/offline. Чистый источник сигнала: без ретраев и побочной логики.
type Monitor struct {
	probe    Prober
	interval time.Duration
	log      ports.Logger

	online      atomic.Bool
	transitions chan bool
}

// NewMonitor — конструктор. interval <= 0 — дефолт 15s.
func NewMonitor(probe Prober, interval time.Duration, log ports.Logger) *Monitor {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &Monitor{
		probe:    probe,
		interval: interval,
		log:      log,
		// один слот: переходы коалесцируются, важен только последний
		transitions: make(chan bool, 1),
	}
}

// Online — текущее состояние связности.
func (m *Monitor) Online() bool { return m.online.Load() }

// Transitions — канал переходов; буфер в один элемент, устаревшее
// значение вытесняется свежим.
func (m *Monitor) Transitions() <-chan bool { return m.transitions }

// Probe — одна проба с обновлением состояния. Публикует переход
// только при смене значения. Вызывается до старта движка, чтобы
// холодный старт видел актуальную связность.
func (m *Monitor) Probe(ctx context.Context) bool {
	now := m.probe(ctx)
	was := m.online.Swap(now)

	if now {
		metrics.ConnectivityOnline.Set(1)
	} else {
		metrics.ConnectivityOnline.Set(0)
	}

	if was != now {
		m.log.Infof(ctx, "connectivity transition online=%t", now)
		m.publish(now)
	}
	return now
}

// Run — цикл опроса до отмены контекста.
func (m *Monitor) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			m.Probe(ctx)
		}
	}
}

// publish — неблокирующая публикация с вытеснением устаревшего значения.
func (m *Monitor) publish(online bool) {
	for {
		select {
		case m.transitions <- online:
			return
		default:
			select {
			case <-m.transitions:
			default:
			}
		}
	}
}
