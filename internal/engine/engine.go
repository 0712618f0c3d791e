package engine

import (
	"context"
	"errors"
	"time"

	"github.com/rgt24/orderboard/internal/domain"
	"github.com/rgt24/orderboard/internal/ports"
)

// Проверка, что Engine удовлетворяет порту DashboardService.
var _ ports.DashboardService = (*Engine)(nil)

var (
	// ErrOffline — сетевые операции приостановлены, витрина отдаёт кэш.
	ErrOffline = errors.New("offline: network operations suspended")
	// ErrStopped — цикл движка завершён.
	ErrStopped = errors.New("sync engine stopped")
)

// Источники merge-батчей (метки метрик и логов).
const (
	sourcePage   = "page"
	sourceDelta  = "delta"
	sourceStream = "stream"
	sourceCache  = "cache"
)

// Config — параметры движка синхронизации.
type Config struct {
	PageSize        int           // размер страницы REST-листинга
	Capacity        int           // кэп коллекции (N_max)
	Freshness       time.Duration // окно свежести кэш-снимка
	CatchUpInterval time.Duration // период фонового catch-up
}

func (c Config) withDefaults() Config {
	if c.PageSize <= 0 {
		c.PageSize = 10
	}
	if c.Capacity <= 0 {
		c.Capacity = 100
	}
	if c.Freshness <= 0 {
		c.Freshness = 5 * time.Minute
	}
	if c.CatchUpInterval <= 0 {
		c.CatchUpInterval = time.Minute
	}
	return c
}

// Engine — ядро: сведение страниц, дельт и push-событий в одну
// дедуплицированную капованную коллекцию со сквозной записью в кэш.
// Вся мутация состояния происходит в единственной горутине Run;
// запросы витрины сериализуются через канал команд.
type Engine struct {
	cfg       Config
	pager     ports.PagedFetcher
	delta     ports.DeltaFetcher
	store     ports.CacheStore
	feed      ports.RealtimeFeed
	conn      ports.ConnectivityMonitor
	validator ports.OrderValidator
	log       ports.Logger

	coll        *Collection
	page        int
	noMorePages bool
	lastError   string
	lastSyncAt  time.Time

	cmds    chan command
	stopped chan struct{}
}

type cmdKind int

const (
	cmdOrders cmdKind = iota
	cmdStatus
	cmdLoadMore
	cmdRefresh
)

type command struct {
	kind  cmdKind
	reply chan cmdReply
}

type cmdReply struct {
	orders []domain.Order
	status domain.SyncStatus
	err    error
}

// New — DI-конструктор движка.
func New(
	cfg Config,
	pager ports.PagedFetcher,
	delta ports.DeltaFetcher,
	store ports.CacheStore,
	feed ports.RealtimeFeed,
	conn ports.ConnectivityMonitor,
	validator ports.OrderValidator,
	log ports.Logger,
) *Engine {
	cfg = cfg.withDefaults()
	return &Engine{
		cfg:       cfg,
		pager:     pager,
		delta:     delta,
		store:     store,
		feed:      feed,
		conn:      conn,
		validator: validator,
		log:       log,
		coll:      NewCollection(cfg.Capacity),
		cmds:      make(chan command),
		stopped:   make(chan struct{}),
	}
}

// Run — единственный поток управления. Холодный старт, затем
// мультиплексирование: push-события, серверные ошибки, переходы
// связности, периодический catch-up и команды витрины.
func (e *Engine) Run(ctx context.Context) error {
	defer close(e.stopped)

	e.coldStart(ctx)

	ticker := time.NewTicker(e.cfg.CatchUpInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case order := <-e.feed.Orders():
			e.mergeBatch(ctx, sourceStream, []domain.Order{order})

		case msg := <-e.feed.Errors():
			// серверная ошибка показывается, но в коллекцию не попадает
			e.lastError = msg
			e.log.Warnf(ctx, "server error event: %s", msg)

		case online := <-e.conn.Transitions():
			if online {
				e.log.Infof(ctx, "back online, catching up from id=%d", e.coll.LastSeenID())
				e.catchUp(ctx)
			} else {
				e.log.Warnf(ctx, "went offline, serving cached view size=%d", e.coll.Len())
			}

		case <-ticker.C:
			if e.conn.Online() {
				e.catchUp(ctx)
			}

		case cmd := <-e.cmds:
			e.handle(ctx, cmd)
		}
	}
}

// Orders — снимок коллекции (id по убыванию).
func (e *Engine) Orders(ctx context.Context) ([]domain.Order, error) {
	rep, err := e.send(ctx, cmdOrders)
	return rep.orders, err
}

// Status — состояние синхронизации для индикатора витрины.
func (e *Engine) Status(ctx context.Context) (domain.SyncStatus, error) {
	rep, err := e.send(ctx, cmdStatus)
	return rep.status, err
}

// LoadMore — следующая страница истории по явному запросу.
func (e *Engine) LoadMore(ctx context.Context) error {
	_, err := e.send(ctx, cmdLoadMore)
	return err
}

// Refresh — полный сброс: чистый кэш, пустая коллекция, холодный старт.
func (e *Engine) Refresh(ctx context.Context) error {
	_, err := e.send(ctx, cmdRefresh)
	return err
}

// send — передаёт команду циклу и ждёт ответ.
func (e *Engine) send(ctx context.Context, kind cmdKind) (cmdReply, error) {
	cmd := command{kind: kind, reply: make(chan cmdReply, 1)}

	select {
	case e.cmds <- cmd:
	case <-ctx.Done():
		return cmdReply{}, ctx.Err()
	case <-e.stopped:
		return cmdReply{}, ErrStopped
	}

	select {
	case rep := <-cmd.reply:
		return rep, rep.err
	case <-ctx.Done():
		return cmdReply{}, ctx.Err()
	case <-e.stopped:
		return cmdReply{}, ErrStopped
	}
}

func (e *Engine) handle(ctx context.Context, cmd command) {
	var rep cmdReply
	switch cmd.kind {
	case cmdOrders:
		rep.orders = e.coll.Snapshot()
	case cmdStatus:
		rep.status = e.status()
	case cmdLoadMore:
		rep.err = e.loadMore(ctx)
	case cmdRefresh:
		rep.err = e.refresh(ctx)
	}
	cmd.reply <- rep
}

func (e *Engine) status() domain.SyncStatus {
	st := domain.SyncStatus{
		Online:      e.conn.Online(),
		Channel:     e.feed.State(),
		LastError:   e.lastError,
		LastSyncAt:  e.lastSyncAt,
		NoMorePages: e.noMorePages,
		Size:        e.coll.Len(),
		LastSeenID:  e.coll.LastSeenID(),
	}
	switch {
	case !st.Online:
		st.Mode = domain.ModeOffline
	case st.Channel != domain.ChannelConnected:
		st.Mode = domain.ModeDegraded
	default:
		st.Mode = domain.ModeConnected
	}
	return st
}
