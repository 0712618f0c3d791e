package engine

import (
	"context"
	"time"

	"github.com/rgt24/orderboard/internal/domain"
	"github.com/rgt24/orderboard/pkg/metrics"
)

// coldStart — выбор источника начального состояния:
// свежий кэш → посев + catch-up (без первой страницы);
// устаревший кэш offline → посев как есть (деградация);
// устаревший кэш online → заново со страницы 0, lastSeenID сохраняется;
// кэша нет → страница 0, если есть сеть, иначе пустая витрина.
func (e *Engine) coldStart(ctx context.Context) {
	seeded := false

	rec, ok, err := e.store.Load(ctx)
	if err != nil {
		e.log.Warnf(ctx, "cache load failed: %v", err)
	}
	if ok {
		age := time.Since(rec.LastUpdatedAt)
		switch {
		case age <= e.cfg.Freshness:
			e.seed(ctx, rec)
			seeded = true
		case !e.conn.Online():
			e.log.Warnf(ctx, "stale cache (age=%s) served while offline", age.Truncate(time.Second))
			e.seed(ctx, rec)
			seeded = true
		default:
			// коллекция строится заново, но lastSeenID монотонен
			e.coll.ObserveID(rec.LastSeenID)
		}
	}

	if !e.conn.Online() {
		if !seeded {
			e.log.Warnf(ctx, "offline cold start without cache: empty view")
		}
		return
	}

	if seeded {
		// закрыть разрыв, накопившийся пока снимок лежал в кэше
		e.catchUp(ctx)
		return
	}
	e.fetchFirstPage(ctx)
}

// seed — посев коллекции из кэш-снимка. Записи уже проходили валидацию
// на пути в кэш, поэтому сливаются напрямую и заново не персистятся.
func (e *Engine) seed(ctx context.Context, rec domain.CacheRecord) {
	stats := e.coll.Merge(rec.Orders...)
	e.coll.ObserveID(rec.LastSeenID)
	e.lastSyncAt = rec.LastUpdatedAt

	metrics.SyncBatchesMerged.WithLabelValues(sourceCache).Inc()
	metrics.CollectionSize.Set(float64(e.coll.Len()))
	metrics.LastSeenID.Set(float64(e.coll.LastSeenID()))

	e.log.Infof(ctx, "seeded from cache orders=%d last_seen=%d inserted=%d",
		len(rec.Orders), e.coll.LastSeenID(), stats.Inserted)
}

// fetchFirstPage — страница 0 холодного старта/refresh.
func (e *Engine) fetchFirstPage(ctx context.Context) {
	orders, err := e.pager.FetchPage(ctx, 0, e.cfg.PageSize)
	if err != nil {
		e.fetchFailed(ctx, "first page", err)
		return
	}
	e.page = 1
	e.noMorePages = len(orders) < e.cfg.PageSize
	e.mergeBatch(ctx, sourcePage, orders)
}

// loadMore — следующая страница по явному запросу. После конца данных —
// no-op до refresh; offline — ErrOffline без сетевых попыток.
func (e *Engine) loadMore(ctx context.Context) error {
	if e.noMorePages {
		return nil
	}
	if !e.conn.Online() {
		return ErrOffline
	}

	orders, err := e.pager.FetchPage(ctx, e.page, e.cfg.PageSize)
	if err != nil {
		e.fetchFailed(ctx, "page", err)
		return err
	}
	e.page++
	if len(orders) < e.cfg.PageSize {
		e.noMorePages = true
	}
	e.mergeBatch(ctx, sourcePage, orders)
	return nil
}

// catchUp — ровно один FetchSince(lastSeenID); неудача оставляет
// состояние нетронутым, ретрай — на следующей возможности по расписанию.
func (e *Engine) catchUp(ctx context.Context) {
	orders, err := e.delta.FetchSince(ctx, e.coll.LastSeenID())
	if err != nil {
		e.fetchFailed(ctx, "catch-up", err)
		return
	}
	e.mergeBatch(ctx, sourceDelta, orders)
}

// refresh — сброс персистентного снимка и пагинации, затем холодный
// старт без кэша.
func (e *Engine) refresh(ctx context.Context) error {
	if err := e.store.Clear(ctx); err != nil {
		e.log.Warnf(ctx, "cache clear failed: %v", err)
	}
	e.coll = NewCollection(e.cfg.Capacity)
	e.page = 0
	e.noMorePages = false
	e.lastError = ""
	e.lastSyncAt = time.Time{}

	metrics.CollectionSize.Set(0)
	metrics.LastSeenID.Set(0)
	e.log.Infof(ctx, "view reset, starting cold")

	if e.conn.Online() {
		e.fetchFirstPage(ctx)
	}
	return nil
}

// mergeBatch — валидация, слияние, сквозная запись.
// Отклонённые записи не сливаются и не двигают lastSeenID.
func (e *Engine) mergeBatch(ctx context.Context, source string, batch []domain.Order) {
	valid := make([]domain.Order, 0, len(batch))
	for i := range batch {
		if err := e.validator.Validate(ctx, &batch[i]); err != nil {
			metrics.SyncRecordsRejected.WithLabelValues("invalid").Inc()
			e.log.Warnf(ctx, "record rejected source=%s id=%d err=%v", source, batch[i].ID, err)
			continue
		}
		valid = append(valid, batch[i])
	}

	if len(valid) > 0 {
		stats := e.coll.Merge(valid...)

		metrics.SyncBatchesMerged.WithLabelValues(source).Inc()
		metrics.CollectionSize.Set(float64(e.coll.Len()))
		metrics.LastSeenID.Set(float64(e.coll.LastSeenID()))

		e.persist(ctx)
		e.log.Infof(ctx, "merged source=%s batch=%d inserted=%d updated=%d evicted=%d last_seen=%d",
			source, len(valid), stats.Inserted, stats.Updated, stats.Evicted, e.coll.LastSeenID())
	}
	e.lastSyncAt = time.Now()
}

// persist — write-through запись снимка. Неудача не фатальна:
// коллекция в памяти остаётся авторитетной для текущего процесса.
func (e *Engine) persist(ctx context.Context) {
	if err := e.store.Save(ctx, e.coll.Record(time.Now())); err != nil {
		e.log.Warnf(ctx, "cache save failed: %v", err)
	}
}

func (e *Engine) fetchFailed(ctx context.Context, what string, err error) {
	e.lastError = err.Error()
	e.log.Warnf(ctx, "%s fetch failed: %v", what, err)
}
