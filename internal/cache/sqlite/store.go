package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rgt24/orderboard/internal/domain"
	"github.com/rgt24/orderboard/internal/ports"
	"github.com/rgt24/orderboard/pkg/metrics"
)

// Проверка, что Store удовлетворяет порту CacheStore.
var _ ports.CacheStore = (*Store)(nil)

// Ключи хранятся независимо: частично прочитанный снимок деградирует
// мягко (отсутствующий last_seen_id трактуется как 0).
const (
	keyOrders        = "orders"
	keyLastUpdatedAt = "last_updated_at"
	keyLastSeenID    = "last_seen_id"
)

// Store — персистентный снимок коллекции в embedded SQLite (kv-таблица).
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Load — читает снимок. Отсутствие данных и нечитаемое содержимое —
// не ошибка: возвращаем ok=false, вызывающий стартует с пустой коллекции.
func (s *Store) Load(ctx context.Context) (domain.CacheRecord, bool, error) {
	var rec domain.CacheRecord

	rawOrders, ok, err := s.get(ctx, keyOrders)
	if err != nil {
		return domain.CacheRecord{}, false, err
	}
	if !ok {
		metrics.CacheOps.WithLabelValues("load_miss").Inc()
		return domain.CacheRecord{}, false, nil
	}
	if err := json.Unmarshal([]byte(rawOrders), &rec.Orders); err != nil {
		// повреждённый снимок равносилен отсутствующему
		metrics.CacheOps.WithLabelValues("load_miss").Inc()
		return domain.CacheRecord{}, false, nil
	}

	if rawAt, ok, err := s.get(ctx, keyLastUpdatedAt); err != nil {
		return domain.CacheRecord{}, false, err
	} else if ok {
		if at, parseErr := time.Parse(time.RFC3339Nano, rawAt); parseErr == nil {
			rec.LastUpdatedAt = at
		}
	}

	if rawID, ok, err := s.get(ctx, keyLastSeenID); err != nil {
		return domain.CacheRecord{}, false, err
	} else if ok {
		if id, parseErr := strconv.ParseInt(rawID, 10, 64); parseErr == nil {
			rec.LastSeenID = id
		}
	}

	metrics.CacheOps.WithLabelValues("load_hit").Inc()
	return rec, true, nil
}

// Save — пишет все ключи одной транзакцией: параллельный Load никогда
// не видит наполовину записанный снимок.
func (s *Store) Save(ctx context.Context, record domain.CacheRecord) error {
	rawOrders, err := json.Marshal(record.Orders)
	if err != nil {
		metrics.CacheOps.WithLabelValues("save_error").Inc()
		return fmt.Errorf("marshal orders: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		metrics.CacheOps.WithLabelValues("save_error").Inc()
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			_ = rbErr
		}
	}()

	pairs := [][2]string{
		{keyOrders, string(rawOrders)},
		{keyLastUpdatedAt, record.LastUpdatedAt.Format(time.RFC3339Nano)},
		{keyLastSeenID, strconv.FormatInt(record.LastSeenID, 10)},
	}
	for _, p := range pairs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO kv (key, value) VALUES (?, ?)
			ON CONFLICT (key) DO UPDATE SET value = excluded.value
		`, p[0], p[1]); err != nil {
			metrics.CacheOps.WithLabelValues("save_error").Inc()
			return fmt.Errorf("upsert %s: %w", p[0], err)
		}
	}

	if err := tx.Commit(); err != nil {
		metrics.CacheOps.WithLabelValues("save_error").Inc()
		return fmt.Errorf("commit: %w", err)
	}
	metrics.CacheOps.WithLabelValues("save").Inc()
	return nil
}

// Clear — удаляет снимок (ручной refresh).
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `
		DELETE FROM kv WHERE key IN (?, ?, ?)
	`, keyOrders, keyLastUpdatedAt, keyLastSeenID); err != nil {
		return fmt.Errorf("clear: %w", err)
	}
	metrics.CacheOps.WithLabelValues("clear").Inc()
	return nil
}

func (s *Store) get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", false, nil
	case err != nil:
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}
