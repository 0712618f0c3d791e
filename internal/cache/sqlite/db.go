package sqlite

import (
	"context"
	"database/sql"

	_ "github.com/mattn/go-sqlite3" // драйвер sqlite3
)

// OpenDB — открывает (или создаёт) файл кэша и применяет схему.
// busy_timeout сглаживает параллельный Load во время записи.
func OpenDB(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	// файловый кэш: одного подключения достаточно и безопасно
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS kv (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
