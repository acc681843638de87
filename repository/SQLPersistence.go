package repository

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"
)

const createKVTable = `CREATE TABLE IF NOT EXISTS kv_store (name TEXT PRIMARY KEY, payload TEXT NOT NULL)`

// SQLPersistence keeps records in a single kv_store table. The statements
// are valid for both sqlite3 and postgres.
type SQLPersistence struct {
	db  *sql.DB
	log *zap.Logger
}

func NewSQLPersistence(ctx context.Context, conn *sql.DB, log *zap.Logger) (*SQLPersistence, error) {
	if conn == nil {
		return nil, errors.New("conn must be non-nil")
	}
	if err := conn.PingContext(ctx); err != nil {
		return nil, err
	}
	if _, err := conn.ExecContext(ctx, createKVTable); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &SQLPersistence{db: conn, log: log}, nil
}

func (s *SQLPersistence) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, "SELECT payload FROM kv_store WHERE name = $1", key).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		s.log.Error("SQLPersistence.Get", zap.String("key", key), zap.Error(err))
		return nil, false, err
	}
	return []byte(payload), true, nil
}

func (s *SQLPersistence) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO kv_store (name, payload) VALUES ($1, $2) ON CONFLICT (name) DO UPDATE SET payload = excluded.payload",
		key, string(value))
	if err != nil {
		s.log.Error("SQLPersistence.Set", zap.String("key", key), zap.Error(err))
	}
	return err
}

func (s *SQLPersistence) Remove(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM kv_store WHERE name = $1", key)
	if err != nil {
		s.log.Error("SQLPersistence.Remove", zap.String("key", key), zap.Error(err))
	}
	return err
}
