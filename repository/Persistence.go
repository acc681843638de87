package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"storefront/models"

	"go.uber.org/zap"
)

// Persistence is the local key-value capability the stores persist through.
// Get reports ok=false for an absent key.
type Persistence interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

const (
	IdentityKey = "user"
	CartKey     = "cart"
)

type MemoryPersistence struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryPersistence() *MemoryPersistence {
	return &MemoryPersistence{data: make(map[string][]byte)}
}

func (m *MemoryPersistence) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (m *MemoryPersistence) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	m.data[key] = v
	return nil
}

func (m *MemoryPersistence) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// loadRecord decodes the record stored under key. A payload that does not
// decode, or that check rejects, is removed and reported as absent.
func loadRecord[T any](ctx context.Context, p Persistence, log *zap.Logger, key string, check func(T) error) (rec T, ok bool, err error) {
	raw, exists, e := p.Get(ctx, key)
	if e != nil {
		log.Error("loadRecord: read failed", zap.String("key", key), zap.Error(e))
		err = fmt.Errorf("read %s: %w", key, models.ErrServerError)
		return
	}
	if !exists {
		return
	}
	e = json.Unmarshal(raw, &rec)
	if e == nil && check != nil {
		e = check(rec)
	}
	if e != nil {
		log.Warn("loadRecord: discarding corrupt record", zap.String("key", key), zap.Error(e))
		if re := p.Remove(ctx, key); re != nil {
			log.Warn("loadRecord: remove corrupt record", zap.String("key", key), zap.Error(re))
		}
		var zero T
		return zero, false, nil
	}
	ok = true
	return
}

func saveRecord(ctx context.Context, p Persistence, log *zap.Logger, key string, rec any) error {
	data, err := json.Marshal(rec)
	if err != nil {
		log.Error("saveRecord: marshal failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("encode %s: %w", key, models.ErrServerError)
	}
	if err = p.Set(ctx, key, data); err != nil {
		log.Error("saveRecord: write failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("write %s: %w", key, models.ErrServerError)
	}
	return nil
}

func removeRecord(ctx context.Context, p Persistence, log *zap.Logger, key string) error {
	if err := p.Remove(ctx, key); err != nil {
		log.Error("removeRecord: delete failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("delete %s: %w", key, models.ErrServerError)
	}
	return nil
}
