// Package memory provides an in-memory cache repository implementation
package memory

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/chamchi6619/pantry-app-v1-sub004/internal/ports/outbound"
)

// ErrKeyNotFound is returned when a key is absent or expired
var ErrKeyNotFound = errors.New("key not found")

// CacheItem represents a cached item
type CacheItem struct {
	Value     []byte
	ExpiresAt time.Time
}

// CacheRepository implements an in-memory cache. It backs local
// development and tests where no Redis is available.
type CacheRepository struct {
	data      map[string]CacheItem
	mutex     sync.RWMutex
	stop      chan struct{}
	closeOnce sync.Once
}

// NewCacheRepository creates a new in-memory cache repository
func NewCacheRepository() outbound.CacheRepository {
	repo := &CacheRepository{
		data: make(map[string]CacheItem),
		stop: make(chan struct{}),
	}
	go repo.cleanup()
	return repo
}

// Get retrieves a value from cache
func (r *CacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	r.mutex.RLock()
	item, exists := r.data[key]
	r.mutex.RUnlock()

	if !exists || time.Now().After(item.ExpiresAt) {
		return nil, ErrKeyNotFound
	}
	return item.Value, nil
}

// Set stores a value in cache with TTL
func (r *CacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	expiresAt := time.Now().Add(ttl)
	if ttl == 0 {
		expiresAt = time.Now().Add(24 * time.Hour)
	}

	r.data[key] = CacheItem{
		Value:     value,
		ExpiresAt: expiresAt,
	}
	return nil
}

// Delete removes a key from cache
func (r *CacheRepository) Delete(ctx context.Context, key string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	delete(r.data, key)
	return nil
}

// Exists checks if a key exists in cache
func (r *CacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	item, exists := r.data[key]
	if !exists || time.Now().After(item.ExpiresAt) {
		return false, nil
	}
	return true, nil
}

// DeletePrefix removes every key under the given prefix
func (r *CacheRepository) DeletePrefix(ctx context.Context, prefix string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for key := range r.data {
		if strings.HasPrefix(key, prefix) {
			delete(r.data, key)
		}
	}
	return nil
}

// Close stops the cleanup goroutine. Safe to call more than once.
func (r *CacheRepository) Close() error {
	r.closeOnce.Do(func() { close(r.stop) })
	return nil
}

// cleanup removes expired items until Close is called
func (r *CacheRepository) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
			r.mutex.Lock()
			now := time.Now()
			for key, item := range r.data {
				if now.After(item.ExpiresAt) {
					delete(r.data, key)
				}
			}
			r.mutex.Unlock()
		}
	}
}
