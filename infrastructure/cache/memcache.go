package cache

import (
	"context"
	"sync"
	"time"
)

// MemCountCache is an in-process count cache backed by sync.Map.
// A background cleanup goroutine runs when NewMemCountCache is given
// a positive cleanupInterval.
type MemCountCache struct {
	items sync.Map
	stop  chan struct{}
	once  sync.Once
	wg    sync.WaitGroup
}

type item struct {
	count      int64
	expiration int64 // unix nano; 0 means no expiration
}

func NewMemCountCache(cleanupInterval time.Duration) *MemCountCache {
	m := &MemCountCache{
		stop: make(chan struct{}),
	}
	if cleanupInterval > 0 {
		m.wg.Add(1)
		go func() {
			ticker := time.NewTicker(cleanupInterval)
			defer ticker.Stop()
			defer m.wg.Done()
			for {
				select {
				case <-ticker.C:
					m.cleanup()
				case <-m.stop:
					return
				}
			}
		}()
	}
	return m
}

func (m *MemCountCache) GetCount(_ context.Context, key string) (int64, bool, error) {
	v, ok := m.items.Load(key)
	if !ok {
		return 0, false, nil
	}
	it := v.(*item)
	if it.isExpired(time.Now().UnixNano()) {
		m.items.Delete(key)
		return 0, false, nil
	}
	return it.count, true, nil
}

func (m *MemCountCache) SetCount(_ context.Context, key string, count int64, ttl time.Duration) error {
	var exp int64
	if ttl > 0 {
		exp = time.Now().Add(ttl).UnixNano()
	}
	m.items.Store(key, &item{
		count:      count,
		expiration: exp,
	})
	return nil
}

func (m *MemCountCache) Close() error {
	m.once.Do(func() {
		close(m.stop)
	})
	m.wg.Wait()
	return nil
}

func (it *item) isExpired(now int64) bool {
	return it.expiration != 0 && now > it.expiration
}

func (m *MemCountCache) cleanup() {
	now := time.Now().UnixNano()
	m.items.Range(func(k, v any) bool {
		if v.(*item).isExpired(now) {
			m.items.Delete(k)
		}
		return true
	})
}
