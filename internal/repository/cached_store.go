package repository

import (
	"context"
	"messages/internal/entity"
	"time"
)

// CountCache stores match counts keyed by filter. A miss returns ok == false.
type CountCache interface {
	GetCount(ctx context.Context, key string) (count int64, ok bool, err error)
	SetCount(ctx context.Context, key string, count int64, ttl time.Duration) error
}

type cachedMessageStore struct {
	MessageStore
	cache CountCache
	ttl   time.Duration
}

// NewCachedMessageStore caches CountMatching results of store for ttl.
// Fetches always go to the underlying store.
func NewCachedMessageStore(store MessageStore, cache CountCache, ttl time.Duration) MessageStore {
	return &cachedMessageStore{
		MessageStore: store,
		cache:        cache,
		ttl:          ttl,
	}
}

func (s *cachedMessageStore) CountMatching(ctx context.Context, filter entity.MessageFilter) (int64, error) {
	key := messageCountKey(filter)
	return cachedCount(ctx, s.cache, key, s.ttl, func() (int64, error) {
		return s.MessageStore.CountMatching(ctx, filter)
	})
}

type cachedChatStore struct {
	ChatStore
	cache CountCache
	ttl   time.Duration
}

// NewCachedChatStore caches CountMatching results of store for ttl.
func NewCachedChatStore(store ChatStore, cache CountCache, ttl time.Duration) ChatStore {
	return &cachedChatStore{
		ChatStore: store,
		cache:     cache,
		ttl:       ttl,
	}
}

func (s *cachedChatStore) CountMatching(ctx context.Context, filter entity.ChatFilter) (int64, error) {
	key := chatCountKey(filter)
	return cachedCount(ctx, s.cache, key, s.ttl, func() (int64, error) {
		return s.ChatStore.CountMatching(ctx, filter)
	})
}

// cachedCount treats cache errors as misses so a broken cache never fails a read.
func cachedCount(ctx context.Context, cache CountCache, key string, ttl time.Duration, load func() (int64, error)) (int64, error) {
	if count, ok, err := cache.GetCount(ctx, key); err == nil && ok {
		return count, nil
	}

	count, err := load()
	if err != nil {
		return 0, err
	}

	_ = cache.SetCount(ctx, key, count, ttl)
	return count, nil
}

func messageCountKey(filter entity.MessageFilter) string {
	key := "count:messages:" + filter.ChatId
	if !filter.ExcludeDeleted {
		key += ":all"
	}
	return key
}

func chatCountKey(filter entity.ChatFilter) string {
	key := "count:chats:" + filter.ParticipantId
	if !filter.ExcludeDeleted {
		key += ":all"
	}
	return key
}
