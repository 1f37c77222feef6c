package memstore

import (
	"context"
	"sort"
	"sync"

	"messages/internal/entity"

	"github.com/google/uuid"
)

type ChatStore struct {
	mu    sync.RWMutex
	chats []entity.Chat
}

func NewChatStore() *ChatStore {
	return &ChatStore{}
}

func (s *ChatStore) Insert(chat entity.Chat) string {
	if chat.Id == "" {
		chat.Id = uuid.New().String()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.chats = append(s.chats, chat)
	return chat.Id
}

func (s *ChatStore) CountMatching(_ context.Context, filter entity.ChatFilter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, c := range s.chats {
		if chatMatches(c, filter) {
			count++
		}
	}
	return count, nil
}

func (s *ChatStore) FindMatching(_ context.Context, filter entity.ChatFilter, projection entity.Projection, opts entity.FindOptions) ([]entity.Chat, error) {
	s.mu.RLock()
	matched := make([]entity.Chat, 0)
	for _, c := range s.chats {
		if chatMatches(c, filter) {
			matched = append(matched, c)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		return less(chatSortValue(matched[i], opts.Sort.Field), matched[i].Id,
			chatSortValue(matched[j], opts.Sort.Field), matched[j].Id, opts.Sort.Descending)
	})

	lo, hi := window(len(matched), opts)
	result := make([]entity.Chat, 0, hi-lo)
	for _, c := range matched[lo:hi] {
		result = append(result, projectChat(c, projection))
	}
	return result, nil
}

func chatMatches(c entity.Chat, filter entity.ChatFilter) bool {
	if c.HostId != filter.ParticipantId && c.CustomerId != filter.ParticipantId {
		return false
	}
	return !filter.ExcludeDeleted || c.DeletedAt == nil
}

func chatSortValue(c entity.Chat, field string) int64 {
	switch field {
	case "createdAt":
		return c.CreatedAt.UnixNano()
	case "updatedAt":
		return c.UpdatedAt.UnixNano()
	}
	return 0
}

func projectChat(c entity.Chat, projection entity.Projection) entity.Chat {
	if len(projection) == 0 {
		return c
	}
	var out entity.Chat
	if projection.Includes("_id") {
		out.Id = c.Id
	}
	if projection.Includes("bookingId") {
		out.BookingId = c.BookingId
	}
	if projection.Includes("hostId") {
		out.HostId = c.HostId
	}
	if projection.Includes("customerId") {
		out.CustomerId = c.CustomerId
	}
	if projection.Includes("createdAt") {
		out.CreatedAt = c.CreatedAt
	}
	if projection.Includes("updatedAt") {
		out.UpdatedAt = c.UpdatedAt
	}
	if projection.Includes("deletedAt") {
		out.DeletedAt = c.DeletedAt
	}
	return out
}
