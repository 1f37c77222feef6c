// Package memstore holds in-process record stores with the same query
// contract as the MongoDB repositories.
package memstore

import (
	"context"
	"sort"
	"sync"

	"messages/internal/entity"

	"github.com/google/uuid"
)

type MessageStore struct {
	mu       sync.RWMutex
	messages []entity.Message
}

func NewMessageStore() *MessageStore {
	return &MessageStore{}
}

// Insert stores message, assigning an id when it has none, and returns the id.
func (s *MessageStore) Insert(message entity.Message) string {
	if message.Id == "" {
		message.Id = uuid.New().String()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, message)
	return message.Id
}

func (s *MessageStore) CountMatching(_ context.Context, filter entity.MessageFilter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, m := range s.messages {
		if messageMatches(m, filter) {
			count++
		}
	}
	return count, nil
}

func (s *MessageStore) FindMatching(_ context.Context, filter entity.MessageFilter, projection entity.Projection, opts entity.FindOptions) ([]entity.Message, error) {
	s.mu.RLock()
	matched := make([]entity.Message, 0)
	for _, m := range s.messages {
		if messageMatches(m, filter) {
			matched = append(matched, m)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		return less(messageSortValue(matched[i], opts.Sort.Field), matched[i].Id,
			messageSortValue(matched[j], opts.Sort.Field), matched[j].Id, opts.Sort.Descending)
	})

	lo, hi := window(len(matched), opts)
	result := make([]entity.Message, 0, hi-lo)
	for _, m := range matched[lo:hi] {
		result = append(result, projectMessage(m, projection))
	}
	return result, nil
}

func messageMatches(m entity.Message, filter entity.MessageFilter) bool {
	if m.ChatId != filter.ChatId {
		return false
	}
	return !filter.ExcludeDeleted || m.DeletedAt == nil
}

func messageSortValue(m entity.Message, field string) int64 {
	if field == "createdAt" {
		return m.CreatedAt.UnixNano()
	}
	return 0
}

func projectMessage(m entity.Message, projection entity.Projection) entity.Message {
	if len(projection) == 0 {
		return m
	}
	var out entity.Message
	if projection.Includes("_id") {
		out.Id = m.Id
	}
	if projection.Includes("chatId") {
		out.ChatId = m.ChatId
	}
	if projection.Includes("text") {
		out.Text = m.Text
	}
	if projection.Includes("createdAt") {
		out.CreatedAt = m.CreatedAt
	}
	if projection.Includes("createdBy") {
		out.CreatedBy = m.CreatedBy
	}
	if projection.Includes("deletedAt") {
		out.DeletedAt = m.DeletedAt
	}
	return out
}
