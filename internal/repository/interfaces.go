package repository

import (
	"context"
	"messages/internal/entity"
)

// MessageStore is the read contract the listing use cases consume for messages.
// FindMatching returns a nil slice to signal "no result"; a page past the end
// of the data is an empty, non-nil slice.
type MessageStore interface {
	CountMatching(ctx context.Context, filter entity.MessageFilter) (int64, error)
	FindMatching(ctx context.Context, filter entity.MessageFilter, projection entity.Projection, opts entity.FindOptions) ([]entity.Message, error)
}

// ChatStore is the read contract for chat rooms, with the same conventions as MessageStore.
type ChatStore interface {
	CountMatching(ctx context.Context, filter entity.ChatFilter) (int64, error)
	FindMatching(ctx context.Context, filter entity.ChatFilter, projection entity.Projection, opts entity.FindOptions) ([]entity.Chat, error)
}
