package repository

import (
	"context"
	"fmt"
	"messages/internal/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const chatsCollection = "chats"

type chatRepository struct {
	db *mongo.Database
}

func NewChatRepository(db *mongo.Database) ChatStore {
	return &chatRepository{
		db: db,
	}
}

// CountMatching counts the chats a participant is host or customer of
func (r *chatRepository) CountMatching(ctx context.Context, filter entity.ChatFilter) (int64, error) {
	collection := r.db.Collection(chatsCollection)

	count, err := collection.CountDocuments(ctx, chatFilterToBson(filter))
	if err != nil {
		return 0, fmt.Errorf("count chats: %w", err)
	}

	return count, nil
}

// FindMatching returns one window of the chats a participant is host or customer of
func (r *chatRepository) FindMatching(ctx context.Context, filter entity.ChatFilter, projection entity.Projection, opts entity.FindOptions) ([]entity.Chat, error) {
	collection := r.db.Collection(chatsCollection)

	cursor, err := collection.Find(ctx, chatFilterToBson(filter), findOptions(projection, opts))
	if err != nil {
		return nil, fmt.Errorf("find chats: %w", err)
	}
	defer cursor.Close(ctx)

	chats := make([]entity.Chat, 0, opts.Limit)
	if err := cursor.All(ctx, &chats); err != nil {
		return nil, fmt.Errorf("decode chats: %w", err)
	}

	return chats, nil
}

func chatFilterToBson(filter entity.ChatFilter) bson.M {
	query := bson.M{
		"$or": bson.A{
			bson.M{"hostId": filter.ParticipantId},
			bson.M{"customerId": filter.ParticipantId},
		},
	}
	if filter.ExcludeDeleted {
		query["deletedAt"] = nil
	}
	return query
}
