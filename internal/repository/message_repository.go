package repository

import (
	"context"
	"fmt"
	"messages/internal/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const messagesCollection = "messages"

type messageRepository struct {
	db *mongo.Database
}

func NewMessageRepository(db *mongo.Database) MessageStore {
	return &messageRepository{
		db: db,
	}
}

func (r *messageRepository) CountMatching(ctx context.Context, filter entity.MessageFilter) (int64, error) {
	collection := r.db.Collection(messagesCollection)

	count, err := collection.CountDocuments(ctx, messageFilterToBson(filter))
	if err != nil {
		return 0, fmt.Errorf("count messages: %w", err)
	}

	return count, nil
}

func (r *messageRepository) FindMatching(ctx context.Context, filter entity.MessageFilter, projection entity.Projection, opts entity.FindOptions) ([]entity.Message, error) {
	collection := r.db.Collection(messagesCollection)

	cursor, err := collection.Find(ctx, messageFilterToBson(filter), findOptions(projection, opts))
	if err != nil {
		return nil, fmt.Errorf("find messages: %w", err)
	}
	defer cursor.Close(ctx)

	messages := make([]entity.Message, 0, opts.Limit)
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("decode messages: %w", err)
	}

	return messages, nil
}

func messageFilterToBson(filter entity.MessageFilter) bson.M {
	query := bson.M{"chatId": filter.ChatId}
	if filter.ExcludeDeleted {
		query["deletedAt"] = nil
	}
	return query
}

// findOptions translates the store-agnostic window into driver options.
func findOptions(projection entity.Projection, opts entity.FindOptions) *options.FindOptions {
	findOpts := options.Find()

	if len(projection) > 0 {
		fields := bson.D{}
		for _, field := range projection {
			fields = append(fields, bson.E{Key: field, Value: 1})
		}
		findOpts.SetProjection(fields)
	}

	if opts.Sort.Field != "" {
		direction := 1
		if opts.Sort.Descending {
			direction = -1
		}
		findOpts.SetSort(bson.D{{Key: opts.Sort.Field, Value: direction}})
	}
	if opts.Offset > 0 {
		findOpts.SetSkip(int64(opts.Offset))
	}
	if opts.Limit > 0 {
		findOpts.SetLimit(int64(opts.Limit))
	}

	return findOpts
}
