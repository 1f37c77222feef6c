package usecase

import (
	"context"

	"messages/internal/entity"
	"messages/internal/repository"
	"messages/pkg/logger"

	"go.uber.org/zap"
)

var messageProjection = entity.Projection{"_id", "chatId", "text", "createdAt", "createdBy"}

var messageSort = entity.SortKey{Field: "createdAt", Descending: true}

type ListChatMessagesUsecase interface {
	Execute(ctx context.Context, req entity.ListChatMessagesRequest) (entity.ListChatMessagesResponse, error)
}

type listChatMessagesUsecase struct {
	messageStore repository.MessageStore
	log          *logger.Logger
}

func NewListChatMessagesUsecase(messageStore repository.MessageStore, log *logger.Logger) (ListChatMessagesUsecase, error) {
	if log == nil {
		log = logger.Nop()
	}
	if isMissing(messageStore) {
		log.Error("[messages]: Message store dependency has not been injected.", nil)
		return nil, &MissingDependencyError{Dependency: "message store"}
	}

	return &listChatMessagesUsecase{
		messageStore: messageStore,
		log:          log,
	}, nil
}

// Execute returns one page of a chat room's messages, most recent first.
// Store failures are logged and reported as an empty page.
func (u *listChatMessagesUsecase) Execute(ctx context.Context, req entity.ListChatMessagesRequest) (entity.ListChatMessagesResponse, error) {
	log := u.log.WithContext(ctx)

	if req.ChatId == "" {
		log.Error("[messages]: Chat Room ID has not been provided.", nil)
		return entity.ListChatMessagesResponse{}, newInvalidArgument(reasonChatIdRequired)
	}
	if err := ValidatePage(req.Page); err != nil {
		log.Error("[messages]: "+reasonInvalidPage, nil)
		return entity.ListChatMessagesResponse{}, err
	}

	filter := entity.MessageFilter{
		ChatId:         req.ChatId,
		ExcludeDeleted: true,
	}
	opts := pageFindOptions(req.Page, messageSort)

	log.Info("[messages]: Getting messages of chat room #"+req.ChatId, zap.Int("page", req.Page))

	messages, pages, err := fetchPage(ctx,
		func(ctx context.Context) (int64, error) {
			return u.messageStore.CountMatching(ctx, filter)
		},
		func(ctx context.Context) ([]entity.Message, error) {
			return u.messageStore.FindMatching(ctx, filter, messageProjection, opts)
		},
	)
	messages, pages = degradeToEmpty(messages, pages, err, func(err error) {
		log.Error("[messages]: Error fetching messages of chat room #"+req.ChatId, err, zap.String("chatId", req.ChatId))
	})

	return entity.ListChatMessagesResponse{
		Pages:    pages,
		Messages: messages,
	}, nil
}
