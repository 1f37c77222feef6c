package usecase

import (
	"context"

	"messages/internal/entity"
	"messages/internal/repository"
	"messages/pkg/logger"

	"go.uber.org/zap"
)

var chatProjection = entity.Projection{"_id", "bookingId", "hostId", "customerId", "createdAt", "updatedAt"}

var chatSort = entity.SortKey{Field: "updatedAt", Descending: true}

type ListUserChatsUsecase interface {
	Execute(ctx context.Context, req entity.ListUserChatsRequest) (entity.ListUserChatsResponse, error)
}

type listUserChatsUsecase struct {
	chatStore repository.ChatStore
	log       *logger.Logger
}

func NewListUserChatsUsecase(chatStore repository.ChatStore, log *logger.Logger) (ListUserChatsUsecase, error) {
	if log == nil {
		log = logger.Nop()
	}
	if isMissing(chatStore) {
		log.Error("[messages]: Chat store dependency has not been injected.", nil)
		return nil, &MissingDependencyError{Dependency: "chat store"}
	}

	return &listUserChatsUsecase{
		chatStore: chatStore,
		log:       log,
	}, nil
}

// Execute returns one page of the chats the user hosts or is the customer of,
// most recently updated first.
func (u *listUserChatsUsecase) Execute(ctx context.Context, req entity.ListUserChatsRequest) (entity.ListUserChatsResponse, error) {
	log := u.log.WithContext(ctx)

	if req.User == nil || req.User.Id == "" {
		log.Error("[messages]: "+reasonUserIdRequired, nil)
		return entity.ListUserChatsResponse{}, newInvalidArgument(reasonUserIdRequired)
	}
	if err := ValidatePage(req.Page); err != nil {
		log.Error("[messages]: "+reasonInvalidPage, nil)
		return entity.ListUserChatsResponse{}, err
	}

	userId := req.User.Id
	filter := entity.ChatFilter{
		ParticipantId:  userId,
		ExcludeDeleted: true,
	}
	opts := pageFindOptions(req.Page, chatSort)

	log.Info("[messages]: Listing chats for user "+userId, zap.Int("page", req.Page))

	chats, pages, err := fetchPage(ctx,
		func(ctx context.Context) (int64, error) {
			return u.chatStore.CountMatching(ctx, filter)
		},
		func(ctx context.Context) ([]entity.Chat, error) {
			return u.chatStore.FindMatching(ctx, filter, chatProjection, opts)
		},
	)
	chats, pages = degradeToEmpty(chats, pages, err, func(err error) {
		log.Error("[messages]: Error listing chats", err, zap.String("userId", userId))
	})

	return entity.ListUserChatsResponse{
		Pages: pages,
		Chats: chats,
	}, nil
}
