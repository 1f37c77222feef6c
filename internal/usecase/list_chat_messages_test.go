package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"messages/infrastructure/memstore"
	"messages/internal/entity"

	"github.com/stretchr/testify/require"
)

func newMessagesUsecase(t *testing.T, store *fakeMessageStore) ListChatMessagesUsecase {
	t.Helper()
	uc, err := NewListChatMessagesUsecase(store, nil)
	require.NoError(t, err)
	return uc
}

func TestNewListChatMessagesUsecase_MissingStore(t *testing.T) {
	log, logs := observedLogger()

	uc, err := NewListChatMessagesUsecase(nil, log)
	require.Nil(t, uc)
	require.ErrorIs(t, err, ErrMissingDependency)

	var missing *MissingDependencyError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, "message store", missing.Dependency)

	require.Equal(t, 1, logs.FilterMessage("[messages]: Message store dependency has not been injected.").Len())
}

func TestNewListChatMessagesUsecase_TypedNilStore(t *testing.T) {
	var store *memstore.MessageStore

	uc, err := NewListChatMessagesUsecase(store, nil)
	require.Nil(t, uc)
	require.ErrorIs(t, err, ErrMissingDependency)
}

func TestListChatMessages_InvalidChatId(t *testing.T) {
	store := &fakeMessageStore{}
	uc := newMessagesUsecase(t, store)

	_, err := uc.Execute(context.Background(), entity.ListChatMessagesRequest{ChatId: "", Page: 1})
	require.ErrorIs(t, err, ErrInvalidArgument)
	require.EqualError(t, err, "chat room ID required")
	require.Zero(t, store.calls)
}

func TestListChatMessages_InvalidPage(t *testing.T) {
	store := &fakeMessageStore{}
	uc := newMessagesUsecase(t, store)

	for _, page := range []int{0, -1, -10} {
		_, err := uc.Execute(context.Background(), entity.ListChatMessagesRequest{ChatId: "c1", Page: page})
		require.ErrorIs(t, err, ErrInvalidArgument)
		require.EqualError(t, err, "page must be a positive integer greater than 0")
	}
	require.Zero(t, store.calls)
}

func TestListChatMessages_ChatIdCheckedBeforePage(t *testing.T) {
	uc := newMessagesUsecase(t, &fakeMessageStore{})

	_, err := uc.Execute(context.Background(), entity.ListChatMessagesRequest{Page: 0})
	require.EqualError(t, err, "chat room ID required")
}

func TestListChatMessages_BuildsQuery(t *testing.T) {
	store := &fakeMessageStore{count: 42, messages: []entity.Message{{Id: "m1"}}}
	uc := newMessagesUsecase(t, store)

	resp, err := uc.Execute(context.Background(), entity.ListChatMessagesRequest{ChatId: "c1", Page: 3})
	require.NoError(t, err)
	require.Equal(t, 5, resp.Pages)
	require.Len(t, resp.Messages, 1)

	require.Equal(t, 2, store.calls)
	require.Equal(t, entity.MessageFilter{ChatId: "c1", ExcludeDeleted: true}, store.filter)
	require.Equal(t, entity.Projection{"_id", "chatId", "text", "createdAt", "createdBy"}, store.projection)
	require.False(t, store.projection.Includes("deletedAt"))
	require.Equal(t, entity.FindOptions{
		Sort:   entity.SortKey{Field: "createdAt", Descending: true},
		Offset: 20,
		Limit:  10,
	}, store.opts)
}

func TestListChatMessages_StoreFailureDegrades(t *testing.T) {
	cases := []struct {
		name  string
		store *fakeMessageStore
	}{
		{"count fails", &fakeMessageStore{countErr: errors.New("count down"), messages: []entity.Message{{Id: "m1"}}}},
		{"find fails", &fakeMessageStore{count: 3, findErr: errors.New("find down")}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			log, logs := observedLogger()
			uc, err := NewListChatMessagesUsecase(tc.store, log)
			require.NoError(t, err)

			resp, err := uc.Execute(context.Background(), entity.ListChatMessagesRequest{ChatId: "c1", Page: 1})
			require.NoError(t, err)
			require.Zero(t, resp.Pages)
			require.NotNil(t, resp.Messages)
			require.Empty(t, resp.Messages)

			failures := logs.FilterMessage("[messages]: Error fetching messages of chat room #c1").All()
			require.Len(t, failures, 1)
			require.Equal(t, "c1", failures[0].ContextMap()["chatId"])
		})
	}
}

func TestListChatMessages_CountAndFetchOverlap(t *testing.T) {
	store := newRendezvousMessageStore(nil)
	uc, err := NewListChatMessagesUsecase(store, nil)
	require.NoError(t, err)

	resp, err := uc.Execute(context.Background(), entity.ListChatMessagesRequest{ChatId: "c1", Page: 1})
	require.NoError(t, err)
	require.Equal(t, 2, resp.Pages)
	require.Len(t, resp.Messages, 1)
}

func TestListChatMessages_FailedCountDoesNotCancelFetch(t *testing.T) {
	log, logs := observedLogger()
	store := newRendezvousMessageStore(errors.New("count down"))
	uc, err := NewListChatMessagesUsecase(store, log)
	require.NoError(t, err)

	resp, err := uc.Execute(context.Background(), entity.ListChatMessagesRequest{ChatId: "c1", Page: 1})
	require.NoError(t, err)
	require.Zero(t, resp.Pages)
	require.Empty(t, resp.Messages)

	require.True(t, store.findCompleted)
	require.NoError(t, store.findCtxErr)
	require.Equal(t, "count down", logs.FilterMessage("[messages]: Error fetching messages of chat room #c1").All()[0].ContextMap()["error"])
}

func TestListChatMessages_AbsentResult(t *testing.T) {
	store := &fakeMessageStore{count: 7, messages: nil}
	uc := newMessagesUsecase(t, store)

	resp, err := uc.Execute(context.Background(), entity.ListChatMessagesRequest{ChatId: "c1", Page: 1})
	require.NoError(t, err)
	require.Zero(t, resp.Pages)
	require.Equal(t, []entity.Message{}, resp.Messages)
}

func TestListChatMessages_Scenario25Messages(t *testing.T) {
	store := memstore.NewMessageStore()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		store.Insert(entity.Message{
			Id:        fmt.Sprintf("m%02d", i),
			ChatId:    "c1",
			Text:      fmt.Sprintf("message %d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			CreatedBy: "u1",
		})
	}
	deletedAt := base
	store.Insert(entity.Message{Id: "deleted", ChatId: "c1", CreatedAt: base.Add(time.Hour), DeletedAt: &deletedAt})
	store.Insert(entity.Message{Id: "elsewhere", ChatId: "c2", CreatedAt: base.Add(time.Hour)})

	uc, err := NewListChatMessagesUsecase(store, nil)
	require.NoError(t, err)
	ctx := context.Background()

	first, err := uc.Execute(ctx, entity.ListChatMessagesRequest{ChatId: "c1", Page: 1})
	require.NoError(t, err)
	require.Equal(t, 3, first.Pages)
	require.Len(t, first.Messages, 10)
	require.Equal(t, "m24", first.Messages[0].Id)
	require.Equal(t, "m15", first.Messages[9].Id)
	for i := 1; i < len(first.Messages); i++ {
		require.True(t, first.Messages[i-1].CreatedAt.After(first.Messages[i].CreatedAt))
	}

	last, err := uc.Execute(ctx, entity.ListChatMessagesRequest{ChatId: "c1", Page: 3})
	require.NoError(t, err)
	require.Equal(t, 3, last.Pages)
	require.Len(t, last.Messages, 5)
	require.Equal(t, "m04", last.Messages[0].Id)

	past, err := uc.Execute(ctx, entity.ListChatMessagesRequest{ChatId: "c1", Page: 4})
	require.NoError(t, err)
	require.Equal(t, 3, past.Pages)
	require.Empty(t, past.Messages)

	huge, err := uc.Execute(ctx, entity.ListChatMessagesRequest{ChatId: "c1", Page: math.MaxInt/10 + 2})
	require.NoError(t, err)
	require.Equal(t, 3, huge.Pages)
	require.Empty(t, huge.Messages)

	for _, resp := range []entity.ListChatMessagesResponse{first, last} {
		for _, m := range resp.Messages {
			require.Nil(t, m.DeletedAt)
			require.NotEqual(t, "deleted", m.Id)
			require.Equal(t, "c1", m.ChatId)
		}
	}
}
