package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"messages/internal/entity"
	"messages/pkg/logger"

	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeMessageStore struct {
	mu         sync.Mutex
	count      int64
	countErr   error
	messages   []entity.Message
	findErr    error
	calls      int
	filter     entity.MessageFilter
	projection entity.Projection
	opts       entity.FindOptions
}

func (f *fakeMessageStore) CountMatching(_ context.Context, filter entity.MessageFilter) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.filter = filter
	return f.count, f.countErr
}

func (f *fakeMessageStore) FindMatching(_ context.Context, filter entity.MessageFilter, projection entity.Projection, opts entity.FindOptions) ([]entity.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.filter = filter
	f.projection = projection
	f.opts = opts
	return f.messages, f.findErr
}

type fakeChatStore struct {
	mu         sync.Mutex
	count      int64
	countErr   error
	chats      []entity.Chat
	findErr    error
	calls      int
	filter     entity.ChatFilter
	projection entity.Projection
	opts       entity.FindOptions
}

func (f *fakeChatStore) CountMatching(_ context.Context, filter entity.ChatFilter) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.filter = filter
	return f.count, f.countErr
}

func (f *fakeChatStore) FindMatching(_ context.Context, filter entity.ChatFilter, projection entity.Projection, opts entity.FindOptions) ([]entity.Chat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.filter = filter
	f.projection = projection
	f.opts = opts
	return f.chats, f.findErr
}

func observedLogger() (*logger.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.InfoLevel)
	return logger.NewWithCore(core), logs
}

// rendezvousMessageStore blocks each read until the other has been entered,
// so a call only completes when count and fetch are in flight together.
// The fetch also waits for the count to return before finishing.
type rendezvousMessageStore struct {
	countErr      error
	countEntered  chan struct{}
	findEntered   chan struct{}
	countReturned chan struct{}
	findCtxErr    error
	findCompleted bool
}

func newRendezvousMessageStore(countErr error) *rendezvousMessageStore {
	return &rendezvousMessageStore{
		countErr:      countErr,
		countEntered:  make(chan struct{}),
		findEntered:   make(chan struct{}),
		countReturned: make(chan struct{}),
	}
}

func (s *rendezvousMessageStore) CountMatching(_ context.Context, _ entity.MessageFilter) (int64, error) {
	defer close(s.countReturned)
	close(s.countEntered)
	select {
	case <-s.findEntered:
	case <-time.After(2 * time.Second):
		return 0, errors.New("fetch never started while count was in flight")
	}
	return 12, s.countErr
}

func (s *rendezvousMessageStore) FindMatching(ctx context.Context, _ entity.MessageFilter, _ entity.Projection, _ entity.FindOptions) ([]entity.Message, error) {
	close(s.findEntered)
	select {
	case <-s.countEntered:
	case <-time.After(2 * time.Second):
		return nil, errors.New("count never started while fetch was in flight")
	}
	<-s.countReturned
	s.findCtxErr = ctx.Err()
	s.findCompleted = true
	return []entity.Message{{Id: "m1"}}, nil
}
