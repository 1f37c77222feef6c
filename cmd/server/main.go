package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"messages/infrastructure/cache"
	"messages/infrastructure/db"
	"messages/infrastructure/memstore"
	"messages/internal/config"
	httpHandler "messages/internal/delivery/http"
	"messages/internal/repository"
	"messages/internal/usecase"
	"messages/pkg/jwt"
	"messages/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Server.Environment)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize stores
	var (
		messageStore repository.MessageStore
		chatStore    repository.ChatStore
		pinger       httpHandler.Pinger
	)
	switch cfg.Store.Backend {
	case config.BackendMemory:
		log.Info("[messages]: Using in-memory store")
		messageStore = memstore.NewMessageStore()
		chatStore = memstore.NewChatStore()
	default:
		mongoDb, err := db.NewMongoStore(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer mongoDb.Close(context.Background())
		log.Info("[messages]: Connected to MongoDB", zap.String("database", cfg.Store.MongoDatabase))

		messageStore = repository.NewMessageRepository(mongoDb.DB)
		chatStore = repository.NewChatRepository(mongoDb.DB)
		pinger = mongoDb
	}

	if cfg.Store.CountCacheTTL > 0 {
		countCache, closeCache := newCountCache(ctx, cfg, log)
		defer closeCache()
		messageStore = repository.NewCachedMessageStore(messageStore, countCache, cfg.Store.CountCacheTTL)
		chatStore = repository.NewCachedChatStore(chatStore, countCache, cfg.Store.CountCacheTTL)
	}

	// Initialize use cases
	listMessagesUc, err := usecase.NewListChatMessagesUsecase(messageStore, log)
	if err != nil {
		return err
	}
	listChatsUc, err := usecase.NewListUserChatsUsecase(chatStore, log)
	if err != nil {
		return err
	}

	handler, err := httpHandler.NewHttpHandler(listMessagesUc, listChatsUc, pinger, log)
	if err != nil {
		return err
	}
	authMiddleware := httpHandler.NewAuthMiddleware(jwt.NewValidator(cfg.Auth.JWTSecret))

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           httpHandler.NewRouter(handler, authMiddleware, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("[messages]: HTTP server is running", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("[messages]: Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newCountCache prefers Redis so instances share counts, falling back to an
// in-process cache when Redis is not configured or unreachable.
func newCountCache(ctx context.Context, cfg *config.Config, log *logger.Logger) (repository.CountCache, func()) {
	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisCountCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		err := redisCache.Ping(ctx)
		if err == nil {
			log.Info("[messages]: Using Redis count cache", zap.String("addr", cfg.Redis.Addr))
			return redisCache, func() { redisCache.Close() }
		}
		log.Error("[messages]: Redis unreachable, using in-memory count cache", err)
		redisCache.Close()
	}

	memCache := cache.NewMemCountCache(time.Minute)
	return memCache, func() { memCache.Close() }
}
