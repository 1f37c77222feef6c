package http

import (
	"net/http"

	"messages/pkg/logger"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(httpHandler *HttpHandler, authMiddleware *AuthMiddleware, log *logger.Logger) *chi.Mux {
	if log == nil {
		log = logger.Nop()
	}
	r := chi.NewRouter()
	r.Use(RequestId)
	r.Use(RequestLogger(log))
	r.Use(middleware.Recoverer)

	MapHttpRoutes(r, httpHandler, authMiddleware)
	return r
}

func MapHttpRoutes(r *chi.Mux, httpHandler *HttpHandler, authMiddleware *AuthMiddleware) {
	r.Get("/health", http.HandlerFunc(httpHandler.Health))

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Route("/chat", func(r chi.Router) {
			r.Get("/{chatId}/messages", http.HandlerFunc(httpHandler.ListChatMessages))
		})

		r.Route("/user", func(r chi.Router) {
			r.Get("/chats", http.HandlerFunc(httpHandler.ListUserChats))
		})
	})
}
