package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"messages/internal/entity"
	"messages/internal/usecase"
	"messages/pkg/logger"

	"github.com/go-chi/chi/v5"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HttpHandler struct {
	listMessagesUc usecase.ListChatMessagesUsecase
	listChatsUc    usecase.ListUserChatsUsecase
	pinger         Pinger
	log            *logger.Logger
}

func NewHttpHandler(listMessagesUc usecase.ListChatMessagesUsecase, listChatsUc usecase.ListUserChatsUsecase, pinger Pinger, log *logger.Logger) (*HttpHandler, error) {
	if listMessagesUc == nil {
		return nil, &usecase.MissingDependencyError{Dependency: "list chat messages use case"}
	}
	if listChatsUc == nil {
		return nil, &usecase.MissingDependencyError{Dependency: "list user chats use case"}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &HttpHandler{
		listMessagesUc: listMessagesUc,
		listChatsUc:    listChatsUc,
		pinger:         pinger,
		log:            log,
	}, nil
}

type Response struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func writeJSON(w http.ResponseWriter, status int, response Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response)
}

func (h *HttpHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, usecase.ErrInvalidArgument) {
		writeJSON(w, http.StatusBadRequest, Response{Message: err.Error()})
		return
	}
	h.log.WithContext(r.Context()).Error("[messages]: request failed", err)
	writeJSON(w, http.StatusInternalServerError, Response{Message: "internal server error"})
}

// parsePage reads ?page=, defaulting to the first page.
func parsePage(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 0, usecase.NewInvalidPageError()
	}
	return page, nil
}

// Method Get /chat/{chatId}/messages?page=
func (h *HttpHandler) ListChatMessages(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	resp, err := h.listMessagesUc.Execute(r.Context(), entity.ListChatMessagesRequest{
		ChatId: chi.URLParam(r, "chatId"),
		Page:   page,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, Response{Message: "success", Data: resp})
}

// Method Get /user/chats?page=
func (h *HttpHandler) ListUserChats(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var user *entity.Caller
	if caller, ok := CallerFromContext(r.Context()); ok {
		user = &caller
	}

	resp, err := h.listChatsUc.Execute(r.Context(), entity.ListUserChatsRequest{
		User: user,
		Page: page,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, Response{Message: "success", Data: resp})
}

// Method Get /health
func (h *HttpHandler) Health(w http.ResponseWriter, r *http.Request) {
	if h.pinger != nil {
		if err := h.pinger.Ping(r.Context()); err != nil {
			h.log.WithContext(r.Context()).Error("[messages]: health check failed", err)
			writeJSON(w, http.StatusServiceUnavailable, Response{Message: "store unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, Response{Message: "ok"})
}
