package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"ayurhealth-backend/internal/chat"
	"ayurhealth-backend/pkg/api"
)

func (s *BackendService) userStore(r *http.Request) (*chat.Store, error) {
	store, err := s.stores.GetStore(r.Context(), UserId(r))
	if err != nil {
		slog.Error("error loading chat store", "user_id", UserId(r), "error", err)
		return nil, CodedErrorf(http.StatusInternalServerError, "error loading chats")
	}
	return store, nil
}

type listChatsParams struct {
	Refresh bool `schema:"refresh"`
}

func (s *BackendService) ListChats(r *http.Request) (any, error) {
	params, err := ParseRequestQueryParams[listChatsParams](r)
	if err != nil {
		return nil, err
	}

	store, err := s.userStore(r)
	if err != nil {
		return nil, err
	}

	if params.Refresh {
		if err := store.FetchChats(r.Context()); err != nil {
			slog.Error("error refreshing chats", "error", err)
			return nil, CodedErrorf(http.StatusInternalServerError, "error loading chats")
		}
	}

	chats := store.ListChats()
	res := api.ListChatsResponse{Chats: make([]api.Chat, 0, len(chats))}
	for _, c := range chats {
		res.Chats = append(res.Chats, toApiChat(c))
	}
	if active := store.ActiveChat(); active != uuid.Nil {
		res.ActiveChatID = active.String()
	}
	return res, nil
}

func (s *BackendService) CreateChat(r *http.Request) (any, error) {
	req, err := ParseRequest[api.CreateChatRequest](r)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, CodedErrorf(http.StatusBadRequest, "title is required")
	}

	store, err := s.userStore(r)
	if err != nil {
		return nil, err
	}

	chatId, err := store.CreateChat(r.Context(), title)
	if err != nil {
		slog.Error("error creating chat", "error", err)
		return nil, CodedErrorf(http.StatusInternalServerError, "error creating chat")
	}

	if opening := strings.TrimSpace(req.Message); opening != "" {
		if _, _, err := store.AddMessage(r.Context(), chatId, api.RoleUser, opening); err != nil {
			slog.Error("error saving opening message", "chat_id", chatId, "error", err)
			return nil, CodedErrorf(http.StatusInternalServerError, "error saving message")
		}
		if _, err := chat.NewResponder(store, s.advisor).MaybeRespond(r.Context(), chatId); err != nil {
			return nil, advisorError(err)
		}
	}

	return api.CreateChatResponse{ChatID: chatId.String()}, nil
}

func (s *BackendService) GetChat(r *http.Request) (any, error) {
	chatId, err := URLParamUUID(r, "chat_id")
	if err != nil {
		return nil, err
	}

	store, err := s.userStore(r)
	if err != nil {
		return nil, err
	}

	c, ok := store.GetChat(chatId)
	if !ok {
		return nil, CodedErrorf(http.StatusNotFound, "chat not found")
	}
	return toApiChat(c), nil
}

func (s *BackendService) SendMessage(r *http.Request) (any, error) {
	chatId, err := URLParamUUID(r, "chat_id")
	if err != nil {
		return nil, err
	}

	req, err := ParseRequest[api.SendMessageRequest](r)
	if err != nil {
		return nil, err
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, CodedErrorf(http.StatusBadRequest, "content is required")
	}

	role := req.Role
	if role == "" {
		role = api.RoleUser
	}
	if role != api.RoleUser && role != api.RoleSystem && role != api.RoleAssistant {
		return nil, CodedErrorf(http.StatusBadRequest, "invalid role '%s'", role)
	}

	store, err := s.userStore(r)
	if err != nil {
		return nil, err
	}

	_, ok, err := store.AddMessage(r.Context(), chatId, role, content)
	if !ok {
		return nil, CodedErrorf(http.StatusNotFound, "chat not found")
	}
	if err != nil {
		slog.Error("error saving message", "chat_id", chatId, "error", err)
		return nil, CodedErrorf(http.StatusInternalServerError, "error saving message")
	}

	if role == api.RoleUser {
		if _, err := chat.NewResponder(store, s.advisor).MaybeRespond(r.Context(), chatId); err != nil {
			return nil, advisorError(err)
		}
	}

	c, ok := store.GetChat(chatId)
	if !ok {
		return nil, CodedErrorf(http.StatusNotFound, "chat not found")
	}
	return api.SendMessageResponse{Chat: toApiChat(c)}, nil
}

func (s *BackendService) SetActiveChat(r *http.Request) (any, error) {
	req, err := ParseRequest[api.SetActiveChatRequest](r)
	if err != nil {
		return nil, err
	}

	chatId, err := uuid.Parse(req.ChatID)
	if err != nil {
		return nil, CodedErrorf(http.StatusBadRequest, "invalid chat_id '%s'", req.ChatID)
	}

	store, err := s.userStore(r)
	if err != nil {
		return nil, err
	}

	store.SetActiveChat(chatId)
	return nil, nil
}

func (s *BackendService) GetAdvice(r *http.Request) (any, error) {
	req, err := ParseRequest[api.AdviceRequest](r)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Message) == "" {
		return nil, CodedErrorf(http.StatusBadRequest, "message is required")
	}

	advice, err := s.advisor.Advise(r.Context(), req.Message)
	if err != nil {
		return nil, advisorError(err)
	}
	return api.AdviceResponse{Advice: advice}, nil
}

func toApiChat(c chat.Chat) api.Chat {
	out := api.Chat{
		ID:        c.ID.String(),
		Title:     c.Title,
		CreatedAt: c.CreatedAt,
		Messages:  make([]api.Message, 0, len(c.Messages)),
	}
	for _, msg := range c.Messages {
		out.Messages = append(out.Messages, api.Message{
			ID:        msg.ID.String(),
			Content:   msg.Content,
			Role:      msg.Role,
			CreatedAt: msg.CreatedAt,
		})
	}
	return out
}
