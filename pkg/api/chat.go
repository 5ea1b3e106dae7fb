package api

import "time"

const (
	RoleUser      = "user"
	RoleSystem    = "system"
	RoleAssistant = "assistant"
)

type CreateChatRequest struct {
	Title   string `json:"title"`
	Message string `json:"message,omitempty"` // optional opening user message
}

type CreateChatResponse struct {
	ChatID string `json:"chat_id"`
}

type Message struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type Chat struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	Messages  []Message `json:"messages"`
}

type ListChatsResponse struct {
	Chats        []Chat `json:"chats"`
	ActiveChatID string `json:"activeChatId,omitempty"`
}

type SetActiveChatRequest struct {
	ChatID string `json:"chat_id"`
}

type SendMessageRequest struct {
	Content string `json:"content"`
	Role    string `json:"role"`
}

type SendMessageResponse struct {
	Chat Chat `json:"chat"`
}

type AdviceRequest struct {
	Message string `json:"message"`
}

type AdviceResponse struct {
	Advice string `json:"advice"`
}
