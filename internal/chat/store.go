// Package chat maintains each user's chat sessions in memory, backed by a
// Repository for persistence. Message writes are optimistic: the in-memory
// state is updated first and rolled back if persistence fails, so message
// order always reflects the order of calls, not persistence completion.
package chat

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"ayurhealth-backend/pkg/api"
)

// Phase describes where a chat stands in its opening exchange.
type Phase int

const (
	// PhaseEmpty means the chat has no messages yet.
	PhaseEmpty Phase = iota
	// PhaseAwaitingFirstResponse means the chat holds exactly one message
	// and it came from the user, so an automatic reply is owed.
	PhaseAwaitingFirstResponse
	// PhaseActive means the opening exchange is over.
	PhaseActive
)

type Message struct {
	ID        uuid.UUID
	Role      string
	Content   string
	CreatedAt time.Time
}

type Chat struct {
	ID        uuid.UUID
	Title     string
	CreatedAt time.Time
	Messages  []Message
}

type Store struct {
	mu   sync.Mutex
	repo Repository

	order  []uuid.UUID // most recent first
	chats  map[uuid.UUID]*Chat
	active uuid.UUID
}

func NewStore(repo Repository) *Store {
	return &Store{
		repo:  repo,
		chats: make(map[uuid.UUID]*Chat),
	}
}

// FetchChats replaces all in-memory chats with the persisted state. Any
// unsaved local state is discarded. The active chat is kept if it still
// exists, otherwise cleared.
func (s *Store) FetchChats(ctx context.Context) error {
	chats, err := s.repo.ListChats(ctx)
	if err != nil {
		return fmt.Errorf("error loading chats: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.order = make([]uuid.UUID, 0, len(chats))
	s.chats = make(map[uuid.UUID]*Chat, len(chats))
	for i := range chats {
		chat := chats[i]
		s.order = append(s.order, chat.ID)
		s.chats[chat.ID] = &chat
	}
	if _, ok := s.chats[s.active]; !ok {
		s.active = uuid.Nil
	}
	return nil
}

// CreateChat persists a new empty chat, prepends it to the chat list, and
// makes it the active chat.
func (s *Store) CreateChat(ctx context.Context, title string) (uuid.UUID, error) {
	chat := Chat{
		ID:        uuid.New(),
		Title:     title,
		CreatedAt: time.Now(),
	}

	if err := s.repo.CreateChat(ctx, chat); err != nil {
		return uuid.Nil, fmt.Errorf("error creating chat: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.order = append([]uuid.UUID{chat.ID}, s.order...)
	s.chats[chat.ID] = &chat
	s.active = chat.ID
	return chat.ID, nil
}

// GetChat returns a copy of the chat, or false if it does not exist. Absence
// is not an error.
func (s *Store) GetChat(chatId uuid.UUID) (Chat, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	chat, ok := s.chats[chatId]
	if !ok {
		return Chat{}, false
	}
	return copyChat(chat), true
}

// ListChats returns copies of all chats, most recently created first.
func (s *Store) ListChats() []Chat {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Chat, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, copyChat(s.chats[id]))
	}
	return out
}

// AddMessage appends a message with a freshly assigned id, then persists it.
// If persistence fails the message is removed again, by id rather than by
// position, so messages appended in the meantime are untouched. Adding to an
// unknown chat is a no-op and reports ok=false.
func (s *Store) AddMessage(ctx context.Context, chatId uuid.UUID, role, content string) (Message, bool, error) {
	msg := Message{
		ID:        uuid.New(),
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	chat, ok := s.chats[chatId]
	if !ok {
		s.mu.Unlock()
		return Message{}, false, nil
	}
	chat.Messages = append(chat.Messages, msg)
	s.mu.Unlock()

	if err := s.repo.AppendMessage(ctx, chatId, msg); err != nil {
		s.removeMessage(chatId, msg.ID)
		return Message{}, true, fmt.Errorf("error saving message: %w", err)
	}
	return msg, true, nil
}

func (s *Store) removeMessage(chatId, messageId uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	chat, ok := s.chats[chatId]
	if !ok {
		return
	}
	for i, msg := range chat.Messages {
		if msg.ID == messageId {
			chat.Messages = append(chat.Messages[:i], chat.Messages[i+1:]...)
			return
		}
	}
}

// SetActiveChat records the chat selection. The id is not validated; a chat
// created moments later may legitimately claim the designation.
func (s *Store) SetActiveChat(chatId uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = chatId
}

func (s *Store) ActiveChat() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Phase reports the opening-exchange state of the chat. Unknown chats report
// ok=false.
func (s *Store) Phase(chatId uuid.UUID) (Phase, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	chat, ok := s.chats[chatId]
	if !ok {
		return PhaseEmpty, false
	}
	return derivePhase(chat.Messages), true
}

func derivePhase(messages []Message) Phase {
	switch {
	case len(messages) == 0:
		return PhaseEmpty
	case len(messages) == 1 && messages[0].Role == api.RoleUser:
		return PhaseAwaitingFirstResponse
	default:
		return PhaseActive
	}
}

func copyChat(chat *Chat) Chat {
	out := *chat
	out.Messages = make([]Message, len(chat.Messages))
	copy(out.Messages, chat.Messages)
	return out
}
