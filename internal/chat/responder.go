package chat

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"ayurhealth-backend/internal/advisor"
	"ayurhealth-backend/pkg/api"
)

// Responder generates the assistant's automatic reply to a chat's opening
// message.
type Responder struct {
	store   *Store
	advisor *advisor.Advisor
}

func NewResponder(store *Store, adv *advisor.Advisor) *Responder {
	return &Responder{store: store, advisor: adv}
}

// MaybeRespond appends an assistant reply if and only if the chat holds
// exactly one message and that message came from the user. In every other
// state, including an unknown chat, it does nothing. Returns whether a reply
// was added.
func (r *Responder) MaybeRespond(ctx context.Context, chatId uuid.UUID) (bool, error) {
	phase, ok := r.store.Phase(chatId)
	if !ok || phase != PhaseAwaitingFirstResponse {
		return false, nil
	}

	chat, ok := r.store.GetChat(chatId)
	if !ok || len(chat.Messages) != 1 {
		return false, nil
	}

	reply, err := r.advisor.Advise(ctx, chat.Messages[0].Content)
	if err != nil {
		return false, fmt.Errorf("error generating opening reply: %w", err)
	}

	if _, _, err := r.store.AddMessage(ctx, chatId, api.RoleAssistant, reply); err != nil {
		return false, err
	}
	return true, nil
}
