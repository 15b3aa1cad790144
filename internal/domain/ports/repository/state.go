package repository

import "context"

// ConversationState remembers which command a chat invoked without an
// argument so the next plain message can resolve it.
type ConversationState struct {
	PendingCommand string `json:"pending_command"`
}

// StateRepository manages short-lived conversational state.
type StateRepository interface {
	SetState(ctx context.Context, chatID int64, state *ConversationState) error
	GetState(ctx context.Context, chatID int64) (*ConversationState, error)
	ClearState(ctx context.Context, chatID int64) error
}
