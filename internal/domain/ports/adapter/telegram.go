package adapter

import "context"

// InlineButton describes a button in one row of an inline keyboard.
type InlineButton struct {
	Text string
	Data string
	URL  string
}

// MessageSender is the outbound Telegram surface the use cases need.
// Sends are fire-and-forget from the caller's perspective; failures are
// logged by the implementation, never retried.
type MessageSender interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
	SendPhoto(ctx context.Context, chatID int64, photoURL, caption string) error
	SendButtons(ctx context.Context, chatID int64, text string, rows [][]InlineButton) error
}
