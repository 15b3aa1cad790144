package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"telegram-football-fixtures/internal/domain/ports/repository"
)

var _ repository.StateRepository = (*PromptStateRepo)(nil)

// PromptStateRepo remembers which command a chat started without an
// argument, so the next plain message can complete it.
type PromptStateRepo struct {
	client RedisClient
	ttl    time.Duration
}

func NewPromptStateRepo(client RedisClient, ttl time.Duration) *PromptStateRepo {
	if ttl <= 0 {
		ttl = 15 * time.Minute // give users time to answer the follow-up prompt
	}
	return &PromptStateRepo{
		client: client,
		ttl:    ttl,
	}
}

func (s *PromptStateRepo) stateKey(chatID int64) string {
	return fmt.Sprintf("prompt_state:%d", chatID)
}

func (s *PromptStateRepo) SetState(ctx context.Context, chatID int64, state *repository.ConversationState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.stateKey(chatID), data, s.ttl)
}

func (s *PromptStateRepo) GetState(ctx context.Context, chatID int64) (*repository.ConversationState, error) {
	data, err := s.client.Get(ctx, s.stateKey(chatID))
	if err != nil {
		return nil, err
	}
	var state repository.ConversationState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *PromptStateRepo) ClearState(ctx context.Context, chatID int64) error {
	return s.client.Del(ctx, s.stateKey(chatID))
}
