// Package telegram polls the Bot API and routes chat commands to the
// application facade.
package telegram

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"telegram-football-fixtures/internal/application"
	"telegram-football-fixtures/internal/config"
	"telegram-football-fixtures/internal/domain/ports/adapter"
	"telegram-football-fixtures/internal/domain/ports/repository"
	"telegram-football-fixtures/internal/infra/logging"
	"telegram-football-fixtures/internal/infra/metrics"
	red "telegram-football-fixtures/internal/infra/redis"
)

const (
	commandRateLimit  = 20
	commandRateWindow = time.Minute
)

// RealTelegramBotAdapter uses tgbotapi long polling and fans updates out to a
// small worker pool. It also implements adapter.MessageSender for the
// notification workers.
type RealTelegramBotAdapter struct {
	bot         *tgbotapi.BotAPI
	cfg         *config.BotConfig
	facade      *application.BotFacade
	rateLimiter *red.RateLimiter
	stateRepo   repository.StateRepository
	log         *zerolog.Logger

	updateWorkers int
	cancelPolling context.CancelFunc
}

var _ adapter.MessageSender = (*RealTelegramBotAdapter)(nil)

func NewRealTelegramBotAdapter(
	cfg *config.BotConfig,
	facade *application.BotFacade,
	rateLimiter *red.RateLimiter,
	stateRepo repository.StateRepository,
	logger *zerolog.Logger,
	updateWorkers int,
) (*RealTelegramBotAdapter, error) {
	if cfg == nil {
		return nil, errors.New("bot config is nil")
	}
	if facade == nil {
		return nil, errors.New("bot facade is nil")
	}
	if updateWorkers <= 0 {
		updateWorkers = 5
	}

	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, err
	}

	componentLogger := logger.With().Str("component", "telegram").Logger()
	return &RealTelegramBotAdapter{
		bot:           bot,
		cfg:           cfg,
		facade:        facade,
		rateLimiter:   rateLimiter,
		stateRepo:     stateRepo,
		log:           &componentLogger,
		updateWorkers: updateWorkers,
	}, nil
}

func (r *RealTelegramBotAdapter) StartPolling(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := r.bot.GetUpdatesChan(u)

	ctx, cancel := context.WithCancel(ctx)
	r.cancelPolling = cancel

	var wg sync.WaitGroup
	updateChan := make(chan tgbotapi.Update, 100)

	for i := 0; i < r.updateWorkers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case up := <-updateChan:
					upCtx := logging.WithTraceID(ctx, uuid.NewString())
					if err := r.handleUpdate(upCtx, up); err != nil {
						logging.With(upCtx, r.log).Error().Err(err).Int("worker", id).Msg("update handling failed")
					}
				}
			}
		}(i)
	}

	for {
		select {
		case <-ctx.Done():
			close(updateChan)
			wg.Wait()
			return ctx.Err()
		case up := <-updates:
			updateChan <- up
		}
	}
}

func (r *RealTelegramBotAdapter) StopPolling() {
	if r.cancelPolling != nil {
		r.cancelPolling()
	}
}

// SendMessage implements adapter.MessageSender.
func (r *RealTelegramBotAdapter) SendMessage(ctx context.Context, chatID int64, text string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := r.bot.Send(msg)
	return err
}

// SendPhoto implements adapter.MessageSender, sending a photo by URL with an
// optional caption.
func (r *RealTelegramBotAdapter) SendPhoto(ctx context.Context, chatID int64, photoURL, caption string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(photoURL))
	photo.Caption = caption
	_, err := r.bot.Send(photo)
	return err
}

// SendButtons implements adapter.MessageSender with an inline keyboard.
func (r *RealTelegramBotAdapter) SendButtons(ctx context.Context, chatID int64, text string, rows [][]adapter.InlineButton) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	kbRows := make([][]tgbotapi.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		kbRow := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, btn := range row {
			label := strings.TrimSpace(btn.Text)
			if label == "" {
				label = "•"
			}
			var kb tgbotapi.InlineKeyboardButton
			switch {
			case btn.URL != "":
				kb = tgbotapi.NewInlineKeyboardButtonURL(label, btn.URL)
			case btn.Data != "":
				kb = tgbotapi.NewInlineKeyboardButtonData(label, btn.Data)
			default:
				kb = tgbotapi.NewInlineKeyboardButtonData(label, label)
			}
			kbRow = append(kbRow, kb)
		}
		kbRows = append(kbRows, kbRow)
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(kbRows...)
	_, err := r.bot.Send(msg)
	return err
}

func (r *RealTelegramBotAdapter) handleUpdate(ctx context.Context, update tgbotapi.Update) error {
	if update.CallbackQuery != nil {
		return r.handleQuery(ctx, update.CallbackQuery)
	}
	if update.Message == nil || update.Message.From == nil {
		return nil
	}

	message := update.Message
	chatID := message.Chat.ID
	ctx = logging.WithChatID(ctx, chatID)

	if message.IsCommand() {
		command := message.Command()
		if r.rateLimiter != nil {
			allowed, err := r.rateLimiter.Allow(ctx, red.ChatCommandKey(chatID, command), commandRateLimit, commandRateWindow)
			if err != nil {
				r.log.Warn().Err(err).Msg("rate limiter unavailable, letting command through")
			} else if !allowed {
				metrics.IncRateLimited()
				return r.SendMessage(ctx, chatID, "Slow down a little. Try again in a minute.")
			}
		}
		if r.stateRepo != nil {
			_ = r.stateRepo.ClearState(ctx, chatID)
		}
		handler, ok := r.commandRoutes()[command]
		if !ok {
			metrics.IncCommand(command, "unknown")
			return r.SendMessage(ctx, chatID, "Unknown command. Send /help for the list.")
		}
		if err := handler(ctx, message); err != nil {
			metrics.IncCommand(command, "error")
			logging.With(ctx, r.log).Error().Err(err).Str("command", command).Msg("command failed")
			return r.SendMessage(ctx, chatID, "Something went wrong. Please try again later.")
		}
		metrics.IncCommand(command, "ok")
		return nil
	}

	// Plain text only matters as the answer to an argument prompt.
	return r.resumePending(ctx, message)
}

// resumePending completes a command that was sent without its argument by
// treating the next plain message as that argument.
func (r *RealTelegramBotAdapter) resumePending(ctx context.Context, message *tgbotapi.Message) error {
	if r.stateRepo == nil || strings.TrimSpace(message.Text) == "" {
		return nil
	}
	chatID := message.Chat.ID
	state, err := r.stateRepo.GetState(ctx, chatID)
	if err != nil || state == nil || state.PendingCommand == "" {
		return nil
	}
	_ = r.stateRepo.ClearState(ctx, chatID)

	handler, ok := r.argRoutes()[state.PendingCommand]
	if !ok {
		return nil
	}
	return handler(ctx, chatID, message.Text)
}

// promptFor stores the pending command and asks the chat for its argument.
func (r *RealTelegramBotAdapter) promptFor(ctx context.Context, chatID int64, command, prompt string) error {
	if r.stateRepo != nil {
		if err := r.stateRepo.SetState(ctx, chatID, &repository.ConversationState{PendingCommand: command}); err != nil {
			r.log.Warn().Err(err).Msg("failed to store prompt state")
		}
	}
	return r.SendMessage(ctx, chatID, prompt)
}

func (r *RealTelegramBotAdapter) handleQuery(ctx context.Context, query *tgbotapi.CallbackQuery) error {
	if query == nil || query.From == nil {
		return errors.New("invalid callback query")
	}

	// Stop the telegram spinner when we return.
	defer func() { _, _ = r.bot.Request(tgbotapi.NewCallback(query.ID, "")) }()

	var chatID int64
	if query.Message != nil && query.Message.Chat != nil {
		chatID = query.Message.Chat.ID
	} else {
		chatID = query.From.ID
	}
	if chatID == 0 {
		return nil
	}
	ctx = logging.WithChatID(ctx, chatID)

	data := strings.TrimSpace(query.Data)
	for _, route := range r.cbPrefixRoutes() {
		if strings.HasPrefix(data, route.Prefix) {
			return route.Fn(ctx, chatID, strings.TrimPrefix(data, route.Prefix))
		}
	}
	return errors.New("unknown callback data")
}

type cbHandler func(ctx context.Context, chatID int64, arg string) error

func (r *RealTelegramBotAdapter) cbPrefixRoutes() []struct {
	Prefix string
	Fn     cbHandler
} {
	return []struct {
		Prefix string
		Fn     cbHandler
	}{
		{Prefix: "notif:on:", Fn: func(ctx context.Context, chatID int64, arg string) error {
			text, err := r.facade.HandleSetEnabled(ctx, chatID, arg, true)
			if err != nil {
				text = "Failed to update the setting."
			}
			return r.SendMessage(ctx, chatID, text)
		}},
		{Prefix: "notif:off:", Fn: func(ctx context.Context, chatID int64, arg string) error {
			text, err := r.facade.HandleSetEnabled(ctx, chatID, arg, false)
			if err != nil {
				text = "Failed to update the setting."
			}
			return r.SendMessage(ctx, chatID, text)
		}},
	}
}

func (r *RealTelegramBotAdapter) sendChunks(ctx context.Context, chatID int64, chunks []string) error {
	for _, chunk := range chunks {
		if err := r.SendMessage(ctx, chatID, chunk); err != nil {
			return err
		}
	}
	return nil
}
