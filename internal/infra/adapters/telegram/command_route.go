package telegram

import (
	"context"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"telegram-football-fixtures/internal/domain"
	"telegram-football-fixtures/internal/domain/ports/adapter"
)

type commandHandler func(ctx context.Context, message *tgbotapi.Message) error

// commandRoutes defines all available bot commands and their handlers.
func (r *RealTelegramBotAdapter) commandRoutes() map[string]commandHandler {
	return map[string]commandHandler{
		"start": r.handleStartCommand,
		"help":  r.handleHelpCommand,

		"next_match":        r.handleNextMatchCommand,
		"last_match":        r.handleLastMatchCommand,
		"yesterday_matches": r.dayMatches(domain.WindowYesterday),
		"today_matches":     r.dayMatches(domain.WindowToday),
		"tomorrow_matches":  r.dayMatches(domain.WindowTomorrow),
		"matches_within":    r.handleMatchesWithinCommand,

		"subscribe_to_notifications": r.handleSubscribeCommand,
		"notif_config":               r.handleNotifConfigCommand,
		"enable_notif_config":        r.setEnabled(true),
		"disable_notif_config":       r.setEnabled(false),
		"set_daily_notif_time":       r.handleSetDailyTimeCommand,

		"set_main_time_zone": r.handleSetMainTimeZoneCommand,
		"add_time_zone":      r.handleAddTimeZoneCommand,
		"list_time_zones":    r.handleListTimeZonesCommand,

		"add_favourite_team":       r.favouriteCommand("add_favourite_team", "Which team? Send its name or id.", r.facade.HandleAddFavouriteTeam),
		"remove_favourite_team":    r.favouriteCommand("remove_favourite_team", "Which team should I remove?", r.facade.HandleRemoveFavouriteTeam),
		"add_favourite_league":     r.favouriteCommand("add_favourite_league", "Which league? Send its name or id.", r.facade.HandleAddFavouriteLeague),
		"remove_favourite_league":  r.favouriteCommand("remove_favourite_league", "Which league should I remove?", r.facade.HandleRemoveFavouriteLeague),
		"list_favourites":          r.handleListFavouritesCommand,
		"set_language":             r.handleSetLanguageCommand,
	}
}

// argRoutes maps a pending command name to the handler that consumes the
// follow-up message as its argument.
func (r *RealTelegramBotAdapter) argRoutes() map[string]cbHandler {
	return map[string]cbHandler{
		"next_match":              r.runNextMatch,
		"last_match":              r.runLastMatch,
		"matches_within":          r.runMatchesWithin,
		"set_daily_notif_time":    r.textReply(r.facade.HandleSetDailyTime),
		"set_main_time_zone":      r.textReply(r.facade.HandleSetMainTimeZone),
		"add_time_zone":           r.textReply(r.facade.HandleAddTimeZone),
		"add_favourite_team":      r.textReply(r.facade.HandleAddFavouriteTeam),
		"remove_favourite_team":   r.textReply(r.facade.HandleRemoveFavouriteTeam),
		"add_favourite_league":    r.textReply(r.facade.HandleAddFavouriteLeague),
		"remove_favourite_league": r.textReply(r.facade.HandleRemoveFavouriteLeague),
		"set_language":            r.textReply(r.facade.HandleSetLanguage),
	}
}

// textReply adapts a facade method returning one message into a cbHandler.
func (r *RealTelegramBotAdapter) textReply(fn func(ctx context.Context, chatID int64, arg string) (string, error)) cbHandler {
	return func(ctx context.Context, chatID int64, arg string) error {
		text, err := fn(ctx, chatID, arg)
		if err != nil {
			return err
		}
		return r.SendMessage(ctx, chatID, text)
	}
}

func (r *RealTelegramBotAdapter) handleStartCommand(ctx context.Context, message *tgbotapi.Message) error {
	return r.SendMessage(ctx, message.Chat.ID,
		"⚽ Welcome! I track football fixtures for you.\n\n"+
			"Start with /set_main_time_zone so kick-off times match your clock, "+
			"add teams with /add_favourite_team, then ask /next_match or /today_matches.\n"+
			"Send /help for every command.")
}

func (r *RealTelegramBotAdapter) handleHelpCommand(ctx context.Context, message *tgbotapi.Message) error {
	return r.SendMessage(ctx, message.Chat.ID,
		"Fixtures:\n"+
			"/next_match [team] - nearest upcoming match\n"+
			"/last_match [team] - most recent result\n"+
			"/yesterday_matches /today_matches /tomorrow_matches - day overview\n"+
			"/matches_within <hours> - matches around now, by wall clock\n\n"+
			"Favourites:\n"+
			"/add_favourite_team /remove_favourite_team\n"+
			"/add_favourite_league /remove_favourite_league\n"+
			"/list_favourites\n\n"+
			"Time zones:\n"+
			"/set_main_time_zone /add_time_zone /list_time_zones\n\n"+
			"Notifications:\n"+
			"/subscribe_to_notifications /notif_config\n"+
			"/enable_notif_config <n> /disable_notif_config <n>\n"+
			"/set_daily_notif_time HH:MM\n\n"+
			"Other:\n"+
			"/set_language <code>")
}

func (r *RealTelegramBotAdapter) handleNextMatchCommand(ctx context.Context, message *tgbotapi.Message) error {
	return r.runNextMatch(ctx, message.Chat.ID, message.CommandArguments())
}

func (r *RealTelegramBotAdapter) runNextMatch(ctx context.Context, chatID int64, arg string) error {
	chunks, err := r.facade.HandleNextMatch(ctx, chatID, arg)
	if err != nil {
		return err
	}
	return r.sendChunks(ctx, chatID, chunks)
}

func (r *RealTelegramBotAdapter) handleLastMatchCommand(ctx context.Context, message *tgbotapi.Message) error {
	return r.runLastMatch(ctx, message.Chat.ID, message.CommandArguments())
}

func (r *RealTelegramBotAdapter) runLastMatch(ctx context.Context, chatID int64, arg string) error {
	chunks, err := r.facade.HandleLastMatch(ctx, chatID, arg)
	if err != nil {
		return err
	}
	return r.sendChunks(ctx, chatID, chunks)
}

func (r *RealTelegramBotAdapter) handleMatchesWithinCommand(ctx context.Context, message *tgbotapi.Message) error {
	arg := message.CommandArguments()
	if arg == "" {
		return r.promptFor(ctx, message.Chat.ID, "matches_within", "How many hours around now? Send a number like 3.")
	}
	return r.runMatchesWithin(ctx, message.Chat.ID, arg)
}

func (r *RealTelegramBotAdapter) runMatchesWithin(ctx context.Context, chatID int64, arg string) error {
	chunks, err := r.facade.HandleMatchesWithin(ctx, chatID, arg)
	if err != nil {
		return err
	}
	return r.sendChunks(ctx, chatID, chunks)
}

func (r *RealTelegramBotAdapter) dayMatches(w domain.DayWindow) commandHandler {
	return func(ctx context.Context, message *tgbotapi.Message) error {
		chunks, err := r.facade.HandleDayMatches(ctx, message.Chat.ID, w)
		if err != nil {
			return err
		}
		return r.sendChunks(ctx, message.Chat.ID, chunks)
	}
}

func (r *RealTelegramBotAdapter) handleSubscribeCommand(ctx context.Context, message *tgbotapi.Message) error {
	text, err := r.facade.HandleSubscribe(ctx, message.Chat.ID)
	if err != nil {
		return err
	}
	return r.SendMessage(ctx, message.Chat.ID, text)
}

func (r *RealTelegramBotAdapter) handleNotifConfigCommand(ctx context.Context, message *tgbotapi.Message) error {
	text, err := r.facade.HandleNotifConfig(ctx, message.Chat.ID)
	if err != nil {
		return err
	}

	rows, err := r.facade.SubUC.Config(ctx, message.Chat.ID)
	if err != nil {
		// Not subscribed or lookup failed; the text already says what to do.
		return r.SendMessage(ctx, message.Chat.ID, text)
	}
	buttons := make([][]adapter.InlineButton, 0, len(rows))
	for _, row := range rows {
		n := strconv.Itoa(int(row.Type))
		if row.Enabled {
			buttons = append(buttons, []adapter.InlineButton{
				{Text: "🔕 Disable " + row.Type.String(), Data: "notif:off:" + n},
			})
		} else {
			buttons = append(buttons, []adapter.InlineButton{
				{Text: "🔔 Enable " + row.Type.String(), Data: "notif:on:" + n},
			})
		}
	}
	return r.SendButtons(ctx, message.Chat.ID, text, buttons)
}

func (r *RealTelegramBotAdapter) setEnabled(enabled bool) commandHandler {
	return func(ctx context.Context, message *tgbotapi.Message) error {
		text, err := r.facade.HandleSetEnabled(ctx, message.Chat.ID, message.CommandArguments(), enabled)
		if err != nil {
			return err
		}
		return r.SendMessage(ctx, message.Chat.ID, text)
	}
}

func (r *RealTelegramBotAdapter) handleSetDailyTimeCommand(ctx context.Context, message *tgbotapi.Message) error {
	arg := message.CommandArguments()
	if arg == "" {
		return r.promptFor(ctx, message.Chat.ID, "set_daily_notif_time", "What time should the daily digest arrive? Send HH:MM.")
	}
	text, err := r.facade.HandleSetDailyTime(ctx, message.Chat.ID, arg)
	if err != nil {
		return err
	}
	return r.SendMessage(ctx, message.Chat.ID, text)
}

func (r *RealTelegramBotAdapter) handleSetMainTimeZoneCommand(ctx context.Context, message *tgbotapi.Message) error {
	arg := message.CommandArguments()
	if arg == "" {
		return r.promptFor(ctx, message.Chat.ID, "set_main_time_zone", "Send your time zone as an IANA name, for example Europe/Madrid.")
	}
	text, err := r.facade.HandleSetMainTimeZone(ctx, message.Chat.ID, arg)
	if err != nil {
		return err
	}
	return r.SendMessage(ctx, message.Chat.ID, text)
}

func (r *RealTelegramBotAdapter) handleAddTimeZoneCommand(ctx context.Context, message *tgbotapi.Message) error {
	arg := message.CommandArguments()
	if arg == "" {
		return r.promptFor(ctx, message.Chat.ID, "add_time_zone", "Send the time zone to add, for example America/Sao_Paulo.")
	}
	text, err := r.facade.HandleAddTimeZone(ctx, message.Chat.ID, arg)
	if err != nil {
		return err
	}
	return r.SendMessage(ctx, message.Chat.ID, text)
}

func (r *RealTelegramBotAdapter) handleListTimeZonesCommand(ctx context.Context, message *tgbotapi.Message) error {
	text, err := r.facade.HandleListTimeZones(ctx, message.Chat.ID)
	if err != nil {
		return err
	}
	return r.SendMessage(ctx, message.Chat.ID, text)
}

// favouriteCommand builds a handler that either runs the facade method with
// the inline argument or prompts for it.
func (r *RealTelegramBotAdapter) favouriteCommand(name, prompt string, fn func(ctx context.Context, chatID int64, arg string) (string, error)) commandHandler {
	return func(ctx context.Context, message *tgbotapi.Message) error {
		arg := message.CommandArguments()
		if arg == "" {
			return r.promptFor(ctx, message.Chat.ID, name, prompt)
		}
		text, err := fn(ctx, message.Chat.ID, arg)
		if err != nil {
			return err
		}
		return r.SendMessage(ctx, message.Chat.ID, text)
	}
}

func (r *RealTelegramBotAdapter) handleListFavouritesCommand(ctx context.Context, message *tgbotapi.Message) error {
	text, err := r.facade.HandleListFavourites(ctx, message.Chat.ID)
	if err != nil {
		return err
	}
	return r.SendMessage(ctx, message.Chat.ID, text)
}

func (r *RealTelegramBotAdapter) handleSetLanguageCommand(ctx context.Context, message *tgbotapi.Message) error {
	text, err := r.facade.HandleSetLanguage(ctx, message.Chat.ID, message.CommandArguments())
	if err != nil {
		return err
	}
	return r.SendMessage(ctx, message.Chat.ID, text)
}
