// Package application composes use cases into the strings the Telegram
// adapter forwards to chats. Keeping the facade text-in/text-out makes the
// command surface testable without a live bot.
package application

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"telegram-football-fixtures/internal/domain"
	"telegram-football-fixtures/internal/domain/model"
	"telegram-football-fixtures/internal/render"
	"telegram-football-fixtures/internal/usecase"
)

type BotFacade struct {
	FixtureUC usecase.FixtureUseCase
	PrefsUC   usecase.PrefsUseCase
	SubUC     usecase.SubscriptionUseCase
}

func NewBotFacade(fixtureUC usecase.FixtureUseCase, prefsUC usecase.PrefsUseCase, subUC usecase.SubscriptionUseCase) *BotFacade {
	return &BotFacade{FixtureUC: fixtureUC, PrefsUC: prefsUC, SubUC: subUC}
}

// HandleNextMatch answers /next_match. With an argument it looks up that
// team; without one it picks the nearest future fixture per favourite.
func (b *BotFacade) HandleNextMatch(ctx context.Context, chatID int64, arg string) ([]string, error) {
	zone := b.FixtureUC.DisplayZone(ctx, chatID)

	if strings.TrimSpace(arg) != "" {
		f, err := b.FixtureUC.NextMatchForTeam(ctx, chatID, strings.TrimSpace(arg))
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return []string{"No upcoming match found. Check the team name or try again later."}, nil
		case err != nil:
			return nil, err
		}
		return render.Batch(render.Fixtures([]*model.Fixture{f}, zone, render.UpcomingWithDate), render.BlockSeparator, render.TelegramMessageLimit), nil
	}

	fixtures, err := b.FixtureUC.NextForFavourites(ctx, chatID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return []string{"You have no favourites yet. Add some with /add_favourite_team or /add_favourite_league, or pass a team name: /next_match Arsenal"}, nil
	case err != nil:
		return nil, err
	}
	if len(fixtures) == 0 {
		return []string{"No upcoming matches for your favourites."}, nil
	}
	return render.Batch(render.Fixtures(fixtures, zone, render.UpcomingWithDate), render.BlockSeparator, render.TelegramMessageLimit), nil
}

// HandleLastMatch answers /last_match, the mirror of HandleNextMatch.
func (b *BotFacade) HandleLastMatch(ctx context.Context, chatID int64, arg string) ([]string, error) {
	zone := b.FixtureUC.DisplayZone(ctx, chatID)

	if strings.TrimSpace(arg) != "" {
		f, err := b.FixtureUC.LastMatchForTeam(ctx, chatID, strings.TrimSpace(arg))
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return []string{"No recent match found for that team."}, nil
		case err != nil:
			return nil, err
		}
		return render.Batch(render.Fixtures([]*model.Fixture{f}, zone, render.PlayedWithDate), render.BlockSeparator, render.TelegramMessageLimit), nil
	}

	fixtures, err := b.FixtureUC.LastForFavourites(ctx, chatID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return []string{"You have no favourites yet. Add some with /add_favourite_team, or pass a team name: /last_match Arsenal"}, nil
	case err != nil:
		return nil, err
	}
	if len(fixtures) == 0 {
		return []string{"No recent matches for your favourites."}, nil
	}
	return render.Batch(render.Fixtures(fixtures, zone, render.PlayedWithDate), render.BlockSeparator, render.TelegramMessageLimit), nil
}

// HandleDayMatches answers /yesterday_matches, /today_matches and
// /tomorrow_matches via the day-offset surrounding window.
func (b *BotFacade) HandleDayMatches(ctx context.Context, chatID int64, w domain.DayWindow) ([]string, error) {
	fixtures, zone, err := b.FixtureUC.DayMatches(ctx, chatID, w)
	if err != nil {
		return nil, err
	}
	label := map[int]string{-1: "yesterday", 0: "today", 1: "tomorrow"}[w.Target]
	if label == "" {
		label = fmt.Sprintf("%+d days", w.Target)
	}
	if len(fixtures) == 0 {
		return []string{fmt.Sprintf("No matches %s (%s).", label, zone)}, nil
	}

	mode := render.Upcoming
	if w.Target < 0 {
		mode = render.Played
	}
	header := fmt.Sprintf("📅 Matches %s (%s)", label, zone)
	blocks := render.Fixtures(fixtures, zone, mode)
	chunks := render.Batch(blocks, render.BlockSeparator, render.TelegramMessageLimit-len(header)-2)
	out := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		if i == 0 {
			chunk = header + render.BlockSeparator + chunk
		}
		out = append(out, chunk)
	}
	return out, nil
}

// HandleMatchesWithin answers /matches_within: fixtures whose wall-clock
// start falls within the given number of hours around now, midnight
// wraparound included.
func (b *BotFacade) HandleMatchesWithin(ctx context.Context, chatID int64, arg string) ([]string, error) {
	hours, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || hours == 0 {
		return []string{"Pass a number of hours, for example /matches_within 3."}, nil
	}
	if hours < 0 {
		hours = -hours
	}
	if hours > 12 {
		// Beyond 12 the wall-clock window covers the whole day anyway.
		hours = 12
	}

	fixtures, err := b.FixtureUC.WithinHours(ctx, chatID, hours)
	if err != nil {
		return nil, err
	}
	zone := b.FixtureUC.DisplayZone(ctx, chatID)
	if len(fixtures) == 0 {
		return []string{fmt.Sprintf("No matches within %d hours of now (%s).", hours, zone)}, nil
	}

	blocks := make([]string, 0, len(fixtures))
	for _, f := range fixtures {
		mode := render.Upcoming
		if f.Finished() || f.InProgress() {
			mode = render.Played
		}
		local, lerr := domain.Localize(f.UTCStart, zone)
		if lerr != nil {
			local = f.UTCStart
		}
		blocks = append(blocks, render.Fixture(f, local, mode))
	}
	header := fmt.Sprintf("🕑 Matches within %d hours (%s)", hours, zone)
	chunks := render.Batch(blocks, render.BlockSeparator, render.TelegramMessageLimit-len(header)-2)
	out := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		if i == 0 {
			chunk = header + render.BlockSeparator + chunk
		}
		out = append(out, chunk)
	}
	return out, nil
}

// HandleSubscribe answers /subscribe_to_notifications.
func (b *BotFacade) HandleSubscribe(ctx context.Context, chatID int64) (string, error) {
	err := b.SubUC.Subscribe(ctx, chatID)
	switch {
	case errors.Is(err, domain.ErrAlreadySubscribed):
		return "You are already subscribed. Use /notif_config to review your settings.", nil
	case err != nil:
		return "", err
	}
	return "Subscribed! You will get daily digests, pre-match alerts and full-time results for your favourites.\nTune them with /enable_notif_config and /disable_notif_config.", nil
}

// HandleSetEnabled answers /enable_notif_config and /disable_notif_config.
func (b *BotFacade) HandleSetEnabled(ctx context.Context, chatID int64, arg string, enabled bool) (string, error) {
	t, err := parseNotifType(arg)
	if err != nil {
		return "Pass a notification type number. Use /notif_config to see yours.", nil
	}
	if enabled {
		err = b.SubUC.Enable(ctx, chatID, t)
	} else {
		err = b.SubUC.Disable(ctx, chatID, t)
	}
	switch {
	case errors.Is(err, domain.ErrNotSubscribed):
		return fmt.Sprintf("Type %d is not in your subscription set. Subscribe first with /subscribe_to_notifications.", int(t)), nil
	case err != nil:
		return "", err
	}
	state := "disabled"
	if enabled {
		state = "enabled"
	}
	return fmt.Sprintf("✅ %s is now %s.", t.String(), state), nil
}

// HandleSetDailyTime answers /set_daily_notif_time.
func (b *BotFacade) HandleSetDailyTime(ctx context.Context, chatID int64, arg string) (string, error) {
	err := b.SubUC.SetDailyTime(ctx, chatID, strings.TrimSpace(arg))
	switch {
	case errors.Is(err, domain.ErrInvalidDailyTime):
		return "That does not look like a time. Use HH:MM, for example 08:30.", nil
	case errors.Is(err, domain.ErrNotSubscribed):
		return "Subscribe first with /subscribe_to_notifications.", nil
	case err != nil:
		return "", err
	}
	return fmt.Sprintf("Daily digests will arrive around %s in your main time zone.", strings.TrimSpace(arg)), nil
}

// HandleNotifConfig answers /notif_config.
func (b *BotFacade) HandleNotifConfig(ctx context.Context, chatID int64) (string, error) {
	rows, err := b.SubUC.Config(ctx, chatID)
	switch {
	case errors.Is(err, domain.ErrNotSubscribed):
		return "You are not subscribed yet. Start with /subscribe_to_notifications.", nil
	case err != nil:
		return "", err
	}
	var sb strings.Builder
	sb.WriteString("Your notification settings:\n")
	for _, row := range rows {
		state := "off"
		if row.Enabled {
			state = "on"
		}
		sb.WriteString(fmt.Sprintf("%d. %s — %s", int(row.Type), row.Type.String(), state))
		if row.Type.Daily() {
			daily := row.DailyTime
			if daily == "" {
				daily = model.DefaultDailyTime
			}
			sb.WriteString(" at " + daily)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\nToggle with /enable_notif_config <n> or /disable_notif_config <n>.")
	return sb.String(), nil
}

// HandleSetMainTimeZone answers /set_main_time_zone.
func (b *BotFacade) HandleSetMainTimeZone(ctx context.Context, chatID int64, arg string) (string, error) {
	zone := strings.TrimSpace(arg)
	err := b.PrefsUC.SetMainTimeZone(ctx, chatID, zone)
	switch {
	case errors.Is(err, domain.ErrUnknownTimeZone):
		return fmt.Sprintf("%q is not a recognized time zone. Use an IANA name like Europe/Madrid.", zone), nil
	case err != nil:
		return "", err
	}
	return fmt.Sprintf("Main time zone set to %s.", zone), nil
}

// HandleAddTimeZone answers /add_time_zone.
func (b *BotFacade) HandleAddTimeZone(ctx context.Context, chatID int64, arg string) (string, error) {
	zone := strings.TrimSpace(arg)
	err := b.PrefsUC.AddTimeZone(ctx, chatID, zone)
	switch {
	case errors.Is(err, domain.ErrUnknownTimeZone):
		return fmt.Sprintf("%q is not a recognized time zone. Use an IANA name like Europe/Madrid.", zone), nil
	case err != nil:
		return "", err
	}
	return fmt.Sprintf("Added time zone %s.", zone), nil
}

// HandleListTimeZones answers /list_time_zones.
func (b *BotFacade) HandleListTimeZones(ctx context.Context, chatID int64) (string, error) {
	zones, err := b.PrefsUC.ListTimeZones(ctx, chatID)
	if err != nil {
		return "", err
	}
	if len(zones) == 0 {
		return "No time zones configured; UTC is used. Set one with /set_main_time_zone.", nil
	}
	var sb strings.Builder
	sb.WriteString("Your time zones:\n")
	for _, z := range zones {
		sb.WriteString("- " + z.Name)
		if z.Main {
			sb.WriteString(" (main)")
		}
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// HandleAddFavouriteTeam answers /add_favourite_team.
func (b *BotFacade) HandleAddFavouriteTeam(ctx context.Context, chatID int64, arg string) (string, error) {
	team, err := b.PrefsUC.AddFavouriteTeam(ctx, chatID, arg)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "Team not found. Pass the exact name or a numeric id.", nil
	case errors.Is(err, domain.ErrDuplicateFavourite):
		return "That team is already among your favourites.", nil
	case errors.Is(err, domain.ErrInvalidArgument):
		return "Pass a team name or id: /add_favourite_team Arsenal", nil
	case err != nil:
		return "", err
	}
	return fmt.Sprintf("⭐ %s added to your favourite teams.", team.Name), nil
}

// HandleRemoveFavouriteTeam answers /remove_favourite_team.
func (b *BotFacade) HandleRemoveFavouriteTeam(ctx context.Context, chatID int64, arg string) (string, error) {
	team, err := b.PrefsUC.RemoveFavouriteTeam(ctx, chatID, arg)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "That team is not among your favourites.", nil
	case errors.Is(err, domain.ErrInvalidArgument):
		return "Pass a team name or id: /remove_favourite_team Arsenal", nil
	case err != nil:
		return "", err
	}
	return fmt.Sprintf("%s removed from your favourite teams.", team.Name), nil
}

// HandleListFavourites answers /list_favourites with both kinds.
func (b *BotFacade) HandleListFavourites(ctx context.Context, chatID int64) (string, error) {
	teams, err := b.PrefsUC.ListFavouriteTeams(ctx, chatID)
	if err != nil {
		return "", err
	}
	leagues, err := b.PrefsUC.ListFavouriteLeagues(ctx, chatID)
	if err != nil {
		return "", err
	}
	if len(teams) == 0 && len(leagues) == 0 {
		return "No favourites yet. Add some with /add_favourite_team or /add_favourite_league.", nil
	}
	var sb strings.Builder
	if len(teams) > 0 {
		sb.WriteString("Favourite teams:\n")
		for _, t := range teams {
			sb.WriteString(fmt.Sprintf("- %s (%d)\n", t.Name, t.ID))
		}
	}
	if len(leagues) > 0 {
		sb.WriteString("Favourite leagues:\n")
		for _, l := range leagues {
			sb.WriteString(fmt.Sprintf("- %s (%d)\n", l.Name, l.ID))
		}
	}
	return sb.String(), nil
}

// HandleAddFavouriteLeague answers /add_favourite_league.
func (b *BotFacade) HandleAddFavouriteLeague(ctx context.Context, chatID int64, arg string) (string, error) {
	league, err := b.PrefsUC.AddFavouriteLeague(ctx, chatID, arg)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "League not found. Pass the exact name or a numeric id.", nil
	case errors.Is(err, domain.ErrDuplicateFavourite):
		return "That league is already among your favourites.", nil
	case errors.Is(err, domain.ErrInvalidArgument):
		return "Pass a league name or id: /add_favourite_league Premier League", nil
	case err != nil:
		return "", err
	}
	return fmt.Sprintf("⭐ %s added to your favourite leagues.", league.Name), nil
}

// HandleRemoveFavouriteLeague answers /remove_favourite_league.
func (b *BotFacade) HandleRemoveFavouriteLeague(ctx context.Context, chatID int64, arg string) (string, error) {
	league, err := b.PrefsUC.RemoveFavouriteLeague(ctx, chatID, arg)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "That league is not among your favourites.", nil
	case errors.Is(err, domain.ErrInvalidArgument):
		return "Pass a league name or id: /remove_favourite_league Premier League", nil
	case err != nil:
		return "", err
	}
	return fmt.Sprintf("%s removed from your favourite leagues.", league.Name), nil
}

// HandleSetLanguage answers /set_language.
func (b *BotFacade) HandleSetLanguage(ctx context.Context, chatID int64, arg string) (string, error) {
	lang := strings.TrimSpace(arg)
	if err := b.PrefsUC.SetLanguage(ctx, chatID, lang); err != nil {
		if errors.Is(err, domain.ErrInvalidArgument) {
			return "Pass a two-letter language code like es, or nothing to reset.", nil
		}
		return "", err
	}
	if lang == "" {
		return "Translation disabled.", nil
	}
	return fmt.Sprintf("Notifications will be translated to %q.", lang), nil
}

func parseNotifType(arg string) (model.NotificationType, error) {
	arg = strings.TrimSpace(arg)
	var n int
	if _, err := fmt.Sscanf(arg, "%d", &n); err != nil {
		return 0, domain.ErrInvalidArgument
	}
	return model.NotificationType(n), nil
}
