package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"telegram-football-fixtures/internal/domain"
	"telegram-football-fixtures/internal/domain/model"
	"telegram-football-fixtures/internal/domain/ports/adapter"
	"telegram-football-fixtures/internal/domain/ports/repository"
	"telegram-football-fixtures/internal/infra/adapters/translate"
	"telegram-football-fixtures/internal/infra/metrics"
	"telegram-football-fixtures/internal/render"
)

// Compile-time check
var _ NotifierUseCase = (*notifierUC)(nil)

// NotifierUseCase runs the three notification passes. Each pass is a
// run-to-completion unit driven by a sched worker; a failure on one
// chat or fixture is logged and skipped, never aborting the whole pass.
type NotifierUseCase interface {
	// RunDailyDigests sends "today" digests to chats whose configured
	// daily time, in their main zone, is within the firing tolerance of
	// now. Returns the number of chats notified.
	RunDailyDigests(ctx context.Context) (int, error)
	// RunApproach alerts favourite-team subscribers about fixtures
	// starting within the lookahead, once per fixture.
	RunApproach(ctx context.Context) (int, error)
	// RunPlayed alerts favourite-team subscribers about finished fixtures,
	// gated by the persisted played flag. Returns messages sent.
	RunPlayed(ctx context.Context) (int, error)
}

const (
	// dailyTolerance is the half-width of the digest firing window. The
	// driving worker must tick at most once per full window to keep
	// delivery at-most-once; the gate itself holds no digest state.
	dailyTolerance = 5 * time.Minute
	// approachLookahead is how far ahead the approach pass looks.
	approachLookahead = 30 * time.Minute
)

type notifierUC struct {
	fixtures   repository.FixtureRepository
	prefs      repository.PrefsRepository
	sender     adapter.MessageSender
	translator adapter.Translator // optional; nil disables translation
	excluded   []string
	log        *zerolog.Logger
	now        func() time.Time
}

func NewNotifierUseCase(
	fixtures repository.FixtureRepository,
	prefs repository.PrefsRepository,
	sender adapter.MessageSender,
	translator adapter.Translator,
	excludedStatuses []string,
	logger *zerolog.Logger,
) *notifierUC {
	compLog := logger.With().Str("component", "notifier").Logger()
	return &notifierUC{
		fixtures:   fixtures,
		prefs:      prefs,
		sender:     sender,
		translator: translator,
		excluded:   excludedStatuses,
		log:        &compLog,
		now:        time.Now,
	}
}

func (u *notifierUC) RunDailyDigests(ctx context.Context) (int, error) {
	sent := 0
	for _, t := range []model.NotificationType{model.NotifTeamsDaily, model.NotifLeaguesDaily} {
		subs, err := u.prefs.SubscribersOf(ctx, t)
		if err != nil {
			return sent, err
		}
		for _, sub := range subs {
			ok, err := u.digestDue(ctx, sub)
			if err != nil {
				u.log.Error().Err(err).Int64("chat_id", sub.ChatID).Msg("daily window check failed")
				continue
			}
			if !ok {
				continue
			}
			if u.sendDigest(ctx, sub) {
				sent++
				metrics.IncNotification("daily", "sent")
			}
		}
	}
	return sent, nil
}

func (u *notifierUC) digestDue(ctx context.Context, sub *model.NotifSubscription) (bool, error) {
	zone := u.mainZone(ctx, sub.ChatID)
	daily := sub.DailyTime
	if daily == "" {
		daily = model.DefaultDailyTime
	}
	return domain.WithinDailyWindow(u.now(), zone, daily, dailyTolerance)
}

// sendDigest builds and sends one chat's "today" digest; reports whether
// anything went out.
func (u *notifierUC) sendDigest(ctx context.Context, sub *model.NotifSubscription) bool {
	chatID := sub.ChatID
	zone := u.mainZone(ctx, chatID)
	now := u.now()

	pool, err := u.dayPool(ctx, sub, zone, now)
	if err != nil {
		u.log.Error().Err(err).Int64("chat_id", chatID).Msg("digest fixture query failed")
		return false
	}
	if len(pool) == 0 {
		return false
	}

	lang := u.language(ctx, chatID)
	blocks := make([]string, 0, len(pool))
	for _, f := range pool {
		mode := render.Upcoming
		if f.Finished() || f.InProgress() {
			mode = render.Played
		}
		local, err := domain.Localize(f.UTCStart, zone)
		if err != nil {
			local = f.UTCStart
		}
		if lang != "" {
			f = protectNames(f)
		}
		blocks = append(blocks, render.Fixture(f, local, mode))
	}

	header := "📅 Today's matches (" + zone + ")"
	for i, chunk := range render.Batch(blocks, render.BlockSeparator, render.TelegramMessageLimit-len(header)-2) {
		text := chunk
		if i == 0 {
			text = header + render.BlockSeparator + chunk
		}
		if lang != "" {
			text = u.translateText(ctx, chatID, lang, text)
		}
		if err := u.sender.SendMessage(ctx, chatID, text); err != nil {
			u.log.Error().Err(err).Int64("chat_id", chatID).Msg("digest send failed")
			metrics.IncSendFailure("daily")
			return false
		}
	}
	return true
}

// dayPool fetches today's fixtures for the digest's criterion: favourite
// teams for the teams type, favourite leagues for the leagues type.
func (u *notifierUC) dayPool(ctx context.Context, sub *model.NotifSubscription, zone string, now time.Time) ([]*model.Fixture, error) {
	w := domain.WindowToday
	from, to := w.UTCRange(now)
	q := repository.FixtureQuery{From: &from, To: &to}

	switch sub.Type {
	case model.NotifTeamsDaily:
		teams, err := u.prefs.FavouriteTeams(ctx, sub.ChatID)
		if err != nil {
			return nil, err
		}
		if len(teams) == 0 {
			return nil, nil
		}
		for _, t := range teams {
			q.TeamIDs = append(q.TeamIDs, t.ID)
		}
	case model.NotifLeaguesDaily:
		leagues, err := u.prefs.FavouriteLeagues(ctx, sub.ChatID)
		if err != nil {
			return nil, err
		}
		if len(leagues) == 0 {
			return nil, nil
		}
		for _, l := range leagues {
			q.LeagueIDs = append(q.LeagueIDs, l.ID)
		}
	}

	pool, err := u.fixtures.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	pool = domain.Deduplicate(pool)
	pool = domain.ExcludeStatuses(pool, u.excluded)
	pool, err = w.FilterLocalDay(pool, now, zone)
	if err != nil {
		return nil, err
	}
	domain.SortByStart(pool, false)
	return pool, nil
}

func (u *notifierUC) RunApproach(ctx context.Context) (int, error) {
	now := u.now()
	to := now.Add(approachLookahead)
	pool, err := u.fixtures.Query(ctx, repository.FixtureQuery{From: &now, To: &to})
	if err != nil {
		return 0, err
	}

	recipients, err := u.teamRecipients(ctx, model.NotifApproach)
	if err != nil {
		return 0, err
	}

	window := domain.NewLookaheadWindow(now, approachLookahead)
	sent := 0
	for _, f := range pool {
		if f.ApproachNotified || !window.Contains(f.UTCStart) {
			continue
		}
		chatIDs := unionChats(recipients[f.HomeTeamID], recipients[f.AwayTeamID])
		if len(chatIDs) == 0 {
			continue
		}
		delivered := 0
		for _, chatID := range chatIDs {
			if u.sendFixtureAlert(ctx, chatID, f, "⏳ Starting soon", render.Upcoming, "approach") {
				delivered++
			}
		}
		if delivered > 0 {
			sent += delivered
			metrics.IncNotification("approach", "sent")
		}
		if _, err := u.fixtures.MarkApproachNotified(ctx, f.ID); err != nil {
			u.log.Error().Err(err).Int64("fixture_id", f.ID).Msg("mark approach notified failed")
		}
	}
	return sent, nil
}

func (u *notifierUC) RunPlayed(ctx context.Context) (int, error) {
	pool, err := u.fixtures.FinishedUnnotified(ctx)
	if err != nil {
		return 0, err
	}
	if len(pool) == 0 {
		return 0, nil
	}

	recipients, err := u.teamRecipients(ctx, model.NotifPlayed)
	if err != nil {
		return 0, err
	}

	now := u.now()
	sent := 0
	for _, f := range pool {
		if !f.Finished() || !f.UTCStart.Before(now) {
			continue
		}
		chatIDs := unionChats(recipients[f.HomeTeamID], recipients[f.AwayTeamID])
		for _, chatID := range chatIDs {
			if u.sendFixtureAlert(ctx, chatID, f, "🏁 Full time", render.Played, "played") {
				sent++
			}
		}
		// Flag flip is the durable at-most-once guarantee; the conditional
		// update makes overlapping passes safe.
		flipped, err := u.fixtures.MarkPlayedNotified(ctx, f.ID)
		if err != nil {
			u.log.Error().Err(err).Int64("fixture_id", f.ID).Msg("mark played notified failed")
			continue
		}
		if flipped && len(chatIDs) > 0 {
			metrics.IncNotification("played", "sent")
		}
	}
	return sent, nil
}

// sendFixtureAlert renders one fixture in the chat's zone and sends it under
// a short header. Failures are logged and reported as false.
func (u *notifierUC) sendFixtureAlert(ctx context.Context, chatID int64, f *model.Fixture, header string, mode render.Mode, kind string) bool {
	zone := u.mainZone(ctx, chatID)
	local, err := domain.Localize(f.UTCStart, zone)
	if err != nil {
		local = f.UTCStart
	}
	lang := u.language(ctx, chatID)
	rendered := f
	if lang != "" {
		rendered = protectNames(f)
	}
	text := header + "\n\n" + render.Fixture(rendered, local, mode)
	if lang != "" {
		text = u.translateText(ctx, chatID, lang, text)
	}
	send := func() error {
		// Alerts with a league crest go out as a captioned photo.
		if f.League != nil && f.League.LogoURL != "" {
			return u.sender.SendPhoto(ctx, chatID, f.League.LogoURL, text)
		}
		return u.sender.SendMessage(ctx, chatID, text)
	}
	if err := send(); err != nil {
		u.log.Error().Err(err).Int64("chat_id", chatID).Int64("fixture_id", f.ID).Msg("alert send failed")
		metrics.IncSendFailure(kind)
		return false
	}
	return true
}

// teamRecipients maps favourite team id -> chats subscribed and enabled for
// the given type.
func (u *notifierUC) teamRecipients(ctx context.Context, t model.NotificationType) (map[int64][]int64, error) {
	subs, err := u.prefs.SubscribersOf(ctx, t)
	if err != nil {
		return nil, err
	}
	out := make(map[int64][]int64)
	for _, sub := range subs {
		teams, err := u.prefs.FavouriteTeams(ctx, sub.ChatID)
		if err != nil {
			u.log.Error().Err(err).Int64("chat_id", sub.ChatID).Msg("favourite lookup failed")
			continue
		}
		for _, team := range teams {
			out[team.ID] = append(out[team.ID], sub.ChatID)
		}
	}
	return out, nil
}

func (u *notifierUC) mainZone(ctx context.Context, chatID int64) string {
	z, err := u.prefs.MainTimeZone(ctx, chatID)
	if err != nil || z == nil {
		return "UTC"
	}
	return z.Name
}

// language returns the chat's target language, or "" when translation is
// off for this chat or globally.
func (u *notifierUC) language(ctx context.Context, chatID int64) string {
	if u.translator == nil {
		return ""
	}
	lang, err := u.prefs.Language(ctx, chatID)
	if err != nil {
		return ""
	}
	return lang
}

func (u *notifierUC) translateText(ctx context.Context, chatID int64, lang, text string) string {
	out, err := u.translator.Translate(ctx, text, lang)
	if err != nil {
		u.log.Warn().Err(err).Int64("chat_id", chatID).Str("lang", lang).Msg("translation failed, sending original")
		// The fallback must not leak protection markers to the chat.
		return translate.StripMarkers(text)
	}
	return out
}

// protectNames returns a copy of the fixture with team and league names
// wrapped so the translator leaves them alone.
func protectNames(f *model.Fixture) *model.Fixture {
	c := *f
	if f.League != nil {
		l := *f.League
		l.Name = translate.Protect(l.Name)
		c.League = &l
	}
	if f.HomeTeam != nil {
		t := *f.HomeTeam
		t.Name = translate.Protect(t.Name)
		c.HomeTeam = &t
	}
	if f.AwayTeam != nil {
		t := *f.AwayTeam
		t.Name = translate.Protect(t.Name)
		c.AwayTeam = &t
	}
	return &c
}

// unionChats merges two chat lists without duplicates, preserving order.
func unionChats(a, b []int64) []int64 {
	if len(a) == 0 {
		return b
	}
	seen := make(map[int64]struct{}, len(a))
	out := append([]int64(nil), a...)
	for _, id := range a {
		seen[id] = struct{}{}
	}
	for _, id := range b {
		if _, ok := seen[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}
