//go:build !integration

package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v4"

	"telegram-football-fixtures/internal/domain"
	"telegram-football-fixtures/internal/domain/model"
	"telegram-football-fixtures/internal/domain/ports/adapter"
	"telegram-football-fixtures/internal/domain/ports/repository"
)

// ---- fixture repository ----

type mockFixtureRepo struct {
	fixtures []*model.Fixture

	QueryFunc              func(ctx context.Context, q repository.FixtureQuery) ([]*model.Fixture, error)
	FinishedUnnotifiedFunc func(ctx context.Context) ([]*model.Fixture, error)
}

var _ repository.FixtureRepository = (*mockFixtureRepo)(nil)

func (m *mockFixtureRepo) Query(ctx context.Context, q repository.FixtureQuery) ([]*model.Fixture, error) {
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, q)
	}
	var out []*model.Fixture
	for _, f := range m.fixtures {
		if q.From != nil && f.UTCStart.Before(*q.From) {
			continue
		}
		if q.To != nil && !f.UTCStart.Before(*q.To) {
			continue
		}
		if len(q.TeamIDs) > 0 && !containsID(q.TeamIDs, f.HomeTeamID) && !containsID(q.TeamIDs, f.AwayTeamID) {
			continue
		}
		if len(q.LeagueIDs) > 0 && !containsID(q.LeagueIDs, f.LeagueID) {
			continue
		}
		out = append(out, f)
	}
	domainSort(out, q.OrderDesc)
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (m *mockFixtureRepo) FindByID(ctx context.Context, id int64) (*model.Fixture, error) {
	for _, f := range m.fixtures {
		if f.ID == id {
			return f, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockFixtureRepo) FinishedUnnotified(ctx context.Context) ([]*model.Fixture, error) {
	if m.FinishedUnnotifiedFunc != nil {
		return m.FinishedUnnotifiedFunc(ctx)
	}
	var out []*model.Fixture
	for _, f := range m.fixtures {
		if f.Finished() && !f.PlayedNotified {
			out = append(out, f)
		}
	}
	return out, nil
}

func (m *mockFixtureRepo) MarkPlayedNotified(ctx context.Context, fixtureID int64) (bool, error) {
	for _, f := range m.fixtures {
		if f.ID == fixtureID {
			if f.PlayedNotified {
				return false, nil
			}
			f.PlayedNotified = true
			return true, nil
		}
	}
	return false, domain.ErrNotFound
}

func (m *mockFixtureRepo) MarkApproachNotified(ctx context.Context, fixtureID int64) (bool, error) {
	for _, f := range m.fixtures {
		if f.ID == fixtureID {
			if f.ApproachNotified {
				return false, nil
			}
			f.ApproachNotified = true
			return true, nil
		}
	}
	return false, domain.ErrNotFound
}

func (m *mockFixtureRepo) Upsert(ctx context.Context, f *model.Fixture) error {
	for i, existing := range m.fixtures {
		if existing.ID == f.ID {
			m.fixtures[i] = f
			return nil
		}
	}
	m.fixtures = append(m.fixtures, f)
	return nil
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func domainSort(fs []*model.Fixture, desc bool) {
	domain.SortByStart(fs, desc)
}

// ---- reference repository ----

type mockReferenceRepo struct {
	teams   []*model.Team
	leagues []*model.League
}

var _ repository.ReferenceRepository = (*mockReferenceRepo)(nil)

func (m *mockReferenceRepo) FindTeamByID(ctx context.Context, id int64) (*model.Team, error) {
	for _, t := range m.teams {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockReferenceRepo) FindTeamByName(ctx context.Context, name string) (*model.Team, error) {
	for _, t := range m.teams {
		if strings.EqualFold(t.Name, name) {
			return t, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockReferenceRepo) FindLeagueByID(ctx context.Context, id int64) (*model.League, error) {
	for _, l := range m.leagues {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockReferenceRepo) FindLeagueByName(ctx context.Context, name string) (*model.League, error) {
	for _, l := range m.leagues {
		if strings.EqualFold(l.Name, name) {
			return l, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockReferenceRepo) UpsertTeam(ctx context.Context, t *model.Team) error {
	m.teams = append(m.teams, t)
	return nil
}

func (m *mockReferenceRepo) UpsertLeague(ctx context.Context, l *model.League) error {
	m.leagues = append(m.leagues, l)
	return nil
}

// ---- prefs repository ----

type mockPrefsRepo struct {
	zones      map[int64][]*model.UserTimeZone
	favTeams   map[int64][]*model.Team
	favLeagues map[int64][]*model.League
	subs       map[int64][]*model.NotifSubscription
	langs      map[int64]string

	SubscribersOfFunc func(ctx context.Context, t model.NotificationType) ([]*model.NotifSubscription, error)
}

var _ repository.PrefsRepository = (*mockPrefsRepo)(nil)

func newMockPrefsRepo() *mockPrefsRepo {
	return &mockPrefsRepo{
		zones:      map[int64][]*model.UserTimeZone{},
		favTeams:   map[int64][]*model.Team{},
		favLeagues: map[int64][]*model.League{},
		subs:       map[int64][]*model.NotifSubscription{},
		langs:      map[int64]string{},
	}
}

func (m *mockPrefsRepo) TimeZones(ctx context.Context, chatID int64) ([]*model.UserTimeZone, error) {
	return m.zones[chatID], nil
}

func (m *mockPrefsRepo) MainTimeZone(ctx context.Context, chatID int64) (*model.UserTimeZone, error) {
	for _, z := range m.zones[chatID] {
		if z.Main {
			return z, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockPrefsRepo) SaveTimeZone(ctx context.Context, tx repository.Tx, z *model.UserTimeZone) error {
	if z.Main {
		for _, existing := range m.zones[z.ChatID] {
			existing.Main = false
		}
	}
	for i, existing := range m.zones[z.ChatID] {
		if existing.Name == z.Name {
			m.zones[z.ChatID][i] = z
			return nil
		}
	}
	m.zones[z.ChatID] = append(m.zones[z.ChatID], z)
	return nil
}

func (m *mockPrefsRepo) FavouriteTeams(ctx context.Context, chatID int64) ([]*model.Team, error) {
	return m.favTeams[chatID], nil
}

func (m *mockPrefsRepo) FavouriteLeagues(ctx context.Context, chatID int64) ([]*model.League, error) {
	return m.favLeagues[chatID], nil
}

func (m *mockPrefsRepo) AddFavouriteTeam(ctx context.Context, chatID, teamID int64) error {
	for _, t := range m.favTeams[chatID] {
		if t.ID == teamID {
			return domain.ErrDuplicateFavourite
		}
	}
	m.favTeams[chatID] = append(m.favTeams[chatID], &model.Team{ID: teamID})
	return nil
}

func (m *mockPrefsRepo) RemoveFavouriteTeam(ctx context.Context, chatID, teamID int64) error {
	for i, t := range m.favTeams[chatID] {
		if t.ID == teamID {
			m.favTeams[chatID] = append(m.favTeams[chatID][:i], m.favTeams[chatID][i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *mockPrefsRepo) AddFavouriteLeague(ctx context.Context, chatID, leagueID int64) error {
	for _, l := range m.favLeagues[chatID] {
		if l.ID == leagueID {
			return domain.ErrDuplicateFavourite
		}
	}
	m.favLeagues[chatID] = append(m.favLeagues[chatID], &model.League{ID: leagueID})
	return nil
}

func (m *mockPrefsRepo) RemoveFavouriteLeague(ctx context.Context, chatID, leagueID int64) error {
	for i, l := range m.favLeagues[chatID] {
		if l.ID == leagueID {
			m.favLeagues[chatID] = append(m.favLeagues[chatID][:i], m.favLeagues[chatID][i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *mockPrefsRepo) Subscriptions(ctx context.Context, chatID int64) ([]*model.NotifSubscription, error) {
	return m.subs[chatID], nil
}

func (m *mockPrefsRepo) SaveSubscription(ctx context.Context, tx repository.Tx, s *model.NotifSubscription) error {
	for i, existing := range m.subs[s.ChatID] {
		if existing.Type == s.Type {
			m.subs[s.ChatID][i] = s
			return nil
		}
	}
	m.subs[s.ChatID] = append(m.subs[s.ChatID], s)
	return nil
}

func (m *mockPrefsRepo) SubscribersOf(ctx context.Context, t model.NotificationType) ([]*model.NotifSubscription, error) {
	if m.SubscribersOfFunc != nil {
		return m.SubscribersOfFunc(ctx, t)
	}
	var out []*model.NotifSubscription
	for _, rows := range m.subs {
		for _, row := range rows {
			if row.Type == t && row.Enabled {
				out = append(out, row)
			}
		}
	}
	return out, nil
}

func (m *mockPrefsRepo) Language(ctx context.Context, chatID int64) (string, error) {
	return m.langs[chatID], nil
}

func (m *mockPrefsRepo) SaveLanguage(ctx context.Context, chatID int64, lang string) error {
	m.langs[chatID] = lang
	return nil
}

// ---- transaction manager ----

type mockTxManager struct{}

var _ repository.TransactionManager = (*mockTxManager)(nil)

func (m *mockTxManager) WithTx(ctx context.Context, opts pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	return fn(ctx, repository.NoTX)
}

// ---- message sender ----

type sentMessage struct {
	chatID int64
	text   string
}

type mockSender struct {
	sent     []sentMessage
	SendFunc func(ctx context.Context, chatID int64, text string) error
}

var _ adapter.MessageSender = (*mockSender)(nil)

func (m *mockSender) SendMessage(ctx context.Context, chatID int64, text string) error {
	if m.SendFunc != nil {
		if err := m.SendFunc(ctx, chatID, text); err != nil {
			return err
		}
	}
	m.sent = append(m.sent, sentMessage{chatID: chatID, text: text})
	return nil
}

func (m *mockSender) SendPhoto(ctx context.Context, chatID int64, photoURL, caption string) error {
	return m.SendMessage(ctx, chatID, caption)
}

func (m *mockSender) SendButtons(ctx context.Context, chatID int64, text string, rows [][]adapter.InlineButton) error {
	return m.SendMessage(ctx, chatID, text)
}

// ---- translator ----

type mockTranslator struct {
	TranslateFunc func(ctx context.Context, text, targetLang string) (string, error)
}

func (m *mockTranslator) Translate(ctx context.Context, text, targetLang string) (string, error) {
	if m.TranslateFunc != nil {
		return m.TranslateFunc(ctx, text, targetLang)
	}
	return "[" + targetLang + "] " + text, nil
}

// ---- shared helpers ----

func fx(id int64, start time.Time) *model.Fixture {
	return &model.Fixture{
		ID:         id,
		UTCStart:   start,
		LeagueID:   1,
		HomeTeamID: id * 10,
		AwayTeamID: id*10 + 1,
		Status:     "Not Started",
	}
}

func finishedFx(id int64, start time.Time, home, away int) *model.Fixture {
	f := fx(id, start)
	f.Status = "Match Finished"
	f.HomeScore = &home
	f.AwayScore = &away
	return f
}
