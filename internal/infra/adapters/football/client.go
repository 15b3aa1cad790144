// Package football provides the HTTP client for the API-Football v3 service.
//
// API-Football uses header-based auth (x-apisports-key), page-based
// pagination and a common {errors, paging, response} envelope.
package football

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"telegram-football-fixtures/internal/config"
	"telegram-football-fixtures/internal/domain/model"
	"telegram-football-fixtures/internal/domain/ports/adapter"
)

// Client is the HTTP client for API-Football endpoints.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
	log        *zerolog.Logger
}

var _ adapter.FootballDataProvider = (*Client)(nil)

// NewClient creates an API-Football client with request pacing.
func NewClient(cfg config.FootballAPIConfig, logger *zerolog.Logger) *Client {
	rps := float64(cfg.RequestsPerMinute) / 60.0
	componentLogger := logger.With().Str("component", "football_api").Logger()
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.Key,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		log:        &componentLogger,
	}
}

// Leagues lists the leagues of one country.
func (c *Client) Leagues(ctx context.Context, country string) ([]*model.League, error) {
	params := url.Values{}
	if country != "" {
		params.Set("country", country)
	}
	entries, err := getPaginated[leagueEntry](ctx, c, "/leagues", params)
	if err != nil {
		return nil, err
	}
	leagues := make([]*model.League, 0, len(entries))
	for _, e := range entries {
		leagues = append(leagues, &model.League{
			ID:      e.League.ID,
			Name:    e.League.Name,
			Country: e.Country.Name,
			LogoURL: e.League.Logo,
		})
	}
	return leagues, nil
}

// Teams lists the teams playing a league season.
func (c *Client) Teams(ctx context.Context, leagueID int64, season int) ([]*model.Team, error) {
	params := url.Values{}
	params.Set("league", strconv.FormatInt(leagueID, 10))
	params.Set("season", strconv.Itoa(season))
	entries, err := getPaginated[teamEntry](ctx, c, "/teams", params)
	if err != nil {
		return nil, err
	}
	teams := make([]*model.Team, 0, len(entries))
	for _, e := range entries {
		teams = append(teams, &model.Team{
			ID:      e.Team.ID,
			Name:    e.Team.Name,
			Country: e.Team.Country,
			LogoURL: e.Team.Logo,
		})
	}
	return teams, nil
}

// Fixtures lists the fixtures of a league season inside [from, to].
func (c *Client) Fixtures(ctx context.Context, leagueID int64, season int, from, to time.Time) ([]*model.Fixture, error) {
	params := url.Values{}
	params.Set("league", strconv.FormatInt(leagueID, 10))
	params.Set("season", strconv.Itoa(season))
	params.Set("from", from.UTC().Format("2006-01-02"))
	params.Set("to", to.UTC().Format("2006-01-02"))
	entries, err := getPaginated[fixtureEntry](ctx, c, "/fixtures", params)
	if err != nil {
		return nil, err
	}

	fixtures := make([]*model.Fixture, 0, len(entries))
	for _, e := range entries {
		start, err := time.Parse(time.RFC3339, e.Fixture.Date)
		if err != nil {
			c.log.Warn().Int64("fixture_id", e.Fixture.ID).Str("date", e.Fixture.Date).Msg("skipping fixture with unparseable date")
			continue
		}
		fixtures = append(fixtures, &model.Fixture{
			ID:            e.Fixture.ID,
			UTCStart:      start.UTC(),
			LeagueID:      e.League.ID,
			Round:         e.League.Round,
			HomeTeamID:    e.Teams.Home.ID,
			AwayTeamID:    e.Teams.Away.ID,
			Venue:         e.Fixture.Venue.Name,
			Referee:       e.Fixture.Referee,
			Status:        e.Fixture.Status.Long,
			HomeScore:     e.Goals.Home,
			AwayScore:     e.Goals.Away,
			HomePenalty:   e.Score.Penalty.Home,
			AwayPenalty:   e.Score.Penalty.Away,
			League:        &model.League{ID: e.League.ID, Name: e.League.Name},
			HomeTeam:      &model.Team{ID: e.Teams.Home.ID, Name: e.Teams.Home.Name, LogoURL: e.Teams.Home.Logo},
			AwayTeam:      &model.Team{ID: e.Teams.Away.ID, Name: e.Teams.Away.Name, LogoURL: e.Teams.Away.Logo},
		})
	}
	return fixtures, nil
}

// get performs one rate-limited GET request against the API.
func get[T any](ctx context.Context, c *Client, path string, params url.Values) (*envelope[T], error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("x-apisports-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("football api %s returned %d: %s", path, resp.StatusCode, truncate(body, 200))
	}

	var result envelope[T]
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &result, nil
}

// getPaginated fetches every page of an endpoint.
func getPaginated[T any](ctx context.Context, c *Client, path string, params url.Values) ([]T, error) {
	if params == nil {
		params = url.Values{}
	}

	var all []T
	page := 1
	for {
		if page > 1 {
			params.Set("page", strconv.Itoa(page))
		}
		resp, err := get[T](ctx, c, path, params)
		if err != nil {
			return nil, err
		}
		all = append(all, resp.Response...)

		if resp.Paging.Total <= resp.Paging.Current {
			break
		}
		page = resp.Paging.Current + 1
	}
	return all, nil
}

// truncate keeps response bodies out of error messages past a point.
func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
