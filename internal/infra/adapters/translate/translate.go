// Package translate provides an HTTP machine-translation client for outgoing
// notifications. Spans wrapped in <not_translate> tags pass through verbatim,
// which keeps team and league names intact.
package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"telegram-football-fixtures/internal/config"
	"telegram-football-fixtures/internal/domain/ports/adapter"
)

// Client talks to a LibreTranslate-compatible endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	log        *zerolog.Logger
}

var _ adapter.Translator = (*Client)(nil)

func NewClient(cfg config.TranslateConfig, logger *zerolog.Logger) *Client {
	componentLogger := logger.With().Str("component", "translate").Logger()
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:     cfg.Key,
		log:        &componentLogger,
	}
}

type translateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	APIKey string `json:"api_key,omitempty"`
}

type translateResponse struct {
	TranslatedText string `json:"translatedText"`
}

// Translate renders text in targetLang. Protected segments are never sent to
// the service; text that is entirely protected comes back unchanged.
func (c *Client) Translate(ctx context.Context, text, targetLang string) (string, error) {
	segments := splitMarkers(text)
	for i := range segments {
		if segments[i].protected || strings.TrimSpace(segments[i].text) == "" {
			continue
		}
		out, err := c.translateOne(ctx, segments[i].text, targetLang)
		if err != nil {
			return "", err
		}
		segments[i].text = out
	}
	return joinSegments(segments), nil
}

func (c *Client) translateOne(ctx context.Context, text, targetLang string) (string, error) {
	payload, err := json.Marshal(translateRequest{
		Q:      text,
		Source: "auto",
		Target: targetLang,
		APIKey: c.apiKey,
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/translate", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("translate request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translate service returned %d: %s", resp.StatusCode, truncate(body, 200))
	}

	var result translateResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	return result.TranslatedText, nil
}

func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
