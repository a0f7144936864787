package keyforge

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultDokBaseURL   = "https://decksofkeyforge.com"
	defaultVaultBaseURL = "https://www.keyforgegame.com"
)

// Client talks to the two external KeyForge sources: the DoK public API
// (deck quality stats, requires an API key) and the Master Vault API (card
// and house data, unauthenticated).
type Client struct {
	DokBaseURL   string
	VaultBaseURL string
	apiKey       string
	httpClient   *http.Client
	limiter      *rate.Limiter
}

func NewClient(dokAPIKey string) *Client {
	return &Client{
		DokBaseURL:   defaultDokBaseURL,
		VaultBaseURL: defaultVaultBaseURL,
		apiKey:       dokAPIKey,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		limiter:      rate.NewLimiter(rate.Every(100*time.Millisecond), 1),
	}
}

// DokDeck fetches the DoK payload for one deck. Without an API key DoK
// enrichment is skipped entirely and the deck ranks at percentile zero.
func (c *Client) DokDeck(ctx context.Context, deckID string) (map[string]any, error) {
	if c.apiKey == "" {
		return map[string]any{}, nil
	}
	var out map[string]any
	url := fmt.Sprintf("%s/public-api/v3/decks/%s", c.DokBaseURL, deckID)
	if err := c.getJSON(ctx, url, true, &out); err != nil {
		return nil, fmt.Errorf("fetching DoK deck %s: %w", deckID, err)
	}
	return out, nil
}

// DokStats fetches the global deck-population statistics.
func (c *Client) DokStats(ctx context.Context) (Baseline, error) {
	if c.apiKey == "" {
		return Baseline{}, nil
	}
	var out Baseline
	url := c.DokBaseURL + "/public-api/v1/stats"
	if err := c.getJSON(ctx, url, true, &out); err != nil {
		return nil, fmt.Errorf("fetching DoK stats: %w", err)
	}
	return out, nil
}

// VaultDeck fetches the Master Vault payload with cards and houses linked.
func (c *Client) VaultDeck(ctx context.Context, deckID string) (*VaultData, error) {
	var out VaultData
	url := fmt.Sprintf("%s/api/decks/%s/?links=cards,notes", c.VaultBaseURL, deckID)
	if err := c.getJSON(ctx, url, false, &out); err != nil {
		return nil, fmt.Errorf("fetching vault deck %s: %w", deckID, err)
	}
	return &out, nil
}

func (c *Client) getJSON(ctx context.Context, url string, authed bool, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if authed {
		req.Header.Set("Api-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}
