package mtg

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/decklock/decklock/internal/cards"
)

const defaultBaseURL = "https://api.scryfall.com"

// Record is the normalized MTG card shape kept in the cache, a subset of
// the Scryfall card object. Older cache files may predate some fields;
// absent fields unmarshal to their zero values and downstream code treats
// them as empty.
type Record struct {
	Name      string    `json:"name,omitempty"`
	ManaCost  string    `json:"mana_cost,omitempty"`
	CMC       float64   `json:"cmc,omitempty"`
	TypeLine  string    `json:"type_line,omitempty"`
	Colors    []string  `json:"colors,omitempty"`
	Rarity    string    `json:"rarity,omitempty"`
	Set       string    `json:"set,omitempty"`
	ImageURIs ImageURIs `json:"image_uris,omitempty"`
	// ImagePath is the derived local asset path, filled in at assembly.
	ImagePath string `json:"local_path,omitempty"`
}

// ImageURIs carries the Scryfall image variants the site uses.
type ImageURIs struct {
	Normal     string `json:"normal,omitempty"`
	BorderCrop string `json:"border_crop,omitempty"`
}

// Client queries the Scryfall fuzzy-named endpoint with a courtesy throttle.
type Client struct {
	BaseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewClient() *Client {
	return &Client{
		BaseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(rate.Every(100*time.Millisecond), 1),
	}
}

// Fetch resolves a card by fuzzy name, optionally scoped to a set code.
// Scryfall answers 404 for unknown names; that is the soft not-found case.
func (c *Client) Fetch(ctx context.Context, name, setCode string) (Record, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return Record{}, fmt.Errorf("rate limiter: %w", err)
	}

	query := url.Values{}
	query.Set("fuzzy", name)
	if setCode != "" {
		query.Set("set", setCode)
	}
	reqURL := fmt.Sprintf("%s/cards/named?%s", c.BaseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Record{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Record{}, fmt.Errorf("scryfall request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return Record{}, fmt.Errorf("reading scryfall response: %w", err)
		}
		var rec Record
		if err := json.Unmarshal(body, &rec); err != nil {
			return Record{}, fmt.Errorf("parsing scryfall response: %w", err)
		}
		return rec, nil
	case http.StatusNotFound:
		return Record{}, &cards.NotFoundError{Name: name, Qualifier: setCode}
	default:
		return Record{}, fmt.Errorf("scryfall returned status %d for %q", resp.StatusCode, name)
	}
}
