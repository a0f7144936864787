package fab

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/decklock/decklock/internal/cards"
)

const defaultBaseURL = "https://fabdb.net"

// Record is the normalized FaB card shape kept in the cache. The fabdb API
// reports stats as numbers or strings depending on the card, so numeric
// fields stay json.Number.
type Record struct {
	Identifier string   `json:"identifier,omitempty"`
	Name       string   `json:"name,omitempty"`
	Rarity     string   `json:"rarity,omitempty"`
	Text       string   `json:"text,omitempty"`
	Keywords   []string `json:"keywords,omitempty"`
	Stats      Stats    `json:"stats,omitempty"`
	Image      string   `json:"image,omitempty"`
	// ImagePath is the derived local asset path, filled in at assembly.
	ImagePath string `json:"image_path,omitempty"`
}

// Stats carries the printed card numbers. Resource is the pitch value the
// display color derives from.
type Stats struct {
	Cost     json.Number `json:"cost,omitempty"`
	Attack   json.Number `json:"attack,omitempty"`
	Defense  json.Number `json:"defense,omitempty"`
	Resource json.Number `json:"resource,omitempty"`
}

var nonLookupRunes = regexp.MustCompile(`[^a-z ]`)

// NameToKey converts a card name to its fabdb lookup key: lower-cased,
// the "(undefined)" pitch suffix dropped, non-letters stripped, spaces to
// hyphens.
func NameToKey(name string) string {
	key := strings.ReplaceAll(strings.ToLower(name), " (undefined)", "")
	key = nonLookupRunes.ReplaceAllString(key, "")
	return strings.ReplaceAll(key, " ", "-")
}

// Client queries the fabdb card API with a courtesy throttle.
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

// Fetch looks a card up by normalized name key. A 404 maps to the soft
// not-found failure; other non-2xx statuses are transport errors.
func (c *Client) Fetch(ctx context.Context, name, qualifier string) (Record, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return Record{}, fmt.Errorf("rate limiter: %w", err)
	}

	url := fmt.Sprintf("%s/api/cards/%s", c.BaseURL, NameToKey(name))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Record{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Record{}, fmt.Errorf("fabdb request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return Record{}, fmt.Errorf("reading fabdb response: %w", err)
		}
		var rec Record
		if err := json.Unmarshal(body, &rec); err != nil {
			return Record{}, fmt.Errorf("parsing fabdb response: %w", err)
		}
		if rec.Name == "" {
			return Record{}, &cards.NotFoundError{Name: name}
		}
		return rec, nil
	case http.StatusNotFound:
		return Record{}, &cards.NotFoundError{Name: name}
	default:
		return Record{}, fmt.Errorf("fabdb returned status %d for %q", resp.StatusCode, name)
	}
}
