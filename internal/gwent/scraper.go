package gwent

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://gwent.one"

// Record is the normalized Gwent card shape kept in the cache. All numeric
// attributes stay strings because they are scraped from data-* attributes;
// the assembler parses what it needs and treats absent values as zero.
type Record struct {
	Name        string `json:"name,omitempty"`
	ArtID       string `json:"art_id,omitempty"`
	Power       string `json:"power,omitempty"`
	Armor       string `json:"armor,omitempty"`
	Provision   string `json:"provision,omitempty"`
	Faction     string `json:"faction,omitempty"`
	Color       string `json:"color,omitempty"`
	Type        string `json:"type,omitempty"`
	Rarity      string `json:"rarity,omitempty"`
	Category    string `json:"category,omitempty"`
	BodyAbility string `json:"body_ability,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	// ImagePath is the derived local asset path, filled in at assembly.
	ImagePath string `json:"image_path,omitempty"`
}

// Scraper posts the gwent.one ability-search form and scrapes the card
// markup out of the response. There is no JSON API for versioned card data,
// hence the form-post-and-scrape transport.
type Scraper struct {
	BaseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewScraper() *Scraper {
	return &Scraper{
		BaseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(rate.Every(100*time.Millisecond), 1),
	}
}

// Fetch looks up one card for a specific game version. An unmatched lookup
// is a hard error here: this pipeline halts the whole run on a card it
// cannot find, unlike every other resolver. Long-standing behavior, kept
// intentionally.
func (s *Scraper) Fetch(ctx context.Context, name, version string) (Record, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return Record{}, fmt.Errorf("rate limiter: %w", err)
	}

	form := url.Values{
		"q":        {name},
		"version":  {version},
		"Token":    {"1"},
		"view":     {"sCard"},
		"language": {"en"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.BaseURL+"/search/abilities", strings.NewReader(form.Encode()))
	if err != nil {
		return Record{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return Record{}, fmt.Errorf("gwent.one request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Record{}, fmt.Errorf("gwent.one returned status %d for %q", resp.StatusCode, name)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return Record{}, fmt.Errorf("parsing gwent.one response: %w", err)
	}
	return parseCardDocument(doc, name, version)
}

// parseCardDocument extracts the card record from the search response
// markup.
func parseCardDocument(doc *goquery.Document, name, version string) (Record, error) {
	attrs := doc.Find("div.card-wrap.card-data").First()
	if attrs.Length() == 0 {
		return Record{}, fmt.Errorf("no card match for %q (version %s)", name, version)
	}

	rec := Record{
		Name:        strings.TrimSpace(doc.Find("div.card-name").First().Text()),
		ArtID:       attrs.AttrOr("data-artid", ""),
		Power:       attrs.AttrOr("data-power", ""),
		Armor:       attrs.AttrOr("data-armor", ""),
		Provision:   attrs.AttrOr("data-provision", ""),
		Faction:     attrs.AttrOr("data-faction", ""),
		Color:       attrs.AttrOr("data-color", ""),
		Type:        attrs.AttrOr("data-type", ""),
		Rarity:      attrs.AttrOr("data-rarity", ""),
		Category:    strings.TrimSpace(doc.Find("div.card-category").First().Text()),
		BodyAbility: strings.TrimSpace(doc.Find("div.card-body-ability").First().Text()),
	}

	artNum, err := strconv.Atoi(strings.ReplaceAll(rec.ArtID, "j", ""))
	if err != nil {
		return Record{}, fmt.Errorf("unusable art id %q for %q", rec.ArtID, name)
	}
	rec.ImageURL = fmt.Sprintf("https://gwent.one/image/card/medium/aid/jpg/%d.jpg", artNum)
	return rec, nil
}
