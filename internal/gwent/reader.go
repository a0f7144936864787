package gwent

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"time"

	"github.com/decklock/decklock/internal/cards"
	"github.com/decklock/decklock/internal/deck"
	"github.com/decklock/decklock/internal/images"
	"github.com/decklock/decklock/internal/render"
	"github.com/decklock/decklock/internal/site"
)

// Reader ingests .gwent decklist files.
type Reader struct {
	resolver *cards.Resolver[Record]
	fetcher  *images.Fetcher
	// currentVersion is used when a decklist omits `// Gwent_Version:`.
	currentVersion string
	assetsPath     string
	assetsRoot     string
}

// NewReader opens the Gwent card cache and wires the resolver. Records are
// cached per game version: the same card name can have different stats
// across patches.
func NewReader(cachePath, assetsPath, assetsRoot, currentVersion string, scraper *Scraper, fetcher *images.Fetcher) (*Reader, error) {
	store, err := cards.Open[Record](filepath.Join(cachePath, "gwent.cached_cards.json"))
	if err != nil {
		return nil, fmt.Errorf("opening gwent cache: %w", err)
	}
	return &Reader{
		resolver: &cards.Resolver[Record]{
			Store: store,
			Fetch: scraper.Fetch,
			Game:  "gwent",
		},
		fetcher:        fetcher,
		currentVersion: currentVersion,
		assetsPath:     path.Join(assetsPath, "cards"),
		assetsRoot:     filepath.Join(assetsRoot, "cards"),
	}, nil
}

func (r *Reader) Extensions() []string { return []string{"gwent"} }

// Read parses one decklist, resolves every card against the version-scoped
// cache, flushes the cache, and assembles the page model. An unmatched
// lookup aborts the run (see Scraper.Fetch).
func (r *Reader) Read(filePath string) (*site.Page, error) {
	d, err := Parse(filePath)
	if err != nil {
		return nil, err
	}

	version := d.Extra["gwent_version"]
	if version == "" {
		version = r.currentVersion
	}

	ctx := context.Background()
	resolutions := make([]cards.Resolution[Record], len(d.Cards))
	for i, entry := range d.Cards {
		res, err := r.resolver.Resolve(ctx, entry.Identifier, version)
		if err != nil {
			return nil, err
		}
		if res.Record.ImageURL != "" {
			res.Record.ImagePath = images.LocalPath(r.assetsPath, res.Record.ImageURL)
			dest := filepath.Join(r.assetsRoot, images.FileName(res.Record.ImageURL))
			if err := r.fetcher.Fetch(res.Record.ImageURL, dest); err != nil {
				return nil, err
			}
		}
		resolutions[i] = res
	}

	if err := r.resolver.Store.Flush(); err != nil {
		return nil, err
	}

	model := Assemble(d, version, resolutions)

	body, err := render.Markdown(d.Description)
	if err != nil {
		return nil, err
	}

	slug := site.Slugify(d.Title)
	url := fmt.Sprintf("gwent/%s/%s/", version, slug)
	metadata := map[string]any{
		"title":    d.Title,
		"slug":     slug,
		"url":      url,
		"save_as":  url + "index.html",
		"category": "Gwent_Deck",
		"template": "gwent_deck",
		"date":     deck.LastModified(filePath).Format(time.RFC3339),
		"deck":     model,
	}
	for key, value := range d.Extra {
		if _, taken := metadata[key]; !taken {
			metadata[key] = value
		}
	}
	return &site.Page{Body: body, Metadata: metadata}, nil
}
