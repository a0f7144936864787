package mtg

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

// Reader ingests .mwDeck files.
type Reader struct {
	resolver   *cards.Resolver[Record]
	fetcher    *images.Fetcher
	assetsPath string
	assetsRoot string
}

// NewReader opens the MTG card cache and wires the resolver.
func NewReader(cachePath, assetsPath, assetsRoot string, client *Client, fetcher *images.Fetcher) (*Reader, error) {
	store, err := cards.Open[Record](filepath.Join(cachePath, "mtg.cached_cards.json"))
	if err != nil {
		return nil, fmt.Errorf("opening mtg cache: %w", err)
	}
	return &Reader{
		resolver: &cards.Resolver[Record]{
			Store:     store,
			Fetch:     client.Fetch,
			Game:      "mtg",
			IsMissing: func(r Record) bool { return r.Name == "" },
		},
		fetcher:    fetcher,
		assetsPath: path.Join(assetsPath, "cards"),
		assetsRoot: filepath.Join(assetsRoot, "cards"),
	}, nil
}

func (r *Reader) Extensions() []string { return []string{"mwDeck"} }

// Read parses one decklist, resolves every card through the cache, flushes
// the cache, and assembles the page model with the mana curve and stacks.
func (r *Reader) Read(filePath string) (*site.Page, error) {
	d, err := Parse(filePath)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	resolutions := make([]cards.Resolution[Record], len(d.Cards))
	for i, entry := range d.Cards {
		res, err := r.resolver.Resolve(ctx, entry.Identifier, entry.Qualifier)
		if err != nil {
			return nil, err
		}
		if img := res.Record.ImageURIs.BorderCrop; img != "" {
			res.Record.ImagePath = images.LocalPath(r.assetsPath, img)
			dest := filepath.Join(r.assetsRoot, images.FileName(img))
			if err := r.fetcher.Fetch(img, dest); err != nil {
				return nil, err
			}
		}
		resolutions[i] = res
	}

	if err := r.resolver.Store.Flush(); err != nil {
		return nil, err
	}

	model := Assemble(d, resolutions)

	body, err := render.Markdown(d.Description)
	if err != nil {
		return nil, err
	}

	slug := site.Slugify(d.Title)
	url := fmt.Sprintf("mtg/%s/", slug)
	metadata := map[string]any{
		"title":    d.Title,
		"slug":     slug,
		"url":      url,
		"save_as":  url + "index.html",
		"category": "MTG_Deck",
		"template": "mtg_deck",
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
