package fab

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"time"

	"github.com/decklock/decklock/internal/cards"
	"github.com/decklock/decklock/internal/deck"
	"github.com/decklock/decklock/internal/images"
	"github.com/decklock/decklock/internal/site"
)

// Reader ingests .fab decklist files.
type Reader struct {
	resolver *cards.Resolver[Record]
	fetcher  *images.Fetcher
	// assetsPath is the card image directory relative to the content root,
	// as referenced from generated pages.
	assetsPath string
	// assetsRoot is the same directory as an actual filesystem path.
	assetsRoot string
}

// NewReader opens the FaB card cache and wires the resolver.
func NewReader(cachePath, assetsPath, assetsRoot string, client *Client, fetcher *images.Fetcher) (*Reader, error) {
	store, err := cards.Open[Record](filepath.Join(cachePath, "fab.cached_cards.json"))
	if err != nil {
		return nil, fmt.Errorf("opening fab cache: %w", err)
	}
	return &Reader{
		resolver: &cards.Resolver[Record]{
			Store:     store,
			Fetch:     client.Fetch,
			Game:      "fab",
			IsMissing: func(r Record) bool { return r.Name == "" },
		},
		fetcher:    fetcher,
		assetsPath: path.Join(assetsPath, "cards"),
		assetsRoot: filepath.Join(assetsRoot, "cards"),
	}, nil
}

func (r *Reader) Extensions() []string { return []string{"fab"} }

// Read parses one decklist, resolves every referenced card (hero and gear
// included), flushes the cache, and assembles the page model.
func (r *Reader) Read(filePath string) (*site.Page, error) {
	list, err := ParseDecklist(filePath)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()

	hero := r.resolveAnnotated(ctx, list.Hero)
	weapons := r.resolveAllAnnotated(ctx, list.Weapons)
	equipment := r.resolveAllAnnotated(ctx, list.Equipment)
	cardRes := make([]cards.Resolution[Record], len(list.Cards))
	for i, entry := range list.Cards {
		cardRes[i] = r.resolveAnnotated(ctx, entry.Identifier)
	}

	// Flush only after the whole deck resolved; a parse error leaves the
	// on-disk cache untouched.
	if err := r.resolver.Store.Flush(); err != nil {
		return nil, err
	}

	model := Assemble(list, hero, weapons, equipment, cardRes)

	slug := site.Slugify(model.Name)
	url := fmt.Sprintf("fab/%s/", slug)
	metadata := map[string]any{
		"title":    model.Name,
		"slug":     slug,
		"url":      url,
		"save_as":  url + "index.html",
		"category": "FaB_Deck",
		"template": "fab_deck",
		"date":     deck.LastModified(filePath).Format(time.RFC3339),
		"deck":     model,
	}
	return &site.Page{Body: "", Metadata: metadata}, nil
}

// resolveAnnotated resolves one name, fills in the local image path, and
// fetches the image when downloads are enabled. Any lookup failure degrades
// to a missing card; this pipeline never fails a deck over one card.
func (r *Reader) resolveAnnotated(ctx context.Context, name string) cards.Resolution[Record] {
	if name == "" {
		return cards.Resolution[Record]{Missing: true}
	}
	res, err := r.resolver.Resolve(ctx, name, "")
	if err != nil {
		slog.Warn("card lookup failed", "game", "fab", "card", name, "error", err)
		return cards.Resolution[Record]{Identifier: name, Missing: true}
	}
	if res.Record.Image != "" {
		res.Record.ImagePath = images.LocalPath(r.assetsPath, res.Record.Image)
		dest := filepath.Join(r.assetsRoot, images.FileName(res.Record.Image))
		if err := r.fetcher.Fetch(res.Record.Image, dest); err != nil {
			// A failed art download degrades the page, it does not sink the
			// deck.
			slog.Warn("image fetch failed", "game", "fab", "card", name, "error", err)
		}
	}
	return res
}

func (r *Reader) resolveAllAnnotated(ctx context.Context, names []string) []cards.Resolution[Record] {
	out := make([]cards.Resolution[Record], 0, len(names))
	for _, name := range names {
		out = append(out, r.resolveAnnotated(ctx, name))
	}
	return out
}
