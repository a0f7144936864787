package keyforge

import (
	"fmt"
	"log/slog"
	"path"
	"sort"
	"strings"

	"github.com/decklock/decklock/internal/images"
	"github.com/decklock/decklock/internal/site"
)

// Generator produces the KeyForge pages from keyforge.cache.json: one
// overview page and one page per deck. It consumes the cache the Syncer
// wrote; it performs no network calls of its own.
type Generator struct {
	// dataPath holds keyforge.cache.json.
	dataPath string
	// assetsPath is the asset directory as referenced from generated pages.
	assetsPath string
	// deckSaveAs is the per-deck output template with a {slug} placeholder.
	deckSaveAs string
	// decksSaveAs is the overview page output path.
	decksSaveAs string
}

func NewGenerator(dataPath, assetsPath, deckSaveAs, decksSaveAs string) *Generator {
	return &Generator{
		dataPath:    dataPath,
		assetsPath:  assetsPath,
		deckSaveAs:  deckSaveAs,
		decksSaveAs: decksSaveAs,
	}
}

// Generate loads the deck cache, annotates per-card counts and local image
// paths, and writes the overview plus one page per deck.
func (g *Generator) Generate(w site.Writer) error {
	cache, err := loadDeckCache(path.Join(g.dataPath, "keyforge.cache.json"))
	if err != nil {
		return err
	}
	if len(cache) == 0 {
		slog.Info("no cached keyforge decks, skipping generation")
		return nil
	}

	for deckID, rec := range cache {
		rec.Path = strings.ReplaceAll(g.deckSaveAs, "{slug}", deckID)
		g.annotate(rec)
	}

	if err := w.WritePage(g.decksSaveAs, "keyforge_overview", map[string]any{
		"title":         "KeyForge",
		"template":      "keyforge_overview",
		"keyforge_data": cache,
		"deck_count":    len(cache),
	}); err != nil {
		return fmt.Errorf("writing keyforge overview: %w", err)
	}

	ids := make([]string, 0, len(cache))
	for deckID := range cache {
		ids = append(ids, deckID)
	}
	sort.Strings(ids)

	for _, deckID := range ids {
		rec := cache[deckID]
		name := deckID
		if rec.Vault != nil && rec.Vault.Data.Name != "" {
			name = rec.Vault.Data.Name
		}
		slog.Info("generating keyforge deck page", "deck_id", deckID)
		if err := w.WritePage(rec.Path, "keyforge_deck", map[string]any{
			"title":         name,
			"slug":          deckID,
			"template":      "keyforge_deck",
			"keyforge_data": rec,
		}); err != nil {
			return fmt.Errorf("writing keyforge deck %s: %w", deckID, err)
		}
	}
	return nil
}

// annotate derives the display fields the API does not carry: per-card copy
// counts from the id link list and local image paths for cards and houses.
func (g *Generator) annotate(rec *Record) {
	if rec.Vault == nil {
		return
	}
	counts := map[string]int{}
	for _, id := range rec.Vault.Data.Links.Cards {
		counts[id]++
	}
	for i := range rec.Vault.Linked.Cards {
		card := &rec.Vault.Linked.Cards[i]
		card.Count = counts[card.ID]
		card.ImagePath = images.LocalPath(path.Join(g.assetsPath, "cards"), card.FrontImage)
	}
	for i := range rec.Vault.Linked.Houses {
		house := &rec.Vault.Linked.Houses[i]
		house.ImagePath = images.LocalPath(path.Join(g.assetsPath, "houses"), house.Image)
	}
}
