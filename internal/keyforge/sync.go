package keyforge

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/decklock/decklock/internal/images"
)

// Syncer is the KeyForge bulk pre-generation step: it reads the deck-id
// manifest, enriches uncached decks from the two external APIs, merges the
// results into keyforge.cache.json and fetches card/house art. It is the
// same resolver-plus-cache pattern as the file readers, applied to a batch
// instead of a stream of files.
type Syncer struct {
	client *Client
	fetch  *images.Fetcher
	// dataPath holds keyforge.json and both cache files.
	dataPath   string
	assetsRoot string
}

func NewSyncer(dataPath, assetsRoot string, client *Client, fetch *images.Fetcher) *Syncer {
	return &Syncer{
		client:     client,
		fetch:      fetch,
		dataPath:   dataPath,
		assetsRoot: assetsRoot,
	}
}

func (s *Syncer) manifestPath() string { return filepath.Join(s.dataPath, "keyforge.json") }
func (s *Syncer) cachePath() string    { return filepath.Join(s.dataPath, "keyforge.cache.json") }
func (s *Syncer) statsPath() string    { return filepath.Join(s.dataPath, "dok_decks.cache.json") }

func loadManifest(path string) ([]ManifestEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading keyforge manifest %s: %w", path, err)
	}
	var entries []ManifestEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing keyforge manifest %s: %w", path, err)
	}
	return entries, nil
}

// Sync runs one batch pass. Re-run-safe: a deck id already in the cache is
// never re-fetched, but its manifest fields are always refreshed: the
// manifest owns the user fields, the cache owns the API-derived ones.
func (s *Syncer) Sync(ctx context.Context) error {
	manifest, err := loadManifest(s.manifestPath())
	if err != nil {
		return err
	}
	if len(manifest) == 0 {
		slog.Info("no keyforge manifest entries, skipping sync")
		return nil
	}

	cache, err := loadDeckCache(s.cachePath())
	if err != nil {
		return err
	}
	baseline, err := loadBaseline(s.statsPath(), func() (Baseline, error) {
		return s.client.DokStats(ctx)
	})
	if err != nil {
		return err
	}

	for _, entry := range manifest {
		deckID := entry.DeckID()
		if deckID == "" {
			return fmt.Errorf("keyforge manifest entry without deck_id: %v", entry)
		}

		if rec, ok := cache[deckID]; ok {
			slog.Info("using cached keyforge deck", "deck_id", deckID)
			rec.UserData = entry
			continue
		}

		slog.Info("fetching keyforge deck", "deck_id", deckID)
		dokData, err := s.client.DokDeck(ctx, deckID)
		if err != nil {
			return err
		}
		vault, err := s.client.VaultDeck(ctx, deckID)
		if err != nil {
			return err
		}
		cache[deckID] = &Record{
			DokData:  dokData,
			DokStats: ParseDokStats(dokData, baseline),
			Vault:    vault,
			UserData: entry,
		}
	}

	if err := saveDeckCache(s.cachePath(), cache); err != nil {
		return err
	}
	return s.fetchAssets(cache)
}

// fetchAssets downloads card fronts and house crests for every cached deck
// into per-kind asset subdirectories. Idempotent like every image fetch.
func (s *Syncer) fetchAssets(cache map[string]*Record) error {
	cardDir := filepath.Join(s.assetsRoot, "cards")
	houseDir := filepath.Join(s.assetsRoot, "houses")

	for deckID, rec := range cache {
		if rec.Vault == nil {
			continue
		}
		for _, card := range rec.Vault.Linked.Cards {
			dest := filepath.Join(cardDir, images.FileName(card.FrontImage))
			if err := s.fetch.Fetch(card.FrontImage, dest); err != nil {
				return fmt.Errorf("deck %s: %w", deckID, err)
			}
		}
		for _, house := range rec.Vault.Linked.Houses {
			dest := filepath.Join(houseDir, images.FileName(house.Image))
			if err := s.fetch.Fetch(house.Image, dest); err != nil {
				return fmt.Errorf("deck %s: %w", deckID, err)
			}
		}
	}
	return nil
}
