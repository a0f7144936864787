// Command decklock builds deck pages for a static site: it walks the
// content tree for decklist files (Magic, Gwent, Flesh and Blood), enriches
// them from the card-data sources through local JSON caches, runs the
// KeyForge batch sync, and writes page models for the theme layer.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/decklock/decklock/internal/config"
	"github.com/decklock/decklock/internal/fab"
	"github.com/decklock/decklock/internal/gwent"
	"github.com/decklock/decklock/internal/images"
	"github.com/decklock/decklock/internal/keyforge"
	"github.com/decklock/decklock/internal/mtg"
	"github.com/decklock/decklock/internal/site"
)

var configPath = flag.String("config", "", "path to decklock.yaml (defaults to ./decklock.yaml)")

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		slog.Error("build failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	cacheDir := filepath.Join(cfg.ContentPath, cfg.CachePath)
	fetcher := images.NewFetcher(!cfg.UseExternalLinks)
	registry := site.NewRegistry()

	if cfg.MTG.Enabled {
		reader, err := mtg.NewReader(
			cacheDir,
			cfg.MTG.AssetsPath,
			filepath.Join(cfg.ContentPath, cfg.MTG.AssetsPath),
			mtg.NewClient(),
			fetcher,
		)
		if err != nil {
			return err
		}
		if err := registry.RegisterReader(reader); err != nil {
			return err
		}
	}

	if cfg.Gwent.Enabled {
		reader, err := gwent.NewReader(
			cacheDir,
			cfg.Gwent.AssetsPath,
			filepath.Join(cfg.ContentPath, cfg.Gwent.AssetsPath),
			cfg.Gwent.CurrentVersion,
			gwent.NewScraper(),
			fetcher,
		)
		if err != nil {
			return err
		}
		if err := registry.RegisterReader(reader); err != nil {
			return err
		}
	}

	if cfg.FaB.Enabled {
		reader, err := fab.NewReader(
			cacheDir,
			cfg.FaB.AssetsPath,
			filepath.Join(cfg.ContentPath, cfg.FaB.AssetsPath),
			fab.NewClient(),
			fetcher,
		)
		if err != nil {
			return err
		}
		if err := registry.RegisterReader(reader); err != nil {
			return err
		}
	}

	if cfg.KeyForge.Enabled {
		dataPath := filepath.Join(cfg.ContentPath, cfg.KeyForge.DataPath)
		syncer := keyforge.NewSyncer(
			dataPath,
			filepath.Join(cfg.ContentPath, cfg.KeyForge.AssetsPath),
			keyforge.NewClient(cfg.KeyForge.DokAPIKey),
			fetcher,
		)
		if err := syncer.Sync(context.Background()); err != nil {
			return err
		}
		registry.RegisterGenerator(keyforge.NewGenerator(
			dataPath,
			cfg.KeyForge.AssetsPath,
			cfg.KeyForge.DeckSaveAs,
			cfg.KeyForge.DecksSaveAs,
		))
	}

	writer := site.NewDirWriter(cfg.OutputPath)
	return registry.Run(cfg.ContentPath, writer)
}
