package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// GameConfig holds the per-game toggles and paths shared by all four pipelines.
type GameConfig struct {
	// Enabled controls whether this game's pipeline runs at all.
	Enabled bool `mapstructure:"enabled"`
	// AssetsPath is where card images are stored, relative to ContentPath.
	AssetsPath string `mapstructure:"assets_path"`
}

// KeyForgeConfig extends GameConfig with the batch-sync specifics.
type KeyForgeConfig struct {
	GameConfig `mapstructure:",squash"`
	// DataPath holds keyforge.json and the sync caches, relative to
	// ContentPath.
	DataPath string `mapstructure:"data_path"`
	// DokAPIKey authenticates against decksofkeyforge.com. Empty disables
	// DoK enrichment (stats come back empty, percentiles default to zero).
	DokAPIKey string `mapstructure:"dok_api_key"`
	// DeckSaveAs is the per-deck output template; {slug} is replaced by the
	// deck id.
	DeckSaveAs string `mapstructure:"deck_save_as"`
	// DecksSaveAs is the overview page output path.
	DecksSaveAs string `mapstructure:"decks_save_as"`
}

// GwentConfig extends GameConfig with the game version used for lookups.
type GwentConfig struct {
	GameConfig `mapstructure:",squash"`
	// CurrentVersion is the gwent.one data version assumed when a decklist
	// does not declare one.
	CurrentVersion string `mapstructure:"current_version"`
}

// Config is the full DeckLock build configuration.
type Config struct {
	// ContentPath is the root of deck source files and the data directory.
	ContentPath string `mapstructure:"content_path"`
	// CachePath is the cache directory relative to ContentPath.
	CachePath string `mapstructure:"cache_path"`
	// OutputPath is where generated pages are written.
	OutputPath string `mapstructure:"output_path"`
	// UseExternalLinks skips downloading card images; pages link to the
	// upstream image URLs instead. Local paths are still computed so a later
	// run with downloads enabled produces identical pages.
	UseExternalLinks bool `mapstructure:"use_external_links"`

	KeyForge KeyForgeConfig `mapstructure:"keyforge"`
	MTG      GameConfig     `mapstructure:"mtg"`
	Gwent    GwentConfig    `mapstructure:"gwent"`
	FaB      GameConfig     `mapstructure:"fab"`
}

// Load reads configuration with viper.
// Priority order: environment variables > config file > defaults.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("decklock")
	v.SetConfigType("yaml")
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("decklock")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.BindEnv("keyforge.dok_api_key", "DOK_API_KEY")
	v.BindEnv("content_path", "DECKLOCK_CONTENT_PATH")
	v.BindEnv("output_path", "DECKLOCK_OUTPUT_PATH")

	v.SetDefault("content_path", "content")
	v.SetDefault("cache_path", "dl_cache")
	v.SetDefault("output_path", "output")
	v.SetDefault("use_external_links", true)

	v.SetDefault("keyforge.enabled", true)
	v.SetDefault("keyforge.data_path", "data")
	v.SetDefault("keyforge.assets_path", "assets/keyforge")
	v.SetDefault("keyforge.deck_save_as", "keyforge/{slug}.html")
	v.SetDefault("keyforge.decks_save_as", "keyforge.html")

	v.SetDefault("mtg.enabled", true)
	v.SetDefault("mtg.assets_path", "assets/mtg")

	v.SetDefault("gwent.enabled", true)
	v.SetDefault("gwent.assets_path", "assets/gwent")
	v.SetDefault("gwent.current_version", "8.2.0")

	v.SetDefault("fab.enabled", true)
	v.SetDefault("fab.assets_path", "assets/fab")

	if err := v.ReadInConfig(); err != nil {
		// The config file is optional; defaults plus env vars are a complete
		// configuration.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !strings.Contains(err.Error(), "no such file or directory") {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks fields that have no usable zero value.
func (c *Config) Validate() error {
	if c.ContentPath == "" {
		return fmt.Errorf("content_path must not be empty")
	}
	if c.CachePath == "" {
		return fmt.Errorf("cache_path must not be empty")
	}
	if c.OutputPath == "" {
		return fmt.Errorf("output_path must not be empty")
	}
	if c.KeyForge.Enabled {
		if c.KeyForge.DeckSaveAs != "" && !strings.Contains(c.KeyForge.DeckSaveAs, "{slug}") {
			return fmt.Errorf("keyforge.deck_save_as must contain a {slug} placeholder")
		}
	}
	if c.Gwent.Enabled && c.Gwent.CurrentVersion == "" {
		return fmt.Errorf("gwent.current_version must not be empty")
	}
	return nil
}
