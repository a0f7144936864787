package keyforge

import "encoding/json"

// ManifestEntry is one deck in the user-maintained keyforge.json manifest:
// a deck id plus arbitrary user fields (adventure flags and the like). The
// manifest is the source of truth for those fields, so they are refreshed
// into the cache on every run even when the API payloads are reused.
type ManifestEntry map[string]any

// DeckID extracts the required deck_id field.
func (m ManifestEntry) DeckID() string {
	id, _ := m["deck_id"].(string)
	return id
}

// VaultCard is one card of a deck as reported by the Master Vault API.
type VaultCard struct {
	ID         string `json:"id"`
	CardTitle  string `json:"card_title"`
	House      string `json:"house"`
	CardType   string `json:"card_type"`
	FrontImage string `json:"front_image"`
	Rarity     string `json:"rarity"`
	CardNumber string `json:"card_number"`
	// Count and ImagePath are derived at generation time, not returned by
	// the API.
	Count     int    `json:"count,omitempty"`
	ImagePath string `json:"image_path,omitempty"`
}

// VaultHouse is one of the deck's three houses.
type VaultHouse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Image     string `json:"image"`
	ImagePath string `json:"image_path,omitempty"`
}

// VaultLinks lists card and house ids in deck order; card counts are the
// number of times an id repeats here.
type VaultLinks struct {
	Cards  []string `json:"cards"`
	Houses []string `json:"houses"`
}

// VaultDeck is the deck body of a Master Vault response.
type VaultDeck struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Links VaultLinks `json:"_links"`
}

// VaultLinked holds the expanded card and house objects.
type VaultLinked struct {
	Cards  []VaultCard  `json:"cards"`
	Houses []VaultHouse `json:"houses"`
}

// VaultData is the Master Vault deck payload.
type VaultData struct {
	Data   VaultDeck   `json:"data"`
	Linked VaultLinked `json:"_linked"`
}

// Record is one fully merged deck as persisted in keyforge.cache.json:
// the DoK payload, the percentile stats derived from it, the Master Vault
// payload, and the manifest entry.
type Record struct {
	DokData  map[string]any     `json:"dok_data,omitempty"`
	DokStats map[string]float64 `json:"dok_stats"`
	Vault    *VaultData         `json:"vault_data,omitempty"`
	UserData ManifestEntry      `json:"user_data,omitempty"`
	// Path is the page output path, set at generation time.
	Path string `json:"path,omitempty"`
}

// Baseline is the DoK global stats payload, kept raw per top-level field so
// schema drift in unrelated fields cannot break percentile lookups.
type Baseline map[string]json.RawMessage
