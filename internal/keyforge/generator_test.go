package keyforge

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type writtenPage struct {
	saveAs   string
	template string
	context  map[string]any
}

type fakeWriter struct {
	pages []writtenPage
}

func (w *fakeWriter) WritePage(saveAs, template string, context map[string]any) error {
	w.pages = append(w.pages, writtenPage{saveAs: saveAs, template: template, context: context})
	return nil
}

func writeDeckCache(t *testing.T, dataPath string, cache map[string]*Record) {
	t.Helper()
	data, err := json.MarshalIndent(cache, "", "    ")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dataPath, "keyforge.cache.json"), data, 0644))
}

func testVaultRecord(name string) *Record {
	return &Record{
		DokStats: map[string]float64{"expectedAmber": 60},
		Vault: &VaultData{
			Data: VaultDeck{
				ID:   name,
				Name: name,
				Links: VaultLinks{
					Cards:  []string{"c1", "c1", "c1", "c2"},
					Houses: []string{"h1"},
				},
			},
			Linked: VaultLinked{
				Cards: []VaultCard{
					{ID: "c1", CardTitle: "Nexus", FrontImage: "https://cdn.test/c1.png"},
					{ID: "c2", CardTitle: "Mimicry", FrontImage: "https://cdn.test/c2.png"},
				},
				Houses: []VaultHouse{
					{ID: "h1", Name: "Logos", Image: "https://cdn.test/h1.png"},
				},
			},
		},
	}
}

func TestGenerate(t *testing.T) {
	dataPath := t.TempDir()
	writeDeckCache(t, dataPath, map[string]*Record{
		"deck-b": testVaultRecord("deck-b"),
		"deck-a": testVaultRecord("deck-a"),
	})

	g := NewGenerator(dataPath, "assets/keyforge", "keyforge/{slug}.html", "keyforge.html")
	w := &fakeWriter{}
	require.NoError(t, g.Generate(w))

	require.Len(t, w.pages, 3, "one overview page plus one page per deck")

	overview := w.pages[0]
	assert.Equal(t, "keyforge.html", overview.saveAs)
	assert.Equal(t, "keyforge_overview", overview.template)
	assert.Equal(t, 2, overview.context["deck_count"])

	// Deck pages come out sorted by deck id.
	assert.Equal(t, "keyforge/deck-a.html", w.pages[1].saveAs)
	assert.Equal(t, "keyforge/deck-b.html", w.pages[2].saveAs)
	assert.Equal(t, "keyforge_deck", w.pages[1].template)
	assert.Equal(t, "deck-a", w.pages[1].context["title"])

	rec := w.pages[1].context["keyforge_data"].(*Record)
	assert.Equal(t, "keyforge/deck-a.html", rec.Path)
	assert.Equal(t, 3, rec.Vault.Linked.Cards[0].Count, "counts come from link-list repetitions")
	assert.Equal(t, 1, rec.Vault.Linked.Cards[1].Count)
	assert.Equal(t, "assets/keyforge/cards/c1.png", rec.Vault.Linked.Cards[0].ImagePath)
	assert.Equal(t, "assets/keyforge/houses/h1.png", rec.Vault.Linked.Houses[0].ImagePath)
}

func TestGenerateEmptyCacheIsNoOp(t *testing.T) {
	g := NewGenerator(t.TempDir(), "assets/keyforge", "keyforge/{slug}.html", "keyforge.html")
	w := &fakeWriter{}
	require.NoError(t, g.Generate(w))
	assert.Empty(t, w.pages)
}
