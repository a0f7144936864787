package mtg

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decklock/decklock/internal/images"
)

func TestReaderRead(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name": "Shock", "cmc": 1, "colors": ["R"],
			"image_uris": {"border_crop": "https://img.test/shock.jpg"}}`))
	}))
	defer srv.Close()

	cachePath := t.TempDir()
	client := NewClient()
	client.BaseURL = srv.URL
	reader, err := NewReader(cachePath, "assets/mtg", filepath.Join(cachePath, "assets"), client, images.NewFetcher(false))
	require.NoError(t, err)

	assert.Equal(t, []string{"mwDeck"}, reader.Extensions())

	page, err := reader.Read(writeDecklist(t, `// Name: Burn
// Creator: jelle
4 Shock
---
Fast and cheap.
`))
	require.NoError(t, err)

	assert.Equal(t, "<p>Fast and cheap.</p>\n", page.Body)
	assert.Equal(t, "Burn", page.Metadata["title"])
	assert.Equal(t, "burn", page.Metadata["slug"])
	assert.Equal(t, "mtg/burn/", page.Metadata["url"])
	assert.Equal(t, "mtg/burn/index.html", page.Metadata["save_as"])
	assert.Equal(t, "MTG_Deck", page.Metadata["category"])
	assert.Equal(t, "mtg_deck", page.Metadata["template"])
	assert.Equal(t, "jelle", page.Metadata["creator"], "free header fields pass into the metadata")
	assert.NotEmpty(t, page.Metadata["date"])

	model := page.Metadata["deck"].(*PageDeck)
	require.Len(t, model.Cards, 1)
	assert.Equal(t, "assets/mtg/cards/shock.jpg", model.Cards[0].ImagePath)

	// The card cache is flushed alongside the read.
	_, err = os.Stat(filepath.Join(cachePath, "mtg.cached_cards.json"))
	assert.NoError(t, err)
}
