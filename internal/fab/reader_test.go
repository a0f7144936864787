package fab

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decklock/decklock/internal/images"
)

func newTestReader(t *testing.T, srv *httptest.Server) *Reader {
	t.Helper()
	cachePath := t.TempDir()
	client := NewClient()
	client.BaseURL = srv.URL
	reader, err := NewReader(cachePath, "assets/fab", cachePath, client, images.NewFetcher(false))
	require.NoError(t, err)
	return reader
}

func TestReaderRead(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name": "Uppercut", "stats": {"resource": 1}}`))
	}))
	defer srv.Close()

	reader := newTestReader(t, srv)
	assert.Equal(t, []string{"fab"}, reader.Extensions())

	page, err := reader.Read(writeDecklist(t, "Bravo Beatdown\nClass: Guardian\nHero: Bravo\n(3) Uppercut (red)\n"))
	require.NoError(t, err)

	assert.Equal(t, "Bravo Beatdown", page.Metadata["title"])
	assert.Equal(t, "fab/bravo-beatdown/", page.Metadata["url"])
	assert.Equal(t, "FaB_Deck", page.Metadata["category"])

	model := page.Metadata["deck"].(*PageDeck)
	require.Len(t, model.Cards, 1)
	assert.Equal(t, "red", model.Cards[0].Color)
}

func TestReaderReadTransportErrorDegrades(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down for maintenance", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	reader := newTestReader(t, srv)
	page, err := reader.Read(writeDecklist(t, "Bravo Beatdown\nHero: Bravo\n(1) Uppercut (red)\n"))
	require.NoError(t, err, "one unreachable card does not sink the deck")

	model := page.Metadata["deck"].(*PageDeck)
	assert.True(t, model.Hero.Missing)
	assert.Equal(t, "Bravo", model.Hero.Name)
	require.Len(t, model.Cards, 1)
	assert.True(t, model.Cards[0].Missing)
	assert.Equal(t, "Uppercut (red)", model.Cards[0].Name, "the placeholder keeps the decklist spelling")
}
