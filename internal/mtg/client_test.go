package mtg

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decklock/decklock/internal/cards"
)

func testClient(srv *httptest.Server) *Client {
	c := NewClient()
	c.BaseURL = srv.URL
	return c
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cards/named", r.URL.Path)
		assert.Equal(t, "Shock", r.URL.Query().Get("fuzzy"))
		assert.Equal(t, "m21", r.URL.Query().Get("set"))
		w.Write([]byte(`{
			"name": "Shock",
			"mana_cost": "{R}",
			"cmc": 1.0,
			"type_line": "Instant",
			"colors": ["R"],
			"rarity": "common",
			"set": "m21",
			"image_uris": {"normal": "https://img.test/n.jpg", "border_crop": "https://img.test/bc.jpg"}
		}`))
	}))
	defer srv.Close()

	rec, err := testClient(srv).Fetch(context.Background(), "Shock", "m21")
	require.NoError(t, err)
	assert.Equal(t, "Shock", rec.Name)
	assert.Equal(t, 1.0, rec.CMC)
	assert.Equal(t, []string{"R"}, rec.Colors)
	assert.Equal(t, "https://img.test/bc.jpg", rec.ImageURIs.BorderCrop)
}

func TestFetchNoSetCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("set"))
		w.Write([]byte(`{"name": "Shock"}`))
	}))
	defer srv.Close()

	_, err := testClient(srv).Fetch(context.Background(), "Shock", "")
	require.NoError(t, err)
}

func TestFetchNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"object": "error", "code": "not_found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := testClient(srv).Fetch(context.Background(), "No Such Card", "")
	var notFound *cards.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "No Such Card", notFound.Name)
}

func TestFetchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := testClient(srv).Fetch(context.Background(), "Shock", "")
	require.Error(t, err)
	var notFound *cards.NotFoundError
	assert.False(t, errors.As(err, &notFound), "server errors are not the soft not-found case")
}
