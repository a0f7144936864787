package keyforge

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decklock/decklock/internal/images"
)

const testDeckID = "11111111-2222-3333-4444-555555555555"

func writeManifest(t *testing.T, dataPath string, entries []ManifestEntry) {
	t.Helper()
	data, err := json.Marshal(entries)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dataPath, "keyforge.json"), data, 0644))
}

// fakeAPIs serves both external sources from one mux and counts deck fetches.
func fakeAPIs(t *testing.T) (*httptest.Server, *int) {
	t.Helper()
	fetches := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/public-api/v1/stats", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("Api-Key"))
		w.Write([]byte(`{"expectedAmberStats": {"percentileForValue": {"20": 60.0}}}`))
	})
	mux.HandleFunc("/public-api/v3/decks/", func(w http.ResponseWriter, r *http.Request) {
		fetches++
		w.Write([]byte(`{"deck": {"expectedAmber": 20.0}}`))
	})
	mux.HandleFunc("/api/decks/", func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.Contains(r.URL.RawQuery, "links=cards"))
		w.Write([]byte(`{
			"data": {
				"id": "` + testDeckID + `",
				"name": "Torgaar of the Murky Depths",
				"_links": {"cards": ["c1", "c1", "c2"], "houses": ["h1"]}
			},
			"_linked": {
				"cards": [
					{"id": "c1", "card_title": "Nexus", "house": "Logos"},
					{"id": "c2", "card_title": "Mimicry", "house": "Shadows"}
				],
				"houses": [{"id": "h1", "name": "Logos"}]
			}
		}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &fetches
}

func newTestSyncer(t *testing.T, dataPath string, srv *httptest.Server) *Syncer {
	t.Helper()
	client := NewClient("test-key")
	client.DokBaseURL = srv.URL
	client.VaultBaseURL = srv.URL
	return NewSyncer(dataPath, filepath.Join(dataPath, "assets"), client, images.NewFetcher(false))
}

func TestSync(t *testing.T) {
	dataPath := t.TempDir()
	writeManifest(t, dataPath, []ManifestEntry{{"deck_id": testDeckID, "adventure": true}})

	srv, fetches := fakeAPIs(t)
	s := newTestSyncer(t, dataPath, srv)
	require.NoError(t, s.Sync(context.Background()))
	assert.Equal(t, 1, *fetches)

	cache, err := loadDeckCache(filepath.Join(dataPath, "keyforge.cache.json"))
	require.NoError(t, err)
	rec, ok := cache[testDeckID]
	require.True(t, ok)

	assert.Equal(t, 60.0, rec.DokStats["expectedAmber"])
	assert.Equal(t, 0.0, rec.DokStats["efficiency"])
	require.NotNil(t, rec.Vault)
	assert.Len(t, rec.Vault.Linked.Cards, 2)
	assert.Equal(t, true, rec.UserData["adventure"])

	// The baseline is persisted for later runs.
	_, err = os.Stat(filepath.Join(dataPath, "dok_decks.cache.json"))
	assert.NoError(t, err)
}

func TestSyncCachedDeckNotRefetched(t *testing.T) {
	dataPath := t.TempDir()
	writeManifest(t, dataPath, []ManifestEntry{{"deck_id": testDeckID, "adventure": false}})

	srv, fetches := fakeAPIs(t)
	s := newTestSyncer(t, dataPath, srv)
	require.NoError(t, s.Sync(context.Background()))
	require.Equal(t, 1, *fetches)

	// Second run with changed manifest fields: no API traffic, but the user
	// fields are refreshed from the manifest.
	writeManifest(t, dataPath, []ManifestEntry{{"deck_id": testDeckID, "adventure": true, "note": "keeper"}})
	require.NoError(t, s.Sync(context.Background()))
	assert.Equal(t, 1, *fetches)

	cache, err := loadDeckCache(filepath.Join(dataPath, "keyforge.cache.json"))
	require.NoError(t, err)
	assert.Equal(t, true, cache[testDeckID].UserData["adventure"])
	assert.Equal(t, "keeper", cache[testDeckID].UserData["note"])
}

func TestSyncNoManifestIsNoOp(t *testing.T) {
	dataPath := t.TempDir()
	srv, fetches := fakeAPIs(t)
	s := newTestSyncer(t, dataPath, srv)
	require.NoError(t, s.Sync(context.Background()))
	assert.Equal(t, 0, *fetches)
	_, err := os.Stat(filepath.Join(dataPath, "keyforge.cache.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestSyncMissingDeckIDFails(t *testing.T) {
	dataPath := t.TempDir()
	writeManifest(t, dataPath, []ManifestEntry{{"adventure": true}})

	srv, _ := fakeAPIs(t)
	s := newTestSyncer(t, dataPath, srv)
	err := s.Sync(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deck_id")
}
