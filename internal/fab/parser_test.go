package fab

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decklock/decklock/internal/deck"
)

func writeDecklist(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deck.fab")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestParseDecklist(t *testing.T) {
	list, err := ParseDecklist(writeDecklist(t, `Deck build - via https://fabrary.net

Bravo Beatdown

Class: Guardian
Hero: Bravo, Star of the Show
Weapons: Anothos
Equipment: Helm of Isen's Peak, Tectonic Plating

(3) Uppercut (red)
(2) Crush Confidence (red)
(1) Pummel (yellow)

See the full deck at: https://fabrary.net/decks/123456
`))
	require.NoError(t, err)

	assert.Equal(t, "Bravo Beatdown", list.Title)
	assert.Equal(t, "Guardian", list.Class)
	assert.Equal(t, "Bravo, Star of the Show", list.Hero)
	assert.Equal(t, []string{"Anothos"}, list.Weapons)
	assert.Equal(t, []string{"Helm of Isen's Peak", "Tectonic Plating"}, list.Equipment)
	assert.Equal(t, "https://fabrary.net/decks/123456", list.SourceURL)

	require.Len(t, list.Cards, 3)
	assert.Equal(t, deck.Entry{Identifier: "Uppercut (red)", Count: 3, Role: deck.RoleMain}, list.Cards[0])
	assert.Equal(t, deck.Entry{Identifier: "Pummel (yellow)", Count: 1, Role: deck.RoleMain}, list.Cards[2])
}

func TestParseDecklistDefaults(t *testing.T) {
	list, err := ParseDecklist(writeDecklist(t, "(1) Sink Below (red)\n"))
	require.NoError(t, err)
	assert.Equal(t, "Unnamed Deck", list.Title)
	assert.Empty(t, list.Hero)
	assert.Empty(t, list.Weapons)
}

func TestParseDecklistLastTitleWins(t *testing.T) {
	list, err := ParseDecklist(writeDecklist(t, "First Title\nSecond Title\n(1) Uppercut (red)\n"))
	require.NoError(t, err)
	assert.Equal(t, "Second Title", list.Title)
}

func TestParseDecklistBadCount(t *testing.T) {
	_, err := ParseDecklist(writeDecklist(t, "(x) Uppercut\n"))
	var ferr *deck.FormatError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, 1, ferr.Line)
}
