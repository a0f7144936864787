// Package deck holds the structured decklist model shared by every game
// pipeline: header metadata plus ordered card entries, as produced by the
// per-game parsers before any external enrichment happens.
package deck

import (
	"fmt"
	"os"
	"time"
)

// Role marks which zone of the deck a card entry belongs to.
type Role string

const (
	RoleMain      Role = "main"
	RoleSideboard Role = "sideboard"
)

// Entry is one card line: how many copies of which identifier, with an
// optional qualifier (set code, game version) disambiguating same-named
// cards.
type Entry struct {
	// Identifier is the raw card name exactly as written in the source file.
	Identifier string
	// Count is the number of copies; always >= 1 for parsed entries.
	Count int
	// Qualifier is the set code / version suffix, empty when the game has no
	// qualifier concept.
	Qualifier string
	Role      Role
}

// Deck is a parsed decklist: header fields, ordered entries, optional
// free-text description. Card enrichment happens later in the assembler.
type Deck struct {
	Title       string
	Cards       []Entry
	Description string
	// Extra holds free-form `// Key: Value` header attributes keyed by
	// lower-cased name, for header fields without a dedicated slot.
	Extra map[string]string
}

// SetExtra records a header attribute, allocating the map on first use.
func (d *Deck) SetExtra(key, value string) {
	if d.Extra == nil {
		d.Extra = map[string]string{}
	}
	d.Extra[key] = value
}

// FormatError reports a malformed line in a deck source file. It aborts
// processing of that file only; the cache is never flushed mid-deck so a
// format error cannot corrupt it.
type FormatError struct {
	Path   string
	Line   int
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Reason)
}

// LastModified returns the source file's modification time, used as the
// page date. Falls back to now when the file cannot be stat'd.
func LastModified(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return time.Now()
	}
	return info.ModTime()
}
