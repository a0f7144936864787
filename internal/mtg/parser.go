package mtg

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/decklock/decklock/internal/deck"
)

// sideboardPrefix marks a sideboard line in the mwDeck format.
const sideboardPrefix = "SB:"

// Parse reads an .mwDeck file: `// Key: Value` header lines, card lines of
// the form `<count> [SET] <name>` (set code optional), an optional `SB:`
// prefix for sideboard entries, and a `---` sentinel after which the rest of
// the file is free-text description.
func Parse(path string) (*deck.Deck, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening decklist: %w", err)
	}
	defer f.Close()

	d := &deck.Deck{}
	var description []string
	inDescription := false

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()
		line := strings.TrimSpace(raw)

		if inDescription {
			description = append(description, raw)
			continue
		}

		switch {
		case line == "":
			continue
		case line == deck.DescriptionSentinel:
			inDescription = true
		case strings.HasPrefix(line, "//"):
			key, value, err := deck.ParseMetaLine(line)
			if err != nil {
				return nil, &deck.FormatError{Path: path, Line: lineNo, Reason: err.Error()}
			}
			d.SetExtra(key, value)
		default:
			entry, err := parseCardLine(line)
			if err != nil {
				return nil, &deck.FormatError{Path: path, Line: lineNo, Reason: err.Error()}
			}
			d.Cards = append(d.Cards, entry)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading decklist: %w", err)
	}

	d.Description = strings.TrimSpace(strings.Join(description, "\n"))
	d.Title = d.Extra["name"]
	if d.Title == "" {
		d.Title = "Unnamed Deck"
	}
	return d, nil
}

func parseCardLine(line string) (deck.Entry, error) {
	role := deck.RoleMain
	if strings.HasPrefix(line, sideboardPrefix) {
		role = deck.RoleSideboard
		line = strings.TrimSpace(strings.TrimPrefix(line, sideboardPrefix))
	}

	countStr, rest, found := strings.Cut(line, " ")
	if !found {
		return deck.Entry{}, fmt.Errorf("card line needs `<count> [<set>] <name>`, got %q", line)
	}
	count, err := strconv.Atoi(countStr)
	if err != nil || count < 1 {
		return deck.Entry{}, fmt.Errorf("invalid card count in %q", line)
	}

	setCode := ""
	rest = strings.TrimSpace(rest)
	if strings.HasPrefix(rest, "[") {
		closing := strings.Index(rest, "]")
		if closing < 0 {
			return deck.Entry{}, fmt.Errorf("unterminated set code in %q", line)
		}
		setCode = rest[1:closing]
		rest = strings.TrimSpace(rest[closing+1:])
	}
	if rest == "" {
		return deck.Entry{}, fmt.Errorf("card line has no name: %q", line)
	}

	return deck.Entry{Identifier: rest, Count: count, Qualifier: setCode, Role: role}, nil
}
