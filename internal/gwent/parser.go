package gwent

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/decklock/decklock/internal/deck"
)

// Parse reads a .gwent decklist: `// Key: Value` header lines (including
// the gwent_version the card lookups are pinned to), `<count> <name>` card
// lines, and a `---` sentinel after which the rest of the file is free-text
// description. Whether a card is the leader, stratagem or a unit comes from
// the resolved card data, not from the decklist.
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
	countStr, name, found := strings.Cut(line, " ")
	if !found {
		return deck.Entry{}, fmt.Errorf("card line needs `<count> <name>`, got %q", line)
	}
	count, err := strconv.Atoi(countStr)
	if err != nil || count < 1 {
		return deck.Entry{}, fmt.Errorf("invalid card count in %q", line)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return deck.Entry{}, fmt.Errorf("card line has no name: %q", line)
	}
	return deck.Entry{Identifier: name, Count: count, Role: deck.RoleMain}, nil
}
