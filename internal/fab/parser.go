package fab

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/decklock/decklock/internal/deck"
)

// List is a parsed .fab decklist before card enrichment.
type List struct {
	Title     string
	Class     string
	Hero      string
	Weapons   []string
	Equipment []string
	Cards     []deck.Entry
	// SourceURL is the optional "See the full deck at:" link.
	SourceURL string
}

const deckURLPrefix = "See the full deck at: "

// ParseDecklist reads the fabrary export format: `(count) Name` card lines,
// dedicated `Class:`/`Hero:`/`Weapons:`/`Equipment:` headers, and free
// lines. Any other non-blank line is treated as the deck title; when several
// occur, the last one wins. That quirk comes from the format having no
// explicit title marker and is preserved as-is.
func ParseDecklist(path string) (*List, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening decklist: %w", err)
	}
	defer f.Close()

	out := &List{Title: "Unnamed Deck"}

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "" || strings.HasPrefix(line, "Deck build"):
			continue
		case strings.HasPrefix(line, "("):
			entry, err := parseCardLine(line)
			if err != nil {
				return nil, &deck.FormatError{Path: path, Line: lineNo, Reason: err.Error()}
			}
			out.Cards = append(out.Cards, entry)
		case strings.HasPrefix(line, "Class: "):
			out.Class = strings.TrimPrefix(line, "Class: ")
		case strings.HasPrefix(line, "Hero: "):
			out.Hero = strings.TrimPrefix(line, "Hero: ")
		case strings.HasPrefix(line, "Weapons: "):
			out.Weapons = splitList(strings.TrimPrefix(line, "Weapons: "))
		case strings.HasPrefix(line, "Equipment: "):
			out.Equipment = splitList(strings.TrimPrefix(line, "Equipment: "))
		case strings.HasPrefix(line, "See the full deck"):
			out.SourceURL = strings.TrimPrefix(line, deckURLPrefix)
		default:
			out.Title = line
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading decklist: %w", err)
	}
	return out, nil
}

func parseCardLine(line string) (deck.Entry, error) {
	countStr, name, found := strings.Cut(line, " ")
	if !found {
		return deck.Entry{}, fmt.Errorf("card line has no name: %q", line)
	}
	countStr = strings.TrimSuffix(strings.TrimPrefix(countStr, "("), ")")
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

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
