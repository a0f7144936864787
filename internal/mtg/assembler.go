package mtg

import (
	"math"

	"github.com/decklock/decklock/internal/cards"
	"github.com/decklock/decklock/internal/deck"
)

// curveCap is the last mana-curve bucket; anything costlier lands in it.
const curveCap = 11

var colorNames = map[string]string{
	"W": "white",
	"U": "blue",
	"B": "black",
	"R": "red",
	"G": "green",
}

// CardView is one enriched decklist entry as templates see it.
type CardView struct {
	Record
	Count int `json:"count"`
	// SetCode is the qualifier as written in the decklist, which may differ
	// from the set Scryfall resolved the name to.
	SetCode   string `json:"set_code,omitempty"`
	Sideboard bool   `json:"sideboard,omitempty"`
	Missing   bool   `json:"missing,omitempty"`
}

// PageDeck is the assembled MTG page model.
type PageDeck struct {
	Name      string     `json:"name"`
	Format    string     `json:"format,omitempty"`
	Creator   string     `json:"creator,omitempty"`
	Cards     []CardView `json:"cards"`
	Sideboard []CardView `json:"sideboard,omitempty"`
	// Curve is the mana-curve histogram: color bucket -> CMC bucket -> count
	// of copies. CMC buckets are capped at 11.
	Curve map[string][]int `json:"curve"`
	// Stacks group main and sideboard copies into fixed-size image-grid
	// chunks.
	Stacks          [][]int `json:"stacks"`
	SideboardStacks [][]int `json:"sideboard_stacks,omitempty"`
}

// colorBucket maps a card's color identity onto a curve row: colorless
// cards count as artifacts, single-colored cards as their color, everything
// else is multicolor.
func colorBucket(colors []string) string {
	switch len(colors) {
	case 0:
		return "artifact"
	case 1:
		if name, ok := colorNames[colors[0]]; ok {
			return name
		}
		return "multicolor"
	default:
		return "multicolor"
	}
}

// cmcBucket rounds a mana value into its histogram bucket, capped at 11.
func cmcBucket(cmc float64) int {
	bucket := int(math.Round(cmc))
	if bucket > curveCap {
		bucket = curveCap
	}
	if bucket < 0 {
		bucket = 0
	}
	return bucket
}

// Assemble joins parsed entries with their resolutions and computes the
// curve histogram and display stacks.
func Assemble(d *deck.Deck, resolutions []cards.Resolution[Record]) *PageDeck {
	out := &PageDeck{
		Name:    d.Title,
		Format:  d.Extra["format"],
		Creator: d.Extra["creator"],
		Curve:   map[string][]int{},
	}

	var mainCounts, sideCounts []int
	for i, entry := range d.Cards {
		res := resolutions[i]
		view := CardView{
			Record:    res.Record,
			Count:     entry.Count,
			SetCode:   entry.Qualifier,
			Sideboard: entry.Role == deck.RoleSideboard,
			Missing:   res.Missing,
		}
		if view.Name == "" {
			view.Name = res.Identifier
		}

		if entry.Role == deck.RoleSideboard {
			out.Sideboard = append(out.Sideboard, view)
			sideCounts = append(sideCounts, entry.Count)
			continue
		}
		out.Cards = append(out.Cards, view)
		mainCounts = append(mainCounts, entry.Count)

		if res.Missing {
			continue
		}
		bucket := colorBucket(res.Record.Colors)
		row := out.Curve[bucket]
		if row == nil {
			row = make([]int, curveCap+1)
			out.Curve[bucket] = row
		}
		row[cmcBucket(res.Record.CMC)] += entry.Count
	}

	out.Stacks = deck.BuildStacks(mainCounts, deck.StackSize)
	out.SideboardStacks = deck.BuildStacks(sideCounts, deck.StackSize)
	return out
}
