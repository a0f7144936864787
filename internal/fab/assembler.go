package fab

import (
	"github.com/decklock/decklock/internal/cards"
	"github.com/decklock/decklock/internal/deck"
)

// CardView is one enriched decklist entry as templates see it.
type CardView struct {
	Record
	Count int `json:"count"`
	// Color is derived from the pitch value for the image-grid borders.
	Color string `json:"color,omitempty"`
	// Missing marks a card the external source could not resolve; templates
	// render an explicit placeholder for it.
	Missing bool `json:"missing,omitempty"`
}

// PageDeck is the assembled FaB page model.
type PageDeck struct {
	Name      string     `json:"name"`
	Format    string     `json:"format"`
	Hero      CardView   `json:"hero"`
	Weapons   []CardView `json:"weapons"`
	Equipment []CardView `json:"equipment"`
	Cards     []CardView `json:"cards"`
	Stacks    [][]int    `json:"stacks"`
	FabDBURL  string     `json:"fabdb_url,omitempty"`
}

const blitzDeckSize = 40

var pitchToColor = map[string]string{"1": "red", "2": "yellow", "3": "blue"}

// classifyFormat derives the constructed format purely from the total main
// deck count: exactly 40 cards is a Blitz deck.
func classifyFormat(totalCards int) string {
	if totalCards == blitzDeckSize {
		return "Blitz"
	}
	return "Classic Constructed"
}

func newCardView(res cards.Resolution[Record], count int) CardView {
	view := CardView{Record: res.Record, Count: count, Missing: res.Missing}
	if view.Name == "" {
		view.Name = res.Identifier
	}
	// Pitch derivation only applies when the stat is present; heroes and
	// equipment have none.
	if pitch := view.Stats.Resource.String(); pitch != "" {
		view.Color = pitchToColor[pitch]
	}
	return view
}

// Assemble joins the parsed decklist with its resolutions into the page
// model: format classification, image-grid stacks, enriched hero and gear.
func Assemble(list *List, hero cards.Resolution[Record], weapons, equipment []cards.Resolution[Record], cardRes []cards.Resolution[Record]) *PageDeck {
	out := &PageDeck{
		Name:     list.Title,
		Hero:     newCardView(hero, 1),
		FabDBURL: list.SourceURL,
	}

	for _, res := range weapons {
		out.Weapons = append(out.Weapons, newCardView(res, 1))
	}
	for _, res := range equipment {
		out.Equipment = append(out.Equipment, newCardView(res, 1))
	}

	totalCount := 0
	counts := make([]int, 0, len(list.Cards))
	for i, entry := range list.Cards {
		out.Cards = append(out.Cards, newCardView(cardRes[i], entry.Count))
		counts = append(counts, entry.Count)
		totalCount += entry.Count
	}

	out.Format = classifyFormat(totalCount)
	out.Stacks = deck.BuildStacks(counts, deck.StackSize)
	return out
}
