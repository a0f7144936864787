package gwent

import (
	"sort"
	"strconv"
	"strings"

	"github.com/decklock/decklock/internal/cards"
	"github.com/decklock/decklock/internal/deck"
)

// Scrap values per rarity, multiplied by copy count. Anything that is not
// legendary/epic/rare crafts for the common price.
var scrapValues = map[string]int{
	"legendary": 800,
	"epic":      200,
	"rare":      80,
}

const scrapDefault = 30

// CardView is one enriched decklist entry as templates see it.
type CardView struct {
	Record
	Count   int  `json:"count"`
	Missing bool `json:"missing,omitempty"`
}

// CurvePoint is one step of the cumulative provision series used for chart
// rendering: after including all copies costing up to Provision, the deck
// has spent Cumulative provisions.
type CurvePoint struct {
	Provision  int `json:"provision"`
	Cumulative int `json:"cumulative"`
}

// PageDeck is the assembled Gwent page model. Leader and stratagem are
// pulled out of the card list into their own slots based on the resolved
// card data.
type PageDeck struct {
	Name           string       `json:"name"`
	Version        string       `json:"version"`
	Leader         *CardView    `json:"leader,omitempty"`
	Stratagem      *CardView    `json:"stratagem,omitempty"`
	Cards          []CardView   `json:"cards"`
	UnitCount      int          `json:"unit_count"`
	NonUnitCount   int          `json:"non_unit_count"`
	ProvisionTotal int          `json:"provision_total"`
	ScrapTotal     int          `json:"scrap_total"`
	Curve          []CurvePoint `json:"curve"`
}

func provisionOf(rec Record) int {
	// Scraped attribute; absent or junk values count as zero rather than
	// failing the deck.
	n, err := strconv.Atoi(rec.Provision)
	if err != nil {
		return 0
	}
	return n
}

func scrapValue(rarity string) int {
	if v, ok := scrapValues[strings.ToLower(rarity)]; ok {
		return v
	}
	return scrapDefault
}

// gwent.one marks leaders inconsistently across versions: older data carries
// type "leader", newer data a unit with a "Leader ability" category. Match
// both.
func isLeader(rec Record) bool {
	return strings.EqualFold(rec.Type, "leader") ||
		strings.Contains(strings.ToLower(rec.Category), "leader")
}

func isStratagem(rec Record) bool {
	return strings.Contains(strings.ToLower(rec.Category), "stratagem") ||
		strings.EqualFold(rec.Type, "stratagem")
}

// Assemble joins parsed entries with their resolutions and computes the
// provision totals, scrap valuation and cumulative provision curve.
func Assemble(d *deck.Deck, version string, resolutions []cards.Resolution[Record]) *PageDeck {
	out := &PageDeck{
		Name:    d.Title,
		Version: version,
	}

	var provisions []int
	for i, entry := range d.Cards {
		res := resolutions[i]
		view := CardView{Record: res.Record, Count: entry.Count, Missing: res.Missing}
		if view.Name == "" {
			view.Name = res.Identifier
		}

		switch {
		case isLeader(res.Record):
			out.Leader = &view
			continue
		case isStratagem(res.Record):
			out.Stratagem = &view
			out.ScrapTotal += scrapValue(res.Record.Rarity)
			continue
		}

		out.Cards = append(out.Cards, view)
		if strings.EqualFold(res.Record.Type, "unit") {
			out.UnitCount += entry.Count
		} else {
			out.NonUnitCount += entry.Count
		}

		provision := provisionOf(res.Record)
		out.ProvisionTotal += provision * entry.Count
		out.ScrapTotal += scrapValue(res.Record.Rarity) * entry.Count
		for c := 0; c < entry.Count; c++ {
			provisions = append(provisions, provision)
		}
	}

	sort.Ints(provisions)
	running := 0
	out.Curve = make([]CurvePoint, 0, len(provisions))
	for _, p := range provisions {
		running += p
		out.Curve = append(out.Curve, CurvePoint{Provision: p, Cumulative: running})
	}
	return out
}
