package bot

import (
	"github.com/vctt94/austerity/pkg/austerity"
	"github.com/vctt94/austerity/pkg/protocol"
)

// Banzai hoards first: while holding fewer than three tokens it takes from
// the piles preferring Yellow, Brown, Purple, Red. Otherwise it buys the
// most expensive affordable card worth any points, breaking ties by the
// purchase needing the most wilds and then by the oldest card, and failing
// that takes a wild.
type Banzai struct{}

// ChooseAction implements client.Actor.
func (Banzai) ChooseAction(g *austerity.Game, self int) (protocol.Action, error) {
	if g.CanTakeTokens() && g.Player(self).Tokens.Total() < 3 {
		order := []austerity.Colour{austerity.Yellow, austerity.Brown,
			austerity.Purple, austerity.Red}
		return takeInOrder(g, austerity.TokenVec{}, 0, order), nil
	}

	mostWilds, highestPrice, cardToBuy := -1, -1, -1
	for card := g.BoardLen() - 1; card >= 0; card-- {
		if !g.CanAfford(self, card) {
			continue
		}
		c, _ := g.CardAt(card)
		if c.Value() == 0 {
			continue
		}
		price := g.DiscountedCost(self, card)
		wilds := g.WildsNeeded(self, card)
		switch {
		case price > highestPrice:
			highestPrice, mostWilds, cardToBuy = price, wilds, card
		case price == highestPrice && wilds >= mostWilds:
			// Scanning newest to oldest, so equal candidates settle on
			// the oldest card.
			mostWilds, cardToBuy = wilds, card
		}
	}
	if cardToBuy >= 0 {
		return purchase(g, self, cardToBuy), nil
	}

	return protocol.TakeWild{}, nil
}
