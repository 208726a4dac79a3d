package bot

import (
	"github.com/vctt94/austerity/pkg/austerity"
	"github.com/vctt94/austerity/pkg/protocol"
)

// Shenzi buys greedily: the affordable card worth the most points, breaking
// ties by the smallest discounted price and then by the newest card. With
// nothing affordable it takes tokens preferring Purple, Brown, Yellow, Red,
// and failing that a wild.
type Shenzi struct{}

// ChooseAction implements client.Actor.
func (Shenzi) ChooseAction(g *austerity.Game, self int) (protocol.Action, error) {
	highestValue, lowestPrice, cardToBuy := -1, -1, -1
	for card := 0; card < g.BoardLen(); card++ {
		if !g.CanAfford(self, card) {
			continue
		}
		c, _ := g.CardAt(card)
		price := g.DiscountedCost(self, card)
		switch {
		case c.Value() > highestValue:
			highestValue, lowestPrice, cardToBuy = c.Value(), price, card
		case c.Value() == highestValue && price <= lowestPrice:
			// Equal price keeps the newer card.
			lowestPrice, cardToBuy = price, card
		}
	}
	if cardToBuy >= 0 {
		return purchase(g, self, cardToBuy), nil
	}

	if g.CanTakeTokens() {
		order := []austerity.Colour{austerity.Purple, austerity.Brown,
			austerity.Yellow, austerity.Red}
		return takeInOrder(g, austerity.TokenVec{}, 0, order), nil
	}

	return protocol.TakeWild{}, nil
}
