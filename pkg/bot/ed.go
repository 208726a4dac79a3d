package bot

import (
	"github.com/vctt94/austerity/pkg/austerity"
	"github.com/vctt94/austerity/pkg/protocol"
)

// Ed plays denial: it finds the face-up card worth the most points that any
// opponent can afford right now, preferring opponents who act sooner after
// Ed in the round and, among those, the oldest card. If Ed can afford that
// card it buys it. Otherwise it takes tokens chosen to close the gap on
// that card, in the order Yellow, Red, Brown, Purple, topping up in the
// same order. Failing all of that it takes a wild.
type Ed struct{}

var edOrder = []austerity.Colour{austerity.Yellow, austerity.Red,
	austerity.Brown, austerity.Purple}

// ChooseAction implements client.Actor.
func (Ed) ChooseAction(g *austerity.Game, self int) (protocol.Action, error) {
	target := identifyCard(g, self)

	if target >= 0 && g.CanAfford(self, target) {
		return purchase(g, self, target), nil
	}

	if g.CanTakeTokens() {
		return edTake(g, self, target), nil
	}

	return protocol.TakeWild{}, nil
}

// identifyCard scans the opponents from the seat before self backwards,
// wrapping, so that the last candidate examined belongs to the opponent
// acting right after self; equal values replace, which settles preferences
// on soonest opponent and oldest card.
func identifyCard(g *austerity.Game, self int) int {
	highestValue, cardToBuy := -1, -1
	n := g.NumPlayers()
	seat := self - 1
	for seat != self {
		if seat < 0 {
			if self == n-1 {
				break
			}
			seat = n - 1
		}
		for card := g.BoardLen() - 1; card >= 0; card-- {
			if !g.CanAfford(seat, card) {
				continue
			}
			c, _ := g.CardAt(card)
			if c.Value() >= highestValue {
				highestValue, cardToBuy = c.Value(), card
			}
		}
		seat--
	}
	return cardToBuy
}

// edTake takes the colours still missing for the target card first, then
// tops up from whatever piles remain.
func edTake(g *austerity.Game, self, target int) protocol.Action {
	var take austerity.TokenVec
	picked := 0
	if target >= 0 {
		c, _ := g.CardAt(target)
		p := g.Player(self)
		piles := g.Piles()
		for _, k := range edOrder {
			need := c.Price()[k] - p.Discounts[k] - p.Tokens[k]
			if need > 0 && piles[k] > 0 && picked < austerity.TokensPerTake {
				take[k] = 1
				picked++
			}
		}
	}
	return takeInOrder(g, take, picked, edOrder)
}
