// Package bot implements the automated player strategies. Each strategy is
// a client.Actor deciding one turn at a time from the shared game mirror;
// the wire plumbing lives in pkg/client.
package bot

import (
	"fmt"

	"github.com/vctt94/austerity/pkg/austerity"
	"github.com/vctt94/austerity/pkg/client"
	"github.com/vctt94/austerity/pkg/protocol"
)

// Strategies lists the known strategy names in their canonical order.
var Strategies = []string{"shenzi", "banzai", "ed"}

// New returns the strategy with the given name.
func New(name string) (client.Actor, error) {
	switch name {
	case "shenzi":
		return Shenzi{}, nil
	case "banzai":
		return Banzai{}, nil
	case "ed":
		return Ed{}, nil
	}
	return nil, fmt.Errorf("unknown strategy %q", name)
}

// purchase builds the purchase action for a card the seat can afford,
// paying the canonical wild-minimal payment.
func purchase(g *austerity.Game, self, card int) protocol.Action {
	pay, _ := g.RequiredPayment(self, card)
	return protocol.Purchase{Card: card, Pay: pay}
}

// takeInOrder picks one token from each of the first three non-empty piles
// in the given colour preference order, extending a partial pick.
func takeInOrder(g *austerity.Game, take austerity.TokenVec, picked int, order []austerity.Colour) protocol.Action {
	piles := g.Piles()
	for _, c := range order {
		if picked < austerity.TokensPerTake && piles[c] > 0 && take[c] == 0 {
			take[c] = 1
			picked++
		}
	}
	return protocol.Take{Taken: take}
}
