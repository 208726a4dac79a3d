package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vctt94/austerity/pkg/austerity"
	"github.com/vctt94/austerity/pkg/protocol"
)

func mirror(t *testing.T, players, tokens int) *austerity.Game {
	t.Helper()
	g, err := austerity.NewMirror(players)
	require.NoError(t, err)
	g.SetInitialTokens(tokens)
	return g
}

func addCard(t *testing.T, g *austerity.Game, raw string) {
	t.Helper()
	c, err := austerity.ParseCard(raw)
	require.NoError(t, err)
	require.NoError(t, g.AddBoardCard(c))
}

// drain empties the given pile.
func drain(g *austerity.Game, c austerity.Colour) {
	var take austerity.TokenVec
	take[c] = g.Piles()[c]
	g.ApplyTake(0, take)
	g.Player(0).Tokens = austerity.Wallet{}
}

func TestNewStrategy(t *testing.T) {
	for _, name := range Strategies {
		actor, err := New(name)
		require.NoError(t, err)
		assert.NotNil(t, actor)
	}
	_, err := New("scar")
	assert.Error(t, err)
}

func TestShenziBuysHighestValue(t *testing.T) {
	g := mirror(t, 2, 4)
	addCard(t, g, "P:1:1,0,0,0")
	addCard(t, g, "B:2:0,3,0,0")
	g.Player(0).Tokens = austerity.Wallet{1, 3, 0, 0, 0}

	action, err := Shenzi{}.ChooseAction(g, 0)
	require.NoError(t, err)
	assert.Equal(t, protocol.Purchase{Card: 1, Pay: austerity.Wallet{0, 3, 0, 0, 0}}, action)
}

func TestShenziTieBreaks(t *testing.T) {
	t.Run("cheaper wins", func(t *testing.T) {
		g := mirror(t, 2, 4)
		addCard(t, g, "P:2:2,0,0,0")
		addCard(t, g, "B:2:1,0,0,0")
		g.Player(0).Tokens = austerity.Wallet{2, 0, 0, 0, 0}

		action, err := Shenzi{}.ChooseAction(g, 0)
		require.NoError(t, err)
		assert.Equal(t, protocol.Purchase{Card: 1, Pay: austerity.Wallet{1, 0, 0, 0, 0}}, action)
	})

	t.Run("newest wins", func(t *testing.T) {
		g := mirror(t, 2, 4)
		addCard(t, g, "P:2:1,0,0,0")
		addCard(t, g, "B:2:1,0,0,0")
		g.Player(0).Tokens = austerity.Wallet{2, 0, 0, 0, 0}

		action, err := Shenzi{}.ChooseAction(g, 0)
		require.NoError(t, err)
		assert.Equal(t, protocol.Purchase{Card: 1, Pay: austerity.Wallet{1, 0, 0, 0, 0}}, action)
	})
}

func TestShenziTakesPurpleFirst(t *testing.T) {
	g := mirror(t, 2, 4)
	addCard(t, g, "P:1:9,9,9,9")

	action, err := Shenzi{}.ChooseAction(g, 0)
	require.NoError(t, err)
	assert.Equal(t, protocol.Take{Taken: austerity.TokenVec{1, 1, 1, 0}}, action)

	drain(g, austerity.Brown)
	action, err = Shenzi{}.ChooseAction(g, 0)
	require.NoError(t, err)
	assert.Equal(t, protocol.Take{Taken: austerity.TokenVec{1, 0, 1, 1}}, action)
}

func TestShenziFallsBackToWild(t *testing.T) {
	g := mirror(t, 2, 4)
	addCard(t, g, "P:1:9,9,9,9")
	drain(g, austerity.Purple)
	drain(g, austerity.Brown)

	action, err := Shenzi{}.ChooseAction(g, 0)
	require.NoError(t, err)
	assert.Equal(t, protocol.TakeWild{}, action)
}

func TestBanzaiHoardsBelowThreeTokens(t *testing.T) {
	g := mirror(t, 2, 4)
	addCard(t, g, "P:1:0,0,0,0") // free card, still not taken while hoarding
	g.Player(0).Tokens = austerity.Wallet{0, 0, 0, 0, 2}

	action, err := Banzai{}.ChooseAction(g, 0)
	require.NoError(t, err)
	assert.Equal(t, protocol.Take{Taken: austerity.TokenVec{1, 1, 1, 0}}, action)

	// Yellow drained: the preference order is Yellow, Brown, Purple, Red.
	drain(g, austerity.Yellow)
	g.Player(0).Tokens = austerity.Wallet{0, 0, 0, 0, 2}
	action, err = Banzai{}.ChooseAction(g, 0)
	require.NoError(t, err)
	assert.Equal(t, protocol.Take{Taken: austerity.TokenVec{1, 1, 0, 1}}, action)
}

func TestBanzaiBuysMostExpensive(t *testing.T) {
	g := mirror(t, 2, 4)
	addCard(t, g, "P:0:1,0,0,0") // zero points, never bought
	addCard(t, g, "B:1:2,0,0,0")
	addCard(t, g, "Y:5:1,1,0,0")
	g.Player(0).Tokens = austerity.Wallet{3, 3, 0, 0, 0}

	action, err := Banzai{}.ChooseAction(g, 0)
	require.NoError(t, err)
	// Both priced cards cost 2; the tie settles on the older one.
	assert.Equal(t, protocol.Purchase{Card: 1, Pay: austerity.Wallet{2, 0, 0, 0, 0}}, action)
}

func TestBanzaiPrefersMoreWilds(t *testing.T) {
	g := mirror(t, 2, 4)
	addCard(t, g, "B:1:0,2,0,0") // needs two wilds
	addCard(t, g, "P:1:2,0,0,0") // needs one wild
	g.Player(0).Tokens = austerity.Wallet{1, 0, 0, 0, 2}

	action, err := Banzai{}.ChooseAction(g, 0)
	require.NoError(t, err)
	assert.Equal(t, protocol.Purchase{Card: 0, Pay: austerity.Wallet{0, 0, 0, 0, 2}}, action)
}

func TestBanzaiWildWhenNothingToBuy(t *testing.T) {
	g := mirror(t, 2, 4)
	addCard(t, g, "P:1:9,9,9,9")
	g.Player(0).Tokens = austerity.Wallet{3, 0, 0, 0, 0}

	action, err := Banzai{}.ChooseAction(g, 0)
	require.NoError(t, err)
	assert.Equal(t, protocol.TakeWild{}, action)
}

func TestEdBuysWhatOpponentWants(t *testing.T) {
	g := mirror(t, 2, 4)
	addCard(t, g, "P:3:2,0,0,0")
	g.Player(0).Tokens = austerity.Wallet{2, 0, 0, 0, 0}
	g.Player(1).Tokens = austerity.Wallet{2, 0, 0, 0, 0}

	action, err := Ed{}.ChooseAction(g, 0)
	require.NoError(t, err)
	assert.Equal(t, protocol.Purchase{Card: 0, Pay: austerity.Wallet{2, 0, 0, 0, 0}}, action)
}

func TestEdTakesTowardTargetCard(t *testing.T) {
	g := mirror(t, 2, 4)
	addCard(t, g, "P:3:1,0,0,0")
	g.Player(1).Tokens = austerity.Wallet{1, 0, 0, 0, 0}

	// Ed needs only purple for the target, then tops up Yellow, Red.
	action, err := Ed{}.ChooseAction(g, 0)
	require.NoError(t, err)
	assert.Equal(t, protocol.Take{Taken: austerity.TokenVec{1, 0, 1, 1}}, action)
}

func TestEdTakesYellowFirstWithoutTarget(t *testing.T) {
	g := mirror(t, 2, 4)
	addCard(t, g, "P:3:9,9,9,9")

	action, err := Ed{}.ChooseAction(g, 0)
	require.NoError(t, err)
	assert.Equal(t, protocol.Take{Taken: austerity.TokenVec{0, 1, 1, 1}}, action)
}

func TestEdPrefersSoonerOpponent(t *testing.T) {
	g := mirror(t, 3, 4)
	addCard(t, g, "P:2:1,0,0,0") // only seat 0 can afford
	addCard(t, g, "B:2:0,1,0,0") // only seat 2 can afford
	g.Player(0).Tokens = austerity.Wallet{1, 0, 0, 0, 0}
	g.Player(1).Tokens = austerity.Wallet{0, 1, 0, 0, 0}
	g.Player(2).Tokens = austerity.Wallet{0, 1, 0, 0, 0}

	// Seat 2 acts right after seat 1, so its card wins the tie; seat 1
	// happens to afford it too.
	action, err := Ed{}.ChooseAction(g, 1)
	require.NoError(t, err)
	assert.Equal(t, protocol.Purchase{Card: 1, Pay: austerity.Wallet{0, 1, 0, 0, 0}}, action)
}

func TestEdWildWhenNoTakePossible(t *testing.T) {
	g := mirror(t, 2, 4)
	drain(g, austerity.Purple)
	drain(g, austerity.Brown)

	action, err := Ed{}.ChooseAction(g, 0)
	require.NoError(t, err)
	assert.Equal(t, protocol.TakeWild{}, action)
}
