package client

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vctt94/austerity/pkg/austerity"
	"github.com/vctt94/austerity/pkg/protocol"
)

func promptGame(t *testing.T) *austerity.Game {
	t.Helper()
	g, err := austerity.NewMirror(2)
	require.NoError(t, err)
	g.SetInitialTokens(3)
	return g
}

func TestPrompterWild(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("wild\n"), &out)

	action, err := p.ChooseAction(promptGame(t), 0)
	require.NoError(t, err)
	assert.Equal(t, protocol.TakeWild{}, action)
	assert.Equal(t, "Action> ", out.String())
}

func TestPrompterPurchaseAsksOnlyHeldTokens(t *testing.T) {
	g := promptGame(t)
	g.Player(0).Tokens = austerity.Wallet{1, 0, 0, 0, 2}

	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("purchase\n0\n1\n2\n"), &out)

	action, err := p.ChooseAction(g, 0)
	require.NoError(t, err)
	assert.Equal(t, protocol.Purchase{
		Card: 0,
		Pay:  austerity.Wallet{1, 0, 0, 0, 2},
	}, action)
	assert.Equal(t, "Action> Card> Token-P> Token-W> ", out.String())
}

func TestPrompterTakeBoundedByPiles(t *testing.T) {
	g := promptGame(t)

	// The 9 exceeds the pile of 3 and is reprompted.
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("take\n9\n1\n1\n1\n0\n"), &out)

	action, err := p.ChooseAction(g, 0)
	require.NoError(t, err)
	assert.Equal(t, protocol.Take{Taken: austerity.TokenVec{1, 1, 1, 0}}, action)
	assert.Equal(t, "Action> Token-P> Token-P> Token-B> Token-Y> Token-R> ", out.String())
}

func TestPrompterRepromptsUnknownAction(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("jump\n\nwild\n"), &out)

	action, err := p.ChooseAction(promptGame(t), 0)
	require.NoError(t, err)
	assert.Equal(t, protocol.TakeWild{}, action)
	assert.Equal(t, "Action> Action> Action> ", out.String())
}

func TestPrompterClosedInputFails(t *testing.T) {
	p := NewPrompter(strings.NewReader(""), &bytes.Buffer{})
	_, err := p.ChooseAction(promptGame(t), 0)
	assert.Error(t, err)
}
