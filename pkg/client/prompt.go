package client

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/vctt94/austerity/pkg/austerity"
	"github.com/vctt94/austerity/pkg/protocol"
)

// Prompter is an Actor that asks a human for each turn. Prompts go to Out
// and answers are read line by line from In; anything unparseable is
// silently reprompted. Only a closed In ends the session.
type Prompter struct {
	In  *bufio.Reader
	Out io.Writer
}

// NewPrompter creates a Prompter reading answers from in and writing
// prompts to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{In: bufio.NewReader(in), Out: out}
}

func (p *Prompter) readAnswer() (string, error) {
	line, err := p.In.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(line, "\n"), nil
}

// askInt prompts until a plain decimal in [0, max] is entered.
func (p *Prompter) askInt(prompt string, max int) (int, error) {
	for {
		fmt.Fprint(p.Out, prompt)
		line, err := p.readAnswer()
		if err != nil {
			return 0, err
		}
		n, ok := austerity.ParseUint(line)
		if ok && n <= max {
			return n, nil
		}
	}
}

// ChooseAction implements Actor by walking the human through an action
// choice, then the per-action details.
func (p *Prompter) ChooseAction(g *austerity.Game, self int) (protocol.Action, error) {
	for {
		fmt.Fprint(p.Out, "Action> ")
		line, err := p.readAnswer()
		if err != nil {
			return nil, err
		}
		switch line {
		case "purchase":
			return p.promptPurchase(g, self)
		case "take":
			return p.promptTake(g)
		case "wild":
			return protocol.TakeWild{}, nil
		}
	}
}

// promptPurchase asks for a board position and then, for every token kind
// the player actually holds, how many to spend. It validates amounts
// against the player's holdings only; an unaffordable offer still goes to
// the server, which is the judge of payments.
func (p *Prompter) promptPurchase(g *austerity.Game, self int) (protocol.Action, error) {
	card, err := p.askInt("Card> ", austerity.BoardSize-1)
	if err != nil {
		return nil, err
	}
	var pay austerity.Wallet
	held := g.Player(self).Tokens
	for k := 0; k < austerity.TokenSlots; k++ {
		if held[k] == 0 {
			continue
		}
		prompt := fmt.Sprintf("Token-%c> ", austerity.Colour(k).Letter())
		if pay[k], err = p.askInt(prompt, held[k]); err != nil {
			return nil, err
		}
	}
	return protocol.Purchase{Card: card, Pay: pay}, nil
}

// promptTake asks how many tokens of each real colour to take, bounded by
// the pile sizes.
func (p *Prompter) promptTake(g *austerity.Game) (protocol.Action, error) {
	var take austerity.TokenVec
	piles := g.Piles()
	for k := 0; k < austerity.NumColours; k++ {
		prompt := fmt.Sprintf("Token-%c> ", austerity.Colour(k).Letter())
		n, err := p.askInt(prompt, piles[k])
		if err != nil {
			return nil, err
		}
		take[k] = n
	}
	return protocol.Take{Taken: take}, nil
}
