package client

import (
	"fmt"
	"io"

	"github.com/vctt94/austerity/pkg/austerity"
)

// WriteBoard writes one line per face-up card, in board order.
func WriteBoard(w io.Writer, g *austerity.Game) {
	for i, c := range g.Board() {
		price := c.Price()
		fmt.Fprintf(w, "Card %d:%c/%d/%d,%d,%d,%d\n", i,
			c.Discount().Letter(), c.Value(),
			price[austerity.Purple], price[austerity.Brown],
			price[austerity.Yellow], price[austerity.Red])
	}
}

// WritePlayerState writes one seat's public state on a single line.
func WritePlayerState(w io.Writer, p *austerity.Player) {
	fmt.Fprintf(w, "Player %c:%d:Discounts=%s:Tokens=%s\n",
		p.Letter(), p.Score,
		austerity.FormatTokenVec(p.Discounts),
		austerity.FormatWallet(p.Tokens))
}

// WriteGameStatus writes the full public game state: the board followed by
// every seat.
func WriteGameStatus(w io.Writer, g *austerity.Game) {
	WriteBoard(w, g)
	for _, p := range g.Players() {
		WritePlayerState(w, p)
	}
}

// WriteWinners writes the end-of-game winner announcement.
func WriteWinners(w io.Writer, g *austerity.Game) {
	fmt.Fprintf(w, "Game over. Winners are %s\n", g.WinnerLetters())
}
