package austerity

import (
	"fmt"
	"os"
	"strings"
)

// Deck is an ordered stack of cards. Cards are drawn from the front, in the
// order the deck file lists them.
type Deck struct {
	cards []Card
}

// NewDeck builds a deck from an explicit card order.
func NewDeck(cards []Card) *Deck {
	d := &Deck{cards: make([]Card, len(cards))}
	copy(d.cards, cards)
	return d
}

// LoadDeckFile reads and validates a deck file. Every line must be a card in
// the D:V:P,B,Y,R form, the file must contain at least one card, and it must
// end with a newline. Blank lines and stray whitespace are rejected.
func LoadDeckFile(path string) (*Deck, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseDeck(string(raw))
}

// ParseDeck validates raw deck file contents. See LoadDeckFile.
func ParseDeck(raw string) (*Deck, error) {
	if raw == "" || raw[len(raw)-1] != '\n' {
		return nil, fmt.Errorf("deck file must end with a newline")
	}
	lines := strings.Split(raw[:len(raw)-1], "\n")
	cards := make([]Card, 0, len(lines))
	for i, line := range lines {
		card, err := ParseCard(line)
		if err != nil {
			return nil, fmt.Errorf("deck line %d: %v", i+1, err)
		}
		cards = append(cards, card)
	}
	if len(cards) == 0 {
		return nil, fmt.Errorf("deck file holds no cards")
	}
	return &Deck{cards: cards}, nil
}

// Copy returns an independent deck with the same remaining card order. Each
// game draws from its own copy.
func (d *Deck) Copy() *Deck {
	return NewDeck(d.cards)
}

// Draw removes and returns the next card. ok is false once the deck is
// exhausted.
func (d *Deck) Draw() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	c := d.cards[0]
	d.cards = d.cards[1:]
	return c, true
}

// Size returns the number of cards left in the deck.
func (d *Deck) Size() int {
	return len(d.cards)
}
