package austerity

import (
	"fmt"
	"strings"
)

// Config carries everything needed to set up a game.
type Config struct {
	// Deck is the draw pile. Nil for client-side mirrors, which only
	// replay broadcast events and never draw.
	Deck *Deck
	// PlayerNames seats the players in order. Mirrors that never learn
	// names may pass empty strings.
	PlayerNames []string
	// InitialTokens is the starting size of each real-colour pile.
	InitialTokens int
	// WinThreshold is the score that ends the game.
	WinThreshold int
}

// Game holds the full state of one match: seats, face-up board, draw pile
// and token piles. It is not safe for concurrent use; callers serialise
// access.
type Game struct {
	players       []*Player
	deck          *Deck
	board         []Card
	piles         TokenVec
	initialTokens int
	winThreshold  int
}

// NewGame seats the named players and fills the token piles. It does not
// reveal any cards; the caller reveals up to BoardSize cards so it can
// announce each one.
func NewGame(cfg Config) (*Game, error) {
	n := len(cfg.PlayerNames)
	if n < MinPlayers || n > MaxPlayers {
		return nil, fmt.Errorf("player count %d out of range", n)
	}
	g := &Game{
		players:       make([]*Player, n),
		deck:          cfg.Deck,
		initialTokens: cfg.InitialTokens,
		winThreshold:  cfg.WinThreshold,
	}
	for i, name := range cfg.PlayerNames {
		g.players[i] = &Player{Seat: i, Name: name}
	}
	for c := 0; c < NumColours; c++ {
		g.piles[c] = cfg.InitialTokens
	}
	return g, nil
}

// NewMirror builds a client-side mirror with n anonymous seats and empty
// piles. The piles fill when the tokens announcement arrives.
func NewMirror(n int) (*Game, error) {
	return NewGame(Config{PlayerNames: make([]string, n)})
}

// NumPlayers returns the seat count.
func (g *Game) NumPlayers() int { return len(g.players) }

// Player returns the player in the given seat.
func (g *Game) Player(seat int) *Player { return g.players[seat] }

// Players returns the seats in order. The slice is shared; treat it as
// read-only.
func (g *Game) Players() []*Player { return g.players }

// Board returns the face-up cards in position order. The slice is shared;
// treat it as read-only.
func (g *Game) Board() []Card { return g.board }

// BoardLen returns the number of face-up cards.
func (g *Game) BoardLen() int { return len(g.board) }

// BoardEmpty reports whether no cards are face up.
func (g *Game) BoardEmpty() bool { return len(g.board) == 0 }

// CardAt returns the face-up card at position i.
func (g *Game) CardAt(i int) (Card, bool) {
	if i < 0 || i >= len(g.board) {
		return Card{}, false
	}
	return g.board[i], true
}

// Piles returns the current real-colour pile sizes.
func (g *Game) Piles() TokenVec { return g.piles }

// InitialTokens returns the starting pile size.
func (g *Game) InitialTokens() int { return g.initialTokens }

// WinThreshold returns the score that ends the game.
func (g *Game) WinThreshold() int { return g.winThreshold }

// DeckSize returns the number of cards left to draw. Zero for mirrors.
func (g *Game) DeckSize() int {
	if g.deck == nil {
		return 0
	}
	return g.deck.Size()
}

// SetInitialTokens fills every real-colour pile to n. Mirrors call this
// when the tokens announcement arrives.
func (g *Game) SetInitialTokens(n int) {
	g.initialTokens = n
	for c := 0; c < NumColours; c++ {
		g.piles[c] = n
	}
}

// Reveal draws the next card onto the board. ok is false when the deck is
// exhausted or the board is full.
func (g *Game) Reveal() (Card, bool) {
	if g.deck == nil || len(g.board) >= BoardSize {
		return Card{}, false
	}
	c, ok := g.deck.Draw()
	if !ok {
		return Card{}, false
	}
	g.board = append(g.board, c)
	return c, true
}

// AddBoardCard appends an announced card to a mirror's board.
func (g *Game) AddBoardCard(c Card) error {
	if len(g.board) >= BoardSize {
		return fmt.Errorf("board already holds %d cards", BoardSize)
	}
	g.board = append(g.board, c)
	return nil
}

// RequiredPayment computes the only payment the rules accept for the given
// seat and board position: per colour, the discounted price is paid from
// that colour's tokens as far as they go, and the total shortfall is paid
// in wilds. The wild slot may exceed what the player holds; CanAfford
// checks that.
func (g *Game) RequiredPayment(seat, card int) (Wallet, error) {
	var pay Wallet
	c, ok := g.CardAt(card)
	if !ok {
		return pay, ErrNoSuchCard
	}
	if seat < 0 || seat >= len(g.players) {
		return pay, ErrBadSeat
	}
	p := g.players[seat]
	for k := 0; k < NumColours; k++ {
		need := c.price[k] - p.Discounts[k]
		if need < 0 {
			need = 0
		}
		have := p.Tokens[k]
		if have >= need {
			pay[k] = need
		} else {
			pay[k] = have
			pay[Wild] += need - have
		}
	}
	return pay, nil
}

// CanAfford reports whether the seat holds enough tokens, wilds included,
// to buy the card at the given board position.
func (g *Game) CanAfford(seat, card int) bool {
	pay, err := g.RequiredPayment(seat, card)
	if err != nil {
		return false
	}
	return pay[Wild] <= g.players[seat].Tokens[Wild]
}

// WildsNeeded returns the wild component of the required payment.
func (g *Game) WildsNeeded(seat, card int) int {
	pay, err := g.RequiredPayment(seat, card)
	if err != nil {
		return 0
	}
	return pay[Wild]
}

// DiscountedCost returns the total token cost of the card at the given
// position for the seat, after its discounts.
func (g *Game) DiscountedCost(seat, card int) int {
	c, ok := g.CardAt(card)
	if !ok {
		return 0
	}
	p := g.players[seat]
	total := 0
	for k := 0; k < NumColours; k++ {
		need := c.price[k] - p.Discounts[k]
		if need > 0 {
			total += need
		}
	}
	return total
}

// Purchase validates and applies a purchase: the board position must hold a
// card, the seat must afford it and pay must be exactly the required
// payment.
func (g *Game) Purchase(seat, card int, pay Wallet) error {
	required, err := g.RequiredPayment(seat, card)
	if err != nil {
		return err
	}
	if required[Wild] > g.players[seat].Tokens[Wild] {
		return ErrCannotAfford
	}
	if pay != required {
		return ErrWrongPayment
	}
	g.ApplyPurchase(seat, card, pay)
	return nil
}

// ApplyPurchase applies an already-validated purchase: the payment leaves
// the buyer's wallet, real colours return to the piles, the buyer gains the
// card's value and discount and the card leaves the board with the cards
// above it shifting down. Mirrors call this directly for broadcast events.
func (g *Game) ApplyPurchase(seat, card int, pay Wallet) {
	c := g.board[card]
	p := g.players[seat]
	for k := 0; k < NumColours; k++ {
		p.Tokens[k] -= pay[k]
		g.piles[k] += pay[k]
	}
	p.Tokens[Wild] -= pay[Wild]
	p.Score += c.value
	p.Discounts[c.discount]++
	g.board = append(g.board[:card], g.board[card+1:]...)
}

// ValidTake reports whether take is a legal token take for the current
// piles: exactly TokensPerTake distinct colours, one token each, every
// chosen pile non-empty.
func (g *Game) ValidTake(take TokenVec) bool {
	picked := 0
	for k := 0; k < NumColours; k++ {
		switch take[k] {
		case 0:
		case 1:
			if g.piles[k] == 0 {
				return false
			}
			picked++
		default:
			return false
		}
	}
	return picked == TokensPerTake
}

// CanTakeTokens reports whether any legal take exists, i.e. at least
// TokensPerTake piles are non-empty.
func (g *Game) CanTakeTokens() bool {
	nonEmpty := 0
	for k := 0; k < NumColours; k++ {
		if g.piles[k] > 0 {
			nonEmpty++
		}
	}
	return nonEmpty >= TokensPerTake
}

// TakeTokens validates and applies a token take for the seat.
func (g *Game) TakeTokens(seat int, take TokenVec) error {
	if seat < 0 || seat >= len(g.players) {
		return ErrBadSeat
	}
	if !g.ValidTake(take) {
		return ErrInvalidTake
	}
	g.ApplyTake(seat, take)
	return nil
}

// ApplyTake moves the taken tokens from the piles to the seat's wallet.
func (g *Game) ApplyTake(seat int, take TokenVec) {
	p := g.players[seat]
	for k := 0; k < NumColours; k++ {
		g.piles[k] -= take[k]
		p.Tokens[k] += take[k]
	}
}

// TakeWild grants the seat one wild token. The wild supply is unbounded.
func (g *Game) TakeWild(seat int) {
	g.players[seat].Tokens[Wild]++
}

// ApplyPlayerSnapshot installs an announced player state into a mirror and
// deducts the seat's real-colour tokens from the piles, so that the piles
// reflect the initial size minus what every seat currently holds.
func (g *Game) ApplyPlayerSnapshot(seat, score int, discounts TokenVec, tokens Wallet) error {
	if seat < 0 || seat >= len(g.players) {
		return ErrBadSeat
	}
	p := g.players[seat]
	p.Score = score
	p.Discounts = discounts
	p.Tokens = tokens
	for k := 0; k < NumColours; k++ {
		g.piles[k] -= tokens[k]
	}
	return nil
}

// IsOver reports whether any seat has reached the win threshold.
func (g *Game) IsOver() bool {
	for _, p := range g.players {
		if p.Score >= g.winThreshold {
			return true
		}
	}
	return false
}

// Winners returns the seats holding the highest score.
func (g *Game) Winners() []int {
	best := 0
	for _, p := range g.players {
		if p.Score > best {
			best = p.Score
		}
	}
	var seats []int
	for _, p := range g.players {
		if p.Score == best {
			seats = append(seats, p.Seat)
		}
	}
	return seats
}

// WinnerLetters renders the winning seats as comma-separated letters in
// seat order, e.g. "A,C".
func (g *Game) WinnerLetters() string {
	var b strings.Builder
	for i, seat := range g.Winners() {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte(SeatLetter(seat))
	}
	return b.String()
}
