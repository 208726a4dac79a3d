package austerity

// Colour identifies a token colour. The four real colours are followed by
// the wild pseudo-colour; the numeric order is fixed because it is part of
// the wire format.
type Colour int

const (
	Purple Colour = iota
	Brown
	Yellow
	Red
	Wild
)

const (
	// NumColours is the number of real token colours (wild excluded).
	NumColours = 4
	// TokenSlots is the number of wallet slots, including wild.
	TokenSlots = 5
	// BoardSize is the maximum number of face-up cards.
	BoardSize = 8
	// TokensPerTake is the number of tokens taken by a "take" action.
	TokensPerTake = 3
	// MinPlayers and MaxPlayers bound the size of a game.
	MinPlayers = 2
	MaxPlayers = 26
)

// ColourFromLetter maps one of the letters P, B, Y, R to its colour.
func ColourFromLetter(b byte) (Colour, bool) {
	switch b {
	case 'P':
		return Purple, true
	case 'B':
		return Brown, true
	case 'Y':
		return Yellow, true
	case 'R':
		return Red, true
	}
	return 0, false
}

// Letter returns the single-letter form of a colour.
func (c Colour) Letter() byte {
	switch c {
	case Purple:
		return 'P'
	case Brown:
		return 'B'
	case Yellow:
		return 'Y'
	case Red:
		return 'R'
	case Wild:
		return 'W'
	}
	return '?'
}

func (c Colour) String() string {
	return string(c.Letter())
}

// TokenVec holds one count per real colour, indexed by Colour.
type TokenVec [NumColours]int

// Total returns the sum of all counts in the vector.
func (v TokenVec) Total() int {
	t := 0
	for _, n := range v {
		t += n
	}
	return t
}

// Wallet holds one count per colour including wild, indexed by Colour.
type Wallet [TokenSlots]int

// Total returns the sum of all counts in the wallet.
func (w Wallet) Total() int {
	t := 0
	for _, n := range w {
		t += n
	}
	return t
}

// Real returns the real-colour part of the wallet.
func (w Wallet) Real() TokenVec {
	var v TokenVec
	copy(v[:], w[:NumColours])
	return v
}
