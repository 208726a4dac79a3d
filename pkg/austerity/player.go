package austerity

// Player holds one seat's public state. All of it is broadcast, so the
// fields are exported.
type Player struct {
	Seat      int
	Name      string
	Score     int
	Discounts TokenVec
	Tokens    Wallet
}

// Letter returns the seat letter, 'A' for seat 0.
func (p *Player) Letter() byte {
	return byte('A' + p.Seat)
}

// SeatLetter maps a seat index to its letter.
func SeatLetter(seat int) byte {
	return byte('A' + seat)
}

// SeatFromLetter maps a seat letter back to its index. ok is false for
// anything outside 'A'..'Z'.
func SeatFromLetter(b byte) (int, bool) {
	if b < 'A' || b > 'Z' {
		return 0, false
	}
	return int(b - 'A'), true
}
