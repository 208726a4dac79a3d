package austerity

import (
	"fmt"
	"strings"
)

// Card is a purchasable development card. Fields are immutable after
// construction.
type Card struct {
	discount Colour
	value    int
	price    TokenVec
}

// NewCard constructs a card with the given discount colour, point value and
// price vector.
func NewCard(discount Colour, value int, price TokenVec) Card {
	return Card{discount: discount, value: value, price: price}
}

// Discount returns the colour this card discounts once owned.
func (c Card) Discount() Colour { return c.discount }

// Value returns the card's point value.
func (c Card) Value() int { return c.value }

// Price returns the card's undiscounted price vector.
func (c Card) Price() TokenVec { return c.price }

// String renders the card in the D:V:P,B,Y,R text form.
func (c Card) String() string {
	var b strings.Builder
	b.WriteByte(c.discount.Letter())
	fmt.Fprintf(&b, ":%d:%d,%d,%d,%d", c.value,
		c.price[Purple], c.price[Brown], c.price[Yellow], c.price[Red])
	return b.String()
}

// ParseCard parses the D:V:P,B,Y,R text form. The format is strict: the
// discount is one of P, B, Y, R and every number is a plain non-negative
// decimal with no sign, spaces or leading zeros.
func ParseCard(s string) (Card, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) != 3 || len(parts[0]) != 1 {
		return Card{}, fmt.Errorf("malformed card %q", s)
	}
	discount, ok := ColourFromLetter(parts[0][0])
	if !ok {
		return Card{}, fmt.Errorf("bad card discount %q", parts[0])
	}
	value, ok := ParseUint(parts[1])
	if !ok {
		return Card{}, fmt.Errorf("bad card value %q", parts[1])
	}
	price, ok := ParseTokenVec(parts[2])
	if !ok {
		return Card{}, fmt.Errorf("bad card price %q", parts[2])
	}
	return Card{discount: discount, value: value, price: price}, nil
}

// ParseUint parses a strict non-negative decimal: at least one digit, no
// sign, no surrounding space and no leading zeros.
func ParseUint(s string) (int, bool) {
	if s == "" || (len(s) > 1 && s[0] == '0') {
		return 0, false
	}
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		if n > (1<<31)/10 {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

// ParseTokenVec parses the P,B,Y,R comma form with strict integers.
func ParseTokenVec(s string) (TokenVec, bool) {
	var v TokenVec
	parts := strings.Split(s, ",")
	if len(parts) != NumColours {
		return v, false
	}
	for i, p := range parts {
		n, ok := ParseUint(p)
		if !ok {
			return v, false
		}
		v[i] = n
	}
	return v, true
}

// FormatTokenVec renders the P,B,Y,R comma form.
func FormatTokenVec(v TokenVec) string {
	return fmt.Sprintf("%d,%d,%d,%d", v[Purple], v[Brown], v[Yellow], v[Red])
}

// ParseWallet parses the P,B,Y,R,W comma form with strict integers.
func ParseWallet(s string) (Wallet, bool) {
	var w Wallet
	parts := strings.Split(s, ",")
	if len(parts) != TokenSlots {
		return w, false
	}
	for i, p := range parts {
		n, ok := ParseUint(p)
		if !ok {
			return w, false
		}
		w[i] = n
	}
	return w, true
}

// FormatWallet renders the P,B,Y,R,W comma form.
func FormatWallet(w Wallet) string {
	return fmt.Sprintf("%d,%d,%d,%d,%d",
		w[Purple], w[Brown], w[Yellow], w[Red], w[Wild])
}
