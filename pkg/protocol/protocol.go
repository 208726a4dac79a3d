// Package protocol implements the line-oriented text protocol spoken
// between the austerity server, the hub and the players. Every message is a
// single line with no whitespace; integers are strict non-negative decimals
// and seats are single letters starting at A. Encoding and decoding are
// exact inverses on valid lines.
package protocol

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vctt94/austerity/pkg/austerity"
)

// ErrBadMessage marks a line that is not a well-formed protocol message.
var ErrBadMessage = errors.New("malformed message")

// Message is any server-to-player announcement.
type Message interface {
	// Encode renders the message as its wire line, without the trailing
	// newline.
	Encode() string
}

// Action is any player-to-server turn action.
type Action interface {
	// Encode renders the action as its wire line, without the trailing
	// newline.
	Encode() string
}

// Rid carries a reconnect identifier: game name, per-name game counter and
// seat. Unlike every other message the seat is numeric, because the client
// echoes the identifier back verbatim when reconnecting.
type Rid struct {
	Name    string
	Counter int
	Seat    int
}

func (m Rid) Encode() string {
	return fmt.Sprintf("rid%s,%d,%d", m.Name, m.Counter, m.Seat)
}

// PlayInfo tells a player its seat letter and the game's player count.
type PlayInfo struct {
	Seat    int
	Players int
}

func (m PlayInfo) Encode() string {
	return fmt.Sprintf("playinfo%c/%d", austerity.SeatLetter(m.Seat), m.Players)
}

// Tokens announces the initial size of each real-colour pile.
type Tokens struct {
	Count int
}

func (m Tokens) Encode() string {
	return fmt.Sprintf("tokens%d", m.Count)
}

// NewCard announces a card revealed onto the board.
type NewCard struct {
	Card austerity.Card
}

func (m NewCard) Encode() string {
	return "newcard" + m.Card.String()
}

// Purchased announces a completed purchase: which seat bought which board
// position and the exact payment made.
type Purchased struct {
	Seat int
	Card int
	Paid austerity.Wallet
}

func (m Purchased) Encode() string {
	return fmt.Sprintf("purchased%c:%d:%s",
		austerity.SeatLetter(m.Seat), m.Card, austerity.FormatWallet(m.Paid))
}

// Took announces a completed token take.
type Took struct {
	Seat  int
	Taken austerity.TokenVec
}

func (m Took) Encode() string {
	return fmt.Sprintf("took%c:%s",
		austerity.SeatLetter(m.Seat), austerity.FormatTokenVec(m.Taken))
}

// WildTaken announces that a seat took a wild token.
type WildTaken struct {
	Seat int
}

func (m WildTaken) Encode() string {
	return fmt.Sprintf("wild%c", austerity.SeatLetter(m.Seat))
}

// PlayerState announces one seat's full public state, used during
// reconnect catch-up.
type PlayerState struct {
	Seat      int
	Score     int
	Discounts austerity.TokenVec
	Tokens    austerity.Wallet
}

func (m PlayerState) Encode() string {
	return fmt.Sprintf("player%c:%d:d=%s:t=%s",
		austerity.SeatLetter(m.Seat), m.Score,
		austerity.FormatTokenVec(m.Discounts), austerity.FormatWallet(m.Tokens))
}

// DoWhat prompts the receiving player for its turn action.
type DoWhat struct{}

func (DoWhat) Encode() string { return "dowhat" }

// Disco announces that the game ended because a seat disconnected.
type Disco struct {
	Seat int
}

func (m Disco) Encode() string {
	return fmt.Sprintf("disco%c", austerity.SeatLetter(m.Seat))
}

// Invalid announces that the game ended because a seat broke protocol.
type Invalid struct {
	Seat int
}

func (m Invalid) Encode() string {
	return fmt.Sprintf("invalid%c", austerity.SeatLetter(m.Seat))
}

// EndOfGame announces a normal end of game.
type EndOfGame struct{}

func (EndOfGame) Encode() string { return "eog" }

// ParseMessage decodes a server-to-player line. Unknown verbs and any
// malformed payload return ErrBadMessage.
func ParseMessage(line string) (Message, error) {
	switch {
	case strings.HasPrefix(line, "rid"):
		return parseRid(line[len("rid"):])
	case strings.HasPrefix(line, "playinfo"):
		return parsePlayInfo(line[len("playinfo"):])
	case strings.HasPrefix(line, "tokens"):
		n, ok := austerity.ParseUint(line[len("tokens"):])
		if !ok {
			return nil, ErrBadMessage
		}
		return Tokens{Count: n}, nil
	case strings.HasPrefix(line, "newcard"):
		card, err := austerity.ParseCard(line[len("newcard"):])
		if err != nil {
			return nil, ErrBadMessage
		}
		return NewCard{Card: card}, nil
	case strings.HasPrefix(line, "purchased"):
		return parsePurchased(line[len("purchased"):])
	case strings.HasPrefix(line, "took"):
		return parseTook(line[len("took"):])
	case strings.HasPrefix(line, "wild"):
		seat, ok := seatOnly(line[len("wild"):])
		if !ok {
			return nil, ErrBadMessage
		}
		return WildTaken{Seat: seat}, nil
	case strings.HasPrefix(line, "player"):
		return parsePlayerState(line[len("player"):])
	case line == "dowhat":
		return DoWhat{}, nil
	case strings.HasPrefix(line, "disco"):
		seat, ok := seatOnly(line[len("disco"):])
		if !ok {
			return nil, ErrBadMessage
		}
		return Disco{Seat: seat}, nil
	case strings.HasPrefix(line, "invalid"):
		seat, ok := seatOnly(line[len("invalid"):])
		if !ok {
			return nil, ErrBadMessage
		}
		return Invalid{Seat: seat}, nil
	case line == "eog":
		return EndOfGame{}, nil
	}
	return nil, ErrBadMessage
}

// ParseRid decodes the payload of a rid line, as sent back by a
// reconnecting player.
func ParseRid(payload string) (Rid, error) {
	return parseRid(payload)
}

func parseRid(s string) (Rid, error) {
	// The game name may itself contain commas, so the counter and seat
	// are the last two comma fields.
	last := strings.LastIndexByte(s, ',')
	if last < 0 {
		return Rid{}, ErrBadMessage
	}
	mid := strings.LastIndexByte(s[:last], ',')
	if mid < 0 {
		return Rid{}, ErrBadMessage
	}
	name := s[:mid]
	counter, ok := austerity.ParseUint(s[mid+1 : last])
	if !ok || name == "" {
		return Rid{}, ErrBadMessage
	}
	seat, ok := austerity.ParseUint(s[last+1:])
	if !ok || seat >= austerity.MaxPlayers {
		return Rid{}, ErrBadMessage
	}
	return Rid{Name: name, Counter: counter, Seat: seat}, nil
}

func parsePlayInfo(s string) (PlayInfo, error) {
	if len(s) < 3 || s[1] != '/' {
		return PlayInfo{}, ErrBadMessage
	}
	seat, ok := austerity.SeatFromLetter(s[0])
	if !ok {
		return PlayInfo{}, ErrBadMessage
	}
	n, ok := austerity.ParseUint(s[2:])
	if !ok || n < austerity.MinPlayers || n > austerity.MaxPlayers || seat >= n {
		return PlayInfo{}, ErrBadMessage
	}
	return PlayInfo{Seat: seat, Players: n}, nil
}

func parsePurchased(s string) (Purchased, error) {
	if len(s) < 2 || s[1] != ':' {
		return Purchased{}, ErrBadMessage
	}
	seat, ok := austerity.SeatFromLetter(s[0])
	if !ok {
		return Purchased{}, ErrBadMessage
	}
	rest := s[2:]
	colon := strings.IndexByte(rest, ':')
	if colon < 0 {
		return Purchased{}, ErrBadMessage
	}
	card, ok := austerity.ParseUint(rest[:colon])
	if !ok || card >= austerity.BoardSize {
		return Purchased{}, ErrBadMessage
	}
	paid, ok := austerity.ParseWallet(rest[colon+1:])
	if !ok {
		return Purchased{}, ErrBadMessage
	}
	return Purchased{Seat: seat, Card: card, Paid: paid}, nil
}

func parseTook(s string) (Took, error) {
	if len(s) < 2 || s[1] != ':' {
		return Took{}, ErrBadMessage
	}
	seat, ok := austerity.SeatFromLetter(s[0])
	if !ok {
		return Took{}, ErrBadMessage
	}
	taken, ok := austerity.ParseTokenVec(s[2:])
	if !ok {
		return Took{}, ErrBadMessage
	}
	return Took{Seat: seat, Taken: taken}, nil
}

func parsePlayerState(s string) (PlayerState, error) {
	if len(s) < 2 || s[1] != ':' {
		return PlayerState{}, ErrBadMessage
	}
	seat, ok := austerity.SeatFromLetter(s[0])
	if !ok {
		return PlayerState{}, ErrBadMessage
	}
	parts := strings.Split(s[2:], ":")
	if len(parts) != 3 ||
		!strings.HasPrefix(parts[1], "d=") || !strings.HasPrefix(parts[2], "t=") {
		return PlayerState{}, ErrBadMessage
	}
	score, ok := austerity.ParseUint(parts[0])
	if !ok {
		return PlayerState{}, ErrBadMessage
	}
	discounts, ok := austerity.ParseTokenVec(parts[1][2:])
	if !ok {
		return PlayerState{}, ErrBadMessage
	}
	tokens, ok := austerity.ParseWallet(parts[2][2:])
	if !ok {
		return PlayerState{}, ErrBadMessage
	}
	return PlayerState{Seat: seat, Score: score, Discounts: discounts, Tokens: tokens}, nil
}

func seatOnly(s string) (int, bool) {
	if len(s) != 1 {
		return 0, false
	}
	return austerity.SeatFromLetter(s[0])
}
