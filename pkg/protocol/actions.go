package protocol

import (
	"fmt"
	"strings"

	"github.com/vctt94/austerity/pkg/austerity"
)

// Purchase is a player's request to buy a board card with an explicit
// payment.
type Purchase struct {
	Card int
	Pay  austerity.Wallet
}

func (a Purchase) Encode() string {
	return fmt.Sprintf("purchase%d:%s", a.Card, austerity.FormatWallet(a.Pay))
}

// Take is a player's request to take one token from each of three piles.
type Take struct {
	Taken austerity.TokenVec
}

func (a Take) Encode() string {
	return "take" + austerity.FormatTokenVec(a.Taken)
}

// TakeWild is a player's request for a single wild token.
type TakeWild struct{}

func (TakeWild) Encode() string { return "wild" }

// ParseAction decodes a player-to-server turn action line.
func ParseAction(line string) (Action, error) {
	switch {
	case strings.HasPrefix(line, "purchase"):
		return parsePurchase(line[len("purchase"):])
	case strings.HasPrefix(line, "take"):
		taken, ok := austerity.ParseTokenVec(line[len("take"):])
		if !ok {
			return nil, ErrBadMessage
		}
		return Take{Taken: taken}, nil
	case line == "wild":
		return TakeWild{}, nil
	}
	return nil, ErrBadMessage
}

func parsePurchase(s string) (Purchase, error) {
	colon := strings.IndexByte(s, ':')
	if colon < 0 {
		return Purchase{}, ErrBadMessage
	}
	card, ok := austerity.ParseUint(s[:colon])
	if !ok || card >= austerity.BoardSize {
		return Purchase{}, ErrBadMessage
	}
	pay, ok := austerity.ParseWallet(s[colon+1:])
	if !ok {
		return Purchase{}, ErrBadMessage
	}
	return Purchase{Card: card, Pay: pay}, nil
}

// AuthKind classifies the first line a client sends after connecting.
type AuthKind int

const (
	AuthPlay AuthKind = iota
	AuthReconnect
	AuthScores
	AuthBad
)

// Auth is the decoded first line of a connection.
type Auth struct {
	Kind AuthKind
	Key  string
}

// ParseAuth classifies a connection greeting. The key may be empty; key
// comparison is the server's job.
func ParseAuth(line string) Auth {
	switch {
	case strings.HasPrefix(line, "play"):
		return Auth{Kind: AuthPlay, Key: line[len("play"):]}
	case strings.HasPrefix(line, "reconnect"):
		return Auth{Kind: AuthReconnect, Key: line[len("reconnect"):]}
	case line == "scores":
		return Auth{Kind: AuthScores}
	}
	return Auth{Kind: AuthBad}
}

// EncodePlay renders the play greeting for a key.
func EncodePlay(key string) string { return "play" + key }

// EncodeReconnect renders the reconnect greeting for a key.
func EncodeReconnect(key string) string { return "reconnect" + key }

// EncodeScores renders the scoreboard greeting.
func EncodeScores() string { return "scores" }
