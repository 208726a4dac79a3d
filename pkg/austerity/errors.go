package austerity

import "errors"

var (
	// ErrNoSuchCard marks a board index with no face-up card.
	ErrNoSuchCard = errors.New("no card at that position")
	// ErrCannotAfford marks a purchase the buyer's tokens cannot cover.
	ErrCannotAfford = errors.New("cannot afford card")
	// ErrWrongPayment marks a payment that is not the wild-minimal one.
	ErrWrongPayment = errors.New("payment is not the required payment")
	// ErrInvalidTake marks a token take that is not three distinct
	// non-empty piles.
	ErrInvalidTake = errors.New("invalid token take")
	// ErrBadSeat marks a seat index outside the game.
	ErrBadSeat = errors.New("no such seat")
)
