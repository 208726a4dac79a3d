package server

import (
	"bufio"
	"net"
	"sync"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/decred/slog"
	"github.com/vctt94/austerity/pkg/austerity"
	"github.com/vctt94/austerity/pkg/protocol"
	"github.com/vctt94/austerity/pkg/statemachine"
	"github.com/vctt94/austerity/pkg/utils"
)

// seat pairs one player's socket with its buffered reader. A reconnect
// swaps both at once.
type seat struct {
	conn net.Conn
	r    *bufio.Reader
}

// gameData is one running (or finished) game: the rules state, the player
// sockets and the reconnect rendezvous.
type gameData struct {
	log     slog.Logger
	name    string
	counter int
	timeout time.Duration
	rv      *rendezvous

	// mu guards game and seats. The turn loop holds it across state
	// mutations; the scoreboard and reconnect catch-up hold it while
	// reading.
	mu    sync.Mutex
	game  *austerity.Game
	seats []seat

	// Outcome of the turn loop, read by finalizeGame.
	reason  endReason
	badSeat int
}

// turnResult classifies one prompt/response exchange.
type turnResult int

const (
	turnOK turnResult = iota
	turnProtocolError
	turnClosed
)

// runGame drives one game from the opening announcements to its terminal
// broadcast.
func (s *Server) runGame(g *gameData) {
	defer s.gameWG.Done()
	sm := statemachine.NewStateMachine(g, (*gameData).statePreamble)
	sm.Run()
	s.finalizeGame(g, g.reason, g.badSeat)
}

// statePreamble sends each player its reconnect id, seat info and the
// initial pile size, then reveals the opening board.
func (g *gameData) statePreamble() statemachine.StateFn[gameData] {
	n := g.game.NumPlayers()
	for i := 0; i < n; i++ {
		g.writeSeat(i, protocol.Rid{Name: g.name, Counter: g.counter, Seat: i})
		g.writeSeat(i, protocol.PlayInfo{Seat: i, Players: n})
	}
	g.broadcast(protocol.Tokens{Count: g.game.InitialTokens()})
	for i := 0; i < austerity.BoardSize; i++ {
		g.mu.Lock()
		card, ok := g.game.Reveal()
		g.mu.Unlock()
		if !ok {
			break
		}
		g.broadcast(protocol.NewCard{Card: card})
	}
	g.mu.Lock()
	board := utils.FormatCards(g.game.Board())
	g.mu.Unlock()
	g.log.Debugf("game %q #%d opening board: %s", g.name, g.counter, board)
	return (*gameData).stateRound
}

// stateRound runs one full round of turns. The win threshold is only
// checked between rounds, so a round in progress always completes. An
// empty board ends the game at once.
func (g *gameData) stateRound() statemachine.StateFn[gameData] {
	if g.game.IsOver() {
		g.reason = endNormal
		return nil
	}
	n := g.game.NumPlayers()
	for seatIdx := 0; seatIdx < n; seatIdx++ {
		if g.game.BoardEmpty() {
			g.reason = endNormal
			return nil
		}
		hadAttempt := false
		for {
			res := g.promptSeat(seatIdx)
			if res == turnOK {
				break
			}
			if res == turnProtocolError {
				if hadAttempt {
					g.reason, g.badSeat = endProtocol, seatIdx
					return nil
				}
				hadAttempt = true
				continue
			}
			// Disconnected. Wait for the seat to come back; the
			// strike count survives a reconnect.
			g.log.Infof("%s: game %q #%d seat %c", EventDisconnect,
				g.name, g.counter, austerity.SeatLetter(seatIdx))
			if g.rv.awaitReturn(seatIdx, g.timeout) {
				g.log.Infof("%s: game %q #%d seat %c", EventReconnect,
					g.name, g.counter, austerity.SeatLetter(seatIdx))
				continue
			}
			g.reason, g.badSeat = endDisconnect, seatIdx
			return nil
		}
	}
	return (*gameData).stateRound
}

// promptSeat sends dowhat to one seat and applies its answer.
func (g *gameData) promptSeat(seatIdx int) turnResult {
	g.writeSeat(seatIdx, protocol.DoWhat{})
	line, err := g.readSeat(seatIdx)
	if err != nil {
		return turnClosed
	}
	act, err := protocol.ParseAction(line)
	if err != nil {
		g.log.Debugf("%s: game %q #%d seat %c sent unparseable line: %s",
			EventProtocolError, g.name, g.counter,
			austerity.SeatLetter(seatIdx), spew.Sdump(line))
		return turnProtocolError
	}

	switch a := act.(type) {
	case protocol.Purchase:
		g.mu.Lock()
		err := g.game.Purchase(seatIdx, a.Card, a.Pay)
		g.mu.Unlock()
		if err != nil {
			g.log.Debugf("%s: game %q #%d seat %c bad purchase: %v: %s",
				EventProtocolError, g.name, g.counter,
				austerity.SeatLetter(seatIdx), err, spew.Sdump(a))
			return turnProtocolError
		}
		g.broadcast(protocol.Purchased{Seat: seatIdx, Card: a.Card, Paid: a.Pay})
		g.log.Debugf("%s: game %q #%d seat %c bought card %d",
			EventPurchase, g.name, g.counter,
			austerity.SeatLetter(seatIdx), a.Card)
		g.mu.Lock()
		card, ok := g.game.Reveal()
		g.mu.Unlock()
		if ok {
			g.broadcast(protocol.NewCard{Card: card})
			g.log.Debugf("%s: game %q #%d revealed %s",
				EventCardRevealed, g.name, g.counter, card)
		}
	case protocol.Take:
		g.mu.Lock()
		err := g.game.TakeTokens(seatIdx, a.Taken)
		g.mu.Unlock()
		if err != nil {
			g.log.Debugf("%s: game %q #%d seat %c bad take: %v: %s",
				EventProtocolError, g.name, g.counter,
				austerity.SeatLetter(seatIdx), err, spew.Sdump(a))
			return turnProtocolError
		}
		g.broadcast(protocol.Took{Seat: seatIdx, Taken: a.Taken})
		g.log.Debugf("%s: game %q #%d seat %c took %s", EventTake,
			g.name, g.counter, austerity.SeatLetter(seatIdx),
			austerity.FormatTokenVec(a.Taken))
	case protocol.TakeWild:
		g.mu.Lock()
		g.game.TakeWild(seatIdx)
		g.mu.Unlock()
		g.broadcast(protocol.WildTaken{Seat: seatIdx})
		g.log.Debugf("%s: game %q #%d seat %c took a wild", EventWild,
			g.name, g.counter, austerity.SeatLetter(seatIdx))
	}
	return turnOK
}

// finalizeGame broadcasts the terminal message for a game and closes its
// sockets, exactly once. shutdownMu serialises this against Shutdown, so a
// SIGTERM and a game's own ending cannot both announce.
func (s *Server) finalizeGame(g *gameData, reason endReason, badSeat int) {
	s.shutdownMu.Lock()
	defer s.shutdownMu.Unlock()
	if g.rv.isFinished() {
		return
	}
	switch reason {
	case endDisconnect:
		g.broadcast(protocol.Disco{Seat: badSeat})
	case endProtocol:
		g.broadcast(protocol.Invalid{Seat: badSeat})
	default:
		g.broadcast(protocol.EndOfGame{})
	}
	g.rv.finish()
	g.mu.Lock()
	for _, st := range g.seats {
		st.conn.Close()
	}
	g.mu.Unlock()
	s.log.Infof("%s: game %q #%d", EventGameEnded, g.name, g.counter)
}

// broadcast writes one message to every seat. Write failures surface later
// as read failures on the seat's turn.
func (g *gameData) broadcast(m protocol.Message) {
	line := m.Encode() + "\n"
	g.mu.Lock()
	conns := make([]net.Conn, len(g.seats))
	for i, st := range g.seats {
		conns[i] = st.conn
	}
	g.mu.Unlock()
	for _, c := range conns {
		c.Write([]byte(line))
	}
}

func (g *gameData) writeSeat(seatIdx int, m protocol.Message) {
	g.mu.Lock()
	conn := g.seats[seatIdx].conn
	g.mu.Unlock()
	conn.Write([]byte(m.Encode() + "\n"))
}

func (g *gameData) readSeat(seatIdx int) (string, error) {
	g.mu.Lock()
	r := g.seats[seatIdx].r
	g.mu.Unlock()
	return readLine(r)
}
