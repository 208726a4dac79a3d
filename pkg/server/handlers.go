package server

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"strings"

	"github.com/vctt94/austerity/pkg/austerity"
	"github.com/vctt94/austerity/pkg/protocol"
)

// handleConn services one fresh connection: authenticate, then join a
// lobby, reconnect to a game, or stream the scoreboard. Sockets handed to
// a lobby or game stay open after this returns; everything else is closed
// here.
func (s *Server) handleConn(conn net.Conn, entry StatEntry) {
	r := bufio.NewReader(conn)
	line, err := readLine(r)
	if err != nil {
		conn.Close()
		return
	}

	auth := protocol.ParseAuth(line)
	ok := auth.Kind == protocol.AuthScores ||
		((auth.Kind == protocol.AuthPlay || auth.Kind == protocol.AuthReconnect) &&
			auth.Key == s.cfg.Key)
	if !ok {
		writeLine(conn, "no")
		conn.Close()
		return
	}
	writeLine(conn, "yes")

	keepOpen := false
	switch auth.Kind {
	case protocol.AuthPlay:
		keepOpen = s.joinGame(conn, r, entry)
	case protocol.AuthReconnect:
		keepOpen = s.reconnectGame(conn, r)
	case protocol.AuthScores:
		s.writeScores(conn)
	}
	if !keepOpen {
		conn.Close()
	}
}

// reconnectGame reads the client's rid line and, if it names a live game
// with a pending disconnected seat, swaps this connection into that seat.
// It blocks until the game marks the seat pending or finishes. Returns
// false when the connection should be closed.
func (s *Server) reconnectGame(conn net.Conn, r *bufio.Reader) bool {
	line, err := readLine(r)
	if err != nil || !strings.HasPrefix(line, "rid") {
		writeLine(conn, "no")
		return false
	}
	rid, err := protocol.ParseRid(line[len("rid"):])
	if err != nil {
		writeLine(conn, "no")
		return false
	}

	g := s.findOpenGame(rid.Name, rid.Counter)
	if g == nil || rid.Seat >= g.game.NumPlayers() {
		writeLine(conn, "no")
		return false
	}
	if err := g.rv.claim(rid.Seat); err != nil {
		writeLine(conn, "no")
		return false
	}

	// The game task is parked until resume, so the state below is
	// stable.
	var sb strings.Builder
	g.mu.Lock()
	n := g.game.NumPlayers()
	sb.WriteString("yes\n")
	sb.WriteString(protocol.PlayInfo{Seat: rid.Seat, Players: n}.Encode() + "\n")
	sb.WriteString(protocol.Tokens{Count: g.game.InitialTokens()}.Encode() + "\n")
	for _, c := range g.game.Board() {
		sb.WriteString(protocol.NewCard{Card: c}.Encode() + "\n")
	}
	for _, p := range g.game.Players() {
		sb.WriteString(protocol.PlayerState{
			Seat:      p.Seat,
			Score:     p.Score,
			Discounts: p.Discounts,
			Tokens:    p.Tokens,
		}.Encode() + "\n")
	}
	g.mu.Unlock()
	conn.Write([]byte(sb.String()))

	g.mu.Lock()
	g.seats[rid.Seat] = seat{conn: conn, r: bufio.NewReader(conn)}
	g.mu.Unlock()
	g.rv.resume()

	s.log.Infof("%s: game %q #%d seat %c swapped in a new connection",
		EventReconnect, g.name, g.counter, austerity.SeatLetter(rid.Seat))
	return true
}

// readLine reads one newline-terminated line and strips the terminator. A
// partial line at EOF counts as a failure.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(line, "\n"), nil
}

func writeLine(w io.Writer, line string) {
	fmt.Fprintf(w, "%s\n", line)
}
