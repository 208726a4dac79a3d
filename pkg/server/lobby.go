package server

import (
	"bufio"
	"net"
	"sort"

	"github.com/vctt94/austerity/pkg/austerity"
)

// lobby collects players for one named game until it fills.
type lobby struct {
	name  string
	entry StatEntry
	// joiners in arrival order. The entry comes from the port the FIRST
	// joiner connected through; later joiners may arrive via any port.
	joiners []*joiner
	open    bool
}

// joiner is one connected player waiting in a lobby.
type joiner struct {
	name string
	conn net.Conn
	r    *bufio.Reader
}

// joinGame reads the game and player name from a fresh connection and puts
// the player in the matching open lobby, creating one from the port's entry
// if needed. When the lobby fills, the game starts. Returns false when the
// connection should be closed.
func (s *Server) joinGame(conn net.Conn, r *bufio.Reader, entry StatEntry) bool {
	gameName, err := readLine(r)
	if err != nil || !ValidName(gameName) {
		return false
	}
	playerName, err := readLine(r)
	if err != nil || !ValidName(playerName) {
		return false
	}

	s.joinMu.Lock()
	defer s.joinMu.Unlock()

	lb := s.findOpenLobby(gameName)
	if lb == nil {
		lb = &lobby{name: gameName, entry: entry, open: true}
		s.lobbies = append(s.lobbies, lb)
		s.log.Debugf("Created lobby %q (port %d: %d players, %d tokens, win %d)",
			gameName, entry.Port, entry.Players, entry.Tokens, entry.Points)
	}
	lb.joiners = append(lb.joiners, &joiner{name: playerName, conn: conn, r: r})
	s.log.Debugf("Player %q joined lobby %q (%d/%d)",
		playerName, gameName, len(lb.joiners), lb.entry.Players)

	if len(lb.joiners) == lb.entry.Players {
		lb.open = false
		s.startGame(lb)
	}
	return true
}

func (s *Server) findOpenLobby(name string) *lobby {
	for _, lb := range s.lobbies {
		if lb.open && lb.name == name {
			return lb
		}
	}
	return nil
}

// startGame turns a full lobby into a running game. Seats are assigned by
// sorting players by name, ties keeping arrival order. The game counter is
// one more than the number of earlier games with the same name. Caller
// holds joinMu.
func (s *Server) startGame(lb *lobby) {
	joiners := make([]*joiner, len(lb.joiners))
	copy(joiners, lb.joiners)
	sort.SliceStable(joiners, func(i, j int) bool {
		return joiners[i].name < joiners[j].name
	})

	counter := 1
	for _, g := range s.games {
		if g.name == lb.name {
			counter++
		}
	}

	names := make([]string, len(joiners))
	for i, j := range joiners {
		names[i] = j.name
	}
	game, err := austerity.NewGame(austerity.Config{
		Deck:          s.cfg.Deck.Copy(),
		PlayerNames:   names,
		InitialTokens: lb.entry.Tokens,
		WinThreshold:  lb.entry.Points,
	})
	if err != nil {
		// Statfile validation bounds the player count, so this cannot
		// happen for a full lobby.
		s.log.Errorf("Starting game %q: %v", lb.name, err)
		return
	}

	g := &gameData{
		log:     s.logBackend.Logger("GAME"),
		name:    lb.name,
		counter: counter,
		timeout: s.cfg.Timeout,
		game:    game,
		seats:   make([]seat, len(joiners)),
		rv:      newRendezvous(),
	}
	for i, j := range joiners {
		g.seats[i] = seat{conn: j.conn, r: j.r}
	}
	s.games = append(s.games, g)

	s.log.Infof("%s: game %q #%d starting with %d players",
		EventGameStarted, g.name, g.counter, len(joiners))
	s.gameWG.Add(1)
	go s.runGame(g)
}
